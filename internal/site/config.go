// Package site holds the site configuration aggregate that the wizard builds
// and the preview renders.
package site

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownSection is returned when a section id is outside the vocabulary.
var ErrUnknownSection = errors.New("unknown section")

// Default table ids for a fresh site.
const (
	DefaultPalette  = "minimal"
	DefaultFontPair = "modern"
)

// Config is the root aggregate describing one site being built.
type Config struct {
	Topic       string          `msgpack:"topic"`
	Goals       map[string]bool `msgpack:"goals"`
	Name        string          `msgpack:"name"`
	Structure   []Section       `msgpack:"structure"`
	Palette     string          `msgpack:"palette"`
	FontPair    string          `msgpack:"font_pair"`
	CustomFont  string          `msgpack:"custom_font,omitempty"`
	Description string          `msgpack:"description,omitempty"`
	Content     Content         `msgpack:"content"`
}

// New returns a configuration with the starter defaults.
func New() *Config {
	return &Config{
		Goals:     make(map[string]bool),
		Structure: DefaultStructure(),
		Palette:   DefaultPalette,
		FontPair:  DefaultFontPair,
		Content:   NewContent(),
	}
}

// HasSection reports whether s is part of the structure.
func (c *Config) HasSection(s Section) bool {
	for _, have := range c.Structure {
		if have == s {
			return true
		}
	}
	return false
}

// ToggleStructure removes s when present and appends it otherwise. The
// relative order of the other sections is preserved.
func (c *Config) ToggleStructure(s Section) error {
	if !s.IsKnown() {
		return fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	for i, have := range c.Structure {
		if have == s {
			c.Structure = append(c.Structure[:i:i], c.Structure[i+1:]...)
			return nil
		}
	}
	c.Structure = append(c.Structure, s)
	return nil
}

// ToggleGoal flips membership of goal in the goal set.
func (c *Config) ToggleGoal(goal string) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return
	}
	if c.Goals == nil {
		c.Goals = make(map[string]bool)
	}
	if c.Goals[goal] {
		delete(c.Goals, goal)
		return
	}
	c.Goals[goal] = true
}

// HasGoal reports whether goal is selected.
func (c *Config) HasGoal(goal string) bool {
	return c.Goals[goal]
}

// GoalList returns the selected goals sorted alphabetically.
func (c *Config) GoalList() []string {
	out := make([]string, 0, len(c.Goals))
	for g := range c.Goals {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// ApplyAsset stores url as the image override for target.
func (c *Config) ApplyAsset(url, target string) {
	c.Content.Set(ImageOverrideKey(target), url)
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Goals = make(map[string]bool, len(c.Goals))
	for g := range c.Goals {
		out.Goals[g] = true
	}
	out.Structure = make([]Section, len(c.Structure))
	copy(out.Structure, c.Structure)
	out.Content = c.Content.Clone()
	return &out
}
