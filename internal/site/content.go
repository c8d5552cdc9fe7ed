package site

import (
	"sort"
	"strings"
)

// HintPrefix marks content keys that hold derived data (image overrides,
// generation hints) instead of user-facing copy.
const HintPrefix = "_"

// Well-known hint keys.
const (
	HintLayoutStyle     = "_layout_style"
	HintVisualStyle     = "_visual_style"
	HintHeroImagePrompt = "_hero_image_prompt"
)

// Content is the sparse override store for a site. User-visible slots and
// internal hints are kept in separate maps so that a slot can never shadow a
// hint; Set and Get route on the key prefix.
//
// Keys are never removed. An absent key means "use the fallback".
type Content struct {
	Slots map[string]string `msgpack:"slots"`
	Hints map[string]string `msgpack:"hints"`
}

// NewContent returns an empty content store.
func NewContent() Content {
	return Content{
		Slots: make(map[string]string),
		Hints: make(map[string]string),
	}
}

// IsHintKey reports whether key lives in the hint namespace.
func IsHintKey(key string) bool {
	return strings.HasPrefix(key, HintPrefix)
}

// Set stores value under key, overwriting any previous value.
func (c *Content) Set(key, value string) {
	if IsHintKey(key) {
		if c.Hints == nil {
			c.Hints = make(map[string]string)
		}
		c.Hints[key] = value
		return
	}
	if c.Slots == nil {
		c.Slots = make(map[string]string)
	}
	c.Slots[key] = value
}

// Get returns the value stored under key.
func (c Content) Get(key string) (string, bool) {
	if IsHintKey(key) {
		v, ok := c.Hints[key]
		return v, ok
	}
	v, ok := c.Slots[key]
	return v, ok
}

// Hint returns a hint value or "" when unset.
func (c Content) Hint(key string) string {
	return c.Hints[key]
}

// Merge writes every entry of values into the store.
func (c *Content) Merge(values map[string]string) {
	for k, v := range values {
		c.Set(k, v)
	}
}

// Len returns the number of stored keys across both namespaces.
func (c Content) Len() int {
	return len(c.Slots) + len(c.Hints)
}

// Keys returns all stored keys, sorted.
func (c Content) Keys() []string {
	keys := make([]string, 0, c.Len())
	for k := range c.Slots {
		keys = append(keys, k)
	}
	for k := range c.Hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (c Content) Clone() Content {
	out := NewContent()
	for k, v := range c.Slots {
		out.Slots[k] = v
	}
	for k, v := range c.Hints {
		out.Hints[k] = v
	}
	return out
}
