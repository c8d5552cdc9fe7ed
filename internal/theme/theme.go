// Package theme resolves palette and font-pair ids into the style tokens used
// by the preview renderer.
package theme

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var tablesFS embed.FS

// Palette is a named four-color scheme.
type Palette struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Colors []string `yaml:"colors"`
}

// Background returns the page background color.
func (p Palette) Background() string { return p.color(0) }

// Surface returns the alternate section background color.
func (p Palette) Surface() string { return p.color(1) }

// Text returns the body text color.
func (p Palette) Text() string { return p.color(2) }

// Accent returns the accent color used for buttons and highlights.
func (p Palette) Accent() string { return p.color(3) }

func (p Palette) color(i int) string {
	if i < len(p.Colors) {
		return p.Colors[i]
	}
	return "#000000"
}

// FontPair names the CSS role classes for headings and body copy.
type FontPair struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

var (
	palettes  = mustLoad[Palette]("tables/palettes.yaml")
	fontPairs = mustLoad[FontPair]("tables/fonts.yaml")
)

func mustLoad[T any](name string) []T {
	data, err := tablesFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("theme: read %s: %v", name, err))
	}
	var out []T
	if err := yaml.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("theme: parse %s: %v", name, err))
	}
	if len(out) == 0 {
		panic(fmt.Sprintf("theme: %s is empty", name))
	}
	return out
}

// Palettes returns the palette table in display order.
func Palettes() []Palette {
	out := make([]Palette, len(palettes))
	copy(out, palettes)
	return out
}

// FontPairs returns the font-pair table in display order.
func FontPairs() []FontPair {
	out := make([]FontPair, len(fontPairs))
	copy(out, fontPairs)
	return out
}

// ResolvePalette returns the palette with the given id, or the first table
// entry when the id is unknown.
func ResolvePalette(id string) Palette {
	for _, p := range palettes {
		if p.ID == id {
			return p
		}
	}
	return palettes[0]
}

// ResolveFontPair returns the font pair with the given id, or the first table
// entry when the id is unknown.
func ResolveFontPair(id string) FontPair {
	for _, f := range fontPairs {
		if f.ID == id {
			return f
		}
	}
	return fontPairs[0]
}
