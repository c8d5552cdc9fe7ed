package theme

import (
	"fmt"
	"strings"

	"github.com/gabrielmiguelok/sitewizard/internal/site"
)

// Tokens are the resolved style inputs for one render.
type Tokens struct {
	Palette    Palette
	Fonts      FontPair
	CustomFont string
}

// Resolve maps the configuration's theme ids to concrete tokens. It never
// fails: unknown ids resolve to the first table entry.
func Resolve(cfg *site.Config) Tokens {
	return Tokens{
		Palette:    ResolvePalette(cfg.Palette),
		Fonts:      ResolveFontPair(cfg.FontPair),
		CustomFont: strings.TrimSpace(cfg.CustomFont),
	}
}

// HasCustomFont reports whether a custom family supersedes the font pair.
func (t Tokens) HasCustomFont() bool {
	return t.CustomFont != ""
}

// HeadingClass returns the heading role class, or "" when a custom font is active.
func (t Tokens) HeadingClass() string {
	if t.HasCustomFont() {
		return ""
	}
	return t.Fonts.Heading
}

// BodyClass returns the body role class, or "" when a custom font is active.
func (t Tokens) BodyClass() string {
	if t.HasCustomFont() {
		return ""
	}
	return t.Fonts.Body
}

// FontStyle returns an inline font-family declaration for the custom font.
func (t Tokens) FontStyle() string {
	if !t.HasCustomFont() {
		return ""
	}
	return fmt.Sprintf("font-family: '%s', sans-serif;", cssString(t.CustomFont))
}

// RootStyle returns the inline style for the preview root element.
func (t Tokens) RootStyle() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--sw-bg:%s;--sw-surface:%s;--sw-text:%s;--sw-accent:%s;",
		t.Palette.Background(), t.Palette.Surface(), t.Palette.Text(), t.Palette.Accent())
	fmt.Fprintf(&sb, "background-color:%s;color:%s;", t.Palette.Background(), t.Palette.Text())
	sb.WriteString(t.FontStyle())
	return sb.String()
}

func cssString(s string) string {
	return strings.NewReplacer(`'`, "", `"`, "", `;`, "", `<`, "", `>`, "").Replace(s)
}
