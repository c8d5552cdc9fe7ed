package preview

import (
	"fmt"
	"html"
	"strings"

	"github.com/gabrielmiguelok/sitewizard/internal/theme"
	"github.com/gabrielmiguelok/sitewizard/pkg/security"
)

// renderEnv carries the per-render inputs shared by every renderer.
type renderEnv struct {
	r        *Resolver
	tok      theme.Tokens
	editable bool
	active   string
}

// text returns the escaped resolved value of a schema key.
func (e *renderEnv) text(key string) string {
	return html.EscapeString(e.r.Text(key))
}

// t returns an escaped locale string.
func (e *renderEnv) t(key string, args ...any) string {
	return html.EscapeString(e.r.T(key, args...))
}

// heading returns the class and style attributes for a heading element.
func (e *renderEnv) heading(class string) string {
	return e.fontAttrs(class, e.tok.HeadingClass())
}

// body returns the class and style attributes for body copy.
func (e *renderEnv) body(class string) string {
	return e.fontAttrs(class, e.tok.BodyClass())
}

func (e *renderEnv) fontAttrs(class, role string) string {
	cls := strings.TrimSpace(class + " " + role)
	if style := e.tok.FontStyle(); style != "" {
		return fmt.Sprintf(`class="%s" style="%s"`, html.EscapeString(cls), html.EscapeString(style))
	}
	return fmt.Sprintf(`class="%s"`, html.EscapeString(cls))
}

// accent returns an inline style using the palette accent for prop.
func (e *renderEnv) accent(prop string) string {
	return fmt.Sprintf(`style="%s:%s"`, prop, html.EscapeString(e.tok.Palette.Accent()))
}

// link returns a safe href for a user-supplied URL.
func link(raw string) string {
	return html.EscapeString(security.SafeURL(raw, "#"))
}

func safeImage(raw string) string {
	return security.SafeURL(raw, "")
}

func escape(s string) string {
	return html.EscapeString(s)
}
