package theme

import (
	"fmt"
	"html"
	"net/url"
	"strings"
	"sync"
)

// FontLinkID is the fixed element id of the custom font stylesheet link.
const FontLinkID = "sw-custom-font"

// FontLoader tracks the stylesheet links injected for custom fonts. Links are
// keyed by element id, so repeated loads update one link instead of adding
// more.
type FontLoader struct {
	mu    sync.Mutex
	links map[string]string // element id -> href
}

// NewFontLoader creates an empty loader.
func NewFontLoader() *FontLoader {
	return &FontLoader{links: make(map[string]string)}
}

// Load points the custom font link at family. It reports whether a new link
// was created; an existing link is only updated.
func (l *FontLoader) Load(family string) bool {
	family = strings.TrimSpace(family)
	if family == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	_, exists := l.links[FontLinkID]
	l.links[FontLinkID] = FontURL(family)
	return !exists
}

// Links returns the number of injected links.
func (l *FontLoader) Links() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.links)
}

// Href returns the current custom font stylesheet URL.
func (l *FontLoader) Href() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.links[FontLinkID]
}

// Tag renders the link element, or "" when no font was loaded.
func (l *FontLoader) Tag() string {
	href := l.Href()
	if href == "" {
		return ""
	}
	return fmt.Sprintf(`<link id="%s" rel="stylesheet" href="%s">`, FontLinkID, html.EscapeString(href))
}

// FontURL returns the web font stylesheet URL for a family name.
func FontURL(family string) string {
	name := url.QueryEscape(strings.Join(strings.Fields(family), " "))
	return "https://fonts.googleapis.com/css2?family=" + name + ":wght@400;700;900&display=swap"
}
