package preview

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/gabrielmiguelok/sitewizard/internal/locale"
)

// wrapSection writes body inside the section text wrapper when the preview
// is editable. The whole section is the click target.
func (e *renderEnv) wrapSection(sb *strings.Builder, section string, body func()) {
	if !e.editable {
		body()
		return
	}
	label := section
	if s, ok := SchemaFor(section); ok {
		label = e.r.T(s.EditLabel)
	}
	active := ""
	if e.active == section {
		active = " sw-edit-active"
	}
	fmt.Fprintf(sb, `<div class="sw-edit-wrap relative group%s" data-edit-section="%s" lv-click="edit-section" lv-value-section="%s">`,
		active, html.EscapeString(section), html.EscapeString(section))
	fmt.Fprintf(sb, `<span class="sw-edit-label">%s</span>`, html.EscapeString(label))
	body()
	sb.WriteString(`</div>`)
}

// image writes an <img> for an image context. In editable mode the image is
// wrapped so a click asks the asset library to replace it.
func (e *renderEnv) image(sb *strings.Builder, context, src, alt, class string) {
	tag := fmt.Sprintf(`<img src="%s" alt="%s" class="%s" loading="lazy" />`,
		html.EscapeString(safeImage(src)), html.EscapeString(alt), html.EscapeString(class))
	if !e.editable {
		sb.WriteString(tag)
		return
	}
	fmt.Fprintf(sb, `<div class="sw-image-wrap relative" data-image-context="%s" lv-click="edit-image" lv-value-context="%s">`,
		html.EscapeString(context), html.EscapeString(context))
	sb.WriteString(tag)
	fmt.Fprintf(sb, `<span class="sw-edit-label">%s</span>`, html.EscapeString(e.r.T("preview.editImage")))
	sb.WriteString(`</div>`)
}

// RenderEditPanel renders the side panel for section. Each input writes
// through on every keystroke; there is no draft state and no cancel.
func RenderEditPanel(r *Resolver, section string) string {
	s, ok := SchemaFor(section)
	if !ok {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<aside class="sw-edit-panel" dir="%s" data-panel-section="%s">`, r.lang.Dir(), html.EscapeString(section))
	sb.WriteString(`<header class="sw-edit-panel-header">`)
	fmt.Fprintf(&sb, `<h3>%s: %s</h3>`, html.EscapeString(r.T("editSection")), html.EscapeString(r.T(s.EditLabel)))
	fmt.Fprintf(&sb, `<button type="button" class="sw-icon-btn" lv-click="close-editor" aria-label="%s">&times;</button>`,
		html.EscapeString(r.T("close")))
	sb.WriteString(`</header>`)

	sb.WriteString(`<div class="sw-edit-fields">`)
	for _, f := range s.Fields {
		value := Resolve(r.cfg.Content, f.Key, f.Fallback(r))
		id := "sw-field-" + f.Key
		sb.WriteString(`<label class="sw-field">`)
		fmt.Fprintf(&sb, `<span>%s</span>`, html.EscapeString(f.Label))
		switch f.Widget {
		case WidgetMultiline:
			fmt.Fprintf(&sb, `<textarea id="%s" rows="3" lv-input="update-content" lv-value-key="%s">%s</textarea>`,
				id, html.EscapeString(f.Key), html.EscapeString(value))
		default:
			fmt.Fprintf(&sb, `<input id="%s" type="text" value="%s" lv-input="update-content" lv-value-key="%s" />`,
				id, html.EscapeString(value), html.EscapeString(f.Key))
		}
		sb.WriteString(`</label>`)
	}
	sb.WriteString(`</div>`)

	fmt.Fprintf(&sb, `<button type="button" class="sw-btn sw-btn-primary" lv-click="close-editor">%s</button>`,
		html.EscapeString(r.T("done")))
	sb.WriteString(`</aside>`)
	return sb.String()
}

// Editor tracks the one open edit panel. Opening a section replaces
// whatever was open.
type Editor struct {
	mu     sync.RWMutex
	active string
}

// Open makes section the active panel. Unknown sections are ignored.
func (ed *Editor) Open(section string) bool {
	if _, ok := SchemaFor(section); !ok {
		return false
	}
	ed.mu.Lock()
	ed.active = section
	ed.mu.Unlock()
	return true
}

// Close clears the active panel.
func (ed *Editor) Close() {
	ed.mu.Lock()
	ed.active = ""
	ed.mu.Unlock()
}

// Active returns the open section, or "".
func (ed *Editor) Active() string {
	ed.mu.RLock()
	defer ed.mu.RUnlock()
	return ed.active
}

// IsOpen reports whether a panel is open.
func (ed *Editor) IsOpen() bool {
	return ed.Active() != ""
}

// LabelFor returns the hover label of a section in lang.
func LabelFor(lang locale.Lang, section string) string {
	if s, ok := SchemaFor(section); ok {
		return locale.T(lang, s.EditLabel)
	}
	return section
}
