// Package preview renders the live site preview from a site configuration:
// content resolution, the hero layout variants, the section renderers and the
// inline edit overlay.
package preview

import (
	"fmt"
	"strings"

	"github.com/gabrielmiguelok/sitewizard/internal/locale"
	"github.com/gabrielmiguelok/sitewizard/internal/site"
	"github.com/gabrielmiguelok/sitewizard/internal/theme"
)

// Options configures one preview render.
type Options struct {
	Config   *site.Config
	Lang     locale.Lang
	Editable bool
	// ActiveSection highlights the section whose edit panel is open.
	ActiveSection string
}

// Render returns the preview markup for opts. It is a pure function of its
// options.
func Render(opts Options) string {
	cfg := opts.Config
	if cfg == nil {
		cfg = site.New()
	}
	env := &renderEnv{
		r:        NewResolver(cfg, opts.Lang),
		tok:      theme.Resolve(cfg),
		editable: opts.Editable,
		active:   opts.ActiveSection,
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="%s" dir="%s" data-layout="%s" style="%s">`,
		escape(strings.TrimSpace("sw-preview min-h-full "+env.tok.BodyClass())),
		opts.Lang.Dir(), SelectLayout(cfg.Content), escape(env.tok.RootStyle()))

	env.wrapSection(&sb, SectionHeader, func() { renderHeader(env, &sb) })
	env.wrapSection(&sb, string(site.SectionHero), func() {
		heroFor(SelectLayout(cfg.Content)).render(env, &sb)
	})

	for _, s := range cfg.Structure {
		render, ok := renderers[s]
		if !ok {
			continue
		}
		env.wrapSection(&sb, string(s), func() { render(env, &sb) })
	}

	env.wrapSection(&sb, SectionFooter, func() { renderFooter(env, &sb) })

	sb.WriteString(`</div>`)
	return sb.String()
}
