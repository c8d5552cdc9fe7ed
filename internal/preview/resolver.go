package preview

import (
	"strings"

	"github.com/gabrielmiguelok/sitewizard/internal/imagery"
	"github.com/gabrielmiguelok/sitewizard/internal/locale"
	"github.com/gabrielmiguelok/sitewizard/internal/site"
)

// Resolve returns the stored value for key when present and non-empty,
// otherwise fallback.
func Resolve(c site.Content, key, fallback string) string {
	if v, ok := c.Get(key); ok && v != "" {
		return v
	}
	return fallback
}

// Resolver answers content and image lookups for one config in one language.
type Resolver struct {
	cfg  *site.Config
	lang locale.Lang
}

// NewResolver binds cfg and lang. A nil cfg resolves against the defaults.
func NewResolver(cfg *site.Config, lang locale.Lang) *Resolver {
	if cfg == nil {
		cfg = site.New()
	}
	return &Resolver{cfg: cfg, lang: lang}
}

// Lang returns the bound language.
func (r *Resolver) Lang() locale.Lang { return r.lang }

// Fallback returns the schema fallback for key, or "" for unknown keys.
func (r *Resolver) Fallback(key string) string {
	f, ok := fieldByKey[key]
	if !ok || f.Fallback == nil {
		return ""
	}
	return f.Fallback(r)
}

// Text resolves a schema key against the content, falling back to the
// schema copy.
func (r *Resolver) Text(key string) string {
	return Resolve(r.cfg.Content, key, r.Fallback(key))
}

// T returns a locale string in the bound language.
func (r *Resolver) T(key string, args ...any) string {
	return locale.T(r.lang, key, args...)
}

// Style returns the image style: the visual-style hint, then the topic.
func (r *Resolver) Style() string {
	if s := strings.TrimSpace(r.cfg.Content.Hint(site.HintVisualStyle)); s != "" {
		return s
	}
	return strings.TrimSpace(r.cfg.Topic)
}

// Image resolves the image for an image context. An override written by
// the asset library wins over the generated placeholder.
func (r *Resolver) Image(context string) string {
	if v := r.cfg.Content.Hint(site.ImageOverrideKey(context)); v != "" {
		return v
	}
	return imagery.Placeholder(imagery.Request{
		Style:   r.Style(),
		Context: context,
		Size:    imagery.SizeFor(context),
		Seed:    imagery.Seed(r.cfg.Name, context),
	})
}

// HeroImage resolves the hero image. Every hero variant shares the hero
// override; context only picks the size class and seed. The hero prompt hint
// from tailored content replaces the generic context when present.
func (r *Resolver) HeroImage(context string) string {
	if v := r.cfg.Content.Hint(site.ImageOverrideKey("hero")); v != "" {
		return v
	}
	prompt := context
	if p := strings.TrimSpace(r.cfg.Content.Hint(site.HintHeroImagePrompt)); p != "" {
		prompt = p
	}
	return imagery.Placeholder(imagery.Request{
		Style:   r.Style(),
		Context: prompt,
		Size:    imagery.SizeFor(context),
		Seed:    imagery.Seed(r.cfg.Name, context),
	})
}
