package preview

import (
	"fmt"
	"strings"

	"github.com/gabrielmiguelok/sitewizard/internal/site"
)

// LayoutStyle selects the hero composition.
type LayoutStyle string

// Layout styles.
const (
	LayoutLuxury  LayoutStyle = "luxury"
	LayoutSaaS    LayoutStyle = "saas"
	LayoutBold    LayoutStyle = "bold"
	LayoutMinimal LayoutStyle = "minimal"
)

// DefaultLayout is used when no layout hint is stored.
const DefaultLayout = LayoutSaaS

// LayoutStyles returns the closed layout vocabulary.
func LayoutStyles() []LayoutStyle {
	return []LayoutStyle{LayoutLuxury, LayoutSaaS, LayoutBold, LayoutMinimal}
}

// ParseLayout maps s to a layout style. Unknown values yield the default.
func ParseLayout(s string) LayoutStyle {
	switch l := LayoutStyle(strings.ToLower(strings.TrimSpace(s))); l {
	case LayoutLuxury, LayoutSaaS, LayoutBold, LayoutMinimal:
		return l
	}
	return DefaultLayout
}

// SelectLayout reads the layout hint from content. It is evaluated on every
// render.
func SelectLayout(c site.Content) LayoutStyle {
	return ParseLayout(c.Hint(site.HintLayoutStyle))
}

// heroVariant renders one hero composition.
type heroVariant interface {
	render(e *renderEnv, sb *strings.Builder)
}

var heroVariants = map[LayoutStyle]heroVariant{
	LayoutLuxury:  luxuryHero{},
	LayoutSaaS:    saasHero{},
	LayoutBold:    boldHero{},
	LayoutMinimal: minimalHero{},
}

func heroFor(l LayoutStyle) heroVariant {
	if v, ok := heroVariants[l]; ok {
		return v
	}
	return heroVariants[DefaultLayout]
}

// luxuryHero is a full-bleed image under a dark gradient with a centered
// headline.
type luxuryHero struct{}

func (luxuryHero) render(e *renderEnv, sb *strings.Builder) {
	sb.WriteString(`<section class="sw-hero sw-hero-luxury relative min-h-[80vh] flex items-center justify-center overflow-hidden" data-layout="luxury">`)
	sb.WriteString(`<div class="absolute inset-0">`)
	e.image(sb, "hero", e.r.HeroImage("hero"), e.r.Text("hero_title"), "w-full h-full object-cover")
	sb.WriteString(`<div class="absolute inset-0 bg-gradient-to-b from-black/70 via-black/40 to-black/80"></div>`)
	sb.WriteString(`</div>`)
	sb.WriteString(`<div class="relative z-10 text-center text-white px-6 max-w-3xl">`)
	fmt.Fprintf(sb, `<h1 %s>%s</h1>`, e.heading("text-5xl md:text-7xl font-serif tracking-tight leading-tight"), e.text("hero_title"))
	fmt.Fprintf(sb, `<p %s>%s</p>`, e.body("mt-6 text-lg opacity-80"), e.text("hero_subtitle"))
	fmt.Fprintf(sb, `<a href="#contact" class="inline-block mt-10 px-10 py-3 border border-white/60 uppercase tracking-[0.3em] text-xs">%s</a>`, e.text("hero_cta"))
	sb.WriteString(`</div>`)
	sb.WriteString(`</section>`)
}

// saasHero is a two-column split with a device mockup, a secondary demo
// action and a trust strip.
type saasHero struct{}

func (saasHero) render(e *renderEnv, sb *strings.Builder) {
	sb.WriteString(`<section class="sw-hero sw-hero-saas px-6 py-20" data-layout="saas">`)
	sb.WriteString(`<div class="max-w-6xl mx-auto grid md:grid-cols-2 gap-12 items-center">`)

	sb.WriteString(`<div>`)
	fmt.Fprintf(sb, `<h1 %s>%s</h1>`, e.heading("text-5xl md:text-6xl font-bold leading-tight"), e.text("hero_title"))
	fmt.Fprintf(sb, `<p %s>%s</p>`, e.body("mt-6 text-lg opacity-70"), e.text("hero_subtitle"))
	sb.WriteString(`<div class="mt-8 flex gap-4">`)
	fmt.Fprintf(sb, `<a href="#contact" class="px-8 py-3 rounded-full text-sm font-bold text-white" %s>%s</a>`, e.accent("background-color"), e.text("hero_cta"))
	fmt.Fprintf(sb, `<a href="#features" class="px-8 py-3 rounded-full text-sm font-bold border border-current">%s</a>`, e.t("preview.heroDemo"))
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)

	sb.WriteString(`<div class="sw-mockup relative rounded-2xl shadow-2xl overflow-hidden rotate-1">`)
	sb.WriteString(`<div class="flex gap-1.5 px-4 py-3 bg-black/5"><span class="w-2.5 h-2.5 rounded-full bg-red-400"></span><span class="w-2.5 h-2.5 rounded-full bg-yellow-400"></span><span class="w-2.5 h-2.5 rounded-full bg-green-400"></span></div>`)
	e.image(sb, "hero", e.r.HeroImage("hero"), e.r.Text("hero_title"), "w-full aspect-video object-cover")
	sb.WriteString(`</div>`)

	sb.WriteString(`</div>`)
	fmt.Fprintf(sb, `<div class="sw-trust max-w-6xl mx-auto mt-16 text-center text-xs uppercase tracking-widest opacity-50">%s</div>`, e.t("preview.trusted"))
	sb.WriteString(`</section>`)
}

// boldHero is a solid accent block with an oversized headline and an image
// strip with a caption chip underneath.
type boldHero struct{}

func (boldHero) render(e *renderEnv, sb *strings.Builder) {
	sb.WriteString(`<section class="sw-hero sw-hero-bold" data-layout="bold">`)
	fmt.Fprintf(sb, `<div class="px-6 py-24 text-white" %s>`, e.accent("background-color"))
	fmt.Fprintf(sb, `<h1 %s>%s</h1>`, e.heading("text-6xl md:text-8xl font-black uppercase leading-none"), e.text("hero_title"))
	fmt.Fprintf(sb, `<p %s>%s</p>`, e.body("mt-8 text-xl max-w-2xl"), e.text("hero_subtitle"))
	fmt.Fprintf(sb, `<a href="#contact" class="inline-block mt-10 px-10 py-4 bg-black text-white font-black uppercase">%s</a>`, e.text("hero_cta"))
	sb.WriteString(`</div>`)
	sb.WriteString(`<div class="relative">`)
	e.image(sb, "hero", e.r.HeroImage("hero strip"), e.r.Text("hero_title"), "w-full h-72 object-cover")
	fmt.Fprintf(sb, `<span class="absolute bottom-4 left-4 px-3 py-1 bg-white text-black text-xs font-bold uppercase">%s</span>`, e.text("nav_title"))
	sb.WriteString(`</div>`)
	sb.WriteString(`</section>`)
}

// minimalHero is a short centered headline over whitespace with a wide
// photographic band and a text-only call to action.
type minimalHero struct{}

func (minimalHero) render(e *renderEnv, sb *strings.Builder) {
	sb.WriteString(`<section class="sw-hero sw-hero-minimal pt-32" data-layout="minimal">`)
	sb.WriteString(`<div class="max-w-2xl mx-auto text-center px-6">`)
	fmt.Fprintf(sb, `<h1 %s>%s</h1>`, e.heading("text-4xl md:text-5xl font-light"), e.text("hero_title"))
	fmt.Fprintf(sb, `<p %s>%s</p>`, e.body("mt-6 opacity-60"), e.text("hero_subtitle"))
	fmt.Fprintf(sb, `<a href="#contact" class="inline-block mt-8 text-sm underline underline-offset-8">%s &rarr;</a>`, e.text("hero_cta"))
	sb.WriteString(`</div>`)
	sb.WriteString(`<div class="mt-24">`)
	e.image(sb, "hero", e.r.HeroImage("hero band"), e.r.Text("hero_title"), "w-full h-96 object-cover")
	sb.WriteString(`</div>`)
	sb.WriteString(`</section>`)
}
