package preview

import (
	"fmt"
	"strings"

	"github.com/gabrielmiguelok/sitewizard/internal/imagery"
	"github.com/gabrielmiguelok/sitewizard/internal/locale"
	"github.com/gabrielmiguelok/sitewizard/internal/site"
)

type sectionRenderer func(e *renderEnv, sb *strings.Builder)

// renderers holds one renderer per toggleable body section. The hero is
// handled by the layout selector.
var renderers = map[site.Section]sectionRenderer{
	site.SectionFeatures:     renderFeatures,
	site.SectionAbout:        renderAbout,
	site.SectionServices:     renderServices,
	site.SectionGallery:      renderGallery,
	site.SectionTestimonials: renderTestimonials,
	site.SectionTeam:         renderTeam,
	site.SectionPricing:      renderPricing,
	site.SectionFAQ:          renderFAQ,
	site.SectionBlog:         renderBlog,
	site.SectionNewsletter:   renderNewsletter,
	site.SectionContact:      renderContact,
}

func sectionOpen(sb *strings.Builder, id, class string) {
	fmt.Fprintf(sb, `<section id="%s" class="sw-section px-6 py-20 %s">`, id, class)
	sb.WriteString(`<div class="max-w-6xl mx-auto">`)
}

func sectionClose(sb *strings.Builder) {
	sb.WriteString(`</div></section>`)
}

func renderHeader(e *renderEnv, sb *strings.Builder) {
	sb.WriteString(`<nav class="sw-nav flex items-center justify-between px-6 py-5">`)
	fmt.Fprintf(sb, `<div %s>%s</div>`, e.heading("text-xl font-bold tracking-tight"), e.text("nav_title"))
	sb.WriteString(`<div class="hidden md:flex gap-6 text-sm opacity-70">`)
	for _, s := range e.r.cfg.Structure {
		if s == site.SectionHero {
			continue
		}
		fmt.Fprintf(sb, `<a href="#%s">%s</a>`, s, escape(locale.SectionLabel(e.r.lang, s)))
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</nav>`)
}

func renderFeatures(e *renderEnv, sb *strings.Builder) {
	sectionOpen(sb, "features", "")
	fmt.Fprintf(sb, `<h2 %s>%s</h2>`, e.heading("text-3xl font-bold mb-12 text-center"), e.text("features_title"))
	sb.WriteString(`<div class="grid md:grid-cols-3 gap-8">`)
	for i := 1; i <= featureCount; i++ {
		sb.WriteString(`<div class="sw-card p-8 rounded-2xl" style="background-color:var(--sw-surface)">`)
		fmt.Fprintf(sb, `<div class="w-12 h-12 rounded-xl mb-6" %s></div>`, e.accent("background-color"))
		fmt.Fprintf(sb, `<h3 %s>%s</h3>`, e.heading("text-xl font-bold mb-2"), e.text(fmt.Sprintf("feature_%d_title", i)))
		fmt.Fprintf(sb, `<p %s>%s</p>`, e.body("opacity-70"), e.text(fmt.Sprintf("feature_%d_desc", i)))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	sectionClose(sb)
}

func renderAbout(e *renderEnv, sb *strings.Builder) {
	sectionOpen(sb, "about", "")
	sb.WriteString(`<div class="grid md:grid-cols-2 gap-12 items-center">`)
	sb.WriteString(`<div class="rounded-2xl overflow-hidden">`)
	e.image(sb, "about", e.r.Image("about"), e.r.Text("about_title"), "w-full h-full object-cover")
	sb.WriteString(`</div>`)
	sb.WriteString(`<div>`)
	fmt.Fprintf(sb, `<h2 %s>%s</h2>`, e.heading("text-4xl font-bold"), e.text("about_title"))
	fmt.Fprintf(sb, `<p %s>%s</p>`, e.body("mt-6 text-lg opacity-70 leading-relaxed"), e.text("about_desc"))
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)
	sectionClose(sb)
}

func renderServices(e *renderEnv, sb *strings.Builder) {
	sectionOpen(sb, "services", "")
	fmt.Fprintf(sb, `<h2 %s>%s</h2>`, e.heading("text-3xl font-bold mb-12"), e.text("services_title"))
	sb.WriteString(`<div class="grid md:grid-cols-3 gap-8">`)
	for i := 1; i <= serviceCount; i++ {
		sb.WriteString(`<div class="sw-card border-t-2 pt-6" style="border-color:var(--sw-accent)">`)
		fmt.Fprintf(sb, `<div class="text-sm font-mono opacity-50 mb-4">0%d</div>`, i)
		fmt.Fprintf(sb, `<h3 %s>%s</h3>`, e.heading("text-xl font-bold mb-2"), e.text(fmt.Sprintf("service_%d_title", i)))
		fmt.Fprintf(sb, `<p %s>%s</p>`, e.body("opacity-70"), e.text(fmt.Sprintf("service_%d_desc", i)))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	sectionClose(sb)
}

func renderGallery(e *renderEnv, sb *strings.Builder) {
	sectionOpen(sb, "gallery", "")
	fmt.Fprintf(sb, `<h2 %s>%s</h2>`, e.heading("text-3xl font-bold mb-12"), e.text("gallery_title"))
	sb.WriteString(`<div class="grid grid-cols-2 md:grid-cols-4 gap-4">`)
	for i := 1; i <= galleryCount; i++ {
		ctx := fmt.Sprintf("gallery %d", i)
		sb.WriteString(`<div class="aspect-square rounded-xl overflow-hidden">`)
		e.image(sb, ctx, e.r.Image(ctx), ctx, "w-full h-full object-cover")
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	sectionClose(sb)
}

func renderTestimonials(e *renderEnv, sb *strings.Builder) {
	sectionOpen(sb, "testimonials", "")
	fmt.Fprintf(sb, `<h2 %s>%s</h2>`, e.heading("text-3xl font-bold mb-16 text-center"), e.text("testimonials_title"))
	sb.WriteString(`<div class="grid md:grid-cols-2 gap-8">`)
	for i := 1; i <= testimonialCount; i++ {
		sb.WriteString(`<figure class="sw-card p-8 rounded-2xl" style="background-color:var(--sw-surface)">`)
		fmt.Fprintf(sb, `<blockquote %s>&ldquo;%s&rdquo;</blockquote>`, e.body("text-lg italic opacity-80"), e.text(fmt.Sprintf("testimonial_%d_text", i)))
		fmt.Fprintf(sb, `<figcaption class="mt-6 font-bold text-sm">%s</figcaption>`, e.text(fmt.Sprintf("testimonial_%d_name", i)))
		sb.WriteString(`</figure>`)
	}
	sb.WriteString(`</div>`)
	sectionClose(sb)
}

func renderTeam(e *renderEnv, sb *strings.Builder) {
	sectionOpen(sb, "team", "text-center")
	fmt.Fprintf(sb, `<h2 %s>%s</h2>`, e.heading("text-3xl font-bold mb-16"), e.text("team_title"))
	sb.WriteString(`<div class="rounded-2xl overflow-hidden mb-12">`)
	e.image(sb, "team office", e.r.Image("team office"), e.r.Text("team_title"), "w-full h-64 object-cover")
	sb.WriteString(`</div>`)
	sb.WriteString(`<div class="grid grid-cols-2 md:grid-cols-4 gap-8">`)
	for i := 1; i <= teamCount; i++ {
		sb.WriteString(`<div>`)
		fmt.Fprintf(sb, `<img src="%s" alt="" class="w-24 h-24 mx-auto rounded-full object-cover mb-4" loading="lazy" />`, escape(imagery.Avatar(i)))
		fmt.Fprintf(sb, `<h3 class="font-bold">%s</h3>`, e.text(fmt.Sprintf("member_%d_name", i)))
		fmt.Fprintf(sb, `<p class="text-sm opacity-60">%s</p>`, e.text(fmt.Sprintf("member_%d_role", i)))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	sectionClose(sb)
}

func renderPricing(e *renderEnv, sb *strings.Builder) {
	sectionOpen(sb, "pricing", "")
	fmt.Fprintf(sb, `<h2 %s>%s</h2>`, e.heading("text-3xl font-bold mb-16 text-center"), e.text("pricing_title"))
	sb.WriteString(`<div class="grid md:grid-cols-3 gap-8">`)
	for i := 1; i <= pricingCount; i++ {
		popular := i == 2
		class := "sw-card relative p-8 rounded-2xl border"
		if popular {
			class += " shadow-xl scale-105"
		}
		fmt.Fprintf(sb, `<div class="%s">`, class)
		if popular {
			fmt.Fprintf(sb, `<div class="absolute top-0 left-1/2 -translate-x-1/2 -translate-y-1/2 text-white text-xs font-bold px-3 py-1 rounded-full" %s>%s</div>`,
				e.accent("background-color"), e.t("preview.popular"))
		}
		fmt.Fprintf(sb, `<h3 class="text-lg font-bold mb-2">%s</h3>`, e.text(fmt.Sprintf("plan_%d_name", i)))
		fmt.Fprintf(sb, `<div class="text-3xl font-bold mb-6">%s <span class="text-sm font-normal opacity-50">%s</span></div>`,
			e.text(fmt.Sprintf("price_%d", i)), e.t("preview.perMonth"))
		sb.WriteString(`<ul class="space-y-3 mb-8 text-sm opacity-70">`)
		for j := 1; j <= 3; j++ {
			fmt.Fprintf(sb, `<li>&check; %s</li>`, e.t("preview.planFeature", j))
		}
		sb.WriteString(`</ul>`)
		fmt.Fprintf(sb, `<button type="button" class="w-full py-3 rounded-lg font-bold text-sm">%s</button>`, e.t("preview.selectPlan"))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	sectionClose(sb)
}

func renderFAQ(e *renderEnv, sb *strings.Builder) {
	sectionOpen(sb, "faq", "")
	sb.WriteString(`<div class="max-w-3xl mx-auto">`)
	fmt.Fprintf(sb, `<h2 %s>%s</h2>`, e.heading("text-3xl font-bold mb-12 text-center"), e.text("faq_title"))
	for i := 1; i <= faqCount; i++ {
		sb.WriteString(`<div class="border-b py-6">`)
		fmt.Fprintf(sb, `<h3 class="font-bold text-lg mb-2">%s</h3>`, e.text(fmt.Sprintf("faq_%d_q", i)))
		fmt.Fprintf(sb, `<p %s>%s</p>`, e.body("opacity-70"), e.text(fmt.Sprintf("faq_%d_a", i)))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	sectionClose(sb)
}

func renderBlog(e *renderEnv, sb *strings.Builder) {
	sectionOpen(sb, "blog", "")
	sb.WriteString(`<div class="flex justify-between items-end mb-12">`)
	fmt.Fprintf(sb, `<h2 %s>%s</h2>`, e.heading("text-3xl font-bold"), e.text("blog_title"))
	fmt.Fprintf(sb, `<a href="#blog" class="text-sm font-bold border-b border-current pb-1">%s</a>`, e.t("preview.blogViewAll"))
	sb.WriteString(`</div>`)
	sb.WriteString(`<div class="grid md:grid-cols-3 gap-8">`)
	for i := 1; i <= blogCount; i++ {
		ctx := fmt.Sprintf("blog %d", i)
		sb.WriteString(`<article>`)
		sb.WriteString(`<div class="aspect-video rounded-xl overflow-hidden mb-4">`)
		e.image(sb, ctx, e.r.Image(ctx), e.r.Text(fmt.Sprintf("blog_%d_title", i)), "w-full h-full object-cover")
		sb.WriteString(`</div>`)
		fmt.Fprintf(sb, `<div class="text-xs font-bold opacity-50 mb-2 uppercase">%s</div>`, e.t("preview.blogCategory"))
		fmt.Fprintf(sb, `<h3 %s>%s</h3>`, e.heading("text-xl font-bold mb-2"), e.text(fmt.Sprintf("blog_%d_title", i)))
		fmt.Fprintf(sb, `<p class="text-sm opacity-70">%s</p>`, e.text(fmt.Sprintf("blog_%d_excerpt", i)))
		sb.WriteString(`</article>`)
	}
	sb.WriteString(`</div>`)
	sectionClose(sb)
}

func renderNewsletter(e *renderEnv, sb *strings.Builder) {
	fmt.Fprintf(sb, `<section id="newsletter" class="sw-section px-6 py-20 text-white" %s>`, e.accent("background-color"))
	sb.WriteString(`<div class="max-w-2xl mx-auto text-center">`)
	fmt.Fprintf(sb, `<h2 %s>%s</h2>`, e.heading("text-3xl font-bold"), e.text("newsletter_title"))
	fmt.Fprintf(sb, `<p %s>%s</p>`, e.body("mt-4 opacity-80"), e.text("newsletter_desc"))
	sb.WriteString(`<div class="mt-8 flex gap-2 max-w-md mx-auto">`)
	sb.WriteString(`<input type="email" class="flex-1 px-4 py-3 rounded-md text-black" placeholder="email@example.com" disabled />`)
	fmt.Fprintf(sb, `<button type="button" class="px-6 py-3 bg-white text-black font-bold rounded-md">%s</button>`, e.text("newsletter_btn"))
	sb.WriteString(`</div>`)
	sb.WriteString(`</div></section>`)
}

func renderContact(e *renderEnv, sb *strings.Builder) {
	sectionOpen(sb, "contact", "")
	sb.WriteString(`<div class="max-w-xl mx-auto text-center">`)
	fmt.Fprintf(sb, `<h2 %s>%s</h2>`, e.heading("text-4xl font-bold mb-10"), e.text("contact_title"))
	sb.WriteString(`<form class="space-y-4 text-start" onsubmit="return false">`)
	fmt.Fprintf(sb, `<input type="text" class="w-full px-4 py-3 rounded-md border" placeholder="%s" disabled />`, e.t("preview.contactName"))
	fmt.Fprintf(sb, `<input type="email" class="w-full px-4 py-3 rounded-md border" placeholder="%s" disabled />`, e.t("preview.contactEmail"))
	fmt.Fprintf(sb, `<textarea rows="4" class="w-full px-4 py-3 rounded-md border" placeholder="%s" disabled></textarea>`, e.t("preview.contactMessage"))
	fmt.Fprintf(sb, `<button type="button" class="w-full py-3 rounded-md text-white font-bold" %s>%s</button>`, e.accent("background-color"), e.text("contact_btn"))
	sb.WriteString(`</form>`)
	sb.WriteString(`</div>`)
	sectionClose(sb)
}

var socialNetworks = []struct{ key, label string }{
	{"social_twitter", "Twitter"},
	{"social_instagram", "Instagram"},
	{"social_linkedin", "LinkedIn"},
}

func renderFooter(e *renderEnv, sb *strings.Builder) {
	sb.WriteString(`<footer class="sw-footer px-6 py-16 border-t">`)
	sb.WriteString(`<div class="max-w-6xl mx-auto grid md:grid-cols-3 gap-8">`)
	sb.WriteString(`<div class="md:col-span-2">`)
	fmt.Fprintf(sb, `<div %s>%s</div>`, e.heading("text-xl font-bold mb-4"), e.text("nav_title"))
	fmt.Fprintf(sb, `<p class="text-sm opacity-60 max-w-sm">%s</p>`, e.text("footer_desc"))
	sb.WriteString(`</div>`)
	sb.WriteString(`<div class="flex gap-4 text-sm">`)
	for _, n := range socialNetworks {
		fmt.Fprintf(sb, `<a href="%s" rel="noopener">%s</a>`, link(e.r.Text(n.key)), n.label)
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)
	fmt.Fprintf(sb, `<div class="max-w-6xl mx-auto mt-12 text-xs opacity-50">%s</div>`, e.text("footer_text"))
	sb.WriteString(`</footer>`)
}
