package wizard

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gabrielmiguelok/sitewizard/internal/imagery"
	"github.com/gabrielmiguelok/sitewizard/internal/locale"
	"github.com/gabrielmiguelok/sitewizard/internal/preview"
	"github.com/gabrielmiguelok/sitewizard/internal/site"
	"github.com/gabrielmiguelok/sitewizard/internal/theme"
	"github.com/gabrielmiguelok/sitewizard/pkg/core"
	"github.com/gabrielmiguelok/sitewizard/pkg/i18n"
)

// Page regions. Every render emits all of them, possibly empty, so the
// client always has a target for each slot diff.
const (
	SlotFonts  = "fonts"
	SlotChrome = "chrome"
	SlotMain   = "main"
	SlotAside  = "aside"
	SlotNav    = "nav"
)

// frame is the immutable input of one render.
type frame struct {
	step    Step
	lang    locale.Lang
	cfg     *site.Config
	busy    Busy
	suggest bool
	tr      *i18n.Translator
}

func (f *frame) t(key string, args ...any) string {
	return html.EscapeString(f.tr.TLocale(string(f.lang), key, args...))
}

// Render returns the wizard markup for the current state.
func (v *View) Render(ctx context.Context) core.Renderer {
	return core.RendererFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, v.renderHTML())
		return err
	})
}

func (v *View) renderHTML() string {
	f := &frame{
		step: v.ctrl.Step(),
		lang: v.ctrl.Lang(),
		cfg:  v.ctrl.Snapshot(),
		busy: v.ctrl.Busy(),
		tr:   v.tr,
	}
	if v.suggester != nil {
		f.suggest = v.suggester.Busy()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div id="sw-app" class="sw-app" data-live-view="%s">`, v.Name())

	fmt.Fprintf(&sb, `<div class="sw-fonts" data-slot="%s">%s</div>`, SlotFonts, v.fonts.Tag())
	slot(&sb, SlotChrome, "sw-chrome", f.lang, v.renderChrome(f))
	slot(&sb, SlotMain, "sw-main", f.lang, v.renderMain(f))
	slot(&sb, SlotAside, "sw-aside", f.lang, v.renderAside(f))
	slot(&sb, SlotNav, "sw-nav", f.lang, v.renderNav(f))

	sb.WriteString(`</div>`)
	return sb.String()
}

// slot writes one diffable region. An empty body leaves the region empty.
func slot(sb *strings.Builder, name, class string, lang locale.Lang, body string) {
	fmt.Fprintf(sb, `<div class="%s" data-slot="%s">`, class, name)
	if body != "" {
		fmt.Fprintf(sb, `<div class="sw-region" dir="%s" lang="%s">%s</div>`, lang.Dir(), lang, body)
	}
	sb.WriteString(`</div>`)
}

func (v *View) renderChrome(f *frame) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<button type="button" class="sw-logo" lv-click="%s">%s</button>`,
		EventHome, html.EscapeString(locale.For(f.lang).Brand))

	if f.step >= StepTopic && f.step <= StepFonts {
		fmt.Fprintf(&sb, `<span class="sw-progress">%s</span>`, f.t("step", f.step.ordinal(), questionSteps))
	}
	if f.step == StepDashboard {
		sb.WriteString(v.renderToolbar(f))
	}

	fmt.Fprintf(&sb, `<button type="button" class="sw-lang" lv-click="%s">%s</button>`, EventToggleLang, f.t("toggleLang"))
	return sb.String()
}

func (v *View) renderToolbar(f *frame) string {
	var sb strings.Builder
	sb.WriteString(`<div class="sw-toolbar">`)

	for _, d := range []string{DeviceDesktop, DeviceMobile} {
		fmt.Fprintf(&sb, `<button type="button" class="sw-chip%s" lv-click="%s" lv-value-device="%s">%s</button>`,
			active(v.device == d), EventSetDevice, d, f.t(d))
	}

	fmt.Fprintf(&sb, `<span class="sw-url">%s</span>`, html.EscapeString(SiteURL(f.cfg.Name)))
	if v.saved {
		fmt.Fprintf(&sb, `<span class="sw-saved">%s</span>`, f.t("saved"))
	}

	regen := f.t("regenerate")
	if f.busy.Regenerating {
		regen = f.t("loading")
	}
	fmt.Fprintf(&sb, `<button type="button" class="sw-btn" lv-click="%s"%s>%s</button>`,
		EventRegenerate, disabled(f.busy.Regenerating), regen)

	switch {
	case v.publisher.Publishing():
		fmt.Fprintf(&sb, `<button type="button" class="sw-btn sw-btn-primary" disabled>%s</button>`, f.t("publishing"))
	case v.published != nil:
		fmt.Fprintf(&sb, `<a class="sw-published" href="%s" target="_blank" rel="noopener">%s</a>`,
			html.EscapeString(v.published.URL), f.t("published"))
	default:
		fmt.Fprintf(&sb, `<button type="button" class="sw-btn sw-btn-primary" lv-click="%s">%s</button>`,
			EventPublish, f.t("editorPublish"))
	}

	sb.WriteString(`</div>`)
	return sb.String()
}

func (v *View) renderMain(f *frame) string {
	switch f.step {
	case StepLanding:
		return renderLanding(f)
	case StepTopic:
		return v.renderTopic(f)
	case StepGoals:
		return renderGoals(f)
	case StepDashboard:
		return v.renderDashboard(f)
	default:
		return renderFrame(f, preview.Options{Config: f.cfg, Lang: f.lang}, DeviceDesktop)
	}
}

func (v *View) renderAside(f *frame) string {
	switch f.step {
	case StepName:
		return sidebar(f, "nameTitle", "nameSubtitle", renderNameControls(f))
	case StepStructure:
		return sidebar(f, "structureTitle", "structureSubtitle", renderStructureControls(f))
	case StepPalette:
		return sidebar(f, "paletteTitle", "paletteSubtitle", renderPaletteControls(f))
	case StepFonts:
		return sidebar(f, "fontTitle", "fontSubtitle", renderFontControls(f))
	case StepDashboard:
		if v.library.IsOpen() {
			return v.renderLibrary(f)
		}
		if section := v.editor.Active(); section != "" {
			return preview.RenderEditPanel(preview.NewResolver(f.cfg, f.lang), section)
		}
	}
	return ""
}

func (v *View) renderNav(f *frame) string {
	if f.step < StepTopic || f.step > StepFonts {
		return ""
	}
	label := f.t("next")
	if f.step == StepFonts {
		label = f.t("finish")
	}
	if f.busy.Advancing {
		label = f.t("loading")
	}
	return fmt.Sprintf(`<button type="button" class="sw-btn" lv-click="%s">%s</button>`, EventBack, f.t("back")) +
		fmt.Sprintf(`<button type="button" class="sw-btn sw-btn-primary" lv-click="%s"%s>%s</button>`,
			EventNext, disabled(f.busy.Advancing), label)
}

func renderLanding(f *frame) string {
	var sb strings.Builder
	sb.WriteString(`<section class="sw-landing">`)
	fmt.Fprintf(&sb, `<h1 class="sw-title">%s</h1>`, f.t("landingTitle"))
	fmt.Fprintf(&sb, `<p class="sw-subtitle">%s</p>`, f.t("landingSubtitle"))
	fmt.Fprintf(&sb, `<button type="button" class="sw-btn sw-btn-primary sw-btn-lg" lv-click="%s">%s</button>`,
		EventStart, f.t("landingCTA"))
	sb.WriteString(`</section>`)

	sb.WriteString(`<section class="sw-templates">`)
	fmt.Fprintf(&sb, `<h2>%s</h2><p>%s</p>`, f.t("landingTemplatesTitle"), f.t("landingTemplatesSubtitle"))
	sb.WriteString(`<div class="sw-grid">`)
	for i, id := range locale.TemplateIDs {
		fmt.Fprintf(&sb, `<div class="sw-card sw-template"><img src="%s" alt="" loading="lazy" />`,
			html.EscapeString(imagery.Stock(id, i)))
		fmt.Fprintf(&sb, `<h3>%s</h3>`, html.EscapeString(locale.TemplateName(f.lang, id)))
		fmt.Fprintf(&sb, `<button type="button" class="sw-btn" lv-click="%s" lv-value-template="%s">%s</button>`,
			EventUseTemplate, id, f.t("useTemplate"))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div></section>`)
	return sb.String()
}

func (v *View) renderTopic(f *frame) string {
	var sb strings.Builder
	heading(&sb, f, "topicTitle", "topicSubtitle")

	icon := ""
	if f.suggest {
		icon = fmt.Sprintf(`<span class="sw-spinner" role="status">%s</span>`, f.t("loading"))
	}
	fmt.Fprintf(&sb, `<div class="sw-search">%s<input id="sw-topic" type="text" class="sw-input sw-input-lg" value="%s" placeholder="%s" autocomplete="off" lv-input="%s" /></div>`,
		icon, html.EscapeString(v.query), f.t("searchPlaceholder"), EventTopicInput)

	searching := utf8.RuneCountInString(v.query) > v.minQueryLength()
	topics := locale.For(f.lang).Topics
	title := "popularTopics"
	if searching && len(v.suggestions) > 0 {
		topics = v.suggestions
		title = "suggestedTopics"
	}

	fmt.Fprintf(&sb, `<h2 class="sw-label">%s</h2><div class="sw-grid">`, f.t(title))
	if v.query != "" {
		fmt.Fprintf(&sb, `<button type="button" class="sw-option sw-option-custom" lv-click="%s" lv-value-topic="%s"><small>%s</small> &quot;%s&quot;</button>`,
			EventPickTopic, html.EscapeString(v.query), f.t("useCustomTopic"), html.EscapeString(v.query))
	}
	for _, topic := range topics {
		fmt.Fprintf(&sb, `<button type="button" class="sw-option%s" lv-click="%s" lv-value-topic="%s">%s</button>`,
			selected(f.cfg.Topic == topic), EventPickTopic, html.EscapeString(topic), html.EscapeString(topic))
	}
	if searching && len(v.suggestions) == 0 && !f.suggest {
		fmt.Fprintf(&sb, `<p class="sw-empty">%s</p>`, f.t("noSuggestions"))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func (v *View) minQueryLength() int {
	if v.opts.MinQueryLength > 0 {
		return v.opts.MinQueryLength
	}
	return DefaultMinQueryLength
}

func renderGoals(f *frame) string {
	var sb strings.Builder
	heading(&sb, f, "goalsTitle", "goalsSubtitle")
	sb.WriteString(`<div class="sw-grid">`)
	for _, goal := range locale.For(f.lang).Goals {
		fmt.Fprintf(&sb, `<button type="button" class="sw-option%s" lv-click="%s" lv-value-goal="%s" aria-pressed="%t">%s</button>`,
			selected(f.cfg.HasGoal(goal)), EventToggleGoal, html.EscapeString(goal), f.cfg.HasGoal(goal), html.EscapeString(goal))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func renderNameControls(f *frame) string {
	label := f.t("generateAI")
	if f.busy.Naming {
		label = f.t("loading")
	}
	return fmt.Sprintf(`<input id="sw-name" type="text" class="sw-input" value="%s" placeholder="%s" lv-input="%s" />`,
		html.EscapeString(f.cfg.Name), f.t("namePlaceholder"), EventSetName) +
		fmt.Sprintf(`<button type="button" class="sw-btn" lv-click="%s"%s>%s</button>`,
			EventGenerateName, disabled(f.busy.Naming), label)
}

func renderStructureControls(f *frame) string {
	var sb strings.Builder
	sb.WriteString(`<div class="sw-list">`)
	for _, s := range site.Sections() {
		on := f.cfg.HasSection(s)
		fmt.Fprintf(&sb, `<button type="button" class="sw-option%s" lv-click="%s" lv-value-section="%s" aria-pressed="%t">%s</button>`,
			selected(on), EventToggleSection, s, on, html.EscapeString(locale.SectionLabel(f.lang, s)))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func renderPaletteControls(f *frame) string {
	current := theme.ResolvePalette(f.cfg.Palette).ID
	var sb strings.Builder
	sb.WriteString(`<div class="sw-list">`)
	for _, p := range theme.Palettes() {
		fmt.Fprintf(&sb, `<button type="button" class="sw-option sw-palette%s" lv-click="%s" lv-value-palette="%s">`,
			selected(p.ID == current), EventSetPalette, html.EscapeString(p.ID))
		for _, c := range p.Colors {
			fmt.Fprintf(&sb, `<span class="sw-swatch" style="background:%s"></span>`, html.EscapeString(c))
		}
		fmt.Fprintf(&sb, `<span>%s</span></button>`, html.EscapeString(p.Name))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func renderFontControls(f *frame) string {
	current := theme.ResolveFontPair(f.cfg.FontPair).ID
	var sb strings.Builder
	sb.WriteString(`<div class="sw-list">`)
	for _, p := range theme.FontPairs() {
		fmt.Fprintf(&sb, `<button type="button" class="sw-option sw-font%s" lv-click="%s" lv-value-font="%s">`,
			selected(p.ID == current && f.cfg.CustomFont == ""), EventSetFontPair, html.EscapeString(p.ID))
		fmt.Fprintf(&sb, `<span class="sw-font-sample %s">Ag</span><span class="%s">The quick brown fox jumps over the lazy dog.</span><small>%s</small></button>`,
			html.EscapeString(p.Heading), html.EscapeString(p.Body), html.EscapeString(p.Name))
	}
	sb.WriteString(`</div>`)
	fmt.Fprintf(&sb, `<label class="sw-field"><span>%s</span><input id="sw-custom-font-input" type="text" class="sw-input" value="%s" placeholder="%s" lv-change="%s" /></label>`,
		f.t("customFontLabel"), html.EscapeString(f.cfg.CustomFont), f.t("customFontPlaceholder"), EventSetCustomFont)
	return sb.String()
}

func (v *View) renderDashboard(f *frame) string {
	var sb strings.Builder
	heading(&sb, f, "dashboardTitle", "dashboardSubtitle")
	sb.WriteString(renderFrame(f, preview.Options{
		Config:        f.cfg,
		Lang:          f.lang,
		Editable:      true,
		ActiveSection: v.editor.Active(),
	}, v.device))
	return sb.String()
}

func (v *View) renderLibrary(f *frame) string {
	lib := &v.library
	var sb strings.Builder
	sb.WriteString(`<aside class="sw-library">`)
	fmt.Fprintf(&sb, `<header><h3>%s</h3><button type="button" class="sw-icon-btn" lv-click="%s" aria-label="%s">&times;</button></header>`,
		f.t("libEditing", lib.Target), EventCloseLibrary, f.t("close"))

	sb.WriteString(`<nav class="sw-tabs">`)
	for _, tab := range []struct {
		id  AssetTab
		key string
	}{{TabPhotos, "libPhotos"}, {TabAI, "libAI"}} {
		fmt.Fprintf(&sb, `<button type="button" class="sw-chip%s" lv-click="%s" lv-value-tab="%s">%s</button>`,
			active(lib.Tab == tab.id), EventLibraryTab, tab.id, f.t(tab.key))
	}
	sb.WriteString(`</nav>`)

	if lib.Tab == TabAI {
		fmt.Fprintf(&sb, `<textarea id="sw-lib-prompt" class="sw-input" rows="3" placeholder="%s" lv-input="%s">%s</textarea>`,
			f.t("libPromptPlaceholder"), EventLibraryPrompt, html.EscapeString(lib.Prompt))
		fmt.Fprintf(&sb, `<button type="button" class="sw-btn sw-btn-primary" lv-click="%s">%s</button>`, EventLibraryGen, f.t("libGenerate"))
		if lib.Generated != "" {
			assetButton(&sb, lib.Generated)
		}
	} else {
		sb.WriteString(`<div class="sw-chips">`)
		for _, c := range StockCategories {
			fmt.Fprintf(&sb, `<button type="button" class="sw-chip%s" lv-click="%s" lv-value-category="%s">%s</button>`,
				active(lib.Category == c.ID), EventLibraryCat, c.ID, html.EscapeString(c.Label))
		}
		sb.WriteString(`</div><div class="sw-assets">`)
		for _, url := range lib.Photos() {
			assetButton(&sb, url)
		}
		sb.WriteString(`</div>`)
	}

	sb.WriteString(`</aside>`)
	return sb.String()
}

func assetButton(sb *strings.Builder, url string) {
	fmt.Fprintf(sb, `<button type="button" class="sw-asset" lv-click="%s" lv-value-url="%s"><img src="%s" alt="" loading="lazy" /></button>`,
		EventSelectAsset, html.EscapeString(url), html.EscapeString(url))
}

func renderFrame(f *frame, opts preview.Options, device string) string {
	title := f.cfg.Name
	if title == "" {
		title = f.tr.TLocale(string(f.lang), "genai.untitled")
	}
	return fmt.Sprintf(`<div class="sw-frame sw-device-%s"><div class="sw-frame-bar"><span>%s</span></div><div class="sw-frame-body">%s</div></div>`,
		device, html.EscapeString(title), preview.Render(opts))
}

func sidebar(f *frame, titleKey, subtitleKey, controls string) string {
	var sb strings.Builder
	heading(&sb, f, titleKey, subtitleKey)
	sb.WriteString(`<div class="sw-controls">`)
	sb.WriteString(controls)
	sb.WriteString(`</div>`)
	return sb.String()
}

func heading(sb *strings.Builder, f *frame, titleKey, subtitleKey string) {
	fmt.Fprintf(sb, `<h1 class="sw-title">%s</h1><p class="sw-subtitle">%s</p>`, f.t(titleKey), f.t(subtitleKey))
}

func disabled(on bool) string {
	if on {
		return " disabled"
	}
	return ""
}

func selected(on bool) string {
	if on {
		return " sw-selected"
	}
	return ""
}

func active(on bool) string {
	if on {
		return " sw-active"
	}
	return ""
}
