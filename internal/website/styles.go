package website

import (
	"fmt"
	"sort"
	"strings"
)

// Colors is the palette of the wizard chrome. The generated site uses its
// own palette from the theme package.
var Colors = map[string]string{
	"bg":        "#FAFAF9",
	"bgAlt":     "#FFFFFF",
	"bgHover":   "#F5F5F4",
	"text":      "#1C1917",
	"textMuted": "#57534E",
	"textDim":   "#78716C",

	"primary":       "#4F46E5",
	"primaryBright": "#6366F1",
	"accent":        "#F59E0B",

	"success": "#059669",
	"danger":  "#DC2626",

	"border":      "#E7E5E4",
	"borderLight": "#F5F5F4",
}

// FontFamily is the system font stack of the chrome.
var FontFamily = `system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif`

// StyleOption allows customizing the generated CSS
type StyleOption func(*styleConfig)

type styleConfig struct {
	customColors      map[string]string
	includeReset      bool
	includeAnimations bool
}

// WithCustomColors overrides default colors
func WithCustomColors(colors map[string]string) StyleOption {
	return func(cfg *styleConfig) {
		for k, v := range colors {
			cfg.customColors[k] = v
		}
	}
}

// WithReset includes a CSS reset
func WithReset(include bool) StyleOption {
	return func(cfg *styleConfig) {
		cfg.includeReset = include
	}
}

// WithAnimations includes animation definitions
func WithAnimations(include bool) StyleOption {
	return func(cfg *styleConfig) {
		cfg.includeAnimations = include
	}
}

// RenderStyles generates the stylesheet of the wizard chrome.
func RenderStyles(opts ...StyleOption) string {
	cfg := &styleConfig{
		customColors:      make(map[string]string),
		includeReset:      true,
		includeAnimations: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	colors := make(map[string]string, len(Colors))
	for k, v := range Colors {
		colors[k] = v
	}
	for k, v := range cfg.customColors {
		colors[k] = v
	}

	var sb strings.Builder
	if cfg.includeReset {
		sb.WriteString(cssReset())
	}
	sb.WriteString(cssVariables(colors))
	sb.WriteString(cssBase())
	sb.WriteString(cssLayout())
	sb.WriteString(cssControls())
	sb.WriteString(cssOptions())
	sb.WriteString(cssFrame())
	sb.WriteString(cssPanels())
	if cfg.includeAnimations {
		sb.WriteString(cssAnimations())
	}
	sb.WriteString(cssResponsive())
	return sb.String()
}

func cssReset() string {
	return `
*,*::before,*::after{box-sizing:border-box}
html{-webkit-text-size-adjust:100%;tab-size:4}
body{margin:0;line-height:1.5;-webkit-font-smoothing:antialiased}
img{display:block;max-width:100%}
input,button,textarea,select{font:inherit}
`
}

// cssVariables emits the palette sorted by name so the output is stable.
func cssVariables(colors map[string]string) string {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]string, 0, len(names))
	for _, name := range names {
		vars = append(vars, fmt.Sprintf("--sw-%s:%s", name, colors[name]))
	}
	return fmt.Sprintf(":root{%s;--sw-font:%s}\n", strings.Join(vars, ";"), FontFamily)
}

func cssBase() string {
	return `
.sw-body{font-family:var(--sw-font);background:var(--sw-bg);color:var(--sw-text);min-height:100vh}
.sw-title{font-size:clamp(1.75rem,4vw,3rem);font-weight:800;letter-spacing:-0.02em;line-height:1.1;margin:0 0 .5rem}
.sw-subtitle{color:var(--sw-textMuted);margin:0 0 1.5rem}
.sw-label{font-size:.75rem;font-weight:700;text-transform:uppercase;letter-spacing:.08em;color:var(--sw-textDim);margin:1.5rem 0 .75rem}
.sw-empty{grid-column:1/-1;color:var(--sw-textDim);font-style:italic}
`
}

func cssLayout() string {
	return `
.sw-app{display:grid;grid-template-columns:1fr;grid-template-areas:"chrome" "aside" "main" "nav";min-height:100vh}
.sw-fonts{display:none}
.sw-chrome{grid-area:chrome;position:sticky;top:0;z-index:50;background:var(--sw-bgAlt);border-bottom:1px solid var(--sw-border)}
.sw-chrome>.sw-region{display:flex;align-items:center;gap:1rem;padding:.75rem 1.25rem}
.sw-main{grid-area:main;padding:1.5rem;min-width:0}
.sw-aside{grid-area:aside;padding:1.5rem;background:var(--sw-bgAlt);border-bottom:1px solid var(--sw-border)}
.sw-aside:empty{display:none}
.sw-nav{grid-area:nav;position:sticky;bottom:0;background:var(--sw-bgAlt);border-top:1px solid var(--sw-border)}
.sw-nav:empty{display:none}
.sw-nav>.sw-region{display:flex;justify-content:space-between;padding:.75rem 1.25rem}
.sw-logo{font-weight:900;letter-spacing:.1em;background:none;border:0;cursor:pointer}
.sw-progress{color:var(--sw-textDim);font-size:.875rem}
.sw-lang{margin-inline-start:auto;background:none;border:1px solid var(--sw-border);border-radius:9999px;padding:.25rem .75rem;cursor:pointer}
.sw-toolbar{display:flex;align-items:center;gap:.5rem;flex-wrap:wrap}
.sw-url{font-family:ui-monospace,monospace;font-size:.8rem;color:var(--sw-textDim)}
.sw-saved{font-size:.75rem;color:var(--sw-success)}
.sw-published{color:var(--sw-success);font-weight:600}
`
}

func cssControls() string {
	return `
.sw-btn{display:inline-flex;align-items:center;justify-content:center;gap:.5rem;padding:.6rem 1.1rem;border-radius:.5rem;border:1px solid var(--sw-border);background:var(--sw-bgAlt);color:var(--sw-text);font-weight:600;cursor:pointer;min-height:2.75rem;transition:all .15s ease}
.sw-btn:hover{background:var(--sw-bgHover)}
.sw-btn:disabled{opacity:.6;cursor:wait}
.sw-btn-primary{background:var(--sw-primary);border-color:var(--sw-primary);color:#fff}
.sw-btn-primary:hover{background:var(--sw-primaryBright)}
.sw-btn-lg{padding:1rem 2rem;font-size:1.125rem}
.sw-icon-btn{background:none;border:0;font-size:1.5rem;line-height:1;cursor:pointer;color:var(--sw-textDim)}
.sw-input{width:100%;padding:.7rem .9rem;border:1px solid var(--sw-border);border-radius:.5rem;background:var(--sw-bgAlt)}
.sw-input:focus{outline:2px solid var(--sw-primary);outline-offset:1px}
.sw-input-lg{font-size:1.25rem;padding:1rem 1.25rem}
.sw-search{position:relative}
.sw-spinner{position:absolute;inset-inline-end:1rem;top:50%;transform:translateY(-50%);font-size:.75rem;color:var(--sw-textDim)}
.sw-field{display:flex;flex-direction:column;gap:.35rem;margin-top:1rem;font-size:.875rem}
.sw-chip{padding:.35rem .8rem;border-radius:9999px;border:1px solid var(--sw-border);background:var(--sw-bgAlt);cursor:pointer;font-size:.8rem}
.sw-chip.sw-active{background:var(--sw-text);border-color:var(--sw-text);color:#fff}
.sw-chips,.sw-tabs{display:flex;flex-wrap:wrap;gap:.4rem;margin:.75rem 0}
`
}

func cssOptions() string {
	return `
.sw-grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(10rem,1fr));gap:.75rem}
.sw-list{display:flex;flex-direction:column;gap:.5rem}
.sw-option{display:flex;align-items:center;gap:.5rem;text-align:start;padding:.8rem 1rem;border:1px solid var(--sw-border);border-radius:.75rem;background:var(--sw-bgAlt);cursor:pointer;transition:border-color .15s ease}
.sw-option:hover{border-color:var(--sw-textDim)}
.sw-option.sw-selected{border-color:var(--sw-primary);box-shadow:0 0 0 2px var(--sw-primary) inset}
.sw-option-custom{grid-column:1/-1;border-style:dashed}
.sw-swatch{width:1.25rem;height:1.25rem;border-radius:9999px;border:1px solid rgba(0,0,0,.08)}
.sw-font{flex-wrap:wrap}
.sw-font-sample{font-size:1.75rem}
.sw-landing{text-align:center;padding:4rem 1rem}
.sw-templates{padding:2rem 0}
.sw-card{border:1px solid var(--sw-border);border-radius:1rem;overflow:hidden;background:var(--sw-bgAlt);display:flex;flex-direction:column;gap:.5rem;padding-bottom:1rem}
.sw-card h3{margin:0 1rem}
.sw-card .sw-btn{margin:0 1rem}
.sw-template img{aspect-ratio:1;object-fit:cover}
`
}

func cssFrame() string {
	return `
.sw-frame{margin:0 auto;border:1px solid var(--sw-border);border-radius:.75rem;overflow:hidden;background:#fff;box-shadow:0 20px 50px rgba(0,0,0,.08);transition:max-width .3s ease}
.sw-device-desktop{max-width:100%}
.sw-device-mobile{max-width:390px}
.sw-frame-bar{padding:.5rem 1rem;font-size:.75rem;color:var(--sw-textDim);background:var(--sw-bgHover);border-bottom:1px solid var(--sw-border)}
.sw-frame-body{max-height:80vh;overflow:auto}
`
}

func cssPanels() string {
	return `
.sw-controls{display:flex;flex-direction:column;gap:.75rem}
.sw-edit-panel,.sw-library{display:flex;flex-direction:column;gap:.75rem}
.sw-edit-panel header,.sw-library header{display:flex;align-items:center;justify-content:space-between}
.sw-assets{display:grid;grid-template-columns:repeat(3,1fr);gap:.4rem}
.sw-asset{padding:0;border:2px solid transparent;border-radius:.5rem;overflow:hidden;cursor:pointer;background:none}
.sw-asset:hover{border-color:var(--sw-primary)}
.sw-asset img{aspect-ratio:1;object-fit:cover;width:100%}
`
}

func cssAnimations() string {
	return `
@keyframes sw-pulse{0%,100%{opacity:1}50%{opacity:.4}}
.sw-spinner,.sw-btn:disabled{animation:sw-pulse 1.2s infinite}
@media(prefers-reduced-motion:reduce){*{animation-duration:.01ms!important;animation-iteration-count:1!important;transition-duration:.01ms!important}}
`
}

func cssResponsive() string {
	return `
@media(min-width:1024px){
.sw-app{grid-template-columns:1fr 24rem;grid-template-areas:"chrome chrome" "main aside" "nav aside"}
.sw-app:has(.sw-aside:empty){grid-template-areas:"chrome chrome" "main main" "nav nav"}
.sw-aside{border-bottom:0;border-inline-start:1px solid var(--sw-border);position:sticky;top:3.5rem;height:calc(100vh - 3.5rem);overflow:auto}
.sw-main{padding:2rem 3rem}
}
`
}
