package website

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/gabrielmiguelok/sitewizard/pkg/router"
)

// RenderHead generates the <head> section. Every script carries nonce so
// that it passes the Content-Security-Policy set by the router.
func RenderHead(cfg PageConfig, nonce, customCSS string) string {
	var sb strings.Builder

	themeColor := cfg.ThemeColor
	if themeColor == "" {
		themeColor = Colors["primary"]
	}

	sb.WriteString("<head>\n")

	sb.WriteString(`<meta charset="UTF-8">` + "\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(cfg.Title)))

	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if len(cfg.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf(`<meta name="keywords" content="%s">`+"\n", html.EscapeString(strings.Join(cfg.Keywords, ", "))))
	}
	if cfg.URL != "" {
		sb.WriteString(fmt.Sprintf(`<link rel="canonical" href="%s">`+"\n", html.EscapeString(cfg.URL)))
	}
	sb.WriteString(fmt.Sprintf(`<meta name="theme-color" content="%s">`+"\n", html.EscapeString(themeColor)))

	sb.WriteString(renderOpenGraph(cfg))
	sb.WriteString(renderJSONLD(cfg, nonce))

	if cfg.Favicon != "" {
		sb.WriteString(fmt.Sprintf(`<link rel="icon" href="%s">`+"\n", html.EscapeString(cfg.Favicon)))
	} else {
		sb.WriteString(`<link rel="icon" href="data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='.9em' font-size='90'>✦</text></svg>">` + "\n")
	}

	sb.WriteString(`<link rel="preconnect" href="https://fonts.googleapis.com">` + "\n")
	sb.WriteString(`<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>` + "\n")

	for _, src := range cfg.Scripts {
		sb.WriteString(scriptTag(src, nonce, false))
	}
	if cfg.ClientScript != "" {
		sb.WriteString(scriptTag(cfg.ClientScript, nonce, true))
	}

	sb.WriteString("<style>\n")
	sb.WriteString(RenderStyles())
	if customCSS != "" {
		sb.WriteString("\n")
		sb.WriteString(customCSS)
	}
	sb.WriteString("\n</style>\n")

	sb.WriteString("</head>\n")
	return sb.String()
}

func scriptTag(src, nonce string, deferred bool) string {
	attrs := ""
	if nonce != "" {
		attrs += fmt.Sprintf(` nonce="%s"`, html.EscapeString(nonce))
	}
	if deferred {
		attrs += " defer"
	}
	return fmt.Sprintf(`<script src="%s"%s></script>`+"\n", html.EscapeString(src), attrs)
}

func renderOpenGraph(cfg PageConfig) string {
	var sb strings.Builder

	sb.WriteString(`<meta property="og:type" content="website">` + "\n")
	if cfg.Title != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:title" content="%s">`+"\n", html.EscapeString(cfg.Title)))
	}
	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if cfg.URL != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:url" content="%s">`+"\n", html.EscapeString(cfg.URL)))
	}
	if cfg.OGImage != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:image" content="%s">`+"\n", html.EscapeString(cfg.OGImage)))
	}
	sb.WriteString(fmt.Sprintf(`<meta property="og:locale" content="%s">`+"\n", html.EscapeString(language(cfg))))
	return sb.String()
}

func renderJSONLD(cfg PageConfig, nonce string) string {
	jsonLD := fmt.Sprintf(`{
  "@context": "https://schema.org",
  "@type": "WebApplication",
  "name": %q,
  "description": %q,
  "url": %q,
  "applicationCategory": "DesignApplication",
  "operatingSystem": "Any"
}`, cfg.Title, cfg.Description, cfg.URL)

	attr := ""
	if nonce != "" {
		attr = fmt.Sprintf(` nonce="%s"`, html.EscapeString(nonce))
	}
	return fmt.Sprintf(`<script type="application/ld+json"%s>%s</script>`+"\n", attr, jsonLD)
}

func language(cfg PageConfig) string {
	if cfg.Language == "" {
		return "en"
	}
	return cfg.Language
}

// RenderDocument wraps content in a complete HTML document.
func RenderDocument(cfg PageConfig, nonce, customCSS, bodyContent string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="%s">
%s<body class="sw-body">
%s
</body>
</html>`, html.EscapeString(language(cfg)), RenderHead(cfg, nonce, customCSS), bodyContent)
}

// Layout returns a router layout that places the first render of a live
// component in the page shell, using the request's CSP nonce.
func Layout(cfg PageConfig) router.Layout {
	return func(ctx context.Context, w io.Writer, content string) error {
		_, err := io.WriteString(w, RenderDocument(cfg, router.GetCSPNonce(ctx), "", content))
		return err
	}
}
