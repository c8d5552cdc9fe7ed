// Package imagery builds deterministic image URLs for preview placeholders
// and the asset library.
package imagery

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultStyle is used when neither a visual-style hint nor a topic is known.
const DefaultStyle = "modern minimalist"

const generatorBase = "https://image.pollinations.ai/prompt/"

// Size is an image size class in pixels.
type Size struct {
	Width  int
	Height int
}

var (
	sizeWide     = Size{Width: 1600, Height: 900}
	sizeStandard = Size{Width: 800, Height: 600}
	sizeSquare   = Size{Width: 600, Height: 600}
	sizeCard     = Size{Width: 600, Height: 400}
	sizeBand     = Size{Width: 1600, Height: 600}
)

// SizeFor returns the size class used for an image context.
func SizeFor(context string) Size {
	switch {
	case context == "hero":
		return sizeWide
	case strings.HasPrefix(context, "hero "):
		return sizeBand
	case strings.HasPrefix(context, "gallery"):
		return sizeSquare
	case strings.HasPrefix(context, "blog"):
		return sizeCard
	default:
		return sizeStandard
	}
}

// Request describes one placeholder image.
type Request struct {
	Style   string
	Context string
	Size    Size
	Seed    int
}

// Seed derives a stable seed from the site name and the image context.
func Seed(name, context string) int {
	return len(name) + len(context)
}

// Placeholder returns the generated-image URL for r. The same request always
// yields the same URL.
func Placeholder(r Request) string {
	style := strings.TrimSpace(r.Style)
	if style == "" {
		style = DefaultStyle
	}
	size := r.Size
	if size.Width == 0 || size.Height == 0 {
		size = SizeFor(r.Context)
	}
	prompt := strings.TrimSpace(style + " " + r.Context)
	return fmt.Sprintf("%s%s?width=%d&height=%d&nologo=true&seed=%d",
		generatorBase, url.PathEscape(prompt), size.Width, size.Height, r.Seed)
}

// Generated returns the URL for an image generated from a free-text prompt
// in the given visual style, as offered by the asset library.
func Generated(style, prompt string, seed int) string {
	return Placeholder(Request{
		Style:   style,
		Context: strings.TrimSpace(prompt),
		Size:    sizeStandard,
		Seed:    seed,
	})
}

// Stock returns the i-th stock photo URL for a keyword.
func Stock(keyword string, i int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s%d/400/400", url.PathEscape(keyword), i)
}

// Avatar returns the i-th team avatar URL.
func Avatar(i int) string {
	return fmt.Sprintf("https://i.pravatar.cc/300?img=%d", i+10)
}
