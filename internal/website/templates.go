// Package website renders the HTML page that hosts the live wizard: the
// document head, the stylesheet of the wizard chrome and the scripts that
// connect the page to the server.
package website

// Default asset locations.
const (
	// ClientScript is the path the live client is served under.
	ClientScript = "/_live/sitewizard.js"
	// TailwindCDN provides the utility classes used by the preview.
	TailwindCDN = "https://cdn.tailwindcss.com"
)

// PageConfig defines the page shell and its SEO metadata.
type PageConfig struct {
	// Title is the page title (shown in browser tab and search results)
	Title string
	// Description is the meta description for SEO
	Description string
	// URL is the canonical URL of the page
	URL string
	// Keywords are SEO keywords for the page
	Keywords []string
	// OGImage is the Open Graph image URL (for social sharing)
	OGImage string
	// Language is the document language (default: "en")
	Language string
	// ThemeColor is the mobile browser theme color
	ThemeColor string
	// Favicon is the path to the favicon
	Favicon string

	// Scripts are external scripts loaded before the client.
	Scripts []string
	// ClientScript is the live client path; empty disables live updates.
	ClientScript string
}

// DefaultPageConfig returns the shell used by the wizard.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Title:        "AEMAM | AI Website Builder",
		Description:  "The AI-powered website builder that turns your ideas into a masterpiece in seconds.",
		Keywords:     []string{"website builder", "ai", "landing page", "no code"},
		Language:     "en",
		ThemeColor:   Colors["primary"],
		Scripts:      []string{TailwindCDN},
		ClientScript: ClientScript,
	}
}
