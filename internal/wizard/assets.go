package wizard

import (
	"github.com/gabrielmiguelok/sitewizard/internal/imagery"
	"github.com/gabrielmiguelok/sitewizard/internal/site"
	"github.com/gabrielmiguelok/sitewizard/pkg/security"
)

// StockCategory is one browsable group of stock photos.
type StockCategory struct {
	ID    string
	Label string
}

// StockCategories lists the asset library categories in display order.
var StockCategories = []StockCategory{
	{ID: "business", Label: "Business"},
	{ID: "minimal", Label: "Minimal"},
	{ID: "nature", Label: "Nature"},
	{ID: "architecture", Label: "Architecture"},
	{ID: "fashion", Label: "Fashion"},
	{ID: "food", Label: "Food & Drink"},
	{ID: "technology", Label: "Tech"},
	{ID: "abstract", Label: "Abstract"},
}

// stockPerCategory is the number of photos listed per category.
const stockPerCategory = 12

// maxPromptLength bounds the prompt embedded in a generated image URL.
const maxPromptLength = 200

// aiSeedBase keeps generated asset seeds away from the preview's
// placeholder seeds.
const aiSeedBase = 1000

// AssetTab is a pane of the asset library.
type AssetTab string

// Asset library panes.
const (
	TabPhotos AssetTab = "photos"
	TabAI     AssetTab = "ai"
)

// AssetLibrary is the image picker opened from an image in the preview.
// It is owned by a single view and not safe for concurrent use.
type AssetLibrary struct {
	// Target is the image context being replaced; "" means closed.
	Target   string
	Tab      AssetTab
	Category string
	Prompt   string
	// Generated is the last AI image URL built from Prompt.
	Generated string

	generations int
}

// Open shows the library for target, resetting to the photo pane.
func (a *AssetLibrary) Open(target string) {
	a.Target = target
	a.Tab = TabPhotos
	if a.Category == "" {
		a.Category = StockCategories[0].ID
	}
}

// Close hides the library.
func (a *AssetLibrary) Close() {
	a.Target = ""
}

// IsOpen reports whether the library is showing.
func (a *AssetLibrary) IsOpen() bool {
	return a.Target != ""
}

// SetTab switches pane. Unknown tabs are ignored.
func (a *AssetLibrary) SetTab(tab string) {
	switch AssetTab(tab) {
	case TabPhotos, TabAI:
		a.Tab = AssetTab(tab)
	}
}

// SetCategory selects a stock category. Unknown ids are ignored.
func (a *AssetLibrary) SetCategory(id string) {
	for _, c := range StockCategories {
		if c.ID == id {
			a.Category = id
			return
		}
	}
}

// Photos lists the stock photo URLs of the selected category.
func (a *AssetLibrary) Photos() []string {
	category := a.Category
	if category == "" {
		category = StockCategories[0].ID
	}
	out := make([]string, stockPerCategory)
	for i := range out {
		out[i] = imagery.Stock(category, i)
	}
	return out
}

// Generate builds an AI image URL for the current prompt in the site's
// visual style. An empty prompt yields "".
func (a *AssetLibrary) Generate(content site.Content) string {
	prompt := security.TruncateText(security.NormalizeWhitespace(a.Prompt), maxPromptLength)
	if prompt == "" {
		return ""
	}
	style := content.Hint(site.HintVisualStyle)
	if style == "" {
		style = imagery.DefaultStyle
	}
	a.generations++
	a.Generated = imagery.Generated(style, prompt, aiSeedBase+a.generations)
	return a.Generated
}
