package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/sitewizard/internal/site"
)

func TestTablesLoaded(t *testing.T) {
	t.Parallel()

	require.Len(t, Palettes(), 20)
	require.Len(t, FontPairs(), 4)

	for _, p := range Palettes() {
		assert.Len(t, p.Colors, 4, p.ID)
	}
}

func TestResolvePalette(t *testing.T) {
	t.Parallel()

	p := ResolvePalette("luxury")
	assert.Equal(t, "Gold & Black", p.Name)
	assert.Equal(t, "#0f0f0f", p.Background())
	assert.Equal(t, "#1a1a1a", p.Surface())
	assert.Equal(t, "#ffffff", p.Text())
	assert.Equal(t, "#d4af37", p.Accent())
}

func TestResolveFallsBackToFirstEntry(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"", "nope", "MINIMAL", " minimal"} {
		assert.Equal(t, "minimal", ResolvePalette(id).ID, "palette %q", id)
		assert.Equal(t, "modern", ResolveFontPair(id).ID, "font pair %q", id)
	}
}

func TestTokensCustomFontSupersedesRoles(t *testing.T) {
	t.Parallel()

	cfg := site.New()
	cfg.FontPair = "classic"

	tok := Resolve(cfg)
	assert.Equal(t, "font-serif", tok.HeadingClass())
	assert.Empty(t, tok.FontStyle())

	cfg.CustomFont = "Poppins"
	tok = Resolve(cfg)
	assert.Empty(t, tok.HeadingClass())
	assert.Empty(t, tok.BodyClass())
	assert.Equal(t, "font-family: 'Poppins', sans-serif;", tok.FontStyle())
	assert.Contains(t, tok.RootStyle(), "--sw-accent:#000000;")
}

func TestFontLoaderIsIdempotent(t *testing.T) {
	t.Parallel()

	l := NewFontLoader()
	assert.Empty(t, l.Tag())

	assert.True(t, l.Load("Poppins"))
	assert.False(t, l.Load("Poppins"))
	assert.Equal(t, 1, l.Links())
	assert.Equal(t, 1, strings.Count(l.Tag(), "<link"))

	assert.False(t, l.Load("Playfair Display"))
	assert.Equal(t, 1, l.Links())
	assert.Contains(t, l.Href(), "family=Playfair+Display")

	assert.False(t, l.Load("   "))
}

func TestFontURLEscapesFamily(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"https://fonts.googleapis.com/css2?family=Open+Sans:wght@400;700;900&display=swap",
		FontURL("  Open   Sans "))

	u := FontURL("Foo&display=block")
	assert.Contains(t, u, "family=Foo%26display%3Dblock:wght")
	assert.Equal(t, 1, strings.Count(u, "&display="))
	assert.Contains(t, FontURL("A#b?c"), "family=A%23b%3Fc:")
}
