package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/sitewizard/internal/site"
)

func TestTablesCoverVocabulary(t *testing.T) {
	t.Parallel()

	for _, lang := range []Lang{EN, AR} {
		table := For(lang)
		require.NotNil(t, table)
		for _, s := range site.Sections() {
			assert.Contains(t, table.Sections, string(s), "%s sections", lang)
		}
		for _, id := range TemplateIDs {
			assert.Contains(t, table.TemplateNames, id, "%s templates", lang)
		}
		assert.Len(t, table.Topics, 10)
		assert.Len(t, table.Goals, 6)
	}
}

func TestTablesHaveSameKeys(t *testing.T) {
	t.Parallel()

	en, ar := For(EN), For(AR)
	for key := range en.Strings {
		assert.Contains(t, ar.Strings, key)
	}
}

func TestLookups(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Contact Form", SectionLabel(EN, site.SectionContact))
	assert.Equal(t, "تواصل معنا", SectionLabel(AR, site.SectionContact))
	assert.Equal(t, "Online Store", TemplateName(EN, "store"))
	assert.Equal(t, "Feature 2", T(EN, "preview.featureTitle", 2))
	assert.Equal(t, "ميزة 2", T(AR, "preview.featureTitle", 2))
	assert.Equal(t, "Step 3 of 6", T(EN, "step", 3, 6))
}

func TestLangHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, AR, ParseLang("ar"))
	assert.Equal(t, EN, ParseLang("fr"))
	assert.Equal(t, EN, ParseLang(""))
	assert.Equal(t, "rtl", AR.Dir())
	assert.Equal(t, "ltr", EN.Dir())
	assert.Equal(t, EN, AR.Other())
	assert.Same(t, For(EN), For("xx"))
}
