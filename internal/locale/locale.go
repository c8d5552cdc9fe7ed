// Package locale holds the static en/ar string tables for the wizard chrome
// and the preview's fallback copy.
package locale

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gabrielmiguelok/sitewizard/internal/site"
	"github.com/gabrielmiguelok/sitewizard/pkg/i18n"
)

//go:embed tables/*.yaml
var tablesFS embed.FS

// Lang is a supported interface language.
type Lang string

// Supported languages.
const (
	EN Lang = "en"
	AR Lang = "ar"
)

// ParseLang maps s to a supported language, defaulting to English.
func ParseLang(s string) Lang {
	if Lang(s) == AR {
		return AR
	}
	return EN
}

// Dir returns the text direction for the language.
func (l Lang) Dir() string {
	if l == AR {
		return "rtl"
	}
	return "ltr"
}

// Other returns the language the toggle switches to.
func (l Lang) Other() Lang {
	if l == AR {
		return EN
	}
	return AR
}

// Table is one language's string table.
type Table struct {
	Brand         string            `yaml:"brand"`
	Strings       map[string]string `yaml:"strings"`
	Sections      map[string]string `yaml:"sections"`
	TemplateNames map[string]string `yaml:"templateNames"`
	Topics        []string          `yaml:"topics"`
	Goals         []string          `yaml:"goals"`
}

// TemplateIDs lists the landing-page template gallery in display order.
var TemplateIDs = []string{"portfolio", "business", "store", "blog", "restaurant", "event"}

var (
	tables     = map[Lang]*Table{EN: mustLoad("tables/en.yaml"), AR: mustLoad("tables/ar.yaml")}
	translator = newTranslator()
)

func mustLoad(name string) *Table {
	data, err := tablesFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("locale: read %s: %v", name, err))
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		panic(fmt.Sprintf("locale: parse %s: %v", name, err))
	}
	return &t
}

func newTranslator() *i18n.Translator {
	tr := i18n.NewTranslator(string(EN))
	for lang, table := range tables {
		tr.Load(string(lang), table.Strings)
	}
	return tr
}

// For returns the table for l, falling back to English.
func For(l Lang) *Table {
	if t, ok := tables[l]; ok {
		return t
	}
	return tables[EN]
}

// Translator returns the shared translator loaded with every table.
func Translator() *i18n.Translator {
	return translator
}

// T translates key for l with positional arguments.
func T(l Lang, key string, args ...any) string {
	return translator.TLocale(string(l), key, args...)
}

// SectionLabel returns the display label of a section.
func SectionLabel(l Lang, s site.Section) string {
	if label, ok := For(l).Sections[string(s)]; ok {
		return label
	}
	if label, ok := tables[EN].Sections[string(s)]; ok {
		return label
	}
	return string(s)
}

// TemplateName returns the display name of a landing template.
func TemplateName(l Lang, id string) string {
	if name, ok := For(l).TemplateNames[id]; ok {
		return name
	}
	return id
}
