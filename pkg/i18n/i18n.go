// Package i18n provides string translation with a fallback locale.
package i18n

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Translator resolves keys against per-locale string tables.
type Translator struct {
	translations map[string]map[string]string // locale -> key -> value
	fallback     string
	mu           sync.RWMutex
}

// NewTranslator creates a translator that falls back to fallback when a
// locale lacks a key.
func NewTranslator(fallback string) *Translator {
	return &Translator{
		translations: make(map[string]map[string]string),
		fallback:     fallback,
	}
}

// Load loads translations for a locale, merging with any already loaded.
func (t *Translator) Load(locale string, translations map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.translations[locale] == nil {
		t.translations[locale] = make(map[string]string, len(translations))
	}

	for key, value := range translations {
		t.translations[locale][key] = value
	}
}

// TLocale translates for a specific locale. Missing keys fall back to the
// fallback locale and then to the key itself.
func (t *Translator) TLocale(locale, key string, args ...any) string {
	if value := t.get(locale, key); value != "" {
		return interpolate(value, args...)
	}

	if locale != t.fallback {
		if value := t.get(t.fallback, key); value != "" {
			return interpolate(value, args...)
		}
	}

	return key
}

func (t *Translator) get(locale, key string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if translations, ok := t.translations[locale]; ok {
		return translations[key]
	}
	return ""
}

// interpolate replaces positional placeholders (%1, %2, ...) and, when the
// only argument is a map, named placeholders ({{name}}).
func interpolate(template string, args ...any) string {
	if len(args) == 0 {
		return template
	}

	result := template

	if len(args) == 1 {
		if m, ok := args[0].(map[string]any); ok {
			for key, value := range m {
				result = strings.ReplaceAll(result, "{{"+key+"}}", fmt.Sprint(value))
			}
			return result
		}
	}

	// Highest index first so %1 does not eat the prefix of %10.
	for i := len(args) - 1; i >= 0; i-- {
		placeholder := fmt.Sprintf("%%%d", i+1)
		result = strings.ReplaceAll(result, placeholder, fmt.Sprint(args[i]))
	}

	return result
}

// Context helpers

type i18nContextKey struct{}

// WithTranslator adds a translator to context.
func WithTranslator(ctx context.Context, t *Translator) context.Context {
	return context.WithValue(ctx, i18nContextKey{}, t)
}

// TranslatorFromContext retrieves a translator from context.
func TranslatorFromContext(ctx context.Context) *Translator {
	t, _ := ctx.Value(i18nContextKey{}).(*Translator)
	return t
}
