package genai

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/gabrielmiguelok/sitewizard/internal/site"
)

//go:embed schemas/tailored.json
var tailoredSchemaJSON []byte

var tailoredSchema = mustCompile("tailored.json", tailoredSchemaJSON)

func mustCompile(name string, raw []byte) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("genai: add schema %s: %v", name, err))
	}
	return compiler.MustCompile(name)
}

// TailoredContent is the structured bundle returned by the tailored-content
// call. Fields map onto preview content slots; the three art-direction
// fields map onto hints.
type TailoredContent struct {
	HeroTitle         string `json:"hero_title"`
	HeroSubtitle      string `json:"hero_subtitle"`
	HeroCTA           string `json:"hero_cta"`
	AboutTitle        string `json:"about_title"`
	AboutDesc         string `json:"about_desc"`
	FeaturesTitle     string `json:"features_title"`
	Feature1Title     string `json:"feature_1_title"`
	Feature1Desc      string `json:"feature_1_desc"`
	Feature2Title     string `json:"feature_2_title"`
	Feature2Desc      string `json:"feature_2_desc"`
	Feature3Title     string `json:"feature_3_title"`
	Feature3Desc      string `json:"feature_3_desc"`
	ImageStyleKeyword string `json:"image_style_keyword"`
	HeroImagePrompt   string `json:"hero_image_prompt"`
	LayoutStyle       string `json:"layout_style"`
}

// Values returns the bundle as content keys. Empty fields are omitted so
// they keep resolving to the preview fallbacks.
func (t *TailoredContent) Values() map[string]string {
	if t == nil {
		return nil
	}
	all := map[string]string{
		"hero_title":             t.HeroTitle,
		"hero_subtitle":          t.HeroSubtitle,
		"hero_cta":               t.HeroCTA,
		"about_title":            t.AboutTitle,
		"about_desc":             t.AboutDesc,
		"features_title":         t.FeaturesTitle,
		"feature_1_title":        t.Feature1Title,
		"feature_1_desc":         t.Feature1Desc,
		"feature_2_title":        t.Feature2Title,
		"feature_2_desc":         t.Feature2Desc,
		"feature_3_title":        t.Feature3Title,
		"feature_3_desc":         t.Feature3Desc,
		site.HintVisualStyle:     t.ImageStyleKeyword,
		site.HintHeroImagePrompt: t.HeroImagePrompt,
		site.HintLayoutStyle:     t.LayoutStyle,
	}
	out := make(map[string]string, len(all))
	for k, v := range all {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}
	return out
}

// ParseTailored decodes and validates a tailored bundle. Any decoding or
// schema failure is returned as an error.
func ParseTailored(raw string) (*TailoredContent, error) {
	data := []byte(stripFences(raw))

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if err := tailoredSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate bundle: %w", err)
	}

	var out TailoredContent
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	return &out, nil
}

// ParseTopics decodes a JSON array of strings, ignoring blank entries.
func ParseTopics(raw string) ([]string, error) {
	var topics []string
	if err := json.Unmarshal([]byte(stripFences(raw)), &topics); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}
	out := topics[:0]
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// stripFences removes markdown code fences some models wrap JSON in.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
