package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("genai: empty response")

// Format selects the response shape requested from the model.
type Format int

const (
	FormatText Format = iota
	FormatJSONList
	FormatTailored
)

// Model is a text generation backend.
type Model interface {
	Generate(ctx context.Context, prompt string, format Format) (string, error)
}

// Gemini is a Model backed by the Gemini API.
type Gemini struct {
	client *sdk.Client
	model  string
}

// NewGemini creates a Gemini client for apiKey.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := sdk.NewClient(ctx, &sdk.ClientConfig{
		APIKey:  apiKey,
		Backend: sdk.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Generate implements Model.
func (g *Gemini) Generate(ctx context.Context, prompt string, format Format) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, sdk.Text(prompt), generationConfig(format))
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func generationConfig(format Format) *sdk.GenerateContentConfig {
	switch format {
	case FormatJSONList:
		return &sdk.GenerateContentConfig{ResponseMIMEType: "application/json"}
	case FormatTailored:
		return &sdk.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   tailoredResponseSchema(),
		}
	default:
		return nil
	}
}

var tailoredStringFields = []string{
	"hero_title", "hero_subtitle", "hero_cta",
	"about_title", "about_desc", "features_title",
	"feature_1_title", "feature_1_desc",
	"feature_2_title", "feature_2_desc",
	"feature_3_title", "feature_3_desc",
	"image_style_keyword", "hero_image_prompt",
}

func tailoredResponseSchema() *sdk.Schema {
	props := make(map[string]*sdk.Schema, len(tailoredStringFields)+1)
	for _, f := range tailoredStringFields {
		props[f] = &sdk.Schema{Type: sdk.TypeString}
	}
	props["layout_style"] = &sdk.Schema{
		Type: sdk.TypeString,
		Enum: []string{"luxury", "saas", "bold", "minimal"},
	}
	return &sdk.Schema{
		Type:       sdk.TypeObject,
		Properties: props,
		Required:   []string{"hero_title", "hero_subtitle", "layout_style", "hero_image_prompt"},
	}
}
