package genai

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/sitewizard/internal/locale"
	"github.com/gabrielmiguelok/sitewizard/internal/site"
)

type fakeModel struct {
	mu      sync.Mutex
	reply   map[Format]string
	err     error
	prompts []string
}

func (f *fakeModel) Generate(ctx context.Context, prompt string, format Format) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply[format], nil
}

type blockingModel struct{}

func (blockingModel) Generate(ctx context.Context, prompt string, format Format) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

const validBundle = `{
  "hero_title": "Light, Kept",
  "hero_subtitle": "Portraits made to outlast trends.",
  "hero_cta": "Book a session",
  "feature_1_title": "",
  "image_style_keyword": "warm film grain",
  "hero_image_prompt": "portrait studio, soft window light",
  "layout_style": "luxury"
}`

func TestOfflineFallbacks(t *testing.T) {
	s := NewService(nil)
	ctx := context.Background()

	assert.True(t, s.Offline())
	assert.Equal(t, "Welcome to Lumen, the premier destination for photography.",
		s.GenerateDescription(ctx, "photography", "Lumen", locale.EN))
	assert.Equal(t, "AEMAM Concepts", s.GenerateNameSuggestion(ctx, "photography", locale.EN))
	assert.Equal(t, "أفكار زمام", s.GenerateNameSuggestion(ctx, "photography", locale.AR))
	assert.Empty(t, s.PredictTopics(ctx, "photo", locale.EN))
	assert.NotNil(t, s.PredictTopics(ctx, "photo", locale.EN))
	assert.Nil(t, s.GenerateTailoredContent(ctx, "photography", "Lumen", locale.EN))
}

func TestFailuresNeverEscape(t *testing.T) {
	m := &fakeModel{err: errors.New("quota exceeded")}
	s := NewService(m)
	ctx := context.Background()

	assert.Equal(t, "Welcome to Lumen, the premier destination for photography.",
		s.GenerateDescription(ctx, "photography", "Lumen", locale.EN))
	assert.Equal(t, "Untitled Site", s.GenerateNameSuggestion(ctx, "photography", locale.EN))
	assert.Equal(t, "موقع جديد", s.GenerateNameSuggestion(ctx, "photography", locale.AR))
	assert.Equal(t, []string{}, s.PredictTopics(ctx, "photo", locale.EN))
	assert.Nil(t, s.GenerateTailoredContent(ctx, "photography", "Lumen", locale.EN))
}

func TestPromptsAreLocalized(t *testing.T) {
	m := &fakeModel{reply: map[Format]string{FormatText: "Lumen"}}
	s := NewService(m)

	s.GenerateNameSuggestion(context.Background(), "photography", locale.EN)
	s.GenerateNameSuggestion(context.Background(), "photography", locale.AR)

	require.Len(t, m.prompts, 2)
	assert.Contains(t, m.prompts[0], "brand name for a photography business")
	assert.Contains(t, m.prompts[1], "في مجال photography")
}

func TestNameIsUnquoted(t *testing.T) {
	m := &fakeModel{reply: map[Format]string{FormatText: `"Lumen"`}}
	s := NewService(m)
	assert.Equal(t, "Lumen", s.GenerateNameSuggestion(context.Background(), "photo", locale.EN))
}

func TestPredictTopicsStripsFences(t *testing.T) {
	m := &fakeModel{reply: map[Format]string{
		FormatJSONList: "```json\n[\"Wedding Photography\", \" \", \"Drone Photography\"]\n```",
	}}
	s := NewService(m)

	got := s.PredictTopics(context.Background(), "photo", locale.EN)
	assert.Equal(t, []string{"Wedding Photography", "Drone Photography"}, got)

	assert.Empty(t, s.PredictTopics(context.Background(), "  ", locale.EN))
	assert.Len(t, m.prompts, 1, "blank query issues no request")
}

func TestPredictTopicsMalformed(t *testing.T) {
	m := &fakeModel{reply: map[Format]string{FormatJSONList: `{"topics": 3}`}}
	s := NewService(m)
	assert.Equal(t, []string{}, s.PredictTopics(context.Background(), "photo", locale.EN))
}

func TestTailoredContent(t *testing.T) {
	m := &fakeModel{reply: map[Format]string{FormatTailored: validBundle}}
	s := NewService(m)

	bundle := s.GenerateTailoredContent(context.Background(), "photography", "Lumen", locale.EN)
	require.NotNil(t, bundle)
	assert.Equal(t, "luxury", bundle.LayoutStyle)

	values := bundle.Values()
	assert.Equal(t, "Light, Kept", values["hero_title"])
	assert.Equal(t, "luxury", values[site.HintLayoutStyle])
	assert.Equal(t, "warm film grain", values[site.HintVisualStyle])
	assert.Equal(t, "portrait studio, soft window light", values[site.HintHeroImagePrompt])
	assert.NotContains(t, values, "feature_1_title", "empty fields keep their fallbacks")
	assert.NotContains(t, values, "layout_style")
}

func TestTailoredContentRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":         "here is your site!",
		"missing required": `{"hero_title": "x", "layout_style": "saas"}`,
		"bad layout":       `{"hero_title": "x", "hero_subtitle": "y", "hero_image_prompt": "z", "layout_style": "retro"}`,
		"wrong type":       `{"hero_title": 3, "hero_subtitle": "y", "hero_image_prompt": "z", "layout_style": "saas"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTailored(raw)
			assert.Error(t, err)

			s := NewService(&fakeModel{reply: map[Format]string{FormatTailored: raw}})
			assert.Nil(t, s.GenerateTailoredContent(context.Background(), "a", "b", locale.EN))
		})
	}
}

func TestMergingBundleIntoContent(t *testing.T) {
	bundle, err := ParseTailored("```json\n" + validBundle + "\n```")
	require.NoError(t, err)

	c := site.NewContent()
	c.Set("hero_cta", "Old")
	c.Merge(bundle.Values())

	v, _ := c.Get("hero_cta")
	assert.Equal(t, "Book a session", v)
	assert.Equal(t, "luxury", c.Hint(site.HintLayoutStyle))

	var nilBundle *TailoredContent
	before := c.Clone()
	c.Merge(nilBundle.Values())
	assert.Equal(t, before, c)
}

func TestGenerationIsBounded(t *testing.T) {
	s := NewService(blockingModel{}, WithTimeout(20*time.Millisecond))

	start := time.Now()
	got := s.GenerateDescription(context.Background(), "photography", "Lumen", locale.EN)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, "Welcome to Lumen, the premier destination for photography.", got)
}

func TestCheckReportsOpenCircuit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.NoError(t, NewService(nil).Check(ctx))

	b := NewBreaker(&BreakerConfig{MaxErrors: 1, ResetTimeout: time.Hour, SuccessThreshold: 1})
	s := NewService(&fakeModel{err: errors.New("quota")}, WithBreaker(b))
	require.NoError(t, s.Check(ctx))

	s.GenerateDescription(ctx, "tea", "Leaf", locale.EN)
	assert.ErrorIs(t, s.Check(ctx), ErrCircuitOpen)
}
