package wizard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/sitewizard/internal/genai"
	"github.com/gabrielmiguelok/sitewizard/internal/locale"
	"github.com/gabrielmiguelok/sitewizard/internal/site"
)

// fakeGen is a scripted Generator. When gate is set every call blocks
// until it is closed.
type fakeGen struct {
	description string
	name        string
	tailored    *genai.TailoredContent
	topics      func(query string) []string
	gate        chan struct{}

	mu      sync.Mutex
	calls   map[string]int
	queries []string
	langs   []locale.Lang
}

func (f *fakeGen) record(op string, lang locale.Lang) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[op]++
	f.langs = append(f.langs, lang)
}

func (f *fakeGen) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeGen) GenerateDescription(ctx context.Context, topic, name string, lang locale.Lang) string {
	f.record("description", lang)
	return f.description
}

func (f *fakeGen) GenerateNameSuggestion(ctx context.Context, topic string, lang locale.Lang) string {
	f.record("name", lang)
	return f.name
}

func (f *fakeGen) PredictTopics(ctx context.Context, query string, lang locale.Lang) []string {
	f.record("topics", lang)
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.topics == nil {
		return nil
	}
	return f.topics(query)
}

func (f *fakeGen) GenerateTailoredContent(ctx context.Context, topic, name string, lang locale.Lang) *genai.TailoredContent {
	f.record("tailored", lang)
	return f.tailored
}

func bundle() *genai.TailoredContent {
	return &genai.TailoredContent{
		HeroTitle:         "Light, Bottled",
		FeaturesTitle:     "Why us",
		ImageStyleKeyword: "film grain",
		LayoutStyle:       "luxury",
	}
}

func TestStepNames(t *testing.T) {
	t.Parallel()

	for s := StepLanding; s <= StepDashboard; s++ {
		got, ok := ParseStep(s.String())
		require.True(t, ok, s.String())
		assert.Equal(t, s, got)
	}
	_, ok := ParseStep("nowhere")
	assert.False(t, ok)
	assert.Equal(t, "step(9)", Step(9).String())
	assert.Equal(t, 6, questionSteps)
}

func TestAdvanceWalksEveryStep(t *testing.T) {
	t.Parallel()

	c := NewController(&fakeGen{}, locale.EN)
	ctx := context.Background()

	for want := StepTopic; want <= StepDashboard; want++ {
		require.NoError(t, c.Advance(ctx))
		assert.Equal(t, want, c.Step())
	}
	require.NoError(t, c.Advance(ctx))
	assert.Equal(t, StepDashboard, c.Step())
}

func TestAdvanceFromNameGenerates(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{description: "We bottle light.", tailored: bundle()}
	c := NewController(gen, locale.AR)
	c.SetTopic("  candles ")
	c.SetName("Glow")
	require.NoError(t, c.JumpTo(StepName))

	require.NoError(t, c.Advance(context.Background()))

	assert.Equal(t, StepStructure, c.Step())
	assert.Equal(t, 1, gen.count("description"))
	assert.Equal(t, 1, gen.count("tailored"))
	assert.Equal(t, []locale.Lang{locale.AR, locale.AR}, gen.langs)

	cfg := c.Snapshot()
	assert.Equal(t, "candles", cfg.Topic)
	assert.Equal(t, "We bottle light.", cfg.Description)
	v, ok := cfg.Content.Get("hero_title")
	assert.True(t, ok)
	assert.Equal(t, "Light, Bottled", v)
	assert.Equal(t, "luxury", cfg.Content.Hint(site.HintLayoutStyle))
	assert.Equal(t, "film grain", cfg.Content.Hint(site.HintVisualStyle))
}

func TestAdvanceKeepsExistingDescription(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{description: "generated"}
	c := NewController(gen, locale.EN)
	require.NoError(t, c.JumpTo(StepName))
	require.NoError(t, c.Restore(State{Step: StepName, Config: withDescription("typed")}))

	require.NoError(t, c.Advance(context.Background()))
	assert.Zero(t, gen.count("description"))
	assert.Equal(t, "typed", c.Snapshot().Description)
}

func withDescription(d string) *site.Config {
	cfg := site.New()
	cfg.Description = d
	return cfg
}

func TestAdvanceSurvivesMissingBundle(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{description: "Fallback copy."}
	c := NewController(gen, locale.EN)
	c.UpdateContent("hero_title", "Mine")
	require.NoError(t, c.JumpTo(StepName))

	require.NoError(t, c.Advance(context.Background()))

	cfg := c.Snapshot()
	assert.Equal(t, StepStructure, c.Step())
	assert.Equal(t, "Fallback copy.", cfg.Description)
	assert.Equal(t, 1, cfg.Content.Len())
	v, _ := cfg.Content.Get("hero_title")
	assert.Equal(t, "Mine", v)
}

func TestAdvanceRejectsWhileBusy(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{gate: make(chan struct{}), tailored: bundle()}
	c := NewController(gen, locale.EN)
	require.NoError(t, c.JumpTo(StepName))

	done := make(chan error, 1)
	require.NoError(t, c.AdvanceAsync(context.Background(), func(err error) { done <- err }))
	assert.True(t, c.Busy().Advancing)

	assert.ErrorIs(t, c.Advance(context.Background()), ErrBusy)
	assert.ErrorIs(t, c.AdvanceAsync(context.Background(), nil), ErrBusy)

	close(gen.gate)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("advance never finished")
	}
	assert.False(t, c.Busy().Advancing)
	assert.Equal(t, StepStructure, c.Step())
}

func TestGuardsAreIndependent(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{gate: make(chan struct{}), name: "Lumen", tailored: bundle()}
	c := NewController(gen, locale.EN)

	names := make(chan string, 1)
	require.NoError(t, c.GenerateNameAsync(context.Background(), func(n string) { names <- n }))
	_, err := c.GenerateName(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	regen := make(chan bool, 1)
	require.NoError(t, c.RegenerateContentAsync(context.Background(), func(changed bool) { regen <- changed }))
	_, err = c.RegenerateContent(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	assert.Equal(t, Busy{Naming: true, Regenerating: true}, c.Busy())

	close(gen.gate)
	assert.Equal(t, "Lumen", <-names)
	assert.True(t, <-regen)
	assert.Eventually(t, func() bool { return c.Busy() == Busy{} }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Lumen", c.Snapshot().Name)
}

func TestRegenerateWithoutBundleChangesNothing(t *testing.T) {
	t.Parallel()

	c := NewController(&fakeGen{}, locale.EN)
	changed, err := c.RegenerateContent(context.Background())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Zero(t, c.Snapshot().Content.Len())
}

func TestRetreat(t *testing.T) {
	t.Parallel()

	c := NewController(&fakeGen{}, locale.EN)
	assert.Equal(t, StepLanding, c.Retreat())

	require.NoError(t, c.JumpTo(StepPalette))
	assert.Equal(t, StepStructure, c.Retreat())

	require.NoError(t, c.JumpTo(StepTopic))
	assert.Equal(t, StepLanding, c.Retreat())
}

func TestJumpTo(t *testing.T) {
	t.Parallel()

	c := NewController(&fakeGen{}, locale.EN)
	require.NoError(t, c.JumpTo(StepDashboard))
	assert.Equal(t, StepDashboard, c.Step())
	require.NoError(t, c.JumpTo(StepLanding))
	assert.Equal(t, StepLanding, c.Step())
	assert.ErrorIs(t, c.JumpTo(Step(42)), ErrInvalidStep)
}

func TestMutators(t *testing.T) {
	t.Parallel()

	c := NewController(&fakeGen{}, locale.EN)
	c.ToggleGoal("Sell Products")
	c.ToggleGoal("Publish Blog")
	c.ToggleGoal("Sell Products")
	require.NoError(t, c.ToggleStructure(site.SectionPricing))
	require.NoError(t, c.ToggleStructure(site.SectionAbout))
	assert.ErrorIs(t, c.ToggleStructure("carousel"), site.ErrUnknownSection)
	c.SetPalette("ocean")
	c.SetFontPair("classic")
	c.SetCustomFont("  Poppins ")
	c.UpdateContent("", "ignored")
	c.UpdateContent("about_title", "Who")
	c.ApplyAsset("https://img.example/a.png", "team office")

	cfg := c.Snapshot()
	assert.Equal(t, []string{"Publish Blog"}, cfg.GoalList())
	assert.True(t, cfg.HasSection(site.SectionPricing))
	assert.False(t, cfg.HasSection(site.SectionAbout))
	assert.Equal(t, "ocean", cfg.Palette)
	assert.Equal(t, "classic", cfg.FontPair)
	assert.Equal(t, "Poppins", cfg.CustomFont)
	assert.Equal(t, "https://img.example/a.png", cfg.Content.Hint("_about_image_override"))
	assert.Equal(t, 2, cfg.Content.Len())
}

func TestSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	c := NewController(&fakeGen{}, locale.EN)
	snap := c.Snapshot()
	snap.Name = "changed"
	snap.Content.Set("hero_title", "changed")
	snap.Structure[0] = site.SectionFAQ

	cfg := c.Snapshot()
	assert.Empty(t, cfg.Name)
	assert.Zero(t, cfg.Content.Len())
	assert.Equal(t, site.DefaultStructure(), cfg.Structure)
}

func TestStateRoundTripAndRestoreValidation(t *testing.T) {
	t.Parallel()

	c := NewController(&fakeGen{}, locale.EN)
	c.SetName("Glow")
	c.ToggleLang()
	require.NoError(t, c.JumpTo(StepFonts))

	other := NewController(&fakeGen{}, locale.EN)
	require.NoError(t, other.Restore(c.State()))
	assert.Equal(t, StepFonts, other.Step())
	assert.Equal(t, locale.AR, other.Lang())
	assert.Equal(t, "Glow", other.Snapshot().Name)

	bad := site.New()
	bad.Structure = append(bad.Structure, site.SectionHero)
	assert.Error(t, other.Restore(State{Step: StepTopic, Config: bad}))
	assert.ErrorIs(t, other.Restore(State{Step: Step(-1), Config: site.New()}), ErrInvalidStep)
	assert.Error(t, other.Restore(State{Step: StepTopic}))
	assert.Equal(t, StepFonts, other.Step())
}
