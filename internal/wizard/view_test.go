package wizard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/sitewizard/internal/locale"
	"github.com/gabrielmiguelok/sitewizard/internal/theme"
	"github.com/gabrielmiguelok/sitewizard/pkg/core"
	"github.com/gabrielmiguelok/sitewizard/pkg/i18n"
	"github.com/gabrielmiguelok/sitewizard/pkg/state"
	lvtest "github.com/gabrielmiguelok/sitewizard/pkg/testing"
)

const wait = time.Second

func mountView(t *testing.T, opts Options, mopts ...lvtest.MountOption) (*View, *lvtest.LiveViewTest) {
	t.Helper()
	if opts.Generator == nil {
		opts.Generator = &fakeGen{}
	}
	if opts.SuggestDelay == 0 {
		opts.SuggestDelay = testDelay
	}
	if opts.PublishDelay == 0 {
		opts.PublishDelay = testDelay
	}
	v := NewView(opts)
	return v, lvtest.Mount(t, v, mopts...)
}

func TestViewLanding(t *testing.T) {
	t.Parallel()

	_, lvt := mountView(t, Options{})
	lvt.AssertText(`data-slot="main"`).
		AssertText("Create your legacy.").
		AssertEvent(EventStart).
		AssertEvent(EventUseTemplate).
		AssertText("Portfolio &amp; CV").
		AssertNoText(`lv-click="next"`)

	for _, name := range []string{SlotFonts, SlotChrome, SlotMain, SlotAside, SlotNav} {
		assert.Equal(t, 1, strings.Count(lvt.Rendered(), `data-slot="`+name+`"`), name)
	}
}

func TestViewUsesTranslatorFromContext(t *testing.T) {
	t.Parallel()

	tr := i18n.NewTranslator(string(locale.EN))
	tr.Load(string(locale.EN), locale.For(locale.EN).Strings)
	tr.Load(string(locale.EN), map[string]string{"landingTitle": "Build something."})

	_, lvt := mountView(t, Options{}, lvtest.WithContext(i18n.WithTranslator(context.Background(), tr)))
	lvt.AssertText("Build something.").
		AssertNoText("Create your legacy.").
		AssertEvent(EventStart)
}

func TestViewLanguageParamAndToggle(t *testing.T) {
	t.Parallel()

	v, lvt := mountView(t, Options{}, lvtest.WithParams(core.Params{"lang": "ar"}))
	assert.Equal(t, locale.AR, v.Controller().Lang())
	lvt.AssertText(`dir="rtl"`)

	lvt.Click(EventToggleLang, nil)
	lvt.AssertText(`dir="ltr"`).AssertNoText(`dir="rtl"`)
}

func TestViewTemplateAndNavigation(t *testing.T) {
	t.Parallel()

	v, lvt := mountView(t, Options{})
	lvt.Click(EventUseTemplate, map[string]string{"template": "store"})
	assert.Equal(t, StepTopic, v.Controller().Step())
	lvt.AssertText("Step 1 of 6").AssertHasID("sw-topic")

	lvt.Click(EventPickTopic, map[string]string{"topic": "Fashion"})
	assert.Equal(t, "Fashion", v.Controller().Snapshot().Topic)
	lvt.AssertHasClass("sw-selected")

	lvt.Click(EventNext, nil)
	lvt.AssertText("Step 2 of 6").AssertText("Sell Products")
	lvt.Click(EventToggleGoal, map[string]string{"goal": "Sell Products"})
	lvt.AssertText(`aria-pressed="true"`)

	lvt.Click(EventBack, nil).Click(EventBack, nil)
	assert.Equal(t, StepLanding, v.Controller().Step())

	lvt.Click(EventJump, map[string]string{"step": "palette"})
	assert.Equal(t, StepPalette, v.Controller().Step())
	lvt.Click(EventHome, nil)
	assert.Equal(t, StepLanding, v.Controller().Step())

	assert.ErrorIs(t, lvt.Event(EventJump, map[string]any{"step": "moon"}), ErrInvalidStep)
	assert.ErrorIs(t, lvt.Event("dance", nil), ErrUnknownEvent)
}

func TestViewTopicSuggestions(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{topics: func(q string) []string { return []string{"Wedding Photography", "Drone Photography"} }}
	v, lvt := mountView(t, Options{Generator: gen})
	require.NoError(t, v.Controller().JumpTo(StepTopic))

	lvt.Input(EventTopicInput, "pho").Input(EventTopicInput, "phot").Input(EventTopicInput, "photo")
	lvt.AssertHasClass("sw-spinner").AssertText("Use custom topic:")
	lvt.AwaitText("Drone Photography", wait)
	lvt.AssertText("Suggested Specializations").AssertNoText("sw-spinner")
	assert.Equal(t, 1, gen.count("topics"))

	lvt.Input(EventTopicInput, "ph")
	lvt.AssertText("Popular Topics").AssertNoText("Drone Photography")
}

func TestViewEmptySuggestions(t *testing.T) {
	t.Parallel()

	v, lvt := mountView(t, Options{})
	require.NoError(t, v.Controller().JumpTo(StepTopic))

	lvt.Input(EventTopicInput, "zzzz")
	lvt.AwaitText("No specific suggestions found", wait)
	lvt.AssertText("Popular Topics")
}

func TestViewNameStepAdvancesInBackground(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{gate: make(chan struct{}), description: "Calm rooms.", tailored: bundle()}
	v, lvt := mountView(t, Options{Generator: gen})
	require.NoError(t, v.Controller().JumpTo(StepName))
	lvt.Input(EventSetName, "Haven ")
	lvt.AssertText(`value="Haven "`)

	lvt.Click(EventNext, nil)
	lvt.AssertText("Thinking...").AssertText(" disabled>")
	assert.ErrorIs(t, lvt.Event(EventNext, nil), ErrBusy)
	assert.Equal(t, StepName, v.Controller().Step())

	close(gen.gate)
	lvt.AwaitText("Build your homepage", wait)
	assert.Equal(t, StepStructure, v.Controller().Step())
	assert.Equal(t, "Calm rooms.", v.Controller().Snapshot().Description)
	lvt.AssertText("Light, Bottled").AssertText(`data-layout="luxury"`)
}

func TestViewGenerateName(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{name: "Nimbus"}
	v, lvt := mountView(t, Options{Generator: gen})
	require.NoError(t, v.Controller().JumpTo(StepName))

	lvt.Click(EventGenerateName, nil)
	require.True(t, lvt.AwaitInfo(wait))
	lvt.AssertText(`value="Nimbus"`)
}

func TestViewStructurePaletteFonts(t *testing.T) {
	t.Parallel()

	v, lvt := mountView(t, Options{})
	require.NoError(t, v.Controller().JumpTo(StepStructure))
	lvt.Render()
	lvt.Click(EventToggleSection, map[string]string{"section": "pricing"})
	lvt.AssertText("Pricing Plans")
	assert.Error(t, lvt.Event(EventToggleSection, map[string]any{"section": "carousel"}))

	lvt.Click(EventNext, nil)
	palette := theme.Palettes()[3]
	lvt.Click(EventSetPalette, map[string]string{"palette": palette.ID})
	assert.Equal(t, palette.ID, v.Controller().Snapshot().Palette)

	lvt.Click(EventNext, nil)
	lvt.AssertText("Finish").AssertHasID("sw-custom-font-input")
	lvt.Input(EventSetCustomFont, "Playfair Display")
	lvt.Input(EventSetCustomFont, "Poppins")
	lvt.AssertText(`id="` + theme.FontLinkID + `"`).AssertText("family=Poppins")
	assert.Equal(t, 1, strings.Count(lvt.Rendered(), `id="`+theme.FontLinkID+`"`))

	lvt.Click(EventNext, nil)
	assert.Equal(t, StepDashboard, v.Controller().Step())
}

func TestViewDashboardEditing(t *testing.T) {
	t.Parallel()

	v, lvt := mountView(t, Options{})
	require.NoError(t, v.Controller().JumpTo(StepDashboard))
	lvt.Render()
	lvt.AssertText("Welcome to your new site").AssertEvent(EventEditSection).AssertEvent(EventEditImage)

	lvt.Click(EventEditSection, map[string]string{"section": "about"})
	lvt.AssertHasClass("sw-edit-panel").AssertEvent(EventUpdateContent)

	lvt.Input(EventUpdateContent, "Our Story", "key", "about_title")
	lvt.AssertText("Our Story")

	lvt.Click(EventCloseEditor, nil)
	lvt.AssertNoText("sw-edit-panel")

	lvt.Click(EventSetDevice, map[string]string{"device": DeviceMobile})
	lvt.AssertHasClass("sw-device-mobile")
	lvt.Click(EventSetDevice, map[string]string{"device": "watch"})
	lvt.AssertHasClass("sw-device-mobile")
}

func TestViewAssetLibrary(t *testing.T) {
	t.Parallel()

	v, lvt := mountView(t, Options{})
	require.NoError(t, v.Controller().JumpTo(StepDashboard))

	lvt.Click(EventEditImage, map[string]string{"context": "hero"})
	lvt.AssertHasClass("sw-library").AssertText("Editing: hero").AssertText("picsum.photos/seed/business0")

	lvt.Click(EventLibraryCat, map[string]string{"category": "food"})
	lvt.AssertText("picsum.photos/seed/food3")

	lvt.Click(EventLibraryTab, map[string]string{"tab": "ai"})
	lvt.Input(EventLibraryPrompt, "neon sign")
	lvt.Click(EventLibraryGen, nil)
	lvt.AssertText("modern%20minimalist%20neon%20sign")

	lvt.Click(EventSelectAsset, map[string]string{"url": "javascript:alert(1)"})
	lvt.AssertHasClass("sw-library")

	generated := v.library.Generated
	lvt.Click(EventSelectAsset, map[string]string{"url": generated})
	lvt.AssertNoText("sw-library")
	assert.Equal(t, generated, v.Controller().Snapshot().Content.Hint("_hero_image_override"))
}

func TestViewPublish(t *testing.T) {
	t.Parallel()

	v, lvt := mountView(t, Options{})
	v.Controller().SetName("Blue Fern")
	require.NoError(t, v.Controller().JumpTo(StepDashboard))
	lvt.Render()
	lvt.AssertText("https://blue-fern.aemam.com")

	lvt.Click(EventPublish, nil)
	lvt.AssertText("Publishing...")
	assert.ErrorIs(t, lvt.Event(EventPublish, nil), ErrBusy)

	lvt.AwaitText("Your site is live", wait)
	lvt.AssertText(`href="https://blue-fern.aemam.com"`)
}

func TestViewRegenerate(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{tailored: bundle()}
	v, lvt := mountView(t, Options{Generator: gen})
	require.NoError(t, v.Controller().JumpTo(StepDashboard))

	lvt.Click(EventRegenerate, nil)
	lvt.AwaitText("Light, Bottled", wait)
	assert.Equal(t, 1, gen.count("tailored"))
}

func TestViewSessionResume(t *testing.T) {
	t.Parallel()

	store := state.NewMemoryStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	snaps := NewSnapshotStore(store, time.Minute)
	session := core.Session{"cookie:" + SessionCookie: "3f2b1c9e-7a1d-4c55-9d6e-2b8f0e1a4c77"}

	_, first := mountView(t, Options{Snapshots: snaps}, lvtest.WithSession(session))
	first.Click(EventStart, nil)
	first.Click(EventPickTopic, map[string]string{"topic": "Tea"})
	first.Click(EventNext, nil)

	v, second := mountView(t, Options{Snapshots: snaps}, lvtest.WithSession(session))
	assert.Equal(t, StepGoals, v.Controller().Step())
	assert.Equal(t, "Tea", v.Controller().Snapshot().Topic)
	second.AssertText("What are your top goals?")

	require.NoError(t, v.Controller().JumpTo(StepDashboard))
	second.Click(EventSetDevice, map[string]string{"device": DeviceDesktop})
	second.AssertText("Saved")
}

func TestViewDiscardsCorruptSnapshot(t *testing.T) {
	t.Parallel()

	store := state.NewMemoryStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Set(context.Background(), "wizard:abc", []byte{0x07, 0x01}, 0))

	v, _ := mountView(t, Options{Snapshots: NewSnapshotStore(store, time.Minute)},
		lvtest.WithSession(core.Session{"cookie:" + SessionCookie: "abc"}))
	assert.Equal(t, StepLanding, v.Controller().Step())
}
