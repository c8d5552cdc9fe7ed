package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabrielmiguelok/sitewizard/internal/locale"
	"github.com/gabrielmiguelok/sitewizard/internal/preview"
	"github.com/gabrielmiguelok/sitewizard/internal/site"
	"github.com/gabrielmiguelok/sitewizard/internal/theme"
	"github.com/gabrielmiguelok/sitewizard/pkg/core"
	"github.com/gabrielmiguelok/sitewizard/pkg/i18n"
	"github.com/gabrielmiguelok/sitewizard/pkg/logging"
	"github.com/gabrielmiguelok/sitewizard/pkg/security"
	"github.com/gabrielmiguelok/sitewizard/pkg/state"
)

// SessionCookie is the cookie holding the browser session id that
// snapshots are stored under.
const SessionCookie = "sw_session"

// Browser events handled by View.
const (
	EventStart         = "start"
	EventUseTemplate   = "use-template"
	EventHome          = "home"
	EventNext          = "next"
	EventBack          = "back"
	EventJump          = "jump"
	EventToggleLang    = "toggle-lang"
	EventTopicInput    = "topic-input"
	EventPickTopic     = "pick-topic"
	EventToggleGoal    = "toggle-goal"
	EventSetName       = "set-name"
	EventGenerateName  = "generate-name"
	EventToggleSection = "toggle-section"
	EventSetPalette    = "set-palette"
	EventSetFontPair   = "set-font-pair"
	EventSetCustomFont = "set-custom-font"
	EventEditSection   = "edit-section"
	EventCloseEditor   = "close-editor"
	EventUpdateContent = "update-content"
	EventEditImage     = "edit-image"
	EventCloseLibrary  = "close-library"
	EventLibraryTab    = "library-tab"
	EventLibraryCat    = "library-category"
	EventLibraryPrompt = "library-prompt"
	EventLibraryGen    = "library-generate"
	EventSelectAsset   = "select-asset"
	EventSetDevice     = "set-device"
	EventPublish       = "publish"
	EventRegenerate    = "regenerate"
)

// Preview devices on the dashboard.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
)

// Mailbox messages posted by background work.
type (
	advanceDone    struct{ err error }
	nameDone       struct{ name string }
	regenerateDone struct{ changed bool }
)

// SnapshotStore persists controller state per browser session.
type SnapshotStore = state.TypedStore[State]

// NewSnapshotStore stores msgpack snapshots in store under the
// "wizard:" prefix.
func NewSnapshotStore(store state.Store, ttl time.Duration) *SnapshotStore {
	return state.NewTypedStore[State](store, state.NewGenericSerializer[State](), "wizard:", ttl)
}

// Options configures the views created by a factory.
type Options struct {
	Generator Generator
	// Snapshots enables session resume when set.
	Snapshots *SnapshotStore

	DefaultLang    locale.Lang
	SuggestDelay   time.Duration
	MinQueryLength int
	SuggestTimeout time.Duration
	PublishDelay   time.Duration
}

// View is the live component for one browser tab.
type View struct {
	core.BaseComponent

	opts      Options
	ctrl      *Controller
	suggester *Suggester
	publisher *Publisher
	editor    preview.Editor
	library   AssetLibrary
	fonts     *theme.FontLoader

	sessionID   string
	query       string
	suggestions []string
	device      string
	published   *Publication
	saved       bool

	tr     *i18n.Translator
	logger logging.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// NewView creates an unmounted view.
func NewView(opts Options) *View {
	if opts.PublishDelay == 0 {
		opts.PublishDelay = DefaultPublishDelay
	}
	return &View{
		opts:      opts,
		ctrl:      NewController(opts.Generator, opts.DefaultLang),
		publisher: NewPublisher(opts.PublishDelay),
		fonts:     theme.NewFontLoader(),
		device:    DeviceDesktop,
		tr:        locale.Translator(),
		logger:    logging.NopLogger{},
	}
}

// Factory returns a component constructor for router.Live.
func Factory(opts Options) func() core.Component {
	return func() core.Component { return NewView(opts) }
}

// Controller exposes the view's controller.
func (v *View) Controller() *Controller { return v.ctrl }

// Name returns the component name.
func (v *View) Name() string { return "wizard" }

// Mount restores the session snapshot, if any, and prepares background
// work.
func (v *View) Mount(ctx context.Context, params core.Params, session core.Session) error {
	v.sessionID = session.Cookie(SessionCookie)
	v.logger = logging.L(ctx).With(logging.Session(v.sessionID))
	if tr := i18n.TranslatorFromContext(ctx); tr != nil {
		v.tr = tr
	}
	v.ctx, v.cancel = context.WithCancel(context.WithoutCancel(ctx))

	v.suggester = NewSuggester(SuggesterConfig{
		Delay:          v.opts.SuggestDelay,
		MinQueryLength: v.opts.MinQueryLength,
		Timeout:        v.opts.SuggestTimeout,
	}, v.ctrl.PredictTopics, func(s Suggestions) { v.Post(s) })

	if lang := params.Get("lang"); lang != "" {
		v.ctrl.SetLang(locale.ParseLang(lang))
	}

	if v.opts.Snapshots != nil && v.sessionID != "" {
		snap, err := v.opts.Snapshots.Load(ctx, v.sessionID)
		switch {
		case err == nil:
			if err := v.ctrl.Restore(snap); err != nil {
				v.logger.Warn("discarding session snapshot", logging.Err(err))
			}
		case errors.Is(err, state.ErrKeyNotFound):
		default:
			v.logger.Warn("load session snapshot", logging.Err(err))
		}
	}

	if family := v.ctrl.Snapshot().CustomFont; family != "" {
		v.fonts.Load(family)
	}
	return nil
}

// HandleEvent applies one browser event.
func (v *View) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	if err := v.handle(ctx, event, payload); err != nil {
		return err
	}
	v.persist(ctx)
	return nil
}

func (v *View) handle(ctx context.Context, event string, payload map[string]any) error {
	c := v.ctrl
	switch event {
	case EventStart, EventUseTemplate:
		return c.JumpTo(StepTopic)
	case EventHome:
		return c.JumpTo(StepLanding)
	case EventJump:
		step, ok := ParseStep(str(payload, "step"))
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidStep, str(payload, "step"))
		}
		return c.JumpTo(step)
	case EventNext:
		if c.Step() != StepName {
			return c.Advance(ctx)
		}
		return c.AdvanceAsync(v.ctx, func(err error) { v.Post(advanceDone{err: err}) })
	case EventBack:
		c.Retreat()
	case EventToggleLang:
		c.ToggleLang()
		v.suggester.Stop()
		v.suggestions = nil
	case EventTopicInput:
		v.query = str(payload, "value")
		v.suggester.Query(v.query)
		if !v.suggester.Busy() {
			v.suggestions = nil
		}
	case EventPickTopic:
		c.SetTopic(str(payload, "topic"))
	case EventToggleGoal:
		c.ToggleGoal(str(payload, "goal"))
	case EventSetName:
		c.SetName(str(payload, "value"))
	case EventGenerateName:
		return c.GenerateNameAsync(v.ctx, func(name string) { v.Post(nameDone{name: name}) })
	case EventToggleSection:
		return c.ToggleStructure(site.Section(str(payload, "section")))
	case EventSetPalette:
		c.SetPalette(str(payload, "palette"))
	case EventSetFontPair:
		c.SetFontPair(str(payload, "font"))
	case EventSetCustomFont:
		family := str(payload, "value")
		c.SetCustomFont(family)
		v.fonts.Load(family)
	case EventEditSection:
		v.library.Close()
		v.editor.Open(str(payload, "section"))
	case EventCloseEditor:
		v.editor.Close()
	case EventUpdateContent:
		c.UpdateContent(str(payload, "key"), str(payload, "value"))
	case EventEditImage:
		v.editor.Close()
		v.library.Open(str(payload, "context"))
	case EventCloseLibrary:
		v.library.Close()
	case EventLibraryTab:
		v.library.SetTab(str(payload, "tab"))
	case EventLibraryCat:
		v.library.SetCategory(str(payload, "category"))
	case EventLibraryPrompt:
		v.library.Prompt = str(payload, "value")
	case EventLibraryGen:
		v.library.Generate(c.Snapshot().Content)
	case EventSelectAsset:
		url := str(payload, "url")
		if !security.IsValidURL(url) || !v.library.IsOpen() {
			return nil
		}
		c.ApplyAsset(url, v.library.Target)
		v.library.Close()
	case EventSetDevice:
		if d := str(payload, "device"); d == DeviceDesktop || d == DeviceMobile {
			v.device = d
		}
	case EventPublish:
		v.published = nil
		return v.publisher.PublishAsync(v.ctx, c.Snapshot().Name, func(p Publication) { v.Post(p) })
	case EventRegenerate:
		return c.RegenerateContentAsync(v.ctx, func(changed bool) { v.Post(regenerateDone{changed: changed}) })
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	return nil
}

// HandleInfo applies the result of background work.
func (v *View) HandleInfo(ctx context.Context, msg any) error {
	switch m := msg.(type) {
	case advanceDone:
		if m.err != nil {
			return m.err
		}
		v.logger.Debug("advanced", logging.Step(v.ctrl.Step()))
	case nameDone:
		v.logger.Debug("name generated", logging.String("name", m.name))
	case regenerateDone:
		v.logger.Debug("content regenerated", logging.Bool("changed", m.changed))
	case Suggestions:
		if m.Query == v.query {
			v.suggestions = m.Topics
		}
	case Publication:
		v.published = &m
		v.logger.Info("site published", logging.String("url", m.URL))
		return nil
	default:
		return nil
	}
	v.persist(ctx)
	return nil
}

// Terminate stops background work and stores a final snapshot.
func (v *View) Terminate(ctx context.Context, reason core.TerminateReason) error {
	if v.cancel != nil {
		v.cancel()
	}
	if v.suggester != nil {
		v.suggester.Stop()
	}
	v.persist(ctx)
	return nil
}

func (v *View) persist(ctx context.Context) {
	if v.opts.Snapshots == nil || v.sessionID == "" {
		return
	}
	if err := v.opts.Snapshots.Save(ctx, v.sessionID, v.ctrl.State()); err != nil {
		v.saved = false
		v.logger.Warn("save session snapshot", logging.Err(err))
		return
	}
	v.saved = true
}

// str reads a payload value as a string.
func str(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
