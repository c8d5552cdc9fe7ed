package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/gabrielmiguelok/sitewizard/internal/genai"
	"github.com/gabrielmiguelok/sitewizard/internal/locale"
	"github.com/gabrielmiguelok/sitewizard/internal/site"
	"github.com/gabrielmiguelok/sitewizard/pkg/security"
)

// Controller errors.
var (
	// ErrBusy is returned when the same kind of generation is already
	// running. Requests are rejected, never queued.
	ErrBusy         = errors.New("wizard: operation already in progress")
	ErrInvalidStep  = errors.New("wizard: invalid step")
	ErrUnknownEvent = errors.New("wizard: unknown event")
)

// Generator is the generation backend the controller calls. *genai.Service
// satisfies it. Implementations never fail; they fall back instead.
type Generator interface {
	GenerateDescription(ctx context.Context, topic, name string, lang locale.Lang) string
	GenerateNameSuggestion(ctx context.Context, topic string, lang locale.Lang) string
	PredictTopics(ctx context.Context, query string, lang locale.Lang) []string
	GenerateTailoredContent(ctx context.Context, topic, name string, lang locale.Lang) *genai.TailoredContent
}

// Busy reports which generation guards are held.
type Busy struct {
	Advancing    bool
	Naming       bool
	Regenerating bool
}

// State is the persisted part of a controller.
type State struct {
	Step   Step         `msgpack:"step"`
	Lang   locale.Lang  `msgpack:"lang"`
	Config *site.Config `msgpack:"config"`
}

// Controller owns one site configuration and the current step. All methods
// are safe for concurrent use; the lock is never held across a generation
// call.
type Controller struct {
	gen Generator

	mu   sync.RWMutex
	step Step
	lang locale.Lang
	cfg  *site.Config

	advancing    atomic.Bool
	naming       atomic.Bool
	regenerating atomic.Bool
}

// NewController creates a controller on the landing step with a fresh
// configuration.
func NewController(gen Generator, lang locale.Lang) *Controller {
	return &Controller{
		gen:  gen,
		lang: locale.ParseLang(string(lang)),
		cfg:  site.New(),
	}
}

// Step returns the current step.
func (c *Controller) Step() Step {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.step
}

// Lang returns the interface language.
func (c *Controller) Lang() locale.Lang {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lang
}

// SetLang switches the interface language.
func (c *Controller) SetLang(l locale.Lang) {
	c.mu.Lock()
	c.lang = locale.ParseLang(string(l))
	c.mu.Unlock()
}

// ToggleLang switches between the two supported languages.
func (c *Controller) ToggleLang() locale.Lang {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lang = c.lang.Other()
	return c.lang
}

// Busy returns the state of the three generation guards.
func (c *Controller) Busy() Busy {
	return Busy{
		Advancing:    c.advancing.Load(),
		Naming:       c.naming.Load(),
		Regenerating: c.regenerating.Load(),
	}
}

// Snapshot returns a deep copy of the configuration.
func (c *Controller) Snapshot() *site.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Clone()
}

// State returns a copy of the persisted state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{Step: c.step, Lang: c.lang, Config: c.cfg.Clone()}
}

// Restore replaces the controller state with s after validating it.
func (c *Controller) Restore(s State) error {
	if !s.Step.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStep, int(s.Step))
	}
	if s.Config == nil {
		return errors.New("wizard: restore: missing config")
	}
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("wizard: restore: %w", err)
	}

	cfg := s.Config.Clone()
	c.mu.Lock()
	c.step = s.Step
	c.lang = locale.ParseLang(string(s.Lang))
	c.cfg = cfg
	c.mu.Unlock()
	return nil
}

// Advance moves one step forward. Leaving the name step first generates
// the description (when none was set) and the tailored content bundle
// concurrently and waits for both. It is a no-op on the dashboard.
func (c *Controller) Advance(ctx context.Context) error {
	if !c.advancing.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.advancing.Store(false)
	return c.advance(ctx)
}

// AdvanceAsync runs Advance in the background and calls done with its
// result. The busy guard is taken before it returns, so a second call
// fails with ErrBusy right away.
func (c *Controller) AdvanceAsync(ctx context.Context, done func(error)) error {
	if !c.advancing.CompareAndSwap(false, true) {
		return ErrBusy
	}
	go func() {
		err := c.advance(ctx)
		c.advancing.Store(false)
		if done != nil {
			done(err)
		}
	}()
	return nil
}

func (c *Controller) advance(ctx context.Context) error {
	c.mu.RLock()
	from := c.step
	topic, name, lang := c.cfg.Topic, c.cfg.Name, c.lang
	needDescription := c.cfg.Description == ""
	c.mu.RUnlock()

	if from >= StepDashboard {
		return nil
	}

	if from == StepName {
		var (
			description string
			bundle      *genai.TailoredContent
		)
		g, gctx := errgroup.WithContext(ctx)
		if needDescription {
			g.Go(func() error {
				description = c.gen.GenerateDescription(gctx, topic, name, lang)
				return nil
			})
		}
		g.Go(func() error {
			bundle = c.gen.GenerateTailoredContent(gctx, topic, name, lang)
			return nil
		})
		_ = g.Wait()

		c.mu.Lock()
		if c.cfg.Description == "" {
			c.cfg.Description = description
		}
		if bundle != nil {
			c.cfg.Content.Merge(bundle.Values())
		}
		c.mu.Unlock()
	}

	c.mu.Lock()
	if c.step == from {
		c.step = from + 1
	}
	c.mu.Unlock()
	return nil
}

// Retreat moves one step back. The topic step goes back to the landing
// page and the landing page stays put.
func (c *Controller) Retreat() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step > StepLanding {
		c.step--
	}
	return c.step
}

// JumpTo moves directly to step.
func (c *Controller) JumpTo(step Step) error {
	if !step.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStep, int(step))
	}
	c.mu.Lock()
	c.step = step
	c.mu.Unlock()
	return nil
}

// GenerateName asks the backend for a brand name for the current topic and
// stores it.
func (c *Controller) GenerateName(ctx context.Context) (string, error) {
	if !c.naming.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer c.naming.Store(false)
	return c.generateName(ctx), nil
}

// GenerateNameAsync is GenerateName in the background.
func (c *Controller) GenerateNameAsync(ctx context.Context, done func(string)) error {
	if !c.naming.CompareAndSwap(false, true) {
		return ErrBusy
	}
	go func() {
		name := c.generateName(ctx)
		c.naming.Store(false)
		if done != nil {
			done(name)
		}
	}()
	return nil
}

func (c *Controller) generateName(ctx context.Context) string {
	c.mu.RLock()
	topic, lang := c.cfg.Topic, c.lang
	c.mu.RUnlock()

	name := c.gen.GenerateNameSuggestion(ctx, topic, lang)

	c.mu.Lock()
	c.cfg.Name = name
	c.mu.Unlock()
	return name
}

// RegenerateContent requests a fresh tailored bundle and merges it into the
// content. When the backend yields nothing the content is left unchanged.
func (c *Controller) RegenerateContent(ctx context.Context) (bool, error) {
	if !c.regenerating.CompareAndSwap(false, true) {
		return false, ErrBusy
	}
	defer c.regenerating.Store(false)
	return c.regenerate(ctx), nil
}

// RegenerateContentAsync is RegenerateContent in the background. done
// receives whether any content changed.
func (c *Controller) RegenerateContentAsync(ctx context.Context, done func(bool)) error {
	if !c.regenerating.CompareAndSwap(false, true) {
		return ErrBusy
	}
	go func() {
		changed := c.regenerate(ctx)
		c.regenerating.Store(false)
		if done != nil {
			done(changed)
		}
	}()
	return nil
}

func (c *Controller) regenerate(ctx context.Context) bool {
	c.mu.RLock()
	topic, name, lang := c.cfg.Topic, c.cfg.Name, c.lang
	c.mu.RUnlock()

	bundle := c.gen.GenerateTailoredContent(ctx, topic, name, lang)
	if bundle == nil {
		return false
	}

	c.mu.Lock()
	c.cfg.Content.Merge(bundle.Values())
	c.mu.Unlock()
	return true
}

// PredictTopics forwards a suggestion query in the current language.
func (c *Controller) PredictTopics(ctx context.Context, query string) []string {
	return c.gen.PredictTopics(ctx, query, c.Lang())
}

// SetTopic stores the site topic.
func (c *Controller) SetTopic(topic string) {
	c.mu.Lock()
	c.cfg.Topic = security.NormalizeWhitespace(topic)
	c.mu.Unlock()
}

// ToggleGoal flips a goal in or out of the goal set.
func (c *Controller) ToggleGoal(goal string) {
	c.mu.Lock()
	c.cfg.ToggleGoal(goal)
	c.mu.Unlock()
}

// SetName stores the site name as typed.
func (c *Controller) SetName(name string) {
	c.mu.Lock()
	c.cfg.Name = name
	c.mu.Unlock()
}

// ToggleStructure adds or removes a section.
func (c *Controller) ToggleStructure(s site.Section) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.ToggleStructure(s)
}

// SetPalette selects a palette id. Unknown ids are kept and resolved to the
// first palette at render time.
func (c *Controller) SetPalette(id string) {
	c.mu.Lock()
	c.cfg.Palette = id
	c.mu.Unlock()
}

// SetFontPair selects a font pair id.
func (c *Controller) SetFontPair(id string) {
	c.mu.Lock()
	c.cfg.FontPair = id
	c.mu.Unlock()
}

// SetCustomFont stores a custom font family. A non-empty family overrides
// the font pair.
func (c *Controller) SetCustomFont(family string) {
	c.mu.Lock()
	c.cfg.CustomFont = security.NormalizeWhitespace(family)
	c.mu.Unlock()
}

// UpdateContent writes one content key.
func (c *Controller) UpdateContent(key, value string) {
	if key == "" {
		return
	}
	c.mu.Lock()
	c.cfg.Content.Set(key, value)
	c.mu.Unlock()
}

// ApplyAsset stores url as the image override for target.
func (c *Controller) ApplyAsset(url, target string) {
	c.mu.Lock()
	c.cfg.ApplyAsset(url, target)
	c.mu.Unlock()
}
