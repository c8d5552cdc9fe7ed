package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/sitewizard/client"
	"github.com/gabrielmiguelok/sitewizard/internal/config"
	"github.com/gabrielmiguelok/sitewizard/internal/genai"
	"github.com/gabrielmiguelok/sitewizard/internal/locale"
	"github.com/gabrielmiguelok/sitewizard/internal/website"
	"github.com/gabrielmiguelok/sitewizard/internal/wizard"
	"github.com/gabrielmiguelok/sitewizard/pkg/core"
	"github.com/gabrielmiguelok/sitewizard/pkg/health"
	"github.com/gabrielmiguelok/sitewizard/pkg/logging"
	"github.com/gabrielmiguelok/sitewizard/pkg/router"
	"github.com/gabrielmiguelok/sitewizard/pkg/shutdown"
	"github.com/gabrielmiguelok/sitewizard/pkg/state"
	"github.com/gabrielmiguelok/sitewizard/pkg/transport"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a.cfg, a.logger)
		},
	}
}

// contentSources are the third-party origins the page loads from.
var contentSources = struct {
	scripts, fonts, styles, images []string
}{
	scripts: []string{website.TailwindCDN},
	styles:  []string{"https://fonts.googleapis.com"},
	fonts:   []string{"https://fonts.gstatic.com"},
	images:  []string{"https://image.pollinations.ai", "https://picsum.photos", "https://fastly.picsum.photos", "https://i.pravatar.cc"},
}

func serve(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	gen, err := newGenerator(ctx, cfg.Generation, logger)
	if err != nil {
		return err
	}

	store := state.NewMemoryStore(time.Minute)
	r := newRouter(cfg, gen, wizard.NewSnapshotStore(store, cfg.Live.SessionTTL), newChecker(store, gen), logger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	teardown := shutdown.New(logger)
	teardown.Register("live sessions", shutdown.PriorityConnections, r.Shutdown)
	teardown.Register("http server", shutdown.PriorityServer, srv.Shutdown)
	teardown.RegisterCloser("snapshot store", shutdown.PriorityStorage, store.Close)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", logging.String("addr", cfg.Server.Addr), logging.Bool("offline", gen.Offline()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		_ = store.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := teardown.Run(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

const probeKey = "health:probe"

// newChecker treats the snapshot store as critical and the generation
// backend as optional.
func newChecker(store state.Store, gen *genai.Service) *health.Checker {
	hc := health.NewChecker(version)
	hc.AddCriticalCheck("snapshots", func(ctx context.Context) error {
		if err := store.Set(ctx, probeKey, []byte{1}, time.Minute); err != nil {
			return err
		}
		_, err := store.Get(ctx, probeKey)
		return err
	}, time.Second)
	hc.AddCheck("generation", gen.Check, time.Second)
	return hc
}

// newGenerator returns a Gemini-backed service, or an offline one that
// serves fallbacks when no API key is configured.
func newGenerator(ctx context.Context, cfg config.GenerationConfig, logger logging.Logger) (*genai.Service, error) {
	opts := []genai.Option{
		genai.WithTimeout(cfg.Timeout),
		genai.WithLogger(logger.With(logging.String("component", "genai"))),
	}
	if cfg.APIKey == "" {
		logger.Warn("no generation API key configured, using fallback content")
		return genai.NewService(nil, opts...), nil
	}

	model, err := genai.NewGemini(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, err
	}
	breaker := genai.NewBreaker(genai.DefaultBreakerConfig())
	return genai.NewService(model, append(opts, genai.WithBreaker(breaker))...), nil
}

// newRouter wires the wizard, its client script and the health probes.
func newRouter(cfg *config.Config, gen wizard.Generator, snapshots *wizard.SnapshotStore, checks *health.Checker, logger logging.Logger) *router.Router {
	tc := transport.DefaultConfig()
	tc.AllowedOrigins = cfg.Live.AllowedOrigins

	r := router.New(
		router.WithLogger(logger),
		router.WithTransportConfig(tc),
		router.WithTranslator(locale.Translator()),
		router.WithMaxSessions(cfg.Live.MaxSessions),
		router.WithTimeouts(core.TimeoutConfig{
			ComponentEvent: cfg.Live.EventTimeout,
			ComponentInfo:  cfg.Live.EventTimeout,
		}),
	)

	headers := router.DefaultSecureHeadersConfig()
	headers.ScriptSources = contentSources.scripts
	headers.StyleSources = contentSources.styles
	headers.FontSources = contentSources.fonts
	headers.ImageSources = contentSources.images

	r.Use(router.Recovery(logger))
	r.Use(logging.RequestLogger(logger))
	r.Use(router.SecureHeaders(headers))

	r.Handle("/_live/", http.StripPrefix("/_live/", client.Handler()))
	r.Handle("GET /healthz", checks.LivenessHandler())
	r.Handle("GET /readyz", checks.ReadinessHandler())

	r.Live("/{$}", wizard.Factory(wizard.Options{
		Generator:      gen,
		Snapshots:      snapshots,
		DefaultLang:    locale.ParseLang(cfg.Wizard.DefaultLanguage),
		SuggestDelay:   cfg.Wizard.SuggestDebounce,
		MinQueryLength: cfg.Wizard.MinQueryLength,
		SuggestTimeout: cfg.Generation.Timeout,
		PublishDelay:   cfg.Wizard.PublishDelay,
	}),
		router.WithLayout(website.Layout(website.DefaultPageConfig())),
		router.WithRouteMiddleware(router.SessionCookie(wizard.SessionCookie, cfg.Live.SessionTTL)),
	)
	return r
}
