package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/sitewizard/internal/config"
	"github.com/gabrielmiguelok/sitewizard/internal/genai"
	"github.com/gabrielmiguelok/sitewizard/internal/wizard"
	"github.com/gabrielmiguelok/sitewizard/pkg/health"
	"github.com/gabrielmiguelok/sitewizard/pkg/logging"
	"github.com/gabrielmiguelok/sitewizard/pkg/state"
)

func testConfig() *config.Config {
	return &config.Config{
		Generation: config.GenerationConfig{Model: "test", Timeout: time.Second},
		Wizard:     config.WizardConfig{DefaultLanguage: "ar", MinQueryLength: 2},
		Live:       config.LiveConfig{SessionTTL: time.Minute},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := state.NewMemoryStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	gen := genai.NewService(nil)
	r := newRouter(testConfig(), gen, wizard.NewSnapshotStore(store, time.Minute), newChecker(store, gen), logging.NopLogger{})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestServeWizardPage(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	res, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "<!DOCTYPE html>")
	assert.Contains(t, string(body), `data-live-view="wizard"`)
	assert.Contains(t, string(body), `dir="rtl"`)

	csp := res.Header.Get("Content-Security-Policy")
	assert.Contains(t, csp, "https://cdn.tailwindcss.com")
	assert.Contains(t, csp, "https://picsum.photos")

	var session *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == wizard.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
}

func TestServeClientScript(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	res, err := http.Get(srv.URL + "/_live/sitewizard.js")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "javascript")
}

func TestServeUnknownPath(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	res, err := http.Get(srv.URL + "/wp-admin")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestServeHealthProbes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		res, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		body, err := io.ReadAll(res.Body)
		res.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, res.StatusCode, path)
		assert.Equal(t, "application/json", res.Header.Get("Content-Type"), path)
		assert.Contains(t, string(body), version, path)
	}
}

func TestReadinessFailsWithClosedStore(t *testing.T) {
	t.Parallel()

	store := state.NewMemoryStore(time.Minute)
	require.NoError(t, store.Close())

	report := newChecker(store, genai.NewService(nil)).Check(context.Background())
	assert.Equal(t, health.StatusUnhealthy, report.Status)
	assert.Equal(t, health.StatusHealthy, report.Checks["generation"].Status)
	assert.Equal(t, state.ErrStoreClosed.Error(), report.Checks["snapshots"].Error)
}

func TestNewGeneratorOffline(t *testing.T) {
	t.Parallel()

	gen, err := newGenerator(context.Background(), config.GenerationConfig{Model: "m", Timeout: time.Second}, logging.NopLogger{})
	require.NoError(t, err)
	assert.True(t, gen.Offline())
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "sitewizard v"+version+"\n", out.String())
}
