package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", "json", &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.With(String("step", "topic")).Warn("generation failed", Int("attempt", 2))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "generation failed", entry["msg"])
	assert.Equal(t, "topic", entry["step"])
	assert.Equal(t, float64(2), entry["attempt"])
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New("info", "xml", nil)
	assert.Error(t, err)
}

func TestContextLogger(t *testing.T) {
	assert.Equal(t, DefaultLogger, L(context.Background()))

	ctx := ContextWithLogger(context.Background(), NopLogger{})
	assert.Equal(t, NopLogger{}, L(ctx))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", "json", &buf)
	require.NoError(t, err)

	var fromCtx Logger
	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = LoggerFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotNil(t, fromCtx)
	_, err = uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
}

func TestRequestLoggerKeepsIncomingID(t *testing.T) {
	h := RequestLogger(NopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
}

type stepName string

func (s stepName) String() string { return string(s) }

func TestDomainFields(t *testing.T) {
	assert.Equal(t, Field{Key: "session", Value: "3f2b1c9e"}, Session("3f2b1c9e-7a1d-4c55-9d6e-2b8f0e1a4c77"))
	assert.Equal(t, Field{Key: "session", Value: "abc"}, Session("abc"))
	assert.Equal(t, Field{Key: "step", Value: "palette"}, Step(stepName("palette")))
}
