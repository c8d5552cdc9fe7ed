package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error { return nil }

func failing(context.Context) error { return errors.New("down") }

func TestCheckAggregates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*Checker)
		want  Status
	}{
		{"no checks", func(*Checker) {}, StatusHealthy},
		{"all pass", func(c *Checker) {
			c.AddCheck("a", ok, 0)
			c.AddCriticalCheck("b", ok, 0)
		}, StatusHealthy},
		{"optional fails", func(c *Checker) {
			c.AddCheck("a", failing, 0)
			c.AddCriticalCheck("b", ok, 0)
		}, StatusDegraded},
		{"critical fails", func(c *Checker) {
			c.AddCheck("a", failing, 0)
			c.AddCriticalCheck("b", failing, 0)
		}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewChecker("1.0.0")
			tt.setup(c)
			report := c.Check(context.Background())
			assert.Equal(t, tt.want, report.Status)
			assert.Equal(t, "1.0.0", report.Version)
		})
	}
}

func TestCheckTimesOut(t *testing.T) {
	t.Parallel()

	c := NewChecker("")
	c.AddCriticalCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, 20*time.Millisecond)

	report := c.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, report.Status)
	assert.Equal(t, context.DeadlineExceeded.Error(), report.Checks["slow"].Error)
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	c := NewChecker("v")
	c.AddCheck("generation", failing, 0)

	rec := httptest.NewRecorder()
	c.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var report Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, StatusDegraded, report.Status)
	assert.Equal(t, "down", report.Checks["generation"].Error)

	c.AddCriticalCheck("store", failing, 0)
	rec = httptest.NewRecorder()
	c.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NewChecker("v").LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alive"`)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
