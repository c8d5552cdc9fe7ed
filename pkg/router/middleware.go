package router

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmiguelok/sitewizard/pkg/logging"
)

// Recovery middleware recovers from panics in handlers.
func Recovery(logger logging.Logger) Middleware {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("handler panic",
						logging.String("path", r.URL.Path),
						logging.Any("panic", rec),
						logging.String("stack", string(debug.Stack())),
					)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionCookie makes sure every request carries a session cookie named
// name. A missing or malformed one is replaced by a fresh UUID, set on the
// response and added to the request so handlers see it on first visit.
func SessionCookie(name string, maxAge time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(name); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					next.ServeHTTP(w, r)
					return
				}
			}

			if isWebSocketRequest(r) {
				// Upgrade responses cannot set cookies the browser keeps.
				next.ServeHTTP(w, r)
				return
			}

			cookie := &http.Cookie{
				Name:     name,
				Value:    uuid.NewString(),
				Path:     "/",
				MaxAge:   int(maxAge.Seconds()),
				HttpOnly: true,
				Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
				SameSite: http.SameSiteLaxMode,
			}
			http.SetCookie(w, cookie)

			existing := r.Cookies()
			r = r.Clone(r.Context())
			r.Header.Del("Cookie")
			for _, c := range existing {
				if c.Name != name {
					r.AddCookie(c)
				}
			}
			r.AddCookie(cookie)
			next.ServeHTTP(w, r)
		})
	}
}

// SecureHeadersConfig configures security headers.
type SecureHeadersConfig struct {
	// FrameOptions controls X-Frame-Options. Default: "DENY".
	FrameOptions string

	// ReferrerPolicy sets the Referrer-Policy header.
	ReferrerPolicy string

	// PermissionsPolicy sets the Permissions-Policy header.
	PermissionsPolicy string

	// HSTSMaxAge is the HSTS max-age in seconds, sent over HTTPS only.
	// Zero disables HSTS.
	HSTSMaxAge int

	// ScriptSources, StyleSources, FontSources and ImageSources extend the
	// Content-Security-Policy beyond 'self'.
	ScriptSources []string
	StyleSources  []string
	FontSources   []string
	ImageSources  []string
}

// DefaultSecureHeadersConfig returns secure default configuration.
func DefaultSecureHeadersConfig() SecureHeadersConfig {
	return SecureHeadersConfig{
		FrameOptions:      "DENY",
		ReferrerPolicy:    "strict-origin-when-cross-origin",
		PermissionsPolicy: "geolocation=(), microphone=(), camera=()",
		HSTSMaxAge:        31536000,
	}
}

type cspNonceKey struct{}

// GetCSPNonce retrieves the CSP nonce from context.
func GetCSPNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(cspNonceKey{}).(string)
	return nonce
}

func generateNonce() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}

// SecureHeaders adds security headers and a per-request CSP nonce.
func SecureHeaders(config SecureHeadersConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if config.FrameOptions != "" {
				h.Set("X-Frame-Options", config.FrameOptions)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			if config.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", config.ReferrerPolicy)
			}
			if config.PermissionsPolicy != "" {
				h.Set("Permissions-Policy", config.PermissionsPolicy)
			}
			if config.HSTSMaxAge > 0 && (r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https") {
				h.Set("Strict-Transport-Security", "max-age="+strconv.Itoa(config.HSTSMaxAge)+"; includeSubDomains")
			}

			nonce := generateNonce()
			h.Set("Content-Security-Policy", buildCSP(config, nonce))

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), cspNonceKey{}, nonce)))
		})
	}
}

func buildCSP(config SecureHeadersConfig, nonce string) string {
	directive := func(name string, sources ...string) string {
		return name + " " + strings.Join(sources, " ")
	}
	return strings.Join([]string{
		"default-src 'self'",
		directive("script-src", append([]string{"'self'", "'nonce-" + nonce + "'"}, config.ScriptSources...)...),
		directive("style-src", append([]string{"'self'", "'unsafe-inline'"}, config.StyleSources...)...),
		directive("font-src", append([]string{"'self'"}, config.FontSources...)...),
		directive("img-src", append([]string{"'self'", "data:"}, config.ImageSources...)...),
		"connect-src 'self' ws: wss:",
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}, "; ")
}
