// Package security provides input sanitization for user-supplied text and URLs.
package security

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	urlRe        = regexp.MustCompile(`^https?://[a-zA-Z0-9.-]+(:\d+)?(/.*)?$`)
)

// SafeURL returns url unless it uses a scriptable scheme, in which case it
// returns fallback. Relative URLs and fragments pass through.
func SafeURL(url, fallback string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return fallback
	}
	lower := strings.ToLower(url)

	if strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "vbscript:") {
		return fallback
	}

	return url
}

// IsValidURL performs basic absolute http(s) URL validation.
func IsValidURL(url string) bool {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return false
	}
	return urlRe.MatchString(url)
}

// NormalizeWhitespace collapses runs of whitespace and trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// TruncateText truncates text to at most maxLen runes, adding an ellipsis and
// preferring to cut at a space.
func TruncateText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	truncated := string(runes[:maxLen])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}

	return truncated + "..."
}
