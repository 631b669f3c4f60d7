// Package urlkit validates and normalizes user-supplied server URLs.
package urlkit

import (
	"context"
	"net/url"
	"strings"
)

// InvalidSavedURLMessage is returned by ReadStoredURL when a previously
// saved value no longer parses as an http(s) URL.
const InvalidSavedURLMessage = "Saved server URL was invalid. Please enter a new one."

// KV is the minimal key-value store ReadStoredURL needs.
type KV interface {
	GetItem(ctx context.Context, key string) (string, error)
	RemoveItem(ctx context.Context, key string) error
}

// NormalizeURL trims the input, defaults the scheme to http:// when none is
// present, and returns the origin (scheme://host[:port]). Anything that does
// not parse as an http or https URL yields "".
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	withScheme := trimmed
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		withScheme = "http://" + trimmed
	}

	parsed, err := url.Parse(withScheme)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	// Hostnames with spaces survive url.Parse but are never valid.
	if parsed.Host == "" || strings.ContainsAny(parsed.Host, " \t") {
		return ""
	}

	origin := url.URL{Scheme: parsed.Scheme, Host: parsed.Host}
	return origin.String()
}

// ReadStoredURL reads and validates a saved server URL. An invalid saved
// value is removed from the store so the caller is prompted for a new one.
func ReadStoredURL(ctx context.Context, store KV, key string) (string, string, error) {
	stored, err := store.GetItem(ctx, key)
	if err != nil {
		return "", "", err
	}
	if stored == "" {
		return "", "", nil
	}

	normalized := NormalizeURL(stored)
	if normalized == "" {
		if err := store.RemoveItem(ctx, key); err != nil {
			return "", "", err
		}
		return "", InvalidSavedURLMessage, nil
	}

	return normalized, "", nil
}
