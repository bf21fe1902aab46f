package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/publicsuffix"
)

// NormalizeDomain reduces a raw website identifier (with or without scheme,
// path or port) to its bare registrable domain. Falls back to the cleaned
// hostname when the public suffix list cannot resolve it (e.g. bare hosts
// in tests).
func NormalizeDomain(raw string) string {
	host := raw

	// Strip scheme
	if idx := strings.Index(host, "://"); idx > 0 {
		host = host[idx+3:]
	}

	// Strip path and query
	if idx := strings.IndexAny(host, "/?#"); idx > 0 {
		host = host[:idx]
	}

	// Strip port
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}

	host = strings.ToLower(strings.TrimPrefix(host, "www."))

	if registrable, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return registrable
	}
	return host
}

// NormalizeURL returns a scheme-qualified URL for a raw website identifier.
// An existing scheme is preserved; otherwise https is assumed.
func NormalizeURL(raw string) string {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "/")
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name into a lowercase identifier safe for
// persistence keys and file names.
func Slugify(name string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// SanitizeFilename removes invalid characters from a filename.
func SanitizeFilename(filename string) string {
	invalid := regexp.MustCompile(`[<>:"/\\|?*]`)
	filename = invalid.ReplaceAllString(filename, "_")

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, filename)

	if len(cleaned) > 255 {
		cleaned = cleaned[:255]
	}

	return cleaned
}

// TruncateText truncates text to a maximum length, preserving word boundaries.
func TruncateText(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}

	truncated := text[:maxLength]
	lastSpace := strings.LastIndex(truncated, " ")

	if lastSpace > 0 {
		truncated = truncated[:lastSpace]
	}

	return truncated + "..."
}
