package analyzer

import (
	"net/url"
	"strings"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}

// Normalize resolves raw against baseURL and returns an absolute URL.
// An empty input returns "" so callers can drop the element. Malformed
// input that cannot be resolved fails soft and returns the raw string;
// callers still decide whether to keep it.
func Normalize(baseURL, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "data:") {
		return raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return raw
	}

	// Protocol-relative URLs inherit the base scheme.
	if strings.HasPrefix(raw, "//") {
		return base.Scheme + ":" + raw
	}

	// Root-relative paths are rebuilt from the base origin.
	if strings.HasPrefix(raw, "/") {
		return base.Scheme + "://" + base.Host + raw
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}

// IsExternal reports whether an absolute URL points to a host other
// than the one baseURL belongs to. Only http(s) URLs can be external;
// hosts are compared exactly, so "example.com.evil.net" does not count
// as internal to example.com.
func IsExternal(absURL, baseURL string) bool {
	u, err := url.Parse(absURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	return u.Hostname() != base.Hostname()
}

// IsValidImageURL accepts data:image/* URIs and absolute URLs whose
// path ends in a known image extension. Extension-less image URLs are
// rejected; that loses some genuine images but keeps the stored model
// free of unverifiable sources.
func IsValidImageURL(raw string) bool {
	if strings.HasPrefix(raw, "data:image/") {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
