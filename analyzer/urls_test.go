package analyzer

import "testing"

func TestNormalize(t *testing.T) {
	base := "https://example.com/blog/post"

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty input", "", ""},
		{"absolute https untouched", "https://other.com/x", "https://other.com/x"},
		{"absolute http untouched", "http://other.com/x", "http://other.com/x"},
		{"data uri untouched", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"protocol relative inherits scheme", "//cdn.example.net/lib.js", "https://cdn.example.net/lib.js"},
		{"root relative rebuilt from origin", "/img/x.png", "https://example.com/img/x.png"},
		{"relative resolved against base", "img/x.png", "https://example.com/blog/img/x.png"},
		{"whitespace trimmed", "  /about  ", "https://example.com/about"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(base, tt.raw); got != tt.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", base, tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotentOnAbsolute(t *testing.T) {
	urls := []string{
		"https://example.com/",
		"https://example.com/a/b?q=1#frag",
		"http://sub.example.org/path",
	}
	for _, u := range urls {
		if got := Normalize("https://base.test/page", u); got != u {
			t.Errorf("Normalize should be idempotent on %q, got %q", u, got)
		}
	}
}

func TestNormalizeFailsSoft(t *testing.T) {
	// An unresolvable reference comes back unchanged so the caller can
	// still decide to drop it.
	if got := Normalize("https://example.com", "%zz"); got != "%zz" {
		t.Errorf("malformed reference should return raw input, got %q", got)
	}
	// A broken base cannot resolve anything; the raw value is returned.
	if got := Normalize("://broken", "/x"); got != "/x" {
		t.Errorf("broken base should return raw input, got %q", got)
	}
}

func TestIsExternal(t *testing.T) {
	base := "https://example.com/page"

	tests := []struct {
		url  string
		want bool
	}{
		{"https://other.com/x", true},
		{"https://example.com/about", false},
		{"http://example.com/about", false},
		{"mailto:someone@example.com", false},
		{"ftp://example.org/file", false},
	}

	for _, tt := range tests {
		if got := IsExternal(tt.url, base); got != tt.want {
			t.Errorf("IsExternal(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

// The first release classified links by hostname substring, so
// "example.com.evil.net" counted as internal to example.com. Exact
// host comparison fixes that; this test pins the corrected behavior
// and documents the old one as a known limitation of historical data.
func TestIsExternalExactHostComparison(t *testing.T) {
	base := "https://example.com"
	if !IsExternal("https://example.com.evil.net/login", base) {
		t.Error("host that merely contains the base hostname must be external")
	}
	if !IsExternal("https://notexample.com/x", base) {
		t.Error("superstring hostname must be external")
	}
	if IsExternal("https://example.com/x", base) {
		t.Error("same host must not be external")
	}
}

func TestIsValidImageURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"data:image/png;base64,AAAA", true},
		{"https://example.com/file.pdf", false},
		{"https://example.com/logo.png", true},
		{"https://example.com/LOGO.PNG", true},
		{"https://example.com/pic.jpg?width=200", true},
		{"https://example.com/anim.webp", true},
		{"https://example.com/vector.svg", true},
		{"img/x.png", false}, // relative URLs are not accepted
		{"https://example.com/photo", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidImageURL(tt.url); got != tt.want {
			t.Errorf("IsValidImageURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
