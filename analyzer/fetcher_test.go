package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// redirectChain serves /hop/0 .. /hop/n-1 as redirects and a plain
// page at the end of the chain.
func redirectChain(length int) *httptest.Server {
	mux := http.NewServeMux()
	for i := 0; i < length; i++ {
		next := fmt.Sprintf("/hop/%d", i+1)
		if i == length-1 {
			next = "/final"
		}
		mux.HandleFunc(fmt.Sprintf("/hop/%d", i), func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, next, http.StatusMovedPermanently)
		})
	}
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>landed</body></html>")
	})
	return httptest.NewServer(mux)
}

func TestFetchFollowsRedirectsWithinCap(t *testing.T) {
	server := redirectChain(3)
	defer server.Close()

	f := NewFetcher(5*time.Second, 5, "")
	html, err := f.Fetch(context.Background(), server.URL+"/hop/0")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !strings.Contains(html, "landed") {
		t.Errorf("expected the final page body, got %q", html)
	}
}

func TestFetchStopsAfterRedirectCap(t *testing.T) {
	server := redirectChain(10)
	defer server.Close()

	f := NewFetcher(5*time.Second, 5, "")
	_, err := f.Fetch(context.Background(), server.URL+"/hop/0")
	if err == nil {
		t.Fatal("expected an error for a redirect chain longer than the cap")
	}
	if !errors.Is(err, ErrFetch) {
		t.Errorf("redirect-limit error must wrap ErrFetch: %v", err)
	}
	if !strings.Contains(err.Error(), "redirects") {
		t.Errorf("error should name the redirect limit: %v", err)
	}
}

func TestFetchWrapsErrFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, 5, "")

	if _, err := f.Fetch(context.Background(), server.URL); !errors.Is(err, ErrFetch) {
		t.Errorf("non-2xx status must wrap ErrFetch: %v", err)
	}
	if _, err := f.Fetch(context.Background(), "ftp://example.com/"); !errors.Is(err, ErrFetch) {
		t.Errorf("unsupported scheme must wrap ErrFetch: %v", err)
	}
}

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, "<html></html>")
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, 5, "")
	if _, err := f.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, DefaultUserAgent)
	}
}
