package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultMaxRedirects = 5
	DefaultUserAgent    = "PageScope/1.0 (+https://github.com/pagescope/backend)"
)

// ErrFetch marks every failure to retrieve the page: timeouts, DNS
// failures, redirect-limit hits and non-2xx statuses. Callers branch
// on it with errors.Is to tell fetch problems from analysis problems.
var ErrFetch = errors.New("fetch failed")

// Fetcher retrieves raw HTML over HTTP with a bounded timeout and
// redirect count.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(timeout time.Duration, maxRedirects int, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if maxRedirects <= 0 {
		maxRedirects = DefaultMaxRedirects
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: userAgent,
	}
}

// Fetch retrieves the HTML payload of pageURL. Every failure wraps
// ErrFetch; the caller aborts analysis on any of them.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: creating request for %s: %v", ErrFetch, pageURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: unexpected status %d for %s", ErrFetch, resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response body from %s: %v", ErrFetch, pageURL, err)
	}
	return string(body), nil
}
