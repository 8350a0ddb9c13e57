package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// userAgent identifies the scraper to origin servers.
const userAgent = "sitesync/1.0 (+https://github.com/brightlabs/sitesync)"

// acceptLanguage hints the preferred content language.
const acceptLanguage = "en-US,en;q=0.8"

// maxPagesPerRun caps total fetches in one scrape pass. Listing paths are
// fixed, so this guards against misconfigured profiles, not crawling.
const maxPagesPerRun = 8

// FetchError reports a non-2xx response for one page.
type FetchError struct {
	Status int
	URL    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
}

// Fetcher performs rate-limited page fetches with scraper headers set.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a Fetcher with a 30s request timeout and a polite
// request rate (2/s, burst 4).
func NewFetcher() *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 4),
	}
}

// NewFetcherWithClient creates a Fetcher around an existing client. Used by
// tests against httptest servers.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

// Get fetches one page and returns its body. Non-2xx responses yield a
// *FetchError.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Status: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}
