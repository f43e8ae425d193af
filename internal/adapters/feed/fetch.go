package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/orangehat/meetcal/pkg/logger"
	"github.com/orangehat/meetcal/pkg/metrics"
)

// HTTP timeout for a single feed fetch.
const fetchTimeout = 15 * time.Second

// cacheEntry keeps the validators and body of the last successful fetch
// so a 304 can reuse it.
type cacheEntry struct {
	etag         string
	lastModified string
	body         []byte
}

// Fetcher downloads ICS payloads, revalidating with ETag and
// Last-Modified so unchanged feeds cost a header exchange.
type Fetcher struct {
	client *http.Client
	logger logger.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry // keyed by source ID
}

// NewFetcher creates a feed fetcher.
func NewFetcher(opts ...FetchOption) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		cache:  make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = logger.Get().Named("feed")
	}
	return f
}

// FetchOption applies a configuration option to the Fetcher.
type FetchOption func(*Fetcher)

// WithHTTPClient replaces the HTTP client; tests point it at a local
// httptest server.
func WithHTTPClient(c *http.Client) FetchOption {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithFetchLogger sets a custom logger.
func WithFetchLogger(l logger.Logger) FetchOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// Fetch returns the ICS body for one source, from the network or the
// revalidation cache. The bool is true when the cached body was reused.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]byte, bool, error) {
	f.mu.Lock()
	cached, hasCache := f.cache[src.ID]
	f.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("feed %s: build request: %w", src.ID, err)
	}
	if hasCache {
		if cached.etag != "" {
			req.Header.Set("If-None-Match", cached.etag)
		}
		if cached.lastModified != "" {
			req.Header.Set("If-Modified-Since", cached.lastModified)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.RecordFeedFetchError(src.ID)
		return nil, false, fmt.Errorf("feed %s: fetch: %w", src.ID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotModified && hasCache {
		f.logger.Debug(ctx, "feed unchanged", logger.String("id", src.ID))
		return cached.body, true, nil
	}
	if resp.StatusCode != http.StatusOK {
		metrics.RecordFeedFetchError(src.ID)
		return nil, false, fmt.Errorf("feed %s: %w: status %d", src.ID, ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordFeedFetchError(src.ID)
		return nil, false, fmt.Errorf("feed %s: read body: %w", src.ID, err)
	}

	f.mu.Lock()
	f.cache[src.ID] = cacheEntry{
		etag:         resp.Header.Get("ETag"),
		lastModified: resp.Header.Get("Last-Modified"),
		body:         body,
	}
	f.mu.Unlock()

	metrics.RecordFeedFetch(src.ID)
	return body, false, nil
}
