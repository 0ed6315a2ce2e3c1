package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ofertasprj/internal/observability"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// FetchError reports a failed call to one of the external proxies.
type FetchError struct {
	URL    string
	Status int // 0 when no response was received
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("request to %s failed with status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Cache stores raw proxy bodies. Implementations must not fail the request.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// Client performs the outbound GETs to the rendering and scraping proxies.
type Client struct {
	http      *http.Client
	logger    *zap.Logger
	userAgent string
	cache     Cache
}

// NewClient creates a Client. cache may be nil.
func NewClient(logger *zap.Logger, httpClient *http.Client, userAgent string, cache Cache) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		http:      httpClient,
		logger:    logger,
		userAgent: userAgent,
		cache:     cache,
	}
}

// Fetch GETs url with the given headers. The call is bounded by timeout; a
// non-2xx answer is an error. No retries.
func (c *Client) Fetch(ctx context.Context, proxy, url string, headers map[string]string, timeout time.Duration) ([]byte, error) {
	return c.fetch(ctx, proxy, url, headers, timeout, nil)
}

// fetch is Fetch with a cacheable check; a nil check caches every 2xx body.
func (c *Client) fetch(ctx context.Context, proxy, url string, headers map[string]string, timeout time.Duration, cacheable func([]byte) bool) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, url); ok {
			observability.ProxyCacheHits.WithLabelValues(proxy).Inc()
			c.logger.Debug("crawler.cache_hit", zap.String("proxy", proxy), zap.String("url", url))
			return []byte(body), nil
		}
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.ObserveProxyRequest(proxy, 0, start)
		c.logger.Warn("crawler.fetch_failed",
			zap.String("proxy", proxy),
			zap.String("url", url),
			zap.Error(err))
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	observability.ObserveProxyRequest(proxy, resp.StatusCode, start)
	if err != nil {
		return nil, &FetchError{URL: url, Status: 0, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("crawler.unexpected_status",
			zap.String("proxy", proxy),
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return nil, &FetchError{URL: url, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	c.logger.Debug("crawler.fetch_success",
		zap.String("proxy", proxy),
		zap.String("url", url),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	if c.cache != nil && (cacheable == nil || cacheable(body)) {
		if err := c.cache.Set(ctx, url, string(body)); err != nil {
			c.logger.Warn("crawler.cache_set_failed", zap.String("url", url), zap.Error(err))
		}
	}

	return body, nil
}
