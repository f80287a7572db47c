// Package http provides HTTP-based implementations of the pmcfetch
// retrieval services against the Europe PMC and NCBI APIs.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/pmcfetch"
	"golang.org/x/time/rate"
)

// Default client settings. The rate limit stays comfortably below the
// Europe PMC and NCBI guidance for anonymous clients.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "pmcfetch/1.0"
	DefaultRPS       = 3.0
)

// DefaultRetryDelays returns the backoff delays for request retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

type config struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
	rps       float64
	delays    []time.Duration
	client    *http.Client
}

// Option configures an API client.
type Option func(*config)

// WithBaseURL overrides the service base URL. Used in tests to point
// clients at a local server.
func WithBaseURL(u string) Option {
	return func(c *config) { c.baseURL = u }
}

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *config) { c.userAgent = ua }
}

// WithRateLimit sets the request pacing in requests per second.
// Defaults to DefaultRPS.
func WithRateLimit(rps float64) Option {
	return func(c *config) { c.rps = rps }
}

// WithRetryDelays sets the backoff delays between retry attempts.
// Useful for testing without waiting for real delays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *config) { c.delays = delays }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.client = hc }
}

// client is the shared transport: paced, retrying GET requests with a
// stable User-Agent.
type client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	delays     []time.Duration
}

func newClient(defaultBaseURL string, opts ...Option) *client {
	cfg := &config{
		baseURL:   defaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		rps:       DefaultRPS,
		delays:    DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	hc := cfg.client
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &client{
		baseURL:    cfg.baseURL,
		httpClient: hc,
		limiter:    rate.NewLimiter(rate.Limit(cfg.rps), 1),
		userAgent:  cfg.userAgent,
		delays:     cfg.delays,
	}
}

// get performs a paced GET request with retries on transport errors and
// server errors. Client errors are returned immediately; 404 maps to
// ENOTFOUND.
func (c *client) get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	maxAttempts := len(c.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, retryable, err := c.getOnce(ctx, rawURL, params)
		if err == nil {
			return body, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.delays[attempt]):
		}
	}

	return nil, lastErr
}

func (c *client) getOnce(ctx context.Context, rawURL string, params url.Values) (body []byte, retryable bool, err error) {
	u := rawURL
	if len(params) > 0 {
		u = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to read
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, pmcfetch.Errorf(pmcfetch.ENOTFOUND, "HTTP 404 for %s", rawURL)
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	default:
		return nil, false, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	return b, false, nil
}
