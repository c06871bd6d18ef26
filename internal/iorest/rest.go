// Package iorest is the JSON-over-HTTP core shared by remote source
// clients. It paces requests with a token-bucket limiter, records
// metrics and converts failures to gn.Error values. It never retries.
package iorest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ecoglobe/biosync/internal/iometrics"
	"golang.org/x/time/rate"
)

// maxBody limits the size of a response body that is read into memory.
const maxBody = 32 << 20

// Client performs GET requests against one remote API.
type Client struct {
	name    string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	headers map[string]string
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// OptHTTPClient replaces the HTTP client. Tests use it to install a
// mock transport.
func OptHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// OptHeader adds a header to every request.
func OptHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// New creates a client. Requests per second are limited by ratePerSec,
// a non-positive value disables pacing.
func New(
	name, baseURL string,
	timeout time.Duration,
	ratePerSec float64,
	opts ...Option,
) *Client {
	lim := rate.NewLimiter(rate.Inf, 1)
	if ratePerSec > 0 {
		lim = rate.NewLimiter(rate.Limit(ratePerSec), 1)
	}
	res := &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: lim,
		headers: map[string]string{"Accept": "application/json"},
		log:     slog.Default().With("component", name),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Name returns the name of the remote API.
func (c *Client) Name() string {
	return c.name
}

// URL builds a request URL from a path and a query.
func (c *Client) URL(path string, q url.Values) string {
	res := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		res += "?" + q.Encode()
	}
	return res
}

// GetJSON waits for the rate limiter, sends a GET request and decodes a
// JSON response into out. Endpoint is a short label used in metrics.
func (c *Client) GetJSON(
	ctx context.Context,
	endpoint, path string,
	q url.Values,
	out any,
) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return RateLimitError(c.name, err)
	}

	u := c.URL(path, q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return RequestError(c.name, u, err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		iometrics.RecordSourceRequest(c.name, endpoint, 0, time.Since(start))
		c.log.Warn("Request failed", "url", u, "error", err)
		return RequestError(c.name, u, err)
	}
	defer resp.Body.Close()
	iometrics.RecordSourceRequest(c.name, endpoint, resp.StatusCode,
		time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return RequestError(c.name, u, err)
	}

	if resp.StatusCode >= 400 {
		c.log.Warn("Remote API error",
			"url", u, "status", resp.StatusCode)
		return StatusError(c.name, u, resp.StatusCode, body)
	}

	c.log.Debug("Remote API response",
		"url", u, "status", resp.StatusCode, "bytes", len(body),
		"duration", time.Since(start))

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return DecodeError(c.name, u, err)
	}
	return nil
}
