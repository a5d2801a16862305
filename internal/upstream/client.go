package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// Provenance identifies which upstream produced a canonical result and
// whether a fallback occurred. FallbackReason is present iff Fallback.
type Provenance struct {
	Provider       string `json:"provider"`
	Fallback       bool   `json:"fallback"`
	FallbackReason string `json:"fallbackReason,omitempty"`
}

// Client is a reusable HTTP client for one upstream service. It issues
// GET requests, retries transient failures with exponential backoff, and
// classifies every failure into the canonical taxonomy. A Client holds no
// per-call state and is safe for reuse across sequential calls.
type Client struct {
	name    string
	baseURL string
	header  http.Header
	http    *http.Client
	retry   RetryConfig
	retryOn bool
	breaker *gobreaker.CircuitBreaker
	sleep   func(time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithRetry overrides the default retry schedule.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithoutRetry disables retries; every failure surfaces on first
// occurrence. Used for credential-free, low-cost upstreams.
func WithoutRetry() Option {
	return func(c *Client) { c.retryOn = false }
}

// WithBreaker guards the transport with an in-memory circuit breaker.
// Breaker state lives and dies with the process.
func WithBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.header.Set(key, value) }
}

// WithSleep replaces the blocking sleep between retries. Tests inject a
// recorder here so the deterministic delay schedule is observable.
func WithSleep(fn func(time.Duration)) Option {
	return func(c *Client) { c.sleep = fn }
}

// New creates a Client for one upstream base URL. Retries are enabled by
// default with DefaultRetry settings.
func New(name, baseURL string, httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		header:  http.Header{},
		http:    httpClient,
		retry:   DefaultRetry(),
		retryOn: true,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the upstream identifier used in logs.
func (c *Client) Name() string { return c.name }

// GetJSON issues a GET against endpoint with the given query parameters
// and decodes the 2xx JSON body into out. Any failure is returned as a
// classified *Error; out is untouched on failure.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params url.Values, out any) *Error {
	full := c.baseURL + "/" + strings.TrimPrefix(endpoint, "/")
	if len(params) > 0 {
		full += "?" + params.Encode()
	}

	status, body, cerr := c.do(ctx, full)
	if cerr != nil {
		log.Printf("%s: GET %s failed: %v", c.name, endpoint, cerr)
		return cerr
	}

	if status < 200 || status >= 300 {
		cerr := classifyStatus(status, body, full)
		log.Printf("%s: GET %s failed: %v", c.name, endpoint, cerr)
		return cerr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{
			Kind:       KindParse,
			Message:    "Failed to parse API response",
			StatusCode: status,
			Details: map[string]any{
				"error":        err.Error(),
				"responseText": clip(body),
			},
		}
	}
	return nil
}

// do runs the retry loop. Only transient classifications are retried, up
// to MaxRetries additional attempts; the final attempt's classification
// is surfaced. Non-2xx responses are returned to the caller unretried.
func (c *Client) do(ctx context.Context, fullURL string) (int, []byte, *Error) {
	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return 0, nil, classifyTransport(err, fullURL)
		}

		status, body, cerr, stop := c.once(ctx, fullURL)
		if cerr == nil {
			return status, body, nil
		}
		if stop || !c.retryOn || !cerr.Transient() || attempt >= c.retry.MaxRetries {
			return 0, nil, cerr
		}

		c.sleep(c.retry.Delay(attempt))
		attempt++
	}
}

// once performs a single attempt. stop short-circuits the retry loop for
// failures that retrying cannot help with, such as an open breaker.
func (c *Client) once(ctx context.Context, fullURL string) (int, []byte, *Error, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, nil, &Error{
			Kind:    KindUnknown,
			Message: "Unexpected error occurred",
			Details: map[string]any{"error": err.Error(), "url": fullURL},
		}, true
	}
	for key, values := range c.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	var resp *http.Response
	var doErr error
	if c.breaker != nil {
		result, execErr := c.breaker.Execute(func() (interface{}, error) {
			return c.http.Do(req)
		})
		if execErr != nil {
			if errors.Is(execErr, gobreaker.ErrOpenState) || errors.Is(execErr, gobreaker.ErrTooManyRequests) {
				return 0, nil, &Error{
					Kind:    KindNetwork,
					Message: fmt.Sprintf("circuit breaker open for %s", c.name),
					Details: map[string]any{"url": fullURL},
				}, true
			}
			doErr = execErr
		} else {
			resp = result.(*http.Response)
		}
	} else {
		resp, doErr = c.http.Do(req)
	}
	if doErr != nil {
		return 0, nil, classifyTransport(doErr, fullURL), false
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return 0, nil, classifyTransport(readErr, fullURL), false
	}
	return resp.StatusCode, body, nil, false
}

// classifyStatus turns a non-2xx reply into an http_error, merging the
// upstream's own message and fields into the details when the body is
// parseable JSON.
func classifyStatus(status int, body []byte, fullURL string) *Error {
	message := fmt.Sprintf("HTTP %d error", status)
	details := map[string]any{"url": fullURL}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil {
		if m, ok := parsed["message"].(string); ok && m != "" {
			message = m
		}
		for k, v := range parsed {
			details[k] = v
		}
	} else {
		details["responseText"] = clip(body)
	}

	return &Error{Kind: KindHTTP, Message: message, StatusCode: status, Details: details}
}

func clip(b []byte) string {
	if len(b) > 500 {
		b = b[:500]
	}
	return string(b)
}
