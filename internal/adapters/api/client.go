package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/domain/shared"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultBackoffBase = time.Second
	defaultCooldown    = time.Minute
)

// ErrNotFound is returned when the service has no such card or product
var ErrNotFound = errors.New("not found")

// StatusError is a non-retryable HTTP error response
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Service, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// ClientOptions configures a Client. Zero durations and rates take defaults.
type ClientOptions struct {
	RequestsPerSecond int
	Burst             int
	Timeout           time.Duration
	MaxRetries        int
	BackoffBase       time.Duration
	MaxFailures       int
	Cooldown          time.Duration
	Clock             shared.Clock
	Logger            pricing.Logger
	HTTPClient        *http.Client
}

// Client is a rate limited JSON-over-HTTP client with retries and a circuit
// breaker. One Client is shared by everything that talks to the same service.
type Client struct {
	service     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
	logger      pricing.Logger
}

// NewClient creates a client for the named service
func NewClient(service string, opts ClientOptions) *Client {
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = pricing.NopLogger{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = defaultBackoffBase
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = defaultCooldown
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = opts.RequestsPerSecond
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	breaker := NewCircuitBreaker(opts.MaxFailures, opts.Cooldown, opts.Clock)
	breaker.trips = func(err error) bool {
		var statusErr *StatusError
		return err != nil && !errors.As(err, &statusErr) && !errors.Is(err, context.Canceled)
	}

	return &Client{
		service:     service,
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		breaker:     breaker,
		maxRetries:  opts.MaxRetries,
		backoffBase: opts.BackoffBase,
		clock:       opts.Clock,
		logger:      opts.Logger,
	}
}

// Breaker exposes the client's circuit breaker
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// GetJSON fetches endpoint with the given query and headers and decodes the
// JSON body into result. Numbers decode as json.Number when result is a map.
func (c *Client) GetJSON(
	ctx context.Context,
	endpoint string,
	query url.Values,
	headers map[string]string,
	result interface{},
) error {
	target := endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.breaker.Call(func() error {
		return c.get(ctx, target, headers, result)
	})
}

// addJitter returns a duration between 50% and 150% of d
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64()
	return time.Duration(float64(d) * jitter)
}

// retryableError represents a failure that should trigger a retry
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}

// get performs the request with rate limiting and exponential backoff retries
func (c *Client) get(ctx context.Context, target string, headers map[string]string, result interface{}) error {
	var lastErr *retryableError

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			delay := addJitter(c.backoffBase * time.Duration(1<<(attempt-1)))
			if lastErr.retryAfter > 0 {
				delay = lastErr.retryAfter
			}
			c.logger.Log(pricing.LevelWarning, "retrying marketplace request", map[string]interface{}{
				"service": c.service,
				"attempt": attempt,
				"reason":  lastErr.message,
				"delay":   delay.String(),
			})
			c.clock.Sleep(delay)
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			lastErr = &retryableError{message: fmt.Sprintf("network error: %v", err)}
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = &retryableError{message: fmt.Sprintf("failed to read response: %v", err)}
			continue
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = &retryableError{
				message:    "rate limited (429)",
				retryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			}
			continue
		case resp.StatusCode >= 500:
			lastErr = &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode)}
			continue
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return &StatusError{Service: c.service, StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
		}

		if result != nil {
			if err := decodeJSON(body, result); err != nil {
				return fmt.Errorf("failed to decode %s response: %w", c.service, err)
			}
		}
		return nil
	}

	return fmt.Errorf("%s: max retries exceeded: %w", c.service, lastErr)
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func decodeJSON(body []byte, result interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(result)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
