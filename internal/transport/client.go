package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// ErrNetwork indicates a network fetch that kept failing until the
// retry budget was exhausted. The last underlying error is attached
// via wrapping.
var ErrNetwork = errors.New("transport: request failed after retries")

// RetryPolicy controls how a failed fetch is retried.
type RetryPolicy struct {
	// Attempts is the total attempt cap. nil means retry
	// indefinitely until the request succeeds or the context is
	// cancelled.
	Attempts *uint

	// Delay is the backoff base delay between attempts.
	Delay time.Duration

	// MaxDelay caps the exponential backoff.
	MaxDelay time.Duration
}

// Bounded returns a policy with a fixed attempt cap.
func Bounded(attempts uint) RetryPolicy {
	return RetryPolicy{Attempts: &attempts, Delay: time.Second, MaxDelay: 30 * time.Second}
}

// Unbounded returns a policy that retries until success.
func Unbounded() RetryPolicy {
	return RetryPolicy{Delay: time.Second, MaxDelay: 30 * time.Second}
}

func (p RetryPolicy) options(ctx context.Context) []retry.Option {
	// retry-go treats 0 attempts as "retry until success", which is
	// exactly the nil-cap semantics.
	var attempts uint
	if p.Attempts != nil {
		attempts = *p.Attempts
	}
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(p.Delay),
		retry.MaxDelay(p.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	}
}

// Client wraps HTTP GETs against the document service with retry and
// backoff. Every component that performs network I/O goes through a
// Client; there is no package-level default.
type Client struct {
	httpClient *http.Client
	userAgent  string
	policy     RetryPolicy
	logger     *slog.Logger
}

// NewClient creates a Client with the given retry policy.
//
// The client is configured with a 60 second per-request timeout and a
// browser-style User-Agent, which the document service requires for
// full-resolution image responses.
func NewClient(policy RetryPolicy, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: "Mozilla/5.0 (X11; Linux x86_64) bookgrab/1.0",
		policy:    policy,
		logger:    logger,
	}
}

// Get performs a GET request and returns the response body, retrying
// per the client's policy. A non-2xx status counts as a failure.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	body, _, err := c.GetTyped(ctx, url)
	return body, err
}

// GetString performs a GET request and returns the body as a string.
// Convenience wrapper for fetching HTML and JSON.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetTyped performs a GET request and returns the response body along
// with the Content-Type header value.
func (c *Client) GetTyped(ctx context.Context, url string) ([]byte, string, error) {
	var body []byte
	var contentType string

	err := retry.Do(
		func() error {
			var err error
			body, contentType, err = c.fetch(ctx, url)
			if err != nil {
				c.logger.Warn("fetch failed, will retry", "url", url, "error", err)
			}
			return err
		},
		c.policy.options(ctx)...,
	)
	if err != nil {
		return nil, "", fmt.Errorf("%w: GET %s: %v", ErrNetwork, url, err)
	}
	return body, contentType, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return body, resp.Header.Get("Content-Type"), nil
}
