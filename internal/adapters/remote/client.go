// Package remote talks to a bubblesea server over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

// maxBody bounds how much of a response is read
const maxBody = 1 << 20

// StoreRequest is the body of POST /api/bubble/{id}
type StoreRequest struct {
	Bubble string
}

// Client implements ports.RemoteSea and ports.BubbleSink against a server
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	group   singleflight.Group

	breakerSettings gobreaker.Settings
	breaker         *gobreaker.CircuitBreaker
}

// Ensure Client implements both sides of the sea
var (
	_ ports.RemoteSea  = (*Client)(nil)
	_ ports.BubbleSink = (*Client)(nil)
)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithLogger sets the logger for transport failures
func WithLogger(logger *zap.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// WithBreaker tunes the circuit breaker guarding the server: after
// failures consecutive transport failures it rejects calls until timeout
// has passed.
func WithBreaker(failures uint32, timeout time.Duration) Option {
	return func(cl *Client) {
		cl.breakerSettings.Timeout = timeout
		cl.breakerSettings.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		}
	}
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid remote URL %q", baseURL)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  zap.NewNop(),
		breakerSettings: gobreaker.Settings{
			Name:    "remote",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	settings := c.breakerSettings
	settings.OnStateChange = func(name string, from, to gobreaker.State) {
		c.logger.Warn("remote circuit breaker changed state",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}
	// A cancelled caller says nothing about the server
	settings.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, context.Canceled)
	}
	c.breaker = gobreaker.NewCircuitBreaker(settings)
	return c, nil
}

func (c *Client) bubbleURL(id domain.ID) string {
	return c.baseURL + "/api/bubble/" + id.String()
}

type lookupResult struct {
	text  string
	found bool
}

// Lookup fetches the encoded bubble. Concurrent lookups of one id share a
// single request; each caller stops waiting when its own ctx is done.
// Any failure is logged and reported as absence.
func (c *Client) Lookup(ctx context.Context, id domain.ID) (string, bool) {
	ch := c.group.DoChan(id.String(), func() (any, error) {
		// Shared by every waiter, so it outlives the caller that started it.
		// The HTTP client timeout still bounds it.
		fetchCtx := context.WithoutCancel(ctx)
		var r lookupResult
		_, err := c.breaker.Execute(func() (any, error) {
			var err error
			r.text, r.found, err = c.fetch(fetchCtx, id)
			return nil, err
		})
		if err != nil {
			c.logger.Warn("remote lookup failed", zap.Stringer("id", id), zap.Error(err))
		}
		return r, nil
	})

	select {
	case <-ctx.Done():
		return "", false
	case res := <-ch:
		r := res.Val.(lookupResult)
		return r.text, r.found
	}
}

func (c *Client) fetch(ctx context.Context, id domain.ID) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.bubbleURL(id), nil)
	if err != nil {
		return "", false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", false, err
	}
	return string(body), true, nil
}

// Store sends the encoded bubble to the server
func (c *Client) Store(ctx context.Context, id domain.ID, encoded string) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.store(ctx, id, encoded)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("failed to store %s: %w", id, err)
	}
	return err
}

func (c *Client) store(ctx context.Context, id domain.ID, encoded string) error {
	payload, err := json.Marshal(StoreRequest{Bubble: encoded})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.bubbleURL(id), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", id, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to store %s: server replied %s", id, resp.Status)
	}
	return nil
}
