// Package planning is the client for the remote planning authority. Its only
// job is batched enrichment: resolving routine assignment ids into display
// names.
//
// Failure policy is fail open, the deliberate opposite of the identity
// client: a missing display name degrades the response, while an unresolved
// authorization check has security consequences. Remote errors are absorbed
// here and callers fall back to an "unknown routine" label.
package planning

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"perf-service/internal/platform/metrics"
	pstrings "perf-service/pkg/platform/strings"
)

// Config carries the planning authority endpoint.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client queries the planning authority over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(c *Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithHTTPClient overrides the transport, mostly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New constructs a Client.
func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type routineResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ResolveRoutineNames resolves a set of routine ids into display names with
// at most one remote round trip. Input ids are deduplicated; an empty set
// returns an empty map without calling the remote authority. On any remote
// error the result is an empty map.
func (c *Client) ResolveRoutineNames(ctx context.Context, ids []string) map[string]string {
	names := make(map[string]string)

	ids = pstrings.DedupeAndTrim(ids)
	if len(ids) == 0 {
		return names
	}

	url := fmt.Sprintf("%s/v1/planning/routines?ids=%s", c.baseURL, strings.Join(ids, ","))
	routines, err := c.fetchRoutines(ctx, url)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to resolve routine names, proceeding with fallback labels",
			"error", err,
			"routine_ids", ids,
		)
		if c.metrics != nil {
			c.metrics.EnrichmentFallbacks.Inc()
		}
		return names
	}

	for _, r := range routines {
		names[r.ID] = r.Name
	}
	return names
}

func (c *Client) fetchRoutines(ctx context.Context, url string) ([]routineResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("planning service returned status %d", resp.StatusCode)
	}
	var routines []routineResponse
	if err := json.NewDecoder(resp.Body).Decode(&routines); err != nil {
		return nil, fmt.Errorf("decode planning response: %w", err)
	}
	return routines, nil
}

// Ping probes the authority for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}
