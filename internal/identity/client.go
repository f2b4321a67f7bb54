// Package identity is the client for the remote identity authority. It
// answers authorization questions by composing two remote reads and never
// mutates remote state.
//
// Failure policy is fail closed: a transport or remote error surfaces as a
// coded unavailable error so callers can distinguish "could not determine"
// from an authoritative false. Silently coercing an outage into a denial (or
// worse, an approval) would make authorization outcomes depend on network
// weather.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"perf-service/internal/platform/metrics"
	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/platform/sentinel"
)

// Config carries the identity authority endpoint. Passed in explicitly so the
// base URL never becomes ambient process state.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client queries the identity authority over HTTP.
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

type userProfile struct {
	ID    string  `json:"id"`
	GymID *string `json:"gymId"`
}

type gymMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type streakResponse struct {
	Current int `json:"racha_actual"`
}

// VerifyCoachAthleteRelationship reports whether athleteID belongs to the
// coach's gym. A coach with no gym has no athletes, so that resolves to false
// without fetching the member list.
func (c *Client) VerifyCoachAthleteRelationship(ctx context.Context, coachID, athleteID uuid.UUID) (bool, error) {
	members, ok, err := c.gymMembers(ctx, coachID)
	if err != nil || !ok {
		return false, err
	}
	for _, m := range members {
		if m.ID == athleteID.String() {
			return true, nil
		}
	}
	return false, nil
}

// VerifyAthletesBelongToCoach reports whether every id in athleteIDs is a
// member of the coach's gym. An empty input is vacuously true; callers that
// must not accept empty batches reject them before calling.
func (c *Client) VerifyAthletesBelongToCoach(ctx context.Context, coachID uuid.UUID, athleteIDs []uuid.UUID) (bool, error) {
	members, ok, err := c.gymMembers(ctx, coachID)
	if err != nil || !ok {
		return false, err
	}
	memberSet := make(map[string]struct{}, len(members))
	for _, m := range members {
		memberSet[m.ID] = struct{}{}
	}
	for _, id := range athleteIDs {
		if _, found := memberSet[id.String()]; !found {
			return false, nil
		}
	}
	return true, nil
}

// gymMembers resolves the coach's gym and returns its member list. The bool
// is false when the coach has no gym (authoritative, not an error).
func (c *Client) gymMembers(ctx context.Context, coachID uuid.UUID) ([]gymMember, bool, error) {
	var profile userProfile
	if err := c.getJSON(ctx, fmt.Sprintf("%s/v1/users/%s", c.baseURL, coachID), &profile); err != nil {
		return nil, false, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to verify coach profile with identity service")
	}

	if profile.GymID == nil || *profile.GymID == "" {
		c.logger.WarnContext(ctx, "coach has no gym assigned", "coach_id", coachID)
		return nil, false, nil
	}

	var members []gymMember
	if err := c.getJSON(ctx, fmt.Sprintf("%s/v1/gyms/%s/members", c.baseURL, *profile.GymID), &members); err != nil {
		return nil, false, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to fetch gym members from identity service")
	}
	return members, true, nil
}

// CurrentStreak fetches the athlete's current training streak counter.
// Callers treat failures as best effort.
func (c *Client) CurrentStreak(ctx context.Context, athleteID uuid.UUID) (int, error) {
	var streak streakResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/streak/%s", c.baseURL, athleteID), &streak); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to fetch athlete streak")
	}
	return streak.Current, nil
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

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.countError()
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.countError()
		return fmt.Errorf("%w: identity service returned status %d", sentinel.ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		c.countError()
		return fmt.Errorf("decode identity response: %w", err)
	}
	return nil
}

func (c *Client) countError() {
	if c.metrics != nil {
		c.metrics.IdentityErrors.Inc()
	}
}
