// Package authz models per-operation authorization as data instead of
// conditionals scattered through services. Each write/read operation names a
// Policy; the Authorizer evaluates it against the requesting principal,
// consulting the identity authority only when the policy demands a
// relationship check.
//
// Denials are authoritative and map to forbidden. An unreachable identity
// authority is not a denial: the gateway's unavailable error passes through
// untouched so callers never mistake "unknown" for "denied".
package authz

import (
	"context"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"perf-service/internal/platform/metrics"
	dErrors "perf-service/pkg/domain-errors"
	"perf-service/pkg/requestcontext"
)

// RelationshipRule names how the principal must relate to the target
// athlete(s).
type RelationshipRule int

const (
	// RelationNone requires nothing beyond an authenticated principal.
	RelationNone RelationshipRule = iota
	// RelationSelfOnly requires every target athlete to be the principal.
	RelationSelfOnly
	// RelationCoachOf requires the target athlete to belong to the
	// principal's gym.
	RelationCoachOf
	// RelationSelfOrCoachOf lets athletes act on themselves and coaches on
	// their gym members.
	RelationSelfOrCoachOf
	// RelationCoachOfAll requires every target athlete to belong to the
	// principal's gym (batch membership).
	RelationCoachOfAll
	// RelationSelfForAthletes restricts athletes to themselves and leaves
	// every other role unrestricted. Only the test-result history path uses
	// this; see DESIGN.md before reusing it.
	RelationSelfForAthletes
)

// Policy is one operation's authorization configuration.
type Policy struct {
	// Roles allowed to attempt the operation; empty means any authenticated
	// role.
	Roles []string
	// Relationship the principal must hold to the target athlete(s).
	Relationship RelationshipRule
}

// Per-operation policies. Kept together so the differing fail-open/closed
// semantics stay auditable in one place.
var (
	RegisterSession         = Policy{Relationship: RelationNone}
	RegisterTrainingSession = Policy{Roles: []string{requestcontext.RoleAthlete}, Relationship: RelationSelfOnly}
	RegisterTestResults     = Policy{Roles: []string{requestcontext.RoleCoach}, Relationship: RelationCoachOf}
	RegisterCombatEvent     = Policy{Roles: []string{requestcontext.RoleCoach, requestcontext.RoleAthlete}, Relationship: RelationSelfOrCoachOf}
	RegisterAttendance      = Policy{Roles: []string{requestcontext.RoleCoach}, Relationship: RelationCoachOfAll}
	QueryAthleteHistory     = Policy{Roles: []string{requestcontext.RoleCoach}, Relationship: RelationCoachOf}
	QueryTestResultHistory  = Policy{Relationship: RelationSelfForAthletes}
	QueryAttendanceHistory  = Policy{Roles: []string{requestcontext.RoleCoach, requestcontext.RoleAthlete}, Relationship: RelationSelfOrCoachOf}
)

// RelationshipVerifier is the slice of the identity gateway the authorizer
// needs.
type RelationshipVerifier interface {
	VerifyCoachAthleteRelationship(ctx context.Context, coachID, athleteID uuid.UUID) (bool, error)
	VerifyAthletesBelongToCoach(ctx context.Context, coachID uuid.UUID, athleteIDs []uuid.UUID) (bool, error)
}

// Principal is the authenticated requester.
type Principal struct {
	ID   uuid.UUID
	Role string
}

// Authorizer evaluates policies.
type Authorizer struct {
	identity RelationshipVerifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(a *Authorizer)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Authorizer) { a.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Authorizer) { a.metrics = m }
}

func New(identity RelationshipVerifier, opts ...Option) *Authorizer {
	a := &Authorizer{identity: identity, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authorize evaluates policy for the principal acting on athleteIDs. It
// returns nil when allowed, a forbidden error when denied, and passes
// gateway errors through unchanged when the answer could not be determined.
func (a *Authorizer) Authorize(ctx context.Context, p Principal, policy Policy, athleteIDs ...uuid.UUID) error {
	if len(policy.Roles) > 0 && !slices.Contains(policy.Roles, p.Role) {
		return a.deny(ctx, p, "role not permitted for this operation")
	}

	switch policy.Relationship {
	case RelationNone:
		return nil

	case RelationSelfOnly:
		for _, id := range athleteIDs {
			if id != p.ID {
				return a.deny(ctx, p, "operation is restricted to the athlete's own records")
			}
		}
		return nil

	case RelationCoachOf:
		return a.requireRelationship(ctx, p, athleteIDs)

	case RelationSelfOrCoachOf:
		if p.Role == requestcontext.RoleAthlete {
			for _, id := range athleteIDs {
				if id != p.ID {
					return a.deny(ctx, p, "athletes may only act on their own records")
				}
			}
			return nil
		}
		return a.requireRelationship(ctx, p, athleteIDs)

	case RelationCoachOfAll:
		ok, err := a.identity.VerifyAthletesBelongToCoach(ctx, p.ID, athleteIDs)
		if err != nil {
			return err
		}
		if !ok {
			return a.deny(ctx, p, "one or more athletes do not belong to this coach")
		}
		return nil

	case RelationSelfForAthletes:
		if p.Role == requestcontext.RoleAthlete {
			for _, id := range athleteIDs {
				if id != p.ID {
					return a.deny(ctx, p, "athletes may only view their own records")
				}
			}
		}
		return nil

	default:
		return dErrors.New(dErrors.CodeInternal, "unknown relationship rule")
	}
}

func (a *Authorizer) requireRelationship(ctx context.Context, p Principal, athleteIDs []uuid.UUID) error {
	for _, id := range athleteIDs {
		ok, err := a.identity.VerifyCoachAthleteRelationship(ctx, p.ID, id)
		if err != nil {
			return err
		}
		if !ok {
			return a.deny(ctx, p, "athlete does not belong to this coach")
		}
	}
	return nil
}

func (a *Authorizer) deny(ctx context.Context, p Principal, reason string) error {
	a.logger.WarnContext(ctx, "authorization denied",
		"requester_id", p.ID,
		"role", p.Role,
		"reason", reason,
		"request_id", requestcontext.RequestID(ctx),
	)
	if a.metrics != nil {
		a.metrics.AuthzDenied.Inc()
	}
	return dErrors.New(dErrors.CodeForbidden, reason)
}
