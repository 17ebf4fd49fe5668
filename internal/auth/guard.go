package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spec-kit/community-service/internal/domain"
)

// LookupFunc answers whether an active (not soft-deleted) principal row
// exists for the id. Implementations must treat "not found" and
// "found but deleted" identically by returning false.
type LookupFunc func(ctx context.Context, id uuid.UUID) (bool, error)

// Guard is the active-account check for one role. A single generic guard
// parameterized by role tag and lookup replaces a per-role authorize
// function for every table.
type Guard struct {
	role   domain.RoleTag
	lookup LookupFunc
}

// NewGuard builds a guard for the given role backed by the lookup.
func NewGuard(role domain.RoleTag, lookup LookupFunc) *Guard {
	return &Guard{role: role, lookup: lookup}
}

// Role returns the role tag this guard admits.
func (g *Guard) Role() domain.RoleTag {
	return g.role
}

// Authorize checks the payload's role against this guard and re-checks the
// backing table for a live row. The database is consulted on every call, so
// retiring an account revokes access immediately even for unexpired tokens.
// On success the same payload is returned unchanged.
func (g *Guard) Authorize(ctx context.Context, payload *domain.RolePayload) (*domain.RolePayload, error) {
	if payload == nil {
		return nil, ErrMalformedPayload
	}
	if payload.Type != g.role {
		return nil, &WrongRoleError{Expected: g.role, Actual: payload.Type}
	}

	alive, err := g.lookup(ctx, payload.ID)
	if err != nil {
		return nil, fmt.Errorf("guard lookup %s: %w", g.role, err)
	}
	if !alive {
		return nil, ErrNotEnrolled
	}
	return payload, nil
}

// GuardSet indexes guards by role so callers holding only a payload (the
// refresh flow, the route middleware) can dispatch to the right table.
type GuardSet map[domain.RoleTag]*Guard

// NewGuardSet builds a set from the given guards.
func NewGuardSet(guards ...*Guard) GuardSet {
	set := make(GuardSet, len(guards))
	for _, g := range guards {
		set[g.Role()] = g
	}
	return set
}

// Authorize dispatches to the guard matching the payload's role tag.
func (s GuardSet) Authorize(ctx context.Context, payload *domain.RolePayload) (*domain.RolePayload, error) {
	if payload == nil {
		return nil, ErrMalformedPayload
	}
	guard, ok := s[payload.Type]
	if !ok {
		return nil, fmt.Errorf("%w: no guard for role %q", ErrMalformedPayload, payload.Type)
	}
	return guard.Authorize(ctx, payload)
}
