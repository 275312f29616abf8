package auth

import (
	"context"
	"fmt"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// PermissionSet is the effective permission set for one request.
type PermissionSet map[models.Permission]struct{}

// Has reports whether p is in the set.
func (s PermissionSet) Has(p models.Permission) bool {
	_, ok := s[p]
	return ok
}

// Slice returns the set's members in unspecified order.
func (s PermissionSet) Slice() []models.Permission {
	out := make([]models.Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	return out
}

// RolePermissionStore is the read side of the role -> permission mapping.
type RolePermissionStore interface {
	GetPermissionsForRole(ctx context.Context, role models.Role) ([]models.Permission, error)
}

// Resolver computes the effective permission set for a session token.
// It is a pure read: no caching beyond the caller's request scope, so a
// revoked permission takes effect on the next request.
type Resolver struct {
	tokens *TokenReader
	store  RolePermissionStore
}

func NewResolver(tokens *TokenReader, store RolePermissionStore) *Resolver {
	return &Resolver{tokens: tokens, store: store}
}

// RoleFor decodes and verifies the token and returns the role claim.
// Absent, expired or unverifiable tokens yield "" (fail closed, not open).
func (r *Resolver) RoleFor(tokenString string) models.Role {
	if tokenString == "" {
		return ""
	}
	claims, err := r.tokens.Parse(tokenString)
	if err != nil {
		return ""
	}
	return claims.Role()
}

// Claims decodes and verifies the token and returns its claims.
func (r *Resolver) Claims(tokenString string) (*Claims, error) {
	return r.tokens.Parse(tokenString)
}

// Resolve returns the permission set for the token's role. A session that
// fails verification or carries no role yields the empty set with no error.
// A store failure is returned as an error: callers must treat it as a
// denial, never as an allow.
func (r *Resolver) Resolve(ctx context.Context, tokenString string) (PermissionSet, error) {
	role := r.RoleFor(tokenString)
	if role == "" {
		return PermissionSet{}, nil
	}

	perms, err := r.store.GetPermissionsForRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("resolving permissions for role %s: %w", role, err)
	}

	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set, nil
}
