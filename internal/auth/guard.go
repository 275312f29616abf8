package auth

import (
	"context"
	"errors"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// ErrDenied signals a failed permission check. The presentation layer maps
// it to a not-found-style response so a denied resource is
// indistinguishable from a missing one.
var ErrDenied = errors.New("access denied")

// Guard is the enforcement point in front of every protected action.
// It is idempotent and side-effect free; calling it twice in one request
// is safe.
type Guard struct {
	resolver *Resolver
}

func NewGuard(resolver *Resolver) *Guard {
	return &Guard{resolver: resolver}
}

// Check allows the action when required is empty (universally accessible
// views declare no permission). Otherwise it resolves the session and
// denies unless the permission is present. Resolution failures deny too:
// the guard never fails open.
func (g *Guard) Check(ctx context.Context, tokenString string, required models.Permission) error {
	if required == "" {
		return nil
	}

	perms, err := g.resolver.Resolve(ctx, tokenString)
	if err != nil {
		return ErrDenied
	}
	if !perms.Has(required) {
		return ErrDenied
	}
	return nil
}

// CheckSet is Check against an already-resolved permission set. Used by
// handlers that resolve once per request and guard several actions.
func (g *Guard) CheckSet(perms PermissionSet, required models.Permission) error {
	if required == "" {
		return nil
	}
	if perms == nil || !perms.Has(required) {
		return ErrDenied
	}
	return nil
}
