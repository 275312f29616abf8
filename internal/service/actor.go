package service

import (
	"github.com/rafalszulejko/helpdesk-go/internal/auth"
	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// Actor identifies who is performing a mutation and what they may do.
// Both human requests and agent tool calls build one; the agent acts as
// the principal of the user who prompted it, never as a privileged system
// identity.
type Actor struct {
	UserID      string
	Role        models.Role
	Permissions auth.PermissionSet
}

// Can reports whether the actor holds p.
func (a Actor) Can(p models.Permission) bool {
	return a.Permissions.Has(p)
}
