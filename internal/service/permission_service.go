package service

import (
	"context"
	"fmt"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
	"github.com/rafalszulejko/helpdesk-go/internal/repository"
)

// PermissionService is the admin surface over the role-permission store.
// The guard upstream requires admin.role.view / admin.role.edit; the agent
// and ordinary users never reach these operations.
type PermissionService struct {
	store repository.RolePermissionStore
}

func NewPermissionService(store repository.RolePermissionStore) *PermissionService {
	return &PermissionService{store: store}
}

// Roles returns the closed role enumeration.
func (s *PermissionService) Roles() []models.Role {
	return models.AllRoles
}

// Permissions returns the closed permission vocabulary.
func (s *PermissionService) Permissions() []models.Permission {
	return models.AllPermissions
}

// Assignments returns all role -> permission edges.
func (s *PermissionService) Assignments(ctx context.Context) ([]models.RolePermission, error) {
	return s.store.ListAll(ctx)
}

// Grant binds permission to role. Both values must come from the closed
// enumerations; granting an existing edge is a no-op.
func (s *PermissionService) Grant(ctx context.Context, role models.Role, permission models.Permission) error {
	if !role.Valid() {
		return NewValidationError(fmt.Sprintf("Unknown role: %s", role))
	}
	if !permission.Valid() {
		return NewValidationError(fmt.Sprintf("Unknown permission: %s", permission))
	}
	return s.store.Grant(ctx, role, permission)
}

// Revoke removes a role -> permission edge.
func (s *PermissionService) Revoke(ctx context.Context, role models.Role, permission models.Permission) error {
	if !role.Valid() {
		return NewValidationError(fmt.Sprintf("Unknown role: %s", role))
	}
	if !permission.Valid() {
		return NewValidationError(fmt.Sprintf("Unknown permission: %s", permission))
	}
	return s.store.Revoke(ctx, role, permission)
}
