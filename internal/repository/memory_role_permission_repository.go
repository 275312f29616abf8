package repository

import (
	"context"
	"sync"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// MemoryRolePermissionRepository is an in-memory RolePermissionStore for
// tests.
type MemoryRolePermissionRepository struct {
	mu    sync.RWMutex
	edges map[models.Role]map[models.Permission]struct{}
}

func NewMemoryRolePermissionRepository() *MemoryRolePermissionRepository {
	return &MemoryRolePermissionRepository{edges: make(map[models.Role]map[models.Permission]struct{})}
}

func (r *MemoryRolePermissionRepository) GetPermissionsForRole(_ context.Context, role models.Role) ([]models.Permission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Permission
	for p := range r.edges[role] {
		out = append(out, p)
	}
	return out, nil
}

func (r *MemoryRolePermissionRepository) ListAll(_ context.Context) ([]models.RolePermission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.RolePermission
	id := 0
	for role, perms := range r.edges {
		for p := range perms {
			id++
			out = append(out, models.RolePermission{ID: id, Role: role, Permission: p})
		}
	}
	return out, nil
}

func (r *MemoryRolePermissionRepository) Grant(_ context.Context, role models.Role, permission models.Permission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.edges[role] == nil {
		r.edges[role] = make(map[models.Permission]struct{})
	}
	r.edges[role][permission] = struct{}{}
	return nil
}

func (r *MemoryRolePermissionRepository) Revoke(_ context.Context, role models.Role, permission models.Permission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.edges[role], permission)
	return nil
}
