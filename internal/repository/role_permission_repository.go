package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// RolePermissionRepository reads and mutates the role_permissions table.
// Edges have idempotent set semantics: granting an existing pair is a
// no-op, uniqueness is on (role, permission).
type RolePermissionRepository struct {
	db *sqlx.DB
}

func NewRolePermissionRepository(db *sqlx.DB) *RolePermissionRepository {
	return &RolePermissionRepository{db: db}
}

// GetPermissionsForRole returns every permission bound to role.
func (r *RolePermissionRepository) GetPermissionsForRole(ctx context.Context, role models.Role) ([]models.Permission, error) {
	query := `SELECT permission FROM role_permissions WHERE role = $1 ORDER BY permission`

	rows, err := r.db.QueryContext(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to get role permissions: %w", err)
	}
	defer rows.Close()

	var permissions []models.Permission
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		permissions = append(permissions, models.Permission(p))
	}

	return permissions, rows.Err()
}

// ListAll returns the full role -> permission matrix.
func (r *RolePermissionRepository) ListAll(ctx context.Context) ([]models.RolePermission, error) {
	query := `SELECT id, role, permission FROM role_permissions ORDER BY role, permission`

	var edges []models.RolePermission
	if err := r.db.SelectContext(ctx, &edges, query); err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	return edges, nil
}

// Grant adds a role -> permission edge. Granting an existing edge is a
// no-op.
func (r *RolePermissionRepository) Grant(ctx context.Context, role models.Role, permission models.Permission) error {
	query := `
		INSERT INTO role_permissions (role, permission)
		VALUES ($1, $2)
		ON CONFLICT (role, permission) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, string(role), string(permission)); err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}
	return nil
}

// Revoke removes a role -> permission edge.
func (r *RolePermissionRepository) Revoke(ctx context.Context, role models.Role, permission models.Permission) error {
	query := `DELETE FROM role_permissions WHERE role = $1 AND permission = $2`

	if _, err := r.db.ExecContext(ctx, query, string(role), string(permission)); err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}
	return nil
}
