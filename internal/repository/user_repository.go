package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// UserRepository reads the directory tables: user profiles, teams and
// customer organizations. Identity issuance lives with the external
// provider; these are presentation reads only.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetProfile fetches an employee profile.
func (r *UserRepository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := `SELECT id, email, name, location, created_at FROM user_profile WHERE id = $1`

	var p models.UserProfile
	if err := r.db.GetContext(ctx, &p, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return &p, nil
}

// GetCustomer fetches a customer directory entry.
func (r *UserRepository) GetCustomer(ctx context.Context, userID string) (*models.CustomerUser, error) {
	query := `SELECT user_id, name, org_id, created_at FROM customer_user WHERE user_id = $1`

	var c models.CustomerUser
	if err := r.db.GetContext(ctx, &c, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer user: %w", err)
	}
	return &c, nil
}

// ListTeamMembers returns the user ids belonging to a team.
func (r *UserRepository) ListTeamMembers(ctx context.Context, teamID string) ([]string, error) {
	query := `SELECT user_id FROM team_member WHERE team_id = $1 ORDER BY user_id`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, teamID); err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return ids, nil
}

// ListTeams returns all teams.
func (r *UserRepository) ListTeams(ctx context.Context) ([]models.Team, error) {
	query := `SELECT id, name, created_at FROM team ORDER BY name`

	var teams []models.Team
	if err := r.db.SelectContext(ctx, &teams, query); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// GetOrg fetches a customer organization.
func (r *UserRepository) GetOrg(ctx context.Context, orgID string) (*models.CustomerOrg, error) {
	query := `SELECT id, name, created_at FROM customer_org WHERE id = $1`

	var org models.CustomerOrg
	if err := r.db.GetContext(ctx, &org, query, orgID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer org: %w", err)
	}
	return &org, nil
}
