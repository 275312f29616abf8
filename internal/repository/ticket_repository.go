package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// TicketRepository handles database operations for tickets.
type TicketRepository struct {
	db *sqlx.DB
}

func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create inserts a new ticket. The ID and timestamps are filled in when
// absent; new tickets start in NEW unless a state was set explicitly.
func (r *TicketRepository) Create(ctx context.Context, t *models.Ticket) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.State == "" {
		t.State = models.StateNew
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	query := `
		INSERT INTO ticket (id, title, description, type_id, state, created_by, assignee, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.TypeID, string(t.State), t.CreatedBy, t.Assignee, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// GetByID fetches a single ticket.
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	query := `
		SELECT id, title, description, type_id, state, created_by, assignee, created_at, updated_at
		FROM ticket WHERE id = $1`

	var t models.Ticket
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return &t, nil
}

// UpdateState writes the new state and returns the updated row.
func (r *TicketRepository) UpdateState(ctx context.Context, id string, state models.TicketState) (*models.Ticket, error) {
	query := `
		UPDATE ticket SET state = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, title, description, type_id, state, created_by, assignee, created_at, updated_at`

	var t models.Ticket
	if err := r.db.GetContext(ctx, &t, query, id, string(state), time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update ticket state: %w", err)
	}
	return &t, nil
}

// UpdateAssignee sets or clears the ticket's assignee.
func (r *TicketRepository) UpdateAssignee(ctx context.Context, id string, assignee *string) error {
	query := `UPDATE ticket SET assignee = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, assignee, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update assignee: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByCreator returns the tickets a user created, newest first.
func (r *TicketRepository) ListByCreator(ctx context.Context, userID string) ([]models.Ticket, error) {
	query := `
		SELECT id, title, description, type_id, state, created_by, assignee, created_at, updated_at
		FROM ticket WHERE created_by = $1
		ORDER BY created_at DESC`

	var tickets []models.Ticket
	if err := r.db.SelectContext(ctx, &tickets, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}
