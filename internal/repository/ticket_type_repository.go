package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// TicketTypeRepository reads the ticket-type taxonomy and its metadata
// bindings.
type TicketTypeRepository struct {
	db *sqlx.DB
}

func NewTicketTypeRepository(db *sqlx.DB) *TicketTypeRepository {
	return &TicketTypeRepository{db: db}
}

// List returns all ticket types.
func (r *TicketTypeRepository) List(ctx context.Context) ([]models.TicketType, error) {
	query := `SELECT id, name, description, created_at FROM ticket_type ORDER BY name`

	var types []models.TicketType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("failed to list ticket types: %w", err)
	}
	return types, nil
}

// GetByID fetches a single ticket type.
func (r *TicketTypeRepository) GetByID(ctx context.Context, id string) (*models.TicketType, error) {
	query := `SELECT id, name, description, created_at FROM ticket_type WHERE id = $1`

	var tt models.TicketType
	if err := r.db.GetContext(ctx, &tt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ticket type: %w", err)
	}
	return &tt, nil
}

// MetadataTypesFor returns the metadata type names bound to a ticket type.
func (r *TicketTypeRepository) MetadataTypesFor(ctx context.Context, ticketTypeID string) ([]string, error) {
	query := `
		SELECT metadata_type FROM ticket_type_metadata_type
		WHERE ticket_type_id = $1 ORDER BY metadata_type`

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, ticketTypeID); err != nil {
		return nil, fmt.Errorf("failed to list ticket type metadata: %w", err)
	}
	return names, nil
}
