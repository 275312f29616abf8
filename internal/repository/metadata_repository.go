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

// MetadataRepository handles database operations for the typed custom-field
// system: metadata types, their dictionaries and per-ticket values.
type MetadataRepository struct {
	db *sqlx.DB
}

func NewMetadataRepository(db *sqlx.DB) *MetadataRepository {
	return &MetadataRepository{db: db}
}

// GetType fetches a metadata type by name.
func (r *MetadataRepository) GetType(ctx context.Context, name string) (*models.MetadataType, error) {
	query := `SELECT name, kind, created_at FROM metadata_type WHERE name = $1`

	var mt models.MetadataType
	if err := r.db.GetContext(ctx, &mt, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get metadata type: %w", err)
	}
	return &mt, nil
}

// ListTypes returns all metadata types.
func (r *MetadataRepository) ListTypes(ctx context.Context) ([]models.MetadataType, error) {
	query := `SELECT name, kind, created_at FROM metadata_type ORDER BY name`

	var types []models.MetadataType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("failed to list metadata types: %w", err)
	}
	return types, nil
}

// DictValues returns the legal values for a DICT-kind metadata type.
func (r *MetadataRepository) DictValues(ctx context.Context, typeName string) ([]string, error) {
	query := `SELECT value FROM metadata_dict WHERE metadata_type = $1 ORDER BY id`

	var values []string
	if err := r.db.SelectContext(ctx, &values, query, typeName); err != nil {
		return nil, fmt.Errorf("failed to get dict values: %w", err)
	}
	return values, nil
}

// GetValue fetches the value bound to (ticket, metadata type), if any.
func (r *MetadataRepository) GetValue(ctx context.Context, ticketID, typeName string) (*models.MetadataValue, error) {
	query := `
		SELECT id, ticket_id, metadata_type, value, created_at
		FROM metadata_value WHERE ticket_id = $1 AND metadata_type = $2`

	var mv models.MetadataValue
	if err := r.db.GetContext(ctx, &mv, query, ticketID, typeName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get metadata value: %w", err)
	}
	return &mv, nil
}

// UpsertValue updates the value for (ticket, metadata type) if a row
// exists, otherwise inserts one. At most one row exists per pair.
func (r *MetadataRepository) UpsertValue(ctx context.Context, v *models.MetadataValue) error {
	updateQuery := `
		UPDATE metadata_value SET value = $3
		WHERE ticket_id = $1 AND metadata_type = $2`

	result, err := r.db.ExecContext(ctx, updateQuery, v.TicketID, v.MetadataType, v.Value)
	if err != nil {
		return fmt.Errorf("failed to update metadata value: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		if v.CreatedAt.IsZero() {
			v.CreatedAt = time.Now().UTC()
		}
		insertQuery := `
			INSERT INTO metadata_value (id, ticket_id, metadata_type, value, created_at)
			VALUES ($1, $2, $3, $4, $5)`

		if _, err := r.db.ExecContext(ctx, insertQuery, v.ID, v.TicketID, v.MetadataType, v.Value, v.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert metadata value: %w", err)
		}
	}

	return nil
}

// ListValues returns all metadata values for a ticket.
func (r *MetadataRepository) ListValues(ctx context.Context, ticketID string) ([]models.MetadataValue, error) {
	query := `
		SELECT id, ticket_id, metadata_type, value, created_at
		FROM metadata_value WHERE ticket_id = $1
		ORDER BY metadata_type`

	var values []models.MetadataValue
	if err := r.db.SelectContext(ctx, &values, query, ticketID); err != nil {
		return nil, fmt.Errorf("failed to list metadata values: %w", err)
	}
	return values, nil
}
