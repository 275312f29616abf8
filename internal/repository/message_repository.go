package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// MessageRepository handles database operations for ticket messages.
// Messages are append-only: there is no update or delete.
type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Insert appends a message to its ticket's stream.
func (r *MessageRepository) Insert(ctx context.Context, m *models.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO message (id, ticket_id, content, type, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.TicketID, m.Content, string(m.Type), m.CreatedBy, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ListByTicket returns a ticket's messages ordered by creation time.
// Without includeInternal only public rows are returned; internal notes
// and the agent's prompt/response audit trail are filtered out in SQL so
// restricted rows never leave the store.
func (r *MessageRepository) ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]models.Message, error) {
	query := `
		SELECT id, ticket_id, content, type, created_by, created_at
		FROM message WHERE ticket_id = $1`
	args := []interface{}{ticketID}

	if !includeInternal {
		query += ` AND type = $2`
		args = append(args, string(models.MessagePublic))
	}
	query += ` ORDER BY created_at ASC`

	var messages []models.Message
	if err := r.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
