package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// MemoryMessageRepository is an in-memory MessageStore for tests.
type MemoryMessageRepository struct {
	mu       sync.RWMutex
	messages []models.Message

	// FailInsert makes the next Insert fail, for audit-trail failure tests.
	FailInsert error
}

func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{}
}

func (r *MemoryMessageRepository) Insert(_ context.Context, m *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailInsert != nil {
		return r.FailInsert
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	r.messages = append(r.messages, *m)
	return nil
}

func (r *MemoryMessageRepository) ListByTicket(_ context.Context, ticketID string, includeInternal bool) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Message
	for _, m := range r.messages {
		if m.TicketID != ticketID {
			continue
		}
		if !includeInternal && !m.Type.PublicVisible() {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// All returns every stored message regardless of ticket or visibility.
// Test helper.
func (r *MemoryMessageRepository) All() []models.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Message, len(r.messages))
	copy(out, r.messages)
	return out
}
