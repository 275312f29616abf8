package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// MemoryTicketRepository is an in-memory TicketStore for tests.
type MemoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]models.Ticket
}

func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{tickets: make(map[string]models.Ticket)}
}

func (r *MemoryTicketRepository) Create(_ context.Context, t *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

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
	r.tickets[t.ID] = *t
	return nil
}

func (r *MemoryTicketRepository) GetByID(_ context.Context, id string) (*models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *MemoryTicketRepository) UpdateState(_ context.Context, id string, state models.TicketState) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.State = state
	t.UpdatedAt = time.Now().UTC()
	r.tickets[id] = t
	return &t, nil
}

func (r *MemoryTicketRepository) UpdateAssignee(_ context.Context, id string, assignee *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tickets[id]
	if !ok {
		return ErrNotFound
	}
	t.Assignee = assignee
	t.UpdatedAt = time.Now().UTC()
	r.tickets[id] = t
	return nil
}

func (r *MemoryTicketRepository) ListByCreator(_ context.Context, userID string) ([]models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Ticket
	for _, t := range r.tickets {
		if t.CreatedBy == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
