package service

import (
	"context"
	"fmt"

	"github.com/rafalszulejko/helpdesk-go/internal/auth"
	"github.com/rafalszulejko/helpdesk-go/internal/models"
	"github.com/rafalszulejko/helpdesk-go/internal/repository"
	"github.com/rafalszulejko/helpdesk-go/internal/ticketutil"
)

// TicketService is the single mutation surface for tickets. Direct user
// edits and agent tool calls both funnel through it, so the permission and
// transition checks here cannot be bypassed by either path.
type TicketService struct {
	tickets repository.TicketStore
}

func NewTicketService(tickets repository.TicketStore) *TicketService {
	return &TicketService{tickets: tickets}
}

// Get fetches a ticket. The actor needs ticket.view.
func (s *TicketService) Get(ctx context.Context, actor Actor, id string) (*models.Ticket, error) {
	if !actor.Can(models.PermissionTicketView) {
		return nil, auth.ErrDenied
	}
	return s.tickets.GetByID(ctx, id)
}

// Create opens a new ticket in NEW on behalf of the actor.
func (s *TicketService) Create(ctx context.Context, actor Actor, req models.TicketCreateRequest) (*models.Ticket, error) {
	if !actor.Can(models.PermissionTicketListCreate) {
		return nil, auth.ErrDenied
	}
	if req.Title == "" {
		return nil, NewValidationError("Missing required fields")
	}

	t := &models.Ticket{
		Title:       req.Title,
		Description: req.Description,
		TypeID:      req.TypeID,
		State:       models.StateNew,
		CreatedBy:   actor.UserID,
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating ticket: %w", err)
	}
	return t, nil
}

// ListOwn returns the tickets the actor created, newest first per store
// ordering. The actor needs ticket.list.view.
func (s *TicketService) ListOwn(ctx context.Context, actor Actor) ([]models.Ticket, error) {
	if !actor.Can(models.PermissionTicketListView) {
		return nil, auth.ErrDenied
	}
	return s.tickets.ListByCreator(ctx, actor.UserID)
}

// ChangeState moves a ticket to newState. This is the authoritative check:
// the actor must hold ticket.state.edit, and the transition must be in the
// allowed set for the actor's role, regardless of what any UI offered.
func (s *TicketService) ChangeState(ctx context.Context, actor Actor, ticketID, newState string) (*models.Ticket, error) {
	if !actor.Can(models.PermissionTicketStateEdit) {
		return nil, auth.ErrDenied
	}

	state, ok := models.ParseTicketState(newState)
	if !ok {
		return nil, NewValidationError(fmt.Sprintf("Unknown ticket state: %s", newState))
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if !ticketutil.CanTransition(ticket.State, state, actor.Role) {
		return nil, ErrInvalidTransition
	}

	return s.tickets.UpdateState(ctx, ticketID, state)
}

// Assign sets the ticket's assignee. The actor needs ticket.assignee.edit.
func (s *TicketService) Assign(ctx context.Context, actor Actor, ticketID string, assignee *string) error {
	if !actor.Can(models.PermissionTicketAssigneeEdit) {
		return auth.ErrDenied
	}
	return s.tickets.UpdateAssignee(ctx, ticketID, assignee)
}
