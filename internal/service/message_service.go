package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/rafalszulejko/helpdesk-go/internal/auth"
	"github.com/rafalszulejko/helpdesk-go/internal/models"
	"github.com/rafalszulejko/helpdesk-go/internal/notify"
	"github.com/rafalszulejko/helpdesk-go/internal/repository"
)

// MessageService appends to and reads from ticket message streams.
type MessageService struct {
	messages repository.MessageStore
	tickets  repository.TicketStore
	notifier notify.Notifier
}

func NewMessageService(messages repository.MessageStore, tickets repository.TicketStore, notifier notify.Notifier) *MessageService {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &MessageService{messages: messages, tickets: tickets, notifier: notifier}
}

// Post validates and appends a message, then announces it to the realtime
// sink. A failed announcement is logged and swallowed: durability comes
// first, delivery is the sink's concern.
func (s *MessageService) Post(ctx context.Context, req models.MessageCreateRequest, author *string) (*models.Message, error) {
	if req.TicketID == "" || strings.TrimSpace(req.Content) == "" || req.Type == "" {
		return nil, NewValidationError("Missing required fields")
	}

	msgType, ok := models.ParseMessageType(req.Type)
	if !ok {
		return nil, NewValidationError(fmt.Sprintf("Unknown message type: %s", req.Type))
	}

	if _, err := s.tickets.GetByID(ctx, req.TicketID); err != nil {
		return nil, err
	}

	m := &models.Message{
		TicketID:  req.TicketID,
		Content:   strings.TrimSpace(req.Content),
		Type:      msgType,
		CreatedBy: author,
	}
	if err := s.messages.Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}

	if err := s.notifier.MessagePublished(ctx, m); err != nil {
		log.Printf("message %s stored but notify failed: %v", m.ID, err)
	}

	return m, nil
}

// History returns a ticket's messages visible to the given permission set,
// ordered by creation time. Without ticket.chat.internal the internal notes
// and the agent's prompt/response audit records are withheld.
func (s *MessageService) History(ctx context.Context, perms auth.PermissionSet, ticketID string) ([]models.Message, error) {
	if !perms.Has(models.PermissionTicketChatView) {
		return nil, auth.ErrDenied
	}

	includeInternal := perms.Has(models.PermissionTicketChatInternal)
	return s.messages.ListByTicket(ctx, ticketID, includeInternal)
}
