package models

import (
	"strings"
	"time"
)

// TicketState is the lifecycle state of a ticket. The set is flat: there
// are no sub-states.
type TicketState string

const (
	StateNew     TicketState = "NEW"
	StateOpen    TicketState = "OPEN"
	StatePending TicketState = "PENDING"
	StateSolved  TicketState = "SOLVED"
	StateClosed  TicketState = "CLOSED"
)

// AllTicketStates lists every lifecycle state.
var AllTicketStates = []TicketState{StateNew, StateOpen, StatePending, StateSolved, StateClosed}

// ParseTicketState normalizes case and validates the value. Returns false
// for anything outside the enumeration.
func ParseTicketState(s string) (TicketState, bool) {
	state := TicketState(strings.ToUpper(strings.TrimSpace(s)))
	switch state {
	case StateNew, StateOpen, StatePending, StateSolved, StateClosed:
		return state, true
	}
	return "", false
}

// Ticket is the support-request aggregate root. A ticket always has exactly
// one creator and at most one assignee.
type Ticket struct {
	ID          string      `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	TypeID      *string     `json:"type_id,omitempty" db:"type_id"`
	State       TicketState `json:"state" db:"state"`
	CreatedBy   string      `json:"created_by" db:"created_by"`
	Assignee    *string     `json:"assignee,omitempty" db:"assignee"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// TicketType is an entry in the ticket-type taxonomy.
type TicketType struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TicketTypeMetadataType binds a metadata type to a ticket type, declaring
// which custom fields a ticket of that type carries.
type TicketTypeMetadataType struct {
	TicketTypeID string `json:"ticket_type_id" db:"ticket_type_id"`
	MetadataType string `json:"metadata_type" db:"metadata_type"`
}

// TicketCreateRequest is the payload for creating a ticket.
type TicketCreateRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	Description string  `json:"description"`
	TypeID      *string `json:"type_id,omitempty"`
}

// TicketStateChangeRequest is the payload for a state transition.
type TicketStateChangeRequest struct {
	NewState string `json:"new_state" binding:"required"`
}
