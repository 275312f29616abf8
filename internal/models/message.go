package models

import "time"

// MessageType tags a message row. The values are a wire contract and are
// persisted verbatim.
type MessageType string

const (
	MessagePublic        MessageType = "public"
	MessageInternal      MessageType = "internal"
	MessageAgentPrompt   MessageType = "agent_prompt"
	MessageAgentResponse MessageType = "agent_response"
)

// ParseMessageType validates a message type string.
func ParseMessageType(s string) (MessageType, bool) {
	t := MessageType(s)
	switch t {
	case MessagePublic, MessageInternal, MessageAgentPrompt, MessageAgentResponse:
		return t, true
	}
	return "", false
}

// Visibility: public messages are visible to all ticket participants;
// everything else is restricted to holders of ticket.chat.internal.
func (t MessageType) PublicVisible() bool {
	return t == MessagePublic
}

// Message belongs to exactly one ticket and is append-only: there is no
// update or delete path in the core.
type Message struct {
	ID        string      `json:"id" db:"id"`
	TicketID  string      `json:"ticket_id" db:"ticket_id"`
	Content   string      `json:"content" db:"content"`
	Type      MessageType `json:"type" db:"type"`
	CreatedBy *string     `json:"created_by,omitempty" db:"created_by"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// MessageCreateRequest is the payload accepted by POST /api/messages.
type MessageCreateRequest struct {
	TicketID string `json:"ticket_id"`
	Content  string `json:"content"`
	Type     string `json:"type"`
}
