// Package notify publishes message-append events to the external realtime
// sink. Delivery to connected clients is the sink's job; the core only
// writes messages durably and announces them.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// Notifier announces a newly appended message.
type Notifier interface {
	MessagePublished(ctx context.Context, m *models.Message) error
}

// RedisNotifier publishes append events to a per-ticket channel.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

// MessagePublished publishes the message as JSON on ticket:<id>:messages.
func (n *RedisNotifier) MessagePublished(ctx context.Context, m *models.Message) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding message event: %w", err)
	}

	channel := fmt.Sprintf("ticket:%s:messages", m.TicketID)
	if err := n.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publishing message event: %w", err)
	}
	return nil
}

// NopNotifier drops events. Used in tests and when no sink is configured.
type NopNotifier struct{}

func (NopNotifier) MessagePublished(context.Context, *models.Message) error { return nil }
