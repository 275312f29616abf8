// Package agent drives the LLM ticket agent: a bounded tool-call loop that
// acts on a single ticket under the prompting user's permissions and
// records every step in the ticket's message stream.
package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rafalszulejko/helpdesk-go/internal/metrics"
	"github.com/rafalszulejko/helpdesk-go/internal/models"
	"github.com/rafalszulejko/helpdesk-go/internal/repository"
	"github.com/rafalszulejko/helpdesk-go/internal/service"
)

// DefaultMaxSteps bounds a run when no explicit budget is configured. The
// reasoning engine's own termination is not trusted: without a budget a
// runaway model would write to the message stream without bound.
const DefaultMaxSteps = 8

const reasoningNarration = "Response"
const reasoningToolCall = "Tool call"

// Runner executes agent runs. Safe for concurrent use across tickets; runs
// on the same ticket are serialized so two prompts cannot interleave tool
// calls. Concurrent human edits are not serialized against a run:
// last writer wins, each tool call being a single atomic mutation.
type Runner struct {
	chat     ChatClient
	tickets  repository.TicketStore
	ticketSv *service.TicketService
	metadata *service.MetadataService
	messages *service.MessageService
	maxSteps int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRunner(chat ChatClient, tickets repository.TicketStore, ticketSv *service.TicketService, metadata *service.MetadataService, messages *service.MessageService, maxSteps int) *Runner {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Runner{
		chat:     chat,
		tickets:  tickets,
		ticketSv: ticketSv,
		metadata: metadata,
		messages: messages,
		maxSteps: maxSteps,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (r *Runner) ticketLock(ticketID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[ticketID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[ticketID] = lock
	}
	return lock
}

// Run drives one agent conversation for the ticket. The actor is the
// principal of the human who posted the prompt; every tool call re-runs
// the same permission and transition checks as a direct edit by them.
//
// Failure semantics: a failed ticket lookup aborts before any write; a
// failed audit-record write aborts the loop (losing the trail is worse
// than stopping); tool failures are returned to the model as envelopes and
// are recoverable within the remaining step budget.
func (r *Runner) Run(ctx context.Context, actor service.Actor, ticketID, prompt string) error {
	lock := r.ticketLock(ticketID)
	lock.Lock()
	defer lock.Unlock()

	started := time.Now()
	defer func() { metrics.AgentRunDuration.Observe(time.Since(started).Seconds()) }()

	ticket, err := r.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("agent run aborted, ticket lookup failed: %w", err)
	}

	values, err := r.metadata.Values(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("agent run aborted, metadata lookup failed: %w", err)
	}

	toolset := NewToolset(ticketID, actor, r.ticketSv, r.metadata, r.messages)
	conversation := []ChatMessage{
		{Role: RoleSystem, Content: composeContext(ticket, values)},
		{Role: RoleUser, Content: prompt},
	}

	author := actor.UserID
	for step := 0; step < r.maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			// Cancelled between steps: no tool call is half-applied, so
			// stopping here is always safe. Close the trace with a fresh
			// context so the closing record still lands.
			return r.finalize(context.WithoutCancel(ctx), ticketID, &author, "Run cancelled.")
		}

		completion, err := r.chat.Complete(ctx, CompletionRequest{
			Messages: conversation,
			Tools:    toolset.Defs(),
		})
		if err != nil {
			return fmt.Errorf("agent run aborted, completion failed: %w", err)
		}

		msg := completion.Message
		conversation = append(conversation, msg)

		if len(msg.ToolCalls) > 0 {
			// Record intent before executing, so the trace captures the
			// call even if execution fails afterwards.
			for _, call := range msg.ToolCalls {
				record := &models.AgentResponse{
					Reasoning:     reasoningToolCall,
					ProposedTool:  call.Name,
					ToolArguments: call.Arguments,
				}
				if err := r.persistStep(ctx, ticketID, &author, record); err != nil {
					return err
				}
				metrics.AgentSteps.WithLabelValues("tool_call").Inc()

				result := toolset.Execute(ctx, call)
				conversation = append(conversation, ChatMessage{
					Role:       RoleTool,
					Content:    result,
					ToolCallID: call.ID,
				})
			}
			continue
		}

		if msg.Content != "" {
			record := &models.AgentResponse{
				Reasoning: reasoningNarration,
				Message:   msg.Content,
			}
			if err := r.persistStep(ctx, ticketID, &author, record); err != nil {
				return err
			}
			metrics.AgentSteps.WithLabelValues("narration").Inc()
		}

		// No tool calls left: the conversation is over.
		return r.finalize(ctx, ticketID, &author, "")
	}

	// Step budget exhausted mid-sequence. The ticket is left as the last
	// completed tool call put it; the trace still gets its closing record.
	return r.finalize(ctx, ticketID, &author, "Stopped: step budget exhausted.")
}

func (r *Runner) finalize(ctx context.Context, ticketID string, author *string, note string) error {
	record := &models.AgentResponse{
		Reasoning: reasoningNarration,
		Message:   note,
		IsFinal:   true,
	}
	if err := r.persistStep(ctx, ticketID, author, record); err != nil {
		return err
	}
	metrics.AgentSteps.WithLabelValues("final").Inc()
	return nil
}

// persistStep writes one agent_response row. This is the audit trail;
// failure here is fatal to the run.
func (r *Runner) persistStep(ctx context.Context, ticketID string, author *string, record *models.AgentResponse) error {
	content, err := record.Encode()
	if err != nil {
		return fmt.Errorf("encoding agent step: %w", err)
	}

	_, err = r.messages.Post(ctx, models.MessageCreateRequest{
		TicketID: ticketID,
		Content:  content,
		Type:     string(models.MessageAgentResponse),
	}, author)
	if err != nil {
		return fmt.Errorf("agent run aborted, persisting step failed: %w", err)
	}
	return nil
}

func composeContext(ticket *models.Ticket, values []models.MetadataValue) string {
	var b strings.Builder
	b.WriteString("You are a support agent assistant acting on a single ticket.\n")
	b.WriteString("Current ticket:\n")
	fmt.Fprintf(&b, "  Title: %s\n", ticket.Title)
	description := ticket.Description
	if description == "" {
		description = "No description"
	}
	fmt.Fprintf(&b, "  Description: %s\n", description)
	fmt.Fprintf(&b, "  State: %s\n", ticket.State)
	if len(values) > 0 {
		b.WriteString("  Metadata:\n")
		for _, v := range values {
			fmt.Fprintf(&b, "    %s: %s\n", v.MetadataType, v.Value)
		}
	}
	b.WriteString("Use the provided tools to act on this ticket only. ")
	b.WriteString("If the request is ambiguous or the tools do not cover it, ")
	b.WriteString("reply with a clarifying question instead of guessing.")
	return b.String()
}
