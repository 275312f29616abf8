package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/rafalszulejko/helpdesk-go/internal/metrics"
	"github.com/rafalszulejko/helpdesk-go/internal/models"
	"github.com/rafalszulejko/helpdesk-go/internal/service"
)

// Tool is one capability offered to the model, bound to a fixed ticket.
// Execution always returns a JSON success/failure envelope for the model
// to react to; a tool never raises an error up the loop.
type Tool struct {
	Name        string
	Description string
	Schema      map[string]any
	run         func(ctx context.Context, args json.RawMessage) (string, error)
}

// Def returns the manifest entry for the tool.
func (t *Tool) Def() ToolDef {
	return ToolDef{Name: t.Name, Description: t.Description, Parameters: t.Schema}
}

// Execute validates args against the tool's schema and runs it. The
// returned string is the envelope handed back to the model.
func (t *Tool) Execute(ctx context.Context, args json.RawMessage) string {
	if err := t.validate(args); err != nil {
		metrics.AgentToolCalls.WithLabelValues(t.Name, "invalid_args").Inc()
		return failureEnvelope(err.Error())
	}

	result, err := t.run(ctx, args)
	if err != nil {
		metrics.AgentToolCalls.WithLabelValues(t.Name, "failure").Inc()
		return failureEnvelope(err.Error())
	}
	metrics.AgentToolCalls.WithLabelValues(t.Name, "success").Inc()
	return result
}

func (t *Tool) validate(args json.RawMessage) error {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	schema := gojsonschema.NewGoLoader(t.Schema)
	document := gojsonschema.NewBytesLoader(args)

	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return fmt.Errorf("invalid tool arguments: %v", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("invalid tool arguments: %s", strings.Join(problems, "; "))
	}
	return nil
}

func successEnvelope(data any) string {
	payload, err := json.Marshal(map[string]any{"success": true, "data": data})
	if err != nil {
		return failureEnvelope(err.Error())
	}
	return string(payload)
}

func failureEnvelope(msg string) string {
	payload, _ := json.Marshal(map[string]any{"success": false, "error": msg})
	return string(payload)
}

func stringSchema(property, description string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			property: map[string]any{
				"type":        "string",
				"description": description,
			},
		},
		"required":             []string{property},
		"additionalProperties": false,
	}
}

// Toolset is the fixed tool collection for one agent run. Every tool is a
// closure over the ticket id, so the model cannot target another ticket,
// and every mutation goes through the same service surface as a human
// edit: the actor's permissions and the role transition table are
// re-checked at the point of execution.
type Toolset struct {
	tools map[string]*Tool
	defs  []ToolDef
}

// NewToolset builds the ticket-bound tools for actor.
func NewToolset(ticketID string, actor service.Actor, tickets *service.TicketService, metadata *service.MetadataService, messages *service.MessageService) *Toolset {
	author := actor.UserID

	stateTool := &Tool{
		Name: "update_ticket_state",
		Description: "Updates the state of the current ticket. " +
			"Use PENDING when asking the customer for more information or to confirm the solution of the ticket.",
		Schema: stringSchema("newState", "The new state to set for the ticket"),
	}
	stateTool.run = func(ctx context.Context, args json.RawMessage) (string, error) {
		var params struct {
			NewState string `json:"newState"`
		}
		if err := json.Unmarshal(args, &params); err != nil {
			return "", fmt.Errorf("invalid tool arguments: %v", err)
		}

		ticket, err := tickets.ChangeState(ctx, actor, ticketID, params.NewState)
		if err != nil {
			return "", err
		}
		return successEnvelope(map[string]any{
			"id":    ticket.ID,
			"state": ticket.State,
			"title": ticket.Title,
		}), nil
	}

	priorityTool := &Tool{
		Name:        "update_ticket_priority",
		Description: "Updates the priority of the current ticket",
		Schema:      stringSchema("newPriority", "The new priority to set for the ticket"),
	}
	priorityTool.run = func(ctx context.Context, args json.RawMessage) (string, error) {
		var params struct {
			NewPriority string `json:"newPriority"`
		}
		if err := json.Unmarshal(args, &params); err != nil {
			return "", fmt.Errorf("invalid tool arguments: %v", err)
		}

		value := strings.ToUpper(strings.TrimSpace(params.NewPriority))
		mv, err := metadata.SetValue(ctx, ticketID, models.MetadataTypePriority, value)
		if err != nil {
			return "", err
		}
		return successEnvelope(map[string]any{
			"id":       ticketID,
			"priority": mv.Value,
		}), nil
	}

	messageTool := &Tool{
		Name:        "send_public_message",
		Description: "Sends a public message on behalf of the company employee in the current ticket chat",
		Schema:      stringSchema("message", "The message content to send"),
	}
	messageTool.run = func(ctx context.Context, args json.RawMessage) (string, error) {
		var params struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(args, &params); err != nil {
			return "", fmt.Errorf("invalid tool arguments: %v", err)
		}

		m, err := messages.Post(ctx, models.MessageCreateRequest{
			TicketID: ticketID,
			Content:  params.Message,
			Type:     string(models.MessagePublic),
		}, &author)
		if err != nil {
			return "", err
		}
		return successEnvelope(map[string]any{
			"id":      m.ID,
			"content": m.Content,
			"type":    m.Type,
		}), nil
	}

	ts := &Toolset{tools: make(map[string]*Tool)}
	for _, tool := range []*Tool{stateTool, priorityTool, messageTool} {
		ts.tools[tool.Name] = tool
		ts.defs = append(ts.defs, tool.Def())
	}
	return ts
}

// Defs returns the tool manifest for the reasoning engine.
func (ts *Toolset) Defs() []ToolDef {
	return ts.defs
}

// Execute dispatches a tool call by name. An unknown tool yields a failure
// envelope, like any other recoverable tool error.
func (ts *Toolset) Execute(ctx context.Context, call ToolCall) string {
	tool, ok := ts.tools[call.Name]
	if !ok {
		metrics.AgentToolCalls.WithLabelValues(call.Name, "unknown").Inc()
		return failureEnvelope(fmt.Sprintf("Unknown tool: %s", call.Name))
	}
	return tool.Execute(ctx, call.Arguments)
}
