package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
	"github.com/rafalszulejko/helpdesk-go/internal/service"
)

// scriptedChat replays a fixed sequence of completions and records every
// request it receives, so tests can assert on the conversation the loop
// builds up.
type scriptedChat struct {
	steps    []Completion
	err      error
	requests []CompletionRequest
}

func (c *scriptedChat) Complete(_ context.Context, req CompletionRequest) (*Completion, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	if len(c.steps) == 0 {
		return &Completion{Message: ChatMessage{Role: RoleAssistant, Content: "Nothing left to do."}}, nil
	}
	step := c.steps[0]
	c.steps = c.steps[1:]
	return &step, nil
}

func toolCallStep(id, name, args string) Completion {
	return Completion{Message: ChatMessage{
		Role: RoleAssistant,
		ToolCalls: []ToolCall{{
			ID:        id,
			Name:      name,
			Arguments: json.RawMessage(args),
		}},
	}}
}

func narrationStep(content string) Completion {
	return Completion{Message: ChatMessage{Role: RoleAssistant, Content: content}}
}

func newRunnerFixture(t *testing.T, chat ChatClient, maxSteps int) *toolFixture {
	t.Helper()
	fx := newToolFixture(t, models.StateOpen, employeeActor(models.PermissionTicketStateEdit))
	ticketSvc := service.NewTicketService(fx.tickets)
	metadataSvc := service.NewMetadataService(fx.metadata)
	messageSvc := service.NewMessageService(fx.messages, fx.tickets, nil)
	fx.runner = NewRunner(chat, fx.tickets, ticketSvc, metadataSvc, messageSvc, maxSteps)
	return fx
}

func agentRecords(t *testing.T, fx *toolFixture) []models.AgentResponse {
	t.Helper()
	var out []models.AgentResponse
	for _, m := range fx.messages.All() {
		if m.Type != models.MessageAgentResponse {
			continue
		}
		record, ok := models.DecodeAgentResponse(m.Content)
		require.True(t, ok, "undecodable agent record: %s", m.Content)
		out = append(out, *record)
	}
	return out
}

func countFinal(records []models.AgentResponse) int {
	n := 0
	for _, r := range records {
		if r.IsFinal {
			n++
		}
	}
	return n
}

func TestRunnerPersistsEveryStep(t *testing.T) {
	chat := &scriptedChat{steps: []Completion{
		toolCallStep("call-1", "update_ticket_priority", `{"newPriority":"urgent"}`),
		narrationStep("Priority raised to urgent."),
	}}
	fx := newRunnerFixture(t, chat, 0)
	actor := employeeActor()

	err := fx.runner.Run(context.Background(), actor, fx.ticket.ID, "bump the priority, this is on fire")
	require.NoError(t, err)

	records := agentRecords(t, fx)
	require.Len(t, records, 3)

	assert.Equal(t, "update_ticket_priority", records[0].ProposedTool)
	assert.JSONEq(t, `{"newPriority":"urgent"}`, string(records[0].ToolArguments))
	assert.False(t, records[0].IsFinal)

	assert.Equal(t, "Priority raised to urgent.", records[1].Message)
	assert.False(t, records[1].IsFinal)

	assert.True(t, records[2].IsFinal)
	assert.Equal(t, 1, countFinal(records))

	values, err := fx.metadata.ListValues(context.Background(), fx.ticket.ID)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "URGENT", values[0].Value)

	// The second round trip must carry the tool result back to the model.
	require.Len(t, chat.requests, 2)
	last := chat.requests[1].Messages[len(chat.requests[1].Messages)-1]
	assert.Equal(t, RoleTool, last.Role)
	assert.Equal(t, "call-1", last.ToolCallID)
	assert.Contains(t, last.Content, `"success":true`)
}

func TestRunnerFeedsToolFailureBackToModel(t *testing.T) {
	chat := &scriptedChat{steps: []Completion{
		toolCallStep("call-1", "update_ticket_priority", `{"newPriority":"critical"}`),
		toolCallStep("call-2", "update_ticket_priority", `{"newPriority":"URGENT"}`),
		narrationStep("Set to urgent; critical is not a valid priority."),
	}}
	fx := newRunnerFixture(t, chat, 0)

	err := fx.runner.Run(context.Background(), employeeActor(), fx.ticket.ID, "set priority to critical")
	require.NoError(t, err)

	// The rejection reached the model verbatim so it could correct itself.
	require.Len(t, chat.requests, 3)
	first := chat.requests[1].Messages[len(chat.requests[1].Messages)-1]
	assert.Equal(t, RoleTool, first.Role)
	assert.Contains(t, first.Content, "Invalid priority value. Valid values are: LOW, NORMAL, HIGH, URGENT")

	values, err := fx.metadata.ListValues(context.Background(), fx.ticket.ID)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "URGENT", values[0].Value)

	records := agentRecords(t, fx)
	assert.Len(t, records, 4)
	assert.Equal(t, 1, countFinal(records))
}

func TestRunnerStopsAtStepBudget(t *testing.T) {
	var steps []Completion
	for i := 0; i < 10; i++ {
		steps = append(steps, toolCallStep(fmt.Sprintf("call-%d", i), "update_ticket_priority", `{"newPriority":"LOW"}`))
	}
	chat := &scriptedChat{steps: steps}
	fx := newRunnerFixture(t, chat, 3)

	err := fx.runner.Run(context.Background(), employeeActor(), fx.ticket.ID, "loop forever")
	require.NoError(t, err)

	assert.Len(t, chat.requests, 3)

	records := agentRecords(t, fx)
	require.Len(t, records, 4)
	assert.Equal(t, 1, countFinal(records))
	final := records[len(records)-1]
	assert.True(t, final.IsFinal)
	assert.Contains(t, final.Message, "step budget exhausted")
}

func TestRunnerAbortsWhenTicketLookupFails(t *testing.T) {
	chat := &scriptedChat{}
	fx := newRunnerFixture(t, chat, 0)

	err := fx.runner.Run(context.Background(), employeeActor(), "no-such-ticket", "hello")
	require.Error(t, err)

	assert.Empty(t, chat.requests)
	assert.Empty(t, fx.messages.All())
}

func TestRunnerAbortsWhenAuditWriteFails(t *testing.T) {
	chat := &scriptedChat{steps: []Completion{
		toolCallStep("call-1", "update_ticket_priority", `{"newPriority":"HIGH"}`),
	}}
	fx := newRunnerFixture(t, chat, 0)
	fx.messages.FailInsert = errors.New("disk full")

	err := fx.runner.Run(context.Background(), employeeActor(), fx.ticket.ID, "bump it")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persisting step failed")

	// The step was never recorded, so the tool must not have run either.
	values, verr := fx.metadata.ListValues(context.Background(), fx.ticket.ID)
	require.NoError(t, verr)
	assert.Empty(t, values)
}

func TestRunnerClosesTraceOnCancellation(t *testing.T) {
	chat := &scriptedChat{}
	fx := newRunnerFixture(t, chat, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fx.runner.Run(ctx, employeeActor(), fx.ticket.ID, "anything")
	require.NoError(t, err)

	assert.Empty(t, chat.requests)

	records := agentRecords(t, fx)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsFinal)
	assert.Equal(t, "Run cancelled.", records[0].Message)
}

func TestRunnerComposesTicketContext(t *testing.T) {
	chat := &scriptedChat{steps: []Completion{narrationStep("ok")}}
	fx := newRunnerFixture(t, chat, 0)
	require.NoError(t, fx.metadata.UpsertValue(context.Background(), &models.MetadataValue{
		TicketID:     fx.ticket.ID,
		MetadataType: models.MetadataTypePriority,
		Value:        "HIGH",
	}))

	require.NoError(t, fx.runner.Run(context.Background(), employeeActor(), fx.ticket.ID, "status?"))

	require.NotEmpty(t, chat.requests)
	system := chat.requests[0].Messages[0]
	require.Equal(t, RoleSystem, system.Role)
	assert.Contains(t, system.Content, "Title: Broken printer")
	assert.Contains(t, system.Content, "No description")
	assert.Contains(t, system.Content, "State: OPEN")
	assert.Contains(t, system.Content, "PRIORITY: HIGH")

	prompt := chat.requests[0].Messages[1]
	assert.Equal(t, RoleUser, prompt.Role)
	assert.Equal(t, "status?", prompt.Content)

	assert.Len(t, chat.requests[0].Tools, 3)
}
