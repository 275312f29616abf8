package agent

import (
	"context"
	"encoding/json"
)

// Chat roles used on the wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ChatMessage is one entry in the conversation sent to the reasoning
// engine.
type ChatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolDef describes one tool in the manifest handed to the model:
// name, description and a JSON-schema description of the arguments.
type ToolDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// CompletionRequest is one reasoning step's input: the conversation so far
// plus the tool manifest.
type CompletionRequest struct {
	Messages []ChatMessage
	Tools    []ToolDef
}

// Completion is the model's next step: free-text content, tool-call
// requests, or neither (a terminal step).
type Completion struct {
	Message ChatMessage
}

// ChatClient is the dependency surface on the reasoning engine. The engine
// itself is opaque; tests inject a scripted implementation.
type ChatClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}
