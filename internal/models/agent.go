package models

import "encoding/json"

// AgentResponse is the structured payload encoded inside an agent_response
// message's content. One record is persisted per agent step: a narration,
// a proposed tool call, or the final marker.
type AgentResponse struct {
	// Free-form text the agent wants to convey to the user.
	Message string `json:"message,omitempty"`

	// Reasoning explains what kind of step this record captures
	// ("Response" for narration, "Tool call" for an invocation).
	Reasoning string `json:"reasoning"`

	// ProposedTool and ToolArguments are set when the step is a tool
	// invocation rather than a narration.
	ProposedTool  string          `json:"proposedTool,omitempty"`
	ToolArguments json.RawMessage `json:"toolArguments,omitempty"`

	// IsFinal marks loop termination. Exactly one record per run carries it.
	IsFinal bool `json:"isFinal,omitempty"`
}

// DecodeAgentResponse parses the content of an agent_response message.
// Consumers skip messages that fail to decode instead of failing the whole
// history read.
func DecodeAgentResponse(content string) (*AgentResponse, bool) {
	var r AgentResponse
	if err := json.Unmarshal([]byte(content), &r); err != nil {
		return nil, false
	}
	return &r, true
}

// Encode serializes the record for persistence as message content.
func (r *AgentResponse) Encode() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
