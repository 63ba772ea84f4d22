// Package model defines the provider-agnostic conversation types and the LLM
// providers that turn a history plus tool declarations into either text or a tool call.
package model

import "context"

// Role is the author of a conversation turn.
type Role string

const (
	RoleUser     Role = "user"
	RoleModel    Role = "model"
	RoleFunction Role = "function"
)

// ToolCall is a model request to run a named local function.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// Turn is one entry of the conversation history.
//
// Model turns that requested a tool carry ToolCall. Function turns carry the
// tool name, the originating call id and the JSON result in Content.
type Turn struct {
	Role     Role
	Content  string
	ToolCall *ToolCall
	ToolName string
	CallID   string
}

// UserTurn builds a user text turn.
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Content: text}
}

// ModelTurn builds a model text turn.
func ModelTurn(text string) Turn {
	return Turn{Role: RoleModel, Content: text}
}

// ToolCallTurn records the model's request for a tool.
func ToolCallTurn(call ToolCall) Turn {
	return Turn{Role: RoleModel, ToolCall: &call}
}

// FunctionTurn records the result of a tool call.
func FunctionTurn(call ToolCall, result string) Turn {
	return Turn{Role: RoleFunction, Content: result, ToolName: call.Name, CallID: call.ID}
}

// ToolDefinition declares a callable tool with a JSON-schema object for its parameters.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Request is one generation request.
type Request struct {
	System  string
	History []Turn
	Tools   []ToolDefinition
}

// Response carries either a tool call or final text.
// When the model returns several tool calls only the first one is kept.
type Response struct {
	Text     string
	ToolCall *ToolCall
}

// Provider sends a request to an external model.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (Response, error)
}
