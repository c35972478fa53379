package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/furrowlabs/furrow/core"
)

// Message is one role/content entry of a chat request.
type Message struct {
	Role    core.Role `json:"role"`
	Content string    `json:"content"`
}

// FunctionArg describes one argument of a tool exposed to the model.
type FunctionArg struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
}

// ToolSpec declaratively exposes a callable function to the model. The
// planning core always sends an empty tool list but the wire type carries it
// so backends see the full request shape.
type ToolSpec struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Args        []FunctionArg `json:"function_args,omitempty"`
}

// GenerationConfig holds sampling parameters. Nil pointers mean "let the
// provider pick its default".
type GenerationConfig struct {
	Seed             *int     `json:"seed,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxTokens        *int     `json:"max_tokens,omitempty"`
	TopP             *float64 `json:"top_p,omitempty"`
	TopK             *int     `json:"top_k,omitempty"`
	Stop             []string `json:"stop,omitempty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`
}

// Request captures the normalized input of a single completion call.
type Request struct {
	Model    string           `json:"model,omitempty"`
	Messages []Message        `json:"messages"`
	Tools    []ToolSpec       `json:"tools,omitempty"`
	Config   GenerationConfig `json:"config"`
}

// ToolCall is a function call request surfaced by a model provider.
type ToolCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // raw JSON, not always valid
}

// ChatMessage is the generated message of one response choice.
type ChatMessage struct {
	Role      core.Role  `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Choice is one alternative completion.
type Choice struct {
	Index   int         `json:"index"`
	Message ChatMessage `json:"message"`
}

// Usage captures token accounting for a response.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the result of a completion call. At least one choice is
// guaranteed by conforming implementations.
type Response struct {
	ID      string   `json:"id,omitempty"`
	Model   string   `json:"model,omitempty"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Text returns the content of the first choice, or "" if there is none.
func (r *Response) Text() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface planning agents use to call a backend.
// Implementations must not retry; failures propagate to the caller as-is.
type Model interface {
	Chat(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Responses are keyed by the content of the last request message; a queue of
// scripted responses takes precedence when non-empty.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	scripted  []string
	requests  []Request
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// Script enqueues responses returned in order regardless of the prompt.
func (m *MockModel) Script(responses ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripted = append(m.scripted, responses...)
}

// Requests returns every request seen so far, for assertions.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Chat implements Model.
func (m *MockModel) Chat(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}

	var content string
	if len(m.scripted) > 0 {
		content = m.scripted[0]
		m.scripted = m.scripted[1:]
	} else {
		last := req.Messages[len(req.Messages)-1].Content
		content = m.responses[last]
		if content == "" {
			content = fmt.Sprintf("Mock response to: %s", last)
		}
	}

	return &Response{
		ID:    "mock",
		Model: m.info.Name,
		Choices: []Choice{{
			Message: ChatMessage{Role: core.RoleAssistant, Content: content},
		}},
	}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
