package core

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author side of a message in a model conversation.
type Role string

const (
	// RoleAssistant marks messages authored by an agent or model.
	RoleAssistant Role = "assistant"
	// RoleUser marks messages authored by the human (or the upstream agent
	// acting on the human's behalf).
	RoleUser Role = "user"
	// RoleSystem marks instruction messages that prime the model.
	RoleSystem Role = "system"
)

// Message is the unit of communication between agents. Content is the
// authoritative machine-facing text; DisplayContent, when set, is the
// human-facing variant and may differ. A message is treated as immutable
// once sent; a receiving agent may rewrite Content before recording it in
// its own history (e.g. wrapping it in a contextual tag), which is local
// bookkeeping only since every agent owns its history exclusively.
type Message struct {
	ID               string    `json:"id"`
	Role             Role      `json:"role"`
	Content          string    `json:"content"`
	DisplayContent   string    `json:"display_content,omitempty"`
	SendingAgent     string    `json:"sending_agent,omitempty"`
	ReceivingAgent   string    `json:"receiving_agent,omitempty"`
	IsTermination    bool      `json:"is_termination_message,omitempty"`
	RequiresResponse bool      `json:"requires_response,omitempty"`
	Created          time.Time `json:"created"`
}

// NewMessage constructs a message with a fresh ID and UTC timestamp.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:      NewID(),
		Role:    role,
		Content: content,
		Created: time.Now().UTC(),
	}
}

// Display returns DisplayContent when present, falling back to Content.
func (m *Message) Display() string {
	if m.DisplayContent != "" {
		return m.DisplayContent
	}
	return m.Content
}

// NewID returns a new unique identifier (UUID v4 string).
func NewID() string { return uuid.NewString() }
