package agent

import (
	"context"

	"github.com/furrowlabs/furrow/core"
	"github.com/furrowlabs/furrow/logging"
)

// UserProxy stands in for the human user and terminates the synchronous
// call-and-response chain: it records replies it receives without answering
// back, so a round trip started with Send returns once the counterpart has
// replied.
type UserProxy struct {
	BaseAgent

	lastReply *core.Message
}

var _ core.Agent = (*UserProxy)(nil)

// NewUserProxy creates a user proxy named "User".
func NewUserProxy(logger logging.Logger) *UserProxy {
	return &UserProxy{
		BaseAgent: NewBaseAgent("User", "The human user issuing objectives.", logger),
	}
}

// LastReply returns the most recently received message, or nil.
func (u *UserProxy) LastReply() *core.Message { return u.lastReply }

// Send records message under recipient and delivers it synchronously. When
// the call returns, LastReply holds the counterpart's answer.
func (u *UserProxy) Send(ctx context.Context, message *core.Message, recipient core.Agent) error {
	return deliver(ctx, u, u.History(), u.Logger(), message, recipient)
}

// Receive records the reply and stops the chain; the proxy never answers.
func (u *UserProxy) Receive(_ context.Context, message *core.Message, sender core.Agent) error {
	u.History().AddMessage(sender, core.RoleAssistant, message)
	u.lastReply = message
	return nil
}

// GenerateReply is never called for a proxy; it returns nil for protocol
// completeness.
func (u *UserProxy) GenerateReply(_ context.Context, _ []*core.Message, _ core.Agent) (*core.Message, error) {
	return nil, nil
}
