package agent

import (
	"context"

	"github.com/furrowlabs/furrow/core"
	"github.com/furrowlabs/furrow/history"
	"github.com/furrowlabs/furrow/logging"
)

// BaseAgent bundles the identity and bookkeeping every concrete agent
// shares: name, description, the per-counterpart message history and a
// logger. Embed it and implement GenerateReply (plus Send/Receive via the
// deliver helper) to satisfy core.Agent.
type BaseAgent struct {
	name        string
	description string
	messages    *history.History
	logger      logging.Logger
}

// NewBaseAgent constructs a BaseAgent with an empty history.
func NewBaseAgent(name, description string, logger logging.Logger) BaseAgent {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return BaseAgent{
		name:        name,
		description: description,
		messages:    history.New(),
		logger:      logger,
	}
}

// Name returns the agent's unique name.
func (b *BaseAgent) Name() string { return b.name }

// Description returns the capability description advertised to planners.
func (b *BaseAgent) Description() string { return b.description }

// History returns the agent's per-counterpart message history.
func (b *BaseAgent) History() *history.History { return b.messages }

// Logger returns the agent's logger.
func (b *BaseAgent) Logger() logging.Logger { return b.logger }

// deliver implements the shared half of Send: reject empty messages, stamp
// the participant names, record the outgoing message in the sender's own
// history under the recipient and hand it over on the current stack.
func deliver(ctx context.Context, from core.Agent, h *history.History, logger logging.Logger, message *core.Message, recipient core.Agent) error {
	if message == nil {
		logger.Error("attempted to send empty message", "from", from.Name())
		return core.ErrEmptyMessage
	}
	message.SendingAgent = from.Name()
	message.ReceivingAgent = recipient.Name()
	h.AddMessage(recipient, core.RoleAssistant, message)
	return recipient.Receive(ctx, message, from)
}
