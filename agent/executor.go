package agent

import (
	"context"
	"fmt"

	"github.com/furrowlabs/furrow/core"
	"github.com/furrowlabs/furrow/logging"
)

// ExecutionFunc validates or executes the latest response in a dyad and
// produces the executor's reply.
type ExecutionFunc func(ctx context.Context, messages []*core.Message) (*core.Message, error)

// AttemptExecutorOptions configures an AttemptExecutor.
type AttemptExecutorOptions struct {
	Description string
	MaxAttempts int
	Logger      logging.Logger
}

// AttemptExecutor runs an execution function with a bounded number of
// attempts. The counter survives across messages until ResetAttempts is
// called, which the decomposer does whenever it dispatches a new sub-task to
// the executor's bearing agent.
type AttemptExecutor struct {
	BaseAgent

	execute     ExecutionFunc
	maxAttempts int
	attempts    int
}

var (
	_ core.Agent    = (*AttemptExecutor)(nil)
	_ core.Executor = (*AttemptExecutor)(nil)
)

// NewAttemptExecutor creates an executor around the given execution function.
func NewAttemptExecutor(name string, execute ExecutionFunc, optFns ...func(o *AttemptExecutorOptions)) *AttemptExecutor {
	opts := AttemptExecutorOptions{
		Description: "Executes and validates responses.",
		MaxAttempts: 3,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &AttemptExecutor{
		BaseAgent:   NewBaseAgent(name, opts.Description, opts.Logger),
		execute:     execute,
		maxAttempts: opts.MaxAttempts,
	}
}

// Attempts returns how many attempts have been consumed since the last reset.
func (e *AttemptExecutor) Attempts() int { return e.attempts }

// ResetAttempts clears the attempt counter.
func (e *AttemptExecutor) ResetAttempts() { e.attempts = 0 }

// Send records message under recipient and delivers it synchronously.
func (e *AttemptExecutor) Send(ctx context.Context, message *core.Message, recipient core.Agent) error {
	return deliver(ctx, e, e.History(), e.Logger(), message, recipient)
}

// Receive records the incoming message, generates a reply and sends it back.
func (e *AttemptExecutor) Receive(ctx context.Context, message *core.Message, sender core.Agent) error {
	e.History().AddMessage(sender, core.RoleUser, message)

	reply, err := e.GenerateReply(ctx, e.History().GetMessages(sender), sender)
	if err != nil {
		return err
	}
	return e.Send(ctx, reply, sender)
}

// GenerateReply consumes one attempt and runs the execution function.
func (e *AttemptExecutor) GenerateReply(ctx context.Context, messages []*core.Message, _ core.Agent) (*core.Message, error) {
	if e.attempts >= e.maxAttempts {
		return nil, fmt.Errorf("executor %q exhausted its %d attempts", e.Name(), e.maxAttempts)
	}
	e.attempts++

	reply, err := e.execute(ctx, messages)
	if err != nil {
		return nil, err
	}
	reply.SendingAgent = e.Name()
	return reply, nil
}
