package core

import "context"

// Agent is the contract every participant in a planning session implements.
//
// The protocol is a synchronous call-and-response round trip executed on the
// caller's stack: Send records the outgoing message in the sender's own
// history and invokes the recipient's Receive directly; Receive records the
// message, computes a reply via GenerateReply and immediately Sends it back
// to the sender. There is no queueing and no concurrency between agents;
// the only suspension points are calls into an external model backend.
//
// Implementations must:
//   - Keep their message history strictly per-counterpart
//   - Return ErrEmptyMessage from Send when given a nil message
//   - Propagate backend failures up the call chain unwrapped of meaning
type Agent interface {
	// Name returns the agent's unique name within a planning session.
	Name() string

	// Description advertises the agent's capability to a model when the
	// planner lists available agents.
	Description() string

	// Send records message under recipient's identity and delivers it by
	// calling recipient.Receive on the current stack.
	Send(ctx context.Context, message *Message, recipient Agent) error

	// Receive records message under sender's identity, generates a reply
	// and sends it back to sender.
	Receive(ctx context.Context, message *Message, sender Agent) error

	// GenerateReply computes a reply from the ordered messages exchanged
	// with sender. For model-backed agents this is where control passes to
	// the external backend.
	GenerateReply(ctx context.Context, messages []*Message, sender Agent) (*Message, error)
}

// SubTask is the unit of delegated work: the agent that must perform it and
// the instruction prompt it should follow. Index is the position within the
// owning plan (meaningful for indexable plans, zero for queue plans).
type SubTask struct {
	Agent  Agent
	Prompt string
	Index  int
}

// Planner is the optional planning capability. An orchestrator discovers it
// via PlannerOf without knowing the agent's concrete type.
type Planner interface {
	Agent

	// AvailableAgents returns the agents sub-tasks can be addressed to,
	// keyed by name.
	AvailableAgents() map[string]Agent

	// MoveToNextAgent advances to the next sub-task of the current plan.
	// Indexable planners fail once the plan is exhausted; queue planners
	// return (nil, nil) when nothing is left.
	MoveToNextAgent() (*SubTask, error)
}

// Executor is the optional execution capability: an agent that validates or
// executes responses and tracks how many attempts it has made doing so.
type Executor interface {
	Agent

	// ResetAttempts clears the executor's attempt counter so a newly
	// dispatched sub-task does not inherit retry exhaustion left over from
	// an unrelated one.
	ResetAttempts()
}

// ExecutorBearer is implemented by agents that carry executors.
type ExecutorBearer interface {
	Executors() []Executor
}

// PlannerOf returns the planning capability of a, or nil if a cannot plan.
func PlannerOf(a Agent) Planner {
	if p, ok := a.(Planner); ok {
		return p
	}
	return nil
}

// ExecutorsOf returns a's executors, or nil if a carries none.
func ExecutorsOf(a Agent) []Executor {
	if b, ok := a.(ExecutorBearer); ok {
		return b.Executors()
	}
	return nil
}
