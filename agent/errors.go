package agent

import "errors"

var (
	// ErrPlanExhausted is returned by the planner's MoveToNextAgent once
	// the cursor has passed the last sub-task of the current plan.
	ErrPlanExhausted = errors.New("no more agents in the plan")

	// ErrUnknownAgent is returned when a parsed plan references an agent
	// name that is not among the available agents. There is no automatic
	// re-prompt; the caller decides how to recover.
	ErrUnknownAgent = errors.New("unknown agent in plan")

	// ErrAmbiguousAgents is returned by the decomposer when no backend is
	// attached and more than one available agent exists, making the
	// passthrough target ambiguous.
	ErrAmbiguousAgents = errors.New("no model backend and more than one available agent")
)
