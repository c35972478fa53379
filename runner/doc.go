// Package runner drives one objective through a planning agent: it sends
// the objective, then pulls sub-tasks off the resulting plan one at a time
// and dispatches each prompt to its target agent. It is deliberately thin:
// retries, persistence and re-prompting are the caller's business.
package runner
