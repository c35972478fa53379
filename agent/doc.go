// Package agent contains the concrete agents of the planning engine: the
// Planner that turns an objective into an indexable plan walked by a
// monotonic cursor, the Decomposer that breaks a SQL question into a
// consume-once queue of generator sub-tasks, the SQLGenerator worker those
// sub-tasks are addressed to, and the UserProxy that terminates the
// synchronous send/receive chain on the user's side.
package agent
