// Package history provides the per-counterpart message log an agent replies
// from. Each counterpart gets its own ordered, append-only sequence; the
// history an agent keeps for its exchanges with one counterpart never leaks
// into the history kept for another.
package history
