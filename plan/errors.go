package plan

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPlanFound is returned when tag-enveloped input contains no
	// <steps> envelope at all.
	ErrNoPlanFound = errors.New("plan not found in the response")

	// ErrNoStepsFound is returned when enumerated-list input lacks the
	// "1. " first-item marker.
	ErrNoStepsFound = errors.New("no steps found: expected steps in 1., 2., 3. format")
)

// MalformedEnvelopeError reports that a <steps> envelope was present but its
// contents could not be parsed as well-formed structured text. Callers
// conventionally log it and continue with an empty plan rather than failing
// the turn.
type MalformedEnvelopeError struct {
	Err error
}

func (e *MalformedEnvelopeError) Error() string {
	return fmt.Sprintf("malformed plan envelope: %v", e.Err)
}

func (e *MalformedEnvelopeError) Unwrap() error { return e.Err }
