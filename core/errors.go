package core

import "errors"

var (
	// ErrEmptyMessage is returned by Send when the outgoing message is nil.
	ErrEmptyMessage = errors.New("message is empty")
)
