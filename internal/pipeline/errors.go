package pipeline

import (
	"errors"
	"fmt"
)

// ErrInputRejected is returned when an image cannot be turned into a
// paint-by-number palette. It is not retriable.
var ErrInputRejected = errors.New("input rejected")

// InputRejectedError carries the reason an image was rejected.
type InputRejectedError struct {
	// Colours is the number of colours that triggered the rejection.
	Colours int
	// Limit is the bound that was exceeded.
	Limit  int
	Reason string
}

func (e *InputRejectedError) Error() string {
	return fmt.Sprintf("%s: %s (%d colours, limit %d)", ErrInputRejected, e.Reason, e.Colours, e.Limit)
}

// Is makes errors.Is(err, ErrInputRejected) succeed.
func (e *InputRejectedError) Is(target error) bool {
	return target == ErrInputRejected
}
