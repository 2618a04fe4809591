package application

import (
	"errors"
	"fmt"
)

// ErrLabelMissing reports a rename attempt on a photo without a label.
var ErrLabelMissing = errors.New("photo has no label")

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MoveError represents a failed filesystem move for one item
type MoveError struct {
	Source string
	Target string
	Err    error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("cannot move %s to %s: %v", e.Source, e.Target, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
