package serial

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is the sentinel for record transitions attempted
	// from a wrong source state.
	ErrInvalidTransition = errors.New("invalid process transition")

	// ErrSequenceViolation is the sentinel for operations acted on before all
	// lower-sequence active operations are approved.
	ErrSequenceViolation = errors.New("operation sequence violation")

	// ErrActorBusy is the sentinel for actors that already hold an
	// in-progress record.
	ErrActorBusy = errors.New("actor already holds an operation in progress")

	// ErrNotOwner is the sentinel for actors acting on a record they do not hold.
	ErrNotOwner = errors.New("actor does not hold this operation")

	// ErrInvalidCodeFormat is the sentinel for malformed serial codes.
	ErrInvalidCodeFormat = errors.New("serial code format is invalid")

	// ErrAllocationExhausted is the sentinel for a fully consumed code space
	// within one time bucket.
	ErrAllocationExhausted = errors.New("serial code space exhausted for bucket")
)

// InvalidTransitionError reports a record transition attempted from a state
// that does not allow it.
type InvalidTransitionError struct {
	Action string
	From   RecordStatus
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// action and source state.
func NewInvalidTransitionError(action string, from RecordStatus) *InvalidTransitionError {
	return &InvalidTransitionError{Action: action, From: from}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s a record in status %s", ErrInvalidTransition, e.Action, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// SequenceViolationError reports which earlier operation blocks the attempted one.
type SequenceViolationError struct {
	Sequence        int
	BlockedBy       int
	BlockedByStatus RecordStatus
}

// NewSequenceViolationError creates a SequenceViolationError naming the
// blocking operation.
func NewSequenceViolationError(sequence, blockedBy int, blockedByStatus RecordStatus) *SequenceViolationError {
	return &SequenceViolationError{Sequence: sequence, BlockedBy: blockedBy, BlockedByStatus: blockedByStatus}
}

func (e *SequenceViolationError) Error() string {
	return fmt.Sprintf("%s: operation %d requires operation %d to be approved (currently %s)",
		ErrSequenceViolation, e.Sequence, e.BlockedBy, e.BlockedByStatus)
}

func (e *SequenceViolationError) Unwrap() error {
	return ErrSequenceViolation
}
