package serial

import (
	"fmt"

	"mestrack/internal/pkg/errs"
)

// Status is the aggregate state of a serial, derived from its process record
// set. Except for the terminal defect resolution (Scrapped), it is never set
// directly: every record mutation recomputes it.
//
// Derivation rule:
//
//	any effective rejected record -> Defective
//	all active operations approved -> Completed
//	at least one approved          -> InProcess
//	otherwise                      -> Created
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	// StatusCreated is the initial state: no operation approved yet.
	StatusCreated

	// StatusInProcess indicates at least one approved operation.
	StatusInProcess

	// StatusCompleted indicates every active operation is approved. Terminal
	// unless a later rejection occurs on a repair-returned record.
	StatusCompleted

	// StatusRejected indicates a rejected record without an open defect.
	// The standard workflow always opens a defect on rejection, so this value
	// only appears for externally imported data.
	StatusRejected

	// StatusDefective indicates a rejected record with an open defect.
	StatusDefective

	// StatusScrapped is the terminal defect resolution.
	StatusScrapped
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusCreated:   "Created",
		StatusInProcess: "InProcess",
		StatusCompleted: "Completed",
		StatusRejected:  "Rejected",
		StatusDefective: "Defective",
		StatusScrapped:  "Scrapped",
	}
}

// String implements fmt.Stringer; unknown values render as "Unknown".
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusScrapped {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid serial status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusScrapped
}
