package defect

import (
	"fmt"

	"mestrack/internal/pkg/errs"
)

// Status is the lifecycle state of a defect.
//
// State transitions:
//
//	Open ──> InRepair ──┬──> Repaired
//	                    └──> Scrapped
//
// Repaired and Scrapped are final.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	// StatusOpen is the initial state after a rejection.
	StatusOpen

	// StatusInRepair means a repairer has claimed the defect.
	StatusInRepair

	// StatusRepaired means the unit was fixed and returned to the process.
	StatusRepaired

	// StatusScrapped means the unit was withdrawn.
	StatusScrapped
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "Unknown",
		StatusOpen:     "Open",
		StatusInRepair: "InRepair",
		StatusRepaired: "Repaired",
		StatusScrapped: "Scrapped",
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
		return errs.NewValueIsInvalidErrorWithCause("defect status",
			fmt.Errorf("%d is not a valid defect status", s))
	}
	return nil
}

// IsResolved reports whether the defect reached a final state.
func (s Status) IsResolved() bool {
	return s == StatusRepaired || s == StatusScrapped
}

// Type classifies the defect found during manufacturing.
type Type int

const (
	// TypeOther is the default classification.
	TypeOther Type = iota
	// TypeDimensional marks out-of-tolerance geometry.
	TypeDimensional
	// TypeVisual marks cosmetic findings.
	TypeVisual
	// TypeFunctional marks failed functional tests.
	TypeFunctional
	// TypeMaterial marks raw material findings.
	TypeMaterial
	// TypeAssembly marks assembly mistakes.
	TypeAssembly
)

func typeStrings() map[Type]string {
	return map[Type]string{
		TypeOther:       "Other",
		TypeDimensional: "Dimensional",
		TypeVisual:      "Visual",
		TypeFunctional:  "Functional",
		TypeMaterial:    "Material",
		TypeAssembly:    "Assembly",
	}
}

// String implements fmt.Stringer; unknown values render as "Other".
func (t Type) String() string {
	if str, ok := typeStrings()[t]; ok {
		return str
	}
	return "Other"
}

// TypeFromString parses a defect type name, falling back to TypeOther for
// unknown input. Rejections arrive from operators picking from a fixed list,
// so unknown values are tolerated rather than refused.
func TypeFromString(s string) Type {
	for typ, str := range typeStrings() {
		if str == s {
			return typ
		}
	}
	return TypeOther
}
