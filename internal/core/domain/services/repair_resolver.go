package services

import (
	"fmt"
	"time"

	"mestrack/internal/core/domain/model/defect"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/pkg/errs"
)

// RepairResolver coordinates the resolution of a defect with the serial it
// belongs to. Both aggregates change together; the caller persists them in
// one transaction.
type RepairResolver struct{}

// NewRepairResolver creates a RepairResolver.
func NewRepairResolver() *RepairResolver {
	return &RepairResolver{}
}

// Repair resolves the defect as repaired and returns the serial to the
// process at returnToOperationID: rejected records are superseded and fresh
// pending ones issued.
func (rr *RepairResolver) Repair(
	d *defect.Defect,
	s *serial.Serial,
	resolver, returnToOperationID kernel.UUID,
	notes string,
	now time.Time,
) error {
	if err := rr.guardPair(d, s); err != nil {
		return err
	}

	if err := d.Repair(resolver, returnToOperationID, notes, now); err != nil {
		return err
	}

	note := fmt.Sprintf("returned after repair of defect %s", d.ID())
	return s.ReturnFromRepair(returnToOperationID, now, note)
}

// Scrap resolves the defect by withdrawing the serial from the process.
func (rr *RepairResolver) Scrap(
	d *defect.Defect,
	s *serial.Serial,
	resolver kernel.UUID,
	notes string,
	now time.Time,
) error {
	if err := rr.guardPair(d, s); err != nil {
		return err
	}

	if err := d.Scrap(resolver, notes, now); err != nil {
		return err
	}

	return s.MarkScrapped()
}

func (rr *RepairResolver) guardPair(d *defect.Defect, s *serial.Serial) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if !d.SerialID().IsEqual(s.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("defect",
			fmt.Errorf("defect %s does not belong to serial %s", d.ID(), s.Code()))
	}
	return nil
}
