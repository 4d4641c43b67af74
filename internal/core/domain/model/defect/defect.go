// Package defect provides the Defect aggregate created when an operation is
// rejected. The defect carries the repair workflow: a repairer claims it and
// either returns the serial to a designated operation or scraps it.
package defect

import (
	"errors"
	"fmt"
	"time"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/pkg/errs"
)

var (
	// ErrDefectIsNotConstructed is returned when a Defect instance was not
	// created through NewDefect or RestoreDefect.
	ErrDefectIsNotConstructed = errors.New("Defect must be created via NewDefect constructor")

	// ErrInvalidResolution is the sentinel for defect transitions attempted
	// from a wrong state or by a non-assignee.
	ErrInvalidResolution = errors.New("invalid defect resolution")

	// ErrAlreadyAssigned is returned when claiming a defect that has a repairer.
	ErrAlreadyAssigned = errors.New("defect is already assigned to a repairer")
)

// Defect records a quality finding on one serial at one operation.
type Defect struct {
	id          kernel.UUID
	serialID    kernel.UUID
	operationID kernel.UUID

	defectType  Type
	description string
	status      Status

	reportedBy       kernel.UUID
	assignedRepairer *kernel.UUID
	resolvedBy       *kernel.UUID

	repairNotes         string
	returnToOperationID *kernel.UUID

	createdAt  time.Time
	assignedAt *time.Time
	resolvedAt *time.Time

	isConstructed bool
}

// NewDefect creates an Open defect reported against a serial's operation.
func NewDefect(
	id, serialID, operationID kernel.UUID,
	defectType Type,
	description string,
	reportedBy kernel.UUID,
	now time.Time,
) (*Defect, error) {
	if err := errors.Join(
		id.Validate(),
		serialID.Validate(),
		operationID.Validate(),
		reportedBy.Validate(),
	); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, errs.NewValueIsRequiredError("defect description")
	}

	return &Defect{
		id:            id,
		serialID:      serialID,
		operationID:   operationID,
		defectType:    defectType,
		description:   description,
		status:        StatusOpen,
		reportedBy:    reportedBy,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreDefect reconstructs a Defect from persistence.
func RestoreDefect(
	id, serialID, operationID kernel.UUID,
	defectType Type,
	description string,
	status Status,
	reportedBy kernel.UUID,
	assignedRepairer, resolvedBy *kernel.UUID,
	repairNotes string,
	returnToOperationID *kernel.UUID,
	createdAt time.Time,
	assignedAt, resolvedAt *time.Time,
) (*Defect, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	d, err := NewDefect(id, serialID, operationID, defectType, description, reportedBy, createdAt)
	if err != nil {
		return nil, err
	}

	d.status = status
	d.assignedRepairer = assignedRepairer
	d.resolvedBy = resolvedBy
	d.repairNotes = repairNotes
	d.returnToOperationID = returnToOperationID
	d.assignedAt = assignedAt
	d.resolvedAt = resolvedAt
	return d, nil
}

// Validate ensures the Defect was created through a constructor.
func (d *Defect) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDefectIsNotConstructed
	}
	return nil
}

// ID returns the defect identifier.
func (d *Defect) ID() kernel.UUID { return d.id }

// SerialID returns the affected serial.
func (d *Defect) SerialID() kernel.UUID { return d.serialID }

// OperationID returns the operation where the defect was detected.
func (d *Defect) OperationID() kernel.UUID { return d.operationID }

// DefectType returns the classification.
func (d *Defect) DefectType() Type { return d.defectType }

// Description returns the finding description.
func (d *Defect) Description() string { return d.description }

// Status returns the lifecycle state.
func (d *Defect) Status() Status { return d.status }

// ReportedBy returns the actor that reported the defect.
func (d *Defect) ReportedBy() kernel.UUID { return d.reportedBy }

// AssignedRepairer returns the claiming repairer, nil while unclaimed.
func (d *Defect) AssignedRepairer() *kernel.UUID { return d.assignedRepairer }

// ResolvedBy returns the resolving actor, nil while open.
func (d *Defect) ResolvedBy() *kernel.UUID { return d.resolvedBy }

// RepairNotes returns the notes recorded at resolution.
func (d *Defect) RepairNotes() string { return d.repairNotes }

// ReturnToOperationID returns the operation the serial returns to after
// repair, nil unless resolved as Repaired.
func (d *Defect) ReturnToOperationID() *kernel.UUID { return d.returnToOperationID }

// CreatedAt returns when the defect was reported.
func (d *Defect) CreatedAt() time.Time { return d.createdAt }

// AssignedAt returns when the defect was claimed.
func (d *Defect) AssignedAt() *time.Time { return d.assignedAt }

// ResolvedAt returns when the defect reached a final state.
func (d *Defect) ResolvedAt() *time.Time { return d.resolvedAt }

// AssignRepairer claims an Open, unassigned defect for repairer.
func (d *Defect) AssignRepairer(repairer kernel.UUID, now time.Time) error {
	if d.status != StatusOpen {
		return fmt.Errorf("%w: cannot assign a %s defect", ErrInvalidResolution, d.status)
	}
	if d.assignedRepairer != nil {
		return ErrAlreadyAssigned
	}

	d.assignedRepairer = &repairer
	d.status = StatusInRepair
	d.assignedAt = &now
	return nil
}

// Repair resolves an InRepair defect: the unit was fixed and returns to
// returnToOperationID. Only the assigned repairer may resolve.
func (d *Defect) Repair(resolver, returnToOperationID kernel.UUID, notes string, now time.Time) error {
	if err := d.guardResolvable(resolver); err != nil {
		return err
	}
	if err := returnToOperationID.Validate(); err != nil {
		return err
	}

	d.status = StatusRepaired
	d.resolvedBy = &resolver
	d.repairNotes = notes
	d.returnToOperationID = &returnToOperationID
	d.resolvedAt = &now
	return nil
}

// Scrap resolves an InRepair defect by withdrawing the unit. Only the
// assigned repairer may resolve.
func (d *Defect) Scrap(resolver kernel.UUID, notes string, now time.Time) error {
	if err := d.guardResolvable(resolver); err != nil {
		return err
	}

	d.status = StatusScrapped
	d.resolvedBy = &resolver
	d.repairNotes = notes
	d.resolvedAt = &now
	return nil
}

func (d *Defect) guardResolvable(resolver kernel.UUID) error {
	if d.status != StatusInRepair {
		return fmt.Errorf("%w: cannot resolve a %s defect", ErrInvalidResolution, d.status)
	}
	if d.assignedRepairer == nil || !d.assignedRepairer.IsEqual(resolver) {
		return fmt.Errorf("%w: only the assigned repairer may resolve", ErrInvalidResolution)
	}
	return nil
}
