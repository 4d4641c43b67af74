package commands

import (
	"errors"

	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/pkg/guard"
)

var ErrAssignDefectCommandIsNotConstructed = errors.New(
	"AssignDefectCommand must be created via NewAssignDefectCommand constructor",
)

// AssignDefectCommand represents a repairer pulling an open defect from the
// queue and locking it to themselves.
type AssignDefectCommand struct { //nolint:recvcheck //using for validation
	defectID     kernel.UUID
	repairerID   kernel.UUID
	repairerRole actor.Role

	guard guard.ConstructorGuard
}

// NewAssignDefectCommand creates a command for claiming a defect.
func NewAssignDefectCommand(
	defectID, repairerID kernel.UUID,
	repairerRole actor.Role,
) (AssignDefectCommand, error) {
	assignCommand := AssignDefectCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setDefectID(defectID),
		assignCommand.setRepairer(repairerID, repairerRole),
	); err != nil {
		return AssignDefectCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDefectCommand) Validate() error {
	return c.guard.Validate(ErrAssignDefectCommandIsNotConstructed)
}

// DefectID returns the defect being claimed.
func (c AssignDefectCommand) DefectID() kernel.UUID {
	return c.defectID
}

// RepairerID returns the claiming repairer.
func (c AssignDefectCommand) RepairerID() kernel.UUID {
	return c.repairerID
}

// RepairerRole returns the claiming repairer's role.
func (c AssignDefectCommand) RepairerRole() actor.Role {
	return c.repairerRole
}

func (c *AssignDefectCommand) setDefectID(defectID kernel.UUID) error {
	if err := defectID.Validate(); err != nil {
		return err
	}

	c.defectID = defectID
	return nil
}

func (c *AssignDefectCommand) setRepairer(repairerID kernel.UUID, repairerRole actor.Role) error {
	if err := errors.Join(repairerID.Validate(), repairerRole.Validate()); err != nil {
		return err
	}

	c.repairerID = repairerID
	c.repairerRole = repairerRole
	return nil
}
