package commands

import (
	"errors"

	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/pkg/guard"
)

var ErrApproveOperationCommandIsNotConstructed = errors.New(
	"ApproveOperationCommand must be created via NewApproveOperationCommand constructor",
)

// ApproveOperationCommand represents the actor holding an in-progress record
// completing it successfully, recording the quality check outcome and notes.
type ApproveOperationCommand struct { //nolint:recvcheck //using for validation
	serialCode    serial.Code
	operationID   kernel.UUID
	actorID       kernel.UUID
	actorRole     actor.Role
	qualityPassed bool
	notes         string

	guard guard.ConstructorGuard
}

// NewApproveOperationCommand creates a command for approving an operation.
func NewApproveOperationCommand(
	serialCode serial.Code,
	operationID, actorID kernel.UUID,
	actorRole actor.Role,
	qualityPassed bool,
	notes string,
) (ApproveOperationCommand, error) {
	approveCommand := ApproveOperationCommand{
		qualityPassed: qualityPassed,
		notes:         notes,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		approveCommand.setSerialCode(serialCode),
		approveCommand.setOperationID(operationID),
		approveCommand.setActor(actorID, actorRole),
	); err != nil {
		return ApproveOperationCommand{}, err
	}

	return approveCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveOperationCommand) Validate() error {
	return c.guard.Validate(ErrApproveOperationCommandIsNotConstructed)
}

// SerialCode returns the code of the serial being worked.
func (c ApproveOperationCommand) SerialCode() serial.Code {
	return c.serialCode
}

// OperationID returns the operation being approved.
func (c ApproveOperationCommand) OperationID() kernel.UUID {
	return c.operationID
}

// ActorID returns the approving actor.
func (c ApproveOperationCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the approving actor's role.
func (c ApproveOperationCommand) ActorRole() actor.Role {
	return c.actorRole
}

// QualityPassed reports the quality check outcome.
func (c ApproveOperationCommand) QualityPassed() bool {
	return c.qualityPassed
}

// Notes returns the free-form completion notes.
func (c ApproveOperationCommand) Notes() string {
	return c.notes
}

func (c *ApproveOperationCommand) setSerialCode(serialCode serial.Code) error {
	if err := serialCode.Validate(); err != nil {
		return err
	}

	c.serialCode = serialCode
	return nil
}

func (c *ApproveOperationCommand) setOperationID(operationID kernel.UUID) error {
	if err := operationID.Validate(); err != nil {
		return err
	}

	c.operationID = operationID
	return nil
}

func (c *ApproveOperationCommand) setActor(actorID kernel.UUID, actorRole actor.Role) error {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
