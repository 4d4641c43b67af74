package commands

import (
	"errors"

	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/pkg/guard"
)

var ErrReleaseOperationCommandIsNotConstructed = errors.New(
	"ReleaseOperationCommand must be created via NewReleaseOperationCommand constructor",
)

// ReleaseOperationCommand represents the holder of an in-progress record
// putting it back to pending, for example at the end of a shift.
type ReleaseOperationCommand struct { //nolint:recvcheck //using for validation
	serialCode  serial.Code
	operationID kernel.UUID
	actorID     kernel.UUID
	actorRole   actor.Role

	guard guard.ConstructorGuard
}

// NewReleaseOperationCommand creates a command for releasing a claimed operation.
func NewReleaseOperationCommand(
	serialCode serial.Code,
	operationID, actorID kernel.UUID,
	actorRole actor.Role,
) (ReleaseOperationCommand, error) {
	releaseCommand := ReleaseOperationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		releaseCommand.setSerialCode(serialCode),
		releaseCommand.setOperationID(operationID),
		releaseCommand.setActor(actorID, actorRole),
	); err != nil {
		return ReleaseOperationCommand{}, err
	}

	return releaseCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseOperationCommand) Validate() error {
	return c.guard.Validate(ErrReleaseOperationCommandIsNotConstructed)
}

// SerialCode returns the code of the serial being worked.
func (c ReleaseOperationCommand) SerialCode() serial.Code {
	return c.serialCode
}

// OperationID returns the operation being released.
func (c ReleaseOperationCommand) OperationID() kernel.UUID {
	return c.operationID
}

// ActorID returns the releasing actor.
func (c ReleaseOperationCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the releasing actor's role.
func (c ReleaseOperationCommand) ActorRole() actor.Role {
	return c.actorRole
}

func (c *ReleaseOperationCommand) setSerialCode(serialCode serial.Code) error {
	if err := serialCode.Validate(); err != nil {
		return err
	}

	c.serialCode = serialCode
	return nil
}

func (c *ReleaseOperationCommand) setOperationID(operationID kernel.UUID) error {
	if err := operationID.Validate(); err != nil {
		return err
	}

	c.operationID = operationID
	return nil
}

func (c *ReleaseOperationCommand) setActor(actorID kernel.UUID, actorRole actor.Role) error {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
