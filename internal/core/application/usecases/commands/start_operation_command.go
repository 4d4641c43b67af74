package commands

import (
	"errors"

	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/pkg/guard"
)

var ErrStartOperationCommandIsNotConstructed = errors.New(
	"StartOperationCommand must be created via NewStartOperationCommand constructor",
)

// StartOperationCommand represents an operator claiming an operation on a
// serial: the pending record moves to in-progress and is locked to the actor.
//
// Example:
//
//	code, _ := serial.ParseCode("KC001-007M")
//	cmd, err := NewStartOperationCommand(code, operationID, operatorID, actor.RoleOperator)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewStartOperationCommandHandler(uowFactory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to start operation: %w", err)
//	}
type StartOperationCommand struct { //nolint:recvcheck //using for validation
	serialCode  serial.Code
	operationID kernel.UUID
	actorID     kernel.UUID
	actorRole   actor.Role

	guard guard.ConstructorGuard
}

// NewStartOperationCommand creates a command for claiming an operation.
// Validates the code, the operation, the actor and the actor's role.
func NewStartOperationCommand(
	serialCode serial.Code,
	operationID, actorID kernel.UUID,
	actorRole actor.Role,
) (StartOperationCommand, error) {
	startCommand := StartOperationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		startCommand.setSerialCode(serialCode),
		startCommand.setOperationID(operationID),
		startCommand.setActor(actorID, actorRole),
	); err != nil {
		return StartOperationCommand{}, err
	}

	return startCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c StartOperationCommand) Validate() error {
	return c.guard.Validate(ErrStartOperationCommandIsNotConstructed)
}

// SerialCode returns the code of the serial being worked.
func (c StartOperationCommand) SerialCode() serial.Code {
	return c.serialCode
}

// OperationID returns the operation being claimed.
func (c StartOperationCommand) OperationID() kernel.UUID {
	return c.operationID
}

// ActorID returns the claiming actor.
func (c StartOperationCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the claiming actor's role.
func (c StartOperationCommand) ActorRole() actor.Role {
	return c.actorRole
}

func (c *StartOperationCommand) setSerialCode(serialCode serial.Code) error {
	if err := serialCode.Validate(); err != nil {
		return err
	}

	c.serialCode = serialCode
	return nil
}

func (c *StartOperationCommand) setOperationID(operationID kernel.UUID) error {
	if err := operationID.Validate(); err != nil {
		return err
	}

	c.operationID = operationID
	return nil
}

func (c *StartOperationCommand) setActor(actorID kernel.UUID, actorRole actor.Role) error {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
