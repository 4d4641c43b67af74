package commands

import (
	"errors"

	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/pkg/guard"
)

var ErrReassignOperationCommandIsNotConstructed = errors.New(
	"ReassignOperationCommand must be created via NewReassignOperationCommand constructor",
)

// ReassignOperationCommand represents a supervisor moving an in-progress
// record to a different actor, or releasing it when no target is named.
// Covers the stalled-claim scenario: the original holder is gone and the
// record would otherwise stay locked forever.
type ReassignOperationCommand struct { //nolint:recvcheck //using for validation
	serialCode    serial.Code
	operationID   kernel.UUID
	requestedBy   kernel.UUID
	requestedRole actor.Role
	newActorID    kernel.UUID
	hasNewActor   bool

	guard guard.ConstructorGuard
}

// NewReassignOperationCommand creates a command for reassigning an operation.
// A zero-value newActorID means "release the record" rather than handing it
// to someone else.
func NewReassignOperationCommand(
	serialCode serial.Code,
	operationID, requestedBy kernel.UUID,
	requestedRole actor.Role,
	newActorID kernel.UUID,
) (ReassignOperationCommand, error) {
	reassignCommand := ReassignOperationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		reassignCommand.setSerialCode(serialCode),
		reassignCommand.setOperationID(operationID),
		reassignCommand.setRequester(requestedBy, requestedRole),
	); err != nil {
		return ReassignOperationCommand{}, err
	}

	if err := newActorID.Validate(); err == nil {
		reassignCommand.newActorID = newActorID
		reassignCommand.hasNewActor = true
	}

	return reassignCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignOperationCommand) Validate() error {
	return c.guard.Validate(ErrReassignOperationCommandIsNotConstructed)
}

// SerialCode returns the code of the serial being worked.
func (c ReassignOperationCommand) SerialCode() serial.Code {
	return c.serialCode
}

// OperationID returns the operation being reassigned.
func (c ReassignOperationCommand) OperationID() kernel.UUID {
	return c.operationID
}

// RequestedBy returns the supervisor issuing the reassignment.
func (c ReassignOperationCommand) RequestedBy() kernel.UUID {
	return c.requestedBy
}

// RequestedRole returns the issuing actor's role.
func (c ReassignOperationCommand) RequestedRole() actor.Role {
	return c.requestedRole
}

// NewActorID returns the target actor. Only meaningful when HasNewActor
// reports true.
func (c ReassignOperationCommand) NewActorID() kernel.UUID {
	return c.newActorID
}

// HasNewActor reports whether a target actor was named.
func (c ReassignOperationCommand) HasNewActor() bool {
	return c.hasNewActor
}

func (c *ReassignOperationCommand) setSerialCode(serialCode serial.Code) error {
	if err := serialCode.Validate(); err != nil {
		return err
	}

	c.serialCode = serialCode
	return nil
}

func (c *ReassignOperationCommand) setOperationID(operationID kernel.UUID) error {
	if err := operationID.Validate(); err != nil {
		return err
	}

	c.operationID = operationID
	return nil
}

func (c *ReassignOperationCommand) setRequester(requestedBy kernel.UUID, requestedRole actor.Role) error {
	if err := errors.Join(requestedBy.Validate(), requestedRole.Validate()); err != nil {
		return err
	}

	c.requestedBy = requestedBy
	c.requestedRole = requestedRole
	return nil
}
