package commands

import (
	"errors"

	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/defect"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/pkg/guard"
)

var (
	ErrRejectOperationCommandIsNotConstructed = errors.New(
		"RejectOperationCommand must be created via NewRejectOperationCommand constructor",
	)
	ErrRejectionReasonIsRequired = errors.New("rejection reason is required")
)

// RejectOperationCommand represents failing an operation on a serial. Every
// rejection opens a defect, so the command also carries the defect
// classification.
type RejectOperationCommand struct { //nolint:recvcheck //using for validation
	serialCode  serial.Code
	operationID kernel.UUID
	actorID     kernel.UUID
	actorRole   actor.Role
	reason      string
	defectType  defect.Type

	guard guard.ConstructorGuard
}

// NewRejectOperationCommand creates a command for rejecting an operation.
// The reason is mandatory; the defect type string falls back to "Other" for
// unknown values.
func NewRejectOperationCommand(
	serialCode serial.Code,
	operationID, actorID kernel.UUID,
	actorRole actor.Role,
	reason, defectType string,
) (RejectOperationCommand, error) {
	rejectCommand := RejectOperationCommand{
		defectType: defect.TypeFromString(defectType),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rejectCommand.setSerialCode(serialCode),
		rejectCommand.setOperationID(operationID),
		rejectCommand.setActor(actorID, actorRole),
		rejectCommand.setReason(reason),
	); err != nil {
		return RejectOperationCommand{}, err
	}

	return rejectCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOperationCommand) Validate() error {
	return c.guard.Validate(ErrRejectOperationCommandIsNotConstructed)
}

// SerialCode returns the code of the serial being worked.
func (c RejectOperationCommand) SerialCode() serial.Code {
	return c.serialCode
}

// OperationID returns the operation being rejected.
func (c RejectOperationCommand) OperationID() kernel.UUID {
	return c.operationID
}

// ActorID returns the rejecting actor.
func (c RejectOperationCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the rejecting actor's role.
func (c RejectOperationCommand) ActorRole() actor.Role {
	return c.actorRole
}

// Reason returns the rejection reason.
func (c RejectOperationCommand) Reason() string {
	return c.reason
}

// DefectType returns the classification for the opened defect.
func (c RejectOperationCommand) DefectType() defect.Type {
	return c.defectType
}

func (c *RejectOperationCommand) setSerialCode(serialCode serial.Code) error {
	if err := serialCode.Validate(); err != nil {
		return err
	}

	c.serialCode = serialCode
	return nil
}

func (c *RejectOperationCommand) setOperationID(operationID kernel.UUID) error {
	if err := operationID.Validate(); err != nil {
		return err
	}

	c.operationID = operationID
	return nil
}

func (c *RejectOperationCommand) setActor(actorID kernel.UUID, actorRole actor.Role) error {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}

func (c *RejectOperationCommand) setReason(reason string) error {
	if reason == "" {
		return ErrRejectionReasonIsRequired
	}

	c.reason = reason
	return nil
}
