package commands

import (
	"errors"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/pkg/guard"
)

var (
	ErrCreateSerialCommandIsNotConstructed = errors.New(
		"CreateSerialCommand must be created via NewCreateSerialCommand constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
	ErrPartNumberIsRequired  = errors.New("part number is required")
)

// CreateSerialCommand represents a request to register a single serialized
// unit for a manufacturing order. The serial code itself is allocated by the
// handler; callers only name the order and the part being built.
//
// Example:
//
//	serialID := kernel.NewUUID()
//	cmd, err := NewCreateSerialCommand(serialID, "WO-2025-0042", "PCB-MAIN-01", operatorID)
//	if err != nil {
//	    return fmt.Errorf("invalid serial data: %w", err)
//	}
//
//	handler := NewCreateSerialCommandHandler(uowFactory, notifier)
//	code, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create serial: %w", err)
//	}
//	fmt.Printf("Serial %s created and awaiting its first operation", code)
type CreateSerialCommand struct { //nolint:recvcheck //using for validation
	serialID    kernel.UUID
	orderNumber string
	partNumber  string
	createdBy   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateSerialCommand creates a command to register a new serialized unit.
// Validates that the serial ID and creator are valid and that the order and
// part numbers are not empty. Returns an error if any validation fails.
func NewCreateSerialCommand(
	serialID kernel.UUID,
	orderNumber, partNumber string,
	createdBy kernel.UUID,
) (CreateSerialCommand, error) {
	serialCommand := CreateSerialCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		serialCommand.setSerialID(serialID),
		serialCommand.setOrderNumber(orderNumber),
		serialCommand.setPartNumber(partNumber),
		serialCommand.setCreatedBy(createdBy),
	); err != nil {
		return CreateSerialCommand{}, err
	}

	return serialCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateSerialCommandIsNotConstructed if validation fails.
func (c CreateSerialCommand) Validate() error {
	return c.guard.Validate(ErrCreateSerialCommandIsNotConstructed)
}

// SerialID returns the unique identifier for the new serial.
func (c CreateSerialCommand) SerialID() kernel.UUID {
	return c.serialID
}

// OrderNumber returns the manufacturing order the unit belongs to.
func (c CreateSerialCommand) OrderNumber() string {
	return c.orderNumber
}

// PartNumber returns the catalog part number being built.
func (c CreateSerialCommand) PartNumber() string {
	return c.partNumber
}

// CreatedBy returns the actor registering the unit.
func (c CreateSerialCommand) CreatedBy() kernel.UUID {
	return c.createdBy
}

func (c *CreateSerialCommand) setSerialID(serialID kernel.UUID) error {
	if err := serialID.Validate(); err != nil {
		return err
	}

	c.serialID = serialID
	return nil
}

func (c *CreateSerialCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateSerialCommand) setPartNumber(partNumber string) error {
	if partNumber == "" {
		return ErrPartNumberIsRequired
	}

	c.partNumber = partNumber
	return nil
}

func (c *CreateSerialCommand) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}

	c.createdBy = createdBy
	return nil
}
