package commands

import (
	"errors"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/pkg/guard"
)

// maxBatchQuantity caps one bulk generation request.
const maxBatchQuantity = 100

var (
	ErrCreateSerialBatchCommandIsNotConstructed = errors.New(
		"CreateSerialBatchCommand must be created via NewCreateSerialBatchCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be between 1 and 100")
)

// CreateSerialBatchCommand represents a request to register several serials
// for the same order and part in one shot. The whole batch is persisted
// atomically: either every unit gets a code or none does.
type CreateSerialBatchCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	partNumber  string
	createdBy   kernel.UUID
	quantity    int

	guard guard.ConstructorGuard
}

// NewCreateSerialBatchCommand creates a command to bulk-register serials.
// Quantity must be between 1 and maxBatchQuantity.
func NewCreateSerialBatchCommand(
	orderNumber, partNumber string,
	createdBy kernel.UUID,
	quantity int,
) (CreateSerialBatchCommand, error) {
	batchCommand := CreateSerialBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		batchCommand.setOrderNumber(orderNumber),
		batchCommand.setPartNumber(partNumber),
		batchCommand.setCreatedBy(createdBy),
		batchCommand.setQuantity(quantity),
	); err != nil {
		return CreateSerialBatchCommand{}, err
	}

	return batchCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateSerialBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateSerialBatchCommandIsNotConstructed)
}

// OrderNumber returns the manufacturing order the units belong to.
func (c CreateSerialBatchCommand) OrderNumber() string {
	return c.orderNumber
}

// PartNumber returns the catalog part number being built.
func (c CreateSerialBatchCommand) PartNumber() string {
	return c.partNumber
}

// CreatedBy returns the actor registering the units.
func (c CreateSerialBatchCommand) CreatedBy() kernel.UUID {
	return c.createdBy
}

// Quantity returns the number of serials to generate.
func (c CreateSerialBatchCommand) Quantity() int {
	return c.quantity
}

func (c *CreateSerialBatchCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateSerialBatchCommand) setPartNumber(partNumber string) error {
	if partNumber == "" {
		return ErrPartNumberIsRequired
	}

	c.partNumber = partNumber
	return nil
}

func (c *CreateSerialBatchCommand) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}

	c.createdBy = createdBy
	return nil
}

func (c *CreateSerialBatchCommand) setQuantity(quantity int) error {
	if quantity < 1 || quantity > maxBatchQuantity {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
