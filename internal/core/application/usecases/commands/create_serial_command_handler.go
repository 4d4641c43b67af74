package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/core/ports"

	"gorm.io/gorm"
)

// maxAllocationAttempts bounds the retry loop for concurrent code allocation.
// Two writers can scan the same greatest code and race to insert the same
// next one; the loser retries with a fresh scan.
const maxAllocationAttempts = 100

// CreateSerialCommandHandler handles the business logic for serial creation.
// Allocates the next code in the current year/month bucket, validates the part
// against the catalog, and fans out one pending record per active operation.
//
// Example:
//
//	handler := NewCreateSerialCommandHandler(uowFactory, notifier)
//	cmd, _ := NewCreateSerialCommand(kernel.NewUUID(), "WO-2025-0042", "PCB-MAIN-01", operatorID)
//
//	code, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("serial creation failed: %w", err)
//	}
//	// code is now reserved and the unit is awaiting its first operation
type CreateSerialCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewCreateSerialCommandHandler creates a handler for serial creation operations.
// Requires a UoWFactory for transactional persistence and a Notifier for
// post-commit transition events.
func NewCreateSerialCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CreateSerialCommandHandler {
	return CreateSerialCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the serial creation command and returns the allocated code.
// The allocation scan and the insert run in one transaction; a duplicate-key
// conflict from a concurrent writer restarts the whole transaction, up to
// maxAllocationAttempts times.
func (h *CreateSerialCommandHandler) Handle(ctx context.Context, cmd CreateSerialCommand) (serial.Code, error) {
	if err := cmd.Validate(); err != nil {
		return serial.Code{}, err
	}

	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		created, err := h.tryCreate(ctx, cmd)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		if err != nil {
			return serial.Code{}, err
		}

		h.notifier.PublishTransition(ctx, ports.TransitionEvent{
			SerialCode:   created.Code().String(),
			SerialStatus: created.Status().String(),
			ActorID:      cmd.CreatedBy().String(),
			OccurredAt:   time.Now().UTC(),
		})
		return created.Code(), nil
	}

	return serial.Code{}, fmt.Errorf("%w after %d allocation attempts",
		serial.ErrAllocationExhausted, maxAllocationAttempts)
}

func (h *CreateSerialCommandHandler) tryCreate(
	ctx context.Context,
	cmd CreateSerialCommand,
) (*serial.Serial, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalogPart, err := uow.PartRepository().GetActiveByPartNumber(ctx, cmd.PartNumber())
	if err != nil {
		return nil, err
	}

	slots, err := activeOperationSlots(ctx, uow.OperationRepository())
	if err != nil {
		return nil, err
	}

	serialRepo := uow.SerialRepository()
	now := time.Now().UTC()

	code, err := nextCodeInBucket(ctx, serialRepo, now)
	if err != nil {
		return nil, err
	}

	created, err := serial.NewSerial(
		cmd.SerialID(), code, cmd.OrderNumber(), catalogPart.ID(), cmd.CreatedBy(), slots, now)
	if err != nil {
		return nil, err
	}

	if err = serialRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// nextCodeInBucket determines the next free code for the bucket containing
// now: the increment of the greatest persisted code, or the bucket's first
// code when the bucket is still empty.
func nextCodeInBucket(ctx context.Context, repo ports.SerialRepository, now time.Time) (serial.Code, error) {
	bucket, err := serial.BucketFor(now)
	if err != nil {
		return serial.Code{}, err
	}

	last, found, err := repo.GreatestCodeWithPrefix(ctx, bucket.Prefix())
	if err != nil {
		return serial.Code{}, err
	}
	if !found {
		return serial.FirstCode(bucket), nil
	}

	return last.Next()
}

func activeOperationSlots(ctx context.Context, repo ports.OperationRepository) ([]serial.OperationSlot, error) {
	operations, err := repo.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	slots := make([]serial.OperationSlot, 0, len(operations))
	for _, op := range operations {
		slots = append(slots, serial.OperationSlot{
			OperationID: op.ID(),
			Sequence:    op.Sequence(),
		})
	}
	return slots, nil
}
