package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/core/ports"

	"gorm.io/gorm"
)

// CreateSerialBatchCommandHandler handles bulk serial generation for one
// order/part pair. Codes are allocated consecutively inside a single
// transaction, so the batch either lands as a contiguous run or not at all.
type CreateSerialBatchCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewCreateSerialBatchCommandHandler creates a handler for bulk serial generation.
func NewCreateSerialBatchCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CreateSerialBatchCommandHandler {
	return CreateSerialBatchCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the batch command and returns the allocated codes in
// order. A duplicate-key conflict from a concurrent writer rolls back and
// restarts the whole batch, up to maxAllocationAttempts times.
func (h *CreateSerialBatchCommandHandler) Handle(
	ctx context.Context,
	cmd CreateSerialBatchCommand,
) ([]serial.Code, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		created, err := h.tryCreateBatch(ctx, cmd)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		if err != nil {
			return nil, err
		}

		codes := make([]serial.Code, 0, len(created))
		for _, s := range created {
			codes = append(codes, s.Code())
			h.notifier.PublishTransition(ctx, ports.TransitionEvent{
				SerialCode:   s.Code().String(),
				SerialStatus: s.Status().String(),
				ActorID:      cmd.CreatedBy().String(),
				OccurredAt:   time.Now().UTC(),
			})
		}
		return codes, nil
	}

	return nil, fmt.Errorf("%w after %d allocation attempts",
		serial.ErrAllocationExhausted, maxAllocationAttempts)
}

func (h *CreateSerialBatchCommandHandler) tryCreateBatch(
	ctx context.Context,
	cmd CreateSerialBatchCommand,
) ([]*serial.Serial, error) {
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

	created := make([]*serial.Serial, 0, cmd.Quantity())
	for i := 0; i < cmd.Quantity(); i++ {
		if i > 0 {
			if code, err = code.Next(); err != nil {
				return nil, err
			}
		}

		s, err := serial.NewSerial(
			kernel.NewUUID(), code, cmd.OrderNumber(), catalogPart.ID(), cmd.CreatedBy(), slots, now)
		if err != nil {
			return nil, err
		}

		if err = serialRepo.Add(ctx, s); err != nil {
			return nil, err
		}
		created = append(created, s)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
