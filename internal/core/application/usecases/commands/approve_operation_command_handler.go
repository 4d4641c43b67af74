package commands

import (
	"context"
	"time"

	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/core/ports"
)

// ApproveOperationCommandHandler handles completing an operation with a pass
// result. Only the actor holding the in-progress record may approve it; the
// serial status recompute (including completion when this was the last
// operation) happens inside the aggregate.
type ApproveOperationCommandHandler struct {
	uowFactory SerialUoWFactory
	notifier   ports.Notifier
}

// NewApproveOperationCommandHandler creates a handler for approving operations.
func NewApproveOperationCommandHandler(uowFactory SerialUoWFactory, notifier ports.Notifier) ApproveOperationCommandHandler {
	return ApproveOperationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the approve command.
func (h *ApproveOperationCommandHandler) Handle(ctx context.Context, cmd ApproveOperationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.ActorRole().CanOperate() {
		return actor.ErrNotPermitted
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	serialRepo := uow.SerialRepository()

	s, err := serialRepo.GetByCode(ctx, cmd.SerialCode())
	if err != nil {
		return err
	}

	err = s.ApproveOperation(
		cmd.OperationID(), cmd.ActorID(), time.Now().UTC(), cmd.QualityPassed(), cmd.Notes())
	if err != nil {
		return err
	}

	if err = serialRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.PublishTransition(ctx,
		recordTransitionEvent(s, cmd.OperationID(), serial.RecordStatusApproved, cmd.ActorID()))

	return nil
}
