package commands

import (
	"context"
	"time"

	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/core/ports"
)

// ReleaseOperationCommandHandler handles returning a claimed record to
// pending. Claims never expire on their own, so an explicit release is the
// only way a non-supervisor frees a record without finishing it.
type ReleaseOperationCommandHandler struct {
	uowFactory SerialUoWFactory
	notifier   ports.Notifier
}

// NewReleaseOperationCommandHandler creates a handler for releasing operations.
func NewReleaseOperationCommandHandler(uowFactory SerialUoWFactory, notifier ports.Notifier) ReleaseOperationCommandHandler {
	return ReleaseOperationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the release command. Only the actor holding the record
// may release it.
func (h *ReleaseOperationCommandHandler) Handle(ctx context.Context, cmd ReleaseOperationCommand) error {
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

	if err = s.ReleaseOperation(cmd.OperationID(), cmd.ActorID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = serialRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.PublishTransition(ctx,
		recordTransitionEvent(s, cmd.OperationID(), serial.RecordStatusPending, cmd.ActorID()))

	return nil
}
