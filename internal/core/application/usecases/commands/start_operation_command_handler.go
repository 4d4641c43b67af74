package commands

import (
	"context"
	"time"

	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/core/ports"
)

// StartOperationCommandHandler handles claiming an operation on a serial.
// Enforces the one-claim-per-actor rule system-wide: the busy check runs
// against the repository inside the same transaction as the claim, so two
// concurrent starts by one actor cannot both succeed.
//
// Example:
//
//	handler := NewStartOperationCommandHandler(uowFactory, notifier)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, serial.ErrActorBusy):
//	    log.Println("Finish or release your current operation first")
//	case errors.Is(err, serial.ErrSequenceViolation):
//	    log.Println("An earlier operation is not approved yet")
//	case err != nil:
//	    log.Printf("Start failed: %v", err)
//	}
type StartOperationCommandHandler struct {
	uowFactory SerialUoWFactory
	notifier   ports.Notifier
}

// NewStartOperationCommandHandler creates a handler for claiming operations.
func NewStartOperationCommandHandler(uowFactory SerialUoWFactory, notifier ports.Notifier) StartOperationCommandHandler {
	return StartOperationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the start command. The actor must be allowed to operate,
// must hold no other in-progress record anywhere, and every earlier operation
// of the serial must already be approved.
func (h *StartOperationCommandHandler) Handle(ctx context.Context, cmd StartOperationCommand) error {
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

	busy, err := serialRepo.ActorHoldsInProgress(ctx, cmd.ActorID())
	if err != nil {
		return err
	}
	if busy {
		return serial.ErrActorBusy
	}

	if err = s.StartOperation(cmd.OperationID(), cmd.ActorID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = serialRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.PublishTransition(ctx,
		recordTransitionEvent(s, cmd.OperationID(), serial.RecordStatusInProgress, cmd.ActorID()))

	return nil
}
