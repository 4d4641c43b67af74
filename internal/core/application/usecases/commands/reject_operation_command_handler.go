package commands

import (
	"context"
	"time"

	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/defect"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/core/ports"
)

// RejectOperationCommandHandler handles failing an operation. The record
// transition and the opening of the corresponding defect commit in one
// transaction: a rejected record without a defect never exists.
//
// Example:
//
//	handler := NewRejectOperationCommandHandler(uowFactory, notifier)
//	cmd, _ := NewRejectOperationCommand(code, opID, operatorID, actor.RoleOperator,
//	    "solder bridge on U4", "Visual")
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("rejection failed: %w", err)
//	}
//	// Serial is now Defective and the defect is in the repair queue
type RejectOperationCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewRejectOperationCommandHandler creates a handler for rejecting operations.
func NewRejectOperationCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) RejectOperationCommandHandler {
	return RejectOperationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the reject command. In-progress records may only be
// rejected by their holder; pending records may be rejected directly, which
// covers the supervisor pulling a unit out of line before work starts.
func (h *RejectOperationCommandHandler) Handle(ctx context.Context, cmd RejectOperationCommand) error {
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

	now := time.Now().UTC()
	if err = s.RejectOperation(cmd.OperationID(), cmd.ActorID(), now, cmd.Reason()); err != nil {
		return err
	}

	opened, err := defect.NewDefect(
		kernel.NewUUID(), s.ID(), cmd.OperationID(), cmd.DefectType(), cmd.Reason(), cmd.ActorID(), now)
	if err != nil {
		return err
	}

	if err = serialRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.DefectRepository().Add(ctx, opened); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.PublishTransition(ctx,
		recordTransitionEvent(s, cmd.OperationID(), serial.RecordStatusRejected, cmd.ActorID()))

	return nil
}
