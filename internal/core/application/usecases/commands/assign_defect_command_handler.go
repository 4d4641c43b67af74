package commands

import (
	"context"
	"time"

	"mestrack/internal/core/domain/model/actor"
)

// AssignDefectCommandHandler handles a repairer claiming an open defect.
type AssignDefectCommandHandler struct {
	uowFactory DefectUoWFactory
}

// NewAssignDefectCommandHandler creates a handler for claiming defects.
func NewAssignDefectCommandHandler(uowFactory DefectUoWFactory) AssignDefectCommandHandler {
	return AssignDefectCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assign command. Requires repair privileges; the
// defect must be open and unassigned.
func (h *AssignDefectCommandHandler) Handle(ctx context.Context, cmd AssignDefectCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.RepairerRole().CanResolveDefects() {
		return actor.ErrNotPermitted
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	defectRepo := uow.DefectRepository()

	d, err := defectRepo.Get(ctx, cmd.DefectID())
	if err != nil {
		return err
	}

	if err = d.AssignRepairer(cmd.RepairerID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = defectRepo.Update(ctx, d); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
