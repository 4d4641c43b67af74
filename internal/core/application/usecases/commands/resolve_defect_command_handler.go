package commands

import (
	"context"
	"time"

	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/services"
	"mestrack/internal/core/ports"
)

// ResolveDefectCommandHandler orchestrates defect resolution. The defect and
// its serial change together through the RepairResolver domain service and
// are persisted in a single transaction.
type ResolveDefectCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewResolveDefectCommandHandler creates a handler for defect resolution.
func NewResolveDefectCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ResolveDefectCommandHandler {
	return ResolveDefectCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the resolve command. Only the assigned repairer may
// resolve; a repair returns the unit to the process, a scrap withdraws it
// terminally.
func (h *ResolveDefectCommandHandler) Handle(ctx context.Context, cmd ResolveDefectCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.ResolverRole().CanResolveDefects() {
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
	serialRepo := uow.SerialRepository()

	d, err := defectRepo.Get(ctx, cmd.DefectID())
	if err != nil {
		return err
	}

	s, err := serialRepo.Get(ctx, d.SerialID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	resolver := services.NewRepairResolver()

	if cmd.Scrap() {
		err = resolver.Scrap(d, s, cmd.ResolverID(), cmd.Notes(), now)
	} else {
		err = resolver.Repair(d, s, cmd.ResolverID(), cmd.ReturnToOperationID(), cmd.Notes(), now)
	}
	if err != nil {
		return err
	}

	if err = defectRepo.Update(ctx, d); err != nil {
		return err
	}

	if err = serialRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.PublishTransition(ctx, ports.TransitionEvent{
		SerialCode:   s.Code().String(),
		SerialStatus: s.Status().String(),
		ActorID:      cmd.ResolverID().String(),
		OccurredAt:   time.Now().UTC(),
	})

	return nil
}
