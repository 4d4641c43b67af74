package commands

import (
	"context"
	"time"

	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/core/ports"
	"mestrack/internal/pkg/errs"
)

// ReassignOperationCommandHandler handles supervisor reassignment of claimed
// records. The target actor is subject to the same system-wide exclusivity
// rule as a regular start: they must hold nothing else in progress.
type ReassignOperationCommandHandler struct {
	uowFactory SerialUoWFactory
	notifier   ports.Notifier
}

// NewReassignOperationCommandHandler creates a handler for reassigning operations.
func NewReassignOperationCommandHandler(uowFactory SerialUoWFactory, notifier ports.Notifier) ReassignOperationCommandHandler {
	return ReassignOperationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the reassign command. Requires reassignment privileges.
// Without a named target the record is released on behalf of its current
// holder.
func (h *ReassignOperationCommandHandler) Handle(ctx context.Context, cmd ReassignOperationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.RequestedRole().CanReassign() {
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
	recordStatus := serial.RecordStatusInProgress
	eventActor := cmd.NewActorID()

	if cmd.HasNewActor() {
		busy, busyErr := serialRepo.ActorHoldsInProgress(ctx, cmd.NewActorID())
		if busyErr != nil {
			return busyErr
		}
		if busy {
			return serial.ErrActorBusy
		}

		if err = s.ReassignOperation(cmd.OperationID(), cmd.NewActorID(), now); err != nil {
			return err
		}
	} else {
		holder, holderErr := inProgressHolder(s, cmd)
		if holderErr != nil {
			return holderErr
		}

		if err = s.ReleaseOperation(cmd.OperationID(), holder, now); err != nil {
			return err
		}
		recordStatus = serial.RecordStatusPending
		eventActor = cmd.RequestedBy()
	}

	if err = serialRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.PublishTransition(ctx,
		recordTransitionEvent(s, cmd.OperationID(), recordStatus, eventActor))

	return nil
}

func inProgressHolder(s *serial.Serial, cmd ReassignOperationCommand) (kernel.UUID, error) {
	for _, rec := range s.Records() {
		if rec.Superseded() || !rec.OperationID().IsEqual(cmd.OperationID()) {
			continue
		}
		if rec.Status() == serial.RecordStatusInProgress && rec.AssignedTo() != nil {
			return *rec.AssignedTo(), nil
		}
	}
	return kernel.UUID{}, errs.NewObjectNotFoundError("in-progress record", cmd.OperationID().String())
}
