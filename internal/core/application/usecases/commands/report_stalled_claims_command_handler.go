package commands

import (
	"context"
	"time"

	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/core/ports"
)

// ReportStalledClaimsCommandHandler scans for claims held past the threshold
// and publishes one alert per stalled record. It deliberately mutates
// nothing: stalled claims are a supervisor's call, resolved through release
// or reassignment.
type ReportStalledClaimsCommandHandler struct {
	uowFactory SerialUoWFactory
	notifier   ports.Notifier
}

// NewReportStalledClaimsCommandHandler creates a handler for the stalled-claim scan.
func NewReportStalledClaimsCommandHandler(
	uowFactory SerialUoWFactory,
	notifier ports.Notifier,
) ReportStalledClaimsCommandHandler {
	return ReportStalledClaimsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the scan command and returns the number of alerts published.
func (h *ReportStalledClaimsCommandHandler) Handle(
	ctx context.Context,
	cmd ReportStalledClaimsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	cutoff := now.Add(-cmd.Threshold())

	stalled, err := uow.SerialRepository().GetWithInProgressOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	alerts := 0
	for _, s := range stalled {
		for _, rec := range s.Records() {
			if rec.Superseded() || rec.Status() != serial.RecordStatusInProgress {
				continue
			}
			if rec.StartedAt() == nil || !rec.StartedAt().Before(cutoff) {
				continue
			}

			event := ports.StalledClaimEvent{
				SerialCode:  s.Code().String(),
				OperationID: rec.OperationID().String(),
				StartedAt:   *rec.StartedAt(),
				OccurredAt:  now,
			}
			if rec.AssignedTo() != nil {
				event.ActorID = rec.AssignedTo().String()
			}

			h.notifier.PublishStalledClaim(ctx, event)
			alerts++
		}
	}

	return alerts, nil
}
