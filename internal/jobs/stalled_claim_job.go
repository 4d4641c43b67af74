package jobs

import (
	"context"
	"log/slog"
	"time"

	"mestrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StalledClaimJob periodically scans for in-progress records whose claim has
// been held past the alert threshold and publishes alerts for them. The job
// only observes; releasing a stalled claim stays a manual action.
type StalledClaimJob struct {
	handler   commands.ReportStalledClaimsCommandHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStalledClaimJob creates a job that reports claims older than threshold.
func NewStalledClaimJob(
	handler commands.ReportStalledClaimsCommandHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StalledClaimJob {
	return &StalledClaimJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "stalled_claim_job"),
	}
}

// Start begins the stalled claim scan, running every minute.
func (j *StalledClaimJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewReportStalledClaimsCommand(j.threshold)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stalled claim command rejected", "error", err)
			return
		}

		alerted, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stalled claim scan failed", "error", err)
			return
		}

		if alerted > 0 {
			j.logger.WarnContext(ctx, "Stalled claims detected", "count", alerted, "threshold", j.threshold)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stalled claim job started (running every minute)")
	return nil
}

// Stop stops the stalled claim job.
func (j *StalledClaimJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stalled claim job stopped")
}
