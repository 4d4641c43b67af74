package commands

import (
	"errors"
	"time"

	"mestrack/internal/pkg/guard"
)

var (
	ErrReportStalledClaimsCommandIsNotConstructed = errors.New(
		"ReportStalledClaimsCommand must be created via NewReportStalledClaimsCommand constructor",
	)
	ErrThresholdIsInvalid = errors.New("threshold must be greater than 0")
)

// ReportStalledClaimsCommand represents a scan for in-progress records whose
// claim is older than the threshold. Observation only: the scan alerts and
// never releases anything.
type ReportStalledClaimsCommand struct { //nolint:recvcheck //using for validation
	threshold time.Duration

	guard guard.ConstructorGuard
}

// NewReportStalledClaimsCommand creates a command for the stalled-claim scan.
func NewReportStalledClaimsCommand(threshold time.Duration) (ReportStalledClaimsCommand, error) {
	if threshold <= 0 {
		return ReportStalledClaimsCommand{}, ErrThresholdIsInvalid
	}

	return ReportStalledClaimsCommand{
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportStalledClaimsCommand) Validate() error {
	return c.guard.Validate(ErrReportStalledClaimsCommandIsNotConstructed)
}

// Threshold returns the claim age above which an alert fires.
func (c ReportStalledClaimsCommand) Threshold() time.Duration {
	return c.threshold
}
