package queries

import (
	"errors"
	"time"

	"mestrack/internal/pkg/guard"
)

var (
	ErrGetYieldStatsQueryIsNotConstructed = errors.New(
		"GetYieldStatsQuery must be created via NewGetYieldStatsQuery constructor",
	)
	ErrPeriodIsInvalid = errors.New("period end must be after period start")
)

// GetYieldStatsQuery retrieves production statistics for a period: serial
// counts by status, completions, and first-pass yield (the share of
// completed serials that never had a defect).
type GetYieldStatsQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetYieldStatsQuery creates a query for the given reporting period.
func NewGetYieldStatsQuery(from, to time.Time) (GetYieldStatsQuery, error) {
	if !to.After(from) {
		return GetYieldStatsQuery{}, ErrPeriodIsInvalid
	}

	return GetYieldStatsQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetYieldStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetYieldStatsQueryIsNotConstructed)
}

// From returns the period start.
func (q GetYieldStatsQuery) From() time.Time {
	return q.from
}

// To returns the period end.
func (q GetYieldStatsQuery) To() time.Time {
	return q.to
}

// GetYieldStatsQueryResponse carries the aggregated production numbers.
// FirstPassYield is a ratio in [0, 1]; it is 0 when nothing completed in the
// period.
type GetYieldStatsQueryResponse struct {
	TotalSerials      int
	CountsByStatus    map[string]int
	CompletedInPeriod int
	FirstPassInPeriod int
	FirstPassYield    float64
}
