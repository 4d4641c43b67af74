package queries

import (
	"errors"
	"time"

	"mestrack/internal/pkg/guard"
)

var ErrGetDefectSummaryQueryIsNotConstructed = errors.New(
	"GetDefectSummaryQuery must be created via NewGetDefectSummaryQuery constructor",
)

// recentDefectLimit caps the recent-defects list in the summary.
const recentDefectLimit = 10

// GetDefectSummaryQuery retrieves the repair-floor dashboard numbers: defect
// counts by status and type plus the most recent defects.
type GetDefectSummaryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDefectSummaryQuery creates a query for the defect dashboard.
func NewGetDefectSummaryQuery() GetDefectSummaryQuery {
	return GetDefectSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDefectSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetDefectSummaryQueryIsNotConstructed)
}

// GetDefectSummaryQueryResponse carries the aggregated defect numbers.
type GetDefectSummaryQueryResponse struct {
	CountsByStatus map[string]int
	CountsByType   map[string]int
	Recent         []DefectSummaryEntry
}

// DefectSummaryEntry is one row of the recent-defects list.
type DefectSummaryEntry struct {
	DefectID    string
	SerialCode  string
	DefectType  string
	Status      string
	Description string
	ReportedAt  time.Time
}
