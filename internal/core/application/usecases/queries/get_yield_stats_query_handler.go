package queries

import (
	"context"

	"mestrack/internal/core/domain/model/serial"

	"gorm.io/gorm"
)

// GetYieldStatsQueryHandler aggregates production numbers from the database.
type GetYieldStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetYieldStatsQueryHandler creates a handler for yield statistics queries.
func NewGetYieldStatsQueryHandler(db *gorm.DB) GetYieldStatsQueryHandler {
	return GetYieldStatsQueryHandler{db: db}
}

// Handle executes the query. Status counts cover all serials created in the
// period; completion and yield numbers count serials whose completion fell
// inside it.
func (h GetYieldStatsQueryHandler) Handle(
	ctx context.Context,
	query GetYieldStatsQuery,
) (GetYieldStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetYieldStatsQueryResponse{}, err
	}

	response := GetYieldStatsQueryResponse{
		CountsByStatus: make(map[string]int),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM serials
		WHERE created_at >= ? AND created_at < ?
		GROUP BY status
	`, query.From(), query.To()).Rows()
	if err != nil {
		return GetYieldStatsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status, count int
		if err = rows.Scan(&status, &count); err != nil {
			return GetYieldStatsQueryResponse{}, err
		}
		response.CountsByStatus[serial.Status(status).String()] = count
		response.TotalSerials += count
	}
	if err = rows.Err(); err != nil {
		return GetYieldStatsQueryResponse{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT EXISTS (
				SELECT 1 FROM defects d WHERE d.serial_id = serials.id
			))
		FROM serials
		WHERE status = ?
		  AND completed_at >= ? AND completed_at < ?
	`, int(serial.StatusCompleted), query.From(), query.To()).Row().Scan(
		&response.CompletedInPeriod, &response.FirstPassInPeriod)
	if err != nil {
		return GetYieldStatsQueryResponse{}, err
	}

	if response.CompletedInPeriod > 0 {
		response.FirstPassYield = float64(response.FirstPassInPeriod) / float64(response.CompletedInPeriod)
	}

	return response, nil
}
