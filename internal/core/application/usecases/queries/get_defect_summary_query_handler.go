package queries

import (
	"context"

	"mestrack/internal/core/domain/model/defect"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDefectSummaryQueryHandler aggregates defect numbers from the database.
type GetDefectSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetDefectSummaryQueryHandler creates a handler for defect summary queries.
func NewGetDefectSummaryQueryHandler(db *gorm.DB) GetDefectSummaryQueryHandler {
	return GetDefectSummaryQueryHandler{db: db}
}

// Handle executes the query.
func (h GetDefectSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetDefectSummaryQuery,
) (GetDefectSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDefectSummaryQueryResponse{}, err
	}

	response := GetDefectSummaryQueryResponse{
		CountsByStatus: make(map[string]int),
		CountsByType:   make(map[string]int),
		Recent:         make([]DefectSummaryEntry, 0, recentDefectLimit),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) FROM defects GROUP BY status
	`).Rows()
	if err != nil {
		return GetDefectSummaryQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status, count int
		if err = rows.Scan(&status, &count); err != nil {
			return GetDefectSummaryQueryResponse{}, err
		}
		response.CountsByStatus[defect.Status(status).String()] = count
	}
	if err = rows.Err(); err != nil {
		return GetDefectSummaryQueryResponse{}, err
	}

	typeRows, err := h.db.WithContext(ctx).Raw(`
		SELECT defect_type, COUNT(*) FROM defects GROUP BY defect_type
	`).Rows()
	if err != nil {
		return GetDefectSummaryQueryResponse{}, err
	}
	defer typeRows.Close()

	for typeRows.Next() {
		var defectType, count int
		if err = typeRows.Scan(&defectType, &count); err != nil {
			return GetDefectSummaryQueryResponse{}, err
		}
		response.CountsByType[defect.Type(defectType).String()] = count
	}
	if err = typeRows.Err(); err != nil {
		return GetDefectSummaryQueryResponse{}, err
	}

	recentRows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			s.serial_number,
			d.defect_type,
			d.status,
			d.description,
			d.created_at
		FROM defects d
		JOIN serials s ON s.id = d.serial_id
		ORDER BY d.created_at DESC
		LIMIT ?
	`, recentDefectLimit).Rows()
	if err != nil {
		return GetDefectSummaryQueryResponse{}, err
	}
	defer recentRows.Close()

	for recentRows.Next() {
		var entry DefectSummaryEntry
		var id uuid.UUID
		var defectType, status int

		err = recentRows.Scan(
			&id,
			&entry.SerialCode,
			&defectType,
			&status,
			&entry.Description,
			&entry.ReportedAt,
		)
		if err != nil {
			return GetDefectSummaryQueryResponse{}, err
		}

		entry.DefectID = id.String()
		entry.DefectType = defect.Type(defectType).String()
		entry.Status = defect.Status(status).String()
		response.Recent = append(response.Recent, entry)
	}

	if err = recentRows.Err(); err != nil {
		return GetDefectSummaryQueryResponse{}, err
	}

	return response, nil
}
