package queries

import (
	"context"

	"mestrack/internal/core/domain/model/serial"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingWorkQueryHandler reads the operator worklist from the database.
// A record qualifies when it is pending, not superseded, its serial is not
// scrapped, and no earlier effective record is anything but approved.
type GetPendingWorkQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingWorkQueryHandler creates a handler for worklist queries.
func NewGetPendingWorkQueryHandler(db *gorm.DB) GetPendingWorkQueryHandler {
	return GetPendingWorkQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by sequence first, then by
// how long the record has been waiting.
func (h GetPendingWorkQueryHandler) Handle(
	ctx context.Context,
	query GetPendingWorkQuery,
) ([]GetPendingWorkQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	work := make([]GetPendingWorkQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.serial_number,
			s.order_number,
			r.operation_id,
			o.name,
			r.sequence,
			r.created_at
		FROM process_records r
		JOIN serials s ON s.id = r.serial_id
		JOIN operations o ON o.id = r.operation_id
		WHERE r.status = ?
		  AND NOT r.superseded
		  AND s.status != ?
		  AND NOT EXISTS (
			SELECT 1
			FROM process_records earlier
			WHERE earlier.serial_id = r.serial_id
			  AND NOT earlier.superseded
			  AND earlier.sequence < r.sequence
			  AND earlier.status != ?
		  )
		ORDER BY r.sequence, r.created_at
	`, int(serial.RecordStatusPending), int(serial.StatusScrapped), int(serial.RecordStatusApproved)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetPendingWorkQueryResponse
		var operationID uuid.UUID

		err = rows.Scan(
			&item.SerialCode,
			&item.OrderNumber,
			&operationID,
			&item.OperationName,
			&item.Sequence,
			&item.WaitingSince,
		)
		if err != nil {
			return nil, err
		}

		item.OperationID = operationID.String()
		work = append(work, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return work, nil
}
