package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSerialHistoryQueryHandler reads one serial's process trail from the
// database. Superseded records stay in the trail: the history of a repaired
// unit shows the rejected attempt and the re-issued one.
type GetSerialHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetSerialHistoryQueryHandler creates a handler for serial history queries.
func NewGetSerialHistoryQueryHandler(db *gorm.DB) GetSerialHistoryQueryHandler {
	return GetSerialHistoryQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no serial
// carries the code.
func (h GetSerialHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetSerialHistoryQuery,
) (GetSerialHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSerialHistoryQueryResponse{}, err
	}

	var header struct {
		ID          uuid.UUID
		OrderNumber string
		Status      int
		CreatedAt   time.Time
		CompletedAt *time.Time
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			created_at,
			completed_at
		FROM serials
		WHERE serial_number = ?
	`, query.SerialCode().String()).Row().Scan(
		&header.ID, &header.OrderNumber, &header.Status, &header.CreatedAt, &header.CompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetSerialHistoryQueryResponse{},
			errs.NewObjectNotFoundError("serial", query.SerialCode().String())
	}
	if err != nil {
		return GetSerialHistoryQueryResponse{}, err
	}

	response := GetSerialHistoryQueryResponse{
		SerialCode:  query.SerialCode().String(),
		OrderNumber: header.OrderNumber,
		Status:      serial.Status(header.Status).String(),
		CreatedAt:   header.CreatedAt,
		CompletedAt: header.CompletedAt,
		Records:     make([]SerialHistoryRecord, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.operation_id,
			o.name,
			r.sequence,
			r.status,
			r.assigned_to,
			r.processed_by,
			r.started_at,
			r.completed_at,
			r.notes,
			r.quality_passed,
			r.rejection_reason,
			r.superseded,
			r.created_at
		FROM process_records r
		JOIN operations o ON o.id = r.operation_id
		WHERE r.serial_id = ?
		ORDER BY r.sequence, r.created_at
	`, header.ID).Rows()
	if err != nil {
		return GetSerialHistoryQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry SerialHistoryRecord
		var operationID uuid.UUID
		var status int
		var assignedTo, processedBy *uuid.UUID

		err = rows.Scan(
			&operationID,
			&entry.OperationName,
			&entry.Sequence,
			&status,
			&assignedTo,
			&processedBy,
			&entry.StartedAt,
			&entry.CompletedAt,
			&entry.Notes,
			&entry.QualityPassed,
			&entry.RejectionReason,
			&entry.Superseded,
			&entry.CreatedAt,
		)
		if err != nil {
			return GetSerialHistoryQueryResponse{}, err
		}

		entry.OperationID = operationID.String()
		entry.Status = serial.RecordStatus(status).String()
		if assignedTo != nil {
			s := assignedTo.String()
			entry.AssignedTo = &s
		}
		if processedBy != nil {
			s := processedBy.String()
			entry.ProcessedBy = &s
		}

		response.Records = append(response.Records, entry)
	}

	if err = rows.Err(); err != nil {
		return GetSerialHistoryQueryResponse{}, err
	}

	return response, nil
}
