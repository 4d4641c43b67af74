// Package queries contains read-only operations for the CQRS read side.
// Query handlers bypass the domain model and read projection-friendly rows
// straight from the database.
package queries

import (
	"errors"
	"time"

	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/pkg/guard"
)

var ErrGetSerialHistoryQueryIsNotConstructed = errors.New(
	"GetSerialHistoryQuery must be created via NewGetSerialHistoryQuery constructor",
)

// GetSerialHistoryQuery retrieves the full process trail of one serial:
// every record ever written for it, superseded ones included, joined to the
// operation catalog.
//
// Example:
//
//	code, _ := serial.ParseCode("KC001-007M")
//	query, _ := NewGetSerialHistoryQuery(code)
//	handler := NewGetSerialHistoryQueryHandler(db)
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get history: %w", err)
//	}
//	for _, entry := range history.Records {
//	    fmt.Printf("%d. %s: %s\n", entry.Sequence, entry.OperationName, entry.Status)
//	}
type GetSerialHistoryQuery struct {
	serialCode serial.Code

	guard guard.ConstructorGuard
}

// NewGetSerialHistoryQuery creates a query for one serial's process trail.
func NewGetSerialHistoryQuery(serialCode serial.Code) (GetSerialHistoryQuery, error) {
	if err := serialCode.Validate(); err != nil {
		return GetSerialHistoryQuery{}, err
	}

	return GetSerialHistoryQuery{
		serialCode: serialCode,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSerialHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetSerialHistoryQueryIsNotConstructed)
}

// SerialCode returns the code of the serial being inspected.
func (q GetSerialHistoryQuery) SerialCode() serial.Code {
	return q.serialCode
}

// GetSerialHistoryQueryResponse carries the serial header and its record
// trail ordered by sequence, then age.
type GetSerialHistoryQueryResponse struct {
	SerialCode  string
	OrderNumber string
	Status      string
	CreatedAt   time.Time
	CompletedAt *time.Time
	Records     []SerialHistoryRecord
}

// SerialHistoryRecord is one row of the process trail.
type SerialHistoryRecord struct {
	OperationID     string
	OperationName   string
	Sequence        int
	Status          string
	AssignedTo      *string
	ProcessedBy     *string
	StartedAt       *time.Time
	CompletedAt     *time.Time
	Notes           string
	QualityPassed   bool
	RejectionReason string
	Superseded      bool
	CreatedAt       time.Time
}
