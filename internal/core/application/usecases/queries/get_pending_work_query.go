package queries

import (
	"errors"
	"time"

	"mestrack/internal/pkg/guard"
)

var ErrGetPendingWorkQueryIsNotConstructed = errors.New(
	"GetPendingWorkQuery must be created via NewGetPendingWorkQuery constructor",
)

// GetPendingWorkQuery retrieves the operator worklist: pending records whose
// earlier operations are all approved, so they can actually be started.
//
// Example:
//
//	query := NewGetPendingWorkQuery()
//	handler := NewGetPendingWorkQueryHandler(db)
//
//	work, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get worklist: %w", err)
//	}
//	fmt.Printf("%d operations ready to start\n", len(work))
type GetPendingWorkQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingWorkQuery creates a query for the operator worklist.
// This is a parameterless query covering every serial still in the process.
func NewGetPendingWorkQuery() GetPendingWorkQuery {
	return GetPendingWorkQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingWorkQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingWorkQueryIsNotConstructed)
}

// GetPendingWorkQueryResponse is one startable operation on one serial.
type GetPendingWorkQueryResponse struct {
	SerialCode    string
	OrderNumber   string
	OperationID   string
	OperationName string
	Sequence      int
	WaitingSince  time.Time
}
