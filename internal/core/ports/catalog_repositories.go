package ports

import (
	"context"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/operation"
	"mestrack/internal/core/domain/model/part"
)

// OperationRepository defines read access to the operation catalog.
type OperationRepository interface {
	// Get retrieves an operation by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*operation.Operation, error)

	// GetAllActive retrieves active operations ordered by sequence position.
	// Serial creation fans out one record per returned operation.
	GetAllActive(ctx context.Context) ([]*operation.Operation, error)

	// Add persists a new catalog operation.
	Add(ctx context.Context, op *operation.Operation) error
}

// PartRepository defines read access to the authorized part catalog.
type PartRepository interface {
	// Get retrieves a part by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*part.Part, error)

	// GetActiveByPartNumber retrieves an active part by its part number.
	// Inactive or unknown part numbers fail with errs.ErrObjectNotFound.
	GetActiveByPartNumber(ctx context.Context, partNumber string) (*part.Part, error)

	// Add persists a new catalog part.
	Add(ctx context.Context, p *part.Part) error
}
