package ports

import (
	"context"

	"mestrack/internal/core/domain/model/defect"
	"mestrack/internal/core/domain/model/kernel"
)

// DefectRepository defines the persistence contract for defect aggregates.
type DefectRepository interface {
	// Add persists a new defect.
	Add(ctx context.Context, aggregate *defect.Defect) error

	// Update persists changes to an existing defect.
	Update(ctx context.Context, aggregate *defect.Defect) error

	// Get retrieves a defect by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*defect.Defect, error)

	// GetUnresolvedBySerial retrieves the open and in-repair defects for a
	// serial, newest first.
	GetUnresolvedBySerial(ctx context.Context, serialID kernel.UUID) ([]*defect.Defect, error)
}
