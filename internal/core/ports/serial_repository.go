package ports

import (
	"context"
	"time"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"
)

// SerialRepository defines the persistence contract for serial aggregates,
// including their process records.
type SerialRepository interface {
	// Add persists a new serial with all its fanned-out records. A duplicate
	// code surfaces as gorm.ErrDuplicatedKey so the allocator can retry.
	Add(ctx context.Context, aggregate *serial.Serial) error

	// Update persists changes to an existing serial and its records.
	Update(ctx context.Context, aggregate *serial.Serial) error

	// Get retrieves a serial by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*serial.Serial, error)

	// GetByCode retrieves a serial by its structured code.
	GetByCode(ctx context.Context, code serial.Code) (*serial.Serial, error)

	// GreatestCodeWithPrefix returns the lexicographically greatest existing
	// code in the given bucket prefix, or found == false when the bucket is
	// empty. The allocator derives the next code from it.
	GreatestCodeWithPrefix(ctx context.Context, prefix string) (code serial.Code, found bool, err error)

	// ActorHoldsInProgress reports whether the actor currently holds any
	// in-progress record on any serial. Used for the system-wide claim
	// exclusivity check; must run inside the mutating transaction.
	ActorHoldsInProgress(ctx context.Context, actorID kernel.UUID) (bool, error)

	// GetWithInProgressOlderThan retrieves serials that have an in-progress
	// record started before the cutoff. Claims never expire on their own, so
	// the stalled-claim job uses this to alert on forgotten work.
	GetWithInProgressOlderThan(ctx context.Context, cutoff time.Time) ([]*serial.Serial, error)
}
