package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Every multi-record
// mutation (a record transition plus the status recompute, a rejection plus
// its defect) commits atomically or not at all.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// SerialRepository returns a SerialRepository bound to the current transaction.
	SerialRepository() SerialRepository

	// OperationRepository returns an OperationRepository bound to the current transaction.
	OperationRepository() OperationRepository

	// PartRepository returns a PartRepository bound to the current transaction.
	PartRepository() PartRepository

	// DefectRepository returns a DefectRepository bound to the current transaction.
	DefectRepository() DefectRepository
}
