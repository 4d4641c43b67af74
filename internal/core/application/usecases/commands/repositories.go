// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"mestrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SerialRepoFactory provides access to the serial repository within a transaction.
	SerialRepoFactory interface {
		SerialRepository() ports.SerialRepository
	}

	// OperationRepoFactory provides access to the operation catalog within a transaction.
	OperationRepoFactory interface {
		OperationRepository() ports.OperationRepository
	}

	// PartRepoFactory provides access to the part catalog within a transaction.
	PartRepoFactory interface {
		PartRepository() ports.PartRepository
	}

	// DefectRepoFactory provides access to the defect repository within a transaction.
	DefectRepoFactory interface {
		DefectRepository() ports.DefectRepository
	}

	// SerialUoW manages transactions for serial-only operations.
	// Used by the record transition commands that touch a single serial.
	SerialUoW interface {
		TxManager
		SerialRepoFactory
	}

	// SerialUoWFactory creates new serial unit of work instances.
	SerialUoWFactory interface {
		Create() SerialUoW
	}

	// DefectUoW manages transactions for defect-only operations.
	DefectUoW interface {
		TxManager
		DefectRepoFactory
	}

	// DefectUoWFactory creates new defect unit of work instances.
	DefectUoWFactory interface {
		Create() DefectUoW
	}

	// UoW manages transactions across serial, catalog and defect aggregates.
	// Used for commands that coordinate changes between multiple aggregate types,
	// such as serial creation (catalog fan-out) and rejection (serial + defect).
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   serialRepo := uow.SerialRepository()
	//   defectRepo := uow.DefectRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		SerialRepoFactory
		OperationRepoFactory
		PartRepoFactory
		DefectRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
