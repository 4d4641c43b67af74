// Package services provides domain services that orchestrate business
// operations across multiple aggregates.
//
// The package includes:
//   - RepairResolver: coordinates a defect resolution with the affected
//     serial (repair return or scrap)
//
// Domain services hold the workflow logic that does not naturally belong to a
// single aggregate root.
package services
