// Package operation provides the manufacturing operation catalog entity.
// Operations form a fixed total order via unique sequence positions; inactive
// operations are excluded from fan-out and sequence validation.
package operation

import (
	"errors"
	"fmt"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/pkg/errs"
)

// ErrOperationIsNotConstructed is returned when an Operation instance was not
// created through NewOperation or RestoreOperation.
var ErrOperationIsNotConstructed = errors.New("Operation must be created via NewOperation constructor")

// Operation is a catalog-defined manufacturing step.
type Operation struct {
	id               kernel.UUID
	name             string
	description      string
	sequence         int
	estimatedMinutes int
	requiresApproval bool
	isActive         bool

	isConstructed bool
}

// NewOperation creates an active catalog operation. Sequence must be positive;
// uniqueness across the catalog is enforced by the store.
func NewOperation(
	id kernel.UUID,
	name, description string,
	sequence, estimatedMinutes int,
	requiresApproval bool,
) (*Operation, error) {
	op := &Operation{
		description:      description,
		estimatedMinutes: estimatedMinutes,
		requiresApproval: requiresApproval,
		isActive:         true,
		isConstructed:    true,
	}

	if err := errors.Join(
		op.setID(id),
		op.setName(name),
		op.setSequence(sequence),
	); err != nil {
		return nil, err
	}

	return op, nil
}

// RestoreOperation reconstructs an Operation from persistence.
func RestoreOperation(
	id kernel.UUID,
	name, description string,
	sequence, estimatedMinutes int,
	requiresApproval, isActive bool,
) (*Operation, error) {
	op, err := NewOperation(id, name, description, sequence, estimatedMinutes, requiresApproval)
	if err != nil {
		return nil, err
	}
	op.isActive = isActive
	return op, nil
}

// Validate ensures the Operation was created through a constructor.
func (o *Operation) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOperationIsNotConstructed
	}
	return nil
}

// ID returns the operation identifier.
func (o *Operation) ID() kernel.UUID { return o.id }

// Name returns the operation's display name.
func (o *Operation) Name() string { return o.name }

// Description returns the long description.
func (o *Operation) Description() string { return o.description }

// Sequence returns the position in the fixed operation order.
func (o *Operation) Sequence() int { return o.sequence }

// EstimatedMinutes returns the planned duration.
func (o *Operation) EstimatedMinutes() int { return o.estimatedMinutes }

// RequiresApproval reports whether completion needs an explicit approval.
func (o *Operation) RequiresApproval() bool { return o.requiresApproval }

// IsActive reports whether the operation participates in new serials.
func (o *Operation) IsActive() bool { return o.isActive }

// Deactivate removes the operation from fan-out and sequence validation for
// serials created afterwards. Existing records are unaffected.
func (o *Operation) Deactivate() {
	o.isActive = false
}

func (o *Operation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Operation) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("operation name")
	}
	o.name = name
	return nil
}

func (o *Operation) setSequence(sequence int) error {
	if sequence <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("operation sequence",
			fmt.Errorf("%d is not greater than 0", sequence))
	}
	o.sequence = sequence
	return nil
}
