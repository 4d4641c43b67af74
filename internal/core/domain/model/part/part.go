// Package part provides the authorized part catalog entity. Serials can only
// be minted for parts that are present and active in this catalog.
package part

import (
	"errors"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/pkg/errs"
)

// ErrPartIsNotConstructed is returned when a Part instance was not created
// through NewPart or RestorePart.
var ErrPartIsNotConstructed = errors.New("Part must be created via NewPart constructor")

// Part is an authorized component that serials reference by id.
type Part struct {
	id          kernel.UUID
	partNumber  string
	sku         string
	description string
	revision    string
	isActive    bool

	isConstructed bool
}

// NewPart creates an active catalog part at revision "A" unless another
// revision is given.
func NewPart(id kernel.UUID, partNumber, sku, description, revision string) (*Part, error) {
	if revision == "" {
		revision = "A"
	}

	p := &Part{
		sku:           sku,
		description:   description,
		revision:      revision,
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setPartNumber(partNumber),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePart reconstructs a Part from persistence.
func RestorePart(id kernel.UUID, partNumber, sku, description, revision string, isActive bool) (*Part, error) {
	p, err := NewPart(id, partNumber, sku, description, revision)
	if err != nil {
		return nil, err
	}
	p.isActive = isActive
	return p, nil
}

// Validate ensures the Part was created through a constructor.
func (p *Part) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartIsNotConstructed
	}
	return nil
}

// ID returns the part identifier.
func (p *Part) ID() kernel.UUID { return p.id }

// PartNumber returns the unique authorized part number.
func (p *Part) PartNumber() string { return p.partNumber }

// SKU returns the stock keeping unit used by downstream exports.
func (p *Part) SKU() string { return p.sku }

// Description returns the component description.
func (p *Part) Description() string { return p.description }

// Revision returns the current component revision.
func (p *Part) Revision() string { return p.revision }

// IsActive reports whether new serials may reference the part.
func (p *Part) IsActive() bool { return p.isActive }

// Deactivate withdraws the part from new serial creation.
func (p *Part) Deactivate() {
	p.isActive = false
}

func (p *Part) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Part) setPartNumber(partNumber string) error {
	if partNumber == "" {
		return errs.NewValueIsRequiredError("part number")
	}
	p.partNumber = partNumber
	return nil
}
