// Package partrepo implements persistence for the authorized part catalog.
package partrepo

import (
	"context"
	"errors"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/part"
	"mestrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartDTO represents the database structure for persisting catalog parts.
type PartDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartNumber  string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	SKU         string    `gorm:"type:varchar(100)"`
	Description string    `gorm:"type:text"`
	Revision    string    `gorm:"type:varchar(10);not null"`
	IsActive    bool      `gorm:"not null;index"`
}

// TableName specifies the database table name for part entities.
func (PartDTO) TableName() string {
	return "parts"
}

func fromDomain(p *part.Part) PartDTO {
	return PartDTO{
		ID:          p.ID().Bytes(),
		PartNumber:  p.PartNumber(),
		SKU:         p.SKU(),
		Description: p.Description(),
		Revision:    p.Revision(),
		IsActive:    p.IsActive(),
	}
}

func toDomain(dto PartDTO) (*part.Part, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return part.RestorePart(id, dto.PartNumber, dto.SKU, dto.Description, dto.Revision, dto.IsActive)
}

// GormPartRepository implements PartRepository using GORM.
type GormPartRepository struct {
	db *gorm.DB
}

// NewGormPartRepository creates a new GORM part repository.
func NewGormPartRepository(db *gorm.DB) *GormPartRepository {
	return &GormPartRepository{db: db}
}

// Get retrieves a part by ID.
func (r *GormPartRepository) Get(ctx context.Context, id kernel.UUID) (*part.Part, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("part", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByPartNumber retrieves an active part by its part number.
// Unknown and deactivated part numbers both fail with errs.ErrObjectNotFound:
// serials may only be opened against the active catalog.
func (r *GormPartRepository) GetActiveByPartNumber(ctx context.Context, partNumber string) (*part.Part, error) {
	var dto PartDTO
	err := r.db.WithContext(ctx).
		First(&dto, "part_number = ? AND is_active", partNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("partNumber", partNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Add saves a new catalog part to the database.
func (r *GormPartRepository) Add(ctx context.Context, p *part.Part) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return r.db.WithContext(ctx).Create(&dto).Error
}
