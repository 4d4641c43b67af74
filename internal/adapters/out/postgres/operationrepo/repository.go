// Package operationrepo implements persistence for the operation catalog.
package operationrepo

import (
	"context"
	"errors"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/operation"
	"mestrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OperationDTO represents the database structure for persisting catalog operations.
type OperationDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Description      string    `gorm:"type:text"`
	Sequence         int       `gorm:"type:int;not null;index"`
	EstimatedMinutes int       `gorm:"type:int"`
	RequiresApproval bool      ``
	IsActive         bool      `gorm:"not null;index"`
}

// TableName specifies the database table name for operation entities.
func (OperationDTO) TableName() string {
	return "operations"
}

func fromDomain(op *operation.Operation) OperationDTO {
	return OperationDTO{
		ID:               op.ID().Bytes(),
		Name:             op.Name(),
		Description:      op.Description(),
		Sequence:         op.Sequence(),
		EstimatedMinutes: op.EstimatedMinutes(),
		RequiresApproval: op.RequiresApproval(),
		IsActive:         op.IsActive(),
	}
}

func toDomain(dto OperationDTO) (*operation.Operation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return operation.RestoreOperation(
		id, dto.Name, dto.Description, dto.Sequence, dto.EstimatedMinutes,
		dto.RequiresApproval, dto.IsActive)
}

// GormOperationRepository implements OperationRepository using GORM.
type GormOperationRepository struct {
	db *gorm.DB
}

// NewGormOperationRepository creates a new GORM operation repository.
func NewGormOperationRepository(db *gorm.DB) *GormOperationRepository {
	return &GormOperationRepository{db: db}
}

// Get retrieves an operation by ID.
func (r *GormOperationRepository) Get(ctx context.Context, id kernel.UUID) (*operation.Operation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OperationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("operation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves active operations ordered by sequence.
func (r *GormOperationRepository) GetAllActive(ctx context.Context) ([]*operation.Operation, error) {
	var dtos []OperationDTO
	err := r.db.WithContext(ctx).
		Where("is_active").
		Order("sequence").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	operations := make([]*operation.Operation, 0, len(dtos))
	for _, dto := range dtos {
		op, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		operations = append(operations, op)
	}

	return operations, nil
}

// Add saves a new catalog operation to the database.
func (r *GormOperationRepository) Add(ctx context.Context, op *operation.Operation) error {
	if err := op.Validate(); err != nil {
		return err
	}

	dto := fromDomain(op)
	return r.db.WithContext(ctx).Create(&dto).Error
}
