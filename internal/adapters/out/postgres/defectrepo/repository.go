package defectrepo

import (
	"context"
	"errors"

	"mestrack/internal/core/domain/model/defect"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/ports"
	"mestrack/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.DefectRepository = &GormDefectRepository{}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormDefectRepository implements defect persistence using GORM.
type GormDefectRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormDefectRepository creates a repository bound to the given database handle.
func NewGormDefectRepository(db *gorm.DB, tracker aggregateTracker) *GormDefectRepository {
	return &GormDefectRepository{db: db, tracker: tracker}
}

// Add persists a new defect.
func (r *GormDefectRepository) Add(ctx context.Context, aggregate *defect.Defect) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists changes to an existing defect.
func (r *GormDefectRepository) Update(ctx context.Context, aggregate *defect.Defect) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a defect by its unique identifier.
func (r *GormDefectRepository) Get(ctx context.Context, id kernel.UUID) (*defect.Defect, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DefectDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("id", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetUnresolvedBySerial retrieves the open and in-repair defects for a serial, newest first.
func (r *GormDefectRepository) GetUnresolvedBySerial(ctx context.Context, serialID kernel.UUID) ([]*defect.Defect, error) {
	if err := serialID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DefectDTO
	err := r.db.WithContext(ctx).
		Where("serial_id = ? AND status IN ?", serialID.Bytes(), []int{
			int(defect.StatusOpen),
			int(defect.StatusInRepair),
		}).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	defects := make([]*defect.Defect, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		defects = append(defects, aggregate)
	}

	return defects, nil
}
