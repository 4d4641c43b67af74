package serialrepo

import (
	"context"
	"errors"
	"time"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSerialRepository implements SerialRepository using GORM.
type GormSerialRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSerialRepository creates a new GORM serial repository.
func NewGormSerialRepository(db *gorm.DB, tracker aggregateTracker) *GormSerialRepository {
	return &GormSerialRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new serial and its fanned-out records to the database.
// A serial number collision surfaces as gorm.ErrDuplicatedKey (the connection
// is opened with TranslateError), which the allocator treats as a retry.
func (r *GormSerialRepository) Add(ctx context.Context, aggregate *serial.Serial) error {
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

// Update saves an existing serial and its records to the database.
// Repair returns append fresh record rows, so associations are fully saved.
func (r *GormSerialRepository) Update(ctx context.Context, aggregate *serial.Serial) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a serial by ID.
func (r *GormSerialRepository) Get(ctx context.Context, id kernel.UUID) (*serial.Serial, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SerialDTO
	err := r.db.WithContext(ctx).
		Preload("Records", recordOrder).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("serial", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves a serial by its code.
func (r *GormSerialRepository) GetByCode(ctx context.Context, code serial.Code) (*serial.Serial, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto SerialDTO
	err := r.db.WithContext(ctx).
		Preload("Records", recordOrder).
		First(&dto, "serial_number = ?", code.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("serial", code.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GreatestCodeWithPrefix returns the greatest existing code in the bucket.
// The code format is zero-padded, so lexicographic order matches numeric
// order within one prefix.
func (r *GormSerialRepository) GreatestCodeWithPrefix(
	ctx context.Context,
	prefix string,
) (serial.Code, bool, error) {
	var serialNumber string
	err := r.db.WithContext(ctx).
		Model(&SerialDTO{}).
		Select("serial_number").
		Where("serial_number LIKE ?", prefix+"%").
		Order("serial_number DESC").
		Limit(1).
		Scan(&serialNumber).Error
	if err != nil {
		return serial.Code{}, false, err
	}
	if serialNumber == "" {
		return serial.Code{}, false, nil
	}

	code, err := serial.ParseCode(serialNumber)
	if err != nil {
		return serial.Code{}, false, err
	}

	return code, true, nil
}

// ActorHoldsInProgress reports whether the actor holds an in-progress record
// on any serial.
func (r *GormSerialRepository) ActorHoldsInProgress(ctx context.Context, actorID kernel.UUID) (bool, error) {
	if err := actorID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProcessRecordDTO{}).
		Where("assigned_to = ? AND status = ? AND NOT superseded",
			actorID.Bytes(), int(serial.RecordStatusInProgress)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetWithInProgressOlderThan retrieves serials holding an in-progress record
// started before the cutoff.
func (r *GormSerialRepository) GetWithInProgressOlderThan(
	ctx context.Context,
	cutoff time.Time,
) ([]*serial.Serial, error) {
	var dtos []SerialDTO
	err := r.db.WithContext(ctx).
		Preload("Records", recordOrder).
		Where(`id IN (
			SELECT serial_id FROM process_records
			WHERE status = ? AND NOT superseded AND started_at < ?
		)`, int(serial.RecordStatusInProgress), cutoff).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	serials := make([]*serial.Serial, 0, len(dtos))
	for _, dto := range dtos {
		s, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		serials = append(serials, s)
	}

	return serials, nil
}

// recordOrder keeps rehydrated records in creation order so aggregate
// invariants see them the way they were written.
func recordOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at, sequence")
}
