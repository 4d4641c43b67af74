// Package serialrepo provides data transfer objects and mapping functions for serial persistence.
// This package implements the repository pattern for the serial aggregate, handling
// the conversion between domain entities and database representations.
package serialrepo

import (
	"time"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"

	"github.com/google/uuid"
)

// SerialDTO represents the database structure for persisting serial aggregates.
// The serial number carries a unique index; the insert conflict on it is what
// drives the allocator's retry loop.
type SerialDTO struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	SerialNumber string             `gorm:"type:varchar(16);uniqueIndex;not null"`
	OrderNumber  string             `gorm:"type:varchar(50);not null;index"`
	PartID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	CreatedBy    uuid.UUID          `gorm:"type:uuid;not null"`
	Status       int                `gorm:"type:int;not null;index"`
	CreatedAt    time.Time          `gorm:"not null"`
	CompletedAt  *time.Time         ``
	Records      []ProcessRecordDTO `gorm:"foreignKey:SerialID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for serial entities.
func (SerialDTO) TableName() string {
	return "serials"
}

// ProcessRecordDTO represents the database structure for persisting process records.
// Links to its serial via foreign key; superseded rows stay in place as history.
type ProcessRecordDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SerialID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	OperationID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Sequence        int        `gorm:"type:int;not null"`
	Status          int        `gorm:"type:int;not null;index"`
	AssignedTo      *uuid.UUID `gorm:"type:uuid;index"`
	ProcessedBy     *uuid.UUID `gorm:"type:uuid"`
	StartedAt       *time.Time ``
	AssignedAt      *time.Time ``
	CompletedAt     *time.Time ``
	Notes           string     `gorm:"type:text"`
	QualityPassed   bool       ``
	RejectionReason string     `gorm:"type:text"`
	Superseded      bool       `gorm:"not null"`
	CreatedAt       time.Time  `gorm:"not null"`
}

// TableName specifies the database table name for process record entities.
func (ProcessRecordDTO) TableName() string {
	return "process_records"
}

// fromDomain converts a serial domain aggregate to its database representation.
// Maps the aggregate and all of its process records, superseded ones included.
func fromDomain(aggregate *serial.Serial) SerialDTO {
	serialID := aggregate.ID().Bytes()
	records := make([]ProcessRecordDTO, 0, len(aggregate.Records()))

	for _, rec := range aggregate.Records() {
		records = append(records, ProcessRecordDTO{
			ID:              rec.ID().Bytes(),
			SerialID:        serialID,
			OperationID:     rec.OperationID().Bytes(),
			Sequence:        rec.Sequence(),
			Status:          int(rec.Status()),
			AssignedTo:      uuidPtr(rec.AssignedTo()),
			ProcessedBy:     uuidPtr(rec.ProcessedBy()),
			StartedAt:       rec.StartedAt(),
			AssignedAt:      rec.AssignedAt(),
			CompletedAt:     rec.CompletedAt(),
			Notes:           rec.Notes(),
			QualityPassed:   rec.QualityPassed(),
			RejectionReason: rec.RejectionReason(),
			Superseded:      rec.Superseded(),
			CreatedAt:       rec.CreatedAt(),
		})
	}

	return SerialDTO{
		ID:           serialID,
		SerialNumber: aggregate.Code().String(),
		OrderNumber:  aggregate.OrderNumber(),
		PartID:       aggregate.PartID().Bytes(),
		CreatedBy:    aggregate.CreatedBy().Bytes(),
		Status:       int(aggregate.Status()),
		CreatedAt:    aggregate.CreatedAt(),
		CompletedAt:  aggregate.CompletedAt(),
		Records:      records,
	}
}

// toDomain converts a database DTO to a serial domain aggregate.
// Reconstructs the complete aggregate including every process record using RestoreSerial.
func toDomain(dto SerialDTO) (*serial.Serial, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	code, err := serial.ParseCode(dto.SerialNumber)
	if err != nil {
		return nil, err
	}

	partID, err := kernel.UUIDFromBytes(dto.PartID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	records := make([]*serial.ProcessRecord, 0, len(dto.Records))
	for _, recDTO := range dto.Records {
		rec, recErr := recordToDomain(recDTO)
		if recErr != nil {
			return nil, recErr
		}
		records = append(records, rec)
	}

	return serial.RestoreSerial(
		id,
		code,
		dto.OrderNumber,
		partID,
		createdBy,
		serial.Status(dto.Status),
		dto.CreatedAt,
		dto.CompletedAt,
		records,
	)
}

func recordToDomain(dto ProcessRecordDTO) (*serial.ProcessRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	operationID, err := kernel.UUIDFromBytes(dto.OperationID[:])
	if err != nil {
		return nil, err
	}

	assignedTo, err := kernelUUIDPtr(dto.AssignedTo)
	if err != nil {
		return nil, err
	}

	processedBy, err := kernelUUIDPtr(dto.ProcessedBy)
	if err != nil {
		return nil, err
	}

	return serial.RestoreProcessRecord(
		id,
		operationID,
		dto.Sequence,
		serial.RecordStatus(dto.Status),
		assignedTo,
		processedBy,
		dto.StartedAt,
		dto.AssignedAt,
		dto.CompletedAt,
		dto.Notes,
		dto.QualityPassed,
		dto.RejectionReason,
		dto.Superseded,
		dto.CreatedAt,
	), nil
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}

	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
