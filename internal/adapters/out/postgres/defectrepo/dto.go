// Package defectrepo provides data transfer objects and mapping functions for defect persistence.
package defectrepo

import (
	"time"

	"mestrack/internal/core/domain/model/defect"
	"mestrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DefectDTO represents the database structure for persisting defect aggregates.
type DefectDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SerialID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	OperationID         uuid.UUID  `gorm:"type:uuid;not null"`
	DefectType          int        `gorm:"type:int;not null;index"`
	Description         string     `gorm:"type:text;not null"`
	Status              int        `gorm:"type:int;not null;index"`
	ReportedBy          uuid.UUID  `gorm:"type:uuid;not null"`
	AssignedRepairer    *uuid.UUID `gorm:"type:uuid;index"`
	ResolvedBy          *uuid.UUID `gorm:"type:uuid"`
	RepairNotes         string     `gorm:"type:text"`
	ReturnToOperationID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt           time.Time  `gorm:"not null;index"`
	AssignedAt          *time.Time ``
	ResolvedAt          *time.Time ``
}

// TableName specifies the database table name for defect entities.
func (DefectDTO) TableName() string {
	return "defects"
}

func fromDomain(d *defect.Defect) DefectDTO {
	return DefectDTO{
		ID:                  d.ID().Bytes(),
		SerialID:            d.SerialID().Bytes(),
		OperationID:         d.OperationID().Bytes(),
		DefectType:          int(d.DefectType()),
		Description:         d.Description(),
		Status:              int(d.Status()),
		ReportedBy:          d.ReportedBy().Bytes(),
		AssignedRepairer:    uuidPtr(d.AssignedRepairer()),
		ResolvedBy:          uuidPtr(d.ResolvedBy()),
		RepairNotes:         d.RepairNotes(),
		ReturnToOperationID: uuidPtr(d.ReturnToOperationID()),
		CreatedAt:           d.CreatedAt(),
		AssignedAt:          d.AssignedAt(),
		ResolvedAt:          d.ResolvedAt(),
	}
}

func toDomain(dto DefectDTO) (*defect.Defect, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	serialID, err := kernel.UUIDFromBytes(dto.SerialID[:])
	if err != nil {
		return nil, err
	}

	operationID, err := kernel.UUIDFromBytes(dto.OperationID[:])
	if err != nil {
		return nil, err
	}

	reportedBy, err := kernel.UUIDFromBytes(dto.ReportedBy[:])
	if err != nil {
		return nil, err
	}

	assignedRepairer, err := kernelUUIDPtr(dto.AssignedRepairer)
	if err != nil {
		return nil, err
	}

	resolvedBy, err := kernelUUIDPtr(dto.ResolvedBy)
	if err != nil {
		return nil, err
	}

	returnToOperationID, err := kernelUUIDPtr(dto.ReturnToOperationID)
	if err != nil {
		return nil, err
	}

	return defect.RestoreDefect(
		id,
		serialID,
		operationID,
		defect.Type(dto.DefectType),
		dto.Description,
		defect.Status(dto.Status),
		reportedBy,
		assignedRepairer,
		resolvedBy,
		dto.RepairNotes,
		returnToOperationID,
		dto.CreatedAt,
		dto.AssignedAt,
		dto.ResolvedAt,
	)
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
