package serial

import (
	"time"

	"mestrack/internal/core/domain/model/kernel"
)

// RecordStatus is the state of a single process record.
//
// State transitions:
//
//	Pending ──> InProgress ──┬──> Approved
//	   ^             │       └──> Rejected
//	   └─────────────┘
//	      (release)
//
// Rejected and Approved are terminal for the record itself; a repair return
// supersedes rejected records with fresh Pending ones instead of reviving them.
type RecordStatus int

const (
	// RecordStatusUnknown catches uninitialized RecordStatus values.
	RecordStatusUnknown RecordStatus = iota

	// RecordStatusPending means the operation has not been started.
	RecordStatusPending

	// RecordStatusInProgress means an actor currently holds the operation.
	RecordStatusInProgress

	// RecordStatusApproved means the operation completed successfully.
	RecordStatusApproved

	// RecordStatusRejected means the operation failed and opened a defect.
	RecordStatusRejected
)

func recordStatusStrings() map[RecordStatus]string {
	return map[RecordStatus]string{
		RecordStatusUnknown:    "Unknown",
		RecordStatusPending:    "Pending",
		RecordStatusInProgress: "InProgress",
		RecordStatusApproved:   "Approved",
		RecordStatusRejected:   "Rejected",
	}
}

// String implements fmt.Stringer; unknown values render as "Unknown".
func (s RecordStatus) String() string {
	if str, ok := recordStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Start transitions Pending -> InProgress.
func (s RecordStatus) Start() (RecordStatus, error) {
	if s != RecordStatusPending {
		return 0, NewInvalidTransitionError("start", s)
	}
	return RecordStatusInProgress, nil
}

// Approve transitions InProgress -> Approved.
func (s RecordStatus) Approve() (RecordStatus, error) {
	if s != RecordStatusInProgress {
		return 0, NewInvalidTransitionError("approve", s)
	}
	return RecordStatusApproved, nil
}

// Reject transitions Pending or InProgress -> Rejected. Both source states
// occur in practice: operators reject the record they hold, supervisors
// reject records that were never claimed.
func (s RecordStatus) Reject() (RecordStatus, error) {
	if s != RecordStatusPending && s != RecordStatusInProgress {
		return 0, NewInvalidTransitionError("reject", s)
	}
	return RecordStatusRejected, nil
}

// Release transitions InProgress -> Pending.
func (s RecordStatus) Release() (RecordStatus, error) {
	if s != RecordStatusInProgress {
		return 0, NewInvalidTransitionError("release", s)
	}
	return RecordStatusPending, nil
}

// ProcessRecord tracks the progress of one serial through one operation.
// Records are created Pending for every active operation when the serial is
// created, transition only through the aggregate, and are never deleted: a
// repair return marks them superseded and appends fresh Pending ones.
type ProcessRecord struct {
	id          kernel.UUID
	operationID kernel.UUID

	// sequence is copied from the operation catalog at creation time so the
	// aggregate can validate ordering without a catalog lookup.
	sequence int

	status      RecordStatus
	assignedTo  *kernel.UUID
	processedBy *kernel.UUID

	startedAt   *time.Time
	assignedAt  *time.Time
	completedAt *time.Time

	notes           string
	qualityPassed   bool
	rejectionReason string

	superseded bool
	createdAt  time.Time
}

func newProcessRecord(operationID kernel.UUID, sequence int, now time.Time) *ProcessRecord {
	return &ProcessRecord{
		id:          kernel.NewUUID(),
		operationID: operationID,
		sequence:    sequence,
		status:      RecordStatusPending,
		createdAt:   now,
	}
}

// RestoreProcessRecord reconstructs a record from persistence without running
// transition rules. The repository layer is the only intended caller.
func RestoreProcessRecord(
	id kernel.UUID,
	operationID kernel.UUID,
	sequence int,
	status RecordStatus,
	assignedTo *kernel.UUID,
	processedBy *kernel.UUID,
	startedAt, assignedAt, completedAt *time.Time,
	notes string,
	qualityPassed bool,
	rejectionReason string,
	superseded bool,
	createdAt time.Time,
) *ProcessRecord {
	return &ProcessRecord{
		id:              id,
		operationID:     operationID,
		sequence:        sequence,
		status:          status,
		assignedTo:      assignedTo,
		processedBy:     processedBy,
		startedAt:       startedAt,
		assignedAt:      assignedAt,
		completedAt:     completedAt,
		notes:           notes,
		qualityPassed:   qualityPassed,
		rejectionReason: rejectionReason,
		superseded:      superseded,
		createdAt:       createdAt,
	}
}

// ID returns the record identifier.
func (r *ProcessRecord) ID() kernel.UUID { return r.id }

// OperationID returns the catalog operation this record tracks.
func (r *ProcessRecord) OperationID() kernel.UUID { return r.operationID }

// Sequence returns the operation's sequence position.
func (r *ProcessRecord) Sequence() int { return r.sequence }

// Status returns the record state.
func (r *ProcessRecord) Status() RecordStatus { return r.status }

// AssignedTo returns the actor currently holding the record, nil if unclaimed.
func (r *ProcessRecord) AssignedTo() *kernel.UUID { return r.assignedTo }

// ProcessedBy returns the actor that completed the record, nil while open.
func (r *ProcessRecord) ProcessedBy() *kernel.UUID { return r.processedBy }

// StartedAt returns when work began, nil while pending.
func (r *ProcessRecord) StartedAt() *time.Time { return r.startedAt }

// AssignedAt returns when the current claim was taken, nil while unclaimed.
func (r *ProcessRecord) AssignedAt() *time.Time { return r.assignedAt }

// CompletedAt returns when the record reached a terminal state.
func (r *ProcessRecord) CompletedAt() *time.Time { return r.completedAt }

// Notes returns free-form operator notes.
func (r *ProcessRecord) Notes() string { return r.notes }

// QualityPassed reports the quality flag stored at approval.
func (r *ProcessRecord) QualityPassed() bool { return r.qualityPassed }

// RejectionReason returns the reason stored at rejection.
func (r *ProcessRecord) RejectionReason() string { return r.rejectionReason }

// Superseded reports whether a repair return replaced this record.
func (r *ProcessRecord) Superseded() bool { return r.superseded }

// CreatedAt returns when the record was fanned out.
func (r *ProcessRecord) CreatedAt() time.Time { return r.createdAt }

// IsHeldBy reports whether actor currently holds this record in progress.
func (r *ProcessRecord) IsHeldBy(actor kernel.UUID) bool {
	return r.status == RecordStatusInProgress && r.assignedTo != nil && r.assignedTo.IsEqual(actor)
}

func (r *ProcessRecord) start(actor kernel.UUID, now time.Time) error {
	if r.assignedTo != nil && !r.assignedTo.IsEqual(actor) {
		return ErrNotOwner
	}

	newStatus, err := r.status.Start()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.assignedTo = &actor
	r.startedAt = &now
	r.assignedAt = &now
	return nil
}

func (r *ProcessRecord) approve(actor kernel.UUID, now time.Time, qualityPassed bool, notes string) error {
	if r.assignedTo != nil && !r.assignedTo.IsEqual(actor) {
		return ErrNotOwner
	}

	newStatus, err := r.status.Approve()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.processedBy = &actor
	r.completedAt = &now
	r.qualityPassed = qualityPassed
	if notes != "" {
		r.notes = notes
	}
	return nil
}

func (r *ProcessRecord) reject(actor kernel.UUID, now time.Time, reason string) error {
	if r.status == RecordStatusInProgress && r.assignedTo != nil && !r.assignedTo.IsEqual(actor) {
		return ErrNotOwner
	}

	newStatus, err := r.status.Reject()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.processedBy = &actor
	r.completedAt = &now
	r.rejectionReason = reason
	return nil
}

func (r *ProcessRecord) release(actor kernel.UUID) error {
	if !r.IsHeldBy(actor) {
		return ErrNotOwner
	}

	newStatus, err := r.status.Release()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.assignedTo = nil
	r.processedBy = nil
	r.startedAt = nil
	r.assignedAt = nil
	return nil
}

func (r *ProcessRecord) reassign(newActor kernel.UUID, now time.Time) error {
	if r.status != RecordStatusInProgress {
		return NewInvalidTransitionError("reassign", r.status)
	}

	r.assignedTo = &newActor
	r.assignedAt = &now
	return nil
}

func (r *ProcessRecord) supersede() {
	r.superseded = true
}
