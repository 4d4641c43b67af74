package serial

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/pkg/errs"
)

// ErrSerialIsNotConstructed is returned when a Serial instance was not created
// through NewSerial or RestoreSerial.
var ErrSerialIsNotConstructed = errors.New("Serial must be created via NewSerial constructor")

const orderNumberMaxLen = 50

var orderNumberPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// OperationSlot names one active catalog operation at serial creation time.
// The aggregate fans out one Pending record per slot.
type OperationSlot struct {
	OperationID kernel.UUID
	Sequence    int
}

// Serial is the aggregate root for a tracked manufacturing unit. It owns the
// full set of ProcessRecords and is the single place where the unit status is
// derived; callers never set the status directly.
//
// Invariants:
//   - the code is unique and immutable once assigned
//   - one non-superseded record exists per operation
//   - status is a pure function of the record set, except for the terminal
//     Scrapped resolution
type Serial struct {
	id          kernel.UUID
	code        Code
	orderNumber string
	partID      kernel.UUID
	createdBy   kernel.UUID

	status      Status
	createdAt   time.Time
	completedAt *time.Time

	records []*ProcessRecord

	isConstructed bool
}

// NewSerial creates a Serial in Created status and fans out one Pending
// record per active operation slot. Slots must carry unique positive
// sequence positions.
func NewSerial(
	id kernel.UUID,
	code Code,
	orderNumber string,
	partID kernel.UUID,
	createdBy kernel.UUID,
	slots []OperationSlot,
	now time.Time,
) (*Serial, error) {
	s := &Serial{
		status:        StatusCreated,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setCode(code),
		s.setOrderNumber(orderNumber),
		s.setPartID(partID),
		s.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(slots))
	for _, slot := range slots {
		if err := slot.OperationID.Validate(); err != nil {
			return nil, err
		}
		if slot.Sequence <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("operation sequence",
				fmt.Errorf("%d is not positive", slot.Sequence))
		}
		if seen[slot.Sequence] {
			return nil, errs.NewValueIsInvalidErrorWithCause("operation sequence",
				fmt.Errorf("sequence %d appears more than once", slot.Sequence))
		}
		seen[slot.Sequence] = true
		s.records = append(s.records, newProcessRecord(slot.OperationID, slot.Sequence, now))
	}

	return s, nil
}

// RestoreSerial reconstructs a Serial from persistence. Records must already
// be restored via RestoreProcessRecord, in creation order.
func RestoreSerial(
	id kernel.UUID,
	code Code,
	orderNumber string,
	partID kernel.UUID,
	createdBy kernel.UUID,
	status Status,
	createdAt time.Time,
	completedAt *time.Time,
	records []*ProcessRecord,
) (*Serial, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	s := &Serial{
		status:        status,
		createdAt:     createdAt,
		completedAt:   completedAt,
		records:       records,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setCode(code),
		s.setOrderNumber(orderNumber),
		s.setPartID(partID),
		s.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Serial was created through a constructor.
func (s *Serial) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSerialIsNotConstructed
	}
	return nil
}

// ID returns the serial's unique identifier.
func (s *Serial) ID() kernel.UUID { return s.id }

// Code returns the structured serial number.
func (s *Serial) Code() Code { return s.code }

// OrderNumber returns the associated manufacturing order reference.
func (s *Serial) OrderNumber() string { return s.orderNumber }

// PartID returns the catalog part this serial instantiates.
func (s *Serial) PartID() kernel.UUID { return s.partID }

// CreatedBy returns the actor that minted the serial.
func (s *Serial) CreatedBy() kernel.UUID { return s.createdBy }

// Status returns the derived aggregate status.
func (s *Serial) Status() Status { return s.status }

// CreatedAt returns the creation timestamp.
func (s *Serial) CreatedAt() time.Time { return s.createdAt }

// CompletedAt returns when the serial reached Completed, nil otherwise.
func (s *Serial) CompletedAt() *time.Time { return s.completedAt }

// Records returns the full record set, superseded ones included, in creation order.
func (s *Serial) Records() []*ProcessRecord {
	out := make([]*ProcessRecord, len(s.records))
	copy(out, s.records)
	return out
}

// effective returns the current (non-superseded) record per operation, in
// creation order. Superseded records stay in the set for history only.
func (s *Serial) effective() []*ProcessRecord {
	out := make([]*ProcessRecord, 0, len(s.records))
	for _, r := range s.records {
		if !r.superseded {
			out = append(out, r)
		}
	}
	return out
}

func (s *Serial) findEffective(operationID kernel.UUID) (*ProcessRecord, error) {
	for i := len(s.records) - 1; i >= 0; i-- {
		r := s.records[i]
		if r.operationID.IsEqual(operationID) && !r.superseded {
			return r, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("process record", operationID.String())
}

// validateSequence enforces the ordering invariant: every effective record at
// a lower sequence position must be approved before the record at sequence
// may be started or approved.
func (s *Serial) validateSequence(sequence int) error {
	for _, r := range s.effective() {
		if r.sequence < sequence && r.status != RecordStatusApproved {
			return NewSequenceViolationError(sequence, r.sequence, r.status)
		}
	}
	return nil
}

func (s *Serial) guardNotTerminal(action string) error {
	if s.status.IsTerminal() {
		return fmt.Errorf("%w: cannot %s a %s serial", ErrInvalidTransition, action, s.status)
	}
	return nil
}

// HoldsInProgress reports whether actor currently holds any record of this
// serial in progress. The system-wide claim-exclusivity check belongs to the
// command layer; this covers the aggregate-local part.
func (s *Serial) HoldsInProgress(actor kernel.UUID) bool {
	for _, r := range s.records {
		if r.IsHeldBy(actor) {
			return true
		}
	}
	return false
}

// StartOperation claims the Pending record for operationID and moves it to
// InProgress. Fails with ErrSequenceViolation when earlier operations are not
// approved, ErrActorBusy when the actor already holds another record of this
// serial, ErrNotOwner when the record is claimed by someone else.
func (s *Serial) StartOperation(operationID, actor kernel.UUID, now time.Time) error {
	if err := s.guardNotTerminal("start an operation on"); err != nil {
		return err
	}

	rec, err := s.findEffective(operationID)
	if err != nil {
		return err
	}

	if err = s.validateSequence(rec.sequence); err != nil {
		return err
	}

	for _, r := range s.records {
		if r.IsHeldBy(actor) && !r.id.IsEqual(rec.id) {
			return ErrActorBusy
		}
	}

	if err = rec.start(actor, now); err != nil {
		return err
	}

	s.recomputeStatus(now)
	return nil
}

// ApproveOperation completes the InProgress record for operationID, storing
// the quality flag and notes.
func (s *Serial) ApproveOperation(
	operationID, actor kernel.UUID,
	now time.Time,
	qualityPassed bool,
	notes string,
) error {
	if err := s.guardNotTerminal("approve an operation on"); err != nil {
		return err
	}

	rec, err := s.findEffective(operationID)
	if err != nil {
		return err
	}

	if err = s.validateSequence(rec.sequence); err != nil {
		return err
	}

	if err = rec.approve(actor, now, qualityPassed, notes); err != nil {
		return err
	}

	s.recomputeStatus(now)
	return nil
}

// RejectOperation fails the record for operationID (from Pending or
// InProgress) and forces the serial to Defective. The caller opens the
// corresponding defect in the same transaction.
func (s *Serial) RejectOperation(operationID, actor kernel.UUID, now time.Time, reason string) error {
	if err := s.guardNotTerminal("reject an operation on"); err != nil {
		return err
	}

	rec, err := s.findEffective(operationID)
	if err != nil {
		return err
	}

	if err = rec.reject(actor, now, reason); err != nil {
		return err
	}

	s.recomputeStatus(now)
	return nil
}

// ReleaseOperation returns the actor's InProgress record to Pending, clearing
// the claim and its timestamps. Fails with ErrNotOwner when the actor does
// not hold the record.
func (s *Serial) ReleaseOperation(operationID, actor kernel.UUID, now time.Time) error {
	rec, err := s.findEffective(operationID)
	if err != nil {
		return err
	}

	if err = rec.release(actor); err != nil {
		return err
	}

	s.recomputeStatus(now)
	return nil
}

// ReassignOperation moves an InProgress record to another actor. The
// system-wide check that newActor holds nothing else runs in the command
// layer inside the same transaction.
func (s *Serial) ReassignOperation(operationID, newActor kernel.UUID, now time.Time) error {
	if s.HoldsInProgress(newActor) {
		return ErrActorBusy
	}

	rec, err := s.findEffective(operationID)
	if err != nil {
		return err
	}

	return rec.reassign(newActor, now)
}

// ReturnFromRepair processes a repaired defect: every effective rejected
// record is superseded, and fresh Pending records are issued for the
// designated return operation and for each rejected operation. The original
// rejected records are kept for history and never revived.
func (s *Serial) ReturnFromRepair(returnOperationID kernel.UUID, now time.Time, note string) error {
	if err := s.guardNotTerminal("return"); err != nil {
		return err
	}
	if s.status != StatusDefective && s.status != StatusRejected {
		return fmt.Errorf("%w: cannot return a %s serial from repair", ErrInvalidTransition, s.status)
	}

	returnRec, err := s.findEffective(returnOperationID)
	if err != nil {
		return err
	}

	reissue := map[int]kernel.UUID{returnRec.sequence: returnRec.operationID}
	returnRec.supersede()

	for _, r := range s.effective() {
		if r.status == RecordStatusRejected {
			reissue[r.sequence] = r.operationID
			r.supersede()
		}
	}

	for seq, opID := range reissue {
		fresh := newProcessRecord(opID, seq, now)
		fresh.notes = note
		s.records = append(s.records, fresh)
	}

	s.recomputeStatus(now)
	return nil
}

// MarkScrapped is the terminal defect resolution: the serial is withdrawn
// from the process and no further transitions are possible.
func (s *Serial) MarkScrapped() error {
	if s.status != StatusDefective && s.status != StatusRejected {
		return fmt.Errorf("%w: cannot scrap a %s serial", ErrInvalidTransition, s.status)
	}

	s.status = StatusScrapped
	return nil
}

// DeriveStatus computes the aggregate status from the effective record set
// without mutating anything. Calling it twice without a record mutation in
// between yields the same result.
func (s *Serial) DeriveStatus() Status {
	if s.status == StatusScrapped {
		return StatusScrapped
	}

	var total, approved, rejected int
	for _, r := range s.effective() {
		total++
		switch r.status {
		case RecordStatusApproved:
			approved++
		case RecordStatusRejected:
			rejected++
		}
	}

	switch {
	case rejected > 0:
		// A rejection always opens a defect in this workflow, so the
		// consistent derived state is Defective rather than Rejected.
		return StatusDefective
	case total > 0 && approved == total:
		return StatusCompleted
	case approved > 0:
		return StatusInProcess
	default:
		return StatusCreated
	}
}

// recomputeStatus is the single place the stored status changes after a
// record mutation. Completion stamps completedAt exactly once; leaving the
// Completed state clears it again.
func (s *Serial) recomputeStatus(now time.Time) {
	derived := s.DeriveStatus()
	if derived == StatusCompleted && s.completedAt == nil {
		s.completedAt = &now
	}
	if derived != StatusCompleted {
		s.completedAt = nil
	}
	s.status = derived
}

// CompletionPercent reports the share of effective operations approved, 0-100.
func (s *Serial) CompletionPercent() float64 {
	var total, approved int
	for _, r := range s.effective() {
		total++
		if r.status == RecordStatusApproved {
			approved++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(approved) / float64(total) * 100
}

// CurrentOperation returns the lowest-sequence effective operation that is
// not yet approved, nil when every operation is approved.
func (s *Serial) CurrentOperation() *kernel.UUID {
	var current *ProcessRecord
	for _, r := range s.effective() {
		if r.status == RecordStatusApproved {
			continue
		}
		if current == nil || r.sequence < current.sequence {
			current = r
		}
	}
	if current == nil {
		return nil
	}
	id := current.operationID
	return &id
}

func (s *Serial) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Serial) setCode(code Code) error {
	if err := code.Validate(); err != nil {
		return err
	}
	s.code = code
	return nil
}

func (s *Serial) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	if len(orderNumber) > orderNumberMaxLen {
		return errs.NewValueIsOutOfRangeError("order number length", len(orderNumber), 1, orderNumberMaxLen)
	}
	if !orderNumberPattern.MatchString(orderNumber) {
		return errs.NewValueIsInvalidErrorWithCause("order number",
			errors.New("only letters, digits, hyphens and underscores are allowed"))
	}
	s.orderNumber = orderNumber
	return nil
}

func (s *Serial) setPartID(partID kernel.UUID) error {
	if err := partID.Validate(); err != nil {
		return err
	}
	s.partID = partID
	return nil
}

func (s *Serial) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}
	s.createdBy = createdBy
	return nil
}
