package serial_test

import (
	"testing"
	"time"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, time.January, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	serial *serial.Serial
	ops    []kernel.UUID
	actor  kernel.UUID
}

// newFixture builds a serial with n active operations at sequences 1..n.
func newFixture(t *testing.T, n int) *fixture {
	t.Helper()

	slots := make([]serial.OperationSlot, 0, n)
	ops := make([]kernel.UUID, 0, n)
	for i := 1; i <= n; i++ {
		opID := kernel.NewUUID()
		ops = append(ops, opID)
		slots = append(slots, serial.OperationSlot{OperationID: opID, Sequence: i})
	}

	code := serial.FirstCode(mustBucket(t, 2025, time.January))
	s, err := serial.NewSerial(
		kernel.NewUUID(), code, "ORD-2025-001", kernel.NewUUID(), kernel.NewUUID(), slots, testTime)
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	return &fixture{serial: s, ops: ops, actor: kernel.NewUUID()}
}

// passOperation drives one operation through start and approve.
func (f *fixture) passOperation(t *testing.T, op kernel.UUID, actor kernel.UUID) {
	t.Helper()
	require.NoError(t, f.serial.StartOperation(op, actor, testTime))
	require.NoError(t, f.serial.ApproveOperation(op, actor, testTime, true, ""))
}

func TestNewSerial(t *testing.T) {
	t.Run("fans out a pending record per active operation", func(t *testing.T) {
		f := newFixture(t, 3)

		records := f.serial.Records()
		require.Len(t, records, 3)
		for _, r := range records {
			assert.Equal(t, serial.RecordStatusPending, r.Status())
			assert.Nil(t, r.AssignedTo())
		}
		assert.Equal(t, serial.StatusCreated, f.serial.Status())
	})

	t.Run("rejects duplicate sequence positions", func(t *testing.T) {
		op1, op2 := kernel.NewUUID(), kernel.NewUUID()
		code := serial.FirstCode(mustBucket(t, 2025, time.January))

		_, err := serial.NewSerial(kernel.NewUUID(), code, "ORD-1", kernel.NewUUID(), kernel.NewUUID(),
			[]serial.OperationSlot{
				{OperationID: op1, Sequence: 2},
				{OperationID: op2, Sequence: 2},
			}, testTime)

		require.Error(t, err)
	})

	t.Run("rejects invalid order numbers", func(t *testing.T) {
		code := serial.FirstCode(mustBucket(t, 2025, time.January))
		for _, orderNumber := range []string{"", "has spaces", "ördnung", string(make([]byte, 60))} {
			_, err := serial.NewSerial(kernel.NewUUID(), code, orderNumber,
				kernel.NewUUID(), kernel.NewUUID(), nil, testTime)
			require.Error(t, err, "order number %q", orderNumber)
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var s serial.Serial

		require.ErrorIs(t, s.Validate(), serial.ErrSerialIsNotConstructed)
	})
}

func TestSequenceEnforcement(t *testing.T) {
	t.Run("start on a later operation fails while earlier ones are pending", func(t *testing.T) {
		f := newFixture(t, 3)

		err := f.serial.StartOperation(f.ops[1], f.actor, testTime)

		require.ErrorIs(t, err, serial.ErrSequenceViolation)
	})

	t.Run("operations pass in order", func(t *testing.T) {
		f := newFixture(t, 3)

		f.passOperation(t, f.ops[0], f.actor)
		assert.Equal(t, serial.StatusInProcess, f.serial.Status())

		f.passOperation(t, f.ops[1], f.actor)
		assert.Equal(t, serial.StatusInProcess, f.serial.Status())

		f.passOperation(t, f.ops[2], f.actor)
		assert.Equal(t, serial.StatusCompleted, f.serial.Status())
		require.NotNil(t, f.serial.CompletedAt())
		assert.Equal(t, testTime, *f.serial.CompletedAt())
	})

	t.Run("an in-progress predecessor still blocks", func(t *testing.T) {
		f := newFixture(t, 2)
		require.NoError(t, f.serial.StartOperation(f.ops[0], f.actor, testTime))

		other := kernel.NewUUID()
		err := f.serial.StartOperation(f.ops[1], other, testTime)

		require.ErrorIs(t, err, serial.ErrSequenceViolation)
	})
}

func TestStartOperation(t *testing.T) {
	t.Run("records the claim", func(t *testing.T) {
		f := newFixture(t, 2)

		require.NoError(t, f.serial.StartOperation(f.ops[0], f.actor, testTime))

		rec := f.serial.Records()[0]
		assert.Equal(t, serial.RecordStatusInProgress, rec.Status())
		require.NotNil(t, rec.AssignedTo())
		assert.True(t, rec.AssignedTo().IsEqual(f.actor))
		require.NotNil(t, rec.StartedAt())
	})

	t.Run("starting twice is an invalid transition", func(t *testing.T) {
		f := newFixture(t, 1)
		require.NoError(t, f.serial.StartOperation(f.ops[0], f.actor, testTime))

		err := f.serial.StartOperation(f.ops[0], f.actor, testTime)

		require.ErrorIs(t, err, serial.ErrInvalidTransition)
	})

	t.Run("tracks which actor holds work in progress", func(t *testing.T) {
		f := newFixture(t, 2)
		assert.False(t, f.serial.HoldsInProgress(f.actor))

		require.NoError(t, f.serial.StartOperation(f.ops[0], f.actor, testTime))

		assert.True(t, f.serial.HoldsInProgress(f.actor))
		assert.False(t, f.serial.HoldsInProgress(kernel.NewUUID()))
	})
}

func TestApproveOperation(t *testing.T) {
	t.Run("stores quality flag and notes", func(t *testing.T) {
		f := newFixture(t, 1)
		require.NoError(t, f.serial.StartOperation(f.ops[0], f.actor, testTime))

		require.NoError(t, f.serial.ApproveOperation(f.ops[0], f.actor, testTime, true, "torque ok"))

		rec := f.serial.Records()[0]
		assert.Equal(t, serial.RecordStatusApproved, rec.Status())
		assert.True(t, rec.QualityPassed())
		assert.Equal(t, "torque ok", rec.Notes())
		require.NotNil(t, rec.CompletedAt())
	})

	t.Run("approving a pending record is an invalid transition", func(t *testing.T) {
		f := newFixture(t, 1)

		err := f.serial.ApproveOperation(f.ops[0], f.actor, testTime, true, "")

		require.ErrorIs(t, err, serial.ErrInvalidTransition)
	})

	t.Run("only the holder may approve", func(t *testing.T) {
		f := newFixture(t, 1)
		require.NoError(t, f.serial.StartOperation(f.ops[0], f.actor, testTime))

		err := f.serial.ApproveOperation(f.ops[0], kernel.NewUUID(), testTime, true, "")

		require.ErrorIs(t, err, serial.ErrNotOwner)
	})
}

func TestRejectOperation(t *testing.T) {
	t.Run("from in progress forces the serial to defective", func(t *testing.T) {
		f := newFixture(t, 3)
		require.NoError(t, f.serial.StartOperation(f.ops[0], f.actor, testTime))

		require.NoError(t, f.serial.RejectOperation(f.ops[0], f.actor, testTime, "cracked housing"))

		rec := f.serial.Records()[0]
		assert.Equal(t, serial.RecordStatusRejected, rec.Status())
		assert.Equal(t, "cracked housing", rec.RejectionReason())
		assert.Equal(t, serial.StatusDefective, f.serial.Status())
	})

	t.Run("from pending is allowed", func(t *testing.T) {
		f := newFixture(t, 2)

		require.NoError(t, f.serial.RejectOperation(f.ops[1], f.actor, testTime, "wrong part fitted"))

		assert.Equal(t, serial.StatusDefective, f.serial.Status())
	})

	t.Run("an approved record cannot be rejected", func(t *testing.T) {
		f := newFixture(t, 1)
		f.passOperation(t, f.ops[0], f.actor)

		err := f.serial.RejectOperation(f.ops[0], f.actor, testTime, "late find")

		require.ErrorIs(t, err, serial.ErrInvalidTransition)
	})
}

func TestReleaseOperation(t *testing.T) {
	t.Run("returns the record to pending and clears the claim", func(t *testing.T) {
		f := newFixture(t, 1)
		require.NoError(t, f.serial.StartOperation(f.ops[0], f.actor, testTime))

		require.NoError(t, f.serial.ReleaseOperation(f.ops[0], f.actor, testTime))

		rec := f.serial.Records()[0]
		assert.Equal(t, serial.RecordStatusPending, rec.Status())
		assert.Nil(t, rec.AssignedTo())
		assert.Nil(t, rec.StartedAt())
		assert.Nil(t, rec.AssignedAt())
	})

	t.Run("someone else's record cannot be released", func(t *testing.T) {
		f := newFixture(t, 1)
		require.NoError(t, f.serial.StartOperation(f.ops[0], f.actor, testTime))

		err := f.serial.ReleaseOperation(f.ops[0], kernel.NewUUID(), testTime)

		require.ErrorIs(t, err, serial.ErrNotOwner)
	})
}

func TestReassignOperation(t *testing.T) {
	t.Run("moves the claim to the new actor", func(t *testing.T) {
		f := newFixture(t, 1)
		require.NoError(t, f.serial.StartOperation(f.ops[0], f.actor, testTime))

		newActor := kernel.NewUUID()
		require.NoError(t, f.serial.ReassignOperation(f.ops[0], newActor, testTime))

		rec := f.serial.Records()[0]
		require.NotNil(t, rec.AssignedTo())
		assert.True(t, rec.AssignedTo().IsEqual(newActor))
	})

	t.Run("a pending record cannot be reassigned", func(t *testing.T) {
		f := newFixture(t, 1)

		err := f.serial.ReassignOperation(f.ops[0], kernel.NewUUID(), testTime)

		require.ErrorIs(t, err, serial.ErrInvalidTransition)
	})
}

func TestReturnFromRepair(t *testing.T) {
	t.Run("supersedes rejected records and issues fresh pending ones", func(t *testing.T) {
		f := newFixture(t, 3)
		f.passOperation(t, f.ops[0], f.actor)
		f.passOperation(t, f.ops[1], f.actor)
		require.NoError(t, f.serial.StartOperation(f.ops[2], f.actor, testTime))
		require.NoError(t, f.serial.RejectOperation(f.ops[2], f.actor, testTime, "scratched lens"))
		require.Equal(t, serial.StatusDefective, f.serial.Status())

		// Repair sends the unit back to operation 2.
		require.NoError(t, f.serial.ReturnFromRepair(f.ops[1], testTime, "returned after repair"))

		// op2 and op3 both have fresh pending records; the rejected op3
		// record is kept but superseded.
		assert.Equal(t, serial.StatusInProcess, f.serial.Status())
		records := f.serial.Records()
		assert.Len(t, records, 5)

		var rejected *serial.ProcessRecord
		for _, r := range records {
			if r.Status() == serial.RecordStatusRejected {
				rejected = r
			}
		}
		require.NotNil(t, rejected)
		assert.True(t, rejected.Superseded())

		// The unit can now be driven to completion again.
		f.passOperation(t, f.ops[1], f.actor)
		f.passOperation(t, f.ops[2], f.actor)
		assert.Equal(t, serial.StatusCompleted, f.serial.Status())
	})

	t.Run("only defective serials can return from repair", func(t *testing.T) {
		f := newFixture(t, 1)

		err := f.serial.ReturnFromRepair(f.ops[0], testTime, "")

		require.ErrorIs(t, err, serial.ErrInvalidTransition)
	})
}

func TestMarkScrapped(t *testing.T) {
	t.Run("terminal resolution blocks further work", func(t *testing.T) {
		f := newFixture(t, 2)
		require.NoError(t, f.serial.RejectOperation(f.ops[0], f.actor, testTime, "bent frame"))

		require.NoError(t, f.serial.MarkScrapped())

		assert.Equal(t, serial.StatusScrapped, f.serial.Status())
		require.ErrorIs(t, f.serial.StartOperation(f.ops[1], f.actor, testTime), serial.ErrInvalidTransition)
		require.ErrorIs(t, f.serial.ReturnFromRepair(f.ops[0], testTime, ""), serial.ErrInvalidTransition)
	})

	t.Run("only defective or rejected serials can be scrapped", func(t *testing.T) {
		f := newFixture(t, 1)

		require.ErrorIs(t, f.serial.MarkScrapped(), serial.ErrInvalidTransition)
	})
}

func TestDeriveStatus(t *testing.T) {
	t.Run("is idempotent without mutations", func(t *testing.T) {
		f := newFixture(t, 3)
		f.passOperation(t, f.ops[0], f.actor)

		first := f.serial.DeriveStatus()
		second := f.serial.DeriveStatus()

		assert.Equal(t, first, second)
		assert.Equal(t, serial.StatusInProcess, first)
	})

	t.Run("matches the stored status after every mutation", func(t *testing.T) {
		f := newFixture(t, 2)
		assert.Equal(t, f.serial.Status(), f.serial.DeriveStatus())

		f.passOperation(t, f.ops[0], f.actor)
		assert.Equal(t, f.serial.Status(), f.serial.DeriveStatus())

		require.NoError(t, f.serial.RejectOperation(f.ops[1], f.actor, testTime, "flaw"))
		assert.Equal(t, f.serial.Status(), f.serial.DeriveStatus())
	})
}

func TestProgressReporting(t *testing.T) {
	f := newFixture(t, 4)
	assert.InDelta(t, 0.0, f.serial.CompletionPercent(), 0.001)

	cur := f.serial.CurrentOperation()
	require.NotNil(t, cur)
	assert.True(t, cur.IsEqual(f.ops[0]))

	f.passOperation(t, f.ops[0], f.actor)
	assert.InDelta(t, 25.0, f.serial.CompletionPercent(), 0.001)

	cur = f.serial.CurrentOperation()
	require.NotNil(t, cur)
	assert.True(t, cur.IsEqual(f.ops[1]))

	for _, op := range f.ops[1:] {
		f.passOperation(t, op, f.actor)
	}
	assert.InDelta(t, 100.0, f.serial.CompletionPercent(), 0.001)
	assert.Nil(t, f.serial.CurrentOperation())
}
