package commands_test

import (
	"context"
	"testing"
	"time"

	"mestrack/internal/core/application/usecases/commands"
	"mestrack/internal/core/domain/model/defect"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/operation"
	"mestrack/internal/core/domain/model/part"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSerialRepository struct{ mock.Mock }

func (m *MockSerialRepository) Add(ctx context.Context, s *serial.Serial) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSerialRepository) Update(ctx context.Context, s *serial.Serial) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSerialRepository) Get(ctx context.Context, id kernel.UUID) (*serial.Serial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*serial.Serial), args.Error(1)
}

func (m *MockSerialRepository) GetByCode(ctx context.Context, code serial.Code) (*serial.Serial, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*serial.Serial), args.Error(1)
}

func (m *MockSerialRepository) GreatestCodeWithPrefix(
	ctx context.Context,
	prefix string,
) (serial.Code, bool, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(serial.Code), args.Bool(1), args.Error(2)
}

func (m *MockSerialRepository) ActorHoldsInProgress(ctx context.Context, actorID kernel.UUID) (bool, error) {
	args := m.Called(ctx, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSerialRepository) GetWithInProgressOlderThan(
	ctx context.Context,
	cutoff time.Time,
) ([]*serial.Serial, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*serial.Serial), args.Error(1)
}

type MockOperationRepository struct{ mock.Mock }

func (m *MockOperationRepository) Get(ctx context.Context, id kernel.UUID) (*operation.Operation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*operation.Operation), args.Error(1)
}

func (m *MockOperationRepository) GetAllActive(ctx context.Context) ([]*operation.Operation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*operation.Operation), args.Error(1)
}

func (m *MockOperationRepository) Add(ctx context.Context, op *operation.Operation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

type MockPartRepository struct{ mock.Mock }

func (m *MockPartRepository) Get(ctx context.Context, id kernel.UUID) (*part.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*part.Part), args.Error(1)
}

func (m *MockPartRepository) GetActiveByPartNumber(ctx context.Context, partNumber string) (*part.Part, error) {
	args := m.Called(ctx, partNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*part.Part), args.Error(1)
}

func (m *MockPartRepository) Add(ctx context.Context, p *part.Part) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockDefectRepository struct{ mock.Mock }

func (m *MockDefectRepository) Add(ctx context.Context, d *defect.Defect) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDefectRepository) Update(ctx context.Context, d *defect.Defect) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDefectRepository) Get(ctx context.Context, id kernel.UUID) (*defect.Defect, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*defect.Defect), args.Error(1)
}

func (m *MockDefectRepository) GetUnresolvedBySerial(
	ctx context.Context,
	serialID kernel.UUID,
) ([]*defect.Defect, error) {
	args := m.Called(ctx, serialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*defect.Defect), args.Error(1)
}

type MockSerialUoW struct{ mock.Mock }

func (m *MockSerialUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSerialUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSerialUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSerialUoW) SerialRepository() ports.SerialRepository {
	args := m.Called()
	return args.Get(0).(ports.SerialRepository)
}

type MockSerialUoWFactory struct{ mock.Mock }

func (m *MockSerialUoWFactory) Create() commands.SerialUoW {
	args := m.Called()
	return args.Get(0).(commands.SerialUoW)
}

type MockDefectUoW struct{ mock.Mock }

func (m *MockDefectUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDefectUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDefectUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDefectUoW) DefectRepository() ports.DefectRepository {
	args := m.Called()
	return args.Get(0).(ports.DefectRepository)
}

type MockDefectUoWFactory struct{ mock.Mock }

func (m *MockDefectUoWFactory) Create() commands.DefectUoW {
	args := m.Called()
	return args.Get(0).(commands.DefectUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) SerialRepository() ports.SerialRepository {
	args := m.Called()
	return args.Get(0).(ports.SerialRepository)
}

func (m *MockUoW) OperationRepository() ports.OperationRepository {
	args := m.Called()
	return args.Get(0).(ports.OperationRepository)
}

func (m *MockUoW) PartRepository() ports.PartRepository {
	args := m.Called()
	return args.Get(0).(ports.PartRepository)
}

func (m *MockUoW) DefectRepository() ports.DefectRepository {
	args := m.Called()
	return args.Get(0).(ports.DefectRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// recordingNotifier captures published events so tests can assert on them
// without mock bookkeeping.
type recordingNotifier struct {
	transitions []ports.TransitionEvent
	stalled     []ports.StalledClaimEvent
}

func (n *recordingNotifier) PublishTransition(_ context.Context, event ports.TransitionEvent) {
	n.transitions = append(n.transitions, event)
}

func (n *recordingNotifier) PublishStalledClaim(_ context.Context, event ports.StalledClaimEvent) {
	n.stalled = append(n.stalled, event)
}

// makeTestSerial builds a serial with numOps operations at sequences 1..numOps
// and returns it with the operation IDs in sequence order.
func makeTestSerial(t *testing.T, numOps int) (*serial.Serial, []kernel.UUID) {
	t.Helper()

	opIDs := make([]kernel.UUID, 0, numOps)
	slots := make([]serial.OperationSlot, 0, numOps)
	for i := 0; i < numOps; i++ {
		opID := kernel.NewUUID()
		opIDs = append(opIDs, opID)
		slots = append(slots, serial.OperationSlot{OperationID: opID, Sequence: i + 1})
	}

	bucket, err := serial.NewBucket(2025, time.March)
	require.NoError(t, err)

	s, err := serial.NewSerial(
		kernel.NewUUID(),
		serial.FirstCode(bucket),
		"WO-2025-0042",
		kernel.NewUUID(),
		kernel.NewUUID(),
		slots,
		time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	return s, opIDs
}
