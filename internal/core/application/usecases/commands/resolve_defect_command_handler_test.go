package commands_test

import (
	"testing"
	"time"

	"mestrack/internal/core/application/usecases/commands"
	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/defect"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// defectiveFixture builds a serial whose first operation was rejected, the
// matching defect already claimed by the returned repairer.
func defectiveFixture(t *testing.T) (*serial.Serial, *defect.Defect, []kernel.UUID, kernel.UUID) {
	t.Helper()

	s, opIDs := makeTestSerial(t, 2)
	operator := kernel.NewUUID()
	now := time.Now().UTC()
	require.NoError(t, s.StartOperation(opIDs[0], operator, now))
	require.NoError(t, s.RejectOperation(opIDs[0], operator, now, "bent pin"))

	d, err := defect.NewDefect(
		kernel.NewUUID(), s.ID(), opIDs[0], defect.TypeDimensional, "bent pin", operator, now)
	require.NoError(t, err)

	repairer := kernel.NewUUID()
	require.NoError(t, d.AssignRepairer(repairer, now))

	return s, d, opIDs, repairer
}

func expectResolution(ctx any, uow *MockUoW, defectRepo *MockDefectRepository, serialRepo *MockSerialRepository, s *serial.Serial, d *defect.Defect) {
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DefectRepository").Return(defectRepo).Once()
	uow.On("SerialRepository").Return(serialRepo).Once()
	defectRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once()
	serialRepo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	defectRepo.On("Update", mock.Anything, d).Return(nil).Once()
	serialRepo.On("Update", mock.Anything, s).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
}

func TestResolveDefectCommandHandler_Handle_Repair(t *testing.T) {
	ctx := t.Context()
	s, d, opIDs, repairer := defectiveFixture(t)
	cmd, err := commands.NewResolveDefectRepairCommand(
		d.ID(), repairer, actor.RoleRepairer, opIDs[0], "straightened and verified")
	require.NoError(t, err)

	defectRepo := new(MockDefectRepository)
	serialRepo := new(MockSerialRepository)
	uow := new(MockUoW)
	expectResolution(ctx, uow, defectRepo, serialRepo, s, d)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewResolveDefectCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, defect.StatusRepaired, d.Status())
	assert.Equal(t, serial.StatusCreated, s.Status())
	require.Len(t, notifier.transitions, 1)
	defectRepo.AssertExpectations(t)
	serialRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestResolveDefectCommandHandler_Handle_Scrap(t *testing.T) {
	ctx := t.Context()
	s, d, _, repairer := defectiveFixture(t)
	cmd, err := commands.NewResolveDefectScrapCommand(
		d.ID(), repairer, actor.RoleRepairer, "beyond repair")
	require.NoError(t, err)

	defectRepo := new(MockDefectRepository)
	serialRepo := new(MockSerialRepository)
	uow := new(MockUoW)
	expectResolution(ctx, uow, defectRepo, serialRepo, s, d)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveDefectCommandHandler(factory, &recordingNotifier{})
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, defect.StatusScrapped, d.Status())
	assert.Equal(t, serial.StatusScrapped, s.Status())
}

func TestResolveDefectCommandHandler_Handle_WrongResolver(t *testing.T) {
	ctx := t.Context()
	s, d, opIDs, _ := defectiveFixture(t)
	intruder := kernel.NewUUID()
	cmd, err := commands.NewResolveDefectRepairCommand(
		d.ID(), intruder, actor.RoleRepairer, opIDs[0], "")
	require.NoError(t, err)

	defectRepo := new(MockDefectRepository)
	serialRepo := new(MockSerialRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DefectRepository").Return(defectRepo).Once()
	uow.On("SerialRepository").Return(serialRepo).Once()
	defectRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once()
	serialRepo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveDefectCommandHandler(factory, &recordingNotifier{})
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, defect.StatusInRepair, d.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestNewResolveDefectRepairCommand_ReturnOperationRequired(t *testing.T) {
	_, err := commands.NewResolveDefectRepairCommand(
		kernel.NewUUID(), kernel.NewUUID(), actor.RoleRepairer, kernel.UUID{}, "")
	require.ErrorIs(t, err, commands.ErrReturnOperationIsRequired)
}
