package commands_test

import (
	"testing"
	"time"

	"mestrack/internal/core/application/usecases/commands"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewReportStalledClaimsCommand_InvalidThreshold(t *testing.T) {
	_, err := commands.NewReportStalledClaimsCommand(0)
	require.ErrorIs(t, err, commands.ErrThresholdIsInvalid)
}

func TestReportStalledClaimsCommandHandler_Handle_AlertsOnStaleClaims(t *testing.T) {
	ctx := t.Context()
	s, opIDs := makeTestSerial(t, 2)
	holder := kernel.NewUUID()
	staleStart := time.Now().UTC().Add(-3 * time.Hour)
	require.NoError(t, s.StartOperation(opIDs[0], holder, staleStart))

	cmd, err := commands.NewReportStalledClaimsCommand(2 * time.Hour)
	require.NoError(t, err)

	serialRepo := new(MockSerialRepository)
	uow := new(MockSerialUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SerialRepository").Return(serialRepo).Once()
	serialRepo.On("GetWithInProgressOlderThan", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*serial.Serial{s}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSerialUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewReportStalledClaimsCommandHandler(factory, notifier)
	alerts, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, alerts)
	require.Len(t, notifier.stalled, 1)
	assert.Equal(t, s.Code().String(), notifier.stalled[0].SerialCode)
	assert.Equal(t, holder.String(), notifier.stalled[0].ActorID)
	assert.Equal(t, staleStart, notifier.stalled[0].StartedAt)
}

func TestReportStalledClaimsCommandHandler_Handle_NothingStalled(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReportStalledClaimsCommand(2 * time.Hour)
	require.NoError(t, err)

	serialRepo := new(MockSerialRepository)
	uow := new(MockSerialUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SerialRepository").Return(serialRepo).Once()
	serialRepo.On("GetWithInProgressOlderThan", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*serial.Serial{}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSerialUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewReportStalledClaimsCommandHandler(factory, notifier)
	alerts, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, alerts)
	assert.Empty(t, notifier.stalled)
}
