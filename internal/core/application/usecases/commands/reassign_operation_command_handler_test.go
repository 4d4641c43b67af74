package commands_test

import (
	"testing"
	"time"

	"mestrack/internal/core/application/usecases/commands"
	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReassignOperationCommandHandler_Handle_MovesClaim(t *testing.T) {
	ctx := t.Context()
	s, opIDs := makeTestSerial(t, 2)
	original := kernel.NewUUID()
	target := kernel.NewUUID()
	require.NoError(t, s.StartOperation(opIDs[0], original, time.Now().UTC()))

	cmd, _ := commands.NewReassignOperationCommand(
		s.Code(), opIDs[0], kernel.NewUUID(), actor.RoleSupervisor, target)

	serialRepo := new(MockSerialRepository)
	uow := new(MockSerialUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SerialRepository").Return(serialRepo).Once()
	serialRepo.On("GetByCode", mock.Anything, s.Code()).Return(s, nil).Once()
	serialRepo.On("ActorHoldsInProgress", mock.Anything, target).Return(false, nil).Once()
	serialRepo.On("Update", mock.Anything, s).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSerialUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReassignOperationCommandHandler(factory, &recordingNotifier{})
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, s.HoldsInProgress(original))
	assert.True(t, s.HoldsInProgress(target))
}

func TestReassignOperationCommandHandler_Handle_BusyTarget(t *testing.T) {
	ctx := t.Context()
	s, opIDs := makeTestSerial(t, 2)
	original := kernel.NewUUID()
	target := kernel.NewUUID()
	require.NoError(t, s.StartOperation(opIDs[0], original, time.Now().UTC()))

	cmd, _ := commands.NewReassignOperationCommand(
		s.Code(), opIDs[0], kernel.NewUUID(), actor.RoleAdmin, target)

	serialRepo := new(MockSerialRepository)
	uow := new(MockSerialUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SerialRepository").Return(serialRepo).Once()
	serialRepo.On("GetByCode", mock.Anything, s.Code()).Return(s, nil).Once()
	serialRepo.On("ActorHoldsInProgress", mock.Anything, target).Return(true, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSerialUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReassignOperationCommandHandler(factory, &recordingNotifier{})
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, serial.ErrActorBusy)
	assert.True(t, s.HoldsInProgress(original))
}

func TestReassignOperationCommandHandler_Handle_NoTargetReleases(t *testing.T) {
	ctx := t.Context()
	s, opIDs := makeTestSerial(t, 2)
	original := kernel.NewUUID()
	require.NoError(t, s.StartOperation(opIDs[0], original, time.Now().UTC()))

	cmd, _ := commands.NewReassignOperationCommand(
		s.Code(), opIDs[0], kernel.NewUUID(), actor.RoleSupervisor, kernel.UUID{})
	require.False(t, cmd.HasNewActor())

	serialRepo := new(MockSerialRepository)
	uow := new(MockSerialUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SerialRepository").Return(serialRepo).Once()
	serialRepo.On("GetByCode", mock.Anything, s.Code()).Return(s, nil).Once()
	serialRepo.On("Update", mock.Anything, s).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSerialUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewReassignOperationCommandHandler(factory, notifier)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, s.HoldsInProgress(original))
	require.Len(t, notifier.transitions, 1)
	assert.Equal(t, serial.RecordStatusPending.String(), notifier.transitions[0].RecordStatus)
}

func TestReassignOperationCommandHandler_Handle_OperatorNotPermitted(t *testing.T) {
	ctx := t.Context()
	s, opIDs := makeTestSerial(t, 1)
	cmd, _ := commands.NewReassignOperationCommand(
		s.Code(), opIDs[0], kernel.NewUUID(), actor.RoleOperator, kernel.NewUUID())

	factory := new(MockSerialUoWFactory)
	h := commands.NewReassignOperationCommandHandler(factory, &recordingNotifier{})
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, actor.ErrNotPermitted)
	factory.AssertNotCalled(t, "Create")
}
