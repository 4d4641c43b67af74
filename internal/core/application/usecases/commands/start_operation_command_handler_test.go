package commands_test

import (
	"testing"

	"mestrack/internal/core/application/usecases/commands"
	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartOperationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	s, opIDs := makeTestSerial(t, 2)
	actorID := kernel.NewUUID()
	cmd, _ := commands.NewStartOperationCommand(s.Code(), opIDs[0], actorID, actor.RoleOperator)

	serialRepo := new(MockSerialRepository)
	uow := new(MockSerialUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SerialRepository").Return(serialRepo).Once(),
		serialRepo.On("GetByCode", mock.Anything, s.Code()).Return(s, nil).Once(),
		serialRepo.On("ActorHoldsInProgress", mock.Anything, actorID).Return(false, nil).Once(),
		serialRepo.On("Update", mock.Anything, s).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSerialUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewStartOperationCommandHandler(factory, notifier)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, s.HoldsInProgress(actorID))
	require.Len(t, notifier.transitions, 1)
	assert.Equal(t, serial.RecordStatusInProgress.String(), notifier.transitions[0].RecordStatus)
	serialRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestStartOperationCommandHandler_Handle_ActorBusyElsewhere(t *testing.T) {
	ctx := t.Context()
	s, opIDs := makeTestSerial(t, 2)
	actorID := kernel.NewUUID()
	cmd, _ := commands.NewStartOperationCommand(s.Code(), opIDs[0], actorID, actor.RoleOperator)

	serialRepo := new(MockSerialRepository)
	uow := new(MockSerialUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SerialRepository").Return(serialRepo).Once()
	serialRepo.On("GetByCode", mock.Anything, s.Code()).Return(s, nil).Once()
	serialRepo.On("ActorHoldsInProgress", mock.Anything, actorID).Return(true, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSerialUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartOperationCommandHandler(factory, &recordingNotifier{})
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, serial.ErrActorBusy)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestStartOperationCommandHandler_Handle_SequenceViolation(t *testing.T) {
	ctx := t.Context()
	s, opIDs := makeTestSerial(t, 2)
	actorID := kernel.NewUUID()
	cmd, _ := commands.NewStartOperationCommand(s.Code(), opIDs[1], actorID, actor.RoleOperator)

	serialRepo := new(MockSerialRepository)
	uow := new(MockSerialUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SerialRepository").Return(serialRepo).Once()
	serialRepo.On("GetByCode", mock.Anything, s.Code()).Return(s, nil).Once()
	serialRepo.On("ActorHoldsInProgress", mock.Anything, actorID).Return(false, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSerialUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartOperationCommandHandler(factory, &recordingNotifier{})
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, serial.ErrSequenceViolation)
}

func TestStartOperationCommandHandler_Handle_RepairerCannotOperate(t *testing.T) {
	ctx := t.Context()
	s, opIDs := makeTestSerial(t, 1)
	cmd, _ := commands.NewStartOperationCommand(s.Code(), opIDs[0], kernel.NewUUID(), actor.RoleRepairer)

	factory := new(MockSerialUoWFactory)
	h := commands.NewStartOperationCommandHandler(factory, &recordingNotifier{})
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, actor.ErrNotPermitted)
	factory.AssertNotCalled(t, "Create")
}
