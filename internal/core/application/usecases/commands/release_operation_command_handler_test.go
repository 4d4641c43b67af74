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

func TestReleaseOperationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	s, opIDs := makeTestSerial(t, 2)
	actorID := kernel.NewUUID()
	require.NoError(t, s.StartOperation(opIDs[0], actorID, time.Now().UTC()))

	cmd, _ := commands.NewReleaseOperationCommand(s.Code(), opIDs[0], actorID, actor.RoleOperator)

	serialRepo := new(MockSerialRepository)
	uow := new(MockSerialUoW)
	expectSerialMutation(ctx, uow, serialRepo, s)

	factory := new(MockSerialUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewReleaseOperationCommandHandler(factory, notifier)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, s.HoldsInProgress(actorID))
	require.Len(t, notifier.transitions, 1)
	assert.Equal(t, serial.RecordStatusPending.String(), notifier.transitions[0].RecordStatus)
}

func TestReleaseOperationCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()
	s, opIDs := makeTestSerial(t, 2)
	holder := kernel.NewUUID()
	require.NoError(t, s.StartOperation(opIDs[0], holder, time.Now().UTC()))

	cmd, _ := commands.NewReleaseOperationCommand(s.Code(), opIDs[0], kernel.NewUUID(), actor.RoleOperator)

	serialRepo := new(MockSerialRepository)
	uow := new(MockSerialUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SerialRepository").Return(serialRepo).Once()
	serialRepo.On("GetByCode", mock.Anything, s.Code()).Return(s, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSerialUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReleaseOperationCommandHandler(factory, &recordingNotifier{})
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, serial.ErrNotOwner)
	assert.True(t, s.HoldsInProgress(holder))
}
