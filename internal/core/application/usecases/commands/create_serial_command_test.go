package commands_test

import (
	"testing"

	"mestrack/internal/core/application/usecases/commands"
	"mestrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateSerialCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	creator := kernel.NewUUID()
	cmd, err := commands.NewCreateSerialCommand(id, "WO-2025-0042", "PCB-MAIN-01", creator)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.SerialID())
	assert.Equal(t, "WO-2025-0042", cmd.OrderNumber())
	assert.Equal(t, "PCB-MAIN-01", cmd.PartNumber())
	assert.Equal(t, creator, cmd.CreatedBy())
}

func TestNewCreateSerialCommand_InvalidSerialID(t *testing.T) {
	_, err := commands.NewCreateSerialCommand(kernel.UUID{}, "WO-2025-0042", "PCB-MAIN-01", kernel.NewUUID())
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateSerialCommand_EmptyOrderNumber(t *testing.T) {
	_, err := commands.NewCreateSerialCommand(kernel.NewUUID(), "", "PCB-MAIN-01", kernel.NewUUID())
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrOrderNumberIsRequired)
}

func TestNewCreateSerialCommand_EmptyPartNumber(t *testing.T) {
	_, err := commands.NewCreateSerialCommand(kernel.NewUUID(), "WO-2025-0042", "", kernel.NewUUID())
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPartNumberIsRequired)
}

func TestCreateSerialCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.CreateSerialCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateSerialCommandIsNotConstructed)
}
