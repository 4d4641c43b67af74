package commands_test

import (
	"testing"

	"mestrack/internal/core/application/usecases/commands"
	"mestrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateSerialBatchCommand_ValidInput(t *testing.T) {
	creator := kernel.NewUUID()
	cmd, err := commands.NewCreateSerialBatchCommand("WO-2025-0042", "PCB-MAIN-01", creator, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, cmd.Quantity())
	assert.Equal(t, creator, cmd.CreatedBy())
}

func TestNewCreateSerialBatchCommand_QuantityBounds(t *testing.T) {
	creator := kernel.NewUUID()

	_, err := commands.NewCreateSerialBatchCommand("WO-2025-0042", "PCB-MAIN-01", creator, 0)
	assert.ErrorIs(t, err, commands.ErrQuantityIsInvalid)

	_, err = commands.NewCreateSerialBatchCommand("WO-2025-0042", "PCB-MAIN-01", creator, 101)
	assert.ErrorIs(t, err, commands.ErrQuantityIsInvalid)

	_, err = commands.NewCreateSerialBatchCommand("WO-2025-0042", "PCB-MAIN-01", creator, 100)
	assert.NoError(t, err)
}

func TestNewCreateSerialBatchCommand_EmptyOrderNumber(t *testing.T) {
	_, err := commands.NewCreateSerialBatchCommand("", "PCB-MAIN-01", kernel.NewUUID(), 5)
	require.ErrorIs(t, err, commands.ErrOrderNumberIsRequired)
}
