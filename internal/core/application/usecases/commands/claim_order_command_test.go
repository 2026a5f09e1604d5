package commands_test

import (
	"testing"

	"smuth/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/require"
)

func TestNewClaimOrderCommand_Success(t *testing.T) {
	cmd, err := commands.NewClaimOrderCommand(42, 2002, "bob")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	require.Equal(t, int64(42), cmd.OrderID())
	require.Equal(t, int64(2002), cmd.RunnerID())
	require.Equal(t, "bob", cmd.RunnerHandle())
}

func TestNewClaimOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewClaimOrderCommand(0, 2002, "bob")
	require.ErrorIs(t, err, commands.ErrOrderIDIsRequired)

	_, err = commands.NewClaimOrderCommand(-1, 2002, "bob")
	require.ErrorIs(t, err, commands.ErrOrderIDIsRequired)
}

func TestNewClaimOrderCommand_InvalidRunner(t *testing.T) {
	_, err := commands.NewClaimOrderCommand(42, 0, "bob")
	require.ErrorIs(t, err, commands.ErrRunnerIsRequired)
}

func TestClaimOrderCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.ClaimOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrClaimOrderCommandIsNotConstructed)
}
