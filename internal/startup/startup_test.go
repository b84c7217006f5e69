package startup_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/alreadyedge/internal/logger"
	"github.com/Norgate-AV/alreadyedge/internal/startup"
	"github.com/Norgate-AV/alreadyedge/internal/testutil"
)

const exe = `C:\Tools\alreadyedge.exe`

func TestCommand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"C:\\Tools\\alreadyedge.exe" run`, startup.Command(exe))
}

func TestSync_Enable(t *testing.T) {
	t.Parallel()

	reg := testutil.NewMockStartupRegistrar()

	require.NoError(t, startup.Sync(logger.NewNoOpLogger(), reg, true, exe))
	assert.True(t, reg.IsEnabled)
	assert.Equal(t, startup.Command(exe), reg.Command)
}

func TestSync_Disable(t *testing.T) {
	t.Parallel()

	reg := testutil.NewMockStartupRegistrar()
	require.NoError(t, reg.Enable("old"))

	require.NoError(t, startup.Sync(logger.NewNoOpLogger(), reg, false, exe))
	assert.False(t, reg.IsEnabled)
	assert.Empty(t, reg.Command)
}

func TestSync_AlreadyInDesiredState(t *testing.T) {
	t.Parallel()

	reg := testutil.NewMockStartupRegistrar()
	require.NoError(t, reg.Enable("existing"))

	require.NoError(t, startup.Sync(logger.NewNoOpLogger(), reg, true, exe))
	assert.Equal(t, "existing", reg.Command, "an existing entry is left alone")
}

func TestSync_EnableError(t *testing.T) {
	t.Parallel()

	reg := testutil.NewMockStartupRegistrar()
	reg.EnableErr = errors.New("access denied")

	err := startup.Sync(logger.NewNoOpLogger(), reg, true, exe)
	assert.ErrorContains(t, err, "access denied")
	assert.False(t, reg.IsEnabled)
}
