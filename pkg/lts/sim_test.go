package lts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimBackend_FullLifecycle(t *testing.T) {
	backend := NewSimBackend("45001122")
	stage, err := NewStage(backend)
	require.NoError(t, err)
	defer stage.Close()

	require.NoError(t, stage.Connect("45001122"))
	assert.Equal(t, "45001122", stage.Serial())
	assert.Equal(t, "LTS150", stage.ControllerName())
	assert.Equal(t, "LTS150 150mm Stage", stage.StageName())

	require.NoError(t, stage.Home())
	assert.Equal(t, 0.0, stage.Position())

	require.NoError(t, stage.MoveToPosition(75.0))
	assert.Equal(t, 75.0, stage.Position())

	require.NoError(t, stage.Disconnect())
}

func TestSimBackend_MoveBeforeHomeFails(t *testing.T) {
	backend := NewSimBackend()
	stage, err := NewStage(backend)
	require.NoError(t, err)
	defer stage.Close()

	require.NoError(t, stage.Connect("45000001"))
	err = stage.MoveToPosition(10.0)

	var moveErr *MoveError
	require.ErrorAs(t, err, &moveErr)
	assert.Equal(t, 10.0, moveErr.Target)
}

func TestSimBackend_MoveOutsideTravelFails(t *testing.T) {
	backend := NewSimBackend()
	stage, err := NewStage(backend)
	require.NoError(t, err)
	defer stage.Close()

	require.NoError(t, stage.Connect("45000001"))
	require.NoError(t, stage.Home())

	assert.Error(t, stage.MoveToPosition(151.0))
	assert.Error(t, stage.MoveToPosition(-1.0))
	assert.Equal(t, 0.0, stage.Position())
}

func TestSimBackend_UnknownSerial(t *testing.T) {
	backend := NewSimBackend("45000001")
	_, err := backend.Open("45999999")
	assert.Error(t, err)
}

func TestSimBackend_ReconnectKeepsDeviceState(t *testing.T) {
	backend := NewSimBackend()
	stage, err := NewStage(backend)
	require.NoError(t, err)
	defer stage.Close()

	require.NoError(t, stage.Connect("45000001"))
	require.NoError(t, stage.Home())
	require.NoError(t, stage.MoveToPosition(42.0))
	require.NoError(t, stage.Disconnect())

	// The simulated device keeps its position across connections,
	// like real hardware that stays powered.
	require.NoError(t, stage.Connect("45000001"))
	assert.Equal(t, 42.0, stage.Position())
}

func TestSimBackend_InjectedFailures(t *testing.T) {
	backend := NewSimBackend()
	backend.OpenError = errors.New("driver missing")

	stage, err := NewStage(backend)
	require.NoError(t, err)

	var connErr *ConnectError
	require.ErrorAs(t, stage.Connect("45000001"), &connErr)
	assert.False(t, stage.Connected())
}
