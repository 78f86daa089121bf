package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareAndPlaceMachine(t *testing.T) {
	topo := New()
	topo.DeclareMachine("m1")

	require.NoError(t, topo.PlaceMachine("m1", 3, 4))
	m := topo.Machines["m1"]
	assert.Equal(t, Placed, m.State)
	assert.Equal(t, 3, m.X)
	assert.Equal(t, 4, m.Y)
}

func TestPlaceMachineTwiceFails(t *testing.T) {
	topo := New()
	topo.DeclareMachine("m1")
	require.NoError(t, topo.PlaceMachine("m1", 0, 0))

	err := topo.PlaceMachine("m1", 1, 1)
	require.Error(t, err)
	assert.IsType(t, &RuntimeError{}, err)
}

func TestPlaceUndeclaredMachineFails(t *testing.T) {
	topo := New()
	err := topo.PlaceMachine("ghost", 0, 0)
	require.Error(t, err)
}

func TestConnectHubExplicitPort(t *testing.T) {
	topo := New()
	topo.DeclareMachine("m1")
	topo.DeclareHub("h1", 4, false, 0)
	require.NoError(t, topo.PlaceMachine("m1", 0, 0))
	require.NoError(t, topo.PlaceHub("h1", 1, 1))

	require.NoError(t, topo.ConnectHub("m1", "h1", 2))

	m := topo.Machines["m1"]
	assert.Equal(t, Connected, m.State)
	require.NotNil(t, m.Connection)
	assert.Equal(t, ConnPort, m.Connection.Kind)
	assert.Equal(t, 2, m.Connection.Port)
	assert.Equal(t, 3, topo.Hubs["h1"].AvailableCount)
}

func TestConnectHubRejectsOutOfRangePort(t *testing.T) {
	topo := New()
	topo.DeclareMachine("m1")
	topo.DeclareHub("h1", 2, false, 0)
	require.NoError(t, topo.PlaceMachine("m1", 0, 0))
	require.NoError(t, topo.PlaceHub("h1", 0, 0))

	err := topo.ConnectHub("m1", "h1", 5)
	require.Error(t, err)
}

func TestConnectHubRejectsOccupiedPort(t *testing.T) {
	topo := New()
	topo.DeclareMachine("m1")
	topo.DeclareMachine("m2")
	topo.DeclareHub("h1", 1, false, 0)
	require.NoError(t, topo.PlaceMachine("m1", 0, 0))
	require.NoError(t, topo.PlaceMachine("m2", 0, 0))
	require.NoError(t, topo.PlaceHub("h1", 0, 0))

	require.NoError(t, topo.ConnectHub("m1", "h1", 1))
	err := topo.ConnectHub("m2", "h1", 1)
	require.Error(t, err)
}

func TestConnectHubRejectsMachineAlreadyConnected(t *testing.T) {
	topo := New()
	topo.DeclareMachine("m1")
	topo.DeclareHub("h1", 2, false, 0)
	topo.DeclareCoax("c1", 10)
	require.NoError(t, topo.PlaceMachine("m1", 0, 0))
	require.NoError(t, topo.PlaceHub("h1", 0, 0))
	require.NoError(t, topo.PlaceCoax("c1", 0, 0, "arriba"))

	require.NoError(t, topo.ConnectHub("m1", "h1", 1))
	err := topo.ConnectCoax("m1", "c1", 0)
	require.Error(t, err)
}

func TestAssignHubPortPicksSmallestFree(t *testing.T) {
	topo := New()
	topo.DeclareMachine("m1")
	topo.DeclareMachine("m2")
	topo.DeclareHub("h1", 3, false, 0)
	require.NoError(t, topo.PlaceMachine("m1", 0, 0))
	require.NoError(t, topo.PlaceMachine("m2", 0, 0))
	require.NoError(t, topo.PlaceHub("h1", 0, 0))

	require.NoError(t, topo.ConnectHub("m1", "h1", 2))
	require.NoError(t, topo.AssignHubPort("h1", "m2"))

	assert.Equal(t, 1, topo.Machines["m2"].Connection.Port)
}

func TestAssignHubPortFailsWhenFull(t *testing.T) {
	topo := New()
	topo.DeclareMachine("m1")
	topo.DeclareHub("h1", 1, false, 0)
	require.NoError(t, topo.PlaceMachine("m1", 0, 0))
	require.NoError(t, topo.PlaceHub("h1", 0, 0))
	require.NoError(t, topo.AssignHubPort("h1", "m1"))

	topo.DeclareMachine("m2")
	require.NoError(t, topo.PlaceMachine("m2", 0, 0))
	err := topo.AssignHubPort("h1", "m2")
	require.Error(t, err)
}

func TestConnectCoaxTracksCompletoOnConservativeRule(t *testing.T) {
	topo := New()
	topo.DeclareCoax("c1", 1) // positions 0 and 1 -> two slots
	require.NoError(t, topo.PlaceCoax("c1", 0, 0, "arriba"))

	topo.DeclareMachine("m1")
	topo.DeclareMachine("m2")
	require.NoError(t, topo.PlaceMachine("m1", 0, 0))
	require.NoError(t, topo.PlaceMachine("m2", 0, 0))

	require.NoError(t, topo.ConnectCoax("m1", "c1", 0))
	assert.False(t, topo.Coaxials["c1"].Completo)

	require.NoError(t, topo.ConnectCoax("m2", "c1", 1))
	assert.True(t, topo.Coaxials["c1"].Completo)
}

func TestConnectCoaxRejectsSharedPosition(t *testing.T) {
	topo := New()
	topo.DeclareCoax("c1", 10)
	require.NoError(t, topo.PlaceCoax("c1", 0, 0, "abajo"))
	topo.DeclareMachine("m1")
	topo.DeclareMachine("m2")
	require.NoError(t, topo.PlaceMachine("m1", 0, 0))
	require.NoError(t, topo.PlaceMachine("m2", 0, 0))

	require.NoError(t, topo.ConnectCoax("m1", "c1", 5))
	err := topo.ConnectCoax("m2", "c1", 5)
	require.Error(t, err)
}

func TestConnectCoaxRejectsOutOfRangePosition(t *testing.T) {
	topo := New()
	topo.DeclareCoax("c1", 3)
	require.NoError(t, topo.PlaceCoax("c1", 0, 0, "izquierda"))
	topo.DeclareMachine("m1")
	require.NoError(t, topo.PlaceMachine("m1", 0, 0))

	err := topo.ConnectCoax("m1", "c1", 4)
	require.Error(t, err)
}

func TestAssignCoaxPicksSmallestFreePosition(t *testing.T) {
	topo := New()
	topo.DeclareCoax("c1", 5)
	require.NoError(t, topo.PlaceCoax("c1", 0, 0, "derecha"))
	topo.DeclareMachine("m1")
	topo.DeclareMachine("m2")
	require.NoError(t, topo.PlaceMachine("m1", 0, 0))
	require.NoError(t, topo.PlaceMachine("m2", 0, 0))

	require.NoError(t, topo.ConnectCoax("m1", "c1", 0))
	require.NoError(t, topo.AssignCoax("c1", "m2"))

	assert.Equal(t, 1, topo.Machines["m2"].Connection.Pos)
}

func TestHubPortOccupiedOutOfRangeIsFalse(t *testing.T) {
	topo := New()
	topo.DeclareHub("h1", 2, false, 0)
	hub := topo.Hubs["h1"]
	assert.False(t, hub.HubPortOccupied(0))
	assert.False(t, hub.HubPortOccupied(3))
}

func TestSnapshotIsSortedByName(t *testing.T) {
	topo := New()
	topo.DeclareMachine("zeta")
	topo.DeclareMachine("alpha")
	require.NoError(t, topo.PlaceMachine("zeta", 0, 0))
	require.NoError(t, topo.PlaceMachine("alpha", 0, 0))

	lines := topo.Snapshot()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "alpha")
	assert.Contains(t, lines[1], "zeta")
}

func TestWriteAccumulatesInOrder(t *testing.T) {
	topo := New()
	topo.Write("first")
	topo.Write("second")
	assert.Equal(t, []string{"first", "second"}, topo.Output)
}
