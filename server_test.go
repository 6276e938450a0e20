package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"atombox/core"
)

func TestEncodeGridSnapshot(t *testing.T) {
	grid := core.NewGrid(4)
	grid.StepCounter = 7
	grid.At(core.Pos{X: 0, Y: 0, Z: 3}).Pressure = 2.5

	data, err := encodeGridSnapshot(grid)
	require.NoError(t, err)

	var snapshot gridSnapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	require.Equal(t, "grid", snapshot.Type)
	require.Equal(t, 4, snapshot.Size)
	require.Equal(t, uint64(7), snapshot.Step)
	require.Len(t, snapshot.Atoms, 64)

	// Atoms are flattened x-outer, z-inner: (0,0,3) lands at index 3 and the
	// anchor solid at (1,1,1) at index 16+4+1.
	require.Equal(t, float32(2.5), snapshot.Atoms[3].Pressure)
	require.Equal(t, core.Solid, snapshot.Atoms[21].Variant)
}

func TestNewStateServerUsesConfiguredInterval(t *testing.T) {
	srv := newStateServer(50 * time.Millisecond)
	require.Equal(t, 50*time.Millisecond, srv.interval)
}

func TestPublishKeepsLatestSnapshot(t *testing.T) {
	srv := newStateServer(100 * time.Millisecond)
	grid := core.NewGrid(4)

	require.NoError(t, srv.publish(grid))
	first := srv.latest

	grid.StepCounter = 3
	require.NoError(t, srv.publish(grid))
	require.NotEqual(t, first, srv.latest)

	var snapshot gridSnapshot
	require.NoError(t, json.Unmarshal(srv.latest, &snapshot))
	require.Equal(t, uint64(3), snapshot.Step)
}
