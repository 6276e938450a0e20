package editor

import (
	"iter"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"atombox/core"
)

func cellSeq(cells ...core.Pos) iter.Seq[core.Pos] {
	return func(yield func(core.Pos) bool) {
		for _, c := range cells {
			if !yield(c) {
				return
			}
		}
	}
}

func TestRayUnitCubeIntersectionHitsFrontFace(t *testing.T) {
	origin := mgl32.Vec3{-5, 2.5, 2.5}
	dir := mgl32.Vec3{1, 0, 0}

	hit, ok := rayUnitCubeIntersection(origin, dir, core.Pos{X: 2, Y: 2, Z: 2})
	require.True(t, ok)
	require.InDelta(t, 2, hit.X(), 1e-5)
	require.InDelta(t, 2.5, hit.Y(), 1e-5)
	require.InDelta(t, 2.5, hit.Z(), 1e-5)
}

func TestRayUnitCubeIntersectionMisses(t *testing.T) {
	origin := mgl32.Vec3{-5, 2.5, 2.5}
	dir := mgl32.Vec3{1, 0, 0}

	_, ok := rayUnitCubeIntersection(origin, dir, core.Pos{X: 2, Y: 4, Z: 2})
	require.False(t, ok)
}

func TestRayUnitCubeIntersectionBehindOrigin(t *testing.T) {
	origin := mgl32.Vec3{5, 2.5, 2.5}
	dir := mgl32.Vec3{1, 0, 0}

	_, ok := rayUnitCubeIntersection(origin, dir, core.Pos{X: 2, Y: 2, Z: 2})
	require.False(t, ok)
}

func TestRayUnitCubeIntersectionFromInside(t *testing.T) {
	origin := mgl32.Vec3{2.5, 2.5, 2.5}
	dir := mgl32.Vec3{1, 0, 0}

	hit, ok := rayUnitCubeIntersection(origin, dir, core.Pos{X: 2, Y: 2, Z: 2})
	require.True(t, ok)
	require.InDelta(t, 3, hit.X(), 1e-5)
}

func TestClosestRayGridIntersectionPicksNearest(t *testing.T) {
	origin := mgl32.Vec3{-5, 2.5, 2.5}
	dir := mgl32.Vec3{1, 0, 0}

	cell, hit, ok := closestRayGridIntersection(origin, dir, cellSeq(
		core.Pos{X: 4, Y: 2, Z: 2},
		core.Pos{X: 2, Y: 2, Z: 2},
	))
	require.True(t, ok)
	require.Equal(t, core.Pos{X: 2, Y: 2, Z: 2}, cell)
	require.InDelta(t, 2, hit.X(), 1e-5)
}

func TestClosestRayGridIntersectionNoHit(t *testing.T) {
	origin := mgl32.Vec3{-5, 10, 10}
	dir := mgl32.Vec3{1, 0, 0}

	_, _, ok := closestRayGridIntersection(origin, dir, cellSeq(core.Pos{X: 2, Y: 2, Z: 2}))
	require.False(t, ok)
}

func TestAdjacentCellPicksFaceNeighbor(t *testing.T) {
	cell := core.Pos{X: 2, Y: 2, Z: 2}

	// Hit on the -X face proposes the -X neighbor.
	require.Equal(t, core.Pos{X: 1, Y: 2, Z: 2}, adjacentCell(cell, mgl32.Vec3{2, 2.5, 2.5}))
	// Hit on the +Y face proposes the +Y neighbor.
	require.Equal(t, core.Pos{X: 2, Y: 3, Z: 2}, adjacentCell(cell, mgl32.Vec3{2.5, 3, 2.5}))
}
