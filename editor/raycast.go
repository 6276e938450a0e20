package editor

import (
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"atombox/core"
)

// rayUnitCubeIntersection intersects a ray with the unit cube occupied by
// cell, using the slab method. It returns the entry point (or the exit point
// when the origin is inside the cube).
func rayUnitCubeIntersection(origin, dir mgl32.Vec3, cell core.Pos) (mgl32.Vec3, bool) {
	lo := cell.Vec3()
	hi := lo.Add(mgl32.Vec3{1, 1, 1})

	tMin := float32(math.Inf(-1))
	tMax := float32(math.Inf(1))

	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], dir[axis]
		if mgl32.Abs(d) < 1e-8 {
			if o < lo[axis] || o > hi[axis] {
				return mgl32.Vec3{}, false
			}
			continue
		}
		t1 := (lo[axis] - o) / d
		t2 := (hi[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
	}

	if tMax < tMin || tMax < 0 {
		return mgl32.Vec3{}, false
	}
	t := tMin
	if t < 0 {
		t = tMax
	}
	return origin.Add(dir.Mul(t)), true
}

// closestRayGridIntersection tests the ray against a unit cube at every
// candidate cell and returns the hit nearest the ray origin.
func closestRayGridIntersection(origin, dir mgl32.Vec3, cells iter.Seq[core.Pos]) (core.Pos, mgl32.Vec3, bool) {
	var (
		bestCell core.Pos
		bestHit  mgl32.Vec3
		bestDist = float32(math.Inf(1))
		found    bool
	)
	for cell := range cells {
		hit, ok := rayUnitCubeIntersection(origin, dir, cell)
		if !ok {
			continue
		}
		dist := hit.Sub(origin).Len()
		if dist < bestDist {
			bestCell, bestHit, bestDist = cell, hit, dist
			found = true
		}
	}
	return bestCell, bestHit, found
}

// adjacentCell picks the face neighbor of cell whose center lies closest to
// nearby, typically a surface hit point on the cell's cube.
func adjacentCell(cell core.Pos, nearby mgl32.Vec3) core.Pos {
	offsets := []core.Pos{
		{X: -1}, {X: 1},
		{Y: -1}, {Y: 1},
		{Z: -1}, {Z: 1},
	}

	best := cell
	bestDist := float32(math.Inf(1))
	for _, off := range offsets {
		candidate := cell.Add(off)
		dist := candidate.Center().Sub(nearby).Len()
		if dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}
