package bvh

import (
	"math"

	"github.com/halcyon-engine/go-bvh/types"
)

var inf = float32(math.Inf(1))

// AABB is an axis-aligned bounding box described by its min/max extents.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// NewAABB creates a bounding box from its min and max extents.
func NewAABB(min, max types.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns the absorbing element of Grow: a box with inverted
// infinite extents that unions with any other box without affecting it.
func EmptyAABB() AABB {
	return AABB{
		Min: types.Vec3{inf, inf, inf},
		Max: types.Vec3{-inf, -inf, -inf},
	}
}

// Grow returns the union of the two boxes.
func (b AABB) Grow(other AABB) AABB {
	return AABB{
		Min: types.MinVec3(b.Min, other.Min),
		Max: types.MaxVec3(b.Max, other.Max),
	}
}

// GrowPoint returns the box extended to contain p.
func (b AABB) GrowPoint(p types.Vec3) AABB {
	return AABB{
		Min: types.MinVec3(b.Min, p),
		Max: types.MaxVec3(b.Max, p),
	}
}

// SurfaceArea returns the total area of the box faces. Negative extents
// (as in the empty sentinel) are clamped to zero.
func (b AABB) SurfaceArea() float32 {
	d := b.Max.Sub(b.Min)
	for i := 0; i < 3; i++ {
		if d[i] < 0 {
			d[i] = 0
		}
	}
	return 2 * (d[0]*d[1] + d[1]*d[2] + d[2]*d[0])
}

// Contains reports whether p lies inside the box (boundaries included).
func (b AABB) Contains(p types.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Center returns the box midpoint. Primitive implementations that have no
// better centroid can return this from their Center method.
func (b AABB) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// IntersectRay runs the slab test against a ray with precomputed inverse
// direction, restricted to the [tMin, tMax] range. It returns the distance
// to the entry point and whether the ray overlaps the box at all.
//
// Zero direction components rely on IEEE-754 division producing signed
// infinities that order correctly under min/max; invDir must be computed
// with plain float32 division for this to hold.
func (b AABB) IntersectRay(origin, invDir types.Vec3, tMin, tMax float32) (float32, bool) {
	tEnter := tMin
	tExit := tMax

	for i := 0; i < 3; i++ {
		t1 := (b.Min[i] - origin[i]) * invDir[i]
		t2 := (b.Max[i] - origin[i]) * invDir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
		}
		if t2 < tExit {
			tExit = t2
		}
	}

	if tEnter > tExit {
		return 0, false
	}
	return tEnter, true
}
