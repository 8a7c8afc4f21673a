package bvh

import "github.com/halcyon-engine/go-bvh/types"

// The Primitive interface is implemented by any geometric object that can be
// indexed by the hierarchy. Implementations must be pure: all three methods
// are called repeatedly, and Intersect concurrently, so they may not mutate
// internal state.
type Primitive interface {
	// AABB returns a valid, tight bound of the object.
	AABB() AABB

	// Center returns the point used for split-plane decisions. AABB.Center
	// is an acceptable default.
	Center() types.Vec3

	// Intersect tests the object against a ray and returns the forward
	// distance to the nearest hit, or false on a miss. Implementations
	// should reject distances below a small positive epsilon to avoid
	// self-intersection at the ray origin.
	Intersect(origin, dir types.Vec3) (float32, bool)
}
