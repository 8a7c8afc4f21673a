package cmd

import (
	"math"
	"math/rand"

	"github.com/halcyon-engine/go-bvh/bvh"
	"github.com/halcyon-engine/go-bvh/types"
)

// Minimum forward distance accepted by sphere intersection; rejects
// self-intersection at the ray origin.
const intersectEpsilon = 1e-4

// A sphere is the demo primitive used by the bench and validate commands.
// Concrete shapes are deliberately not part of the library API.
type sphere struct {
	center types.Vec3
	radius float32
}

func (s sphere) AABB() bvh.AABB {
	r := types.XYZ(s.radius, s.radius, s.radius)
	return bvh.NewAABB(s.center.Sub(r), s.center.Add(r))
}

func (s sphere) Center() types.Vec3 {
	return s.center
}

func (s sphere) Intersect(origin, dir types.Vec3) (float32, bool) {
	oc := origin.Sub(s.center)
	a := dir.Dot(dir)
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - s.radius*s.radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := float32(math.Sqrt(float64(discriminant)))
	if t := (-b - sqrtD) / (2 * a); t > intersectEpsilon {
		return t, true
	}
	if t := (-b + sqrtD) / (2 * a); t > intersectEpsilon {
		return t, true
	}
	return 0, false
}

// Generate a sphere cloud with centers in [-10, 10] per axis and radii in
// [0.1, 2), matching the distribution used by the validation tests.
func randomSpheres(rng *rand.Rand, count int) []sphere {
	spheres := make([]sphere, count)
	for i := range spheres {
		spheres[i] = sphere{
			center: randomPoint(rng),
			radius: 0.1 + 1.9*rng.Float32(),
		}
	}
	return spheres
}

func randomPoint(rng *rand.Rand) types.Vec3 {
	return types.XYZ(
		-10+20*rng.Float32(),
		-10+20*rng.Float32(),
		-10+20*rng.Float32(),
	)
}

// Generate a ray direction guaranteed to have nonzero length.
func randomDirection(rng *rand.Rand) types.Vec3 {
	for {
		dir := types.XYZ(
			-1+2*rng.Float32(),
			-1+2*rng.Float32(),
			-1+2*rng.Float32(),
		)
		if dir.Len() > 1e-3 {
			return dir.Normalize()
		}
	}
}
