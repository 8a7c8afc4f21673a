package cmd

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/halcyon-engine/go-bvh/bvh"
	"github.com/halcyon-engine/go-bvh/types"
	"github.com/urfave/cli"
)

// Tolerance when comparing traversal distances against brute force.
const distanceTolerance = 1e-4

// Build trees over many seeded sphere clouds, check the structural
// invariants and compare traversal results against brute force.
func Validate(ctx *cli.Context) error {
	setupLogging(ctx)

	numPrimitives := ctx.Int("primitives")
	numRays := ctx.Int("rays")
	numSeeds := ctx.Int("seeds")

	for seed := int64(0); seed < int64(numSeeds); seed++ {
		rng := rand.New(rand.NewSource(seed))
		spheres := randomSpheres(rng, numPrimitives)
		tree := bvh.Build(spheres)

		if err := checkPartition(tree.Root, numPrimitives); err != nil {
			return cli.NewExitError(fmt.Sprintf("seed %d: %s", seed, err), 1)
		}
		if err := checkTightness(tree.Root, spheres); err != nil {
			return cli.NewExitError(fmt.Sprintf("seed %d: %s", seed, err), 1)
		}

		for i := 0; i < numRays; i++ {
			origin := randomPoint(rng)
			dir := randomDirection(rng)

			hit, ok := tree.IntersectRay(origin, dir)
			bfDist, bfOk := bruteForce(spheres, origin, dir)

			switch {
			case ok != bfOk:
				return cli.NewExitError(fmt.Sprintf(
					"seed %d ray %d: tree hit=%t, brute force hit=%t", seed, i, ok, bfOk), 1)
			case ok && float32(math.Abs(float64(hit.Distance-bfDist))) > distanceTolerance:
				return cli.NewExitError(fmt.Sprintf(
					"seed %d ray %d: tree distance %g, brute force distance %g",
					seed, i, hit.Distance, bfDist), 1)
			}
		}

		logger.Infof("seed %d: %d primitives, %d rays ok", seed, numPrimitives, numRays)
	}

	logger.Noticef("validated %d seeds (%d primitives, %d rays each)", numSeeds, numPrimitives, numRays)
	return nil
}

func bruteForce(spheres []sphere, origin, dir types.Vec3) (float32, bool) {
	var nearest float32 = math.MaxFloat32
	found := false
	for _, s := range spheres {
		if dist, ok := s.Intersect(origin, dir); ok && dist < nearest {
			nearest = dist
			found = true
		}
	}
	return nearest, found
}

// Every index in {0..count-1} must appear in exactly one leaf.
func checkPartition(root *bvh.Node, count int) error {
	seen := make(map[int]int)
	var walk func(n *bvh.Node)
	walk = func(n *bvh.Node) {
		if n.IsLeaf() {
			for _, idx := range n.Primitives {
				seen[idx]++
			}
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(root)

	if len(seen) != count {
		return fmt.Errorf("leaves hold %d distinct indices, want %d", len(seen), count)
	}
	for idx, times := range seen {
		if idx < 0 || idx >= count {
			return fmt.Errorf("leaf index %d out of range", idx)
		}
		if times != 1 {
			return fmt.Errorf("index %d stored %d times", idx, times)
		}
	}
	return nil
}

// Every node's box must be the exact union of the boxes beneath it.
func checkTightness(n *bvh.Node, spheres []sphere) error {
	want := bvh.EmptyAABB()
	if n.IsLeaf() {
		for _, idx := range n.Primitives {
			want = want.Grow(spheres[idx].AABB())
		}
	} else {
		if err := checkTightness(n.Left, spheres); err != nil {
			return err
		}
		if err := checkTightness(n.Right, spheres); err != nil {
			return err
		}
		want = n.Left.Bounds.Grow(n.Right.Bounds)
	}

	if n.Bounds != want {
		return fmt.Errorf("node box %v not the union of its contents %v", n.Bounds, want)
	}
	return nil
}
