package bvh

import "github.com/halcyon-engine/go-bvh/types"

// Hit identifies the nearest primitive intersected by a ray.
type Hit struct {
	// Distance along the ray, in units of the direction vector's length.
	Distance float32

	// Index of the primitive in the slice passed to Build.
	Index int
}

// IntersectRay returns the closest hit along the ray, or false if the ray
// misses every primitive. The direction need not be normalized but must
// have nonzero length; callers on IEEE-754 hardware may pass directions
// with individual zero components.
//
// The tree and primitives are only read, so any number of IntersectRay
// calls may run concurrently.
func (t *Tree[T]) IntersectRay(origin, dir types.Vec3) (Hit, bool) {
	invDir := types.Vec3{1 / dir[0], 1 / dir[1], 1 / dir[2]}
	return t.intersectNode(t.Root, origin, dir, invDir, inf)
}

func (t *Tree[T]) intersectNode(n *Node, origin, dir, invDir types.Vec3, nearest float32) (Hit, bool) {
	if _, ok := n.Bounds.IntersectRay(origin, invDir, 0, nearest); !ok {
		return Hit{}, false
	}

	if n.IsLeaf() {
		var best Hit
		found := false
		for _, idx := range n.Primitives {
			dist, ok := t.Primitives[idx].Intersect(origin, dir)
			if ok && dist >= 0 && dist < nearest {
				nearest = dist
				best = Hit{Distance: dist, Index: idx}
				found = true
			}
		}
		return best, found
	}

	// Descend into the closer child box first so its hit, if any, tightens
	// the bound before the farther child is tested.
	tLeft, okLeft := n.Left.Bounds.IntersectRay(origin, invDir, 0, nearest)
	tRight, okRight := n.Right.Bounds.IntersectRay(origin, invDir, 0, nearest)

	var first, second *Node
	switch {
	case okLeft && okRight:
		if tLeft <= tRight {
			first, second = n.Left, n.Right
		} else {
			first, second = n.Right, n.Left
		}
	case okLeft:
		first, second = n.Left, n.Right
	case okRight:
		first, second = n.Right, n.Left
	default:
		return Hit{}, false
	}

	best, found := t.intersectNode(first, origin, dir, invDir, nearest)
	if found {
		nearest = best.Distance
	}

	// The second call only reports hits strictly closer than the
	// (possibly tightened) bound.
	if hit, ok := t.intersectNode(second, origin, dir, invDir, nearest); ok {
		return hit, true
	}
	return best, found
}
