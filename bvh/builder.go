package bvh

import (
	"sync"
	"time"

	"github.com/halcyon-engine/go-bvh/log"
)

const (
	// Ranges at or below this size become leaves without evaluating splits.
	maxLeafSize = 4

	// Number of equal-width buckets used when scoring split candidates.
	numBins = 12

	// Centroid bounds with every axis extent below this threshold are
	// treated as coincident and turned into a leaf.
	centroidEpsilon = 1e-6

	// Ranges larger than this build their two children concurrently.
	parallelThreshold = 1024
)

var logger = log.New("bvh")

// Build constructs a hierarchy over the given primitives using binned SAH
// splits. The slice is retained by the returned tree; hit indices point
// into it. Build is deterministic for a fixed input order and never fails:
// an empty slice yields a tree whose queries always miss.
func Build[T Primitive](primitives []T) *Tree[T] {
	tree := &Tree[T]{Primitives: primitives}
	if len(primitives) == 0 {
		tree.Root = newLeaf(EmptyAABB(), nil)
		return tree
	}

	indices := make([]int, len(primitives))
	for i := range indices {
		indices[i] = i
	}

	start := time.Now()
	tree.Root = buildRange(primitives, indices)

	stats := tree.Stats()
	logger.Debugf(
		"tree build time: %d ms, max depth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		stats.MaxDepth, stats.Nodes, stats.Leafs,
	)
	return tree
}

// Build a subtree over a working range of primitive indices. The slice is
// partitioned in place; recursive calls always receive disjoint sub-slices.
func buildRange[T Primitive](primitives []T, indices []int) *Node {
	bounds := EmptyAABB()
	for _, idx := range indices {
		bounds = bounds.Grow(primitives[idx].AABB())
	}

	count := len(indices)
	if count <= maxLeafSize {
		return newLeaf(bounds, indices)
	}

	centroidBounds := EmptyAABB()
	for _, idx := range indices {
		centroidBounds = centroidBounds.GrowPoint(primitives[idx].Center())
	}

	// Coincident centroids: no split plane can separate the range.
	extent := centroidBounds.Max.Sub(centroidBounds.Min)
	if extent.MaxComponent() < centroidEpsilon {
		return newLeaf(bounds, indices)
	}

	bestCost := inf
	bestAxis := 0
	var bestSplit float32

	for axis := 0; axis < 3; axis++ {
		axisLen := extent[axis]
		if axisLen < centroidEpsilon {
			continue
		}

		var bins [numBins]AABB
		var binCounts [numBins]int
		for i := range bins {
			bins[i] = EmptyAABB()
		}

		axisMin := centroidBounds.Min[axis]
		scale := float32(numBins) / axisLen

		for _, idx := range indices {
			p := primitives[idx].Center()
			bin := int((p[axis] - axisMin) * scale)
			if bin < 0 {
				bin = 0
			} else if bin > numBins-1 {
				bin = numBins - 1
			}
			bins[bin] = bins[bin].Grow(primitives[idx].AABB())
			binCounts[bin]++
		}

		// Prefix sweep: area and count of everything left of each of the
		// numBins-1 candidate planes.
		var leftArea [numBins - 1]float32
		var leftCount [numBins - 1]int
		acc := EmptyAABB()
		accCount := 0
		for i := 0; i < numBins-1; i++ {
			acc = acc.Grow(bins[i])
			accCount += binCounts[i]
			leftArea[i] = acc.SurfaceArea()
			leftCount[i] = accCount
		}

		// Suffix sweep scores each plane as it accumulates the right side.
		acc = EmptyAABB()
		accCount = 0
		for i := numBins - 2; i >= 0; i-- {
			acc = acc.Grow(bins[i+1])
			accCount += binCounts[i+1]

			if leftCount[i] == 0 || accCount == 0 {
				continue
			}

			cost := leftArea[i]*float32(leftCount[i]) + acc.SurfaceArea()*float32(accCount)
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestSplit = axisMin + float32(i+1)/scale
			}
		}
	}

	// No candidate beats testing every primitive in this node directly.
	leafCost := bounds.SurfaceArea() * float32(count)
	if bestCost >= leafCost {
		return newLeaf(bounds, indices)
	}

	split := partition(indices, func(idx int) bool {
		return primitives[idx].Center()[bestAxis] < bestSplit
	})

	// Float ties near a bin boundary can push every centroid to one side
	// of the plane; recursing would never terminate.
	if split == 0 || split == count {
		return newLeaf(bounds, indices)
	}

	leftIndices := indices[:split]
	rightIndices := indices[split:]

	var left, right *Node
	if count > parallelThreshold {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			left = buildRange(primitives, leftIndices)
		}()
		right = buildRange(primitives, rightIndices)
		wg.Wait()
	} else {
		left = buildRange(primitives, leftIndices)
		right = buildRange(primitives, rightIndices)
	}

	return &Node{
		Bounds: left.Bounds.Grow(right.Bounds),
		Left:   left,
		Right:  right,
	}
}
