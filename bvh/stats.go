package bvh

// Stats describe the shape of a built tree.
type Stats struct {
	Nodes      int
	Leafs      int
	MaxDepth   int
	Primitives int

	// Largest number of indices stored in a single leaf.
	MaxLeafSize int
}

// Stats walks the tree and collects shape statistics. The walk happens
// after construction so the parallel build path needs no shared counters.
func (t *Tree[T]) Stats() Stats {
	var s Stats
	collectStats(t.Root, 0, &s)
	return s
}

func collectStats(n *Node, depth int, s *Stats) {
	s.Nodes++
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}

	if n.IsLeaf() {
		s.Leafs++
		s.Primitives += len(n.Primitives)
		if len(n.Primitives) > s.MaxLeafSize {
			s.MaxLeafSize = len(n.Primitives)
		}
		return
	}

	collectStats(n.Left, depth+1, s)
	collectStats(n.Right, depth+1, s)
}
