package bvh

// Node is a single node of the hierarchy. Internal nodes carry two non-nil
// children and no primitive indices; leaves carry a (possibly empty) index
// list and nil children. Bounds is always the exact union of everything
// beneath the node and is never modified after construction.
type Node struct {
	Bounds AABB

	Left  *Node
	Right *Node

	// Primitives holds indices into the slice passed to Build, never
	// copies of the primitive data.
	Primitives []int
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Left == nil
}

func newLeaf(bounds AABB, indices []int) *Node {
	leaf := &Node{Bounds: bounds, Primitives: make([]int, len(indices))}
	copy(leaf.Primitives, indices)
	return leaf
}

// Tree is an immutable bounding volume hierarchy over a primitive slice.
// Build once, query from any number of goroutines; a changed scene requires
// building a new tree.
type Tree[T Primitive] struct {
	Root *Node

	// Primitives is the slice passed to Build. Hit indices point into it.
	Primitives []T
}
