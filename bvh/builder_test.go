package bvh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/halcyon-engine/go-bvh/types"
)

// testSphere implements Primitive for the builder and traversal tests.
type testSphere struct {
	center types.Vec3
	radius float32
}

func (s testSphere) AABB() AABB {
	r := types.XYZ(s.radius, s.radius, s.radius)
	return NewAABB(s.center.Sub(r), s.center.Add(r))
}

func (s testSphere) Center() types.Vec3 {
	return s.center
}

func (s testSphere) Intersect(origin, dir types.Vec3) (float32, bool) {
	oc := origin.Sub(s.center)
	a := dir.Dot(dir)
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - s.radius*s.radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := float32(math.Sqrt(float64(discriminant)))
	if t := (-b - sqrtD) / (2 * a); t > 1e-4 {
		return t, true
	}
	if t := (-b + sqrtD) / (2 * a); t > 1e-4 {
		return t, true
	}
	return 0, false
}

func randomTestSpheres(rng *rand.Rand, count int) []testSphere {
	spheres := make([]testSphere, count)
	for i := range spheres {
		spheres[i] = testSphere{
			center: types.XYZ(
				-10+20*rng.Float32(),
				-10+20*rng.Float32(),
				-10+20*rng.Float32(),
			),
			radius: 0.1 + 1.9*rng.Float32(),
		}
	}
	return spheres
}

func leafIndices(root *Node) []int {
	var indices []int
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsLeaf() {
			indices = append(indices, n.Primitives...)
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(root)
	return indices
}

func assertPartitionProperty(t *testing.T, root *Node, count int) {
	t.Helper()

	seen := make([]int, count)
	for _, idx := range leafIndices(root) {
		if idx < 0 || idx >= count {
			t.Fatalf("leaf index %d out of range [0, %d)", idx, count)
		}
		seen[idx]++
	}
	for idx, times := range seen {
		if times != 1 {
			t.Fatalf("expected index %d to be stored exactly once; stored %d times", idx, times)
		}
	}
}

func assertTightness(t *testing.T, n *Node, spheres []testSphere) {
	t.Helper()

	want := EmptyAABB()
	if n.IsLeaf() {
		for _, idx := range n.Primitives {
			want = want.Grow(spheres[idx].AABB())
		}
	} else {
		assertTightness(t, n.Left, spheres)
		assertTightness(t, n.Right, spheres)
		want = n.Left.Bounds.Grow(n.Right.Bounds)
	}

	if n.Bounds != want {
		t.Fatalf("expected node box %v to equal the union of its contents %v", want, n.Bounds)
	}
}

func sameTree(a, b *Node) bool {
	if a.IsLeaf() != b.IsLeaf() || a.Bounds != b.Bounds {
		return false
	}
	if a.IsLeaf() {
		if len(a.Primitives) != len(b.Primitives) {
			return false
		}
		for i := range a.Primitives {
			if a.Primitives[i] != b.Primitives[i] {
				return false
			}
		}
		return true
	}
	return sameTree(a.Left, b.Left) && sameTree(a.Right, b.Right)
}

func TestBuildEmpty(t *testing.T) {
	tree := Build([]testSphere{})

	if !tree.Root.IsLeaf() {
		t.Fatal("expected empty build to produce a single leaf")
	}
	if len(tree.Root.Primitives) != 0 {
		t.Fatalf("expected empty leaf; got %d indices", len(tree.Root.Primitives))
	}
	if tree.Root.Bounds != EmptyAABB() {
		t.Fatalf("expected the empty sentinel box; got %v", tree.Root.Bounds)
	}
}

func TestBuildLeafThreshold(t *testing.T) {
	spheres := []testSphere{
		{center: types.XYZ(-5, 0, 0), radius: 1},
		{center: types.XYZ(0, 0, 0), radius: 1},
		{center: types.XYZ(5, 0, 0), radius: 1},
	}
	tree := Build(spheres)

	if !tree.Root.IsLeaf() {
		t.Fatal("expected a range at the leaf threshold to produce a single leaf")
	}
	assertPartitionProperty(t, tree.Root, len(spheres))
	assertTightness(t, tree.Root, spheres)
}

func TestBuildSplitsLargeRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	spheres := randomTestSpheres(rng, 100)
	tree := Build(spheres)

	if tree.Root.IsLeaf() {
		t.Fatal("expected 100 spread-out spheres to produce an internal root")
	}
	assertPartitionProperty(t, tree.Root, len(spheres))
	assertTightness(t, tree.Root, spheres)
}

func TestBuildCoincidentCentroids(t *testing.T) {
	spheres := make([]testSphere, 10)
	for i := range spheres {
		spheres[i] = testSphere{
			center: types.XYZ(1, 2, 3),
			radius: 0.5 + 0.1*float32(i),
		}
	}
	tree := Build(spheres)

	if !tree.Root.IsLeaf() {
		t.Fatal("expected coincident centroids to fall back to a single leaf")
	}
	if len(tree.Root.Primitives) != len(spheres) {
		t.Fatalf("expected all %d indices in the fallback leaf; got %d",
			len(spheres), len(tree.Root.Primitives))
	}
}

func TestBuildDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	spheres := randomTestSpheres(rng, 200)

	first := Build(spheres)
	second := Build(spheres)

	if !sameTree(first.Root, second.Root) {
		t.Fatal("expected identical trees from identical ordered input")
	}
}

func TestBuildParallelRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	spheres := randomTestSpheres(rng, 3000)
	tree := Build(spheres)

	assertPartitionProperty(t, tree.Root, len(spheres))
	assertTightness(t, tree.Root, spheres)

	// The concurrent and sequential paths must agree.
	if !sameTree(tree.Root, Build(spheres).Root) {
		t.Fatal("expected repeated large builds to produce identical trees")
	}
}
