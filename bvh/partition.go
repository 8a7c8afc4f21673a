package bvh

// partition reorders indices in place so that every element satisfying pred
// precedes every element that does not, and returns the size of the left
// side. Single pass with two pointers; relative order within each side is
// not preserved. A result of 0 or len(indices) means the predicate failed
// to separate the slice.
func partition(indices []int, pred func(int) bool) int {
	left, right := 0, len(indices)
	for left < right {
		if pred(indices[left]) {
			left++
			continue
		}
		right--
		indices[left], indices[right] = indices[right], indices[left]
	}
	return left
}
