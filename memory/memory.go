package memory

// CopyNoOverlap copies source into target. The two slices must not share
// backing memory.
func CopyNoOverlap(source, target []byte) int {
	return copy(target, source)
}

// CopyWithOverlap copies source into target, tolerating overlap: the
// result is as if source had first been copied to a temporary buffer.
func CopyWithOverlap(source, target []byte) int {
	return copy(target, source)
}
