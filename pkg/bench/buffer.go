// Package bench provides the vecbench measurement harness: a contiguous
// int32 sample buffer, a registry of branch-free elementwise transforms,
// and a runner that times repeated in-place passes over the buffer.
package bench

// NewBuffer allocates a sample buffer of the given length with every
// element set to fill. The buffer is contiguous and exclusively owned by
// the caller; the runner mutates it in place and never reallocates it.
func NewBuffer(size int, fill int32) []int32 {
	buf := make([]int32, size)
	if fill == 0 {
		return buf
	}
	for i := range buf {
		buf[i] = fill
	}
	return buf
}
