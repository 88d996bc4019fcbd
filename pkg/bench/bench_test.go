package bench

import (
	"fmt"
	"testing"
)

// Kernel throughput at a few buffer sizes. Useful for comparing Go
// compiler versions and GOARCH settings the same way the CLI compares
// full runs.
func BenchmarkKernels(b *testing.B) {
	sizes := []int{1 << 10, 1 << 16, 1 << 20}

	for _, name := range Names() {
		tr, ok := Lookup(name)
		if !ok {
			b.Fatalf("transform %q disappeared from registry", name)
		}
		for _, size := range sizes {
			b.Run(fmt.Sprintf("%s/n=%d", name, size), func(b *testing.B) {
				buf := NewBuffer(size, 0) // zero fill: no overflow however long the run
				b.SetBytes(int64(size) * 4)
				b.ResetTimer()
				for range b.N {
					tr.Apply(buf)
				}
			})
		}
	}
}

func BenchmarkNewBuffer(b *testing.B) {
	for range b.N {
		buf := NewBuffer(1<<20, 1)
		_ = buf
	}
}
