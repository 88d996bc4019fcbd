package bench

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltinKernels(t *testing.T) {
	tests := []struct {
		name   string
		in     []int32
		want   []int32
		growth int32
	}{
		{name: "double", in: []int32{1, 2, 3, -4, 0}, want: []int32{2, 4, 6, -8, 0}, growth: 2},
		{name: "scale3", in: []int32{1, 2, -3, 0}, want: []int32{3, 6, -9, 0}, growth: 3},
		{name: "triad", in: []int32{1, 2, -3, 0}, want: []int32{3, 6, -9, 0}, growth: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tr, ok := Lookup(tc.name)
			require.True(t, ok)
			require.Equal(t, tc.name, tr.Name)
			require.Equal(t, tc.growth, tr.Growth)

			buf := append([]int32(nil), tc.in...)
			tr.Apply(buf)
			require.Equal(t, tc.want, buf)
		})
	}
}

func TestKernelsAreDeterministic(t *testing.T) {
	// Two identical buffers transformed separately must agree exactly.
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			tr, ok := Lookup(name)
			require.True(t, ok)

			a := NewBuffer(257, 5) // odd length to cover any tail handling
			b := NewBuffer(257, 5)
			tr.Apply(a)
			tr.Apply(b)
			require.Equal(t, a, b)
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("no-such-kernel")
	require.False(t, ok)
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	require.Contains(t, names, "double")
	require.Contains(t, names, "scale3")
	require.Contains(t, names, "triad")
	require.IsIncreasing(t, names)
}

func TestRegisterRejectsInvalid(t *testing.T) {
	noop := func([]int32) {}

	require.ErrorContains(t, Register(Transform{Growth: 1, Apply: noop}), "no name")
	require.ErrorContains(t, Register(Transform{Name: "t-nil", Growth: 1}), "no kernel")
	require.ErrorContains(t, Register(Transform{Name: "t-growth", Growth: 0, Apply: noop}), "invalid growth")
	require.ErrorContains(t, Register(Transform{Name: "double", Growth: 2, Apply: noop}), "already registered")
}
