package bench

import (
	"fmt"
	"slices"

	"github.com/puzpuzpuz/xsync/v4"
)

// Transform is a named elementwise kernel applied in place to the sample
// buffer. Kernels must be pure and deterministic with no data-dependent
// branching, so repeated passes measure identical work and the loop stays
// amenable to auto-vectorization.
type Transform struct {
	// Name identifies the kernel in options and reports.
	Name string

	// Growth is the per-pass multiplicative bound on element magnitude,
	// used to reject configurations whose result would overflow int32.
	Growth int32

	// Apply runs one pass over the buffer, mutating it in place.
	Apply func(x []int32)
}

// registry holds all known transforms, keyed by name. Lookups happen from
// parallel test scenarios, so the map must be safe for concurrent reads.
var registry = xsync.NewMap[string, Transform]()

// Register adds a transform to the registry. It fails on empty names,
// nil kernels, non-positive growth factors, and duplicate names.
func Register(t Transform) error {
	if t.Name == "" {
		return fmt.Errorf("transform has no name")
	}
	if t.Apply == nil {
		return fmt.Errorf("transform %q has no kernel", t.Name)
	}
	if t.Growth < 1 {
		return fmt.Errorf("transform %q has invalid growth factor %d", t.Name, t.Growth)
	}
	if _, loaded := registry.LoadOrStore(t.Name, t); loaded {
		return fmt.Errorf("transform %q already registered", t.Name)
	}
	return nil
}

// Lookup returns the transform registered under name.
func Lookup(name string) (Transform, bool) {
	return registry.Load(name)
}

// Names returns the sorted names of all registered transforms.
func Names() []string {
	var names []string
	registry.Range(func(name string, _ Transform) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// DefaultTransform is the canonical kernel: double every element.
const DefaultTransform = "double"

func init() {
	builtins := []Transform{
		{
			Name:   DefaultTransform,
			Growth: 2,
			Apply: func(x []int32) {
				for i := range x {
					x[i] *= 2
				}
			},
		},
		{
			Name:   "scale3",
			Growth: 3,
			Apply: func(x []int32) {
				for i := range x {
					x[i] *= 3
				}
			},
		},
		{
			// STREAM-triad-shaped update with a constant scalar.
			Name:   "triad",
			Growth: 3,
			Apply: func(x []int32) {
				for i := range x {
					x[i] = x[i] + 2*x[i]
				}
			},
		},
	}
	for _, t := range builtins {
		if err := Register(t); err != nil {
			panic(err)
		}
	}
}
