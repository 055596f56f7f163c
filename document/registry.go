package document

import (
	"fmt"
	"sort"
)

// BuildFunc constructs a fragment class extension around a base fragment.
// The returned value is exposed via Fragment.Extension; it must not
// violate the base fragment contract.
type BuildFunc func(f *Fragment) any

// Registry maps schema fragment class tags to extension builders.
type Registry struct {
	builders map[string]BuildFunc
}

func NewRegistry() *Registry {
	return &Registry{
		builders: map[string]BuildFunc{},
	}
}

// Register binds a fragment class tag to a builder, replacing any prior
// binding.
func (r *Registry) Register(name string, build BuildFunc) {
	r.builders[name] = build
}

// Classes returns the registered class tags in sorted order.
func (r *Registry) Classes() []string {
	res := make([]string, 0, len(r.builders))
	for name := range r.builders {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (r *Registry) build(name string, f *Fragment) (any, error) {
	build, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFragmentClass, name)
	}
	return build(f), nil
}

var defaultRegistry = NewRegistry()

// Register binds a fragment class tag in the default registry shared by
// documents constructed without WithRegistry.
func Register(name string, build BuildFunc) {
	defaultRegistry.Register(name, build)
}
