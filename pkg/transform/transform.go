package transform

import (
	"errors"
	"sort"
	"sync"
)

// Kind is the type tag of a declared prop.
type Kind string

const (
	KindString   Kind = "string"
	KindNumber   Kind = "number"
	KindBoolean  Kind = "boolean"
	KindArray    Kind = "array"
	KindObject   Kind = "object"
	KindJSON     Kind = "json"
	KindFunction Kind = "function"
)

var (
	// ErrShape reports an attribute value that parsed but has the wrong shape.
	ErrShape = errors.New("value has wrong shape")

	// ErrType reports a property value whose Go type does not fit the kind.
	ErrType = errors.New("value has wrong type")
)

// Transform converts between an attribute string and a typed value.
type Transform struct {
	// Stringify returns the attribute form of value. ok is false when the
	// value has no attribute form and must not be reflected.
	Stringify func(value any) (s string, ok bool, err error)

	// Parse converts an attribute string. host is the element the value
	// is parsed for.
	Parse func(raw string, host any) (any, error)

	// Normalize validates a scripted property value and converts it to the
	// kind's canonical Go type. Nil means values are stored as given.
	Normalize func(value any, host any) (any, error)
}

// Registry maps kinds to transforms. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	transforms map[Kind]Transform
	resolver   Resolver
}

// Option configures a Registry.
type Option func(*Registry)

// WithResolver sets the resolver used by the function kind.
func WithResolver(r Resolver) Option {
	return func(reg *Registry) {
		reg.resolver = r
	}
}

// NewRegistry creates a registry holding the built-in kinds. Without
// WithResolver the function kind resolves against DefaultGlobals.
func NewRegistry(opts ...Option) *Registry {
	reg := &Registry{
		transforms: make(map[Kind]Transform),
		resolver:   DefaultGlobals,
	}
	for _, opt := range opts {
		opt(reg)
	}

	reg.transforms[KindString] = stringTransform
	reg.transforms[KindNumber] = numberTransform
	reg.transforms[KindBoolean] = booleanTransform
	reg.transforms[KindArray] = arrayTransform
	reg.transforms[KindObject] = objectTransform
	reg.transforms[KindJSON] = jsonTransform
	reg.transforms[KindFunction] = functionTransform(reg.resolver)
	return reg
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the shared registry backed by DefaultGlobals.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds or replaces the transform for kind.
func (r *Registry) Register(kind Kind, t Transform) error {
	if kind == "" {
		return errors.New("transform: empty kind")
	}
	if t.Parse == nil {
		return errors.New("transform: kind " + string(kind) + " has no Parse")
	}
	r.mu.Lock()
	r.transforms[kind] = t
	r.mu.Unlock()
	return nil
}

// Lookup returns the transform registered for kind.
func (r *Registry) Lookup(kind Kind) (Transform, bool) {
	r.mu.RLock()
	t, ok := r.transforms[kind]
	r.mu.RUnlock()
	return t, ok
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind Kind) bool {
	_, ok := r.Lookup(kind)
	return ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.transforms))
	for k := range r.transforms {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Resolver returns the resolver used by the function kind.
func (r *Registry) Resolver() Resolver {
	return r.resolver
}
