package transform

import (
	"errors"
	"sort"
	"sync"
)

// ErrNotCallable is returned when calling a Function with no body.
var ErrNotCallable = errors.New("transform: function is not callable")

// Func is a callable held by a function prop. this is the element the
// function is bound to.
type Func func(this any, args ...any) any

// Function is a named callable bound to a host element.
type Function struct {
	// Name is the declared name reflected to the attribute. Anonymous
	// functions have an empty name and are never reflected.
	Name string

	// Fn is the function body.
	Fn Func

	this any
}

// NewFunction creates an unbound named function.
func NewFunction(name string, fn Func) *Function {
	return &Function{Name: name, Fn: fn}
}

// Bind returns a copy of f whose receiver is this.
func (f *Function) Bind(this any) *Function {
	return &Function{Name: f.Name, Fn: f.Fn, this: this}
}

// This returns the receiver f is bound to.
func (f *Function) This() any {
	return f.this
}

// Call invokes the function with its bound receiver.
func (f *Function) Call(args ...any) (any, error) {
	if f == nil || f.Fn == nil {
		return nil, ErrNotCallable
	}
	return f.Fn(f.this, args...), nil
}

// Resolver resolves a global function name.
type Resolver interface {
	Resolve(name string) (Func, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name string) (Func, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(name string) (Func, bool) {
	return f(name)
}

// Globals is a concurrency-safe namespace of named functions.
type Globals struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// DefaultGlobals is the namespace used by registries created without
// WithResolver.
var DefaultGlobals = NewGlobals()

// NewGlobals creates an empty namespace.
func NewGlobals() *Globals {
	return &Globals{funcs: make(map[string]Func)}
}

// Register binds name to fn, replacing any previous binding.
func (g *Globals) Register(name string, fn Func) {
	g.mu.Lock()
	g.funcs[name] = fn
	g.mu.Unlock()
}

// Unregister removes name.
func (g *Globals) Unregister(name string) {
	g.mu.Lock()
	delete(g.funcs, name)
	g.mu.Unlock()
}

// Resolve implements Resolver.
func (g *Globals) Resolve(name string) (Func, bool) {
	g.mu.RLock()
	fn, ok := g.funcs[name]
	g.mu.RUnlock()
	return fn, ok && fn != nil
}

// Names returns the registered names in sorted order.
func (g *Globals) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.funcs))
	for name := range g.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func functionTransform(resolver Resolver) Transform {
	return Transform{
		Stringify: func(value any) (string, bool, error) {
			switch v := value.(type) {
			case *Function:
				if v == nil || v.Name == "" {
					return "", false, nil
				}
				return v.Name, true, nil
			case nil, Func, func(any, ...any) any:
				return "", false, nil
			}
			return "", false, typeError(KindFunction, value)
		},
		Parse: func(raw string, host any) (any, error) {
			if resolver == nil {
				return nil, nil
			}
			fn, ok := resolver.Resolve(raw)
			if !ok {
				// An unknown name is an undefined callable, not an error.
				return nil, nil
			}
			return &Function{Name: raw, Fn: fn, this: host}, nil
		},
		Normalize: func(value any, host any) (any, error) {
			switch v := value.(type) {
			case nil:
				return nil, nil
			case *Function:
				if v == nil {
					return nil, nil
				}
				return v.Bind(host), nil
			case Func:
				return &Function{Fn: v, this: host}, nil
			case func(any, ...any) any:
				return &Function{Fn: v, this: host}, nil
			}
			return nil, typeError(KindFunction, value)
		},
	}
}
