// Package schema resolves prop declarations into attribute descriptors.
package schema

import (
	stderrors "errors"
	"sort"
	"strings"
	"unicode"

	"github.com/vango-dev/elements/internal/errors"
	"github.com/vango-dev/elements/pkg/transform"
)

// ErrConfig is wrapped by every error Resolve returns.
var ErrConfig = stderrors.New("invalid element configuration")

// Prop declares one prop and its kind.
type Prop struct {
	Name string
	Kind transform.Kind
}

// Declaration is the caller-supplied prop list of an element.
type Declaration struct {
	props []Prop
}

// Names declares string props in order.
func Names(names ...string) Declaration {
	props := make([]Prop, len(names))
	for i, n := range names {
		props[i] = Prop{Name: n, Kind: transform.KindString}
	}
	return Declaration{props: props}
}

// Typed declares props with explicit kinds, in order.
func Typed(props ...Prop) Declaration {
	return Declaration{props: append([]Prop(nil), props...)}
}

// Map declares props from a name to kind mapping, ordered by name.
func Map(m map[string]transform.Kind) Declaration {
	props := make([]Prop, 0, len(m))
	for name, kind := range m {
		props = append(props, Prop{Name: name, Kind: kind})
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	return Declaration{props: props}
}

// Props returns a copy of the declared props.
func (d Declaration) Props() []Prop {
	return append([]Prop(nil), d.props...)
}

// Descriptor is a resolved prop.
type Descriptor struct {
	PropName string
	AttrName string
	Kind     transform.Kind
}

// Schema is the immutable, ordered descriptor list of an element.
type Schema struct {
	descriptors []Descriptor
	byProp      map[string]int
	byAttr      map[string]int
}

// Resolve validates decl against reg and builds its Schema.
func Resolve(decl Declaration, reg *transform.Registry) (*Schema, error) {
	s := &Schema{
		descriptors: make([]Descriptor, 0, len(decl.props)),
		byProp:      make(map[string]int, len(decl.props)),
		byAttr:      make(map[string]int, len(decl.props)),
	}

	for _, p := range decl.props {
		if !isIdentifier(p.Name) {
			return nil, errors.New("E204").
				WithDetailf("%q is not a valid property name", p.Name).
				Wrap(ErrConfig)
		}
		if _, dup := s.byProp[p.Name]; dup {
			return nil, errors.New("E204").
				WithDetailf("prop %q is declared twice", p.Name).
				Wrap(ErrConfig)
		}
		if !reg.Has(p.Kind) {
			return nil, errors.New("E200").
				WithDetailf("prop %q declares type %q", p.Name, p.Kind).
				WithSuggestion("Use one of: " + kindList(reg)).
				Wrap(ErrConfig)
		}

		attr := AttrName(p.Name)
		if i, clash := s.byAttr[attr]; clash {
			return nil, errors.New("E205").
				WithDetailf("props %q and %q both map to attribute %q", s.descriptors[i].PropName, p.Name, attr).
				Wrap(ErrConfig)
		}

		s.byProp[p.Name] = len(s.descriptors)
		s.byAttr[attr] = len(s.descriptors)
		s.descriptors = append(s.descriptors, Descriptor{PropName: p.Name, AttrName: attr, Kind: p.Kind})
	}

	return s, nil
}

// Descriptors returns the descriptors in declaration order.
func (s *Schema) Descriptors() []Descriptor {
	return append([]Descriptor(nil), s.descriptors...)
}

// Lookup returns the descriptor of a prop.
func (s *Schema) Lookup(prop string) (Descriptor, bool) {
	i, ok := s.byProp[prop]
	if !ok {
		return Descriptor{}, false
	}
	return s.descriptors[i], true
}

// ByAttr returns the descriptor observing an attribute.
func (s *Schema) ByAttr(attr string) (Descriptor, bool) {
	i, ok := s.byAttr[attr]
	if !ok {
		return Descriptor{}, false
	}
	return s.descriptors[i], true
}

// ObservedAttributes returns the attribute names in declaration order.
func (s *Schema) ObservedAttributes() []string {
	attrs := make([]string, len(s.descriptors))
	for i, d := range s.descriptors {
		attrs[i] = d.AttrName
	}
	return attrs
}

// Len returns the number of declared props.
func (s *Schema) Len() int {
	return len(s.descriptors)
}

// AttrName converts a camelCase prop name to its kebab-case attribute:
// numProp becomes num-prop. A leading capital is lowercased without a dash.
// Letters are lowercased the way attribute names are, so non-ASCII
// capitals map too: fooÄ becomes foo-ä.
func AttrName(prop string) string {
	var b strings.Builder
	b.Grow(len(prop) + 4)
	for i, r := range prop {
		if lower := unicode.ToLower(r); lower != r {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(lower)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PropName converts a kebab-case attribute to camelCase: num-prop becomes
// numProp. It inverts AttrName for names without a leading capital.
func PropName(attr string) string {
	var b strings.Builder
	b.Grow(len(attr))
	upper := false
	for _, r := range attr {
		if r == '-' {
			upper = true
			continue
		}
		if upper && unicode.IsLower(r) {
			r = unicode.ToUpper(r)
		}
		upper = false
		b.WriteRune(r)
	}
	return b.String()
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$':
		case unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func kindList(reg *transform.Registry) string {
	kinds := reg.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
