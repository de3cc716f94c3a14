package element

import (
	stderrors "errors"
	"sort"
	"strings"
	"sync"

	"github.com/vango-dev/elements/internal/errors"
)

// reservedNames are hyphenated SVG and MathML names that cannot be custom
// elements.
var reservedNames = map[string]bool{
	"annotation-xml":   true,
	"color-profile":    true,
	"font-face":        true,
	"font-face-src":    true,
	"font-face-uri":    true,
	"font-face-format": true,
	"font-face-name":   true,
	"missing-glyph":    true,
}

// Registry maps tag names to definitions. It is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
	docs map[*Document]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]*Definition),
		docs: make(map[*Document]struct{}),
	}
}

// Define registers def under tag. A definition can be registered once.
//
// Connected elements with that tag in documents bound to the registry are
// upgraded and mounted before Define returns, on the caller's goroutine.
// Detached ones upgrade when they are appended. The definition stays
// registered when an upgrade fails; the returned error joins the failures.
func (r *Registry) Define(tag string, def *Definition) error {
	if err := r.register(tag, def); err != nil {
		return err
	}

	r.mu.RLock()
	docs := make([]*Document, 0, len(r.docs))
	for d := range r.docs {
		docs = append(docs, d)
	}
	r.mu.RUnlock()

	var errs []error
	for _, d := range docs {
		if err := d.upgrade(tag); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

func (r *Registry) register(tag string, def *Definition) error {
	if err := ValidateName(tag); err != nil {
		return err
	}
	if def == nil {
		return errors.New("E206").WithDetailf("<%s>", tag).Wrap(ErrConfig)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[tag]; exists {
		return errors.New("E203").WithDetailf("<%s>", tag).Wrap(ErrConfig)
	}
	if def.tag != "" {
		return errors.New("E203").
			WithDetailf("definition is already registered as <%s>", def.tag).
			Wrap(ErrConfig)
	}
	def.tag = tag
	r.defs[tag] = def
	return nil
}

// Get returns the definition registered under tag.
func (r *Registry) Get(tag string) (*Definition, bool) {
	r.mu.RLock()
	def, ok := r.defs[strings.ToLower(tag)]
	r.mu.RUnlock()
	return def, ok
}

// bind makes Define upgrade elements of d.
func (r *Registry) bind(d *Document) {
	r.mu.Lock()
	r.docs[d] = struct{}{}
	r.mu.Unlock()
}

func (r *Registry) unbind(d *Document) {
	r.mu.Lock()
	delete(r.docs, d)
	r.mu.Unlock()
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.defs))
	for tag := range r.defs {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ValidateName checks a custom element name: lowercase ASCII letter
// first, at least one hyphen, no uppercase letters and not reserved.
func ValidateName(tag string) error {
	invalid := func(reason string) error {
		return errors.New("E202").
			WithDetailf("%q %s", tag, reason).
			WithSuggestion(`Use a lowercase name with a hyphen, like "x-button"`).
			Wrap(ErrConfig)
	}

	if tag == "" {
		return invalid("is empty")
	}
	if tag[0] < 'a' || tag[0] > 'z' {
		return invalid("must start with a lowercase letter")
	}
	if !strings.Contains(tag, "-") {
		return invalid("must contain a hyphen")
	}
	for _, r := range tag {
		switch {
		case r >= 'A' && r <= 'Z':
			return invalid("must not contain uppercase letters")
		case r == ' ' || r == '\t' || r == '\n' || r == '/' || r == '>' || r == '<' || r == '=' || r == '"' || r == '\'':
			return invalid("contains a character not allowed in tag names")
		}
	}
	if reservedNames[tag] {
		return invalid("is reserved")
	}
	return nil
}
