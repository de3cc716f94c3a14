package element

import (
	stderrors "errors"
	"strings"
)

// Document holds connected elements and creates elements by tag.
type Document struct {
	registry *Registry
	elements []*Element
}

// NewDocument creates an empty document resolving tags through registry.
// The document stays bound to the registry until Close, so later Define
// calls upgrade its elements.
func NewDocument(registry *Registry) *Document {
	if registry == nil {
		registry = NewRegistry()
	}
	d := &Document{registry: registry}
	registry.bind(d)
	return d
}

// Registry returns the document's element registry.
func (d *Document) Registry() *Registry { return d.registry }

// CreateElement creates a detached element. When the tag is defined the
// element is constructed immediately; otherwise it stays a plain element
// until upgraded.
func (d *Document) CreateElement(tag string) (*Element, error) {
	tag = strings.ToLower(tag)
	el := newElement(tag, d)
	if def, ok := d.registry.Get(tag); ok {
		if err := el.upgrade(def); err != nil {
			return nil, err
		}
	}
	return el, nil
}

// Append connects el. Undefined elements whose tag has since been defined
// are upgraded first. A defined element mounts its renderer; if Mount
// fails the element stays connected but unmounted. Appending a connected
// element again is a no-op.
func (d *Document) Append(el *Element) error {
	if el.connected {
		if el.doc == d {
			return nil
		}
		if err := el.doc.Remove(el); err != nil {
			return err
		}
	}

	el.doc = d
	d.registry.bind(d)
	if el.def == nil {
		if def, ok := d.registry.Get(el.tag); ok {
			if err := el.upgrade(def); err != nil {
				return err
			}
		}
	}

	el.connected = true
	d.elements = append(d.elements, el)
	if el.def == nil {
		return nil
	}
	return el.connectedCallback()
}

// Remove disconnects el, unmounting it if it was mounted.
func (d *Document) Remove(el *Element) error {
	if !el.connected || el.doc != d {
		return nil
	}
	for i, c := range d.elements {
		if c == el {
			d.elements = append(d.elements[:i], d.elements[i+1:]...)
			break
		}
	}
	el.connected = false
	if el.def == nil {
		return nil
	}
	return el.disconnectedCallback()
}

// Upgrade upgrades and mounts connected elements whose tags have been
// defined since they were created. Every element is attempted; the
// returned error joins the failures.
func (d *Document) Upgrade() error {
	return d.upgrade("")
}

// upgrade upgrades connected elements with tag, or every pending element
// when tag is empty.
func (d *Document) upgrade(tag string) error {
	var errs []error
	for _, el := range d.elements {
		if el.def != nil || (tag != "" && el.tag != tag) {
			continue
		}
		def, ok := d.registry.Get(el.tag)
		if !ok {
			continue
		}
		if err := el.upgrade(def); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := el.connectedCallback(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Elements returns the connected elements in insertion order.
func (d *Document) Elements() []*Element {
	return append([]*Element(nil), d.elements...)
}

// Query returns the connected elements with the given tag.
func (d *Document) Query(tag string) []*Element {
	tag = strings.ToLower(tag)
	var out []*Element
	for _, el := range d.elements {
		if el.tag == tag {
			out = append(out, el)
		}
	}
	return out
}

// Close disconnects every element, unmounting them in reverse order, and
// unbinds the document from its registry.
func (d *Document) Close() error {
	d.registry.unbind(d)
	var errs []error
	for i := len(d.elements) - 1; i >= 0; i-- {
		el := d.elements[i]
		el.connected = false
		if el.def != nil {
			if err := el.disconnectedCallback(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	d.elements = nil
	return stderrors.Join(errs...)
}
