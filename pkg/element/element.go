package element

import (
	"sort"
	"strings"

	"github.com/vango-dev/elements/pkg/schema"
	"github.com/vango-dev/elements/pkg/vdom"
)

type attribute struct {
	name  string
	value string
}

// Element is a custom element instance. Before its tag is defined it is
// a plain element: attributes and properties are stored but nothing is
// synchronized or rendered.
type Element struct {
	tag string
	doc *Document
	def *Definition

	attrs    []attribute
	own      map[string]any
	props    map[string]any
	children []*vdom.VNode
	shadow   *ShadowRoot

	// suppress holds attributes being written by a property set; their
	// next change callback is consumed without a parse or an update.
	suppress map[string]bool

	bridge    renderBridge
	connected bool
}

func newElement(tag string, doc *Document) *Element {
	return &Element{
		tag: tag,
		doc: doc,
		own: make(map[string]any),
	}
}

// TagName returns the element's tag.
func (e *Element) TagName() string { return e.tag }

// Definition returns the element's class, or nil before upgrade.
func (e *Element) Definition() *Definition { return e.def }

// IsDefined reports whether the element has been upgraded.
func (e *Element) IsDefined() bool { return e.def != nil }

// IsConnected reports whether the element is in a document.
func (e *Element) IsConnected() bool { return e.connected }

// IsMounted reports whether the element holds a live render handle.
func (e *Element) IsMounted() bool { return e.bridge.mounted }

// Document returns the document that created or adopted the element.
func (e *Element) Document() *Document { return e.doc }

// ShadowRoot returns the element's open shadow root. Closed roots and
// light elements return nil.
func (e *Element) ShadowRoot() *ShadowRoot {
	if e.shadow == nil || e.shadow.mode != ShadowOpen {
		return nil
	}
	return e.shadow
}

// Container returns where the renderer renders: the shadow root when one
// is attached, otherwise the element.
func (e *Element) Container() Container {
	if e.shadow != nil {
		return e.shadow
	}
	return e
}

// Host implements Container.
func (e *Element) Host() *Element { return e }

// Children implements Container.
func (e *Element) Children() []*vdom.VNode { return e.children }

// ReplaceChildren implements Container.
func (e *Element) ReplaceChildren(nodes ...*vdom.VNode) {
	e.children = append([]*vdom.VNode(nil), nodes...)
}

// GetAttribute returns the value of an attribute.
func (e *Element) GetAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// HasAttribute reports whether an attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.GetAttribute(name)
	return ok
}

// Attributes returns the attributes in insertion order as name/value pairs.
func (e *Element) Attributes() [][2]string {
	out := make([][2]string, len(e.attrs))
	for i, a := range e.attrs {
		out[i] = [2]string{a.name, a.value}
	}
	return out
}

// SetAttribute sets an attribute. For observed attributes the new value is
// parsed into its prop and the mounted tree is updated. A parse error is
// returned after the attribute was written; the prop keeps its old value.
func (e *Element) SetAttribute(name, value string) error {
	name = strings.ToLower(name)
	e.writeAttr(name, value)
	return e.attributeChanged(name, &value)
}

// RemoveAttribute removes an attribute. Removing an observed attribute
// unsets its prop.
func (e *Element) RemoveAttribute(name string) error {
	name = strings.ToLower(name)
	for i, a := range e.attrs {
		if a.name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return e.attributeChanged(name, nil)
		}
	}
	return nil
}

func (e *Element) writeAttr(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].name == name {
			e.attrs[i].value = value
			return
		}
	}
	e.attrs = append(e.attrs, attribute{name: name, value: value})
}

// Get returns a property: the typed value of a declared prop or an own
// property stored by Set.
func (e *Element) Get(name string) (any, bool) {
	if e.def != nil {
		if _, ok := e.def.schema.Lookup(name); ok {
			v, ok := e.props[name]
			return v, ok
		}
	}
	v, ok := e.own[name]
	return v, ok
}

// Set assigns a property. A declared prop is normalized, reflected to its
// attribute and pushed to the mounted tree with a single update; a nil
// value unsets it. Any other name is stored as an own property: it is
// passed to the renderer with the next bag but is never reflected and
// does not trigger a render.
func (e *Element) Set(name string, value any) error {
	if e.def != nil {
		if d, ok := e.def.schema.Lookup(name); ok {
			return e.setProp(d, value)
		}
	}
	e.own[name] = value
	return nil
}

// Delete removes an own property or unsets a declared prop.
func (e *Element) Delete(name string) error {
	if e.def != nil {
		if d, ok := e.def.schema.Lookup(name); ok {
			return e.setProp(d, nil)
		}
	}
	delete(e.own, name)
	return nil
}

// OwnProperties returns the names of undeclared properties in sorted order.
func (e *Element) OwnProperties() []string {
	names := make([]string, 0, len(e.own))
	for name := range e.own {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Props returns the bag the renderer receives: declared props that are set
// merged with own properties.
func (e *Element) Props() Props {
	bag := make(Props, len(e.props)+len(e.own))
	for k, v := range e.own {
		bag[k] = v
	}
	for k, v := range e.props {
		bag[k] = v
	}
	return bag
}

func (e *Element) setProp(d schema.Descriptor, value any) error {
	if value == nil {
		delete(e.props, d.PropName)
		if e.HasAttribute(d.AttrName) {
			e.suppress[d.AttrName] = true
			if err := e.RemoveAttribute(d.AttrName); err != nil {
				return err
			}
		}
		return e.bridge.update(e.Props())
	}

	v, attr, reflect, err := e.prepare(d, value)
	if err != nil {
		return err
	}

	e.props[d.PropName] = v
	switch {
	case reflect:
		e.suppress[d.AttrName] = true
		if err := e.SetAttribute(d.AttrName, attr); err != nil {
			return err
		}
	case e.HasAttribute(d.AttrName):
		// The old attribute no longer describes the value.
		e.suppress[d.AttrName] = true
		if err := e.RemoveAttribute(d.AttrName); err != nil {
			return err
		}
	}
	return e.bridge.update(e.Props())
}

// prepare normalizes a scripted value and computes its attribute form
// without touching element state.
func (e *Element) prepare(d schema.Descriptor, value any) (v any, attr string, reflect bool, err error) {
	t := e.def.transform(d.Kind)
	v = value
	if t.Normalize != nil {
		if v, err = t.Normalize(value, e); err != nil {
			return nil, "", false, err
		}
	}
	if t.Stringify != nil && v != nil {
		if attr, reflect, err = t.Stringify(v); err != nil {
			return nil, "", false, err
		}
	}
	return v, attr, reflect, nil
}

func (e *Element) attributeChanged(name string, value *string) error {
	if e.def == nil {
		return nil
	}
	d, ok := e.def.schema.ByAttr(name)
	if !ok {
		return nil
	}
	if e.suppress[name] {
		delete(e.suppress, name)
		return nil
	}

	if value == nil {
		delete(e.props, d.PropName)
	} else {
		v, err := e.def.transform(d.Kind).Parse(*value, e)
		if err != nil {
			return err
		}
		e.props[d.PropName] = v
	}
	return e.bridge.update(e.Props())
}

// upgrade turns a plain element into an instance of def. Present observed
// attributes are parsed, then own properties named like declared props are
// applied as if set after construction. Nothing is committed unless every
// value converts.
func (e *Element) upgrade(def *Definition) error {
	if e.def != nil {
		return nil
	}

	props := make(map[string]any, def.schema.Len())
	for _, d := range def.schema.Descriptors() {
		raw, ok := e.GetAttribute(d.AttrName)
		if !ok {
			continue
		}
		v, err := def.transform(d.Kind).Parse(raw, e)
		if err != nil {
			return err
		}
		props[d.PropName] = v
	}

	type reflection struct {
		attr, value string
	}
	var reflections []reflection
	var moved []string
	for _, d := range def.schema.Descriptors() {
		value, ok := e.own[d.PropName]
		if !ok {
			continue
		}
		moved = append(moved, d.PropName)
		if value == nil {
			delete(props, d.PropName)
			continue
		}
		t := def.transform(d.Kind)
		v := value
		if t.Normalize != nil {
			var err error
			if v, err = t.Normalize(value, e); err != nil {
				return err
			}
		}
		if t.Stringify != nil && v != nil {
			s, ok, err := t.Stringify(v)
			if err != nil {
				return err
			}
			if ok {
				reflections = append(reflections, reflection{attr: d.AttrName, value: s})
			}
		}
		props[d.PropName] = v
	}

	e.def = def
	e.props = props
	e.suppress = make(map[string]bool)
	e.bridge = renderBridge{renderer: def.renderer, logger: def.logger, tag: e.tag}
	if def.shadow != ShadowNone {
		e.shadow = &ShadowRoot{host: e, mode: def.shadow}
	}
	for _, name := range moved {
		delete(e.own, name)
	}
	for _, r := range reflections {
		e.writeAttr(r.attr, r.value)
	}

	def.logger.Debug("upgrade", "tag", e.tag, "props", len(props), "shadow", string(def.shadow))
	return nil
}

func (e *Element) connectedCallback() error {
	return e.bridge.mount(e.Container(), e.Props())
}

func (e *Element) disconnectedCallback() error {
	return e.bridge.unmount()
}

var _ Container = (*Element)(nil)
var _ Container = (*ShadowRoot)(nil)
