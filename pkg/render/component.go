package render

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/goccy/go-json"

	"github.com/vango-dev/elements/pkg/element"
	"github.com/vango-dev/elements/pkg/transform"
	"github.com/vango-dev/elements/pkg/vdom"
)

// ComponentFunc renders a prop bag to a node tree.
type ComponentFunc func(props element.Props) *vdom.VNode

// ComponentRenderer is an element.Renderer that renders a ComponentFunc
// into the element's container. Each Mount returns a new *Instance.
type ComponentRenderer struct {
	render ComponentFunc
}

// Component returns a renderer for fn.
func Component(fn ComponentFunc) *ComponentRenderer {
	return &ComponentRenderer{render: fn}
}

// Instance is the handle of one mounted component tree.
type Instance struct {
	container element.Container
	renders   int
}

// Container returns the container the instance renders into.
func (i *Instance) Container() element.Container { return i.container }

// Renders returns how many times the instance has rendered.
func (i *Instance) Renders() int { return i.renders }

// Mount implements element.Renderer.
func (c *ComponentRenderer) Mount(container element.Container, props element.Props) (element.Handle, error) {
	inst := &Instance{container: container}
	inst.render(c.render, props)
	return inst, nil
}

// Update implements element.Renderer.
func (c *ComponentRenderer) Update(handle element.Handle, props element.Props) error {
	inst, err := instance(handle)
	if err != nil {
		return err
	}
	inst.render(c.render, props)
	return nil
}

// Unmount implements element.Renderer. The container is emptied.
func (c *ComponentRenderer) Unmount(handle element.Handle) error {
	inst, err := instance(handle)
	if err != nil {
		return err
	}
	inst.container.ReplaceChildren()
	return nil
}

func (i *Instance) render(fn ComponentFunc, props element.Props) {
	i.renders++
	i.container.ReplaceChildren(fn(props))
}

func instance(handle element.Handle) (*Instance, error) {
	inst, ok := handle.(*Instance)
	if !ok || inst == nil {
		return nil, fmt.Errorf("render: handle %T was not returned by Mount", handle)
	}
	return inst, nil
}

// PropsTable returns a component listing the prop bag as a table, one row
// per prop in name order. It is the default renderer of manifest elements.
func PropsTable(tag string) ComponentFunc {
	return func(props element.Props) *vdom.VNode {
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)

		rows := make([]*vdom.VNode, 0, len(names))
		for _, name := range names {
			v := props[name]
			rows = append(rows, vdom.H("tr",
				vdom.A("data-prop", name),
				vdom.H("th", name),
				vdom.H("td", vdom.A("data-type", TypeOf(v)), Value(v)),
			))
		}
		return vdom.H("table", vdom.Class("props"),
			vdom.H("caption", tag),
			rows,
		)
	}
}

// TypeOf names the kind of a prop value the way scripts would see it.
func TypeOf(v any) string {
	switch v.(type) {
	case nil:
		return "undefined"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case *transform.Function, transform.Func:
		return "function"
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Func:
		return "function"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return "object"
}

// Value formats a prop value for display: numbers the way attributes
// show them, functions by name, and structured values as JSON.
func Value(v any) string {
	switch x := v.(type) {
	case nil:
		return "undefined"
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return transform.FormatNumber(x)
	case *transform.Function:
		if x == nil {
			return "undefined"
		}
		return "function " + x.Name + "()"
	}
	if f, ok := toNumber(v); ok {
		return transform.FormatNumber(f)
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return "function()"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func toNumber(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32:
		return rv.Float(), true
	}
	return 0, false
}
