package element

import (
	"testing"

	"github.com/vango-dev/elements/pkg/schema"
	"github.com/vango-dev/elements/pkg/transform"
)

type call struct {
	op        string
	container Container
	handle    Handle
	props     Props
}

// recorder is a Renderer that records every call.
type recorder struct {
	calls      []call
	next       int
	mountErr   error
	updateErr  error
	unmountErr error
}

type token struct{ id int }

func (r *recorder) Mount(c Container, props Props) (Handle, error) {
	r.calls = append(r.calls, call{op: "mount", container: c, props: props})
	if r.mountErr != nil {
		return nil, r.mountErr
	}
	r.next++
	return &token{id: r.next}, nil
}

func (r *recorder) Update(h Handle, props Props) error {
	r.calls = append(r.calls, call{op: "update", handle: h, props: props})
	return r.updateErr
}

func (r *recorder) Unmount(h Handle) error {
	r.calls = append(r.calls, call{op: "unmount", handle: h})
	return r.unmountErr
}

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func (r *recorder) last() call {
	if len(r.calls) == 0 {
		return call{}
	}
	return r.calls[len(r.calls)-1]
}

func (r *recorder) reset() {
	r.calls = nil
}

// setup defines tag with the given options and returns a fresh document.
func setup(t *testing.T, tag string, opts Options) (*Document, *recorder) {
	t.Helper()
	rec := &recorder{}
	if opts.Transforms == nil {
		opts.Transforms = transform.NewRegistry(transform.WithResolver(transform.NewGlobals()))
	}
	def, err := NewDefinition(rec, opts)
	if err != nil {
		t.Fatalf("NewDefinition() error: %v", err)
	}
	reg := NewRegistry()
	if err := reg.Define(tag, def); err != nil {
		t.Fatalf("Define() error: %v", err)
	}
	return NewDocument(reg), rec
}

func mustCreate(t *testing.T, doc *Document, tag string, attrs ...string) *Element {
	t.Helper()
	el, err := doc.CreateElement(tag)
	if err != nil {
		t.Fatalf("CreateElement(%s) error: %v", tag, err)
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		if err := el.SetAttribute(attrs[i], attrs[i+1]); err != nil {
			t.Fatalf("SetAttribute(%s) error: %v", attrs[i], err)
		}
	}
	return el
}

func mustGet(t *testing.T, el *Element, name string) any {
	t.Helper()
	v, ok := el.Get(name)
	if !ok {
		t.Fatalf("property %q is unset", name)
	}
	return v
}

func mustAttr(t *testing.T, el *Element, name string) string {
	t.Helper()
	v, ok := el.GetAttribute(name)
	if !ok {
		t.Fatalf("attribute %q is missing", name)
	}
	return v
}

var allKinds = schema.Typed(
	schema.Prop{Name: "text", Kind: transform.KindString},
	schema.Prop{Name: "numProp", Kind: transform.KindNumber},
	schema.Prop{Name: "boolProp", Kind: transform.KindBoolean},
	schema.Prop{Name: "arrProp", Kind: transform.KindArray},
	schema.Prop{Name: "csvProp", Kind: transform.KindArray},
	schema.Prop{Name: "emptycsvProp", Kind: transform.KindArray},
	schema.Prop{Name: "objProp", Kind: transform.KindJSON},
	schema.Prop{Name: "objectProp", Kind: transform.KindObject},
	schema.Prop{Name: "funcProp", Kind: transform.KindFunction},
)
