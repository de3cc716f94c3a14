package element

import (
	"errors"
	"math"
	"reflect"
	"testing"

	vangoerrors "github.com/vango-dev/elements/internal/errors"
	"github.com/vango-dev/elements/pkg/schema"
	"github.com/vango-dev/elements/pkg/transform"
)

func TestMountUnmount_ShadowModes(t *testing.T) {
	tests := []struct {
		name       string
		shadow     ShadowMode
		wantShadow bool
	}{
		{"light", ShadowNone, false},
		{"open shadow", ShadowOpen, true},
		{"closed shadow", ShadowClosed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, rec := setup(t, "test-mount", Options{Shadow: tt.shadow})
			el, err := mustDef(t, doc, "test-mount").New()
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}

			if err := doc.Append(el); err != nil {
				t.Fatalf("Append() error: %v", err)
			}
			if got := rec.count("mount"); got != 1 {
				t.Fatalf("mount calls = %d, want 1", got)
			}
			if got := el.ShadowRoot() != nil; got != tt.wantShadow {
				t.Errorf("ShadowRoot() present = %v, want %v", got, tt.wantShadow)
			}

			container := rec.calls[0].container
			switch tt.shadow {
			case ShadowNone:
				if container != Container(el) {
					t.Errorf("container = %T, want the element", container)
				}
			default:
				root, ok := container.(*ShadowRoot)
				if !ok {
					t.Fatalf("container = %T, want *ShadowRoot", container)
				}
				if root.Mode() != tt.shadow || root.Host() != el {
					t.Errorf("shadow root mode %q host %p", root.Mode(), root.Host())
				}
			}

			if err := doc.Remove(el); err != nil {
				t.Fatalf("Remove() error: %v", err)
			}
			if got := rec.count("unmount"); got != 1 {
				t.Fatalf("unmount calls = %d, want 1", got)
			}
			if h, ok := rec.last().handle.(*token); !ok || h.id != 1 {
				t.Errorf("unmount handle = %v, want the mounted handle", rec.last().handle)
			}
		})
	}
}

func mustDef(t *testing.T, doc *Document, tag string) *Definition {
	t.Helper()
	def, ok := doc.Registry().Get(tag)
	if !ok {
		t.Fatalf("tag %s not defined", tag)
	}
	return def
}

func TestAttributeUpdatesProperty(t *testing.T) {
	doc, _ := setup(t, "test-button", Options{Props: schema.Names("text")})
	el := mustCreate(t, doc, "test-button", "text", "hello")

	if got := mustGet(t, el, "text"); got != "hello" {
		t.Errorf("text = %v, want hello", got)
	}
	if err := el.SetAttribute("text", "world"); err != nil {
		t.Fatalf("SetAttribute() error: %v", err)
	}
	if got := mustGet(t, el, "text"); got != "world" {
		t.Errorf("text = %v, want world", got)
	}
}

func TestPropertyUpdatesAttribute(t *testing.T) {
	doc, _ := setup(t, "test-button", Options{Props: schema.Names("text")})
	el := mustCreate(t, doc, "test-button", "text", "hello")

	if err := el.Set("text", "world"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got := mustAttr(t, el, "text"); got != "world" {
		t.Errorf("attribute text = %q, want world", got)
	}
}

func TestAllKinds_FromAttributes(t *testing.T) {
	globals := transform.NewGlobals()
	globals.Register("globalFn", func(this any, args ...any) any { return true })
	var newFuncThis any
	newFunc := transform.NewFunction("newFunc", func(this any, args ...any) any {
		newFuncThis = this
		return nil
	})

	doc, _ := setup(t, "test-button-element-property", Options{
		Props:      allKinds,
		Transforms: transform.NewRegistry(transform.WithResolver(globals)),
	})
	el := mustCreate(t, doc, "test-button-element-property",
		"text", "hello",
		"obj-prop", `{"greeting": "hello, world"}`,
		"arr-prop", `["hello", "world"]`,
		"csv-prop", " hello,world ",
		"emptycsv-prop", "",
		"num-prop", "240",
		"bool-prop", "true",
		"func-prop", "globalFn",
	)
	if err := doc.Append(el); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	if got := mustGet(t, el, "text"); got != "hello" {
		t.Errorf("text = %v", got)
	}
	if got := mustGet(t, el, "numProp"); got != 240.0 {
		t.Errorf("numProp = %v", got)
	}
	if got := mustGet(t, el, "boolProp"); got != true {
		t.Errorf("boolProp = %v", got)
	}
	if got := mustGet(t, el, "arrProp"); !reflect.DeepEqual(got, []any{"hello", "world"}) {
		t.Errorf("arrProp = %#v", got)
	}
	if got := mustGet(t, el, "csvProp"); !reflect.DeepEqual(got, []any{"hello", "world"}) {
		t.Errorf("csvProp = %#v", got)
	}
	if got := mustGet(t, el, "emptycsvProp"); !reflect.DeepEqual(got, []any{}) {
		t.Errorf("emptycsvProp = %#v", got)
	}
	if got := mustGet(t, el, "objProp"); !reflect.DeepEqual(got, map[string]any{"greeting": "hello, world"}) {
		t.Errorf("objProp = %#v", got)
	}

	fn, ok := mustGet(t, el, "funcProp").(*transform.Function)
	if !ok {
		t.Fatalf("funcProp = %T, want *transform.Function", mustGet(t, el, "funcProp"))
	}
	if out, err := fn.Call(); err != nil || out != true {
		t.Errorf("funcProp() = %v, %v; want true", out, err)
	}

	mustSet := func(name string, v any) {
		t.Helper()
		if err := el.Set(name, v); err != nil {
			t.Fatalf("Set(%s) error: %v", name, err)
		}
	}
	mustSet("text", "world")
	mustSet("numProp", 100)
	mustSet("boolProp", false)
	mustSet("funcProp", newFunc)

	for attr, want := range map[string]string{
		"text":      "world",
		"num-prop":  "100",
		"bool-prop": "false",
		"func-prop": "newFunc",
	} {
		if got := mustAttr(t, el, attr); got != want {
			t.Errorf("attribute %s = %q, want %q", attr, got, want)
		}
	}

	bound := mustGet(t, el, "funcProp").(*transform.Function)
	if _, err := bound.Call(); err != nil {
		t.Fatalf("funcProp() error: %v", err)
	}
	if newFuncThis != el {
		t.Errorf("newFunc this = %v, want the element", newFuncThis)
	}
}

func TestUnknownFunctionNameIsUndefined(t *testing.T) {
	doc, rec := setup(t, "test-fn", Options{Props: schema.Typed(
		schema.Prop{Name: "onPick", Kind: transform.KindFunction},
	)})
	el := mustCreate(t, doc, "test-fn", "on-pick", "doesNotExist")
	if err := doc.Append(el); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	v, ok := el.Get("onPick")
	if !ok || v != nil {
		t.Errorf("onPick = %v, %v; want set to nil", v, ok)
	}
	if _, present := rec.calls[0].props["onPick"]; !present {
		t.Error("undefined callable should still be in the bag")
	}
}

func TestObjectPropHoldingFunction(t *testing.T) {
	doc, _ := setup(t, "test-object", Options{Props: schema.Typed(
		schema.Prop{Name: "objectProp", Kind: transform.KindObject},
	)})
	el := mustCreate(t, doc, "test-object")

	called := false
	if err := el.Set("objectProp", func() bool { called = true; return true }); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	fn, ok := mustGet(t, el, "objectProp").(func() bool)
	if !ok || !fn() || !called {
		t.Error("objectProp should hold the assigned func")
	}
	if el.HasAttribute("object-prop") {
		t.Error("a func has no attribute form and must not be reflected")
	}
}

func TestAnonymousFunctionDropsMarkupAttribute(t *testing.T) {
	globals := transform.NewGlobals()
	globals.Register("globalFn", func(this any, args ...any) any { return "global" })
	doc, rec := setup(t, "test-fn-anon", Options{
		Props:      schema.Typed(schema.Prop{Name: "funcProp", Kind: transform.KindFunction}),
		Transforms: transform.NewRegistry(transform.WithResolver(globals)),
	})
	el := mustCreate(t, doc, "test-fn-anon", "func-prop", "globalFn")
	if err := doc.Append(el); err != nil {
		t.Fatal(err)
	}
	rec.reset()

	anon := transform.Func(func(this any, args ...any) any { return "anon" })
	if err := el.Set("funcProp", anon); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if v, ok := el.GetAttribute("func-prop"); ok {
		t.Errorf("attribute func-prop = %q, want removed", v)
	}
	if got := rec.count("update"); got != 1 {
		t.Errorf("update calls = %d, want 1", got)
	}
	if len(el.suppress) != 0 {
		t.Errorf("suppress guard leaked: %v", el.suppress)
	}
	fn := mustGet(t, el, "funcProp").(*transform.Function)
	if out, err := fn.Call(); err != nil || out != "anon" {
		t.Errorf("funcProp() = %v, %v; want anon", out, err)
	}
}

func TestNonASCIIPropNameSyncs(t *testing.T) {
	doc, rec := setup(t, "test-umlaut", Options{Props: schema.Names("fooÄ")})
	el := mustCreate(t, doc, "test-umlaut")
	if err := doc.Append(el); err != nil {
		t.Fatal(err)
	}

	observed := mustDef(t, doc, "test-umlaut").ObservedAttributes()
	if !reflect.DeepEqual(observed, []string{"foo-ä"}) {
		t.Fatalf("ObservedAttributes() = %v, want [foo-ä]", observed)
	}

	if err := el.Set("fooÄ", "a"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got := mustAttr(t, el, "foo-ä"); got != "a" {
		t.Errorf("attribute foo-ä = %q, want a", got)
	}
	if len(el.suppress) != 0 {
		t.Errorf("suppress guard leaked: %v", el.suppress)
	}

	rec.reset()
	if err := el.SetAttribute(observed[0], "b"); err != nil {
		t.Fatalf("SetAttribute() error: %v", err)
	}
	if got := mustGet(t, el, "fooÄ"); got != "b" {
		t.Errorf("fooÄ = %v, want b", got)
	}
	if got := rec.count("update"); got != 1 {
		t.Errorf("update calls = %d, want 1", got)
	}

	// Markup may spell the attribute with capitals.
	if err := el.SetAttribute("FOO-Ä", "c"); err != nil {
		t.Fatalf("SetAttribute() error: %v", err)
	}
	if got := mustGet(t, el, "fooÄ"); got != "c" {
		t.Errorf("fooÄ = %v, want c", got)
	}
}

func TestUndeclaredPropertyFlowsIntoBag(t *testing.T) {
	doc, rec := setup(t, "test-non-prop", Options{Props: schema.Names("text")})
	el := mustCreate(t, doc, "test-non-prop")
	if err := doc.Append(el); err != nil {
		t.Fatal(err)
	}
	rec.reset()

	if err := el.Set("id", "test-button-id"); err != nil {
		t.Fatalf("Set(id) error: %v", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("undeclared property triggered %d renderer calls", len(rec.calls))
	}
	if el.HasAttribute("id") {
		t.Error("undeclared property must not synthesize an attribute")
	}
	if got := mustGet(t, el, "id"); got != "test-button-id" {
		t.Errorf("id = %v", got)
	}

	if err := el.Set("text", "hi"); err != nil {
		t.Fatal(err)
	}
	want := Props{"id": "test-button-id", "text": "hi"}
	if got := rec.last().props; !reflect.DeepEqual(got, want) {
		t.Errorf("bag = %v, want %v", got, want)
	}
	if got := el.OwnProperties(); !reflect.DeepEqual(got, []string{"id"}) {
		t.Errorf("OwnProperties() = %v", got)
	}

	if err := el.Delete("id"); err != nil {
		t.Fatal(err)
	}
	if _, ok := el.Get("id"); ok {
		t.Error("id should be deleted")
	}
}

func TestPropertySetTriggersSingleUpdate(t *testing.T) {
	doc, rec := setup(t, "test-once", Options{Props: allKinds})
	el := mustCreate(t, doc, "test-once")
	if err := doc.Append(el); err != nil {
		t.Fatal(err)
	}

	values := map[string]any{
		"text":     "x",
		"numProp":  1.5,
		"boolProp": true,
		"arrProp":  []any{"a"},
		"objProp":  map[string]any{"k": "v"},
		"funcProp": transform.NewFunction("named", func(this any, args ...any) any { return nil }),
	}
	for name, v := range values {
		rec.reset()
		if err := el.Set(name, v); err != nil {
			t.Fatalf("Set(%s) error: %v", name, err)
		}
		if got := rec.count("update"); got != 1 {
			t.Errorf("Set(%s): update calls = %d, want 1", name, got)
		}
		if len(el.suppress) != 0 {
			t.Errorf("Set(%s) left reflection guards behind: %v", name, el.suppress)
		}
	}

	rec.reset()
	if err := el.SetAttribute("text", "from markup"); err != nil {
		t.Fatal(err)
	}
	if got := rec.count("update"); got != 1 {
		t.Errorf("SetAttribute: update calls = %d, want 1", got)
	}
	if got := rec.last().props["text"]; got != "from markup" {
		t.Errorf("bag text = %v", got)
	}
}

func TestRoundTripThroughElement(t *testing.T) {
	doc, _ := setup(t, "test-round", Options{Props: allKinds})
	el := mustCreate(t, doc, "test-round")

	tests := []struct {
		prop, attr string
		value      any
	}{
		{"text", "text", "hello"},
		{"numProp", "num-prop", 3.25},
		{"numProp", "num-prop", math.Inf(-1)},
		{"boolProp", "bool-prop", true},
		{"arrProp", "arr-prop", []any{"a", 1.0, false}},
		{"objProp", "obj-prop", map[string]any{"nested": []any{"x"}}},
		{"objectProp", "object-prop", map[string]any{"a": 1.0}},
	}
	for _, tt := range tests {
		if err := el.Set(tt.prop, tt.value); err != nil {
			t.Fatalf("Set(%s) error: %v", tt.prop, err)
		}
		attr := mustAttr(t, el, tt.attr)

		other := mustCreate(t, doc, "test-round", tt.attr, attr)
		if got := mustGet(t, other, tt.prop); !reflect.DeepEqual(got, tt.value) {
			t.Errorf("%s: %#v -> %q -> %#v", tt.prop, tt.value, attr, got)
		}
	}
}

func TestReconnectMountsFreshHandle(t *testing.T) {
	doc, rec := setup(t, "test-reattach", Options{Props: schema.Names("text")})
	el := mustCreate(t, doc, "test-reattach")

	for i := 1; i <= 3; i++ {
		if err := doc.Append(el); err != nil {
			t.Fatal(err)
		}
		if err := doc.Append(el); err != nil {
			t.Fatal(err)
		}
		if err := doc.Remove(el); err != nil {
			t.Fatal(err)
		}
		if err := doc.Remove(el); err != nil {
			t.Fatal(err)
		}
		if got := rec.count("mount"); got != i {
			t.Fatalf("round %d: mount calls = %d", i, got)
		}
		if got := rec.count("unmount"); got != i {
			t.Fatalf("round %d: unmount calls = %d", i, got)
		}
		if h := rec.last().handle.(*token); h.id != i {
			t.Errorf("round %d: unmounted handle %d", i, h.id)
		}
	}

	rec.reset()
	if err := el.Set("text", "while detached"); err != nil {
		t.Fatal(err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("detached element made %d renderer calls", len(rec.calls))
	}
	if err := doc.Append(el); err != nil {
		t.Fatal(err)
	}
	if got := rec.last().props["text"]; got != "while detached" {
		t.Errorf("mount bag text = %v", got)
	}
}

func TestUpdateNeverBeforeMount(t *testing.T) {
	doc, rec := setup(t, "test-order", Options{Props: schema.Names("text")})
	el := mustCreate(t, doc, "test-order", "text", "a")
	if err := el.Set("text", "b"); err != nil {
		t.Fatal(err)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("unconnected element made renderer calls: %v", rec.calls)
	}
	if err := doc.Append(el); err != nil {
		t.Fatal(err)
	}
	if rec.calls[0].op != "mount" {
		t.Errorf("first call = %s, want mount", rec.calls[0].op)
	}
}

func TestParseShapeErrorLeavesPropUntouched(t *testing.T) {
	doc, rec := setup(t, "test-shape", Options{Props: allKinds})
	el := mustCreate(t, doc, "test-shape", "arr-prop", `["keep"]`)
	if err := doc.Append(el); err != nil {
		t.Fatal(err)
	}
	rec.reset()

	err := el.SetAttribute("arr-prop", `{"not":"an array"}`)
	if !errors.Is(err, transform.ErrShape) {
		t.Fatalf("SetAttribute() error = %v, want ErrShape", err)
	}
	if vangoerrors.Code(err) != "E210" {
		t.Errorf("error code = %q, want E210", vangoerrors.Code(err))
	}
	if got := mustGet(t, el, "arrProp"); !reflect.DeepEqual(got, []any{"keep"}) {
		t.Errorf("arrProp = %#v, want unchanged", got)
	}
	if len(rec.calls) != 0 {
		t.Errorf("failed parse made %d renderer calls", len(rec.calls))
	}
}

func TestPropertyTypeErrorLeavesStateUntouched(t *testing.T) {
	doc, rec := setup(t, "test-type", Options{Props: allKinds})
	el := mustCreate(t, doc, "test-type", "num-prop", "7")
	if err := doc.Append(el); err != nil {
		t.Fatal(err)
	}
	rec.reset()

	for name, bad := range map[string]any{
		"numProp":  "seven",
		"boolProp": "yes",
		"arrProp":  map[string]any{},
		"text":     42,
		"funcProp": "globalFn",
	} {
		if err := el.Set(name, bad); !errors.Is(err, transform.ErrType) {
			t.Errorf("Set(%s, %v) error = %v, want ErrType", name, bad, err)
		}
	}
	if got := mustGet(t, el, "numProp"); got != 7.0 {
		t.Errorf("numProp = %v, want 7", got)
	}
	if got := mustAttr(t, el, "num-prop"); got != "7" {
		t.Errorf("num-prop = %q, want 7", got)
	}
	if len(rec.calls) != 0 {
		t.Errorf("failed sets made %d renderer calls", len(rec.calls))
	}
}

func TestNilUnsetsProp(t *testing.T) {
	doc, rec := setup(t, "test-unset", Options{Props: schema.Names("text")})
	el := mustCreate(t, doc, "test-unset", "text", "hello")
	if err := doc.Append(el); err != nil {
		t.Fatal(err)
	}
	rec.reset()

	if err := el.Set("text", nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := el.Get("text"); ok {
		t.Error("text should be unset")
	}
	if el.HasAttribute("text") {
		t.Error("text attribute should be removed")
	}
	if got := rec.count("update"); got != 1 {
		t.Errorf("update calls = %d, want 1", got)
	}
	if _, ok := rec.last().props["text"]; ok {
		t.Error("unset prop should not be in the bag")
	}
}

func TestRemoveAttributeUnsetsProp(t *testing.T) {
	doc, rec := setup(t, "test-remove", Options{Props: schema.Names("text")})
	el := mustCreate(t, doc, "test-remove", "text", "hello", "class", "big")
	if err := doc.Append(el); err != nil {
		t.Fatal(err)
	}
	rec.reset()

	if err := el.RemoveAttribute("class"); err != nil {
		t.Fatal(err)
	}
	if len(rec.calls) != 0 {
		t.Error("removing an unobserved attribute should not render")
	}
	if err := el.RemoveAttribute("text"); err != nil {
		t.Fatal(err)
	}
	if _, ok := el.Get("text"); ok {
		t.Error("text should be unset")
	}
	if got := rec.count("update"); got != 1 {
		t.Errorf("update calls = %d, want 1", got)
	}
	if err := el.RemoveAttribute("text"); err != nil || rec.count("update") != 1 {
		t.Error("removing a missing attribute should be a no-op")
	}
}

func TestUnobservedAttributesAreInert(t *testing.T) {
	doc, rec := setup(t, "test-inert", Options{Props: schema.Names("text")})
	el := mustCreate(t, doc, "test-inert")
	if err := doc.Append(el); err != nil {
		t.Fatal(err)
	}
	rec.reset()

	if err := el.SetAttribute("Class", "primary"); err != nil {
		t.Fatal(err)
	}
	if len(rec.calls) != 0 {
		t.Error("unobserved attribute triggered a render")
	}
	if got := mustAttr(t, el, "class"); got != "primary" {
		t.Errorf("class = %q", got)
	}
	if _, ok := el.Get("class"); ok {
		t.Error("unobserved attribute must not become a property")
	}
	if got := el.Attributes(); !reflect.DeepEqual(got, [][2]string{{"class", "primary"}}) {
		t.Errorf("Attributes() = %v", got)
	}
}

func TestRendererErrors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("mount", func(t *testing.T) {
		doc, rec := setup(t, "test-fail", Options{Props: schema.Names("text")})
		rec.mountErr = boom
		el := mustCreate(t, doc, "test-fail")

		err := doc.Append(el)
		if !errors.Is(err, ErrRender) || !errors.Is(err, boom) {
			t.Fatalf("Append() error = %v, want ErrRender wrapping boom", err)
		}
		if !el.IsConnected() || el.IsMounted() {
			t.Errorf("connected=%v mounted=%v, want connected and unmounted", el.IsConnected(), el.IsMounted())
		}
		if err := el.Set("text", "x"); err != nil {
			t.Fatal(err)
		}
		if err := doc.Remove(el); err != nil {
			t.Fatal(err)
		}
		if rec.count("update") != 0 || rec.count("unmount") != 0 {
			t.Errorf("calls after failed mount: %v", rec.calls)
		}
	})

	t.Run("update", func(t *testing.T) {
		doc, rec := setup(t, "test-fail", Options{Props: schema.Names("text")})
		el := mustCreate(t, doc, "test-fail")
		if err := doc.Append(el); err != nil {
			t.Fatal(err)
		}
		rec.updateErr = boom
		err := el.Set("text", "x")
		if vangoerrors.Code(err) != "E221" || !errors.Is(err, boom) {
			t.Fatalf("Set() error = %v, want E221 wrapping boom", err)
		}
		if got := mustAttr(t, el, "text"); got != "x" {
			t.Errorf("attribute text = %q, want x", got)
		}
	})

	t.Run("unmount", func(t *testing.T) {
		doc, rec := setup(t, "test-fail", Options{})
		el := mustCreate(t, doc, "test-fail")
		if err := doc.Append(el); err != nil {
			t.Fatal(err)
		}
		rec.unmountErr = boom
		if err := doc.Remove(el); vangoerrors.Code(err) != "E222" {
			t.Fatalf("Remove() error = %v, want E222", err)
		}
		if el.IsMounted() {
			t.Error("handle should be released even when Unmount fails")
		}
		rec.unmountErr = nil
		if err := doc.Append(el); err != nil {
			t.Fatal(err)
		}
		if got := rec.count("mount"); got != 2 {
			t.Errorf("mount calls = %d, want 2", got)
		}
	})
}

func TestRendererFuncs(t *testing.T) {
	var mounted, updated, unmounted int
	r := RendererFuncs{
		MountFunc: func(c Container, p Props) (Handle, error) {
			mounted++
			return "h", nil
		},
		UpdateFunc: func(h Handle, p Props) error {
			updated++
			return nil
		},
		UnmountFunc: func(h Handle) error {
			if h != "h" {
				t.Errorf("Unmount handle = %v, want h", h)
			}
			unmounted++
			return nil
		},
	}
	def, err := NewDefinition(r, Options{Props: schema.Names("text")})
	if err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry()
	if err := reg.Define("fn-renderer", def); err != nil {
		t.Fatal(err)
	}
	doc := NewDocument(reg)
	el := mustCreate(t, doc, "fn-renderer")
	if err := doc.Append(el); err != nil {
		t.Fatal(err)
	}
	if err := el.Set("text", "x"); err != nil {
		t.Fatal(err)
	}
	if err := doc.Close(); err != nil {
		t.Fatal(err)
	}
	if mounted != 1 || updated != 1 || unmounted != 1 {
		t.Errorf("mount=%d update=%d unmount=%d, want 1 each", mounted, updated, unmounted)
	}

	var empty RendererFuncs
	if h, err := empty.Mount(nil, nil); h != nil || err != nil {
		t.Error("zero RendererFuncs should be a no-op")
	}
}
