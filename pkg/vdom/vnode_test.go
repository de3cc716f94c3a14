package vdom

import "testing"

func TestVKind_String(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{KindRaw, "Raw"},
		{VKind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestH(t *testing.T) {
	comp := Func(func() *VNode { return Text("inner") })
	node := H("div",
		Class("card"),
		[]Attr{ID("main"), A("data-x", 1)},
		nil,
		Key("k1"),
		H("span", "label"),
		[]*VNode{Text("a"), nil, Text("b")},
		comp,
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("node = %+v", node)
	}
	if node.Props["class"] != "card" || node.Props["id"] != "main" || node.Props["data-x"] != 1 {
		t.Errorf("Props = %v", node.Props)
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key should not be stored as a prop")
	}
	if node.Key != "k1" {
		t.Errorf("Key = %q, want k1", node.Key)
	}
	if len(node.Children) != 4 {
		t.Fatalf("len(Children) = %d, want 4", len(node.Children))
	}
	if span := node.Children[0]; span.Tag != "span" || span.Children[0].Text != "label" {
		t.Errorf("span child = %+v", span)
	}
	if last := node.Children[3]; last.Kind != KindComponent || last.Comp.Render().Text != "inner" {
		t.Errorf("component child = %+v", last)
	}
}

func TestFragmentSkipsNil(t *testing.T) {
	f := Fragment(Text("a"), nil, Textf("%d", 2))
	if f.Kind != KindFragment || len(f.Children) != 2 || f.Children[1].Text != "2" {
		t.Errorf("Fragment = %+v", f)
	}
}

func TestClone(t *testing.T) {
	orig := H("ul", Class("list"), H("li", "one"))
	c := orig.Clone()

	c.Props["class"] = "changed"
	c.Children[0].Children[0].Text = "changed"

	if orig.Props["class"] != "list" {
		t.Error("Clone shares props with the original")
	}
	if orig.Children[0].Children[0].Text != "one" {
		t.Error("Clone shares children with the original")
	}
	var nilNode *VNode
	if nilNode.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("input") || IsVoidElement("div") {
		t.Error("IsVoidElement mismatch")
	}
}
