package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/elements/pkg/element"
	"github.com/vango-dev/elements/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Inline elements stay on one line.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// Renderer writes elements and virtual nodes as HTML. It holds no state
// between calls and is safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a node tree to a string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a node tree to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// ElementToString renders el to a string.
func (r *Renderer) ElementToString(el *element.Element) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderElement(&buf, el); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderElement writes el's host tag with its attributes in insertion
// order. Shadow content is wrapped in a declarative shadow root template
// and precedes the light children.
func (r *Renderer) RenderElement(w io.Writer, el *element.Element) error {
	if _, err := fmt.Fprintf(w, "<%s", el.TagName()); err != nil {
		return err
	}
	for _, a := range el.Attributes() {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, a[0], escapeAttr(a[1])); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	r.newline(w)

	if root, ok := el.Container().(*element.ShadowRoot); ok {
		if r.config.Pretty {
			r.writeIndent(w, 1)
		}
		if _, err := fmt.Fprintf(w, `<template shadowrootmode="%s">`, root.Mode()); err != nil {
			return err
		}
		r.newline(w)
		if err := r.renderChildren(w, root.Children(), 2); err != nil {
			return err
		}
		if r.config.Pretty {
			r.writeIndent(w, 1)
		}
		if _, err := io.WriteString(w, "</template>"); err != nil {
			return err
		}
		r.newline(w)
	}

	if err := r.renderChildren(w, el.Children(), 1); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "</%s>", el.TagName())
	r.newline(w)
	return err
}

func (r *Renderer) renderChildren(w io.Writer, children []*vdom.VNode, depth int) error {
	for _, child := range children {
		if err := r.renderNode(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	case vdom.KindFragment:
		return r.renderChildren(w, node.Children, depth)
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		return r.renderNode(w, node.Comp.Render(), depth)
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "<%s", node.Tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node.Props); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(node.Tag) {
		r.newline(w)
		return nil
	}

	block := len(node.Children) > 0 && !inlineElements[node.Tag]
	if block {
		r.newline(w)
	}
	if err := r.renderChildren(w, node.Children, depth+1); err != nil {
		return err
	}
	if r.config.Pretty && block {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "</%s>", node.Tag); err != nil {
		return err
	}
	r.newline(w)
	return nil
}

// renderAttributes writes props in sorted order. Keys starting with an
// underscore and function values are not attributes.
func (r *Renderer) renderAttributes(w io.Writer, props vdom.Props) error {
	keys := make([]string, 0, len(props))
	for key := range props {
		if !strings.HasPrefix(key, "_") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]
		name := key
		switch key {
		case "className":
			name = "class"
		case "htmlFor":
			name = "for"
		}

		if b, ok := value.(bool); ok && booleanAttrs[name] {
			if b {
				if _, err := fmt.Fprintf(w, " %s", name); err != nil {
					return err
				}
			}
			continue
		}

		s, ok := attrValue(value)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, name, escapeAttr(s)); err != nil {
			return err
		}
	}
	return nil
}

// attrValue converts a vnode prop to attribute text. Nil and functions
// produce no attribute.
func attrValue(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	if s := fmt.Sprintf("%T", value); strings.HasPrefix(s, "func") {
		return "", false
	}
	return Value(value), true
}

func (r *Renderer) newline(w io.Writer) {
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat(r.config.Indent, depth))
}
