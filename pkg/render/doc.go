// Package render serializes elements and virtual nodes to HTML.
//
// A connected element renders as its host tag with its attributes, followed
// by its rendered content. Elements with a shadow root emit the content as
// declarative shadow DOM:
//
//	<x-card title="Hi"><template shadowrootmode="open">...</template></x-card>
//
// The package also provides Component, an element.Renderer that renders a
// function of the prop bag into the element's container:
//
//	def, err := element.NewDefinition(render.Component(func(p element.Props) *vdom.VNode {
//	    return vdom.H("button", render.Value(p["text"]))
//	}), opts)
//
// All text and attribute values are escaped. Raw nodes are written as-is
// and should only carry trusted content.
package render
