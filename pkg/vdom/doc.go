// Package vdom is the node model rendered into element containers.
//
// A VNode is an element, text, fragment, component or raw HTML node.
// Components render into container children; the render package
// serializes a host element together with those children.
//
//	vdom.H("dl", vdom.Class("props"),
//	    vdom.H("dt", vdom.Text("text")),
//	    vdom.H("dd", vdom.Text("hello")),
//	)
package vdom
