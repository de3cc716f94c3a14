package element

import "github.com/vango-dev/elements/pkg/vdom"

// Container is the node a Renderer renders into: the element itself in
// light mode or its shadow root.
type Container interface {
	// Host returns the element owning the container.
	Host() *Element

	// Children returns the rendered content.
	Children() []*vdom.VNode

	// ReplaceChildren replaces the rendered content.
	ReplaceChildren(nodes ...*vdom.VNode)
}

// ShadowRoot is an encapsulated container attached to an element.
type ShadowRoot struct {
	host     *Element
	mode     ShadowMode
	children []*vdom.VNode
}

// Host implements Container.
func (s *ShadowRoot) Host() *Element { return s.host }

// Mode returns the shadow root mode.
func (s *ShadowRoot) Mode() ShadowMode { return s.mode }

// Children implements Container.
func (s *ShadowRoot) Children() []*vdom.VNode { return s.children }

// ReplaceChildren implements Container.
func (s *ShadowRoot) ReplaceChildren(nodes ...*vdom.VNode) {
	s.children = append([]*vdom.VNode(nil), nodes...)
}
