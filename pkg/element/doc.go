// Package element turns a component renderer into a custom element.
//
// A Definition is the element class: it owns the resolved prop schema,
// the shadow mode and the injected Renderer. Elements created from it keep
// three things consistent: their string attributes, their typed props, and
// the input of the rendered component.
//
// # Lifecycle
//
// An element starts unattached. Appending it to a Document connects it and
// mounts the renderer into its container (the element itself, or a shadow
// root when the definition asks for one). Attribute changes and property
// sets update the mounted tree with the complete prop bag. Removing the
// element unmounts it; appending it again mounts a fresh tree.
//
//	reg := element.NewRegistry()
//	def, err := element.NewDefinition(renderer, element.Options{
//	    Shadow: element.ShadowOpen,
//	    Props: schema.Typed(
//	        schema.Prop{Name: "text", Kind: transform.KindString},
//	        schema.Prop{Name: "count", Kind: transform.KindNumber},
//	    ),
//	})
//	if err != nil {
//	    return err
//	}
//	if err := reg.Define("x-counter", def); err != nil {
//	    return err
//	}
//
//	doc := element.NewDocument(reg)
//	el, _ := doc.CreateElement("x-counter")
//	el.SetAttribute("count", "3") // props["count"] == 3.0
//	doc.Append(el)                 // Mount
//	el.Set("text", "hi")           // attribute text="hi", one Update
//	doc.Remove(el)                 // Unmount
//
// # Threading
//
// Elements and documents are not safe for concurrent use; each belongs to
// the goroutine driving it. Registries and definitions may be shared.
package element
