// Package config loads element manifests.
//
// A manifest lists the custom elements of a component library and the
// preview server settings. It is stored as elements.json or elements.yaml
// next to the library.
//
// # Manifest Structure
//
//	preview:
//	  addr: ":7070"
//	  metrics: true
//	elements:
//	  - tag: x-button
//	    shadow: open
//	    props:
//	      - { name: text }
//	      - { name: count, type: number }
//	      - { name: onPick, type: function }
//
// Props without a type are strings.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	reg := element.NewRegistry()
//	err = cfg.Build(reg, transform.Default(), func(el config.ElementConfig) element.Renderer {
//	    return render.Component(render.PropsTable(el.Tag))
//	}, slog.Default())
package config
