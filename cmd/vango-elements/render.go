package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vango-dev/elements/internal/errors"
	"github.com/vango-dev/elements/pkg/element"
	"github.com/vango-dev/elements/pkg/render"
)

func renderCmd(opts *options) *cobra.Command {
	var (
		attrs  []string
		props  []string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "render <tag>",
		Short: "Render one element to HTML",
		Long: `Create an element, apply attributes and props, connect it and print
its HTML. Attributes are applied in flag order, then props, so a prop
overrides the attribute it reflects to.

Prop values are JSON: numbers, booleans, arrays and objects keep their
type, and null unsets the prop.

Examples:
  vango-elements render x-button --attr label=Save
  vango-elements render x-list --prop 'items=["a","b"]' --pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadManifest()
			if err != nil {
				return err
			}
			s, err := opts.define(cfg)
			if err != nil {
				return err
			}

			html, err := renderElement(s.registry, args[0], attrs, props, render.RendererConfig{
				Pretty: pretty || cfg.Preview.Pretty,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(html, "\n"))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&attrs, "attr", "a", nil, "Attribute as name=value (repeatable)")
	cmd.Flags().StringArrayVarP(&props, "prop", "p", nil, "Prop as name=json (repeatable)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")

	return cmd
}

func renderElement(registry *element.Registry, tag string, attrs, props []string, rc render.RendererConfig) (string, error) {
	if _, ok := registry.Get(tag); !ok {
		return "", errors.New("E143").
			WithDetailf("<%s> is not defined", tag).
			WithSuggestion("Run inspect to list the elements")
	}

	doc := element.NewDocument(registry)
	defer doc.Close()

	el, err := doc.CreateElement(tag)
	if err != nil {
		return "", err
	}
	for _, a := range attrs {
		name, value, err := splitPair("--attr", a)
		if err != nil {
			return "", err
		}
		if err := el.SetAttribute(name, value); err != nil {
			return "", err
		}
	}
	for _, p := range props {
		name, raw, err := splitPair("--prop", p)
		if err != nil {
			return "", err
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return "", errors.New("E144").
				WithDetailf("--prop %s: %v", name, err).
				WithSuggestion(`Prop values are JSON; quote strings like name='"text"'`)
		}
		if err := el.Set(name, value); err != nil {
			return "", err
		}
	}
	if err := doc.Append(el); err != nil {
		return "", err
	}

	return render.NewRenderer(rc).ElementToString(el)
}

func splitPair(flag, s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", "", errors.New("E144").
			WithDetailf("%s %q", flag, s).
			WithSuggestion("Use name=value")
	}
	return name, value, nil
}
