package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vango-dev/elements/internal/errors"
	"github.com/vango-dev/elements/pkg/preview"
)

func inspectCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect [tag]",
		Short: "Show the defined elements and their props",
		Long: `Show each element's shadow mode, observed attributes and props.

Examples:
  vango-elements inspect
  vango-elements inspect x-button
  vango-elements inspect --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadManifest()
			if err != nil {
				return err
			}
			s, err := opts.define(cfg)
			if err != nil {
				return err
			}

			tags := s.registry.Tags()
			if len(args) == 1 {
				if _, ok := s.registry.Get(args[0]); !ok {
					return errors.New("E143").
						WithDetailf("<%s> is not in %s", args[0], cfg.Path()).
						WithSuggestion("Run inspect without arguments to list the elements")
				}
				tags = args
			}

			infos := make([]preview.ElementInfo, 0, len(tags))
			for _, tag := range tags {
				def, _ := s.registry.Get(tag)
				infos = append(infos, preview.Describe(def))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(infos, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			for i, info := range infos {
				if i > 0 {
					fmt.Fprintln(out)
				}
				shadow := info.Shadow
				if shadow == "" {
					shadow = "none"
				}
				fmt.Fprintf(out, "<%s>  shadow: %s  observes: %s\n", info.Tag, shadow, strings.Join(info.ObservedAttributes, ", "))

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "  PROP\tATTRIBUTE\tTYPE")
				for _, p := range info.Props {
					fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Name, p.Attribute, p.Type)
				}
				tw.Flush()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}
