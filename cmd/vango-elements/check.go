package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the manifest",
		Long: `Validate the manifest and define every element in a scratch registry.

Tags, shadow modes, prop names and prop types are all checked, so an
element that passes check defines cleanly at runtime.

Examples:
  vango-elements check
  vango-elements check --manifest=ui/elements.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadManifest()
			if err != nil {
				return err
			}
			if _, err := opts.define(cfg); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "%s: %d elements", filepath.Base(cfg.Path()), len(cfg.Elements))
			return nil
		},
	}
}
