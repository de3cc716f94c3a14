package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/elements/internal/config"
	"github.com/vango-dev/elements/internal/errors"
	"github.com/vango-dev/elements/pkg/element"
	"github.com/vango-dev/elements/pkg/middleware"
	"github.com/vango-dev/elements/pkg/render"
	"github.com/vango-dev/elements/pkg/transform"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

// options are the persistent flags shared by every command.
type options struct {
	manifest string
	logLevel string
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "vango-elements",
		Short: "Define, render and preview custom elements",
		Long: `vango-elements turns a manifest of custom elements into live
elements backed by Go renderers.

The manifest (elements.json or elements.yaml) lists each element's tag,
shadow mode and typed props. Attributes are parsed into props and props
are reflected back to attributes the way browsers do it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
				return errors.New("E144").
					WithDetailf("--log-level %q", opts.logLevel).
					WithSuggestion("Use debug, info, warn or error")
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.manifest, "manifest", "m", ".", "Manifest file or the directory containing it")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		checkCmd(opts),
		inspectCmd(opts),
		renderCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)
	return rootCmd
}

// loadManifest reads the manifest named by --manifest and validates it.
func (o *options) loadManifest() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if info, statErr := os.Stat(o.manifest); statErr == nil && !info.IsDir() {
		cfg, err = config.LoadFile(o.manifest)
	} else {
		cfg, err = config.Load(o.manifest)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o.logger.Debug("manifest loaded", "path", cfg.Path(), "elements", len(cfg.Elements))
	return cfg, nil
}

// stack is a manifest defined into a registry.
type stack struct {
	registry *element.Registry
	gatherer prometheus.Gatherer
}

// define builds every manifest element with a props table renderer,
// decorated with tracing and metrics when the manifest enables them.
func (o *options) define(cfg *config.Config) (*stack, error) {
	s := &stack{registry: element.NewRegistry()}

	var metrics *middleware.Metrics
	if cfg.Preview.Metrics {
		reg := prometheus.NewRegistry()
		metrics = middleware.NewMetrics(middleware.WithRegistry(reg))
		s.gatherer = reg
	}

	rendererFor := func(el config.ElementConfig) element.Renderer {
		var r element.Renderer = render.Component(render.PropsTable(el.Tag))
		if cfg.Preview.Tracing {
			r = middleware.Tracing(el.Tag, r, middleware.WithPropNames(true))
		}
		if metrics != nil {
			r = metrics.Wrap(el.Tag, r)
		}
		return r
	}

	if err := cfg.Build(s.registry, transform.Default(), rendererFor, o.logger); err != nil {
		return nil, err
	}
	return s, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
