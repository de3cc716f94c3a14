package element

import (
	"log/slog"

	"github.com/vango-dev/elements/internal/errors"
	"github.com/vango-dev/elements/pkg/schema"
	"github.com/vango-dev/elements/pkg/transform"
)

// ShadowMode selects the element's render container.
type ShadowMode string

const (
	// ShadowNone renders into the element itself.
	ShadowNone ShadowMode = ""
	// ShadowOpen renders into an open shadow root.
	ShadowOpen ShadowMode = "open"
	// ShadowClosed renders into a closed shadow root.
	ShadowClosed ShadowMode = "closed"
)

// Valid reports whether m is a known shadow mode.
func (m ShadowMode) Valid() bool {
	switch m {
	case ShadowNone, ShadowOpen, ShadowClosed:
		return true
	}
	return false
}

// Options configures a Definition.
type Options struct {
	// Shadow selects light rendering (ShadowNone) or a shadow root mode.
	Shadow ShadowMode

	// Props declares the element's props.
	Props schema.Declaration

	// Transforms resolves prop kinds. Defaults to transform.Default().
	Transforms *transform.Registry

	// Logger receives lifecycle logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Definition is a custom element class: a schema, a shadow mode and a
// renderer. It is immutable and may be shared between goroutines.
type Definition struct {
	tag        string
	schema     *schema.Schema
	shadow     ShadowMode
	renderer   Renderer
	transforms *transform.Registry
	logger     *slog.Logger
}

// NewDefinition validates opts and builds the element class. Every
// configuration error is reported here rather than on first use.
func NewDefinition(renderer Renderer, opts Options) (*Definition, error) {
	if renderer == nil {
		return nil, errors.New("E206").Wrap(ErrConfig)
	}
	if !opts.Shadow.Valid() {
		return nil, errors.New("E201").
			WithDetailf("got %q", string(opts.Shadow)).
			WithSuggestion(`Use "open", "closed" or leave shadow unset`).
			Wrap(ErrConfig)
	}

	transforms := opts.Transforms
	if transforms == nil {
		transforms = transform.Default()
	}
	s, err := schema.Resolve(opts.Props, transforms)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Definition{
		schema:     s,
		shadow:     opts.Shadow,
		renderer:   renderer,
		transforms: transforms,
		logger:     logger,
	}, nil
}

// Tag returns the tag the definition is registered under, or "".
func (d *Definition) Tag() string { return d.tag }

// Schema returns the resolved prop schema.
func (d *Definition) Schema() *schema.Schema { return d.schema }

// Shadow returns the shadow mode.
func (d *Definition) Shadow() ShadowMode { return d.shadow }

// ObservedAttributes returns the attributes synchronized with props.
func (d *Definition) ObservedAttributes() []string {
	return d.schema.ObservedAttributes()
}

// New constructs a detached element of this class. The definition must
// already be registered.
func (d *Definition) New() (*Element, error) {
	if d.tag == "" {
		return nil, errors.New("E207").
			WithSuggestion("Register the definition with Registry.Define before constructing elements").
			Wrap(ErrConfig)
	}
	el := newElement(d.tag, nil)
	if err := el.upgrade(d); err != nil {
		return nil, err
	}
	return el, nil
}

func (d *Definition) transform(kind transform.Kind) transform.Transform {
	// Kinds were validated by schema.Resolve.
	t, _ := d.transforms.Lookup(kind)
	return t
}
