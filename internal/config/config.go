package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/elements/internal/errors"
	"github.com/vango-dev/elements/pkg/element"
	"github.com/vango-dev/elements/pkg/schema"
	"github.com/vango-dev/elements/pkg/transform"
)

const (
	// ConfigFileName is the name of the JSON manifest.
	ConfigFileName = "elements.json"

	// YAMLFileName is the name of the YAML manifest.
	YAMLFileName = "elements.yaml"

	// DefaultAddr is the default preview server address.
	DefaultAddr = ":7070"

	// DefaultPropType is the kind of props declared without a type.
	DefaultPropType = string(transform.KindString)
)

// manifestNames are tried in order by Load.
var manifestNames = []string{ConfigFileName, YAMLFileName, "elements.yml"}

// Config is an element manifest.
type Config struct {
	// Name is the component library name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Preview configures the preview server.
	Preview PreviewConfig `json:"preview" yaml:"preview"`

	// Elements are the custom elements to define.
	Elements []ElementConfig `json:"elements" yaml:"elements"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// Metrics instruments renderers and serves /metrics.
	Metrics bool `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Tracing wraps renderers in OpenTelemetry spans.
	Tracing bool `json:"tracing,omitempty" yaml:"tracing,omitempty"`

	// Pretty indents rendered HTML.
	Pretty bool `json:"pretty,omitempty" yaml:"pretty,omitempty"`
}

// ElementConfig declares one custom element.
type ElementConfig struct {
	// Tag is the custom element name, like "x-button".
	Tag string `json:"tag" yaml:"tag"`

	// Shadow is "", "open" or "closed".
	Shadow string `json:"shadow,omitempty" yaml:"shadow,omitempty"`

	// Props are the declared props in order.
	Props []PropConfig `json:"props,omitempty" yaml:"props,omitempty"`
}

// PropConfig declares one prop.
type PropConfig struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Declaration returns the element's prop declaration.
func (e ElementConfig) Declaration() schema.Declaration {
	props := make([]schema.Prop, len(e.Props))
	for i, p := range e.Props {
		props[i] = schema.Prop{Name: p.Name, Kind: transform.Kind(p.Type)}
	}
	return schema.Typed(props...)
}

// ShadowMode returns the element's shadow mode.
func (e ElementConfig) ShadowMode() element.ShadowMode {
	return element.ShadowMode(e.Shadow)
}

// New creates a Config with default values and no elements.
func New() *Config {
	return &Config{
		Preview: PreviewConfig{Addr: DefaultAddr},
	}
}

// Load reads the manifest from dir, trying elements.json, elements.yaml
// and elements.yml in that order.
func Load(dir string) (*Config, error) {
	for _, name := range manifestNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E141").
		WithDetail("No " + ConfigFileName + " or " + YAMLFileName + " found in " + dir).
		WithSuggestion("Create a manifest listing your elements")
}

// LoadFile reads a manifest. Files ending in .yaml or .yml are YAML,
// anything else is JSON. Unknown fields are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail(path + " does not exist")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.New("E120").
				WithLocationFromError(path, err).
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the manifest is valid YAML")
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the manifest is valid JSON")
		}
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path in the format its extension
// selects.
func (c *Config) SaveTo(path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Preview.Addr == "" {
		c.Preview.Addr = DefaultAddr
	}
	for i := range c.Elements {
		for j := range c.Elements[i].Props {
			if c.Elements[i].Props[j].Type == "" {
				c.Elements[i].Props[j].Type = DefaultPropType
			}
		}
	}
}

// Validate checks the manifest without defining anything. Prop types are
// checked against the built-in transforms.
func (c *Config) Validate() error {
	if len(c.Elements) == 0 {
		return errors.New("E121").
			WithDetail("The manifest declares no elements")
	}

	seen := make(map[string]bool, len(c.Elements))
	for i, el := range c.Elements {
		if err := element.ValidateName(el.Tag); err != nil {
			return err
		}
		if seen[el.Tag] {
			return errors.New("E203").
				WithDetailf("<%s> is declared twice (elements[%d])", el.Tag, i)
		}
		seen[el.Tag] = true

		if !el.ShadowMode().Valid() {
			return errors.New("E201").
				WithDetailf("<%s> has shadow %q", el.Tag, el.Shadow).
				WithSuggestion(`Use "open", "closed" or leave shadow unset`)
		}
		if _, err := schema.Resolve(el.Declaration(), transform.Default()); err != nil {
			return err
		}
	}
	return nil
}

// Build defines every element of the manifest in registry. rendererFor
// supplies the renderer of each element.
func (c *Config) Build(registry *element.Registry, transforms *transform.Registry, rendererFor func(ElementConfig) element.Renderer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	for _, el := range c.Elements {
		def, err := element.NewDefinition(rendererFor(el), element.Options{
			Shadow:     el.ShadowMode(),
			Props:      el.Declaration(),
			Transforms: transforms,
			Logger:     logger,
		})
		if err != nil {
			return err
		}
		if err := registry.Define(el.Tag, def); err != nil {
			return err
		}
		logger.Debug("defined", "tag", el.Tag, "props", len(el.Props), "shadow", el.Shadow)
	}
	return nil
}
