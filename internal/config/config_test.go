package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	vangoerrors "github.com/vango-dev/elements/internal/errors"
	"github.com/vango-dev/elements/pkg/element"
	"github.com/vango-dev/elements/pkg/transform"
)

const manifestJSON = `{
  "name": "demo",
  "preview": {"addr": ":9000", "metrics": true},
  "elements": [
    {"tag": "x-button", "shadow": "open", "props": [
      {"name": "text"},
      {"name": "count", "type": "number"}
    ]},
    {"tag": "x-list", "props": [{"name": "items", "type": "array"}]}
  ]
}
`

const manifestYAML = `name: demo
preview:
  metrics: true
elements:
  - tag: x-button
    shadow: closed
    props:
      - { name: text }
      - { name: onPick, type: function }
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Preview.Addr != DefaultAddr {
		t.Errorf("Preview.Addr = %q, want %q", cfg.Preview.Addr, DefaultAddr)
	}
	if len(cfg.Elements) != 0 {
		t.Errorf("Elements = %v, want none", cfg.Elements)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if vangoerrors.Code(err) != "E141" {
		t.Fatalf("Load() on empty dir error = %v, want E141", err)
	}

	writeFile(t, tmpDir, ConfigFileName, manifestJSON)
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "demo" || cfg.Preview.Addr != ":9000" || !cfg.Preview.Metrics {
		t.Errorf("preview = %+v, name %q", cfg.Preview, cfg.Name)
	}
	if len(cfg.Elements) != 2 {
		t.Fatalf("Elements len = %d, want 2", len(cfg.Elements))
	}
	button := cfg.Elements[0]
	if button.Tag != "x-button" || button.ShadowMode() != element.ShadowOpen {
		t.Errorf("button = %+v", button)
	}
	if button.Props[0].Type != DefaultPropType {
		t.Errorf("untyped prop type = %q, want %q", button.Props[0].Type, DefaultPropType)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) || cfg.Dir() != tmpDir {
		t.Errorf("Path() = %q, Dir() = %q", cfg.Path(), cfg.Dir())
	}
}

func TestLoad_PrefersJSONThenYAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "elements.yml", manifestYAML)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(cfg.Path()) != "elements.yml" {
		t.Errorf("loaded %s, want elements.yml", cfg.Path())
	}

	writeFile(t, tmpDir, ConfigFileName, manifestJSON)
	cfg, err = Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(cfg.Path()) != ConfigFileName {
		t.Errorf("loaded %s, want %s", cfg.Path(), ConfigFileName)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), YAMLFileName, manifestYAML)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Preview.Addr != DefaultAddr {
		t.Errorf("Preview.Addr = %q, want default", cfg.Preview.Addr)
	}
	el := cfg.Elements[0]
	if el.ShadowMode() != element.ShadowClosed {
		t.Errorf("shadow = %q", el.Shadow)
	}
	props := el.Declaration().Props()
	if len(props) != 2 || props[1].Kind != transform.KindFunction {
		t.Errorf("Declaration().Props() = %v", props)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode string
	}{
		{"invalid json", ConfigFileName, "not valid json", "E120"},
		{"unknown json field", ConfigFileName, `{"elemnts": []}`, "E120"},
		{"invalid yaml", YAMLFileName, "elements:\n  - tag: [x\n", "E120"},
		{"unknown yaml field", YAMLFileName, "elements:\n  - tag: x-a\n    shadw: open\n", "E120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, err := LoadFile(path)
			if got := vangoerrors.Code(err); got != tt.wantCode {
				t.Errorf("LoadFile() error = %v, want %s", err, tt.wantCode)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); vangoerrors.Code(err) != "E141" {
		t.Errorf("missing file error = %v, want E141", err)
	}
}

func TestLoadFile_YAMLErrorLocation(t *testing.T) {
	path := writeFile(t, t.TempDir(), YAMLFileName, "elements:\n  - tag: x-a\n    shadw: open\n")
	_, err := LoadFile(path)

	var e *vangoerrors.Error
	if !errors.As(err, &e) {
		t.Fatalf("error %T is not *errors.Error", err)
	}
	if e.Location == nil || e.Location.Line != 3 {
		t.Errorf("Location = %+v, want line 3", e.Location)
	}
}

func TestEmptyYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), YAMLFileName, "")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("empty manifest should load: %v", err)
	}
	if err := cfg.Validate(); vangoerrors.Code(err) != "E121" {
		t.Errorf("Validate() = %v, want E121", err)
	}
}

func TestSave(t *testing.T) {
	for _, name := range []string{ConfigFileName, YAMLFileName} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			cfg := New()
			cfg.Elements = []ElementConfig{{Tag: "x-card", Props: []PropConfig{{Name: "title", Type: "string"}}}}

			if err := cfg.Save(); err == nil {
				t.Error("Expected error when saving without path")
			}
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo error: %v", err)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if len(loaded.Elements) != 1 || loaded.Elements[0].Tag != "x-card" {
				t.Errorf("Elements = %+v", loaded.Elements)
			}

			loaded.Preview.Addr = ":9001"
			if err := loaded.Save(); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			reloaded, err := LoadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if reloaded.Preview.Addr != ":9001" {
				t.Errorf("Preview.Addr = %q, want :9001", reloaded.Preview.Addr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := New()
		cfg.Elements = []ElementConfig{
			{Tag: "x-a", Props: []PropConfig{{Name: "text", Type: "string"}}},
			{Tag: "x-b", Shadow: "open"},
		}
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate should pass for valid config: %v", err)
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{"no elements", func(c *Config) { c.Elements = nil }, "E121"},
		{"bad tag", func(c *Config) { c.Elements[0].Tag = "button" }, "E202"},
		{"duplicate tag", func(c *Config) { c.Elements[1].Tag = "x-a" }, "E203"},
		{"bad shadow", func(c *Config) { c.Elements[1].Shadow = "half" }, "E201"},
		{"unknown type", func(c *Config) { c.Elements[0].Props[0].Type = "date" }, "E200"},
		{"bad prop name", func(c *Config) { c.Elements[0].Props[0].Name = "my-prop" }, "E204"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if got := vangoerrors.Code(cfg.Validate()); got != tt.wantCode {
				t.Errorf("Validate() code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	path := writeFile(t, t.TempDir(), ConfigFileName, manifestJSON)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var built []string
	reg := element.NewRegistry()
	err = cfg.Build(reg, transform.NewRegistry(), func(el ElementConfig) element.Renderer {
		built = append(built, el.Tag)
		return element.RendererFuncs{}
	}, nil)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if strings.Join(built, ",") != "x-button,x-list" {
		t.Errorf("rendererFor called for %v", built)
	}
	def, ok := reg.Get("x-button")
	if !ok {
		t.Fatal("x-button not defined")
	}
	if def.Shadow() != element.ShadowOpen {
		t.Errorf("shadow = %q", def.Shadow())
	}
	if got := strings.Join(def.ObservedAttributes(), ","); got != "text,count" && got != "count,text" {
		t.Errorf("ObservedAttributes() = %v", def.ObservedAttributes())
	}

	if err := cfg.Build(reg, nil, func(ElementConfig) element.Renderer { return element.RendererFuncs{} }, nil); vangoerrors.Code(err) != "E203" {
		t.Errorf("second Build error = %v, want E203", err)
	}
}
