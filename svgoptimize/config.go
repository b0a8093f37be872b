package svgoptimize

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/svgo/svgplugins"
	"github.com/benoitkugler/svgo/svgtree"
	"gopkg.in/yaml.v3"
)

// ErrConfig is returned (wrapped) for invalid configurations.
var ErrConfig = errors.New("invalid configuration")

// PluginConfig selects one plugin.
type PluginConfig struct {
	Name   string            `yaml:"name"`
	Params svgplugins.Params `yaml:"params"`
	// Fn is an optional custom implementation. When nil,
	// Name is resolved with the registry.
	Fn svgplugins.Func `yaml:"-"`
}

// UnmarshalYAML accepts either a plugin name or a mapping
// with name and params fields.
func (pc *PluginConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		pc.Name = node.Value
		return nil
	case yaml.MappingNode:
		var raw struct {
			Name   string         `yaml:"name"`
			Params map[string]any `yaml:"params"`
		}
		if err := node.Decode(&raw); err != nil {
			return fmt.Errorf("%w: line %d: %s", ErrConfig, node.Line, err)
		}
		pc.Name, pc.Params = raw.Name, raw.Params
		return nil
	}
	return fmt.Errorf("%w: line %d: a plugin must be a name or a mapping", ErrConfig, node.Line)
}

// Config controls one optimization.
type Config struct {
	// Path is the path of the document, used in error messages.
	Path string `yaml:"path"`
	// Plugins are applied in order. When nil, "preset-default" is used.
	Plugins   []PluginConfig `yaml:"plugins"`
	Multipass bool           `yaml:"multipass"`
	// FloatPrecision, if not nil, overrides the precision of every plugin.
	FloatPrecision *int                     `yaml:"floatPrecision"`
	JS2SVG         svgtree.StringifyOptions `yaml:"js2svg"`
	// DataURI is one of "base64", "enc", "unenc", or empty for plain output.
	DataURI string `yaml:"datauri"`
	// Stats enables the per plugin measures of Result.Stats.
	Stats bool `yaml:"stats"`

	// Registry resolves plugin names. It defaults to svgplugins.Builtin().
	Registry *svgplugins.Registry `yaml:"-"`
}

// ParseConfig decodes a YAML (or JSON) configuration document.
func ParseConfig(data []byte) (Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfig, err)
	}
	var cfg Config
	if len(doc.Content) == 0 { // empty document
		return cfg, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Config{}, fmt.Errorf("%w: line %d: the configuration must be a mapping", ErrConfig, root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Value == "plugins" && value.Kind != yaml.SequenceNode && value.Tag != "!!null" {
			return Config{}, fmt.Errorf("%w: line %d: plugins must be a list", ErrConfig, value.Line)
		}
	}
	if err := root.Decode(&cfg); err != nil {
		if !errors.Is(err, ErrConfig) {
			err = fmt.Errorf("%w: %s", ErrConfig, err)
		}
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	switch cfg.DataURI {
	case "", dataURIBase64, dataURIEnc, dataURIUnenc:
	default:
		return fmt.Errorf("%w: unsupported data URI encoding %q", ErrConfig, cfg.DataURI)
	}
	return nil
}

// resolvePlugins returns the plugins to run, or an error if one of
// them is not valid.
func (cfg Config) resolvePlugins() ([]svgplugins.Instance, error) {
	registry := cfg.Registry
	if registry == nil {
		registry = svgplugins.Builtin()
	}
	plugins := cfg.Plugins
	if plugins == nil {
		plugins = []PluginConfig{{Name: "preset-default"}}
	}
	out := make([]svgplugins.Instance, len(plugins))
	for i, pc := range plugins {
		if pc.Name == "" {
			return nil, fmt.Errorf("%w: plugin %d: missing name", ErrConfig, i)
		}
		fn := pc.Fn
		if fn == nil {
			pl, ok := registry.Lookup(pc.Name)
			if !ok {
				return nil, fmt.Errorf("%w: unknown builtin plugin %q", ErrConfig, pc.Name)
			}
			fn = pl.Fn
		}
		out[i] = svgplugins.Instance{Name: pc.Name, Params: pc.Params, Fn: fn}
	}
	return out, nil
}
