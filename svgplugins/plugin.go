// Package svgplugins defines the optimization plugins applied to a
// document tree, the presets grouping them, and the registry used to
// resolve them by name.
//
// A plugin inspects the tree and returns a visitor, which is then applied
// once with svgtree.Visit.
package svgplugins

import (
	"errors"
	"fmt"
	"slices"

	"github.com/benoitkugler/svgo/internal/svglog"
	"github.com/benoitkugler/svgo/svgtree"
)

// Func is the implementation of a plugin. It may inspect the whole
// document before returning the visitor to apply. A nil visitor means that
// the plugin has nothing to do (or already did it).
type Func func(root *svgtree.Root, params Params, info *Info) (*svgtree.Visitor, error)

// Recorder applies the visitor returned by a plugin, for instance
// to collect statistics.
type Recorder interface {
	Visit(plugin string, root *svgtree.Root, v *svgtree.Visitor)
}

// Info provides context about the current run.
type Info struct {
	// Path is the document path, if any.
	Path string
	// MultipassCount is the index of the current pass, starting at 0.
	MultipassCount int
	// Recorder is optional. When nil, visitors are applied with svgtree.Visit.
	Recorder Recorder
}

func (info *Info) visit(plugin string, root *svgtree.Root, v *svgtree.Visitor) {
	if info != nil && info.Recorder != nil {
		info.Recorder.Visit(plugin, root, v)
		return
	}
	svgtree.Visit(root, v)
}

// Plugin is a named rewrite of the document.
type Plugin struct {
	Name        string
	Description string
	Fn          Func

	// subplugins is not nil for presets
	subplugins []Plugin
}

// IsPreset returns true for plugins grouping other plugins.
func (pl Plugin) IsPreset() bool { return pl.subplugins != nil }

// Plugins returns the plugins grouped by a preset, in order.
func (pl Plugin) Plugins() []Plugin { return slices.Clone(pl.subplugins) }

// Instance is a plugin resolved for one run, with its parameters.
type Instance struct {
	Name   string
	Params Params
	Fn     Func
}

// Invoke runs each plugin on the tree, in order.
//
// The parameters of each plugin are merged from its own Params, then
// globalOverrides, then the entry of overrides matching the plugin name.
// An override set to false disables the plugin.
func Invoke(root *svgtree.Root, info *Info, plugins []Instance, overrides map[string]any, globalOverrides Params) error {
	for _, plugin := range plugins {
		override := overrides[plugin.Name]
		if enabled, isBool := override.(bool); isBool && !enabled {
			continue
		}
		overrideParams, _ := asParams(override)
		params := mergeParams(plugin.Params, globalOverrides, overrideParams)

		visitor, err := plugin.Fn(root, params, info)
		if err != nil {
			return fmt.Errorf("plugin %s: %w", plugin.Name, err)
		}
		if visitor != nil {
			info.visit(plugin.Name, root, visitor)
		}
	}
	return nil
}

// NewPreset returns a plugin running the given plugins in order.
//
// The preset accepts two parameters : "floatPrecision", forwarded to every
// plugin, and "overrides", a mapping from plugin names to either false
// (to disable the plugin) or parameters.
func NewPreset(name, description string, plugins ...Plugin) Plugin {
	names := make(map[string]bool, len(plugins))
	for _, pl := range plugins {
		names[pl.Name] = true
	}
	fn := func(root *svgtree.Root, params Params, info *Info) (*svgtree.Visitor, error) {
		globalOverrides := Params{}
		if fp, ok := params["floatPrecision"]; ok && fp != nil {
			globalOverrides["floatPrecision"] = fp
		}
		overrides, _ := asParams(params["overrides"])
		for pluginName := range overrides {
			if !names[pluginName] {
				svglog.Logger().Warn("overriding a plugin which is not part of the preset; try to put it before or after the preset instead",
					"plugin", pluginName, "preset", name)
			}
		}
		instances := make([]Instance, len(plugins))
		for i, pl := range plugins {
			instances[i] = Instance{Name: pl.Name, Fn: pl.Fn}
		}
		return nil, Invoke(root, info, instances, overrides, globalOverrides)
	}
	return Plugin{Name: name, Description: description, Fn: fn, subplugins: slices.Clone(plugins)}
}

var errDuplicatePlugin = errors.New("duplicate plugin name")

// Registry maps plugin names to their implementation.
// It is read-only once built, and may be shared between goroutines.
type Registry struct {
	plugins map[string]Plugin
	names   []string
}

// NewRegistry builds a registry. Plugin names must be unique and not empty.
func NewRegistry(plugins ...Plugin) (*Registry, error) {
	r := &Registry{plugins: make(map[string]Plugin, len(plugins))}
	for _, pl := range plugins {
		if pl.Name == "" {
			return nil, errors.New("missing plugin name")
		}
		if pl.Fn == nil {
			return nil, fmt.Errorf("missing implementation for plugin %s", pl.Name)
		}
		if _, has := r.plugins[pl.Name]; has {
			return nil, fmt.Errorf("%w: %s", errDuplicatePlugin, pl.Name)
		}
		r.plugins[pl.Name] = pl
		r.names = append(r.names, pl.Name)
	}
	return r, nil
}

// Lookup returns the plugin registered with the given name.
func (r *Registry) Lookup(name string) (Plugin, bool) {
	pl, ok := r.plugins[name]
	return pl, ok
}

// Names returns the registered names, in registration order.
func (r *Registry) Names() []string { return slices.Clone(r.names) }

var builtinRegistry *Registry

func init() {
	var err error
	builtinRegistry, err = NewRegistry(builtinPlugins()...)
	if err != nil {
		panic(err)
	}
}

// Builtin returns the registry of the plugins provided by this package,
// including "preset-default".
func Builtin() *Registry { return builtinRegistry }
