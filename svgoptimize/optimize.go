// Package svgoptimize reduces the size of SVG documents by running a
// configurable list of plugins, possibly several times.
//
// Typical usage:
//
//	res, err := svgoptimize.Optimize(input, svgoptimize.Config{Multipass: true})
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Data)
package svgoptimize

import (
	"log/slog"

	"github.com/benoitkugler/svgo/internal/svglog"
	"github.com/benoitkugler/svgo/svgplugins"
	"github.com/benoitkugler/svgo/svgtree"
)

// maxPasses bounds the number of passes in multipass mode.
const maxPasses = 10

// Result is the output of Optimize.
type Result struct {
	Data  string
	Stats Stats
}

// SetLogger enables logging for the optimizer and its plugins.
// It is silent by default; a nil logger disables the output again.
func SetLogger(l *slog.Logger) { svglog.Set(l) }

// Optimize applies the plugins selected by cfg to input.
//
// Configuration errors are reported before parsing, and wrap ErrConfig.
// Malformed documents return a *svgtree.ParseError.
//
// In multipass mode, the output of a pass is fed to the next one as long
// as its size decreases, and the smallest output is returned.
//
// Result.Stats always holds the passes and their sizes. The per plugin
// steps require cfg.Stats, which serializes the tree around every plugin.
func Optimize(input string, cfg Config) (Result, error) {
	plugins, err := cfg.resolvePlugins()
	if err != nil {
		return Result{}, err
	}
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	var globalOverrides svgplugins.Params
	if cfg.FloatPrecision != nil {
		globalOverrides = svgplugins.Params{"floatPrecision": *cfg.FloatPrecision}
	}
	passes := 1
	if cfg.Multipass {
		passes = maxPasses
	}

	var res Result
	info := &svgplugins.Info{Path: cfg.Path}
	if cfg.Stats {
		info.Recorder = &res.Stats
	}
	best := -1
	for pass := range passes {
		info.MultipassCount = pass
		root, err := svgtree.Parse(input, cfg.Path)
		if err != nil {
			return Result{}, err
		}
		res.Stats.startPass(input)
		if err := svgplugins.Invoke(root, info, plugins, nil, globalOverrides); err != nil {
			return Result{}, err
		}
		output := res.Stats.stringify(root, cfg.JS2SVG, cfg.Stats)
		if best != -1 && len(output) >= best {
			break
		}
		res.Data, best = output, len(output)
		input = output
	}
	svglog.Logger().Debug("document optimized", "path", cfg.Path, "passes", res.Stats.Passes, "diff", res.Stats.Diff())

	if cfg.DataURI != "" {
		res.Data = EncodeDataURI(res.Data, cfg.DataURI)
	}
	return res, nil
}
