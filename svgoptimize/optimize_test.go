package svgoptimize

import (
	"errors"
	"testing"

	"github.com/benoitkugler/svgo/svgplugins"
	"github.com/benoitkugler/svgo/svgtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const titleAndRect = `<svg><title>t</title><rect x="0" y="0" width="1" height="1"/></svg>`

func TestOptimizeDefault(t *testing.T) {
	res, err := Optimize(titleAndRect, Config{Stats: true})
	require.NoError(t, err)
	assert.Equal(t, `<svg><rect width="1" height="1"/></svg>`, res.Data)

	assert.Equal(t, 1, res.Stats.Passes)
	assert.Equal(t, []Round{{Before: len(titleAndRect), After: len(res.Data)}}, res.Stats.Rounds)
	assert.Equal(t, len(res.Data)-len(titleAndRect), res.Stats.Diff())
	perPlugin := res.Stats.PerPlugin()
	assert.Equal(t, -len("<title>t</title>"), perPlugin["removeTitle"].Diff)
	assert.Equal(t, -len(` x="0" y="0"`), perPlugin["removeUnknownsAndDefaults"].Diff)
	assert.Equal(t, 0, perPlugin[stepStringify].Diff)
}

func TestOptimizeWithoutSteps(t *testing.T) {
	res, err := Optimize(titleAndRect, Config{})
	require.NoError(t, err)
	assert.Equal(t, `<svg><rect width="1" height="1"/></svg>`, res.Data)
	assert.Empty(t, res.Stats.Steps)
	assert.Equal(t, []Round{{Before: len(titleAndRect), After: len(res.Data)}}, res.Stats.Rounds)
	assert.Equal(t, len(res.Data)-len(titleAndRect), res.Stats.Diff())
}

func TestOptimizeMultipass(t *testing.T) {
	cfg := Config{Plugins: []PluginConfig{{Name: "removeEmptyContainers"}, {Name: "removeTitle"}}}
	input := `<svg><g><title>t</title></g></svg>`

	res, err := Optimize(input, cfg)
	require.NoError(t, err)
	assert.Equal(t, `<svg><g/></svg>`, res.Data)

	cfg.Multipass = true
	res, err = Optimize(input, cfg)
	require.NoError(t, err)
	assert.Equal(t, `<svg/>`, res.Data)
	// the last pass does not improve anymore
	assert.Equal(t, 3, res.Stats.Passes)
	assert.LessOrEqual(t, res.Stats.Passes, maxPasses)
}

func TestOptimizeIdempotent(t *testing.T) {
	input := `<?xml version="1.0" encoding="UTF-8"?>
<!-- Generator: Tool -->
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100">
	<title>icon</title>
	<desc>Created with Tool</desc>
	<defs><linearGradient/></defs>
	<g transform="translate(10 0)" fill="#000000">
		<ellipse cx="20" cy="20" rx="5" ry="5"/>
		<path d="M 10.0001 10 L 20 10 L 20 20 Z"/>
	</g>
	<g/>
</svg>`
	cfg := Config{Multipass: true}
	first, err := Optimize(input, cfg)
	require.NoError(t, err)
	assert.Less(t, len(first.Data), len(input))

	second, err := Optimize(first.Data, cfg)
	require.NoError(t, err)
	assert.Equal(t, first.Data, second.Data)
}

func TestOptimizeFloatPrecision(t *testing.T) {
	precision := 1
	cfg := Config{FloatPrecision: &precision, Plugins: []PluginConfig{{Name: "cleanupNumericValues"}}}
	res, err := Optimize(`<svg><rect width="1.26"/></svg>`, cfg)
	require.NoError(t, err)
	assert.Equal(t, `<svg><rect width="1.3"/></svg>`, res.Data)
}

func TestOptimizeCustomPlugin(t *testing.T) {
	addClass := func(*svgtree.Root, svgplugins.Params, *svgplugins.Info) (*svgtree.Visitor, error) {
		return &svgtree.Visitor{Element: svgtree.Hooks[*svgtree.Element]{
			Enter: func(el *svgtree.Element, _ svgtree.Parent) svgtree.Action {
				el.Attrs.Set("class", "a")
				return svgtree.Continue
			},
		}}, nil
	}
	res, err := Optimize(`<svg/>`, Config{Plugins: []PluginConfig{{Name: "addClass", Fn: addClass}}})
	require.NoError(t, err)
	assert.Equal(t, `<svg class="a"/>`, res.Data)

	errBroken := errors.New("broken")
	_, err = Optimize(`<svg/>`, Config{Plugins: []PluginConfig{{Name: "broken", Fn: func(*svgtree.Root, svgplugins.Params, *svgplugins.Info) (*svgtree.Visitor, error) {
		return nil, errBroken
	}}}})
	assert.ErrorIs(t, err, errBroken)
}

func TestOptimizeErrors(t *testing.T) {
	// configuration errors are reported before parsing
	for _, cfg := range []Config{
		{Plugins: []PluginConfig{{Name: "removeEverything"}}},
		{Plugins: []PluginConfig{{Params: svgplugins.Params{"a": 1}}}},
		{DataURI: "gzip"},
	} {
		_, err := Optimize(`<svg>`+"\n"+`</g>`, cfg)
		assert.ErrorIs(t, err, ErrConfig)
	}

	_, err := Optimize("<svg>\n<g></svg>", Config{})
	var parseErr *svgtree.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestOptimizeDataURI(t *testing.T) {
	for mode, expected := range map[string]string{
		"base64": "data:image/svg+xml;base64,PHN2Zy8+",
		"enc":    "data:image/svg+xml,%3Csvg%2F%3E",
		"unenc":  "data:image/svg+xml,<svg/>",
	} {
		res, err := Optimize(`<svg></svg>`, Config{DataURI: mode, Plugins: []PluginConfig{}})
		require.NoError(t, err)
		assert.Equal(t, expected, res.Data)
		assert.Equal(t, "<svg/>", DecodeDataURI(res.Data))
	}
}
