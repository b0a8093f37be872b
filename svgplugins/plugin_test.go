package svgplugins

import (
	"errors"
	"testing"

	"github.com/benoitkugler/svgo/svgtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// builtin returns the instance of the builtin plugin name.
func builtin(t *testing.T, name string, params Params) Instance {
	t.Helper()
	pl, ok := Builtin().Lookup(name)
	require.True(t, ok, name)
	return Instance{Name: name, Params: params, Fn: pl.Fn}
}

// run applies the plugins to input and returns the compact output.
func run(t *testing.T, input string, plugins ...Instance) string {
	t.Helper()
	root, err := svgtree.Parse(input, "")
	require.NoError(t, err)
	require.NoError(t, Invoke(root, nil, plugins, nil, nil))
	return svgtree.Stringify(root, svgtree.StringifyOptions{})
}

type pluginTest struct {
	name     string
	params   Params
	input    string
	expected string
}

func runTable(t *testing.T, tests []pluginTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, run(t, tt.input, builtin(t, tt.name, tt.params)))
		})
	}
}

// recording returns a plugin storing the params it is called with.
func recording(name string, got *Params) Plugin {
	return Plugin{Name: name, Fn: func(_ *svgtree.Root, params Params, _ *Info) (*svgtree.Visitor, error) {
		*got = params
		return nil, nil
	}}
}

func TestRegistry(t *testing.T) {
	_, err := NewRegistry(removeTitle, removeDesc, removeTitle)
	assert.ErrorIs(t, err, errDuplicatePlugin)

	_, err = NewRegistry(Plugin{Name: "noop"})
	assert.Error(t, err)

	_, err = NewRegistry(Plugin{Fn: removeTitle.Fn})
	assert.Error(t, err)

	names := Builtin().Names()
	assert.Equal(t, "preset-default", names[0])
	assert.Len(t, names, 1+len(presetDefault.Plugins())+7)
	assert.Contains(t, names, "reusePaths")

	preset, ok := Builtin().Lookup("preset-default")
	require.True(t, ok)
	assert.True(t, preset.IsPreset())
	assert.False(t, removeTitle.IsPreset())

	_, ok = Builtin().Lookup("removeEverything")
	assert.False(t, ok)
}

func TestPresetOverrides(t *testing.T) {
	preset := NewPreset("test", "", removeTitle, removeDesc)
	input := `<svg><title>t</title><desc>d</desc></svg>`

	out := run(t, input, Instance{Name: preset.Name, Fn: preset.Fn})
	assert.Equal(t, `<svg/>`, out)

	out = run(t, input, Instance{Name: preset.Name, Fn: preset.Fn, Params: Params{
		"overrides": map[string]any{"removeTitle": false},
	}})
	assert.Equal(t, `<svg><title>t</title></svg>`, out)

	// unknown names are only reported
	out = run(t, input, Instance{Name: preset.Name, Fn: preset.Fn, Params: Params{
		"overrides": map[string]any{"removeUnknown": false},
	}})
	assert.Equal(t, `<svg/>`, out)
}

func TestParamsMerge(t *testing.T) {
	var got Params
	pl := recording("record", &got)
	root := svgtree.NewRoot()

	err := Invoke(root, nil, []Instance{{Name: pl.Name, Fn: pl.Fn, Params: Params{"a": 1, "b": 1}}},
		map[string]any{"record": Params{"c": 3}}, Params{"b": 2, "c": 2})
	require.NoError(t, err)
	assert.Equal(t, Params{"a": 1, "b": 2, "c": 3}, got)

	preset := NewPreset("test", "", pl)
	err = Invoke(root, nil, []Instance{{Name: preset.Name, Fn: preset.Fn, Params: Params{
		"floatPrecision": 2,
		"overrides":      map[string]any{"record": map[string]any{"d": true}},
	}}}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Params{"floatPrecision": 2, "d": true}, got)
}

func TestInvokeError(t *testing.T) {
	errBroken := errors.New("broken")
	failing := Instance{Name: "failing", Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		return nil, errBroken
	}}
	err := Invoke(svgtree.NewRoot(), nil, []Instance{failing}, nil, nil)
	assert.ErrorIs(t, err, errBroken)
	assert.Contains(t, err.Error(), "plugin failing")
}

type countingRecorder map[string]int

func (c countingRecorder) Visit(plugin string, root *svgtree.Root, v *svgtree.Visitor) {
	c[plugin]++
	svgtree.Visit(root, v)
}

func TestRecorder(t *testing.T) {
	root, err := svgtree.Parse(`<svg><title>t</title></svg>`, "")
	require.NoError(t, err)
	recorder := countingRecorder{}
	err = Invoke(root, &Info{Recorder: recorder}, []Instance{builtin(t, "preset-default", nil)}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, recorder["removeTitle"])
	assert.Equal(t, `<svg/>`, svgtree.Stringify(root, svgtree.StringifyOptions{}))
}

func TestParams(t *testing.T) {
	p := Params{"b": true, "i": 3, "f": 2.5, "s": "x", "list": []any{"a", 1, "b"}, "bad": "true"}
	assert.True(t, p.Bool("b", false))
	assert.True(t, p.Bool("bad", true))
	assert.Equal(t, 3, p.Int("i", 0))
	assert.Equal(t, 2, p.Int("f", 0))
	assert.Equal(t, 7, p.Int("missing", 7))
	assert.Equal(t, 2.5, p.Float("f", 0))
	assert.Equal(t, "x", p.String("s", ""))
	assert.Equal(t, []string{"a", "b"}, p.Strings("list"))
	assert.Equal(t, []string{"x"}, p.Strings("s"))

	_, ok := p.OptionalInt("missing")
	assert.False(t, ok)
	v, ok := p.OptionalInt("i")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}
