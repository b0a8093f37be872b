package svgtransform

import (
	"testing"

	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		input string
		want  []Transform
	}{
		{"", nil},
		{"translate(10)", []Transform{{"translate", []float64{10}}}},
		{"translate(10, 20) scale(2)", []Transform{{"translate", []float64{10, 20}}, {"scale", []float64{2}}}},
		{"rotate(45 10-10)", []Transform{{"rotate", []float64{45, 10, -10}}}},
		{" matrix( 1,0,0,1 , .5e1 -2. )", []Transform{{"matrix", []float64{1, 0, 0, 1, 5, -2}}}},
		{"skewX(10),skewY(-5)", []Transform{{"skewX", []float64{10}}, {"skewY", []float64{-5}}}},
		{"scale()", nil},
		{"translate(10) scale()", nil},
		{"nonsense", nil},
	} {
		assert.Equal(t, test.want, Parse(test.input), test.input)
	}
}

func assertMatrixInDelta(t *testing.T, expected, got rasterx.Matrix2D, delta float64, msgs ...any) {
	t.Helper()
	assert.InDelta(t, expected.A, got.A, delta, msgs...)
	assert.InDelta(t, expected.B, got.B, delta, msgs...)
	assert.InDelta(t, expected.C, got.C, delta, msgs...)
	assert.InDelta(t, expected.D, got.D, delta, msgs...)
	assert.InDelta(t, expected.E, got.E, delta, msgs...)
	assert.InDelta(t, expected.F, got.F, delta, msgs...)
}

func TestCompose(t *testing.T) {
	m, ok := Compose(Parse("translate(10 20) rotate(90) scale(2)"))
	require.True(t, ok)
	want := rasterx.Identity.Translate(10, 20).Rotate(rad(90)).Scale(2, 2)
	assertMatrixInDelta(t, want, m, 1e-9)

	m, ok = Compose(Parse("rotate(90 10 10)"))
	require.True(t, ok)
	x, y := m.Transform(10, 10)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)
	x, y = m.Transform(20, 10)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 20, y, 1e-9)

	_, ok = Compose([]Transform{{Name: "perspective", Data: []float64{1}}})
	assert.False(t, ok)
}

func TestDecompose(t *testing.T) {
	prec := Precision{Float: 3, Transform: 5}
	for _, test := range []struct {
		input string
		want  string
	}{
		{"matrix(1 0 0 1 10 20)", "translate(10 20)"},
		{"matrix(1 0 0 1 10 0)", "translate(10)"},
		{"matrix(2 0 0 2 0 0)", "scale(2)"},
		{"matrix(2 0 0 3 0 0)", "scale(2 3)"},
		{"matrix(1 0 0 1 0 0)", "scale(1)"},
		{"rotate(45)", "rotate(45)"},
		{"rotate(-30)", "rotate(-30)"},
		{"matrix(1 2 3 4 5 6)", "matrix(1 2 3 4 5 6)"},
	} {
		m, ok := Compose(Parse(test.input))
		require.True(t, ok)
		assert.Equal(t, test.want, Stringify(Decompose(m, prec), 3), test.input)
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	prec := Precision{Float: 3, Transform: 5}
	for _, input := range []string{
		"translate(10 20)",
		"rotate(30 5 5)",
		"translate(5 7) rotate(30) scale(2)",
		"rotate(30) scale(2 3)",
		"scale(2 1) rotate(30)",
		"translate(5 7) scale(2 1) rotate(30)",
		"skewX(20)",
		"skewX(20) scale(2 3)",
		"skewY(20) scale(1.5)",
		"matrix(1 2 3 4 5 6)",
		"rotate(180)",
	} {
		m, ok := Compose(Parse(input))
		require.True(t, ok)
		back, ok := Compose(Decompose(m, prec))
		require.True(t, ok)
		assertMatrixInDelta(t, m, back, 1e-3, input)
	}
}

func TestRemoveUseless(t *testing.T) {
	got := RemoveUseless(Parse("translate(0) translate(0 0) rotate(0 5 5) scale(1) scale(1 1) skewX(0) matrix(1 0 0 1 0 0) scale(1 2)"))
	assert.Equal(t, []Transform{{"scale", []float64{1, 2}}}, got)
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "translate(10-20)rotate(45 .5.5)", Stringify(Parse("translate(10,-20) rotate(45,0.5,0.5)"), 3))
	assert.Equal(t, "scale(1.235)", Stringify([]Transform{{"scale", []float64{1.23456}}}, 3))
}

func TestTransformArc(t *testing.T) {
	arc := []float64{5, 5, 0, 0, 1, 10, 0}

	got := TransformArc([2]float64{0, 0}, arc, rasterx.Identity.Scale(2, 2))
	assert.InDeltaSlice(t, []float64{10, 10, 0, 0, 1, 10, 0}, got, 1e-9)
	assert.Equal(t, []float64{5, 5, 0, 0, 1, 10, 0}, arc) // not mutated

	got = TransformArc([2]float64{0, 0}, arc, rasterx.Identity.Scale(2, 1))
	assert.InDeltaSlice(t, []float64{10, 5, 0, 0, 1, 10, 0}, got, 1e-9)

	// mirroring flips the sweep flag
	got = TransformArc([2]float64{0, 0}, arc, rasterx.Identity.Scale(-1, 1))
	assert.Equal(t, 0., got[4])
	got = TransformArc([2]float64{0, 0}, arc, rasterx.Identity.Scale(-1, -1))
	assert.Equal(t, 1., got[4])

	ellipse := []float64{10, 5, 0, 0, 1, 20, 0}
	got = TransformArc([2]float64{0, 0}, ellipse, rasterx.Identity.Rotate(rad(90)))
	assert.InDelta(t, 10, got[0], 1e-9)
	assert.InDelta(t, 5, got[1], 1e-9)
	assert.InDelta(t, 90, got[2], 1e-6)
}
