package svgplugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertTransform(t *testing.T) {
	runTable(t, []pluginTest{
		{name: "convertTransform", input: `<svg><g transform="translate(10,0)"/></svg>`, expected: `<svg><g transform="translate(10)"/></svg>`},
		{name: "convertTransform", input: `<svg><g transform="scale(2) scale(.5)"/></svg>`, expected: `<svg><g/></svg>`},
		{name: "convertTransform", input: `<svg><g transform="matrix(1 0 0 1 10 20)"/></svg>`, expected: `<svg><g transform="translate(10 20)"/></svg>`},
		{
			name:     "convertTransform",
			input:    `<svg><g transform="translate(10,20) scale(2)"/></svg>`,
			expected: `<svg><g transform="matrix(2 0 0 2 10 20)"/></svg>`,
		},
		{
			name:     "convertTransform",
			input:    `<svg><linearGradient gradientTransform="translate(0)"/><pattern patternTransform="scale(3,3)"/></svg>`,
			expected: `<svg><linearGradient/><pattern patternTransform="scale(3)"/></svg>`,
		},
		{
			name:     "convertTransform",
			params:   Params{"collapseIntoOne": false},
			input:    `<svg><g transform="translate(10 20) rotate(45) translate(-10 -20)"/></svg>`,
			expected: `<svg><g transform="rotate(45 10 20)"/></svg>`,
		},
	})
}

func TestSmartRound(t *testing.T) {
	for _, test := range []struct {
		precision int
		in, out   float64
	}{
		{3, 1.0001, 1},
		{3, 2.123, 2.123},
		{3, 2.1234, 2.123},
		{2, 0.999, 1},
	} {
		assert.Equal(t, test.out, smartRound(test.precision, []float64{test.in})[0], test.in)
	}
}
