package svgplugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanupPlugins(t *testing.T) {
	runTable(t, []pluginTest{
		{name: "cleanupAttrs", input: "<svg><rect class=\"a\nb   c \"/></svg>", expected: `<svg><rect class="a b c"/></svg>`},
		{
			name:     "cleanupEnableBackground",
			input:    `<svg width="100" height="50" enable-background="new 0 0 100 50"><filter/></svg>`,
			expected: `<svg width="100" height="50"><filter/></svg>`,
		},
		{
			name:     "cleanupEnableBackground",
			input:    `<svg><mask width="100" height="50" enable-background="new 0 0 100 50"/><filter/></svg>`,
			expected: `<svg><mask width="100" height="50" enable-background="new"/><filter/></svg>`,
		},
		{name: "cleanupEnableBackground", input: `<svg><rect enable-background="new"/></svg>`, expected: `<svg><rect/></svg>`},
		{
			name:     "cleanupIds",
			input:    `<svg><defs><linearGradient id="gradient"/></defs><rect id="unused" fill="url(#gradient)"/><use xlink:href="#gradient"/></svg>`,
			expected: `<svg><defs><linearGradient id="a"/></defs><rect fill="url(#a)"/><use xlink:href="#a"/></svg>`,
		},
		{
			name:     "cleanupIds",
			input:    `<svg><rect id="elem"><animate id="anim" begin="elem.click"/></rect><rect id="elem"/></svg>`,
			expected: `<svg><rect id="a"><animate begin="a.click"/></rect><rect/></svg>`,
		},
		{
			name:     "cleanupIds",
			params:   Params{"preserve": []any{"keep"}, "preservePrefixes": "icon-"},
			input:    `<svg><rect id="keep"/><rect id="icon-1"/><rect id="drop"/></svg>`,
			expected: `<svg><rect id="keep"/><rect id="icon-1"/><rect/></svg>`,
		},
		{
			name:     "cleanupIds",
			params:   Params{"minify": false},
			input:    `<svg><path id="shape"/><use href="#shape"/></svg>`,
			expected: `<svg><path id="shape"/><use href="#shape"/></svg>`,
		},
		{
			name:     "cleanupIds",
			input:    `<svg><style>#a{fill:red}</style><rect id="a"/></svg>`,
			expected: `<svg><style>#a{fill:red}</style><rect id="a"/></svg>`,
		},
		{
			name:     "cleanupIds",
			input:    `<svg><defs><path id="p"/></defs></svg>`,
			expected: `<svg><defs><path id="p"/></defs></svg>`,
		},
		{
			name:     "cleanupNumericValues",
			input:    `<svg viewBox="0, 0, 20.0001, 10" version="1.10"><rect width="10.12345px" height="1in" x="0.5" y="1em"/></svg>`,
			expected: `<svg viewBox="0 0 20 10" version="1.10"><rect width="10.123" height="96" x=".5" y="1em"/></svg>`,
		},
		{
			name:     "cleanupNumericValues",
			params:   Params{"floatPrecision": 1, "leadingZero": false, "defaultPx": false},
			input:    `<svg><rect width="0.55px"/></svg>`,
			expected: `<svg><rect width="0.6px"/></svg>`,
		},
		{
			name:     "convertEllipseToCircle",
			input:    `<svg><ellipse rx="5" ry="5" cx="1"/><ellipse rx="5" ry="6"/><ellipse rx="auto" ry="2"/></svg>`,
			expected: `<svg><circle cx="1" r="5"/><ellipse rx="5" ry="6"/><circle r="2"/></svg>`,
		},
		{
			name:     "moveGroupAttrsToElems",
			input:    `<svg><g transform="scale(2)"><path transform="rotate(45)" d="M0 0"/><g/></g></svg>`,
			expected: `<svg><g><path transform="scale(2) rotate(45)" d="M0 0"/><g transform="scale(2)"/></g></svg>`,
		},
		{
			name:     "moveGroupAttrsToElems",
			input:    `<svg><g transform="scale(2)" clip-path="url(#a)"><path d="M0 0"/></g></svg>`,
			expected: `<svg><g transform="scale(2)" clip-path="url(#a)"><path d="M0 0"/></g></svg>`,
		},
		{
			name:     "sortDefsChildren",
			input:    `<svg><defs><text/><path/><rect/><circle/><path/></defs></svg>`,
			expected: `<svg><defs><path/><path/><circle/><text/><rect/></defs></svg>`,
		},
		{
			name:     "convertStyleToAttrs",
			input:    `<svg><rect style="fill: red; foo: bar; stroke: blue !important"/></svg>`,
			expected: `<svg><rect style="foo:bar" fill="red" stroke="blue"/></svg>`,
		},
		{
			name:     "convertStyleToAttrs",
			params:   Params{"keepImportant": true},
			input:    `<svg><rect style="fill: red; foo: bar; stroke: blue !important"/></svg>`,
			expected: `<svg><rect style="foo:bar;stroke:blue!important" fill="red"/></svg>`,
		},
		{
			name:     "convertStyleToAttrs",
			input:    `<svg><text style="font-family: 'Serif'"/></svg>`,
			expected: `<svg><text font-family="Serif"/></svg>`,
		},
	})
}

func TestNextID(t *testing.T) {
	var id []int
	var got []string
	for range 53 {
		id = nextID(id)
		got = append(got, idString(id))
	}
	assert.Equal(t, "a", got[0])
	assert.Equal(t, "Z", got[51])
	assert.Equal(t, "aa", got[52])

	id = []int{51, 51}
	assert.Equal(t, "aaa", idString(nextID(id)))
}
