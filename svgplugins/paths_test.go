package svgplugins

import (
	"testing"

	"github.com/benoitkugler/svgo/svgpath"
	"github.com/benoitkugler/svgo/svgtree"
	"github.com/stretchr/testify/assert"
)

func TestPathPlugins(t *testing.T) {
	runTable(t, []pluginTest{
		{name: "convertPathData", input: `<svg><path d="M 10 10 L 20 10 L 20 20 z"/></svg>`, expected: `<svg><path d="M10 10h10v10z"/></svg>`},
		{name: "convertPathData", input: `<svg><path d="M10 10L10 10L20 20"/></svg>`, expected: `<svg><path d="m10 10 10 10"/></svg>`},
		{
			name:     "convertPathData",
			input:    `<svg><path stroke="red" stroke-linecap="round" d="M10 10L10 10"/></svg>`,
			expected: `<svg><path stroke="red" stroke-linecap="round" d="M10 10h0"/></svg>`,
		},
		{
			name:     "convertPathData",
			input:    `<svg><path transform="translate(10 20)" d="M0 0L10 0"/></svg>`,
			expected: `<svg><path d="M10 20h10"/></svg>`,
		},
		{
			name:     "convertPathData",
			input:    `<svg><path transform="translate(10 20)" stroke="red" d="M0 0L10 0"/></svg>`,
			expected: `<svg><path transform="translate(10 20)" stroke="red" d="M0 0h10"/></svg>`,
		},
		{
			name:     "convertPathData",
			input:    `<svg><path d="M1.23456 0L100.0001 0"/></svg>`,
			expected: `<svg><path d="M1.235 0H100"/></svg>`,
		},
		{
			name:     "mergePaths",
			input:    `<svg><path d="M0 0h10v10z" fill="red"/><path d="M20 20h10v10z" fill="red"/></svg>`,
			expected: `<svg><path d="M0 0h10v10zM20 20h10v10z" fill="red"/></svg>`,
		},
		{
			name:     "mergePaths",
			input:    `<svg><path d="M0 0h10v10z" fill="red"/><path d="M5 5h10v10z" fill="red"/></svg>`,
			expected: `<svg><path d="M0 0h10v10z" fill="red"/><path d="M5 5h10v10z" fill="red"/></svg>`,
		},
		{
			name:     "mergePaths",
			input:    `<svg><path d="M0 0h10v10z" fill="red"/><path d="M20 20h10v10z" fill="blue"/></svg>`,
			expected: `<svg><path d="M0 0h10v10z" fill="red"/><path d="M20 20h10v10z" fill="blue"/></svg>`,
		},
		{
			name:     "mergePaths",
			input:    `<svg><path d="M0 0h1"/><path d="M10 10h1"/><path d="M20 20h1"/></svg>`,
			expected: `<svg><path d="M0 0h1M10 10h1M20 20h1"/></svg>`,
		},
		{
			name:     "mergePaths",
			input:    `<svg><style>path{marker-end:url(#m)}</style><path d="M0 0h1"/><path d="M10 10h1"/></svg>`,
			expected: `<svg><style>path{marker-end:url(#m)}</style><path d="M0 0h1"/><path d="M10 10h1"/></svg>`,
		},
		{
			name:     "removeOffCanvasPaths",
			input:    `<svg viewBox="0 0 100 100"><path d="M200 200h10v10z"/><path d="M10 10h10"/><path d="M-10 50H200v10z"/></svg>`,
			expected: `<svg viewBox="0 0 100 100"><path d="M10 10h10"/><path d="M-10 50H200v10z"/></svg>`,
		},
		{
			name:     "removeOffCanvasPaths",
			input:    `<svg width="10" height="10"><g transform="translate(100)"><path d="M50 50h1"/></g></svg>`,
			expected: `<svg width="10" height="10"><g transform="translate(100)"><path d="M50 50h1"/></g></svg>`,
		},
		{
			name:  "reusePaths",
			input: `<svg><path d="M0 0h1" fill="red"/><path d="M0 0h1" fill="red"/><path d="M0 0h2"/></svg>`,
			expected: `<svg xmlns:xlink="http://www.w3.org/1999/xlink"><defs><path d="M0 0h1" fill="red" id="reuse-0"/></defs>` +
				`<use xlink:href="#reuse-0"/><use xlink:href="#reuse-0"/><path d="M0 0h2"/></svg>`,
		},
	})
}

func TestOptimizePath(t *testing.T) {
	opts := pathOptions{precision: 3, lineShorthands: true, removeUseless: true, utilizeAbsolute: true}
	data := svgpath.ToAbsolute(svgpath.Parse("M10 10l5 5l0 0c0 0 0 0 0 0s1 1 2 2z m1 1"))
	out := opts.optimize(data, false)
	assert.Equal(t, "m10 10 5 5c0 0 0 0 0 0s1 1 2 2zm1 1", svgpath.Stringify(out, 3, false))

	// the same data, optimized again, is unchanged
	again := opts.optimize(svgpath.ToAbsolute(out), false)
	assert.Equal(t, svgpath.Stringify(out, 3, false), svgpath.Stringify(again, 3, false))
}

func TestApplyMatrixClosePath(t *testing.T) {
	root, _ := svgtree.Parse(`<svg><path transform="translate(1 1)" d="M0 0h2v2zl1 1"/></svg>`, "")
	assert.NoError(t, Invoke(root, nil, []Instance{builtin(t, "convertPathData", nil)}, nil, nil))
	assert.Equal(t, `<svg><path d="M1 1h2v2zl1 1"/></svg>`, svgtree.Stringify(root, svgtree.StringifyOptions{}))
}
