package svgplugins

import "testing"

func TestRemoveUnknownsAndDefaults(t *testing.T) {
	runTable(t, []pluginTest{
		{
			name:     "removeUnknownsAndDefaults",
			input:    `<svg><rect x="0" y="0" width="1" height="1" foo="bar" data-a="1" aria-label="r"/></svg>`,
			expected: `<svg><rect width="1" height="1" data-a="1" aria-label="r"/></svg>`,
		},
		{
			name:     "removeUnknownsAndDefaults",
			params:   Params{"keepDataAttrs": false, "unknownAttrs": false},
			input:    `<svg><rect foo="bar" data-a="1"/></svg>`,
			expected: `<svg><rect foo="bar" data-a="1"/></svg>`,
		},
		{
			name:     "removeUnknownsAndDefaults",
			input:    `<svg><g fill="red"><path fill="red" d="M0 0"/><path id="p" fill="red"/></g></svg>`,
			expected: `<svg><g fill="red"><path d="M0 0"/><path id="p" fill="red"/></g></svg>`,
		},
		{
			name:     "removeUnknownsAndDefaults",
			input:    `<svg><rect fill="#000"/><g fill="red"><rect fill="#000"/></g></svg>`,
			expected: `<svg><rect/><g fill="red"><rect fill="#000"/></g></svg>`,
		},
		{
			name:     "removeUnknownsAndDefaults",
			input:    `<svg><foo/><title>t</title><rect><g/></rect></svg>`,
			expected: `<svg><title>t</title><rect/></svg>`,
		},
		{
			name:     "removeUnknownsAndDefaults",
			input:    `<svg><x:foo x:bar="1"/><foreignObject><div class="a"/></foreignObject></svg>`,
			expected: `<svg><x:foo x:bar="1"/><foreignObject><div class="a"/></foreignObject></svg>`,
		},
		{
			name:     "removeUnknownsAndDefaults",
			input:    `<svg><filter><feGaussianBlur stdDeviation="2" custom="1"/></filter></svg>`,
			expected: `<svg><filter><feGaussianBlur stdDeviation="2" custom="1"/></filter></svg>`,
		},
	})
}

func TestRemoveUselessStrokeAndFill(t *testing.T) {
	runTable(t, []pluginTest{
		{
			name:     "removeUselessStrokeAndFill",
			input:    `<svg><rect stroke="none" stroke-width="2" fill="none" fill-opacity=".5"/></svg>`,
			expected: `<svg><rect fill="none"/></svg>`,
		},
		{
			name:     "removeUselessStrokeAndFill",
			input:    `<svg><g stroke="red"><rect stroke-opacity="0"/></g></svg>`,
			expected: `<svg><g stroke="red"><rect stroke="none"/></g></svg>`,
		},
		{
			name:     "removeUselessStrokeAndFill",
			input:    `<svg><rect fill-opacity="0" fill="red"/><circle id="c" stroke="none"/></svg>`,
			expected: `<svg><rect fill="none"/><circle id="c" stroke="none"/></svg>`,
		},
		{
			name:     "removeUselessStrokeAndFill",
			input:    `<svg><path marker-end="url(#m)" d="M0 0"/></svg>`,
			expected: `<svg><path marker-end="url(#m)" d="M0 0"/></svg>`,
		},
		{
			name:     "removeUselessStrokeAndFill",
			input:    `<svg><style>rect{}</style><rect stroke="none"/></svg>`,
			expected: `<svg><style>rect{}</style><rect stroke="none"/></svg>`,
		},
		{
			name:     "removeUselessStrokeAndFill",
			params:   Params{"removeNone": true},
			input:    `<svg><rect fill="none"/><rect/></svg>`,
			expected: `<svg><rect/></svg>`,
		},
	})
}
