package svgtree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringify(t *testing.T) {
	for _, input := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"><g id="a"><path d="M0 0h10"/></g></svg>`,
		`<svg><text>  a  <tspan>b</tspan> c</text></svg>`,
		`<!--c--><svg><style><![CDATA[rect{fill:red}]]></style></svg>`,
		`<svg><title>a &amp; b</title><rect fill="url(&quot;#a&quot;)"/></svg>`,
	} {
		root, err := Parse(input, "")
		require.NoError(t, err)
		assert.Equal(t, input, Stringify(root, StringifyOptions{}))
	}
}

func TestParseText(t *testing.T) {
	root, err := Parse("<svg>\n  <g>\n   hello  \n  </g>\n  <text> keep </text>\n</svg>", "")
	require.NoError(t, err)

	svg := root.Children()[0].(*Element)
	els := Elements(svg)
	require.Len(t, els, 2)

	g := els[0]
	require.Len(t, g.Children(), 1)
	assert.Equal(t, "hello", g.Children()[0].(*Text).Value)

	text := els[1]
	require.Len(t, text.Children(), 1)
	assert.Equal(t, " keep ", text.Children()[0].(*Text).Value)
}

func TestParseEntities(t *testing.T) {
	input := `<!DOCTYPE svg [ <!ENTITY ns "http://example.org"> ]><svg a="&ns;" b="&#x41;&#66;&lt;"/>`
	root, err := Parse(input, "")
	require.NoError(t, err)

	var svg *Element
	for _, c := range root.Children() {
		if el, ok := c.(*Element); ok {
			svg = el
		}
	}
	require.NotNil(t, svg)
	assert.Equal(t, "http://example.org", svg.Attrs.Value("a"))
	assert.Equal(t, "AB<", svg.Attrs.Value("b"))
}

func TestParseUnclosed(t *testing.T) {
	root, err := Parse("<svg><g>", "")
	require.NoError(t, err)
	svg := root.Children()[0].(*Element)
	assert.Len(t, Elements(svg), 1)
}

func TestParseError(t *testing.T) {
	_, err := Parse("<svg>\n<g></svg>", "a.svg")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, 4, perr.Column)
	assert.Contains(t, perr.Error(), "a.svg:2:4:")

	snippet := perr.Snippet()
	assert.Contains(t, snippet, "> 2 | <g></svg>")
	assert.Contains(t, snippet, "|    ^")
}

func TestStringifyPretty(t *testing.T) {
	root, err := Parse(`<svg><g><rect/></g><text>a<tspan>b</tspan></text></svg>`, "")
	require.NoError(t, err)

	out := Stringify(root, StringifyOptions{Pretty: true, Indent: IndentWidth(2)})
	assert.Equal(t, "<svg>\n  <g>\n    <rect/>\n  </g>\n  <text>a<tspan>b</tspan></text>\n</svg>\n", out)

	short := false
	out = Stringify(root, StringifyOptions{UseShortTags: &short, EOL: "crlf", FinalNewline: true})
	assert.Equal(t, "<svg><g><rect></rect></g><text>a<tspan>b</tspan></text></svg>\r\n", out)
}
