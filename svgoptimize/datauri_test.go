package svgoptimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "a-_.!~*'()%20%3D%22%C3%A9%22", encodeURIComponent(`a-_.!~*'() ="é"`))
}

func TestDataURIRoundTrip(t *testing.T) {
	svg := "<svg>\n  <text>100% é</text>\n</svg>"
	for _, mode := range []string{"", "base64", "enc", "unenc"} {
		assert.Equal(t, svg, DecodeDataURI(EncodeDataURI(svg, mode)), mode)
	}
	assert.Equal(t, svg, DecodeDataURI("data:image/svg+xml;charset=utf-8,"+encodeURIComponent(svg)))
	assert.Equal(t, "not a data uri", DecodeDataURI("not a data uri"))
}
