package svgstyle

func set(names ...string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

var presentationAttrs = set(
	"alignment-baseline", "baseline-shift", "clip-path", "clip-rule", "clip",
	"color-interpolation-filters", "color-interpolation", "color-profile",
	"color-rendering", "color", "cursor", "direction", "display",
	"dominant-baseline", "enable-background", "fill-opacity", "fill-rule",
	"fill", "filter", "flood-color", "flood-opacity", "font-family",
	"font-size-adjust", "font-size", "font-stretch", "font-style",
	"font-variant", "font-weight", "glyph-orientation-horizontal",
	"glyph-orientation-vertical", "image-rendering", "letter-spacing",
	"lighting-color", "marker-end", "marker-mid", "marker-start", "mask",
	"opacity", "overflow", "paint-order", "pointer-events", "shape-rendering",
	"stop-color", "stop-opacity", "stroke-dasharray", "stroke-dashoffset",
	"stroke-linecap", "stroke-linejoin", "stroke-miterlimit", "stroke-opacity",
	"stroke-width", "stroke", "text-anchor", "text-decoration", "text-overflow",
	"text-rendering", "transform", "transform-origin", "unicode-bidi",
	"vector-effect", "visibility", "word-spacing", "writing-mode",
)

var inheritableAttrs = set(
	"clip-rule", "color-interpolation-filters", "color-interpolation",
	"color-profile", "color-rendering", "color", "cursor", "direction",
	"dominant-baseline", "fill-opacity", "fill-rule", "fill", "font-family",
	"font-size-adjust", "font-size", "font-stretch", "font-style",
	"font-variant", "font-weight", "font", "glyph-orientation-horizontal",
	"glyph-orientation-vertical", "image-rendering", "letter-spacing",
	"marker-end", "marker-mid", "marker-start", "marker", "paint-order",
	"pointer-events", "shape-rendering", "stroke-dasharray",
	"stroke-dashoffset", "stroke-linecap", "stroke-linejoin",
	"stroke-miterlimit", "stroke-opacity", "stroke-width", "stroke",
	"text-anchor", "text-rendering", "transform", "visibility", "word-spacing",
	"writing-mode",
)

// presentation attributes of a group which are not inherited but
// still apply to the group as a whole
var nonInheritableGroupAttrs = set(
	"clip-path", "display", "filter", "mask", "opacity", "text-decoration",
	"transform", "unicode-bidi",
)

// IsPresentation returns true for the attributes which may also be
// specified as CSS properties.
func IsPresentation(name string) bool { return presentationAttrs[name] }

// IsInheritable returns true for the properties inherited by default.
func IsInheritable(name string) bool { return inheritableAttrs[name] }

// IsNonInheritableGroupAttr returns true for the presentation attributes
// applying to a group without being inherited by its children.
func IsNonInheritableGroupAttr(name string) bool { return nonInheritableGroupAttrs[name] }
