package svgplugins

import "github.com/benoitkugler/svgo/svgstyle"

func set(names ...string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

var elemsGroups = map[string][]string{
	"animation":   {"animate", "animateColor", "animateMotion", "animateTransform", "set"},
	"descriptive": {"desc", "metadata", "title"},
	"shape":       {"circle", "ellipse", "line", "path", "polygon", "polyline", "rect"},
	"structural":  {"defs", "g", "svg", "symbol", "use"},
	"paintServer": {"hatch", "linearGradient", "meshGradient", "pattern", "radialGradient", "solidColor"},
	"nonRendering": {
		"clipPath", "filter", "linearGradient", "marker", "mask", "pattern",
		"radialGradient", "solidColor", "symbol",
	},
	"container": {
		"a", "defs", "foreignObject", "g", "marker", "mask", "missing-glyph",
		"pattern", "svg", "switch", "symbol",
	},
	"textContent": {
		"a", "altGlyph", "altGlyphDef", "altGlyphItem", "glyph", "glyphRef",
		"text", "textPath", "tref", "tspan",
	},
	"textContentChild": {"altGlyph", "textPath", "tref", "tspan"},
	"lightSource":      {"feDiffuseLighting", "feDistantLight", "fePointLight", "feSpecularLighting", "feSpotLight"},
	"filterPrimitive": {
		"feBlend", "feColorMatrix", "feComponentTransfer", "feComposite",
		"feConvolveMatrix", "feDiffuseLighting", "feDisplacementMap",
		"feDropShadow", "feFlood", "feFuncA", "feFuncB", "feFuncG", "feFuncR",
		"feGaussianBlur", "feImage", "feMerge", "feMergeNode", "feMorphology",
		"feOffset", "feSpecularLighting", "feTile", "feTurbulence",
	},
}

var (
	shapeElems        = set(elemsGroups["shape"]...)
	containerElems    = set(elemsGroups["container"]...)
	nonRenderingElems = set(elemsGroups["nonRendering"]...)
	textContentElems  = set(elemsGroups["textContent"]...)
	animationElems    = set(elemsGroups["animation"]...)

	pathElems = set("glyph", "missing-glyph", "path")

	// attributes which may reference another element with url(#id)
	referencesProps = set(
		"clip-path", "color-profile", "fill", "filter", "marker-end",
		"marker-mid", "marker-start", "mask", "stroke", "style",
	)
)

// attrsGroups lists the attributes of each group. The "presentation"
// group is resolved with svgstyle.IsPresentation.
var attrsGroups = map[string][]string{
	"animationAddition":        {"additive", "accumulate"},
	"animationAttributeTarget": {"attributeType", "attributeName"},
	"animationEvent":           {"onbegin", "onend", "onrepeat", "onload"},
	"animationTiming":          {"begin", "dur", "end", "fill", "max", "min", "repeatCount", "repeatDur", "restart"},
	"animationValue":           {"by", "calcMode", "from", "keySplines", "keyTimes", "to", "values"},
	"conditionalProcessing":    {"requiredExtensions", "requiredFeatures", "systemLanguage"},
	"core":                     {"id", "tabindex", "xml:base", "xml:lang", "xml:space"},
	"graphicalEvent": {
		"onactivate", "onclick", "onfocusin", "onfocusout", "onload",
		"onmousedown", "onmousemove", "onmouseout", "onmouseover", "onmouseup",
	},
	"documentEvent":        {"onabort", "onerror", "onresize", "onscroll", "onunload", "onzoom"},
	"documentElementEvent": {"oncopy", "oncut", "onpaste"},
	"filterPrimitive":      {"x", "y", "width", "height", "result"},
	"transferFunction":     {"amplitude", "exponent", "intercept", "offset", "slope", "tableValues", "type"},
	"xlink": {
		"xlink:actuate", "xlink:arcrole", "xlink:href", "xlink:role",
		"xlink:show", "xlink:title", "xlink:type",
	},
}

var attrsGroupsDefaults = map[string]map[string]string{
	"core": {"xml:space": "default"},
	"presentation": {
		"clip": "auto", "clip-path": "none", "clip-rule": "nonzero", "mask": "none",
		"opacity": "1", "stop-color": "#000", "stop-opacity": "1",
		"fill-opacity": "1", "fill-rule": "nonzero", "fill": "#000",
		"stroke": "none", "stroke-width": "1", "stroke-linecap": "butt",
		"stroke-linejoin": "miter", "stroke-miterlimit": "4",
		"stroke-dasharray": "none", "stroke-dashoffset": "0",
		"stroke-opacity": "1", "paint-order": "normal", "vector-effect": "none",
		"display": "inline", "visibility": "visible", "marker-start": "none",
		"marker-mid": "none", "marker-end": "none",
		"color-interpolation": "sRGB", "color-interpolation-filters": "linearRGB",
		"color-rendering": "auto", "shape-rendering": "auto",
		"text-rendering": "auto", "image-rendering": "auto",
		"font-style": "normal", "font-variant": "normal", "font-weight": "normal",
		"font-stretch": "normal", "font-size": "medium", "font-size-adjust": "none",
		"kerning": "auto", "letter-spacing": "normal", "word-spacing": "normal",
		"text-decoration": "none", "text-anchor": "start", "text-overflow": "clip",
		"writing-mode": "lr-tb", "glyph-orientation-vertical": "auto",
		"glyph-orientation-horizontal": "0deg", "direction": "ltr",
		"unicode-bidi": "normal", "dominant-baseline": "auto",
		"alignment-baseline": "baseline", "baseline-shift": "baseline",
	},
	"transferFunction": {"slope": "1", "intercept": "0", "amplitude": "1", "exponent": "1", "offset": "0"},
}

type elemConfig struct {
	attrsGroups   []string
	attrs         []string
	defaults      map[string]string
	contentGroups []string
	content       []string

	// anyAttrs disables the filtering of unknown attributes
	anyAttrs bool
}

var (
	graphicsGroups   = []string{"conditionalProcessing", "core", "graphicalEvent", "presentation"}
	containerGroups  = []string{"animation", "descriptive", "paintServer", "shape", "structural"}
	containerContent = []string{
		"a", "altGlyphDef", "clipPath", "color-profile", "cursor", "filter",
		"font", "font-face", "foreignObject", "image", "marker", "mask",
		"pattern", "script", "style", "switch", "text", "view",
	}
	textChildContent = []string{"a", "altGlyph", "animate", "animateColor", "set", "tref", "tspan"}
	gradientContent  = []string{"animate", "animateTransform", "set", "stop"}
	shapeContent     = []string{"animation", "descriptive"}
	animateGroups    = []string{
		"conditionalProcessing", "core", "animationAddition", "animationAttributeTarget",
		"animationEvent", "animationTiming", "animationValue", "xlink",
	}
)

var elems = map[string]elemConfig{
	"a": {
		attrsGroups:   []string{"conditionalProcessing", "core", "graphicalEvent", "presentation", "xlink"},
		attrs:         []string{"class", "externalResourcesRequired", "style", "target", "transform", "href"},
		defaults:      map[string]string{"target": "_self"},
		contentGroups: containerGroups,
		content:       append([]string{"tspan"}, containerContent...),
	},
	"animate": {
		attrsGroups:   append([]string{"presentation"}, animateGroups...),
		attrs:         []string{"externalResourcesRequired"},
		contentGroups: []string{"descriptive"},
	},
	"animateMotion": {
		attrsGroups:   []string{"conditionalProcessing", "core", "animationEvent", "xlink", "animationTiming", "animationValue", "animationAddition"},
		attrs:         []string{"externalResourcesRequired", "keyPoints", "origin", "path", "rotate"},
		defaults:      map[string]string{"rotate": "0"},
		contentGroups: []string{"descriptive"},
		content:       []string{"mpath"},
	},
	"animateTransform": {
		attrsGroups:   animateGroups,
		attrs:         []string{"externalResourcesRequired", "type"},
		contentGroups: []string{"descriptive"},
	},
	"circle": {
		attrsGroups:   graphicsGroups,
		attrs:         []string{"class", "cx", "cy", "externalResourcesRequired", "r", "style", "transform"},
		defaults:      map[string]string{"cx": "0", "cy": "0"},
		contentGroups: shapeContent,
	},
	"clipPath": {
		attrsGroups:   []string{"conditionalProcessing", "core", "presentation"},
		attrs:         []string{"class", "clipPathUnits", "externalResourcesRequired", "style", "transform"},
		defaults:      map[string]string{"clipPathUnits": "userSpaceOnUse"},
		contentGroups: []string{"animation", "descriptive", "shape"},
		content:       []string{"text", "use"},
	},
	"defs": {
		attrsGroups:   graphicsGroups,
		attrs:         []string{"class", "externalResourcesRequired", "style", "transform"},
		contentGroups: containerGroups,
		content:       containerContent,
	},
	"desc": {attrsGroups: []string{"core"}, attrs: []string{"class", "style"}},
	"ellipse": {
		attrsGroups:   graphicsGroups,
		attrs:         []string{"class", "cx", "cy", "externalResourcesRequired", "rx", "ry", "style", "transform"},
		defaults:      map[string]string{"cx": "0", "cy": "0"},
		contentGroups: shapeContent,
	},
	"filter": {
		attrsGroups: []string{"core", "presentation", "xlink"},
		attrs: []string{
			"class", "externalResourcesRequired", "filterRes", "filterUnits",
			"height", "href", "primitiveUnits", "style", "width", "x", "y",
		},
		defaults: map[string]string{
			"primitiveUnits": "userSpaceOnUse", "x": "-10%", "y": "-10%",
			"width": "120%", "height": "120%",
		},
		contentGroups: []string{"descriptive", "filterPrimitive"},
		content:       []string{"animate", "set"},
	},
	"foreignObject": {
		attrsGroups: []string{"core", "conditionalProcessing", "graphicalEvent", "presentation"},
		attrs:       []string{"class", "style", "externalResourcesRequired", "transform", "x", "y", "width", "height"},
		defaults:    map[string]string{"x": "0", "y": "0"},
	},
	"g": {
		attrsGroups:   graphicsGroups,
		attrs:         []string{"class", "externalResourcesRequired", "style", "transform"},
		contentGroups: containerGroups,
		content:       containerContent,
	},
	"image": {
		attrsGroups: []string{"core", "conditionalProcessing", "graphicalEvent", "xlink", "presentation"},
		attrs: []string{
			"class", "externalResourcesRequired", "height", "href",
			"preserveAspectRatio", "style", "transform", "width", "x", "y",
		},
		defaults:      map[string]string{"x": "0", "y": "0", "preserveAspectRatio": "xMidYMid meet"},
		contentGroups: shapeContent,
	},
	"line": {
		attrsGroups:   graphicsGroups,
		attrs:         []string{"class", "externalResourcesRequired", "style", "transform", "x1", "x2", "y1", "y2"},
		defaults:      map[string]string{"x1": "0", "y1": "0", "x2": "0", "y2": "0"},
		contentGroups: shapeContent,
	},
	"linearGradient": {
		attrsGroups: []string{"core", "presentation", "xlink"},
		attrs: []string{
			"class", "externalResourcesRequired", "gradientTransform",
			"gradientUnits", "href", "spreadMethod", "style", "x1", "x2", "y1", "y2",
		},
		defaults:      map[string]string{"x1": "0", "y1": "0", "x2": "100%", "y2": "0", "spreadMethod": "pad"},
		contentGroups: []string{"descriptive"},
		content:       gradientContent,
	},
	"marker": {
		attrsGroups: []string{"core", "presentation"},
		attrs: []string{
			"class", "externalResourcesRequired", "markerHeight", "markerUnits",
			"markerWidth", "orient", "preserveAspectRatio", "refX", "refY",
			"style", "viewBox",
		},
		defaults: map[string]string{
			"markerUnits": "strokeWidth", "refX": "0", "refY": "0",
			"markerHeight": "3", "markerWidth": "3",
		},
		contentGroups: containerGroups,
		content:       containerContent,
	},
	"mask": {
		attrsGroups: []string{"conditionalProcessing", "core", "presentation"},
		attrs: []string{
			"class", "externalResourcesRequired", "height", "mask-type",
			"maskContentUnits", "maskUnits", "style", "width", "x", "y",
		},
		defaults: map[string]string{
			"maskUnits": "objectBoundingBox", "maskContentUnits": "userSpaceOnUse",
			"x": "-10%", "y": "-10%", "width": "120%", "height": "120%",
		},
		contentGroups: containerGroups,
		content:       containerContent,
	},
	"metadata": {attrsGroups: []string{"core"}},
	"mpath": {
		attrsGroups:   []string{"core", "xlink"},
		attrs:         []string{"externalResourcesRequired", "href"},
		contentGroups: []string{"descriptive"},
	},
	"path": {
		attrsGroups:   graphicsGroups,
		attrs:         []string{"class", "d", "externalResourcesRequired", "pathLength", "style", "transform"},
		contentGroups: shapeContent,
	},
	"pattern": {
		attrsGroups: []string{"conditionalProcessing", "core", "presentation", "xlink"},
		attrs: []string{
			"class", "externalResourcesRequired", "height", "patternContentUnits",
			"patternTransform", "patternUnits", "preserveAspectRatio", "style",
			"viewBox", "width", "x", "y", "href",
		},
		defaults: map[string]string{
			"x": "0", "y": "0", "width": "0", "height": "0",
			"patternUnits": "objectBoundingBox", "patternContentUnits": "userSpaceOnUse",
		},
		contentGroups: containerGroups,
		content:       containerContent,
	},
	"polygon": {
		attrsGroups:   graphicsGroups,
		attrs:         []string{"class", "externalResourcesRequired", "points", "style", "transform"},
		contentGroups: shapeContent,
	},
	"polyline": {
		attrsGroups:   graphicsGroups,
		attrs:         []string{"class", "externalResourcesRequired", "points", "style", "transform"},
		contentGroups: shapeContent,
	},
	"radialGradient": {
		attrsGroups: []string{"core", "presentation", "xlink"},
		attrs: []string{
			"class", "cx", "cy", "externalResourcesRequired", "fr", "fx", "fy",
			"gradientTransform", "gradientUnits", "href", "r", "spreadMethod", "style",
		},
		defaults:      map[string]string{"gradientUnits": "objectBoundingBox", "cx": "50%", "cy": "50%", "r": "50%"},
		contentGroups: []string{"descriptive"},
		content:       gradientContent,
	},
	"rect": {
		attrsGroups:   graphicsGroups,
		attrs:         []string{"class", "externalResourcesRequired", "height", "rx", "ry", "style", "transform", "width", "x", "y"},
		defaults:      map[string]string{"x": "0", "y": "0"},
		contentGroups: shapeContent,
	},
	"script": {
		attrsGroups: []string{"core", "xlink"},
		attrs:       []string{"externalResourcesRequired", "type", "href"},
	},
	"set": {
		attrsGroups:   []string{"conditionalProcessing", "core", "animationEvent", "animationAttributeTarget", "animationTiming", "xlink"},
		attrs:         []string{"externalResourcesRequired", "to"},
		contentGroups: []string{"descriptive"},
	},
	"stop": {
		attrsGroups: []string{"core", "presentation"},
		attrs:       []string{"class", "style", "offset", "path"},
		content:     []string{"animate", "animateColor", "set"},
	},
	"style": {
		attrsGroups: []string{"core"},
		attrs:       []string{"type", "media", "title"},
		defaults:    map[string]string{"type": "text/css"},
	},
	"svg": {
		attrsGroups: []string{"conditionalProcessing", "core", "documentEvent", "graphicalEvent", "presentation"},
		attrs: []string{
			"baseProfile", "class", "contentScriptType", "contentStyleType",
			"externalResourcesRequired", "height", "preserveAspectRatio", "style",
			"version", "viewBox", "width", "x", "y", "zoomAndPan",
		},
		defaults: map[string]string{
			"x": "0", "y": "0", "width": "100%", "height": "100%",
			"preserveAspectRatio": "xMidYMid meet", "zoomAndPan": "magnify",
			"version": "1.1", "baseProfile": "none",
			"contentScriptType": "application/ecmascript", "contentStyleType": "text/css",
		},
		contentGroups: containerGroups,
		content:       containerContent,
	},
	"switch": {
		attrsGroups:   graphicsGroups,
		attrs:         []string{"class", "externalResourcesRequired", "style", "transform"},
		contentGroups: []string{"animation", "descriptive", "shape"},
		content:       []string{"a", "foreignObject", "g", "image", "svg", "switch", "text", "use"},
	},
	"symbol": {
		attrsGroups:   []string{"core", "graphicalEvent", "presentation"},
		attrs:         []string{"class", "externalResourcesRequired", "preserveAspectRatio", "refX", "refY", "style", "viewBox"},
		defaults:      map[string]string{"refX": "0", "refY": "0"},
		contentGroups: containerGroups,
		content:       containerContent,
	},
	"text": {
		attrsGroups: graphicsGroups,
		attrs: []string{
			"class", "dx", "dy", "externalResourcesRequired", "lengthAdjust",
			"rotate", "style", "textLength", "transform", "x", "y",
		},
		defaults:      map[string]string{"x": "0", "y": "0", "lengthAdjust": "spacing"},
		contentGroups: []string{"animation", "descriptive", "textContentChild"},
		content:       []string{"a"},
	},
	"textPath": {
		attrsGroups: []string{"conditionalProcessing", "core", "graphicalEvent", "presentation", "xlink"},
		attrs: []string{
			"class", "d", "externalResourcesRequired", "href", "method", "spacing",
			"startOffset", "style", "textLength", "lengthAdjust",
		},
		defaults:      map[string]string{"startOffset": "0", "method": "align", "spacing": "exact"},
		contentGroups: []string{"descriptive"},
		content:       textChildContent,
	},
	"title": {attrsGroups: []string{"core"}, attrs: []string{"class", "style"}},
	"tref": {
		attrsGroups:   []string{"conditionalProcessing", "core", "graphicalEvent", "presentation", "xlink"},
		attrs:         []string{"class", "externalResourcesRequired", "href", "style"},
		contentGroups: []string{"descriptive"},
		content:       []string{"animate", "animateColor", "set"},
	},
	"tspan": {
		attrsGroups: graphicsGroups,
		attrs: []string{
			"class", "dx", "dy", "externalResourcesRequired", "lengthAdjust",
			"rotate", "style", "textLength", "x", "y",
		},
		contentGroups: []string{"descriptive"},
		content:       textChildContent,
	},
	"use": {
		attrsGroups:   []string{"core", "conditionalProcessing", "graphicalEvent", "presentation", "xlink"},
		attrs:         []string{"class", "externalResourcesRequired", "height", "href", "style", "transform", "width", "x", "y"},
		defaults:      map[string]string{"x": "0", "y": "0"},
		contentGroups: shapeContent,
	},
	"view": {
		attrsGroups:   []string{"core"},
		attrs:         []string{"externalResourcesRequired", "preserveAspectRatio", "style", "viewBox", "viewTarget", "zoomAndPan"},
		contentGroups: []string{"descriptive"},
	},
}

func init() {
	// filter primitives keep all their attributes
	for _, name := range elemsGroups["filterPrimitive"] {
		elems[name] = elemConfig{anyAttrs: true, content: []string{"animate", "set"}}
	}
	elems["feComponentTransfer"] = elemConfig{anyAttrs: true, content: []string{"feFuncA", "feFuncB", "feFuncG", "feFuncR"}}
	elems["feMerge"] = elemConfig{anyAttrs: true, content: []string{"feMergeNode"}}
	for _, name := range []string{"feDiffuseLighting", "feSpecularLighting"} {
		elems[name] = elemConfig{anyAttrs: true, contentGroups: []string{"descriptive", "lightSource"}}
	}
	for _, name := range []string{"feDistantLight", "fePointLight", "feSpotLight"} {
		elems[name] = elemConfig{anyAttrs: true, content: []string{"animate", "set"}}
	}

	for name, config := range elems {
		elemsRules[name] = resolveElem(config)
	}
}

// elemRules is the resolved form of an elemConfig.
type elemRules struct {
	children     map[string]bool
	attrs        map[string]bool
	presentation bool
	anyAttrs     bool
	defaults     map[string]string
}

func (r *elemRules) allowsAttr(name string) bool {
	return r.anyAttrs || r.attrs[name] || (r.presentation && svgstyle.IsPresentation(name))
}

var elemsRules = map[string]*elemRules{}

func resolveElem(config elemConfig) *elemRules {
	out := &elemRules{
		children: set(config.content...),
		attrs:    set(config.attrs...),
		anyAttrs: config.anyAttrs,
		defaults: make(map[string]string),
	}
	for _, group := range config.contentGroups {
		for _, name := range elemsGroups[group] {
			out.children[name] = true
		}
	}
	for _, group := range config.attrsGroups {
		if group == "presentation" {
			out.presentation = true
		}
		for _, name := range attrsGroups[group] {
			out.attrs[name] = true
		}
		for name, value := range attrsGroupsDefaults[group] {
			out.defaults[name] = value
		}
	}
	for name, value := range config.defaults {
		out.defaults[name] = value
	}
	return out
}

// editorNamespaces are the namespaces of the metadata written by
// drawing tools.
var editorNamespaces = set(
	"http://creativecommons.org/ns#",
	"http://inkscape.sourceforge.net/DTD/sodipodi-0.dtd",
	"http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd",
	"http://www.inkscape.org/namespaces/inkscape",
	"http://www.bohemiancoding.com/sketch/ns",
	"http://ns.adobe.com/AdobeIllustrator/10.0/",
	"http://ns.adobe.com/Graphs/1.0/",
	"http://ns.adobe.com/AdobeSVGViewerExtensions/3.0/",
	"http://ns.adobe.com/Variables/1.0/",
	"http://ns.adobe.com/SaveForWeb/1.0/",
	"http://ns.adobe.com/Extensibility/1.0/",
	"http://ns.adobe.com/Flows/1.0/",
	"http://ns.adobe.com/ImageReplacement/1.0/",
	"http://ns.adobe.com/GenericCustomNamespace/1.0/",
	"http://ns.adobe.com/XPath/1.0/",
	"http://schemas.microsoft.com/visio/2003/SVGExtensions/",
	"http://taptrix.com/vectorillustrator/svg_extensions",
	"http://www.figma.com/figma/ns",
	"http://purl.org/dc/elements/1.1/",
	"http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"http://www.serif.com/",
	"http://www.vector.evaxdesign.sk",
)
