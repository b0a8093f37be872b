package svgplugins

import (
	"strings"

	"github.com/benoitkugler/svgo/svgstyle"
	"github.com/benoitkugler/svgo/svgtree"
)

// parentStyle returns the computed style of parent, or nil
// for the document root.
func parentStyle(stylesheet *svgstyle.Stylesheet, parent svgtree.Parent) svgstyle.Computed {
	if el, ok := parent.(*svgtree.Element); ok {
		return stylesheet.Compute(el)
	}
	return nil
}

// isStatic returns true if the property is set to value, independently
// of the rendering context.
func isStatic(style svgstyle.Computed, name, value string) bool {
	v, ok := style.Static(name)
	return ok && v == value
}

var removeUnknownsAndDefaults = Plugin{
	Name:        "removeUnknownsAndDefaults",
	Description: "removes unknown elements content and attributes, removes attrs with default values",
	Fn: func(root *svgtree.Root, params Params, _ *Info) (*svgtree.Visitor, error) {
		unknownContent := params.Bool("unknownContent", true)
		unknownAttrs := params.Bool("unknownAttrs", true)
		defaultAttrs := params.Bool("defaultAttrs", true)
		uselessOverrides := params.Bool("uselessOverrides", true)
		keepDataAttrs := params.Bool("keepDataAttrs", true)
		keepAriaAttrs := params.Bool("keepAriaAttrs", true)
		keepRoleAttr := params.Bool("keepRoleAttr", false)
		stylesheet := svgstyle.Collect(root)

		return &svgtree.Visitor{
			Element: svgtree.Hooks[*svgtree.Element]{
				Enter: func(el *svgtree.Element, parent svgtree.Parent) svgtree.Action {
					// namespaced elements are not validated
					if strings.Contains(el.Name, ":") {
						return svgtree.Continue
					}
					if el.Name == "foreignObject" {
						return svgtree.SkipChildren
					}

					if parentEl, ok := parent.(*svgtree.Element); ok && unknownContent {
						var allowed map[string]bool
						if rules := elemsRules[parentEl.Name]; rules != nil {
							allowed = rules.children
						}
						if len(allowed) == 0 {
							if elemsRules[el.Name] == nil {
								svgtree.Detach(el, parent)
								return svgtree.SkipChildren
							}
						} else if !allowed[el.Name] {
							svgtree.Detach(el, parent)
							return svgtree.SkipChildren
						}
					}

					rules := elemsRules[el.Name]
					computedParent := parentStyle(stylesheet, parent)
					for _, attr := range el.Attrs.All() {
						switch {
						case keepDataAttrs && strings.HasPrefix(attr.Name, "data-"),
							keepAriaAttrs && strings.HasPrefix(attr.Name, "aria-"),
							keepRoleAttr && attr.Name == "role",
							attr.Name == "xmlns":
							continue
						}
						if prefix, _, ok := strings.Cut(attr.Name, ":"); ok && prefix != "xml" && prefix != "xlink" {
							continue
						}

						if unknownAttrs && rules != nil && !rules.allowsAttr(attr.Name) {
							el.Attrs.Delete(attr.Name)
						}
						if el.Attrs.Has("id") {
							continue
						}
						if defaultAttrs && rules != nil {
							// defaults are kept when the parent sets the property
							if def, ok := rules.defaults[attr.Name]; ok && def == attr.Value && !computedParent.Has(attr.Name) {
								el.Attrs.Delete(attr.Name)
							}
						}
						if uselessOverrides && !svgstyle.IsNonInheritableGroupAttr(attr.Name) &&
							isStatic(computedParent, attr.Name, attr.Value) {
							el.Attrs.Delete(attr.Name)
						}
					}
					return svgtree.Continue
				},
			},
		}, nil
	},
}

var removeUselessStrokeAndFill = Plugin{
	Name:        "removeUselessStrokeAndFill",
	Description: "removes useless stroke and fill attributes",
	Fn: func(root *svgtree.Root, params Params, _ *Info) (*svgtree.Visitor, error) {
		removeStroke := params.Bool("stroke", true)
		removeFill := params.Bool("fill", true)
		removeNone := params.Bool("removeNone", false)

		hasStyleOrScript := false
		svgtree.Visit(root, onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			if el.Name == "style" || el.Name == "script" {
				hasStyleOrScript = true
			}
		}))
		if hasStyleOrScript {
			return nil, nil
		}
		stylesheet := svgstyle.Collect(root)

		return &svgtree.Visitor{
			Element: svgtree.Hooks[*svgtree.Element]{
				Enter: func(el *svgtree.Element, parent svgtree.Parent) svgtree.Action {
					// the whole subtree may be referenced
					if el.Attrs.Has("id") {
						return svgtree.SkipChildren
					}
					if !shapeElems[el.Name] {
						return svgtree.Continue
					}
					style := stylesheet.Compute(el)
					zeroWidth := isStatic(style, "stroke-width", "0")

					// a marker is not visible when the stroke width is 0
					if removeStroke && (!style.Has("stroke") || isStatic(style, "stroke", "none") ||
						isStatic(style, "stroke-opacity", "0") || zeroWidth) &&
						(zeroWidth || !style.Has("marker-end")) {
						for _, attr := range el.Attrs.All() {
							if strings.HasPrefix(attr.Name, "stroke") {
								el.Attrs.Delete(attr.Name)
							}
						}
						// explicit none to not inherit from the parent
						if v, ok := parentStyle(stylesheet, parent).Static("stroke"); ok && v != "none" {
							el.Attrs.Set("stroke", "none")
						}
					}

					if removeFill && (isStatic(style, "fill", "none") || isStatic(style, "fill-opacity", "0")) {
						for _, attr := range el.Attrs.All() {
							if strings.HasPrefix(attr.Name, "fill-") {
								el.Attrs.Delete(attr.Name)
							}
						}
						if fill, ok := style["fill"]; !ok || (!fill.Dynamic && fill.Value != "none") {
							el.Attrs.Set("fill", "none")
						}
					}

					if removeNone && (!style.Has("stroke") || el.Attrs.Value("stroke") == "none") &&
						(isStatic(style, "fill", "none") || el.Attrs.Value("fill") == "none") {
						svgtree.Detach(el, parent)
					}
					return svgtree.Continue
				},
			},
		}, nil
	},
}
