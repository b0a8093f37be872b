package svgplugins

import (
	"regexp"
	"strings"

	"github.com/benoitkugler/svgo/svgstyle"
	"github.com/benoitkugler/svgo/svgtree"
)

// onElement returns a visitor calling fn when entering elements.
func onElement(fn func(el *svgtree.Element, parent svgtree.Parent)) *svgtree.Visitor {
	return &svgtree.Visitor{
		Element: svgtree.Hooks[*svgtree.Element]{
			Enter: func(el *svgtree.Element, parent svgtree.Parent) svgtree.Action {
				fn(el, parent)
				return svgtree.Continue
			},
		},
	}
}

// removeElements returns a plugin implementation detaching
// the elements accepted by match.
func removeElements(match func(el *svgtree.Element) bool) Func {
	return func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		return onElement(func(el *svgtree.Element, parent svgtree.Parent) {
			if match(el) {
				svgtree.Detach(el, parent)
			}
		}), nil
	}
}

func isNamed(name string) func(el *svgtree.Element) bool {
	return func(el *svgtree.Element) bool { return el.Name == name }
}

var removeMetadata = Plugin{
	Name:        "removeMetadata",
	Description: "removes <metadata>",
	Fn:          removeElements(isNamed("metadata")),
}

var removeTitle = Plugin{
	Name:        "removeTitle",
	Description: "removes <title>",
	Fn:          removeElements(isNamed("title")),
}

var removeScriptElement = Plugin{
	Name:        "removeScriptElement",
	Description: "removes <script> elements (disabled by default)",
	Fn:          removeElements(isNamed("script")),
}

var removeStyleElement = Plugin{
	Name:        "removeStyleElement",
	Description: "removes <style> element (disabled by default)",
	Fn:          removeElements(isNamed("style")),
}

var regRasterImage = regexp.MustCompile(`(\.|image/)(jpg|png|gif)`)

var removeRasterImages = Plugin{
	Name:        "removeRasterImages",
	Description: "removes raster images (disabled by default)",
	Fn: removeElements(func(el *svgtree.Element) bool {
		href, ok := el.Attrs.Get("xlink:href")
		return el.Name == "image" && ok && regRasterImage.MatchString(href)
	}),
}

var removeDoctype = Plugin{
	Name:        "removeDoctype",
	Description: "removes doctype declaration",
	Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		return &svgtree.Visitor{
			Doctype: svgtree.Hooks[*svgtree.Doctype]{
				Enter: func(node *svgtree.Doctype, parent svgtree.Parent) svgtree.Action {
					svgtree.Detach(node, parent)
					return svgtree.Continue
				},
			},
		}, nil
	},
}

var removeXMLProcInst = Plugin{
	Name:        "removeXMLProcInst",
	Description: "removes XML processing instructions",
	Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		return &svgtree.Visitor{
			Instruction: svgtree.Hooks[*svgtree.Instruction]{
				Enter: func(node *svgtree.Instruction, parent svgtree.Parent) svgtree.Action {
					if node.Name == "xml" {
						svgtree.Detach(node, parent)
					}
					return svgtree.Continue
				},
			},
		}, nil
	},
}

var removeComments = Plugin{
	Name:        "removeComments",
	Description: "removes comments",
	Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		return &svgtree.Visitor{
			Comment: svgtree.Hooks[*svgtree.Comment]{
				Enter: func(node *svgtree.Comment, parent svgtree.Parent) svgtree.Action {
					// legal comments, like <!--! (c) ... -->, are kept
					if !strings.HasPrefix(node.Value, "!") {
						svgtree.Detach(node, parent)
					}
					return svgtree.Continue
				},
			},
		}, nil
	},
}

var regStandardDesc = regexp.MustCompile(`^(Created with|Created using)`)

var removeDesc = Plugin{
	Name:        "removeDesc",
	Description: "removes <desc>",
	Fn: func(_ *svgtree.Root, params Params, _ *Info) (*svgtree.Visitor, error) {
		removeAny := params.Bool("removeAny", true)
		return onElement(func(el *svgtree.Element, parent svgtree.Parent) {
			if el.Name != "desc" {
				return
			}
			children := el.Children()
			if removeAny || len(children) == 0 {
				svgtree.Detach(el, parent)
				return
			}
			if text, ok := children[0].(*svgtree.Text); ok && regStandardDesc.MatchString(text.Value) {
				svgtree.Detach(el, parent)
			}
		}), nil
	},
}

var removeXMLNS = Plugin{
	Name:        "removeXMLNS",
	Description: "removes xmlns attribute (for inline svg, disabled by default)",
	Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		return onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			if el.Name == "svg" {
				el.Attrs.Delete("xmlns")
				el.Attrs.Delete("xmlns:xlink")
			}
		}), nil
	},
}

var removeEditorsNSData = Plugin{
	Name:        "removeEditorsNSData",
	Description: "removes editors namespaces, elements and attributes",
	Fn: func(_ *svgtree.Root, params Params, _ *Info) (*svgtree.Visitor, error) {
		namespaces := make(map[string]bool, len(editorNamespaces))
		for ns := range editorNamespaces {
			namespaces[ns] = true
		}
		for _, ns := range params.Strings("additionalNamespaces") {
			namespaces[ns] = true
		}
		prefixes := map[string]bool{}
		return onElement(func(el *svgtree.Element, parent svgtree.Parent) {
			if el.Name == "svg" {
				for _, attr := range el.Attrs.All() {
					if prefix, ok := strings.CutPrefix(attr.Name, "xmlns:"); ok && namespaces[attr.Value] {
						prefixes[prefix] = true
						el.Attrs.Delete(attr.Name)
					}
				}
			}
			for _, attr := range el.Attrs.All() {
				if prefix, _, ok := strings.Cut(attr.Name, ":"); ok && prefixes[prefix] {
					el.Attrs.Delete(attr.Name)
				}
			}
			if prefix, _, ok := strings.Cut(el.Name, ":"); ok && prefixes[prefix] {
				svgtree.Detach(el, parent)
			}
		}), nil
	},
}

var removeEmptyAttrs = Plugin{
	Name:        "removeEmptyAttrs",
	Description: "removes empty attributes",
	Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		conditional := set(attrsGroups["conditionalProcessing"]...)
		return onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			for _, attr := range el.Attrs.All() {
				// empty conditional processing attributes prevent rendering
				if attr.Value == "" && !conditional[attr.Name] {
					el.Attrs.Delete(attr.Name)
				}
			}
		}), nil
	},
}

var removeEmptyText = Plugin{
	Name:        "removeEmptyText",
	Description: "removes empty <text> elements",
	Fn: func(_ *svgtree.Root, params Params, _ *Info) (*svgtree.Visitor, error) {
		text, tspan, tref := params.Bool("text", true), params.Bool("tspan", true), params.Bool("tref", true)
		return onElement(func(el *svgtree.Element, parent svgtree.Parent) {
			empty := len(el.Children()) == 0
			switch {
			case text && el.Name == "text" && empty,
				tspan && el.Name == "tspan" && empty,
				tref && el.Name == "tref" && !el.Attrs.Has("xlink:href"):
				svgtree.Detach(el, parent)
			}
		}), nil
	},
}

var removeEmptyContainers = Plugin{
	Name:        "removeEmptyContainers",
	Description: "removes empty container elements",
	Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		return &svgtree.Visitor{
			Element: svgtree.Hooks[*svgtree.Element]{
				Exit: func(el *svgtree.Element, parent svgtree.Parent) {
					if el.Name == "svg" || !containerElems[el.Name] || len(el.Children()) > 0 {
						return
					}
					switch {
					case el.Name == "pattern" && el.Attrs.Len() > 0:
						// may hold a reusable configuration
						return
					case el.Name == "g" && el.Attrs.Has("filter"):
						// the filter may still paint a region
						return
					case el.Name == "mask" && el.Attrs.Has("id"):
						// an empty mask hides the masked element
						return
					}
					svgtree.Detach(el, parent)
				},
			},
		}, nil
	},
}

var removeUselessDefs = Plugin{
	Name:        "removeUselessDefs",
	Description: "removes elements in <defs> without id",
	Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		return onElement(func(el *svgtree.Element, parent svgtree.Parent) {
			if el.Name == "defs" {
				useful := collectUsefulNodes(el, nil)
				if len(useful) == 0 {
					svgtree.Detach(el, parent)
				}
				el.ReplaceChildren(useful...)
			} else if nonRenderingElems[el.Name] && !el.Attrs.Has("id") {
				svgtree.Detach(el, parent)
			}
		}), nil
	},
}

// collectUsefulNodes returns the descendants of el which may be
// referenced : elements with an id, and stylesheets.
func collectUsefulNodes(el *svgtree.Element, useful []svgtree.Node) []svgtree.Node {
	for _, child := range svgtree.Elements(el) {
		if child.Attrs.Has("id") || child.Name == "style" {
			useful = append(useful, child)
		} else {
			useful = collectUsefulNodes(child, useful)
		}
	}
	return useful
}

var removeNonInheritableGroupAttrs = Plugin{
	Name:        "removeNonInheritableGroupAttrs",
	Description: "removes non-inheritable group's presentational attributes",
	Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		return onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			if el.Name != "g" {
				return
			}
			for _, attr := range el.Attrs.All() {
				if svgstyle.IsPresentation(attr.Name) && !svgstyle.IsInheritable(attr.Name) &&
					!svgstyle.IsNonInheritableGroupAttr(attr.Name) {
					el.Attrs.Delete(attr.Name)
				}
			}
		}), nil
	},
}
