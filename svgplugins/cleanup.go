package svgplugins

import (
	"cmp"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgo/svgpath"
	"github.com/benoitkugler/svgo/svgstyle"
	"github.com/benoitkugler/svgo/svgtree"
)

var (
	regNewlinesNeedSpace = regexp.MustCompile(`(\S)\r?\n(\S)`)
	regNewlines          = regexp.MustCompile(`\r?\n`)
	regSpaces            = regexp.MustCompile(`\s{2,}`)
)

var cleanupAttrs = Plugin{
	Name:        "cleanupAttrs",
	Description: "cleanups attributes from newlines, trailing and repeating spaces",
	Fn: func(_ *svgtree.Root, params Params, _ *Info) (*svgtree.Visitor, error) {
		newlines := params.Bool("newlines", true)
		trim := params.Bool("trim", true)
		spaces := params.Bool("spaces", true)
		return onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			for _, attr := range el.Attrs.All() {
				value := attr.Value
				if newlines {
					value = regNewlinesNeedSpace.ReplaceAllString(value, "$1 $2")
					value = regNewlines.ReplaceAllString(value, "")
				}
				if trim {
					value = strings.TrimSpace(value)
				}
				if spaces {
					value = regSpaces.ReplaceAllString(value, " ")
				}
				if value != attr.Value {
					attr.Value = value
					el.Attrs.SetAttr(attr)
				}
			}
		}), nil
	},
}

var regEnableBackground = regexp.MustCompile(`^new\s0\s0\s([+-]?\d*\.?\d+([Ee][+-]?\d+)?)\s([+-]?\d*\.?\d+([Ee][+-]?\d+)?)$`)

var cleanupEnableBackground = Plugin{
	Name:        "cleanupEnableBackground",
	Description: "remove or cleanup enable-background attribute when possible",
	Fn: func(root *svgtree.Root, _ Params, _ *Info) (*svgtree.Visitor, error) {
		hasFilter := false
		svgtree.Visit(root, onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			if el.Name == "filter" {
				hasFilter = true
			}
		}))
		return onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			value, ok := el.Attrs.Get("enable-background")
			if !ok {
				return
			}
			if !hasFilter {
				// only used by filters
				el.Attrs.Delete("enable-background")
				return
			}
			if el.Name != "svg" && el.Name != "mask" && el.Name != "pattern" {
				return
			}
			width, hasWidth := el.Attrs.Get("width")
			height, hasHeight := el.Attrs.Get("height")
			if !hasWidth || !hasHeight {
				return
			}
			match := regEnableBackground.FindStringSubmatch(value)
			if match == nil || width != match[1] || height != match[3] {
				return
			}
			if el.Name == "svg" {
				el.Attrs.Delete("enable-background")
			} else {
				el.Attrs.Set("enable-background", "new")
			}
		}), nil
	},
}

var (
	regNumericValue = regexp.MustCompile(`^([-+]?\d*\.?\d+([eE][-+]?\d+)?)(px|pt|pc|mm|cm|m|in|ft|em|ex|%)?$`)
	regViewBoxSplit = regexp.MustCompile(`(?:\s,?|,)\s*`)
)

// absoluteLengths are the sizes of the absolute units, in pixels
var absoluteLengths = map[string]float64{
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"in": 96,
	"pt": 4. / 3,
	"pc": 16,
	"px": 1,
}

// parseNumber only accepts finite decimal numbers.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

var cleanupNumericValues = Plugin{
	Name:        "cleanupNumericValues",
	Description: "rounds numeric values to the fixed precision, removes default 'px' units",
	Fn: func(_ *svgtree.Root, params Params, _ *Info) (*svgtree.Visitor, error) {
		floatPrecision := params.Int("floatPrecision", 3)
		leadingZero := params.Bool("leadingZero", true)
		defaultPx := params.Bool("defaultPx", true)
		convertToPx := params.Bool("convertToPx", true)

		format := func(v float64) string {
			if leadingZero {
				return svgpath.RemoveLeadingZero(v)
			}
			return svgpath.FormatNumber(v)
		}
		return onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			if viewBox, ok := el.Attrs.Get("viewBox"); ok {
				nums := regViewBoxSplit.Split(strings.TrimSpace(viewBox), -1)
				for i, num := range nums {
					if v, ok := parseNumber(num); ok {
						nums[i] = svgpath.FormatNumber(svgpath.ToFixed(v, floatPrecision))
					}
				}
				el.Attrs.Set("viewBox", strings.Join(nums, " "))
			}

			for _, attr := range el.Attrs.All() {
				// the version is a string, not a number
				if attr.Name == "version" {
					continue
				}
				match := regNumericValue.FindStringSubmatch(attr.Value)
				if match == nil {
					continue
				}
				v, ok := parseNumber(match[1])
				if !ok {
					continue
				}
				num := svgpath.ToFixed(v, floatPrecision)
				units := match[3]
				if ratio, isAbsolute := absoluteLengths[units]; convertToPx && isAbsolute {
					pxNum := svgpath.ToFixed(ratio*v, floatPrecision)
					if len(svgpath.FormatNumber(pxNum)) < len(match[0]) {
						num = pxNum
						units = "px"
					}
				}
				if defaultPx && units == "px" {
					units = ""
				}
				attr.Value = format(num) + units
				el.Attrs.SetAttr(attr)
			}
		}), nil
	},
}

var convertEllipseToCircle = Plugin{
	Name:        "convertEllipseToCircle",
	Description: "converts non-eccentric <ellipse>s to <circle>s",
	Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		return onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			if el.Name != "ellipse" {
				return
			}
			rx := cmp.Or(el.Attrs.Value("rx"), "0")
			ry := cmp.Or(el.Attrs.Value("ry"), "0")
			if rx != ry && rx != "auto" && ry != "auto" {
				return
			}
			radius := rx
			if rx == "auto" {
				radius = ry
			}
			el.Name = "circle"
			el.Attrs.Delete("rx")
			el.Attrs.Delete("ry")
			el.Attrs.Set("r", radius)
		}), nil
	},
}

// hasURLReference returns true if one of the referencing attributes of el
// uses url(...).
func hasURLReference(el *svgtree.Element) bool {
	for _, attr := range el.Attrs.All() {
		if referencesProps[attr.Name] && strings.Contains(attr.Value, "url(") {
			return true
		}
	}
	return false
}

var moveGroupAttrsToElems = Plugin{
	Name:        "moveGroupAttrsToElems",
	Description: "moves some group attributes to the content elements",
	Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		return onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			transform, ok := el.Attrs.Get("transform")
			if el.Name != "g" || !ok || len(el.Children()) == 0 || hasURLReference(el) {
				return
			}
			children := el.Children()
			for _, child := range children {
				child, isElement := child.(*svgtree.Element)
				if !isElement || child.Attrs.Has("id") ||
					!(pathElems[child.Name] || child.Name == "g" || child.Name == "text") {
					return
				}
			}
			for _, child := range children {
				child := child.(*svgtree.Element)
				if own, ok := child.Attrs.Get("transform"); ok {
					child.Attrs.Set("transform", transform+" "+own)
				} else {
					child.Attrs.Set("transform", transform)
				}
			}
			el.Attrs.Delete("transform")
		}), nil
	},
}

var sortDefsChildren = Plugin{
	Name:        "sortDefsChildren",
	Description: "Sorts children of <defs> to improve compression",
	Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		return onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			if el.Name != "defs" {
				return
			}
			frequencies := map[string]int{}
			for _, child := range svgtree.Elements(el) {
				frequencies[child.Name]++
			}
			// by frequency, then by name length, then by name, all decreasing
			el.SortChildren(func(a, b svgtree.Node) int {
				ea, okA := a.(*svgtree.Element)
				eb, okB := b.(*svgtree.Element)
				if !okA || !okB {
					return 0
				}
				if c := cmp.Compare(frequencies[eb.Name], frequencies[ea.Name]); c != 0 {
					return c
				}
				if c := cmp.Compare(len(eb.Name), len(ea.Name)); c != 0 {
					return c
				}
				return strings.Compare(eb.Name, ea.Name)
			})
		}), nil
	},
}

var convertStyleToAttrs = Plugin{
	Name:        "convertStyleToAttrs",
	Description: "converts style to attributes",
	Fn: func(_ *svgtree.Root, params Params, _ *Info) (*svgtree.Visitor, error) {
		keepImportant := params.Bool("keepImportant", false)
		return onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			style, ok := el.Attrs.Get("style")
			if !ok {
				return
			}
			decls := svgstyle.ParseDeclarations(style)
			if len(decls) == 0 {
				return
			}
			var (
				remaining []string
				converted []svgtree.Attr
			)
			for _, decl := range decls {
				name := strings.ToLower(decl.Property)
				if svgstyle.IsPresentation(name) && !(keepImportant && decl.Important) {
					converted = append(converted, svgtree.Attr{Name: name, Value: unquote(decl.Value)})
					continue
				}
				declaration := decl.Property + ":" + decl.Value
				if decl.Important {
					declaration += "!important"
				}
				remaining = append(remaining, declaration)
			}
			for _, attr := range converted {
				el.Attrs.SetAttr(attr)
			}
			if len(remaining) > 0 {
				el.Attrs.Set("style", strings.Join(remaining, ";"))
			} else {
				el.Attrs.Delete("style")
			}
		}), nil
	},
}

// unquote removes the quotes of a CSS string
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
