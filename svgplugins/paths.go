package svgplugins

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgo/svgpath"
	"github.com/benoitkugler/svgo/svgstyle"
	"github.com/benoitkugler/svgo/svgtransform"
	"github.com/benoitkugler/svgo/svgtree"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/f64"
)

// parsePathJS parses the d attribute of el. The first move is always
// absolute.
func parsePathJS(el *svgtree.Element) svgpath.Path {
	path := svgpath.Parse(el.Attrs.Value("d"))
	if len(path) > 0 && path[0].Command == 'm' {
		path[0].Command = 'M'
	}
	return path
}

// setPathJS writes path to the d attribute of el, dropping the moves
// directly followed by another move.
func setPathJS(el *svgtree.Element, path svgpath.Path, precision int, noSpaceAfterFlags bool) {
	out := make(svgpath.Path, 0, len(path))
	for _, it := range path {
		if n := len(out); n > 0 && (it.Command == 'M' || it.Command == 'm') {
			if last := out[n-1].Command; last == 'M' || last == 'm' {
				out = out[:n-1]
			}
		}
		out = append(out, it)
	}
	el.Attrs.Set("d", svgpath.Stringify(out, precision, noSpaceAfterFlags))
}

var mergePaths = Plugin{
	Name:        "mergePaths",
	Description: "merges multiple paths in one if possible",
	Fn: func(root *svgtree.Root, params Params, _ *Info) (*svgtree.Visitor, error) {
		force := params.Bool("force", false)
		precision := params.Int("floatPrecision", svgpath.NoPrecision)
		noSpaceAfterFlags := params.Bool("noSpaceAfterFlags", false)
		stylesheet := svgstyle.Collect(root)

		// paths with children (like animations) are never merged
		isMergeable := func(node svgtree.Node) (*svgtree.Element, bool) {
			el, ok := node.(*svgtree.Element)
			if !ok || el.Name != "path" || len(el.Children()) > 0 || !el.Attrs.Has("d") {
				return nil, false
			}
			return el, true
		}

		return onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			var prev svgtree.Node
			for _, child := range slices.Clone(el.Children()) {
				prevPath, ok := isMergeable(prev)
				if !ok {
					prev = child
					continue
				}
				path, ok := isMergeable(child)
				if !ok {
					prev = child
					continue
				}
				style := stylesheet.Compute(path)
				if style.Has("marker-start") || style.Has("marker-mid") || style.Has("marker-end") {
					prev = child
					continue
				}
				if !sameAttributesButD(prevPath, path) {
					prev = child
					continue
				}
				prevJS, curJS := parsePathJS(prevPath), parsePathJS(path)
				if !force && svgpath.Intersects(prevJS, curJS) {
					prev = child
					continue
				}
				setPathJS(prevPath, append(prevJS, curJS...), precision, noSpaceAfterFlags)
				svgtree.Detach(path, el)
			}
		}), nil
	},
}

func sameAttributesButD(a, b *svgtree.Element) bool {
	if a.Attrs.Len() != b.Attrs.Len() {
		return false
	}
	for _, attr := range b.Attrs.All() {
		if attr.Name == "d" {
			continue
		}
		if v, ok := a.Attrs.Get(attr.Name); !ok || v != attr.Value {
			return false
		}
	}
	return true
}

var (
	regViewBoxCleanup = regexp.MustCompile(`[+,]|px`)
	regWhitespaces    = regexp.MustCompile(`\s+`)
	regViewBox        = regexp.MustCompile(`^(-?\d*\.?\d+) (-?\d*\.?\d+) (\d*\.?\d+) (\d*\.?\d+)$`)
)

// parseViewBox returns the rectangle of the root svg element,
// read from its viewBox, or its width and height.
func parseViewBox(el *svgtree.Element) (svgpath.Rect, bool) {
	var viewBox string
	if vb, ok := el.Attrs.Get("viewBox"); ok {
		viewBox = vb
	} else if el.Attrs.Has("width") && el.Attrs.Has("height") {
		viewBox = "0 0 " + el.Attrs.Value("width") + " " + el.Attrs.Value("height")
	}
	viewBox = regViewBoxCleanup.ReplaceAllString(viewBox, " ")
	viewBox = strings.TrimSpace(regWhitespaces.ReplaceAllString(viewBox, " "))
	m := regViewBox.FindStringSubmatch(viewBox)
	if m == nil {
		return svgpath.Rect{}, false
	}
	var values [4]float64
	for i := range values {
		v, ok := parseNumber(m[i+1])
		if !ok {
			return svgpath.Rect{}, false
		}
		values[i] = v
	}
	return svgpath.Rect{
		Min: f64.Vec2{values[0], values[1]},
		Max: f64.Vec2{values[0] + values[2], values[1] + values[3]},
	}, true
}

var removeOffCanvasPaths = Plugin{
	Name:        "removeOffCanvasPaths",
	Description: "removes elements that are drawn outside of the viewbox (disabled by default)",
	Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		var (
			viewBox    svgpath.Rect
			hasViewBox bool
		)
		return &svgtree.Visitor{
			Element: svgtree.Hooks[*svgtree.Element]{
				Enter: func(el *svgtree.Element, parent svgtree.Parent) svgtree.Action {
					if _, isRoot := parent.(*svgtree.Root); isRoot && el.Name == "svg" {
						if vb, ok := parseViewBox(el); ok {
							viewBox, hasViewBox = vb, true
						}
					}
					// transformed elements are considered visible
					if el.Attrs.Has("transform") {
						return svgtree.SkipChildren
					}
					if el.Name != "path" || !el.Attrs.Has("d") || !hasViewBox {
						return svgtree.Continue
					}
					path := svgpath.Parse(el.Attrs.Value("d"))
					// a move within the viewBox is visible
					for _, it := range path {
						if it.Command != 'M' {
							continue
						}
						x, y := it.Args[0], it.Args[1]
						if viewBox.Min[0] <= x && x <= viewBox.Max[0] && viewBox.Min[1] <= y && y <= viewBox.Max[1] {
							return svgtree.Continue
						}
					}
					if bounds, ok := svgpath.Bounds(path); ok && !bounds.Overlaps(viewBox) {
						svgtree.Detach(el, parent)
						return svgtree.Continue
					}
					if len(path) == 2 {
						// close the path, too short for the intersection test
						path = append(path, svgpath.Item{Command: 'z'})
					}
					viewBoxPath := svgpath.Path{
						{Command: 'M', Args: []float64{viewBox.Min[0], viewBox.Min[1]}},
						{Command: 'h', Args: []float64{viewBox.Max[0] - viewBox.Min[0]}},
						{Command: 'v', Args: []float64{viewBox.Max[1] - viewBox.Min[1]}},
						{Command: 'H', Args: []float64{viewBox.Min[0]}},
						{Command: 'z'},
					}
					if !svgpath.Intersects(viewBoxPath, path) {
						svgtree.Detach(el, parent)
					}
					return svgtree.Continue
				},
			},
		}, nil
	},
}

var reusePaths = Plugin{
	Name:        "reusePaths",
	Description: "Finds <path> elements with the same d, fill, and stroke, and converts them to <use> elements referencing a single <path> def.",
	Fn: func(*svgtree.Root, Params, *Info) (*svgtree.Visitor, error) {
		var (
			keys  []string
			paths = map[string][]*svgtree.Element{}
		)
		return &svgtree.Visitor{
			Element: svgtree.Hooks[*svgtree.Element]{
				Enter: func(el *svgtree.Element, _ svgtree.Parent) svgtree.Action {
					d, ok := el.Attrs.Get("d")
					if el.Name != "path" || !ok {
						return svgtree.Continue
					}
					key := d + ";s:" + el.Attrs.Value("stroke") + ";f:" + el.Attrs.Value("fill")
					if _, seen := paths[key]; !seen {
						keys = append(keys, key)
					}
					paths[key] = append(paths[key], el)
					return svgtree.Continue
				},
				Exit: func(el *svgtree.Element, parent svgtree.Parent) {
					if _, isRoot := parent.(*svgtree.Root); !isRoot || el.Name != "svg" {
						return
					}
					defs := svgtree.NewElement("defs")
					index := 0
					for _, key := range keys {
						list := paths[key]
						if len(list) <= 1 {
							continue
						}
						reusable := svgtree.NewElement("path")
						reusable.Attrs = list[0].Attrs.Clone()
						reusable.Attrs.Delete("transform")
						id, hasID := reusable.Attrs.Get("id")
						if hasID {
							list[0].Attrs.Delete("id")
						} else {
							id = "reuse-" + strconv.Itoa(index)
							index++
							reusable.Attrs.Set("id", id)
						}
						defs.AppendChild(reusable)
						for _, path := range list {
							path.Name = "use"
							path.Attrs.Set("xlink:href", "#"+id)
							path.Attrs.Delete("d")
							path.Attrs.Delete("stroke")
							path.Attrs.Delete("fill")
						}
					}
					if len(defs.Children()) > 0 {
						if !el.Attrs.Has("xmlns:xlink") {
							el.Attrs.Set("xmlns:xlink", "http://www.w3.org/1999/xlink")
						}
						el.InsertChild(0, defs)
					}
				},
			},
		}, nil
	},
}

// convertPathData options
type pathOptions struct {
	precision         int
	applyTransforms   bool
	lineShorthands    bool
	removeUseless     bool
	utilizeAbsolute   bool
	noSpaceAfterFlags bool
}

var convertPathData = Plugin{
	Name:        "convertPathData",
	Description: "optimizes path data: writes in shorter form, applies transformations",
	Fn: func(root *svgtree.Root, params Params, _ *Info) (*svgtree.Visitor, error) {
		opts := pathOptions{
			precision:         params.Int("floatPrecision", 3),
			applyTransforms:   params.Bool("applyTransforms", true),
			lineShorthands:    params.Bool("lineShorthands", true),
			removeUseless:     params.Bool("removeUseless", true),
			utilizeAbsolute:   params.Bool("utilizeAbsolute", true),
			noSpaceAfterFlags: params.Bool("noSpaceAfterFlags", false),
		}
		if opts.precision < 0 {
			opts.precision = svgpath.NoPrecision
		}
		stylesheet := svgstyle.Collect(root)
		return onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			d, ok := el.Attrs.Get("d")
			if !pathElems[el.Name] || !ok {
				return
			}
			data := svgpath.ToAbsolute(svgpath.Parse(d))
			if len(data) == 0 {
				return
			}
			style := stylesheet.Compute(el)
			if opts.applyTransforms {
				if m, ok := transformToApply(el, style); ok {
					data = applyMatrix(data, m)
					el.Attrs.Delete("transform")
				}
			}
			// zero length segments are visible with round or square caps,
			// and mid markers are drawn on every vertex
			stroke, hasStroke := style["stroke"]
			lineCap, hasLineCap := style["stroke-linecap"]
			maybeStroked := hasStroke && (stroke.Dynamic || stroke.Value != "none")
			maybeCapped := hasLineCap && (lineCap.Dynamic || lineCap.Value != "butt")
			keepZeroLength := (maybeStroked && maybeCapped) || style.Has("marker-mid")
			out := opts.optimize(data, keepZeroLength)
			el.Attrs.Set("d", svgpath.Stringify(out, opts.precision, opts.noSpaceAfterFlags))
		}), nil
	},
}

// transformToApply returns the matrix of the transform of el, when it
// may be applied to the path data without changing the rendering.
func transformToApply(el *svgtree.Element, style svgstyle.Computed) (rasterx.Matrix2D, bool) {
	transform, ok := el.Attrs.Get("transform")
	if !ok || transform == "" || el.Attrs.Has("id") || el.Attrs.Has("style") || hasURLReference(el) {
		return rasterx.Matrix2D{}, false
	}
	// the stroke width and the markers would also be transformed
	if stroke, ok := style["stroke"]; ok && (stroke.Dynamic || stroke.Value != "none") {
		return rasterx.Matrix2D{}, false
	}
	for _, name := range [...]string{"marker-start", "marker-mid", "marker-end", "clip-path", "mask", "filter"} {
		if style.Has(name) {
			return rasterx.Matrix2D{}, false
		}
	}
	ts := svgtransform.Parse(transform)
	if len(ts) == 0 {
		return rasterx.Matrix2D{}, false
	}
	return svgtransform.Compose(ts)
}

// applyMatrix transforms an absolute path. Horizontal and vertical lines
// are converted to lines.
func applyMatrix(data svgpath.Path, m rasterx.Matrix2D) svgpath.Path {
	out := make(svgpath.Path, 0, len(data))
	var cursor, start [2]float64
	point := func(args []float64, i int) {
		args[i], args[i+1] = m.Transform(args[i], args[i+1])
	}
	for _, it := range data {
		if it.Command == 'z' {
			cursor = start
			out = append(out, it)
			continue
		}
		args := append([]float64(nil), it.Args...)
		command := it.Command
		switch command {
		case 'H':
			args = []float64{args[0], cursor[1]}
			command = 'L'
		case 'V':
			args = []float64{cursor[0], args[0]}
			command = 'L'
		}
		end := [2]float64{args[len(args)-2], args[len(args)-1]}
		switch command {
		case 'M', 'L', 'T':
			point(args, 0)
		case 'C':
			point(args, 0)
			point(args, 2)
			point(args, 4)
		case 'S', 'Q':
			point(args, 0)
			point(args, 2)
		case 'A':
			args = svgtransform.TransformArc(cursor, args, m)
			point(args, 5)
		}
		if command == 'M' {
			start = end
		}
		cursor = end
		out = append(out, svgpath.Item{Command: command, Args: args})
	}
	return out
}

func (opts pathOptions) round(v float64) float64 { return svgpath.Round(v, opts.precision) }

func (opts pathOptions) itemLength(it svgpath.Item) int {
	return len(svgpath.Stringify(svgpath.Path{it}, opts.precision, opts.noSpaceAfterFlags))
}

func isZeroLength(command byte, rel []float64) bool {
	if command == 'A' {
		return rel[5] == 0 && rel[6] == 0
	}
	for _, v := range rel {
		if v != 0 {
			return false
		}
	}
	return true
}

// optimize rounds the absolute path data, and writes each
// command in its shortest form, relative or absolute.
// Positions are tracked with rounded values so that errors
// do not accumulate.
func (opts pathOptions) optimize(data svgpath.Path, keepZeroLength bool) svgpath.Path {
	out := make(svgpath.Path, 0, len(data))
	var cursor, start [2]float64
	for i, it := range data {
		if it.Command == 'z' {
			out = append(out, it)
			cursor = start
			continue
		}
		command := it.Command
		abs := make([]float64, len(it.Args))
		for j, v := range it.Args {
			abs[j] = opts.round(v)
		}
		if command == 'L' && opts.lineShorthands {
			if abs[1] == cursor[1] {
				command, abs = 'H', abs[:1]
			} else if abs[0] == cursor[0] {
				command, abs = 'V', abs[1:]
			}
		}

		rel := append([]float64(nil), abs...)
		switch command {
		case 'H':
			rel[0] -= cursor[0]
		case 'V':
			rel[0] -= cursor[1]
		case 'A':
			rel[5] -= cursor[0]
			rel[6] -= cursor[1]
		default:
			for j := range rel {
				rel[j] -= cursor[j%2]
			}
		}
		for j := range rel {
			rel[j] = opts.round(rel[j])
		}

		next := cursor
		switch command {
		case 'H':
			next[0] = abs[0]
		case 'V':
			next[1] = abs[0]
		default:
			next = [2]float64{abs[len(abs)-2], abs[len(abs)-1]}
		}

		if opts.removeUseless && !keepZeroLength && command != 'M' && isZeroLength(command, rel) {
			// smooth curves reflect the control point of the previous segment
			if i+1 >= len(data) || !strings.ContainsRune("ST", rune(data[i+1].Command)) {
				continue
			}
		}

		absItem := svgpath.Item{Command: command, Args: abs}
		chosen := svgpath.Item{Command: command + 'a' - 'A', Args: rel}
		if i == 0 || (opts.utilizeAbsolute && opts.itemLength(absItem) < opts.itemLength(chosen)) {
			chosen = absItem
		}
		if command == 'M' {
			start = next
		}
		cursor = next
		out = append(out, chosen)
	}
	return out
}
