package svgplugins

import (
	"math"
	"strings"

	"github.com/benoitkugler/svgo/svgpath"
	"github.com/benoitkugler/svgo/svgtransform"
	"github.com/benoitkugler/svgo/svgtree"
)

type transformOptions struct {
	convertToShorts    bool
	degPrecision       int
	hasDegPrecision    bool
	floatPrecision     int
	transformPrecision int
	matrixToTransform  bool
	shortTranslate     bool
	shortScale         bool
	shortRotate        bool
	removeUseless      bool
	collapseIntoOne    bool
	leadingZero        bool
	negativeExtraSpace bool
}

func newTransformOptions(params Params) transformOptions {
	degPrecision, hasDegPrecision := params.OptionalInt("degPrecision")
	return transformOptions{
		convertToShorts:    params.Bool("convertToShorts", true),
		degPrecision:       degPrecision,
		hasDegPrecision:    hasDegPrecision,
		floatPrecision:     params.Int("floatPrecision", 3),
		transformPrecision: params.Int("transformPrecision", 5),
		matrixToTransform:  params.Bool("matrixToTransform", true),
		shortTranslate:     params.Bool("shortTranslate", true),
		shortScale:         params.Bool("shortScale", true),
		shortRotate:        params.Bool("shortRotate", true),
		removeUseless:      params.Bool("removeUseless", true),
		collapseIntoOne:    params.Bool("collapseIntoOne", true),
		leadingZero:        params.Bool("leadingZero", true),
		negativeExtraSpace: params.Bool("negativeExtraSpace", false),
	}
}

var convertTransform = Plugin{
	Name:        "convertTransform",
	Description: "collapses multiple transformations and optimizes it",
	Fn: func(_ *svgtree.Root, params Params, _ *Info) (*svgtree.Visitor, error) {
		opts := newTransformOptions(params)
		return onElement(func(el *svgtree.Element, _ svgtree.Parent) {
			for _, name := range [...]string{"transform", "gradientTransform", "patternTransform"} {
				if value, ok := el.Attrs.Get(name); ok {
					if out, keep := opts.convert(value); keep {
						el.Attrs.Set(name, out)
					} else {
						el.Attrs.Delete(name)
					}
				}
			}
		}), nil
	},
}

// convert returns the optimized transform list, or false
// if it is equivalent to the identity.
func (opts transformOptions) convert(value string) (string, bool) {
	data := svgtransform.Parse(value)
	opts = opts.withPrecision(data)
	if opts.collapseIntoOne && len(data) > 1 {
		m, ok := svgtransform.Compose(data)
		if !ok {
			return value, true
		}
		data = []svgtransform.Transform{{Name: "matrix", Data: []float64{m.A, m.B, m.C, m.D, m.E, m.F}}}
	}
	if opts.convertToShorts {
		data = opts.convertToShortForms(data)
	} else {
		for i := range data {
			data[i] = opts.round(data[i])
		}
	}
	if opts.removeUseless {
		data = svgtransform.RemoveUseless(data)
	}
	if len(data) == 0 {
		return "", false
	}
	return opts.stringify(data), true
}

// floatDigits returns the number of digits after the decimal point.
func floatDigits(v float64) int {
	s := svgpath.FormatNumber(v)
	if i := strings.IndexByte(s, '.'); i != -1 {
		return len(s) - i - 1
	}
	return 0
}

// withPrecision limits the precision to the one of the matrices
// found in data, since more digits do not add any value.
func (opts transformOptions) withPrecision(data []svgtransform.Transform) transformOptions {
	var matrixData []float64
	for _, t := range data {
		if t.Name == "matrix" && len(t.Data) >= 4 {
			matrixData = append(matrixData, t.Data[:4]...)
		}
	}
	numberOfDigits := opts.transformPrecision
	if len(matrixData) != 0 {
		maxFloatDigits, maxDigits := 0, 0
		for _, v := range matrixData {
			maxFloatDigits = max(maxFloatDigits, floatDigits(v))
			digits := 0
			for _, c := range svgpath.FormatNumber(v) {
				if '0' <= c && c <= '9' {
					digits++
				}
			}
			maxDigits = max(maxDigits, digits)
		}
		if maxFloatDigits != 0 {
			opts.transformPrecision = min(opts.transformPrecision, maxFloatDigits)
		}
		numberOfDigits = maxDigits
	}
	if !opts.hasDegPrecision {
		opts.degPrecision = max(0, min(opts.floatPrecision, numberOfDigits-2))
		opts.hasDegPrecision = true
	}
	return opts
}

func (opts transformOptions) convertToShortForms(data []svgtransform.Transform) []svgtransform.Transform {
	for i := 0; i < len(data); i++ {
		t := data[i]
		if opts.matrixToTransform && t.Name == "matrix" && len(t.Data) == 6 {
			m, _ := svgtransform.ToMatrix(t)
			decomposed := svgtransform.Decompose(m, svgtransform.Precision{Float: opts.floatPrecision, Transform: opts.transformPrecision})
			if len(opts.stringify(decomposed)) <= len(opts.stringify([]svgtransform.Transform{t})) {
				tail := append(decomposed, data[i+1:]...)
				data = append(data[:i], tail...)
			}
			t = data[i]
		}
		t = opts.round(t)
		if opts.shortTranslate && t.Name == "translate" && len(t.Data) == 2 && t.Data[1] == 0 {
			t.Data = t.Data[:1]
		}
		if opts.shortScale && t.Name == "scale" && len(t.Data) == 2 && t.Data[0] == t.Data[1] {
			t.Data = t.Data[:1]
		}
		data[i] = t

		// translate(cx cy) rotate(a) translate(-cx -cy) → rotate(a cx cy)
		if opts.shortRotate && i >= 2 && data[i-2].Name == "translate" &&
			data[i-1].Name == "rotate" && t.Name == "translate" {
			before, rotate := data[i-2], data[i-1]
			if argAt(before, 0) == -argAt(t, 0) && argAt(before, 1) == -argAt(t, 1) {
				merged := svgtransform.Transform{Name: "rotate", Data: []float64{argAt(rotate, 0), argAt(before, 0), argAt(before, 1)}}
				data = append(append(data[:i-2], merged), data[i+1:]...)
				i -= 2
			}
		}
	}
	return data
}

func argAt(t svgtransform.Transform, i int) float64 {
	if i < len(t.Data) {
		return t.Data[i]
	}
	return 0
}

// jsRound rounds half values up, for negative values too.
func jsRound(v float64) float64 { return math.Floor(v + 0.5) }

// smartRound rounds to precision digits, or to precision-1 digits when
// the difference is lower than the tolerance.
func smartRound(precision int, data []float64) []float64 {
	out := make([]float64, len(data))
	tolerance := svgpath.ToFixed(math.Pow(0.1, float64(precision)), precision)
	for i, v := range data {
		out[i] = v
		if svgpath.Round(v, precision) == v {
			continue
		}
		rounded := svgpath.ToFixed(v, precision-1)
		if svgpath.ToFixed(math.Abs(rounded-v), precision+1) >= tolerance {
			out[i] = svgpath.ToFixed(v, precision)
		} else {
			out[i] = rounded
		}
	}
	return out
}

func (opts transformOptions) roundWith(precision int, data []float64) []float64 {
	if precision >= 1 && opts.floatPrecision < 20 {
		return smartRound(precision, data)
	}
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = jsRound(v)
	}
	return out
}

// round returns a copy of t with its arguments rounded
// according to their kind.
func (opts transformOptions) round(t svgtransform.Transform) svgtransform.Transform {
	switch t.Name {
	case "translate":
		t.Data = opts.roundWith(opts.floatPrecision, t.Data)
	case "rotate":
		if len(t.Data) > 0 {
			t.Data = append(opts.roundWith(opts.degPrecision, t.Data[:1]), opts.roundWith(opts.floatPrecision, t.Data[1:])...)
		}
	case "skewX", "skewY":
		t.Data = opts.roundWith(opts.degPrecision, t.Data)
	case "scale":
		t.Data = opts.roundWith(opts.transformPrecision, t.Data)
	case "matrix":
		if len(t.Data) >= 4 {
			t.Data = append(opts.roundWith(opts.transformPrecision, t.Data[:4]), opts.roundWith(opts.floatPrecision, t.Data[4:])...)
		}
	}
	return t
}

func (opts transformOptions) formatNumber(v float64) string {
	if opts.leadingZero {
		return svgpath.RemoveLeadingZero(v)
	}
	return svgpath.FormatNumber(v)
}

func (opts transformOptions) stringify(data []svgtransform.Transform) string {
	var sb strings.Builder
	for _, t := range data {
		t = opts.round(t)
		sb.WriteString(t.Name)
		sb.WriteByte('(')
		prev := 0.
		for i, v := range t.Data {
			s := opts.formatNumber(v)
			if i != 0 && !(opts.negativeExtraSpace && (v < 0 || (s[0] == '.' && math.Mod(prev, 1) != 0))) {
				sb.WriteByte(' ')
			}
			sb.WriteString(s)
			prev = v
		}
		sb.WriteByte(')')
	}
	return sb.String()
}
