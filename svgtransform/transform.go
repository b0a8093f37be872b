// Package svgtransform parses SVG transform lists, converts them to
// affine matrices and back to a short list of primitive transforms.
//
// Matrices are represented by rasterx.Matrix2D, where the fields
// A, B, C, D, E, F map to the SVG matrix(a b c d e f).
package svgtransform

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgo/svgpath"
	"github.com/srwiley/rasterx"
)

// Transform is one function of a transform list, like rotate(45 10 10).
type Transform struct {
	Name string // matrix, translate, scale, rotate, skewX or skewY
	Data []float64
}

var (
	regTransformTypes = regexp.MustCompile(`matrix|translate|scale|rotate|skewX|skewY`)
	regTransformSplit = regexp.MustCompile(`\s*(matrix|translate|scale|rotate|skewX|skewY)\s*\(\s*(.+?)\s*\)[\s,]*`)
	regNumericValues  = regexp.MustCompile(`[-+]?(?:\d*\.\d+|\d+\.?)(?:[eE][-+]?\d+)?`)
)

// splitTransforms mimics a split on regTransformSplit which also
// returns the captured groups.
func splitTransforms(s string) []string {
	var out []string
	prev := 0
	for _, m := range regTransformSplit.FindAllStringSubmatchIndex(s, -1) {
		out = append(out, s[prev:m[0]], s[m[2]:m[3]], s[m[4]:m[5]])
		prev = m[1]
	}
	return append(out, s[prev:])
}

// Parse reads a transform list. Invalid input yields an empty list.
func Parse(s string) []Transform {
	var (
		transforms []Transform
		current    *Transform
	)
	for _, item := range splitTransforms(s) {
		if item == "" {
			continue
		}
		if regTransformTypes.MatchString(item) {
			transforms = append(transforms, Transform{Name: item})
			current = &transforms[len(transforms)-1]
			continue
		}
		for _, num := range regNumericValues.FindAllString(item, -1) {
			v, err := strconv.ParseFloat(num, 64)
			if err != nil || current == nil {
				continue
			}
			current.Data = append(current.Data, v)
		}
	}
	if current == nil || len(current.Data) == 0 {
		return nil
	}
	return transforms
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }
func deg(rad float64) float64 { return rad * 180 / math.Pi }

// arg returns the i-th argument, or 0 when missing
func (t Transform) arg(i int) float64 {
	if i < len(t.Data) {
		return t.Data[i]
	}
	return 0
}

// ToMatrix returns the matrix of one transform. ok is false for an
// unknown transform name.
func ToMatrix(t Transform) (m rasterx.Matrix2D, ok bool) {
	switch t.Name {
	case "matrix":
		return rasterx.Matrix2D{A: t.arg(0), B: t.arg(1), C: t.arg(2), D: t.arg(3), E: t.arg(4), F: t.arg(5)}, true
	case "translate":
		return rasterx.Matrix2D{A: 1, D: 1, E: t.arg(0), F: t.arg(1)}, true
	case "scale":
		sy := t.arg(0)
		if len(t.Data) > 1 {
			sy = t.Data[1]
		}
		return rasterx.Matrix2D{A: t.arg(0), D: sy}, true
	case "rotate":
		cos, sin := math.Cos(rad(t.arg(0))), math.Sin(rad(t.arg(0)))
		cx, cy := t.arg(1), t.arg(2)
		return rasterx.Matrix2D{
			A: cos, B: sin, C: -sin, D: cos,
			E: (1-cos)*cx + sin*cy,
			F: (1-cos)*cy - sin*cx,
		}, true
	case "skewX":
		return rasterx.Matrix2D{A: 1, C: math.Tan(rad(t.arg(0))), D: 1}, true
	case "skewY":
		return rasterx.Matrix2D{A: 1, B: math.Tan(rad(t.arg(0))), D: 1}, true
	default:
		return rasterx.Identity, false
	}
}

// Compose multiplies the matrices of the list, in order.
// ok is false if the list contains an unknown transform.
func Compose(ts []Transform) (rasterx.Matrix2D, bool) {
	out := rasterx.Identity
	for _, t := range ts {
		m, ok := ToMatrix(t)
		if !ok {
			return rasterx.Identity, false
		}
		out = out.Mult(m)
	}
	return out, true
}

// Precision controls the rounding used when decomposing a matrix.
type Precision struct {
	// Float is the number of decimal digits of the angles.
	Float int
	// Transform is the number of decimal digits of the scale factors.
	Transform int
}

// Decompose returns a short list of primitive transforms equivalent to m :
// an optional translation, then a rotation, a skew and a scale when they
// are needed. The original matrix is returned when m is not expressible
// with a combination of these primitives.
func Decompose(m rasterx.Matrix2D, prec Precision) []Transform {
	data := [6]float64{m.A, m.B, m.C, m.D, m.E, m.F}
	var transforms []Transform

	sx := svgpath.ToFixed(math.Hypot(data[0], data[1]), prec.Transform)
	sy := svgpath.ToFixed((data[0]*data[3]-data[1]*data[2])/sx, prec.Transform)
	colsSum := data[0]*data[2] + data[1]*data[3]
	rowsSum := data[0]*data[1] + data[2]*data[3]
	scaleBefore := rowsSum != 0 || sx == sy

	// [..., ..., ..., ..., tx, ty] → translate(tx, ty)
	if data[4] != 0 || data[5] != 0 {
		args := []float64{data[4]}
		if data[5] != 0 {
			args = append(args, data[5])
		}
		transforms = append(transforms, Transform{Name: "translate", Data: args})
	}

	switch {
	case data[1] == 0 && data[2] != 0:
		// [sx, 0, tan(a)·sy, sy, 0, 0] → skewX(a)·scale(sx, sy)
		transforms = append(transforms, Transform{Name: "skewX", Data: []float64{atan(data[2]/sy, prec.Float)}})
	case data[1] != 0 && data[2] == 0:
		// [sx, sx·tan(a), 0, sy, 0, 0] → skewY(a)·scale(sx, sy)
		transforms = append(transforms, Transform{Name: "skewY", Data: []float64{atan(data[1]/data[0], prec.Float)}})
		sx, sy = data[0], data[3]
	case colsSum == 0 || (sx == 1 && sy == 1) || !scaleBefore:
		// [sx·cos(a), sx·sin(a), sy·-sin(a), sy·cos(a), x, y] → rotate(a[, cx, cy])·(scale or skewX) or
		// [sx·cos(a), sy·sin(a), sx·-sin(a), sy·cos(a), x, y] → scale or skewX·rotate(a[, cx, cy])
		if !scaleBefore {
			sx = math.Hypot(data[0], data[2])
			sy = math.Hypot(data[1], data[3])
			if svgpath.ToFixed(data[0], prec.Transform) < 0 {
				sx = -sx
			}
			if data[3] < 0 || (sign(data[1]) == sign(data[2]) && svgpath.ToFixed(data[3], prec.Transform) == 0) {
				sy = -sy
			}
			transforms = append(transforms, Transform{Name: "scale", Data: []float64{sx, sy}})
		}
		angle := math.Min(math.Max(-1, data[0]/sx), 1)
		factor := sy
		if scaleBefore {
			factor = 1
		}
		rotate := []float64{acos(angle, prec.Float)}
		if factor*data[1] < 0 {
			rotate[0] = -rotate[0]
		}
		rotateIndex := -1
		if rotate[0] != 0 {
			rotateIndex = len(transforms)
			transforms = append(transforms, Transform{Name: "rotate", Data: rotate})
		}
		if rowsSum != 0 && colsSum != 0 {
			transforms = append(transforms, Transform{Name: "skewX", Data: []float64{atan(colsSum/(sx*sx), prec.Float)}})
		}
		// the rotation center absorbs the translation
		if rotate[0] != 0 && (data[4] != 0 || data[5] != 0) {
			transforms = transforms[1:]
			rotateIndex--
			oneOverCos := 1 - data[0]/sx
			x, y, denomScale := data[4], data[5], 1.
			sin := data[1] / sx
			if !scaleBefore {
				sin = data[1] / sy
				x, y = data[4]*sy, data[5]*sx
				denomScale = sx * sy
			}
			denom := (oneOverCos*oneOverCos + sin*sin) * denomScale
			transforms[rotateIndex].Data = append(rotate, (oneOverCos*x-sin*y)/denom, (oneOverCos*y+sin*x)/denom)
		}
	case data[1] != 0 || data[2] != 0:
		// too many transformations
		return []Transform{{Name: "matrix", Data: data[:]}}
	}

	if (scaleBefore && (sx != 1 || sy != 1)) || len(transforms) == 0 {
		args := []float64{sx, sy}
		if sx == sy {
			args = args[:1]
		}
		transforms = append(transforms, Transform{Name: "scale", Data: args})
	}
	return transforms
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

func acos(v float64, precision int) float64 {
	return svgpath.ToFixed(deg(math.Acos(v)), precision)
}

func atan(v float64, precision int) float64 {
	return svgpath.ToFixed(deg(math.Atan(v)), precision)
}

// RemoveUseless drops the transforms equivalent to the identity.
func RemoveUseless(ts []Transform) []Transform {
	var out []Transform
	for _, t := range ts {
		if !isIdentity(t) {
			out = append(out, t)
		}
	}
	return out
}

func isIdentity(t Transform) bool {
	switch t.Name {
	case "translate":
		return t.arg(0) == 0 && t.arg(1) == 0
	case "rotate", "skewX", "skewY":
		return t.arg(0) == 0 && (t.Name == "rotate" || len(t.Data) == 1)
	case "scale":
		return t.arg(0) == 1 && (len(t.Data) < 2 || t.Data[1] == 1)
	case "matrix":
		return t.arg(0) == 1 && t.arg(3) == 1 &&
			t.arg(1) == 0 && t.arg(2) == 0 && t.arg(4) == 0 && t.arg(5) == 0
	}
	return false
}

// Stringify writes the transform list in a compact form,
// rounding numbers to precision decimal digits (see svgpath.NoPrecision).
func Stringify(ts []Transform, precision int) string {
	var sb strings.Builder
	for _, t := range ts {
		sb.WriteString(t.Name)
		sb.WriteByte('(')
		sb.WriteString(svgpath.CleanupOutData(t.Data, precision))
		sb.WriteByte(')')
	}
	return sb.String()
}
