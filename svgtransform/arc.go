package svgtransform

import (
	"math"

	"github.com/srwiley/rasterx"
)

// TransformArc applies the linear part of m to the ellipse of an arc
// command. cursor is the current point and arc the 7 absolute
// arguments (rx ry angle large-arc sweep x y).
//
// The returned copy has its radii, rotation and sweep flag updated.
// The end point is left unchanged : callers transform it like any
// other point.
func TransformArc(cursor [2]float64, arc []float64, m rasterx.Matrix2D) []float64 {
	out := append([]float64(nil), arc...)
	x, y := out[5]-cursor[0], out[6]-cursor[1]
	a, b := out[0], out[1]
	rot := out[2] * math.Pi / 180
	cos, sin := math.Cos(rot), math.Sin(rot)

	// scale up radii too small to join the end points
	if a > 0 && b > 0 {
		h := math.Pow(x*cos+y*sin, 2)/(4*a*a) + math.Pow(y*cos-x*sin, 2)/(4*b*b)
		if h > 1 {
			h = math.Sqrt(h)
			a *= h
			b *= h
		}
	}

	ellipse := rasterx.Matrix2D{A: a * cos, B: a * sin, C: -b * sin, D: b * cos}
	t := m.Mult(ellipse)

	// eigen decomposition of the transformed ellipse
	lastCol := t.C*t.C + t.D*t.D
	squareSum := t.A*t.A + t.B*t.B + lastCol
	root := math.Hypot(t.A-t.D, t.B+t.C) * math.Hypot(t.A+t.D, t.B-t.C)

	if root == 0 { // circle
		r := math.Sqrt(squareSum / 2)
		out[0], out[1], out[2] = r, r, 0
	} else {
		majorAxisSqr := (squareSum + root) / 2
		minorAxisSqr := (squareSum - root) / 2
		major := math.Abs(majorAxisSqr-lastCol) > 1e-6
		sub := minorAxisSqr - lastCol
		if major {
			sub = majorAxisSqr - lastCol
		}
		rowsSum := t.A*t.C + t.B*t.D
		term1 := t.A*sub + t.C*rowsSum
		term2 := t.B*sub + t.D*rowsSum

		out[0] = math.Sqrt(majorAxisSqr)
		out[1] = math.Sqrt(minorAxisSqr)
		var negative bool
		cosAngle := term2
		if major {
			negative = term2 < 0
			cosAngle = term1
		} else {
			negative = term1 > 0
		}
		angle := math.Acos(cosAngle/math.Hypot(term1, term2)) * 180 / math.Pi
		if negative {
			angle = -angle
		}
		out[2] = angle
	}

	// mirroring exactly one axis reverses the direction
	if (m.A < 0) != (m.D < 0) {
		out[4] = 1 - out[4]
	}
	return out
}
