package svgpath

import "math"

func rotateX(x, y, rad float64) float64 { return x*math.Cos(rad) - y*math.Sin(rad) }
func rotateY(x, y, rad float64) float64 { return x*math.Sin(rad) + y*math.Cos(rad) }

// arcToCubic approximates the elliptical arc from (x1, y1) to (x2, y2)
// by cubic Bézier curves, with angle in degrees.
// Degenerate arcs (null radius) yield no curve.
// The result is a flat list of 'c' arguments : each group of 6 is
// relative to the end point of the previous curve, the first one
// being relative to (x1, y1).
func arcToCubic(x1, y1, rx, ry, angle float64, largeArc, sweep bool, x2, y2 float64) []float64 {
	if rx == 0 || ry == 0 {
		return nil
	}
	rad := math.Pi / 180 * angle

	x1, y1 = rotateX(x1, y1, -rad), rotateY(x1, y1, -rad)
	x2, y2 = rotateX(x2, y2, -rad), rotateY(x2, y2, -rad)
	x, y := (x1-x2)/2, (y1-y2)/2
	h := x*x/(rx*rx) + y*y/(ry*ry)
	if h > 1 {
		h = math.Sqrt(h)
		rx *= h
		ry *= h
	}
	rx2, ry2 := rx*rx, ry*ry
	k := math.Sqrt(math.Abs((rx2*ry2 - rx2*y*y - ry2*x*x) / (rx2*y*y + ry2*x*x)))
	if largeArc == sweep {
		k = -k
	}
	cx := k*rx*y/ry + (x1+x2)/2
	cy := k*-ry*x/rx + (y1+y2)/2
	f1 := math.Asin(ToFixed((y1-cy)/ry, 9))
	f2 := math.Asin(ToFixed((y2-cy)/ry, 9))
	if x1 < cx {
		f1 = math.Pi - f1
	}
	if x2 < cx {
		f2 = math.Pi - f2
	}
	if f1 < 0 {
		f1 += 2 * math.Pi
	}
	if f2 < 0 {
		f2 += 2 * math.Pi
	}
	if sweep && f1 > f2 {
		f1 -= 2 * math.Pi
	}
	if !sweep && f2 > f1 {
		f2 -= 2 * math.Pi
	}

	res := arcSegments(x1, y1, rx, ry, sweep, x2, y2, f1, f2, cx, cy)
	out := make([]float64, len(res))
	for i := 0; i+1 < len(res); i += 2 {
		out[i] = rotateX(res[i], res[i+1], rad)
		out[i+1] = rotateY(res[i], res[i+1], rad)
	}
	return out
}

// arcSegments splits the arc between the angles f1 and f2 in pieces
// of at most 120 degrees, in the unrotated frame.
func arcSegments(x1, y1, rx, ry float64, sweep bool, x2, y2, f1, f2, cx, cy float64) []float64 {
	const maxAngle = math.Pi * 120 / 180
	var rest []float64
	if math.Abs(f2-f1) > maxAngle {
		f2old, x2old, y2old := f2, x2, y2
		if sweep && f2 > f1 {
			f2 = f1 + maxAngle
		} else {
			f2 = f1 - maxAngle
		}
		x2 = cx + rx*math.Cos(f2)
		y2 = cy + ry*math.Sin(f2)
		rest = arcSegments(x2, y2, rx, ry, sweep, x2old, y2old, f2, f2old, cx, cy)
	}
	df := f2 - f1
	c1, s1 := math.Cos(f1), math.Sin(f1)
	c2, s2 := math.Cos(f2), math.Sin(f2)
	t := math.Tan(df / 4)
	hx, hy := 4./3*rx*t, 4./3*ry*t
	m := []float64{
		-hx * s1, hy * c1,
		x2 + hx*s2 - x1, y2 - hy*c2 - y1,
		x2 - x1, y2 - y1,
	}
	return append(m, rest...)
}
