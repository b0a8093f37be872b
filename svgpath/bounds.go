package svgpath

import (
	"math"

	"golang.org/x/image/math/f64"
)

// compute the exact bounding box of a path, using the critical points of its curves

// Rect is an axis aligned rectangle.
type Rect struct {
	Min, Max f64.Vec2
}

// Overlaps returns true if the interiors of r and other intersect.
func (r Rect) Overlaps(other Rect) bool {
	return r.Min[0] < other.Max[0] && other.Min[0] < r.Max[0] &&
		r.Min[1] < other.Max[1] && other.Min[1] < r.Max[1]
}

func (r *Rect) add(p f64.Vec2) {
	r.Min[0] = math.Min(r.Min[0], p[0])
	r.Min[1] = math.Min(r.Min[1], p[1])
	r.Max[0] = math.Max(r.Max[0], p[0])
	r.Max[1] = math.Max(r.Max[1], p[1])
}

// quadratic polinomial
// x = At^2 + Bt + C
// where
// A = p0 + p2 - 2p1
// B = 2(p1 - p0)
// C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// derivative as at + b where a,b :
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierCubic(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		p0
}

// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func (r *Rect) addQuad(p0, p1, p2 f64.Vec2) {
	aX, bX := quadraticDerivative(p0[0], p1[0], p2[0])
	aY, bY := quadraticDerivative(p0[1], p1[1], p2[1])
	for _, t := range append(linearRoots(aX, bX), linearRoots(aY, bY)...) {
		if 0 < t && t < 1 {
			r.add(f64.Vec2{bezierQuad(p0[0], p1[0], p2[0], t), bezierQuad(p0[1], p1[1], p2[1], t)})
		}
	}
	r.add(p2)
}

func (r *Rect) addCubic(p0, p1, p2, p3 f64.Vec2) {
	aX, bX, cX := cubicDerivative(p0[0], p1[0], p2[0], p3[0])
	aY, bY, cY := cubicDerivative(p0[1], p1[1], p2[1], p3[1])
	for _, t := range append(quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)...) {
		if 0 < t && t < 1 {
			r.add(f64.Vec2{bezierCubic(p0[0], p1[0], p2[0], p3[0], t), bezierCubic(p0[1], p1[1], p2[1], p3[1], t)})
		}
	}
	r.add(p3)
}

// Bounds returns the bounding box of the path. ok is false for
// a path without any point.
func Bounds(path Path) (r Rect, ok bool) {
	r = Rect{Min: f64.Vec2{math.Inf(1), math.Inf(1)}, Max: f64.Vec2{math.Inf(-1), math.Inf(-1)}}
	var cursor, start, prevCtrl f64.Vec2
	var prevCommand byte
	for _, it := range ToAbsolute(path) {
		args := it.Args
		pt := func(i int) f64.Vec2 { return f64.Vec2{args[i], args[i+1]} }
		ok = true
		switch it.Command {
		case 'M':
			cursor = pt(0)
			start = cursor
			r.add(cursor)
		case 'z':
			cursor = start
		case 'L':
			cursor = pt(0)
			r.add(cursor)
		case 'H':
			cursor[0] = args[0]
			r.add(cursor)
		case 'V':
			cursor[1] = args[0]
			r.add(cursor)
		case 'Q':
			r.addQuad(cursor, pt(0), pt(2))
			prevCtrl, cursor = pt(0), pt(2)
		case 'T':
			ctrl := cursor
			if prevCommand == 'Q' || prevCommand == 'T' {
				ctrl = f64.Vec2{2*cursor[0] - prevCtrl[0], 2*cursor[1] - prevCtrl[1]}
			}
			r.addQuad(cursor, ctrl, pt(0))
			prevCtrl, cursor = ctrl, pt(0)
		case 'C':
			r.addCubic(cursor, pt(0), pt(2), pt(4))
			prevCtrl, cursor = pt(2), pt(4)
		case 'S':
			ctrl := cursor
			if prevCommand == 'C' || prevCommand == 'S' {
				ctrl = f64.Vec2{2*cursor[0] - prevCtrl[0], 2*cursor[1] - prevCtrl[1]}
			}
			r.addCubic(cursor, ctrl, pt(0), pt(2))
			prevCtrl, cursor = pt(0), pt(2)
		case 'A':
			curves := arcToCubic(cursor[0], cursor[1], args[0], args[1], args[2], args[3] != 0, args[4] != 0, args[5], args[6])
			for ; len(curves) >= 6; curves = curves[6:] {
				c := curves
				p1 := f64.Vec2{cursor[0] + c[0], cursor[1] + c[1]}
				p2 := f64.Vec2{cursor[0] + c[2], cursor[1] + c[3]}
				p3 := f64.Vec2{cursor[0] + c[4], cursor[1] + c[5]}
				r.addCubic(cursor, p1, p2, p3)
				cursor = p3
			}
			cursor = pt(5)
			r.add(cursor)
		}
		prevCommand = it.Command
	}
	return r, ok
}
