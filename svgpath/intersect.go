package svgpath

import (
	"math"
	"slices"

	"github.com/benoitkugler/svgo/internal/svglog"
	"golang.org/x/image/math/f64"
)

// maxGJKIterations bounds the separating axis search.
const maxGJKIterations = 10000

// pointSet is a list of points with the indices of its extreme points.
type pointSet struct {
	list                   []f64.Vec2
	minX, minY, maxX, maxY int
}

// pathPoints are the point sets of every subpath, with the
// global extreme values.
type pathPoints struct {
	list                   []*pointSet
	minX, minY, maxX, maxY float64
}

func (pts *pathPoints) add(set *pointSet, p f64.Vec2) {
	first := len(pts.list) == 0
	empty := len(set.list) == 0
	if empty || p[1] > set.list[set.maxY][1] {
		set.maxY = len(set.list)
		if first {
			pts.maxY = p[1]
		} else {
			pts.maxY = math.Max(p[1], pts.maxY)
		}
	}
	if empty || p[0] > set.list[set.maxX][0] {
		set.maxX = len(set.list)
		if first {
			pts.maxX = p[0]
		} else {
			pts.maxX = math.Max(p[0], pts.maxX)
		}
	}
	if empty || p[1] < set.list[set.minY][1] {
		set.minY = len(set.list)
		if first {
			pts.minY = p[1]
		} else {
			pts.minY = math.Min(p[1], pts.minY)
		}
	}
	if empty || p[0] < set.list[set.minX][0] {
		set.minX = len(set.list)
		if first {
			pts.minX = p[0]
		} else {
			pts.minX = math.Min(p[0], pts.minX)
		}
	}
	set.list = append(set.list, p)
}

func mid(a, b f64.Vec2) f64.Vec2 { return f64.Vec2{0.5 * (a[0] + b[0]), 0.5 * (a[1] + b[1])} }

// gatherPoints approximates every subpath of an absolute path by
// a list of points whose convex hull encloses the subpath.
// Curves are approximated by the middle points of their control polygon.
func gatherPoints(path Path) pathPoints {
	var (
		points        pathPoints
		prevCtrlPoint f64.Vec2
		prevCommand   byte
	)
	for _, it := range path {
		var subPath *pointSet
		if len(points.list) == 0 {
			subPath = new(pointSet)
		} else {
			subPath = points.list[len(points.list)-1]
		}
		var (
			basePoint f64.Vec2
			hasBase   = len(subPath.list) != 0
		)
		if hasBase {
			basePoint = subPath.list[len(subPath.list)-1]
		}
		ctrlPoint, hasCtrl := basePoint, hasBase
		data := it.Args
		pt := func(i int) f64.Vec2 { return f64.Vec2{data[i], data[i+1]} }

		switch it.Command {
		case 'M':
			subPath = new(pointSet)
			points.list = append(points.list, subPath)
		case 'H':
			if hasBase {
				points.add(subPath, f64.Vec2{data[0], basePoint[1]})
			}
		case 'V':
			if hasBase {
				points.add(subPath, f64.Vec2{basePoint[0], data[0]})
			}
		case 'Q':
			points.add(subPath, pt(0))
			prevCtrlPoint = f64.Vec2{data[2] - data[0], data[3] - data[1]}
		case 'T':
			if hasBase && (prevCommand == 'Q' || prevCommand == 'T') {
				ctrlPoint = f64.Vec2{basePoint[0] + prevCtrlPoint[0], basePoint[1] + prevCtrlPoint[1]}
				points.add(subPath, ctrlPoint)
				prevCtrlPoint = f64.Vec2{data[0] - ctrlPoint[0], data[1] - ctrlPoint[1]}
			}
		case 'C':
			if hasBase {
				points.add(subPath, mid(basePoint, pt(0)))
			}
			points.add(subPath, mid(pt(0), pt(2)))
			points.add(subPath, mid(pt(2), pt(4)))
			prevCtrlPoint = f64.Vec2{data[4] - data[2], data[5] - data[3]}
		case 'S':
			if hasBase && (prevCommand == 'C' || prevCommand == 'S') {
				points.add(subPath, f64.Vec2{basePoint[0] + 0.5*prevCtrlPoint[0], basePoint[1] + 0.5*prevCtrlPoint[1]})
				ctrlPoint = f64.Vec2{basePoint[0] + prevCtrlPoint[0], basePoint[1] + prevCtrlPoint[1]}
			}
			if hasCtrl {
				points.add(subPath, mid(ctrlPoint, pt(0)))
			}
			points.add(subPath, mid(pt(0), pt(2)))
			prevCtrlPoint = f64.Vec2{data[2] - data[0], data[3] - data[1]}
		case 'A':
			if hasBase {
				curves := arcToCubic(basePoint[0], basePoint[1], data[0], data[1], data[2],
					data[3] != 0, data[4] != 0, data[5], data[6])
				for len(curves) >= 6 {
					var c [6]float64
					for i := range c {
						c[i] = curves[i] + basePoint[i%2]
					}
					curves = curves[6:]
					cp1, cp2, end := f64.Vec2{c[0], c[1]}, f64.Vec2{c[2], c[3]}, f64.Vec2{c[4], c[5]}
					points.add(subPath, mid(basePoint, cp1))
					points.add(subPath, mid(cp1, cp2))
					points.add(subPath, mid(cp2, end))
					if len(curves) != 0 {
						basePoint = end
						points.add(subPath, basePoint)
					}
				}
			}
		}
		// end point of the command
		if len(data) >= 2 {
			points.add(subPath, pt(len(data)-2))
		}
		prevCommand = it.Command
	}
	return points
}

func cross(o, a, b f64.Vec2) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

// convexHull computes the hull of the set with the monotone chain
// algorithm, recording the indices of its extreme points.
func convexHull(points *pointSet) pointSet {
	list := slices.Clone(points.list)
	slices.SortFunc(list, func(a, b f64.Vec2) int {
		if a[0] == b[0] {
			return cmpFloat(a[1], b[1])
		}
		return cmpFloat(a[0], b[0])
	})

	var lower []f64.Vec2
	minY, bottom := 0, 0
	for i, p := range list {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		if p[1] < list[minY][1] {
			minY = i
			bottom = len(lower)
		}
		lower = append(lower, p)
	}

	var upper []f64.Vec2
	maxY, top := len(list)-1, 0
	for i := len(list) - 1; i >= 0; i-- {
		p := list[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		if p[1] > list[maxY][1] {
			maxY = i
			top = len(upper)
		}
		upper = append(upper, p)
	}

	// the last point of each chain is the first of the other one
	if len(upper) != 0 {
		upper = upper[:len(upper)-1]
	}
	if len(lower) != 0 {
		lower = lower[:len(lower)-1]
	}
	hull := pointSet{list: append(lower, upper...), maxX: len(lower), minY: bottom}
	if len(hull.list) != 0 {
		hull.maxY = (len(lower) + top) % len(hull.list)
	}
	return hull
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Intersects returns true if the two paths may overlap. The test is
// conservative : false is only returned when the shapes are provably
// disjoint, so that merging them does not change the rendering.
func Intersects(path1, path2 Path) bool {
	points1 := gatherPoints(ToAbsolute(path1))
	points2 := gatherPoints(ToAbsolute(path2))

	// bounding boxes
	if points1.maxX <= points2.minX || points2.maxX <= points1.minX ||
		points1.maxY <= points2.minY || points2.maxY <= points1.minY {
		return false
	}
	allDisjoint := true
	for _, set1 := range points1.list {
		for _, set2 := range points2.list {
			if !boxesDisjoint(set1, set2) {
				allDisjoint = false
			}
		}
	}
	if allDisjoint {
		return false
	}

	hulls1 := make([]pointSet, len(points1.list))
	for i, set := range points1.list {
		hulls1[i] = convexHull(set)
	}
	hulls2 := make([]pointSet, len(points2.list))
	for i, set := range points2.list {
		hulls2[i] = convexHull(set)
	}
	for i := range hulls1 {
		if len(hulls1[i].list) < 3 {
			continue
		}
		for j := range hulls2 {
			if len(hulls2[j].list) < 3 {
				continue
			}
			if hullsIntersect(&hulls1[i], &hulls2[j]) {
				return true
			}
		}
	}
	return false
}

func boxesDisjoint(set1, set2 *pointSet) bool {
	if len(set1.list) == 0 || len(set2.list) == 0 {
		return true
	}
	return set1.list[set1.maxX][0] <= set2.list[set2.minX][0] ||
		set2.list[set2.maxX][0] <= set1.list[set1.minX][0] ||
		set1.list[set1.maxY][1] <= set2.list[set2.minY][1] ||
		set2.list[set2.maxY][1] <= set1.list[set1.minY][1]
}

// hullsIntersect runs the GJK algorithm on two convex polygons.
func hullsIntersect(hull1, hull2 *pointSet) bool {
	simplex := []f64.Vec2{support(hull1, hull2, f64.Vec2{1, 0})}
	direction := minus(simplex[0])
	for iterations := 0; ; iterations++ {
		if iterations == maxGJKIterations {
			svglog.Logger().Error("svgpath: infinite loop while testing path intersection")
			return true
		}
		simplex = append(simplex, support(hull1, hull2, direction))
		if dot(direction, simplex[len(simplex)-1]) <= 0 {
			return false
		}
		var done bool
		simplex, done = processSimplex(simplex, &direction)
		if done {
			return true
		}
	}
}

// support returns the point of the Minkowski difference furthest
// along direction.
func support(a, b *pointSet, direction f64.Vec2) f64.Vec2 {
	return sub(supportPoint(a, direction), supportPoint(b, minus(direction)))
}

func supportPoint(polygon *pointSet, direction f64.Vec2) f64.Vec2 {
	var index int
	if direction[1] >= 0 {
		if direction[0] < 0 {
			index = polygon.maxY
		} else {
			index = polygon.maxX
		}
	} else {
		if direction[0] < 0 {
			index = polygon.minX
		} else {
			index = polygon.minY
		}
	}
	// walk along the hull while the projection increases
	n := len(polygon.list)
	index %= n
	best := math.Inf(-1)
	for {
		value := dot(polygon.list[index], direction)
		if !(value > best) {
			break
		}
		best = value
		index = (index + 1) % n
	}
	if index == 0 {
		index = n
	}
	return polygon.list[index-1]
}

// processSimplex updates the simplex and the search direction,
// returning true if the simplex contains the origin.
func processSimplex(simplex []f64.Vec2, direction *f64.Vec2) ([]f64.Vec2, bool) {
	if len(simplex) == 2 { // line segment
		a, b := simplex[1], simplex[0]
		ao, ab := minus(a), sub(b, a)
		if dot(ao, ab) > 0 {
			*direction = orth(ab, a)
			return simplex, false
		}
		*direction = ao
		return simplex[1:], false
	}

	// triangle
	a, b, c := simplex[2], simplex[1], simplex[0]
	ab, ac, ao := sub(b, a), sub(c, a), minus(a)
	acb, abc := orth(ab, ac), orth(ac, ab)
	if dot(acb, ao) > 0 {
		if dot(ab, ao) > 0 {
			*direction = acb
			return []f64.Vec2{b, a}, false
		}
		*direction = ao
		return []f64.Vec2{a}, false
	}
	if dot(abc, ao) > 0 {
		if dot(ac, ao) > 0 {
			*direction = abc
			return []f64.Vec2{c, a}, false
		}
		*direction = ao
		return []f64.Vec2{a}, false
	}
	return simplex, true
}

func minus(v f64.Vec2) f64.Vec2  { return f64.Vec2{-v[0], -v[1]} }
func sub(a, b f64.Vec2) f64.Vec2 { return f64.Vec2{a[0] - b[0], a[1] - b[1]} }
func dot(a, b f64.Vec2) float64  { return a[0]*b[0] + a[1]*b[1] }

// orth returns a vector orthogonal to v, pointing away from from.
func orth(v, from f64.Vec2) f64.Vec2 {
	o := f64.Vec2{-v[1], v[0]}
	if dot(o, minus(from)) < 0 {
		return minus(o)
	}
	return o
}
