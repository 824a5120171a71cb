// Package systems provides the per-organism rules of the simulation:
// metabolism, steering, mate choice, hunting odds and pack structure.
package systems

import "math"

// Point is a positioned candidate for a proximity query.
type Point struct {
	ID   uint32
	X, Y float64
}

// Neighbor is the result of a nearest query.
type Neighbor struct {
	Index int // index into the queried slice, -1 if none
	ID    uint32
	Dist  float64
}

// Found reports whether the query matched anything.
func (n Neighbor) Found() bool {
	return n.Index >= 0
}

// Nearest returns the closest point to (x, y) strictly within radius that
// passes accept. Ties keep the earliest point in slice order. A radius <= 0
// means unbounded. accept may be nil.
func Nearest(x, y float64, points []Point, radius float64, accept func(i int) bool) Neighbor {
	best := Neighbor{Index: -1}
	bestSq := 0.0
	radiusSq := radius * radius
	for i, p := range points {
		if accept != nil && !accept(i) {
			continue
		}
		dsq := DistanceSq(x, y, p.X, p.Y)
		if radius > 0 && dsq >= radiusSq {
			continue
		}
		if best.Index < 0 || dsq < bestSq {
			best = Neighbor{Index: i, ID: p.ID}
			bestSq = dsq
		}
	}
	if best.Index >= 0 {
		best.Dist = math.Sqrt(bestSq)
	}
	return best
}

// FirstWithin returns the index of the first point in slice order strictly
// within radius that passes accept, or -1.
func FirstWithin(x, y float64, points []Point, radius float64, accept func(i int) bool) int {
	radiusSq := radius * radius
	for i, p := range points {
		if accept != nil && !accept(i) {
			continue
		}
		if DistanceSq(x, y, p.X, p.Y) < radiusSq {
			return i
		}
	}
	return -1
}

// CountWithin counts points strictly within radius that pass accept.
func CountWithin(x, y float64, points []Point, radius float64, accept func(i int) bool) int {
	radiusSq := radius * radius
	n := 0
	for i, p := range points {
		if accept != nil && !accept(i) {
			continue
		}
		if DistanceSq(x, y, p.X, p.Y) < radiusSq {
			n++
		}
	}
	return n
}
