package main

import "seehuhn.de/go/geom/vec"

// maxFlattenDepth bounds the bisection of a single segment. Past this depth
// the remaining piece is accepted as a straight line.
const maxFlattenDepth = 16

// flatten approximates a subpath by a polyline whose distance from the
// curve stays within tolerance. The first and last anchors are always kept.
func flatten(sp Subpath, tolerance float64) []vec.Vec2 {
	if len(sp.Knots) < 2 {
		out := make([]vec.Vec2, len(sp.Knots))
		for i, k := range sp.Knots {
			out[i] = k.Anchor
		}
		return out
	}

	var out []vec.Vec2
	for i := 1; i < len(sp.Knots); i++ {
		a, b := sp.Knots[i-1], sp.Knots[i]
		flattenCubic(a.Anchor, a.Out, b.In, b.Anchor, tolerance, 0, &out)
	}
	return append(out, sp.last())
}

// flattenCubic bisects the cubic p0..p3 until both handles lie within
// tolerance of the chord, emitting the start point of every accepted piece.
func flattenCubic(p0, p1, p2, p3 vec.Vec2, tolerance float64, depth int, out *[]vec.Vec2) {
	d1 := distPointToLine(p1, p0, p3)
	d2 := distPointToLine(p2, p0, p3)
	if max(d1, d2) <= tolerance || depth >= maxFlattenDepth {
		*out = append(*out, p0)
		return
	}

	// de Casteljau at t = 0.5
	m01 := lerp(p0, p1, 0.5)
	m12 := lerp(p1, p2, 0.5)
	m23 := lerp(p2, p3, 0.5)
	m012 := lerp(m01, m12, 0.5)
	m123 := lerp(m12, m23, 0.5)
	m0123 := lerp(m012, m123, 0.5)

	flattenCubic(p0, m01, m012, m0123, tolerance, depth+1, out)
	flattenCubic(m0123, m123, m23, p3, tolerance, depth+1, out)
}
