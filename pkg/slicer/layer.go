package slicer

import "math"

// layerRange returns the inclusive range of cutting-plane indices
// [lo, hi] that a triangle with the given Z-extent intersects, for a given
// layer height. ok is false when the range is empty (the triangle is
// entirely between two adjacent planes and grazes neither).
//
// A cutting plane at k*h intersects the triangle iff zmin <= k*h <= zmax.
// Using ceil/floor (rather than round) yields exactly the planes inside
// [zmin, zmax]. A plane that only grazes a single vertex sitting exactly at
// zmin or zmax is still in range; the plane-triangle intersector handles it
// as a degenerate case and emits nothing.
func layerRange(zmin, zmax, layerHeight float32) (lo, hi int, ok bool) {
	lo = int(math.Ceil(float64(zmin / layerHeight)))
	hi = int(math.Floor(float64(zmax / layerHeight)))
	return lo, hi, hi >= lo
}
