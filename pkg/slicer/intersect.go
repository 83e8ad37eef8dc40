package slicer

// segment is a raw, un-quantized directed 2D line produced by intersecting
// one triangle with one cutting plane, before the endpoints are rounded to
// micrometers and dropped into a SegmentMap.
type segment struct {
	start, end Vec2
}

// edgePlaneIntersect intersects the segment p0->p1 against the plane
// z = zc. It returns ok = false when the edge does not cross the plane: both
// endpoints are strictly on the same side, and neither is on the plane.
//
// A parallel edge (p0.Z == p1.Z == zc) would divide by zero here; callers
// must exclude this case by classifying the triangle first (see
// sliceTriangle) - in the generic case this is guaranteed because at least
// one vertex is strictly off the plane.
func edgePlaneIntersect(p0, p1 Vec3, zc float32) (Vec3, bool) {
	d0 := p0.Z - zc
	d1 := p1.Z - zc
	e0 := floatEq(p0.Z, zc)
	e1 := floatEq(p1.Z, zc)
	if !e0 && !e1 && sameSign(d0, d1) {
		return Vec3{}, false
	}

	t := (zc - p0.Z) / (p1.Z - p0.Z)
	return Vec3{
		X: p0.X + (p1.X-p0.X)*t,
		Y: p0.Y + (p1.Y-p0.Y)*t,
		Z: zc,
	}, true
}

func sameSign(a, b float32) bool {
	return (a < 0 && b < 0) || (a > 0 && b > 0)
}

// orient picks the emission direction for a generic-case segment so that,
// walking from start to end with head up along +Z, the interior of the
// solid is on the left.
func orient(a, b Vec3, triangleNormal Vec3) (start, end Vec2) {
	planeNormal := Vec3{X: 0, Y: 0, Z: 1}
	direction := planeNormal.Cross(triangleNormal).Normalize()

	forward := a.Sub(b)
	if forward.Dot(direction) > 0 {
		return dropZ(b), dropZ(a)
	}
	return dropZ(a), dropZ(b)
}

func dropZ(v Vec3) Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// sliceTriangle classifies a triangle against the cutting plane z = zc and
// emits zero or one directed segment via emit. zmin/zmax are the triangle's
// own Z-extent (§4.3) and are needed to distinguish a vertex that merely
// grazes the plane from one that produces a genuine edge-vertex crossing.
func sliceTriangle(t Triangle, zc, zmin, zmax float32, emit func(segment)) {
	aPlanar := floatEq(t.P0.Z, zc)
	bPlanar := floatEq(t.P1.Z, zc)
	cPlanar := floatEq(t.P2.Z, zc)

	switch {
	case aPlanar && bPlanar && cPlanar:
		// Triangle lies entirely on the cutting plane; adjacent
		// non-coplanar triangles contribute the boundary instead.
		return

	case aPlanar && !bPlanar && !cPlanar:
		if floatEq(t.P0.Z, zmin) || floatEq(t.P0.Z, zmax) {
			return // plane only grazes a vertex
		}
		sliceGeneric(t, zc, emit)

	case !aPlanar && bPlanar && !cPlanar:
		if floatEq(t.P1.Z, zmin) || floatEq(t.P1.Z, zmax) {
			return
		}
		sliceGeneric(t, zc, emit)

	case !aPlanar && !bPlanar && cPlanar:
		if floatEq(t.P2.Z, zmin) || floatEq(t.P2.Z, zmax) {
			return
		}
		sliceGeneric(t, zc, emit)

	case aPlanar && bPlanar && !cPlanar:
		emit(segment{start: dropZ(t.P0), end: dropZ(t.P1)})

	case !aPlanar && bPlanar && cPlanar:
		emit(segment{start: dropZ(t.P1), end: dropZ(t.P2)})

	case aPlanar && !bPlanar && cPlanar:
		emit(segment{start: dropZ(t.P2), end: dropZ(t.P0)})

	default: // F,F,F
		sliceGeneric(t, zc, emit)
	}
}

// sliceGeneric handles the (F,F,F) case, and the degenerate single-vertex
// edge-crossing cases, by intersecting each of the triangle's three edges
// with the plane and expecting exactly two intersections.
func sliceGeneric(t Triangle, zc float32, emit func(segment)) {
	ab, abOK := edgePlaneIntersect(t.P0, t.P1, zc)
	bc, bcOK := edgePlaneIntersect(t.P1, t.P2, zc)
	ca, caOK := edgePlaneIntersect(t.P2, t.P0, zc)

	count := 0
	for _, ok := range [3]bool{abOK, bcOK, caOK} {
		if ok {
			count++
		}
	}
	// A count of 3 means the (T,T,T) branch should have fired (numerical
	// slippage); a count of 1 means a line-vertex touch whose correct
	// handling requires inspecting the adjacent triangle. Current policy
	// skips both (see spec's open questions).
	if count != 2 {
		return
	}

	var a, b Vec3
	switch {
	case abOK && bcOK:
		a, b = ab, bc
	case abOK && caOK:
		a, b = ab, ca
	default: // bcOK && caOK
		a, b = bc, ca
	}

	start, end := orient(a, b, t.OutwardNormal())
	emit(segment{start: start, end: end})
}
