package slicer

import "testing"

func TestEdgePlaneIntersectNoIntersection(t *testing.T) {
	// A line below the cutting plane.
	if _, ok := edgePlaneIntersect(NewVec3(0, 0, 0), NewVec3(1, 1, 0), 0.1); ok {
		t.Errorf("expected no intersection for a line entirely below the plane")
	}
	// A line above the cutting plane.
	if _, ok := edgePlaneIntersect(NewVec3(0, 0, 1.1), NewVec3(1, 1, 1.1), 1.0); ok {
		t.Errorf("expected no intersection for a line entirely above the plane")
	}
}

func TestEdgePlaneIntersectCrossing(t *testing.T) {
	p, ok := edgePlaneIntersect(NewVec3(0, 0, 0), NewVec3(0, 0, 1), 0.5)
	if !ok {
		t.Fatalf("expected an intersection")
	}
	if !floatEq(p.X, 0) || !floatEq(p.Y, 0) || !floatEq(p.Z, 0.5) {
		t.Errorf("intersection point failed: expected (0,0,0.5), got %v", p)
	}
}

func TestEdgePlaneIntersectParallelOnPlane(t *testing.T) {
	// A line lying on the cutting plane itself is degenerate: the division
	// by zero in the parametric form produces a NaN X/Y. Callers must
	// exclude this by classifying the triangle before calling this helper;
	// it is only exercised directly here to pin the degenerate output.
	p, ok := edgePlaneIntersect(NewVec3(0, 0, 0), NewVec3(1, 1, 0), 0.0)
	if !ok {
		t.Fatalf("expected ok=true for a line on the plane (both endpoints classify as on-plane)")
	}
	if p.X == p.X || p.Y == p.Y { // NaN != NaN
		t.Errorf("expected NaN X/Y for a degenerate parallel intersection, got %v", p)
	}
	if p.Z != 0 {
		t.Errorf("expected Z == 0, got %v", p.Z)
	}
}

func TestSliceTriangleAllPlanarSkipped(t *testing.T) {
	tri := NewTriangle(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(0, 1, 0))
	count := 0
	sliceTriangle(tri, 0, 0, 0, func(segment) { count++ })
	if count != 0 {
		t.Errorf("expected a fully coplanar triangle to emit nothing, got %d segments", count)
	}
}

func TestSliceTriangleSinglePlanarVertexGrazing(t *testing.T) {
	// Vertex at zmin exactly on the cutting plane; the other two vertices
	// are strictly above. This must not produce a segment: it is a single
	// point of contact, not a crossing.
	tri := NewTriangle(NewVec3(0, 0, 0), NewVec3(1, 0, 1), NewVec3(0, 1, 1))
	count := 0
	sliceTriangle(tri, 0, 0, 1, func(segment) { count++ })
	if count != 0 {
		t.Errorf("expected a vertex-graze at zmin to emit nothing, got %d segments", count)
	}
}

func TestSliceTriangleTwoPlanarVerticesEmitsEdge(t *testing.T) {
	tri := NewTriangle(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(0, 1, 1))
	var got []segment
	sliceTriangle(tri, 0, 0, 1, func(s segment) { got = append(got, s) })
	if len(got) != 1 {
		t.Fatalf("expected exactly one segment, got %d", len(got))
	}
	want := segment{start: Vec2{X: 0, Y: 0}, end: Vec2{X: 1, Y: 0}}
	if got[0] != want {
		t.Errorf("expected %v, got %v", want, got[0])
	}
}

func TestSliceTriangleGenericCrossing(t *testing.T) {
	tri := NewTriangle(NewVec3(0, 0, -1), NewVec3(2, 0, 1), NewVec3(0, 2, 1))
	var got []segment
	sliceTriangle(tri, 0, -1, 1, func(s segment) { got = append(got, s) })
	if len(got) != 1 {
		t.Fatalf("expected exactly one segment from a generic crossing, got %d", len(got))
	}
}
