package slicer

import (
	"math"
	"testing"
)

// unitCube returns the 12 CCW-wound, outward-facing triangles of the cube
// spanning [0,1] on each axis.
func unitCube() SliceSource {
	p := func(x, y, z float32) Vec3 { return NewVec3(x, y, z) }
	return SliceSource{
		// bottom, z=0, normal (0,0,-1)
		NewTriangle(p(0, 0, 0), p(0, 1, 0), p(1, 1, 0)),
		NewTriangle(p(0, 0, 0), p(1, 1, 0), p(1, 0, 0)),
		// top, z=1, normal (0,0,1)
		NewTriangle(p(0, 0, 1), p(1, 0, 1), p(1, 1, 1)),
		NewTriangle(p(0, 0, 1), p(1, 1, 1), p(0, 1, 1)),
		// -X, x=0, normal (-1,0,0)
		NewTriangle(p(0, 0, 0), p(0, 0, 1), p(0, 1, 1)),
		NewTriangle(p(0, 0, 0), p(0, 1, 1), p(0, 1, 0)),
		// +X, x=1, normal (1,0,0)
		NewTriangle(p(1, 0, 0), p(1, 1, 0), p(1, 1, 1)),
		NewTriangle(p(1, 0, 0), p(1, 1, 1), p(1, 0, 1)),
		// -Y, y=0, normal (0,-1,0)
		NewTriangle(p(0, 0, 0), p(1, 0, 0), p(1, 0, 1)),
		NewTriangle(p(0, 0, 0), p(1, 0, 1), p(0, 0, 1)),
		// +Y, y=1, normal (0,1,0)
		NewTriangle(p(0, 1, 0), p(0, 1, 1), p(1, 1, 1)),
		NewTriangle(p(0, 1, 0), p(1, 1, 1), p(1, 1, 0)),
	}
}

func TestSliceUnitCubeCoarseLayerHeight(t *testing.T) {
	mesh, err := Slice(unitCube(), Config{LayerHeight: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mesh.ContourCount() != 2 {
		t.Fatalf("expected 2 layers, got %d", mesh.ContourCount())
	}
	for k := 0; k < mesh.ContourCount(); k++ {
		paths := mesh.Contour(k).Paths()
		if len(paths) != 1 {
			t.Errorf("layer %d: expected 1 closed path, got %d", k, len(paths))
			continue
		}
		if len(paths[0].Points()) != 4 {
			t.Errorf("layer %d: expected 4 vertices, got %d", k, len(paths[0].Points()))
		}
	}
	xlo, xhi := mesh.LimitsX()
	ylo, yhi := mesh.LimitsY()
	if xlo != 0 || xhi != 1 || ylo != 0 || yhi != 1 {
		t.Errorf("expected unit-square limits, got x=[%v,%v] y=[%v,%v]", xlo, xhi, ylo, yhi)
	}
}

func TestSliceUnitCubeFineLayerHeight(t *testing.T) {
	mesh, err := Slice(unitCube(), Config{LayerHeight: 0.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mesh.ContourCount() != 6 {
		t.Fatalf("expected 6 layers, got %d", mesh.ContourCount())
	}
	for k := 0; k < mesh.ContourCount(); k++ {
		paths := mesh.Contour(k).Paths()
		if len(paths) != 1 {
			t.Errorf("layer %d: expected 1 closed path, got %d", k, len(paths))
			continue
		}
		if len(paths[0].Points()) != 4 {
			t.Errorf("layer %d: expected 4 vertices, got %d", k, len(paths[0].Points()))
		}
	}
}

func TestSliceFlatTriangleProducesOneEmptyLayer(t *testing.T) {
	// A single triangle lying entirely in the z=0 plane intersects no
	// strictly-generic cutting plane: layerRange yields only k=0, and the
	// all-planar classification at k=0 emits nothing.
	tri := NewTriangle(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(0, 1, 0))
	mesh, err := Slice(SliceSource{tri}, Config{LayerHeight: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mesh.ContourCount() != 1 {
		t.Fatalf("expected 1 (empty) layer, got %d", mesh.ContourCount())
	}
	if len(mesh.Contour(0).Paths()) != 0 {
		t.Errorf("expected no paths for a coplanar triangle, got %d", len(mesh.Contour(0).Paths()))
	}
}

func TestSliceTetrahedron(t *testing.T) {
	p := func(x, y, z float32) Vec3 { return NewVec3(x, y, z) }
	apex := p(0.5, 0.5, 1)
	base := [3]Vec3{p(0, 0, 0), p(1, 0, 0), p(0.5, 1, 0)}
	src := SliceSource{
		NewTriangle(base[0], base[2], base[1]), // base, outward normal -Z
		NewTriangle(base[0], base[1], apex),
		NewTriangle(base[1], base[2], apex),
		NewTriangle(base[2], base[0], apex),
	}
	mesh, err := Slice(src, Config{LayerHeight: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// zmin=0, zmax=1, h=0.5 -> layers 0,1,2.
	if mesh.ContourCount() != 3 {
		t.Fatalf("expected 3 layers, got %d", mesh.ContourCount())
	}
	if len(mesh.Contour(1).Paths()) != 1 {
		t.Errorf("expected the mid-height cross-section to be a single closed triangle, got %d paths", len(mesh.Contour(1).Paths()))
	}
}

func TestSliceRejectsZeroLayerHeight(t *testing.T) {
	_, err := Slice(unitCube(), Config{LayerHeight: 0})
	if err == nil {
		t.Fatalf("expected an error for layer height 0")
	}
}

func TestSliceIsTranslationInvariantInLayerCount(t *testing.T) {
	base := unitCube()
	shifted := make(SliceSource, len(base))
	for i, tr := range base {
		shifted[i] = NewTriangle(
			tr.P0.Add(NewVec3(5, -3, 0)),
			tr.P1.Add(NewVec3(5, -3, 0)),
			tr.P2.Add(NewVec3(5, -3, 0)),
		)
	}
	meshA, err := Slice(base, Config{LayerHeight: 0.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meshB, err := Slice(shifted, Config{LayerHeight: 0.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meshA.ContourCount() != meshB.ContourCount() {
		t.Errorf("expected an XY translation to leave layer count unchanged: %d vs %d", meshA.ContourCount(), meshB.ContourCount())
	}
}

func TestSliceNegativeZDoesNotPanic(t *testing.T) {
	// A cube translated down by 3 layer heights has zmin = -3, zmax = -2 at
	// layer_height = 1.0: layerRange yields lo = -3, hi = -2. Slice must not
	// index a slice with a negative layer number.
	base := unitCube()
	shifted := make(SliceSource, len(base))
	for i, tr := range base {
		shifted[i] = NewTriangle(
			tr.P0.Add(NewVec3(0, 0, -3)),
			tr.P1.Add(NewVec3(0, 0, -3)),
			tr.P2.Add(NewVec3(0, 0, -3)),
		)
	}

	mesh, err := Slice(shifted, Config{LayerHeight: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mesh.BaseLayer() != -3 {
		t.Errorf("expected BaseLayer() == -3, got %d", mesh.BaseLayer())
	}
	if mesh.ContourCount() != 2 {
		t.Fatalf("expected 2 layers, got %d", mesh.ContourCount())
	}
	for k := 0; k < mesh.ContourCount(); k++ {
		paths := mesh.Contour(k).Paths()
		if len(paths) != 1 || len(paths[0].Points()) != 4 {
			t.Errorf("layer %d: expected a single 4-vertex square contour", k)
		}
	}
}

func TestSliceFlatTriangleAboveOriginYieldsEmptyLayers(t *testing.T) {
	// A flat triangle at z=5 touches only the cutting plane k=5, where the
	// all-planar classification emits nothing.
	tri := NewTriangle(NewVec3(0, 0, 5), NewVec3(1, 0, 5), NewVec3(0, 1, 5))
	mesh, err := Slice(SliceSource{tri}, Config{LayerHeight: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// zmin == zmax == 5 with h == 1.0 gives layerRange(5, 5, 1.0) = (5, 5, true).
	// Layer 0 stays anchored at z = 0, so the mesh holds the empty layers 0..5.
	if mesh.ContourCount() != 6 {
		t.Fatalf("expected 6 (empty) layers, got %d", mesh.ContourCount())
	}
}

// wallQuad returns the two triangles of a vertical prism wall running along
// the XY edge a->b between z0 and z1. The outward normal points to the
// right of the a->b direction (equivalently: solid material on the left),
// matching the winding used throughout unitCube's side faces.
func wallQuad(a, b Vec2, z0, z1 float32) [2]Triangle {
	av0 := NewVec3(a.X, a.Y, z0)
	bv0 := NewVec3(b.X, b.Y, z0)
	bv1 := NewVec3(b.X, b.Y, z1)
	av1 := NewVec3(a.X, a.Y, z1)
	return [2]Triangle{
		NewTriangle(av0, bv0, bv1),
		NewTriangle(av0, bv1, av1),
	}
}

// squareWasher returns the closed triangle mesh of a square prism with a
// smaller, concentric square hole bored through it along Z: a picture-frame
// shape, extruded from z=0 to z=1. Outer boundary X,Y in [0,4]; the through
// hole is X,Y in [1,3]. This is the triangle-mesh analogue of a cube with a
// through-hole: slicing it at any height between 0 and 1 yields two nested
// closed paths per layer, the hole's path wound opposite the outer
// boundary's.
func squareWasher() SliceSource {
	outer := []Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	inner := []Vec2{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}}
	const z0, z1 float32 = 0, 1

	var tris SliceSource

	// Outer wall: solid is toward the hole (left of the CCW outer loop), so
	// the loop is walked in its natural order.
	for i := 0; i < 4; i++ {
		a, b := outer[i], outer[(i+1)%4]
		quad := wallQuad(a, b, z0, z1)
		tris = append(tris, quad[0], quad[1])
	}

	// Hole wall: solid is away from the hole, i.e. to the left of the
	// *reversed* inner loop, so it is walked back to front.
	reversed := []Vec2{inner[0], inner[3], inner[2], inner[1]}
	for i := 0; i < 4; i++ {
		a, b := reversed[i], reversed[(i+1)%4]
		quad := wallQuad(a, b, z0, z1)
		tris = append(tris, quad[0], quad[1])
	}

	// Top (z=1, normal +Z) and bottom (z=0, normal -Z) caps: the frame is
	// tiled by 4 trapezoids, one per side, each (outer[i], outer[i+1],
	// inner[i+1], inner[i]) — verified CCW in the XY plane, which gives a
	// +Z normal for the top cap as-is, and a -Z normal for the bottom cap
	// with the last two vertices of each triangle swapped.
	for i := 0; i < 4; i++ {
		o0, o1 := outer[i], outer[(i+1)%4]
		n0, n1 := inner[i], inner[(i+1)%4]
		top := func(p Vec2) Vec3 { return NewVec3(p.X, p.Y, z1) }
		bottom := func(p Vec2) Vec3 { return NewVec3(p.X, p.Y, z0) }
		tris = append(tris,
			NewTriangle(top(o0), top(o1), top(n1)),
			NewTriangle(top(o0), top(n1), top(n0)),
			NewTriangle(bottom(o0), bottom(n1), bottom(o1)),
			NewTriangle(bottom(o0), bottom(n0), bottom(n1)),
		)
	}

	return tris
}

// signedArea computes twice the shoelace-formula signed area of a closed
// path: positive for a counterclockwise winding, negative for clockwise.
func signedArea(pts []Vec2) float32 {
	var sum float32
	n := len(pts)
	for i := 0; i < n; i++ {
		p0, p1 := pts[i], pts[(i+1)%n]
		sum += p0.X*p1.Y - p1.X*p0.Y
	}
	return sum
}

func TestSliceCubeWithThroughHole(t *testing.T) {
	mesh, err := Slice(squareWasher(), Config{LayerHeight: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mesh.ContourCount() != 3 {
		t.Fatalf("expected 3 layers, got %d", mesh.ContourCount())
	}

	for k := 0; k < mesh.ContourCount(); k++ {
		paths := mesh.Contour(k).Paths()
		if len(paths) != 2 {
			t.Fatalf("layer %d: expected 2 closed paths (outer boundary + hole), got %d", k, len(paths))
		}
		for _, p := range paths {
			if len(p.Points()) != 4 {
				t.Errorf("layer %d: expected a 4-vertex square path, got %d vertices", k, len(p.Points()))
			}
		}

		a0 := signedArea(paths[0].Points())
		a1 := signedArea(paths[1].Points())
		if (a0 > 0) == (a1 > 0) {
			t.Errorf("layer %d: expected outer boundary and hole to wind oppositely, got signed areas %v and %v", k, a0, a1)
		}
		if math.Abs(float64(a0)) == math.Abs(float64(a1)) {
			t.Errorf("layer %d: expected outer boundary and hole areas to differ in magnitude", k)
		}
	}
}
