package slicer

import (
	"github.com/philipparndt/gostl/pkg/geometry"
	"github.com/philipparndt/gostl/pkg/stl"
)

// Triangle is an oriented triangular facet, vertices in counter-clockwise
// order as viewed from outside the solid. The outward normal is implied by
// (P1-P0) x (P2-P0); the mesh is assumed closed and consistently oriented,
// and the slicer never attempts to detect or repair orientation errors.
type Triangle struct {
	P0, P1, P2 Vec3
}

// NewTriangle creates a Triangle from its three vertices.
func NewTriangle(p0, p1, p2 Vec3) Triangle {
	return Triangle{P0: p0, P1: p1, P2: p2}
}

// ZMinMax returns the minimum and maximum Z coordinate of the triangle's
// three vertices.
func (t Triangle) ZMinMax() (zmin, zmax float32) {
	zmin = t.P0.Z
	zmax = t.P0.Z
	for _, z := range [2]float32{t.P1.Z, t.P2.Z} {
		if z < zmin {
			zmin = z
		}
		if z > zmax {
			zmax = z
		}
	}
	return zmin, zmax
}

// OutwardNormal computes the triangle's outward-facing normal from its CCW
// vertex winding.
func (t Triangle) OutwardNormal() Vec3 {
	edge1 := t.P1.Sub(t.P0)
	edge2 := t.P2.Sub(t.P0)
	return edge1.Cross(edge2).Normalize()
}

// TriangleSource yields the triangles of a mesh, one per facet, exactly
// once each. Order is not observed by the slicer.
type TriangleSource interface {
	Triangles(yield func(Triangle) bool)
}

// modelSource adapts a *stl.Model (geometry.Triangle, float64 precision) to
// a slicer.TriangleSource (Triangle, float32 precision). STL vertex data is
// f32 on disk (see pkg/stl's binary parser), so narrowing back to float32
// here does not lose precision beyond what the file format already had.
type modelSource struct {
	model *stl.Model
}

// FromModel adapts a parsed STL/OpenSCAD model into a TriangleSource.
func FromModel(model *stl.Model) TriangleSource {
	return modelSource{model: model}
}

func (m modelSource) Triangles(yield func(Triangle) bool) {
	for _, tri := range m.model.Triangles {
		t := Triangle{
			P0: vec3From(tri.V1),
			P1: vec3From(tri.V2),
			P2: vec3From(tri.V3),
		}
		if !yield(t) {
			return
		}
	}
}

func vec3From(v geometry.Vector3) Vec3 {
	return Vec3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// SliceSource adapts a plain slice of triangles into a TriangleSource, for
// callers (and tests) that already have triangles in memory rather than a
// loaded STL model.
type SliceSource []Triangle

func (s SliceSource) Triangles(yield func(Triangle) bool) {
	for _, t := range s {
		if !yield(t) {
			return
		}
	}
}
