package slicesvg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/philipparndt/gostl/pkg/slicer"
)

func cube() slicer.SliceSource {
	p := func(x, y, z float32) slicer.Vec3 { return slicer.NewVec3(x, y, z) }
	return slicer.SliceSource{
		slicer.NewTriangle(p(0, 0, 0), p(0, 1, 0), p(1, 1, 0)),
		slicer.NewTriangle(p(0, 0, 0), p(1, 1, 0), p(1, 0, 0)),
		slicer.NewTriangle(p(0, 0, 1), p(1, 0, 1), p(1, 1, 1)),
		slicer.NewTriangle(p(0, 0, 1), p(1, 1, 1), p(0, 1, 1)),
		slicer.NewTriangle(p(0, 0, 0), p(0, 0, 1), p(0, 1, 1)),
		slicer.NewTriangle(p(0, 0, 0), p(0, 1, 1), p(0, 1, 0)),
		slicer.NewTriangle(p(1, 0, 0), p(1, 1, 0), p(1, 1, 1)),
		slicer.NewTriangle(p(1, 0, 0), p(1, 1, 1), p(1, 0, 1)),
		slicer.NewTriangle(p(0, 0, 0), p(1, 0, 0), p(1, 0, 1)),
		slicer.NewTriangle(p(0, 0, 0), p(1, 0, 1), p(0, 0, 1)),
		slicer.NewTriangle(p(0, 1, 0), p(0, 1, 1), p(1, 1, 1)),
		slicer.NewTriangle(p(0, 1, 0), p(1, 1, 1), p(1, 1, 0)),
	}
}

func TestRenderAnimatedHasOneCommentPerLayer(t *testing.T) {
	mesh, err := slicer.Slice(cube(), slicer.Config{LayerHeight: 0.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := render(&buf, mesh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := strings.Count(buf.String(), "<!-- Layer")
	if got != mesh.ContourCount() {
		t.Errorf("expected %d layer comments, got %d", mesh.ContourCount(), got)
	}
	if !strings.Contains(buf.String(), "<svg xmlns=") {
		t.Errorf("expected an <svg> root element")
	}
}

func TestVisibilityValuesCycleSingleLayer(t *testing.T) {
	got := visibilityValues(1, 3)
	want := "hidden; visible; hidden"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
