package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// a minimal single-triangle ASCII STL, sufficient for stl.Parse to succeed
// so sliceOnce reaches slicer.Config.Validate.
const singleTriangleSTL = `solid fixture
facet normal 0 0 -1
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 0 1 0
  endloop
endfacet
endsolid fixture
`

func TestSliceOnceRejectsZeroLayerHeight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.stl")
	if err := os.WriteFile(path, []byte(singleTriangleSTL), 0o644); err != nil {
		t.Fatalf("writing fixture STL: %v", err)
	}

	origLayerHeight, origSVGOut, origLayer := sliceLayerHeight, sliceSVGOut, sliceLayer
	defer func() {
		sliceLayerHeight, sliceSVGOut, sliceLayer = origLayerHeight, origSVGOut, origLayer
	}()
	sliceLayerHeight = 0
	sliceSVGOut = ""
	sliceLayer = -1

	err := sliceOnce(path)
	if err == nil {
		t.Fatal("expected an error for --layer-height 0, got nil")
	}
	if !strings.Contains(err.Error(), "layer height") {
		t.Errorf("expected error to mention the invalid layer height, got: %v", err)
	}
}

func TestSliceOnceAcceptsValidLayerHeight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.stl")
	if err := os.WriteFile(path, []byte(singleTriangleSTL), 0o644); err != nil {
		t.Fatalf("writing fixture STL: %v", err)
	}

	origLayerHeight, origSVGOut, origLayer := sliceLayerHeight, sliceSVGOut, sliceLayer
	defer func() {
		sliceLayerHeight, sliceSVGOut, sliceLayer = origLayerHeight, origSVGOut, origLayer
	}()
	sliceLayerHeight = 1.0
	sliceSVGOut = ""
	sliceLayer = -1

	if err := sliceOnce(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
