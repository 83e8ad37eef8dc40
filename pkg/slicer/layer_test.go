package slicer

import "testing"

func TestLayerRangeWithinOneLayer(t *testing.T) {
	lo, hi, ok := layerRange(0.1, 0.3, 1.0)
	if ok {
		t.Errorf("expected ok=false for a triangle entirely between two planes, got lo=%d hi=%d", lo, hi)
	}
}

func TestLayerRangeUnitCube(t *testing.T) {
	lo, hi, ok := layerRange(0, 1, 1.0)
	if !ok || lo != 0 || hi != 1 {
		t.Errorf("expected lo=0 hi=1, got lo=%d hi=%d ok=%v", lo, hi, ok)
	}
}

func TestLayerRangeFineLayerHeight(t *testing.T) {
	lo, hi, ok := layerRange(0, 1, 0.2)
	if !ok || lo != 0 || hi != 5 {
		t.Errorf("expected lo=0 hi=5, got lo=%d hi=%d ok=%v", lo, hi, ok)
	}
}

func TestLayerRangeGrazingVertexIsSingleLayer(t *testing.T) {
	// A triangle touching exactly one cutting plane (zmin == k*h, zmax below
	// the next plane) still yields a non-empty single-layer range;
	// sliceTriangle is responsible for recognizing the vertex-graze and
	// emitting nothing.
	lo, hi, ok := layerRange(1.0, 1.2, 0.5)
	if !ok || lo != 2 || hi != 2 {
		t.Errorf("expected lo=hi=2, got lo=%d hi=%d ok=%v", lo, hi, ok)
	}
}
