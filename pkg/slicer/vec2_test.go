package slicer

import "testing"

func TestVec3Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	result := x.Cross(y)
	expected := NewVec3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4)
	n := v.Normalize()
	if n.Length() < 0.999 || n.Length() > 1.001 {
		t.Errorf("Normalize failed: expected unit length, got %v", n.Length())
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	n := Vec3{}.Normalize()
	if n != (Vec3{}) {
		t.Errorf("Normalize of zero vector failed: expected zero vector, got %v", n)
	}
}

func TestQuantizeRoundsToMicrons(t *testing.T) {
	q := Quantize(1.00049, 2.00051)
	expected := QuantizedVec2{X: 1.000, Y: 2.001}
	if q != expected {
		t.Errorf("Quantize failed: expected %v, got %v", expected, q)
	}
}

func TestQuantizedVec2IsComparable(t *testing.T) {
	m := map[QuantizedVec2]bool{}
	a := Quantize(1, 2)
	b := Quantize(1, 2)
	m[a] = true
	if !m[b] {
		t.Errorf("two quantizations of the same point should compare equal as map keys")
	}
}

func TestFloatEq(t *testing.T) {
	if !floatEq(1.0, 1.00005) {
		t.Errorf("floatEq failed: expected values within epsilon to be equal")
	}
	if floatEq(1.0, 1.001) {
		t.Errorf("floatEq failed: expected values outside epsilon to differ")
	}
}
