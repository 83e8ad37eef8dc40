package slicer

// SegmentMap is a finite mapping from a quantized start point to its
// quantized successor. For a well-formed closed mesh sliced by a generic
// plane, every key has exactly one successor and every value is also some
// key: the map is a disjoint union of simple directed cycles.
//
// A key that already exists is overwritten on insert; duplicate segments
// contributed by adjacent triangles sharing an edge are benign, since they
// always agree on the successor.
type SegmentMap map[QuantizedVec2]QuantizedVec2

// insert quantizes and records start->end. Degenerate segments that
// collapse to a single point after quantization are discarded rather than
// inserted.
func (m SegmentMap) insert(s segment) {
	start := Quantize(s.start.X, s.start.Y)
	end := Quantize(s.end.X, s.end.Y)
	if start == end {
		return
	}
	m[start] = end
}
