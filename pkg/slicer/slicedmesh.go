package slicer

// SlicedMesh is the ordered sequence of per-layer Contours produced by
// Slice, plus the union XY bounding box across all layers. Contour 0's
// cutting plane is z = BaseLayer() * layer_height: BaseLayer is 0 for any
// mesh that does not dip below z = 0, so Contour(k)'s plane is the spec's
// k * layer_height in the common case; it goes negative only when the mesh
// itself extends below z = 0 (e.g. after a downward Z translation), so that
// layer indices can still be represented in a plain 0-based slice without
// dropping or clamping that geometry.
type SlicedMesh struct {
	layers           []Contour
	baseLayer        int
	limitsX, limitsY [2]float32
}

// ContourCount returns the number of layers in the sliced mesh.
func (s SlicedMesh) ContourCount() int {
	return len(s.layers)
}

// Contour returns the k-th layer's contour. Layer k's cutting plane is
// z = (BaseLayer() + k) * layer_height.
func (s SlicedMesh) Contour(k int) Contour {
	return s.layers[k]
}

// BaseLayer returns the cutting-plane index of Contour(0).
func (s SlicedMesh) BaseLayer() int {
	return s.baseLayer
}

// LimitsX returns the (min, max) X bound across every layer's contour.
func (s SlicedMesh) LimitsX() (float32, float32) {
	return s.limitsX[0], s.limitsX[1]
}

// LimitsY returns the (min, max) Y bound across every layer's contour.
func (s SlicedMesh) LimitsY() (float32, float32) {
	return s.limitsY[0], s.limitsY[1]
}

func (s *SlicedMesh) fold(c Contour) {
	if len(c.paths) > 0 {
		first := true
		for _, l := range s.layers {
			if len(l.paths) > 0 {
				first = false
				break
			}
		}
		xlo, xhi := c.LimitsX()
		ylo, yhi := c.LimitsY()
		if first {
			s.limitsX = [2]float32{xlo, xhi}
			s.limitsY = [2]float32{ylo, yhi}
		}
		if xlo < s.limitsX[0] {
			s.limitsX[0] = xlo
		}
		if xhi > s.limitsX[1] {
			s.limitsX[1] = xhi
		}
		if ylo < s.limitsY[0] {
			s.limitsY[0] = ylo
		}
		if yhi > s.limitsY[1] {
			s.limitsY[1] = yhi
		}
	}
	s.layers = append(s.layers, c)
}
