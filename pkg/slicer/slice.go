package slicer

// Slice computes, for each horizontal cutting plane implied by cfg, the set
// of directed segments where that plane cuts the mesh yielded by src, then
// stitches those segments into closed contours per layer.
//
// Slice is a pure, synchronous function: no goroutines, no shared state, no
// I/O. A caller wanting to parallelize may slice disjoint triangle subsets
// independently and merge the resulting SegmentMaps per layer before calling
// assembleContour; that is not done here.
func Slice(src TriangleSource, cfg Config) (SlicedMesh, error) {
	if err := cfg.Validate(); err != nil {
		return SlicedMesh{}, err
	}

	// Keyed by layer (not a slice index): layerRange's ⌈zmin/h⌉ can be
	// negative for a triangle that sits below z = 0, and a mesh is not
	// required to start at z = 0.
	layers := make(map[int]SegmentMap)
	seenAny := false
	minLayer, maxLayer := 0, 0
	src.Triangles(func(t Triangle) bool {
		zmin, zmax := t.ZMinMax()
		lo, hi, ok := layerRange(zmin, zmax, cfg.LayerHeight)
		if !ok {
			return true
		}
		if !seenAny || lo < minLayer {
			minLayer = lo
		}
		if !seenAny || hi > maxLayer {
			maxLayer = hi
		}
		seenAny = true

		for layer := lo; layer <= hi; layer++ {
			m, exists := layers[layer]
			if !exists {
				m = make(SegmentMap)
				layers[layer] = m
			}
			cuttingPlane := float32(layer) * cfg.LayerHeight
			sliceTriangle(t, cuttingPlane, zmin, zmax, m.insert)
		}
		return true
	})

	if !seenAny {
		return SlicedMesh{}, nil
	}

	// Layer 0 anchors at z = 0 whenever the mesh doesn't reach below it;
	// only a mesh that itself dips below z = 0 shifts the base down.
	base := minLayer
	if base > 0 {
		base = 0
	}

	mesh := SlicedMesh{baseLayer: base}
	for layer := base; layer <= maxLayer; layer++ {
		m := layers[layer]
		if m == nil {
			m = SegmentMap{}
		}
		mesh.fold(assembleContour(m))
	}
	return mesh, nil
}
