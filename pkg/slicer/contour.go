package slicer

// ClosedPath is an ordered sequence of 2D points representing a closed
// polygon; the last edge is implicit, running from the last vertex back to
// the first.
type ClosedPath struct {
	points []Vec2
}

// Points returns the path's vertices in order.
func (p ClosedPath) Points() []Vec2 {
	return p.points
}

// Segments returns the path's directed edges, (p[0],p[1]), (p[1],p[2]), ...,
// (p[n-1],p[0]).
func (p ClosedPath) Segments() []Segment {
	n := len(p.points)
	if n == 0 {
		return nil
	}
	segs := make([]Segment, n)
	for i := 0; i < n; i++ {
		segs[i] = Segment{Start: p.points[i], End: p.points[(i+1)%n]}
	}
	return segs
}

// Segment is a directed edge of a ClosedPath.
type Segment struct {
	Start, End Vec2
}

// Contour is the unordered collection of closed paths produced by slicing
// one layer, plus the axis-aligned bounding box of the retained vertices.
type Contour struct {
	paths            []ClosedPath
	limitsX, limitsY [2]float32
}

// Paths returns the contour's closed paths.
func (c Contour) Paths() []ClosedPath {
	return c.paths
}

// LimitsX returns the (min, max) X bound of the contour's retained vertices.
func (c Contour) LimitsX() (float32, float32) {
	return c.limitsX[0], c.limitsX[1]
}

// LimitsY returns the (min, max) Y bound of the contour's retained vertices.
func (c Contour) LimitsY() (float32, float32) {
	return c.limitsY[0], c.limitsY[1]
}

// isParallel reports whether 2D vectors v0 and v1 are collinear (their
// cross product's Z component is zero). No epsilon is applied: only
// geometrically-exact straight runs are merged, since a looser test risks
// fusing near-collinear edges that represent real curvature.
func isParallel(v0, v1 Vec2) bool {
	return (v0.X*v1.Y)-(v0.Y*v1.X) == 0
}

func sub(a, b Vec2) Vec2 {
	return Vec2{X: a.X - b.X, Y: a.Y - b.Y}
}

// assembleContour walks a SegmentMap into zero or more closed paths,
// dropping vertices that are exactly collinear with their neighbors and
// extending the contour's XY bounding box with the vertices of each path as
// it closes. The map is consumed:
// entries are removed from it as they are visited.
func assembleContour(m SegmentMap) Contour {
	var c Contour
	if len(m) == 0 {
		return c
	}

	takePoint := func() (QuantizedVec2, QuantizedVec2, bool) {
		for k, v := range m {
			delete(m, k)
			return k, v, true
		}
		return QuantizedVec2{}, QuantizedVec2{}, false
	}

	var xLimits, yLimits [2]float32
	hasLimits := false
	extend := func(p Vec2) {
		if !hasLimits {
			xLimits = [2]float32{p.X, p.X}
			yLimits = [2]float32{p.Y, p.Y}
			hasLimits = true
			return
		}
		if p.X < xLimits[0] {
			xLimits[0] = p.X
		}
		if p.X > xLimits[1] {
			xLimits[1] = p.X
		}
		if p.Y < yLimits[0] {
			yLimits[0] = p.Y
		}
		if p.Y > yLimits[1] {
			yLimits[1] = p.Y
		}
	}

	segmentStart, segmentEnd, _ := takePoint()
	segmentDirection := sub(segmentEnd.ToVec2(), segmentStart.ToVec2())
	pathStart := segmentStart

	path := []Vec2{segmentStart.ToVec2()}

	for {
		next, hadNext := m[segmentEnd]
		if !hadNext {
			// Broken mesh: the successor is missing. Abandon this path;
			// already-closed paths already appended to c are retained.
			c.limitsX = xLimits
			c.limitsY = yLimits
			return c
		}
		delete(m, segmentEnd)

		p0 := segmentStart
		p1 := segmentEnd
		p2 := next

		vp0p1 := segmentDirection
		vp0p2 := sub(p2.ToVec2(), p0.ToVec2())

		if !isParallel(vp0p1, vp0p2) {
			path = append(path, p1.ToVec2())
			segmentStart = p1
			segmentDirection = sub(p2.ToVec2(), p1.ToVec2())
		}
		segmentEnd = p2

		if next == pathStart {
			// The chosen path start may sit in the middle of a straight
			// run. Detect that and fold it into the run's true start.
			vp1p2 := sub(p2.ToVec2(), p1.ToVec2())
			if len(path) > 1 && isParallel(sub(path[1], path[0]), vp1p2) {
				path = path[:len(path)-1]
				path[0] = segmentStart.ToVec2()
			}

			c.paths = append(c.paths, ClosedPath{points: path})
			for _, p := range path {
				extend(p)
			}

			var ok bool
			segmentStart, segmentEnd, ok = takePoint()
			if !ok {
				break
			}
			segmentDirection = sub(segmentEnd.ToVec2(), segmentStart.ToVec2())
			pathStart = segmentStart
			path = []Vec2{segmentStart.ToVec2()}
			continue
		}
	}

	c.limitsX = xLimits
	c.limitsY = yLimits
	return c
}
