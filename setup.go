package raster

// triSetup holds everything triangle setup precomputes once so
// traversal only ever does per-pixel adds: the pixel-aligned bounding
// box, the edge functions' starting values and per-step increments,
// the barycentric normalization constant, and the attribute deltas
// used for perspective-correct interpolation.
type triSetup struct {
	min, max Vec2i // fixed-point, centered on screen origin, pixel-center aligned

	w0Row, w1Row, w2Row int64
	stepX01, stepX12, stepX20 int64
	stepY01, stepY12, stepY20 int64

	invDoubleArea float32

	z0, z10, z20       float32
	invW0, invW1, invW2 float32
	uv0, uv10, uv20     Vec2f
}

// setupTriangle computes triSetup for the fan triangle (i0,i1,i2) of
// scratch, clipped to the raster area [areaMin,areaMax] (fixed-point,
// centered). areaMin/areaMax here are the same centered-space rect
// clipTriangle used for its view-rect test. Returns ok=false for a
// zero-area (degenerate) triangle, which is silently skipped per
// spec.md §3 and §7.
func setupTriangle(scratch *clipScratch, i0, i1, i2 int, areaMin, areaMax Vec2i, simd bool) (triSetup, bool) {
	p0, p1, p2 := scratch.verts[i0], scratch.verts[i1], scratch.verts[i2]

	doubleArea := edgeFunction(p0, p1, p2)
	if doubleArea == 0 {
		return triSetup{}, false
	}

	var min, max Vec2i
	min.X = min3i(p0.X, p1.X, p2.X)
	min.Y = min3i(p0.Y, p1.Y, p2.Y)
	max.X = max3i(p0.X, p1.X, p2.X)
	max.Y = max3i(p0.Y, p1.Y, p2.Y)

	const halfPixel = FixedScale / 2
	const subMask = FixedScale - 1

	clampedMinX := maxI32(min.X, areaMin.X)
	clampedMinY := maxI32(min.Y, areaMin.Y)
	clampedMaxX := minI32(max.X, areaMax.X)
	clampedMaxY := minI32(max.Y, areaMax.Y)

	if simd {
		min.X = ((clampedMinX &^ subMask) &^ FixedScale) + halfPixel
		min.Y = ((clampedMinY &^ subMask) &^ FixedScale) + halfPixel
		max.X = ((clampedMaxX &^ subMask) | FixedScale) + halfPixel
		max.Y = ((clampedMaxY &^ subMask) | FixedScale) + halfPixel
	} else {
		min.X = (clampedMinX &^ subMask) + halfPixel
		min.Y = (clampedMinY &^ subMask) + halfPixel
		max.X = (clampedMaxX &^ subMask) + halfPixel
		max.Y = (clampedMaxY &^ subMask) + halfPixel
	}

	if min.X > max.X || min.Y > max.Y {
		return triSetup{}, false
	}

	minCorner := Vec2i{X: min.X, Y: min.Y}
	w0Row := edgeFunction(p1, p2, minCorner) + topLeftBias(p1, p2)
	w1Row := edgeFunction(p2, p0, minCorner) + topLeftBias(p2, p0)
	w2Row := edgeFunction(p0, p1, minCorner) + topLeftBias(p0, p1)

	s := triSetup{
		min: min, max: max,
		w0Row: w0Row, w1Row: w1Row, w2Row: w2Row,
		stepX01: int64(p0.Y - p1.Y), stepX12: int64(p1.Y - p2.Y), stepX20: int64(p2.Y - p0.Y),
		stepY01: int64(p1.X - p0.X), stepY12: int64(p2.X - p1.X), stepY20: int64(p0.X - p2.X),
		invDoubleArea: 1.0 / float32(doubleArea),
	}

	a0, a1, a2 := scratch.attrs[i0], scratch.attrs[i1], scratch.attrs[i2]
	s.z0 = a0.Z
	s.z10 = a1.Z - a0.Z
	s.z20 = a2.Z - a0.Z
	s.invW0, s.invW1, s.invW2 = a0.InvW, a1.InvW, a2.InvW

	s.uv0 = Vec2f{X: a0.UV.X * a0.InvW, Y: a0.UV.Y * a0.InvW}
	uv1 := Vec2f{X: a1.UV.X * a1.InvW, Y: a1.UV.Y * a1.InvW}
	uv2 := Vec2f{X: a2.UV.X * a2.InvW, Y: a2.UV.Y * a2.InvW}
	s.uv10 = Vec2f{X: uv1.X - s.uv0.X, Y: uv1.Y - s.uv0.Y}
	s.uv20 = Vec2f{X: uv2.X - s.uv0.X, Y: uv2.Y - s.uv0.Y}

	return s, true
}

func min3i(a, b, c int32) int32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3i(a, b, c int32) int32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
