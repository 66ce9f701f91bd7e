package raster

// Fixed-point helpers. The sub-pixel exponent lives here and nowhere
// else so the precision of the whole rasterizer is auditable from one
// file, per spec.md §9.

// toFixed converts a screen-space float coordinate to fixed point.
func toFixed(x float32) int32 {
	if x >= 0 {
		return int32(x*FixedScale + 0.5)
	}
	return int32(x*FixedScale - 0.5)
}

// fixedToFloat converts a fixed-point coordinate back to float.
func fixedToFloat(x int32) float32 {
	return float32(x) / FixedScale
}

// mulFixed multiplies two fixed-point values, renormalizing by the
// fixed-point scale.
func mulFixed(a, b int64) int64 {
	return (a * b) / FixedScale
}

// edgeFunction is W(p1,p2,p3) from spec.md §4.1: positive for p3 to
// the left of the directed edge p1->p2 in a y-up, CCW-front winding.
// All three points are fixed-point coordinates, so each product term
// is renormalized with mulFixed before summing; without it the result
// would be scaled by an extra factor of FixedScale relative to
// setupTriangle's step increments (stepX01/stepX12/stepX20 etc.),
// which are themselves unnormalized per-pixel deltas, and every
// traversal step would advance the edge functions far too slowly
// relative to their magnitude. The result is exact in int64 for any
// coordinate within the guard band.
func edgeFunction(p1, p2, p3 Vec2i) int64 {
	x1, y1 := int64(p1.X), int64(p1.Y)
	x2, y2 := int64(p2.X), int64(p2.Y)
	x3, y3 := int64(p3.X), int64(p3.Y)
	return mulFixed(y1-y2, x3) + mulFixed(x2-x1, y3) + mulFixed(x1, y2) - mulFixed(y1, x2)
}

// isTopLeft reports whether the directed edge a->b is a top or left
// edge of a CCW triangle in y-up screen space: a left edge descends
// (b.Y < a.Y), a top edge runs leftward at constant Y (a.Y == b.Y &&
// b.X < a.X). Non-top-left edges receive the -1 fill-rule bias.
func isTopLeft(a, b Vec2i) bool {
	if b.Y < a.Y {
		return true
	}
	return a.Y == b.Y && b.X < a.X
}

// topLeftBias returns the starting-weight bias to apply to an edge
// function so that pixel centers exactly on a non-top-left edge are
// excluded, giving each pixel to exactly one of two triangles sharing
// that edge.
func topLeftBias(a, b Vec2i) int64 {
	if isTopLeft(a, b) {
		return 0
	}
	return -1
}
