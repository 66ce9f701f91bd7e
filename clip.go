package raster

import "math"

// Near/far-straddle triangles (a vertex with z<0 or z>w) are discarded
// whole rather than clipped against the near/far planes. This mirrors
// the reference implementation's simplification and can cause visible
// popping for geometry straddling the camera; it is a deliberate
// scope decision, not an oversight (see SPEC_FULL.md Open Question 3).

// outcode bits for Cohen-Sutherland trivial accept/reject, against
// either the raster area's clip rect or the guard band.
const (
	ocInside = 0
	ocLeft   = 1
	ocRight  = 2
	ocBottom = 4
	ocTop    = 8
)

func computeOutCode(p Vec2i, min, max Vec2i) uint32 {
	var code uint32
	if p.X < min.X {
		code |= ocLeft
	} else if p.X > max.X {
		code |= ocRight
	}
	if p.Y < min.Y {
		code |= ocBottom
	} else if p.Y > max.Y {
		code |= ocTop
	}
	return code
}

// guardBandFixed is the guard band's extent converted to fixed point,
// [-G*S, +G*S]^2.
func guardBandFixed() (min, max Vec2i) {
	g := toFixed(-GuardBandHalfExtent)
	gMax := toFixed(GuardBandHalfExtent)
	return Vec2i{X: g, Y: g}, Vec2i{X: gMax, Y: gMax}
}

// gbIntersectionPoint finds the point where the segment p1->p2 crosses
// the single guard-band edge named by oc (oc must be exactly one bit).
func gbIntersectionPoint(oc uint32, p1, p2 Vec2i, gbMin, gbMax Vec2i) Vec2i {
	switch oc {
	case ocLeft:
		return Vec2i{X: gbMin.X, Y: p1.Y + int32((int64(gbMin.X-p1.X)*int64(p2.Y-p1.Y))/int64(p2.X-p1.X))}
	case ocRight:
		return Vec2i{X: gbMax.X, Y: p1.Y + int32((int64(gbMax.X-p1.X)*int64(p2.Y-p1.Y))/int64(p2.X-p1.X))}
	case ocBottom:
		return Vec2i{X: p1.X + int32((int64(gbMin.Y-p1.Y)*int64(p2.X-p1.X))/int64(p2.Y-p1.Y)), Y: gbMin.Y}
	case ocTop:
		return Vec2i{X: p1.X + int32((int64(gbMax.Y-p1.Y)*int64(p2.X-p1.X))/int64(p2.Y-p1.Y)), Y: gbMax.Y}
	default:
		panic("gbIntersectionPoint: invalid outcode")
	}
}

// vertexAttrs bundles the interpolated attributes carried alongside a
// clip-space screen position: depth in [0,1] (z/w), the reciprocal of
// w, and the UV attribute.
type vertexAttrs struct {
	Z    float32
	InvW float32
	UV   Vec2f
}

// lerpVertexAttrs interpolates z, 1/w and UV between work polygon
// vertices p0i and p1i at the clipped point, using the sqrt-weighted
// parameterization spec.md §4.2 requires to compensate for the
// non-linearity of fixed-point distance.
func lerpVertexAttrs(verts []Vec2i, attrs []vertexAttrs, p0i, p1i int, clip Vec2i) vertexAttrs {
	dx := int64(verts[p1i].X - verts[p0i].X)
	dy := int64(verts[p1i].Y - verts[p0i].Y)
	lenOrg := dx*dx + dy*dy

	cx := int64(clip.X - verts[p0i].X)
	cy := int64(clip.Y - verts[p0i].Y)
	lenInt := cx*cx + cy*cy

	weight := float32(math.Sqrt(float64(lenInt) / float64(lenOrg)))

	a, b := attrs[p0i], attrs[p1i]
	out := vertexAttrs{
		Z:    a.Z + (b.Z-a.Z)*weight,
		InvW: a.InvW + (b.InvW-a.InvW)*weight,
	}
	uv0x := a.UV.X * a.InvW
	uv1x := b.UV.X * b.InvW
	uv0y := a.UV.Y * a.InvW
	uv1y := b.UV.Y * b.InvW
	out.UV.X = (uv0x + (uv1x-uv0x)*weight) / out.InvW
	out.UV.Y = (uv0y + (uv1y-uv0y)*weight) / out.InvW
	return out
}

// clipScratch is a per-worker, reused-across-triangles scratch buffer
// sized for the worst case of clipping a triangle against all 4
// guard-band edges: at most 7 vertices and 15 fan indices.
type clipScratch struct {
	verts   [7]Vec2i
	attrs   [7]vertexAttrs
	indices [15]uint32
}

// clipTriangle runs view-rect trivial accept/reject, guard-band
// trivial accept/reject, and (on partial overlap) Sutherland-Hodgman
// clipping against the 4 guard edges followed by fan re-emission from
// vertex 0. scratch.verts[0:3]/attrs[0:3] must hold the input
// triangle's screen-projected vertices on entry. Returns the number of
// output index triples (each a fan triangle) written to
// scratch.indices, or 0 if the triangle is entirely outside.
func clipTriangle(scratch *clipScratch, areaMin, areaMax Vec2i) int {
	oc0 := computeOutCode(scratch.verts[0], areaMin, areaMax)
	oc1 := computeOutCode(scratch.verts[1], areaMin, areaMax)
	oc2 := computeOutCode(scratch.verts[2], areaMin, areaMax)

	if oc0|oc1|oc2 == 0 {
		scratch.indices[0], scratch.indices[1], scratch.indices[2] = 0, 1, 2
		return 1
	}
	if oc0&oc1&oc2 != 0 {
		return 0
	}

	gbMin, gbMax := guardBandFixed()
	oc0 = computeOutCode(scratch.verts[0], gbMin, gbMax)
	oc1 = computeOutCode(scratch.verts[1], gbMin, gbMax)
	oc2 = computeOutCode(scratch.verts[2], gbMin, gbMax)

	if oc0|oc1|oc2 == 0 {
		scratch.indices[0], scratch.indices[1], scratch.indices[2] = 0, 1, 2
		return 1
	}
	assertContract(oc0&oc1&oc2 == 0, "clipTriangle: triangle partially in view but wholly outside the guard band")

	// Sutherland-Hodgman against the 4 guard edges. polyIndices holds a
	// closed polygon (first vertex repeated at the end).
	var polyIndices [15]uint32
	polyIndices[0], polyIndices[1], polyIndices[2], polyIndices[3] = 0, 1, 2, 0
	vertCount := 3
	indexCount := 4

	var clippedVerts [7]Vec2i
	var clippedAttrs [7]vertexAttrs
	var clippedIndices [15]uint32

	edges := [4]uint32{ocLeft, ocBottom, ocRight, ocTop}
	for _, oc := range edges {
		clippedVertCount := 0
		clippedIndexCount := 0

		for vi := 0; vi < indexCount-1; vi++ {
			curIdx := polyIndices[vi]
			nextIdx := polyIndices[vi+1]
			curOut := computeOutCode(scratch.verts[curIdx], gbMin, gbMax)&oc != 0
			nextOut := computeOutCode(scratch.verts[nextIdx], gbMin, gbMax)&oc != 0

			switch {
			case !curOut && !nextOut:
				// both inside, keep the second
				clippedVerts[clippedVertCount] = scratch.verts[nextIdx]
				clippedAttrs[clippedVertCount] = scratch.attrs[nextIdx]
				clippedIndices[clippedIndexCount] = uint32(clippedVertCount)
				clippedVertCount++
				clippedIndexCount++
			case !curOut && nextOut:
				// leaving: emit the intersection only
				clippedVerts[clippedVertCount] = gbIntersectionPoint(oc, scratch.verts[curIdx], scratch.verts[nextIdx], gbMin, gbMax)
				clippedAttrs[clippedVertCount] = lerpVertexAttrs(scratch.verts[:], scratch.attrs[:], int(curIdx), int(nextIdx), clippedVerts[clippedVertCount])
				clippedIndices[clippedIndexCount] = uint32(clippedVertCount)
				clippedVertCount++
				clippedIndexCount++
			case curOut && !nextOut:
				// entering: emit the intersection then the second
				clippedVerts[clippedVertCount] = gbIntersectionPoint(oc, scratch.verts[nextIdx], scratch.verts[curIdx], gbMin, gbMax)
				clippedAttrs[clippedVertCount] = lerpVertexAttrs(scratch.verts[:], scratch.attrs[:], int(nextIdx), int(curIdx), clippedVerts[clippedVertCount])
				clippedIndices[clippedIndexCount] = uint32(clippedVertCount)
				clippedVertCount++
				clippedIndexCount++

				clippedVerts[clippedVertCount] = scratch.verts[nextIdx]
				clippedAttrs[clippedVertCount] = scratch.attrs[nextIdx]
				clippedIndices[clippedIndexCount] = uint32(clippedVertCount)
				clippedVertCount++
				clippedIndexCount++
			default:
				// both outside, emit nothing
			}
		}
		clippedIndices[clippedIndexCount] = 0
		clippedIndexCount++

		assertContract(clippedVertCount <= 7, "clipTriangle: clipped polygon exceeded 7 vertices")

		vertCount = clippedVertCount
		for j := 0; j < vertCount; j++ {
			scratch.verts[j] = clippedVerts[j]
			scratch.attrs[j] = clippedAttrs[j]
		}
		indexCount = clippedIndexCount
		for j := 0; j < indexCount; j++ {
			polyIndices[j] = clippedIndices[j]
		}
	}
	indexCount--

	// Fan the closed polygon from vertex 0: (0,k,k+1) for k=1..n-2.
	fanCount := 0
	for vi := 1; vi < indexCount-1; vi++ {
		scratch.indices[fanCount] = polyIndices[0]
		scratch.indices[fanCount+1] = polyIndices[vi]
		scratch.indices[fanCount+2] = polyIndices[vi+1]
		fanCount += 3
	}
	assertContract(fanCount <= 15, "clipTriangle: fan produced too many indices")
	assertContract(fanCount%3 == 0, "clipTriangle: fan index count is not a multiple of 3")
	return fanCount / 3
}
