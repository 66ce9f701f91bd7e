package raster

// projectVertex converts a homogeneous post-transform vertex to a
// screen-centered fixed-point position plus its interpolation
// attributes, per spec.md §4.2 step 2. Screen space is centered on the
// render target's middle; the shift to absolute pixel coordinates only
// happens at traversal's write-out (see traverseScalar/traverseSIMD).
func projectVertex(v Vec4f, uv Vec2f, halfWidth, halfHeight float32) (Vec2i, vertexAttrs) {
	invW := 1 / v.W
	x := v.X * invW * halfWidth
	y := v.Y * invW * halfHeight
	pos := Vec2i{X: toFixed(x), Y: toFixed(y)}
	attrs := vertexAttrs{Z: v.Z * invW, InvW: invW, UV: uv}
	return pos, attrs
}

// rejectZ reports whether v fails the near/far test of spec.md §4.2
// step 1: a vertex is accepted only while 0 <= z <= w. A triangle with
// any rejected vertex is discarded whole rather than clipped against
// the near/far planes (see clip.go's doc comment and SPEC_FULL.md Open
// Question 3).
func rejectZ(v Vec4f) bool {
	return v.Z < 0 || v.Z > v.W
}

// validateArea enforces spec.md §6's capability contract between a
// Policy and the raster area it is asked to rasterize: SIMD traversal
// requires an even area_min and odd area_max on both axes so every
// quad it touches is whole, and tiled traversal additionally requires
// a tile-aligned area_min and an area exactly tile_size x tile_size.
// Violations are programming errors (see spec.md §7) and panic rather
// than returning an error.
func validateArea(policy Policy, areaMin, areaMax Vec2i) {
	if policy.UsesSIMD() {
		assertContract(areaMin.X%2 == 0 && areaMin.Y%2 == 0,
			"raster area: SIMD policy requires an even area_min, got %+v", areaMin)
		assertContract(areaMax.X%2 == 1 && areaMax.Y%2 == 1,
			"raster area: SIMD policy requires an odd area_max, got %+v", areaMax)
	}
	if policy.UsesTiles() {
		t := int32(policy.TileSize())
		assertContract(areaMin.X%t == 0 && areaMin.Y%t == 0,
			"raster area: tiled policy requires a tile-aligned area_min, got %+v", areaMin)
		assertContract(areaMax.X-areaMin.X+1 == t && areaMax.Y-areaMin.Y+1 == t,
			"raster area: tiled policy requires an area exactly tile_size x tile_size, got min=%+v max=%+v", areaMin, areaMax)
	}
}

// areaToFixedCentered converts a raster area expressed in absolute
// pixel coordinates (origin bottom-left, matching area_min/area_max's
// logical pixel space) to the screen-centered fixed-point space
// clipTriangle and setupTriangle work in.
func areaToFixedCentered(areaMin, areaMax Vec2i, halfWidth, halfHeight int32) (Vec2i, Vec2i) {
	const halfPixel = FixedScale / 2
	min := Vec2i{
		X: (areaMin.X-halfWidth)*FixedScale + halfPixel,
		Y: (areaMin.Y-halfHeight)*FixedScale + halfPixel,
	}
	max := Vec2i{
		X: (areaMax.X-halfWidth)*FixedScale + halfPixel,
		Y: (areaMax.Y-halfHeight)*FixedScale + halfPixel,
	}
	return min, max
}

// rasterizeTriangles runs the full per-triangle pipeline (near/far
// reject, screen projection, guard-band clip and fan, triangle setup,
// traversal) for one draw call, restricted to the raster area
// [areaMin,areaMax] given in absolute pixel coordinates. scratch is
// reused across triangles and across calls on the same worker; it must
// never be shared between concurrently running workers.
func rasterizeTriangles(scratch *clipScratch, rt *RenderTarget, db *DepthBuffer, areaMin, areaMax Vec2i, call DrawCall) {
	assertContract(len(call.Indices)%3 == 0,
		"rasterizeTriangles: index count %d is not a multiple of 3", len(call.Indices))
	validateArea(rt.Policy, areaMin, areaMax)
	assertContract(rt.Width <= 2*GuardBandHalfExtent && rt.Height <= 2*GuardBandHalfExtent,
		"rasterizeTriangles: render target %dx%d is larger than the guard band", rt.Width, rt.Height)

	halfWidthF := float32(rt.Width) / 2
	halfHeightF := float32(rt.Height) / 2
	halfWidth := int32(halfWidthF)
	halfHeight := int32(halfHeightF)

	fixedMin, fixedMax := areaToFixedCentered(areaMin, areaMax, halfWidth, halfHeight)
	simd := rt.Policy.UsesSIMD()

	for i := 0; i+2 < len(call.Indices); i += 3 {
		i0, i1, i2 := call.Indices[i], call.Indices[i+1], call.Indices[i+2]
		v0, v1, v2 := call.Vertices[i0], call.Vertices[i1], call.Vertices[i2]

		if rejectZ(v0) || rejectZ(v1) || rejectZ(v2) {
			continue
		}

		scratch.verts[0], scratch.attrs[0] = projectVertex(v0, call.UVs[i0], halfWidthF, halfHeightF)
		scratch.verts[1], scratch.attrs[1] = projectVertex(v1, call.UVs[i1], halfWidthF, halfHeightF)
		scratch.verts[2], scratch.attrs[2] = projectVertex(v2, call.UVs[i2], halfWidthF, halfHeightF)

		triCount := clipTriangle(scratch, fixedMin, fixedMax)

		for t := 0; t < triCount; t++ {
			a := int(scratch.indices[t*3])
			b := int(scratch.indices[t*3+1])
			c := int(scratch.indices[t*3+2])

			setup, ok := setupTriangle(scratch, a, b, c, fixedMin, fixedMax, simd)
			if !ok {
				continue
			}
			if simd {
				traverseSIMD(rt, db, &setup, halfWidth, halfHeight, call.Texture)
			} else {
				traverseScalar(rt, db, &setup, halfWidth, halfHeight, call.Texture)
			}
		}
	}
}

// Rasterize is the core's single-threaded entry point: it rasterizes
// every triangle named by indices, using vertices/uvs and texture,
// into render_target and depth_buffer, restricted to
// [area_min, area_max]. It runs on the calling goroutine; callers that
// want tile-parallel execution build a Job and submit it to a Pool
// instead (see scheduler.go). It never allocates per triangle beyond
// the scratch it allocates once on entry.
func Rasterize(renderTarget *RenderTarget, depthBuffer *DepthBuffer, areaMin, areaMax Vec2i,
	vertices []Vec4f, uvs []Vec2f, indices []uint32, texture Texture) {
	assertContract(renderTarget != nil, "Rasterize: render_target must not be nil")
	assertContract(depthBuffer != nil, "Rasterize: depth_buffer must not be nil")
	assertContract(len(vertices) == len(uvs), "Rasterize: vertices and uvs must be parallel arrays")

	var scratch clipScratch
	rasterizeTriangles(&scratch, renderTarget, depthBuffer, areaMin, areaMax, DrawCall{
		Vertices: vertices,
		UVs:      uvs,
		Indices:  indices,
		Texture:  texture,
	})
}
