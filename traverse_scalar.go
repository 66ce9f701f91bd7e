package raster

// traverseScalar walks the pixel-center grid inside s's bounding box
// one pixel at a time, evaluating the three edge functions, testing
// coverage and depth, and writing the depth-tested texel. halfWidth
// and halfHeight translate s's screen-centered fixed-point coordinates
// back to the render target's absolute pixel coordinates.
func traverseScalar(rt *RenderTarget, db *DepthBuffer, s *triSetup, halfWidth, halfHeight int32, texture Texture) {
	const halfPixel = FixedScale / 2

	w0Row, w1Row, w2Row := s.w0Row, s.w1Row, s.w2Row

	for y := s.min.Y; y <= s.max.Y; y += FixedScale {
		w0, w1, w2 := w0Row, w1Row, w2Row
		py := (y-halfPixel)/FixedScale + halfHeight

		for x := s.min.X; x <= s.max.X; x += FixedScale {
			if w0|w1|w2 >= 0 {
				px := (x-halfPixel)/FixedScale + halfWidth
				shadePixel(rt, db, s, w0, w1, w2, px, py, texture)
			}
			w0 += s.stepX12
			w1 += s.stepX20
			w2 += s.stepX01
		}

		w0Row += s.stepY12
		w1Row += s.stepY20
		w2Row += s.stepY01
	}
}

// shadePixel normalizes the raw edge-function values into barycentric
// weights, interpolates depth and perspective-correct UV, runs the
// depth test, and on pass writes depth + the sampled texel.
func shadePixel(rt *RenderTarget, db *DepthBuffer, s *triSetup, w0, w1, w2 int64, px, py int32, texture Texture) {
	w0f := float32(w0) * s.invDoubleArea
	if w0f > 1 {
		w0f = 1
	}
	w1f := float32(w1) * s.invDoubleArea
	if w1f > 1 {
		w1f = 1
	}
	w2f := 1 - w0f - w1f
	if w2f < 0 {
		w2f = 0
	}

	z := uint32((s.z0 + w1f*s.z10 + w2f*s.z20) * DepthMax)

	idx := db.index(px, py)
	if z >= (db.Words[idx] & DepthMask) {
		return
	}
	db.Words[idx] = z & DepthMask

	interpW := s.invW0*w0f + s.invW1*w1f + s.invW2*w2f
	u := (s.uv0.X + w1f*s.uv10.X + w2f*s.uv20.X) / interpW
	v := (s.uv0.Y + w1f*s.uv10.Y + w2f*s.uv20.Y) / interpW

	rt.Pixels[rt.index(px, py)] = texture.sampleNearest(u, v)
}
