package raster

// traverseSIMD walks s's bounding box two pixels at a time on each
// axis (a 2x2 "quad"), evaluating all 4 lanes' edge functions before
// testing coverage, matching the reference SSE2 traversal's semantics.
// Go has no portable SSE-style intrinsics without assembly, so lanes
// are modeled as a 4-element array processed by an unrolled loop
// rather than true vector registers; the per-lane math and masking
// rules are identical to the scalar path applied 4 times, which is
// what the reference quad traversal actually computes once intrinsics
// are unwound.
func traverseSIMD(rt *RenderTarget, db *DepthBuffer, s *triSetup, halfWidth, halfHeight int32, texture Texture) {
	const step = 2 * FixedScale

	for y := s.min.Y; y <= s.max.Y; y += step {
		rowW0 := s.w0Row
		rowW1 := s.w1Row
		rowW2 := s.w2Row

		for x := s.min.X; x <= s.max.X; x += step {
			var w0, w1, w2 [4]int64
			var covered [4]bool
			any := false

			for lane := 0; lane < 4; lane++ {
				dx, dy := quadLaneOf(lane)
				lw0, lw1, lw2 := rowW0, rowW1, rowW2
				if dx == 1 {
					lw0 += s.stepX12
					lw1 += s.stepX20
					lw2 += s.stepX01
				}
				if dy == 1 {
					lw0 += s.stepY12
					lw1 += s.stepY20
					lw2 += s.stepY01
				}

				w0[lane], w1[lane], w2[lane] = lw0, lw1, lw2
				if lw0|lw1|lw2 >= 0 {
					covered[lane] = true
					any = true
				}
			}

			if any {
				for lane := 0; lane < 4; lane++ {
					if !covered[lane] {
						continue
					}
					dx, dy := quadLaneOf(lane)
					px := (x-FixedScale/2)/FixedScale + halfWidth + dx
					py := (y-FixedScale/2)/FixedScale + halfHeight + dy
					shadePixel(rt, db, s, w0[lane], w1[lane], w2[lane], px, py, texture)
				}
			}

			rowW0 += 2 * s.stepX12
			rowW1 += 2 * s.stepX20
			rowW2 += 2 * s.stepX01
		}

		s.w0Row += 2 * s.stepY12
		s.w1Row += 2 * s.stepY20
		s.w2Row += 2 * s.stepY01
	}
}
