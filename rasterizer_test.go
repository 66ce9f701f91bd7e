package raster

import "testing"

func solidTexture(color uint32) Texture {
	return Texture{Texels: []uint32{color}, Width: 1, Height: 1}
}

// TestFillRuleDisjointness renders two CCW triangles that exactly
// split an 8x8 pixel square along its diagonal. The top-left fill
// rule must assign every pixel center in the square to exactly one of
// the two triangles: the combined pixel count must equal the square's
// area with neither gaps nor double coverage.
func TestFillRuleDisjointness(t *testing.T) {
	const size = 256
	half := float32(size) / 2

	vertices := []Vec4f{
		{X: -4 / half, Y: -4 / half, Z: 0.5, W: 1},
		{X: 4 / half, Y: -4 / half, Z: 0.5, W: 1},
		{X: -4 / half, Y: 4 / half, Z: 0.5, W: 1},

		{X: 4 / half, Y: -4 / half, Z: 0.5, W: 1},
		{X: 4 / half, Y: 4 / half, Z: 0.5, W: 1},
		{X: -4 / half, Y: 4 / half, Z: 0.5, W: 1},
	}
	uvs := make([]Vec2f, len(vertices))
	indices := []uint32{0, 1, 2, 3, 4, 5}

	rt := NewRenderTarget(Vec2i{X: size, Y: size}, ScalarLinear)
	db := NewDepthBuffer(Vec2i{X: size, Y: size}, ScalarLinear)

	Rasterize(rt, db, Vec2i{}, Vec2i{X: size - 1, Y: size - 1}, vertices, uvs, indices, solidTexture(0x00112233))

	count := 0
	for _, p := range rt.Pixels {
		if p == 0x00112233 {
			count++
		}
	}
	if count != 64 {
		t.Errorf("covered pixel count = %d, want 64 (8x8 square, exactly split)", count)
	}
}

// TestBoundaryCover rasterizes the triangle (-10,-10),(10,-10),(0,10)
// and compares the result against an independently computed reference
// that applies the same edge-function/top-left rule directly in
// floating point. Every input coordinate is an exact integer, so the
// fixed-point kernel introduces no rounding relative to the float
// reference.
func TestBoundaryCover(t *testing.T) {
	const size = 256
	half := float32(size) / 2

	vertices := []Vec4f{
		{X: -10 / half, Y: -10 / half, Z: 0.5, W: 1},
		{X: 10 / half, Y: -10 / half, Z: 0.5, W: 1},
		{X: 0, Y: 10 / half, Z: 0.5, W: 1},
	}
	uvs := make([]Vec2f, 3)
	indices := []uint32{0, 1, 2}

	rt := NewRenderTarget(Vec2i{X: size, Y: size}, ScalarLinear)
	db := NewDepthBuffer(Vec2i{X: size, Y: size}, ScalarLinear)
	Rasterize(rt, db, Vec2i{}, Vec2i{X: size - 1, Y: size - 1}, vertices, uvs, indices, solidTexture(0x00ABCDEF))

	got := 0
	for _, p := range rt.Pixels {
		if p == 0x00ABCDEF {
			got++
		}
	}

	want := referenceTriangleCoverage(
		-10, -10, 10, -10, 0, 10,
		int(half), int(half),
	)
	if got != want {
		t.Errorf("covered pixel count = %d, want %d", got, want)
	}
}

// referenceTriangleCoverage independently counts pixel centers inside
// the CCW triangle (x1,y1),(x2,y2),(x3,y3) given in screen-centered
// coordinates, applying the same edge-function sign test and
// top-left tie-break as fixed.go, entirely in floating point.
func referenceTriangleCoverage(x1, y1, x2, y2, x3, y3 float64, halfWidth, halfHeight int) int {
	edge := func(ax, ay, bx, by, px, py float64) float64 {
		return (ay-by)*px + (bx-ax)*py + (ax*by - ay*bx)
	}
	topLeft := func(ax, ay, bx, by float64) bool {
		if by < ay {
			return true
		}
		return ay == by && bx < ax
	}
	bias := func(ax, ay, bx, by float64) float64 {
		if topLeft(ax, ay, bx, by) {
			return 0
		}
		return -1
	}

	minX, maxX := -halfWidth, halfWidth
	minY, maxY := -halfHeight, halfHeight

	count := 0
	for py := minY; py < maxY; py++ {
		y := float64(py) + 0.5
		for px := minX; px < maxX; px++ {
			x := float64(px) + 0.5
			w0 := edge(x2, y2, x3, y3, x, y) + bias(x2, y2, x3, y3)
			w1 := edge(x3, y3, x1, y1, x, y) + bias(x3, y3, x1, y1)
			w2 := edge(x1, y1, x2, y2, x, y) + bias(x1, y1, x2, y2)
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				count++
			}
		}
	}
	return count
}

// TestDepthOrdering renders two overlapping triangles at different
// depths in both submission orders and checks that the nearer
// triangle (smaller z) always wins the depth test, regardless of draw
// order, per spec.md §8 property 3.
func TestDepthOrdering(t *testing.T) {
	const size = 64

	quad := []Vec4f{
		{X: -0.5, Y: -0.5, Z: 0, W: 1},
		{X: 0.5, Y: -0.5, Z: 0, W: 1},
		{X: 0.5, Y: 0.5, Z: 0, W: 1},
		{X: -0.5, Y: 0.5, Z: 0, W: 1},
	}
	uvs := make([]Vec2f, 4)
	quadIndices := []uint32{0, 1, 2, 0, 2, 3}

	near := make([]Vec4f, len(quad))
	far := make([]Vec4f, len(quad))
	copy(near, quad)
	copy(far, quad)
	for i := range near {
		near[i].Z = 0.25
		far[i].Z = 0.75
	}

	run := func(firstColor, secondColor uint32, firstVerts, secondVerts []Vec4f) uint32 {
		rt := NewRenderTarget(Vec2i{X: size, Y: size}, ScalarLinear)
		db := NewDepthBuffer(Vec2i{X: size, Y: size}, ScalarLinear)
		area := Vec2i{X: size - 1, Y: size - 1}

		Rasterize(rt, db, Vec2i{}, area, firstVerts, uvs, quadIndices, solidTexture(firstColor))
		Rasterize(rt, db, Vec2i{}, area, secondVerts, uvs, quadIndices, solidTexture(secondColor))
		return rt.Get(int32(size/2), int32(size/2))
	}

	const nearColor, farColor = uint32(0x00FF0000), uint32(0x0000FF00)

	gotFarFirst := run(farColor, nearColor, far, near)
	gotNearFirst := run(nearColor, farColor, near, far)

	if gotFarFirst != nearColor {
		t.Errorf("far-then-near: center pixel = %#x, want near color %#x", gotFarFirst, nearColor)
	}
	if gotNearFirst != nearColor {
		t.Errorf("near-then-far: center pixel = %#x, want near color %#x", gotNearFirst, nearColor)
	}
}

// TestPerspectiveCorrectness splits a quad with varying w per vertex
// into two triangles and checks that the sampled UV at a pixel is
// within one texel of the analytic perspective-correct value, per
// spec.md §8 property 4.
func TestPerspectiveCorrectness(t *testing.T) {
	const size = 128

	// A quad leaning away in depth: right edge has w=2, left edge w=1,
	// so perspective-correct interpolation must curve UV toward the
	// right edge rather than linearly splitting 50/50 at screen center.
	vertices := []Vec4f{
		{X: -0.5, Y: -0.5, Z: 0.5, W: 1},
		{X: 0.5, Y: -0.5, Z: 0.5, W: 2},
		{X: 0.5, Y: 0.5, Z: 0.5, W: 2},
		{X: -0.5, Y: 0.5, Z: 0.5, W: 1},
	}
	uvs := []Vec2f{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	const texSize = 64
	texels := make([]uint32, texSize*texSize)
	for y := 0; y < texSize; y++ {
		for x := 0; x < texSize; x++ {
			// Encode (u,v) in the texel so the sampled color reveals
			// which texel nearest-neighbor picked.
			texels[y*texSize+x] = uint32(x)<<8 | uint32(y)
		}
	}
	tex := Texture{Texels: texels, Width: texSize, Height: texSize}

	rt := NewRenderTarget(Vec2i{X: size, Y: size}, ScalarLinear)
	db := NewDepthBuffer(Vec2i{X: size, Y: size}, ScalarLinear)
	Rasterize(rt, db, Vec2i{}, Vec2i{X: size - 1, Y: size - 1}, vertices, uvs, indices, tex)

	// The sampled pixel center nearest screen-space origin projects to
	// screen-centered (0.5,0.5), which falls exactly on the v0-v2
	// diagonal shared by both triangles (v0=(-32,-32), v2=(16,16) after
	// the perspective divide both satisfy y=x). There w1 (vertex v1's
	// barycentric weight) is exactly 0 and w0/w2 work out to 31/96 and
	// 65/96 of the double area; running those through the invW-weighted
	// UV divide gives u=v=65/127 (~0.512), not the naive linear-in-NDC
	// guess of 1/2, because perspective correction is computed from
	// screen-space barycentric weights, not NDC position.
	cx, cy := int32(size/2), int32(size/2)
	got := rt.Get(cx, cy)
	gotU := int((got >> 8) & 0xFF)
	gotV := int(got & 0xFF)

	wantUV := 65.0 / 127.0
	wantU := int(wantUV * float64(texSize-1))
	wantV := wantU

	if d := gotU - wantU; d < -1 || d > 1 {
		t.Errorf("sampled u texel = %d, want within 1 of %d (perspective-correct)", gotU, wantU)
	}
	if d := gotV - wantV; d < -1 || d > 1 {
		t.Errorf("sampled v texel = %d, want within 1 of %d", gotV, wantV)
	}
}

// TestGuardBandClipIdempotence rasterizes a triangle that straddles
// the guard band twice in a row and checks the output is identical:
// clipping must be a pure function of its inputs with no leftover
// state across calls, per spec.md §8 property 5.
func TestGuardBandClipIdempotence(t *testing.T) {
	const size = 128
	half := float32(size) / 2

	// The two outer vertices project to (3200,-2400) and (-2400,3200) in
	// screen-centered pixels, past the 2048-pixel guard band on both
	// axes, forcing the Sutherland-Hodgman path rather than a trivial
	// accept.
	vertices := []Vec4f{
		{X: 0, Y: 0, Z: 0.5, W: 1},
		{X: 3200 / half, Y: -2400 / half, Z: 0.5, W: 1},
		{X: -2400 / half, Y: 3200 / half, Z: 0.5, W: 1},
	}
	uvs := make([]Vec2f, 3)
	indices := []uint32{0, 1, 2}

	render := func() []uint32 {
		rt := NewRenderTarget(Vec2i{X: size, Y: size}, ScalarLinear)
		db := NewDepthBuffer(Vec2i{X: size, Y: size}, ScalarLinear)
		Rasterize(rt, db, Vec2i{}, Vec2i{X: size - 1, Y: size - 1}, vertices, uvs, indices, solidTexture(0x00AAAAAA))
		return rt.Pixels
	}

	first := render()
	second := render()

	if len(first) != len(second) {
		t.Fatalf("pixel buffer length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pixel %d differs between runs: %#x vs %#x", i, first[i], second[i])
		}
	}
}

// TestTileDeterminism runs the same draw call through a tile-parallel
// Pool and through the single-threaded Rasterize entry point and
// checks the two render targets end up pixel-identical, per spec.md
// §8 property 6.
func TestTileDeterminism(t *testing.T) {
	const size = 128

	vertices := []Vec4f{
		{X: -0.6, Y: -0.6, Z: 0.4, W: 1},
		{X: 0.6, Y: -0.6, Z: 0.4, W: 1},
		{X: 0.6, Y: 0.6, Z: 0.4, W: 1},
		{X: -0.6, Y: 0.6, Z: 0.4, W: 1},
	}
	uvs := []Vec2f{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	tex := solidTexture(0x00334455)

	single := NewRenderTarget(Vec2i{X: size, Y: size}, ScalarLinear)
	singleDepth := NewDepthBuffer(Vec2i{X: size, Y: size}, ScalarLinear)
	area := Vec2i{X: size - 1, Y: size - 1}
	Rasterize(single, singleDepth, Vec2i{}, area, vertices, uvs, indices, tex)

	tiled := NewRenderTarget(Vec2i{X: size, Y: size}, ScalarLinear)
	tiledDepth := NewDepthBuffer(Vec2i{X: size, Y: size}, ScalarLinear)

	pool := NewPool(4)
	defer pool.Close()

	tiles := PartitionColumns(Vec2i{}, area, 4)
	job := &Job{
		Target: tiled,
		Depth:  tiledDepth,
		Tiles:  tiles,
		DrawCalls: []DrawCall{{
			Vertices: vertices,
			UVs:      uvs,
			Indices:  indices,
			Texture:  tex,
		}},
	}
	if err := pool.Run(job); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for i := range single.Pixels {
		if single.Pixels[i] != tiled.Pixels[i] {
			t.Fatalf("pixel %d differs: single=%#x tiled=%#x", i, single.Pixels[i], tiled.Pixels[i])
		}
	}
}
