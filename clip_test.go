package raster

import "testing"

func TestClipTriangleTrivialAccept(t *testing.T) {
	var scratch clipScratch
	scratch.verts[0] = v(-5, -5)
	scratch.verts[1] = v(5, -5)
	scratch.verts[2] = v(0, 5)

	areaMin := Vec2i{X: toFixed(-100), Y: toFixed(-100)}
	areaMax := Vec2i{X: toFixed(100), Y: toFixed(100)}

	n := clipTriangle(&scratch, areaMin, areaMax)
	if n != 1 {
		t.Fatalf("clipTriangle trivial-accept returned %d triangles, want 1", n)
	}
	if scratch.indices[0] != 0 || scratch.indices[1] != 1 || scratch.indices[2] != 2 {
		t.Errorf("trivial accept should preserve input winding, got indices %v", scratch.indices[:3])
	}
}

func TestClipTriangleTrivialReject(t *testing.T) {
	var scratch clipScratch
	scratch.verts[0] = v(1000, 1000)
	scratch.verts[1] = v(1010, 1000)
	scratch.verts[2] = v(1005, 1010)

	areaMin := Vec2i{X: toFixed(-100), Y: toFixed(-100)}
	areaMax := Vec2i{X: toFixed(100), Y: toFixed(100)}

	if n := clipTriangle(&scratch, areaMin, areaMax); n != 0 {
		t.Errorf("clipTriangle for a triangle entirely outside the area returned %d, want 0", n)
	}
}

func TestClipTriangleProducesFan(t *testing.T) {
	var scratch clipScratch
	// One vertex near the origin, two stretched well past the guard
	// band on opposite corners: forces the Sutherland-Hodgman path.
	scratch.verts[0] = v(0, 0)
	scratch.verts[1] = v(5000, -3000)
	scratch.verts[2] = v(-3000, 5000)

	areaMin := Vec2i{X: toFixed(-64), Y: toFixed(-64)}
	areaMax := Vec2i{X: toFixed(63), Y: toFixed(63)}

	n := clipTriangle(&scratch, areaMin, areaMax)
	if n <= 0 {
		t.Fatalf("clipTriangle for a guard-band-straddling triangle returned %d, want > 0", n)
	}
	if n*3 > 15 {
		t.Fatalf("clipTriangle emitted %d fan triangles, exceeding the 15-index scratch capacity", n)
	}
}
