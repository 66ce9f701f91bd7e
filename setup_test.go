package raster

import "testing"

func v(x, y float32) Vec2i { return Vec2i{X: toFixed(x), Y: toFixed(y)} }

func TestSetupTriangleRejectsZeroArea(t *testing.T) {
	var scratch clipScratch
	scratch.verts[0] = v(0, 0)
	scratch.verts[1] = v(10, 0)
	scratch.verts[2] = v(20, 0) // colinear with the first two

	area := Vec2i{X: toFixed(-100), Y: toFixed(-100)}
	areaMax := Vec2i{X: toFixed(100), Y: toFixed(100)}

	_, ok := setupTriangle(&scratch, 0, 1, 2, area, areaMax, false)
	if ok {
		t.Error("setupTriangle accepted a degenerate (zero-area) triangle")
	}
}

func TestSetupTriangleRejectsOutsideArea(t *testing.T) {
	var scratch clipScratch
	scratch.verts[0] = v(50, 50)
	scratch.verts[1] = v(60, 50)
	scratch.verts[2] = v(55, 60)

	// A raster area entirely disjoint from the triangle's bounding box.
	areaMin := Vec2i{X: toFixed(-20), Y: toFixed(-20)}
	areaMax := Vec2i{X: toFixed(-10), Y: toFixed(-10)}

	_, ok := setupTriangle(&scratch, 0, 1, 2, areaMin, areaMax, false)
	if ok {
		t.Error("setupTriangle accepted a triangle entirely outside the raster area")
	}
}
