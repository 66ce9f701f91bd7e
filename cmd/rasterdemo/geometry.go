package main

import "github.com/ropelinen/rasterizer"

// Fixed test geometry: one small CCW triangle entirely inside the
// view (NDC-scale coordinates, perspective-divided by w and scaled to
// pixels in projectVertex), plus one large CCW triangle with one
// vertex at screen center and two vertices projecting well past the
// 2048-pixel guard band on opposite corners, so every frame exercises
// both clip.go's trivial-accept path and its Sutherland-Hodgman clip
// and fan path. Grounded in original_source/demo/main.c's hardcoded
// vert_buf/ind_buf.
var (
	testVertices = []raster.Vec4f{
		{X: -0.25, Y: -0.25, Z: 0.5, W: 1},
		{X: 0.25, Y: -0.25, Z: 0.5, W: 1},
		{X: 0, Y: 0.25, Z: 0.5, W: 1},

		{X: 0, Y: 0, Z: 0.8, W: 1},
		{X: 25, Y: -15, Z: 0.8, W: 1},
		{X: -15, Y: 25, Z: 0.8, W: 1},
	}

	testUVs = []raster.Vec2f{
		{X: 0, Y: 1},
		{X: 1, Y: 1},
		{X: 0.5, Y: 0},

		{X: 0, Y: 1},
		{X: 1, Y: 1},
		{X: 0.5, Y: 0},
	}

	testIndices = []uint32{
		0, 1, 2,
		3, 4, 5,
	}
)
