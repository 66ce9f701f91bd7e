// Package raster implements a tile-parallel, perspective-correct,
// depth-tested CPU software triangle rasterizer.
//
// The package is stateless between frames except for the worker Pool
// (see scheduler.go): callers own every buffer the core touches, and
// Rasterize never allocates during a frame.
package raster

// Vec2i is an integer 2D value, used for pixel coordinates and sizes.
type Vec2i struct {
	X, Y int32
}

// Vec2f is a float 2D value, used for UV coordinates.
type Vec2f struct {
	X, Y float32
}

// Vec3f is a float 3D value.
type Vec3f struct {
	X, Y, Z float32
}

// Vec4f is a homogeneous post-projection vertex position.
type Vec4f struct {
	X, Y, Z, W float32
}

// SubBits is the compile-time fixed-point sub-pixel exponent. 1 unit
// of screen-space fixed point is 1/(1<<SubBits) of a pixel.
const SubBits = 4

// FixedScale is 2^SubBits, the fixed-point unit scale.
const FixedScale = 1 << SubBits

// GuardBandHalfExtent is G from spec.md §4.2: the clip-space guard
// band spans [-G, +G] in pixel units on each axis before conversion to
// fixed point.
const GuardBandHalfExtent = 2048

// DepthBits is the number of low bits of a depth-buffer word that hold
// normalized depth; the remaining high bits are reserved and must stay
// zero.
const DepthBits = 24

// DepthMax is the maximum representable normalized depth value,
// 2^DepthBits.
const DepthMax = 1 << DepthBits

// DepthMask isolates the low DepthBits of a depth-buffer word.
const DepthMask = DepthMax - 1

// ColorOpaqueMask strips any stray high byte from a 0x00RRGGBB texel;
// the core never writes an alpha channel.
const ColorOpaqueMask = 0x00FFFFFF
