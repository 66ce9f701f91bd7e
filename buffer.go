package raster

// Policy selects the traversal and storage strategy at construction
// time. spec.md §9 prefers a compile-time policy over runtime
// branching for SIMD-vs-scalar dispatch; Policy is the const-like
// value that stands in for that choice since Go has no type-level
// const generics for this shape. Capability queries (UsesSIMD,
// UsesTiles, TileSize) read a Policy and never branch on buffer
// contents.
type Policy struct {
	simd  bool
	tiled bool
	tile  uint32
}

// ScalarLinear is one pixel per traversal step, row-major linear
// buffers, origin bottom-left.
var ScalarLinear = Policy{}

// SIMDQuad is 2x2-pixel quad traversal over an untiled, quad-swizzled
// buffer.
var SIMDQuad = Policy{simd: true}

// SIMDTiled is 2x2-pixel quad traversal over tile_size x tile_size
// tiles, each tile holding its quads contiguously, distributed
// round-robin across workers.
func SIMDTiled(tileSize uint32) Policy {
	assertContract(tileSize != 0 && tileSize&(tileSize-1) == 0, "SIMDTiled: tile size %d is not a power of two", tileSize)
	return Policy{simd: true, tiled: true, tile: tileSize}
}

func (p Policy) UsesSIMD() bool    { return p.simd }
func (p Policy) UsesTiles() bool   { return p.tiled }
func (p Policy) TileSize() uint32  { return p.tile }

// PaddedSize rounds target_size up to a multiple of the tile size on
// each axis. For non-tiled policies it is the identity.
func (p Policy) PaddedSize(size Vec2i) Vec2i {
	if !p.tiled {
		return size
	}
	t := int32(p.tile)
	return Vec2i{
		X: ((size.X + t - 1) / t) * t,
		Y: ((size.Y + t - 1) / t) * t,
	}
}

// quadLaneOf returns the (dx,dy) offset of a SIMD lane from a quad's
// minimum corner. Lane order is bottom-row-then-top-row: lane 0 and 1
// are the y-minimum row, lane 2 and 3 the y-maximum row, matching
// spec.md's "[TL,TR,BL,BR], rows bottom-then-top per quad" read as
// memory-slot order rather than screen-relative naming (the source
// material's SSE2 lane labels predate the y-up/y-down convention fixed
// here; see SPEC_FULL.md Open Question 2).
func quadLaneOf(lane int) (dx, dy int32) {
	switch lane {
	case 0:
		return 0, 0
	case 1:
		return 1, 0
	case 2:
		return 0, 1
	default:
		return 1, 1
	}
}

// RenderTarget is a caller-owned 32-bit color buffer in one of the
// three layouts spec.md §3 defines. It outlives a frame.
type RenderTarget struct {
	Pixels []uint32
	Width  int32
	Height int32
	Policy Policy
}

// NewRenderTarget allocates a render target sized to Policy's padded
// size for the given logical size.
func NewRenderTarget(logicalSize Vec2i, policy Policy) *RenderTarget {
	padded := policy.PaddedSize(logicalSize)
	return &RenderTarget{
		Pixels: make([]uint32, int(padded.X)*int(padded.Y)),
		Width:  padded.X,
		Height: padded.Y,
		Policy: policy,
	}
}

func (rt *RenderTarget) index(px, py int32) int {
	return pixelIndex(rt.Policy, rt.Width, rt.Height, px, py)
}

// Set writes a single pixel through the buffer's layout.
func (rt *RenderTarget) Set(px, py int32, color uint32) {
	rt.Pixels[rt.index(px, py)] = color & ColorOpaqueMask
}

// Get reads a single pixel through the buffer's layout.
func (rt *RenderTarget) Get(px, py int32) uint32 {
	return rt.Pixels[rt.index(px, py)]
}

// DepthBuffer is a caller-owned 32-bit depth buffer, low DepthBits
// bits normalized depth, high bits reserved zero.
type DepthBuffer struct {
	Words  []uint32
	Width  int32
	Height int32
	Policy Policy
}

// NewDepthBuffer allocates a depth buffer sized to Policy's padded
// size for the given logical size, cleared to far (all depths fail
// the "less than" test against it).
func NewDepthBuffer(logicalSize Vec2i, policy Policy) *DepthBuffer {
	padded := policy.PaddedSize(logicalSize)
	db := &DepthBuffer{
		Words:  make([]uint32, int(padded.X)*int(padded.Y)),
		Width:  padded.X,
		Height: padded.Y,
		Policy: policy,
	}
	ClearDepthBuffer(db)
	return db
}

func (db *DepthBuffer) index(px, py int32) int {
	return pixelIndex(db.Policy, db.Width, db.Height, px, py)
}

// ClearDepthBuffer sets every word's low DepthBits bits to DepthMask
// (0xFFFFFF), the "infinitely far" sentinel, preserving the reserved
// high byte as zero.
func ClearDepthBuffer(db *DepthBuffer) {
	for i := range db.Words {
		db.Words[i] = DepthMask
	}
}

// pixelIndex dispatches to the addressing scheme named by policy. w
// and h are the padded buffer dimensions in pixels.
func pixelIndex(policy Policy, w, h, px, py int32) int {
	switch {
	case policy.tiled:
		return tiledQuadIndex(w, policy.tile, px, py)
	case policy.simd:
		return quadIndex(w, px, py)
	default:
		return linearIndex(w, h, px, py)
	}
}

// linearIndex is row-major, origin bottom-left: row 0 is the bottom
// row of the logical image but sits at the highest memory row, so +y
// (up, in clip space) walks backward through memory.
func linearIndex(w, h, px, py int32) int {
	return int(h-1-py)*int(w) + int(px)
}

// quadIndex addresses the untiled SIMD quad layout: quads are
// enumerated row-major with quad-row 0 holding the smallest py, matching
// the row-major convention spec.md's tiled formula uses for tile rows.
func quadIndex(w, px, py int32) int {
	quadsPerRow := w / 2
	quadCol := px / 2
	quadRow := py / 2
	quadBase := int(quadRow*quadsPerRow+quadCol) * 4
	lane := laneIndex(px, py)
	return quadBase + lane
}

// tiledQuadIndex addresses the tiled+SIMD layout per spec.md §4.4:
// tile_index*T^2 + within_tile_quad_index*4 + lane, tile_index row-major
// over (padded_w/T) tiles per row.
func tiledQuadIndex(paddedW int32, tile uint32, px, py int32) int {
	t := int32(tile)
	tilesPerRow := paddedW / t
	tileCol := px / t
	tileRow := py / t
	tileIndex := tileRow*tilesPerRow + tileCol

	withinTileX := px % t
	withinTileY := py % t
	quadsPerTileRow := t / 2
	withinQuadIndex := (withinTileY/2)*quadsPerTileRow + withinTileX/2

	lane := laneIndex(px, py)
	return int(tileIndex)*int(t)*int(t) + int(withinQuadIndex)*4 + lane
}

// laneIndex returns which of the 4 quad lanes (px,py) occupies, using
// the bottom-then-top order quadLaneOf encodes.
func laneIndex(px, py int32) int {
	dx := px & 1
	dy := py & 1
	for lane := 0; lane < 4; lane++ {
		ldx, ldy := quadLaneOf(lane)
		if ldx == dx && ldy == dy {
			return lane
		}
	}
	panic("unreachable")
}
