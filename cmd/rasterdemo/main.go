// Command rasterdemo drives raster.Rasterize (or a tile-parallel
// raster.Pool) against a small fixed set of test triangles and blits
// the result through a windowed or headless VideoOutput, tracking
// frame-time percentiles the way original_source/demo/main.c does.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ropelinen/rasterizer"
	"github.com/ropelinen/rasterizer/internal/stats"
)

func main() {
	width := flag.Int("width", 640, "display width in pixels")
	height := flag.Int("height", 480, "display height in pixels")
	scale := flag.Int("scale", 1, "integer display scale")
	frames := flag.Int("frames", 0, "stop after this many frames (0 = run until window closes)")
	tiled := flag.Bool("tiled", false, "use the tiled SIMD policy instead of scalar linear")
	texturePath := flag.String("texture", "", "path to a texload-produced texture (defaults to a procedural checkerboard)")
	flag.Parse()

	policy := raster.ScalarLinear
	if *tiled {
		policy = raster.SIMDTiled(64)
	}

	size := raster.Vec2i{X: int32(*width), Y: int32(*height)}
	target := raster.NewRenderTarget(size, policy)
	depth := raster.NewDepthBuffer(size, policy)

	tex := loadTexture(*texturePath)

	vertices, uvs, indices := testGeometry()

	pool := raster.NewPool(raster.LogicalCoreCount())
	defer pool.Close()

	out, err := newBackend()
	if err != nil {
		fmt.Fprintf(os.Stderr, "rasterdemo: %v\n", err)
		os.Exit(1)
	}
	if err := out.SetDisplayConfig(DisplayConfig{Width: *width, Height: *height, Scale: *scale, RefreshRate: 60}); err != nil {
		fmt.Fprintf(os.Stderr, "rasterdemo: %v\n", err)
		os.Exit(1)
	}
	if err := out.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "rasterdemo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	tracker := stats.NewTracker()

	// Quad and tiled layouts are deswizzled into this linear buffer
	// before display; linear targets are displayed as they are.
	var frame []uint32
	if policy.UsesSIMD() {
		frame = make([]uint32, int(size.X)*int(size.Y))
	}

	areaMin := raster.Vec2i{X: 0, Y: 0}
	areaMax := raster.Vec2i{X: size.X - 1, Y: size.Y - 1}

	var tiles []raster.Tile
	if policy.UsesTiles() {
		tiles = raster.PartitionTiles(areaMin, areaMax, policy.TileSize())
	} else {
		cols := raster.LogicalCoreCount()
		if cols < 2 {
			cols = 2
		}
		tiles = raster.PartitionColumns(areaMin, areaMax, cols)
	}

	frameNum := 0
	for *frames == 0 || frameNum < *frames {
		start := time.Now()

		raster.ClearDepthBuffer(depth)
		for i := range target.Pixels {
			target.Pixels[i] = 0
		}

		job := &raster.Job{
			Target: target,
			Depth:  depth,
			Tiles:  tiles,
			DrawCalls: []raster.DrawCall{{
				Vertices: vertices,
				UVs:      uvs,
				Indices:  indices,
				Texture:  tex,
			}},
		}
		if err := pool.Run(job); err != nil {
			fmt.Fprintf(os.Stderr, "rasterdemo: %v\n", err)
			os.Exit(1)
		}

		pixels := target.Pixels
		if frame != nil {
			for y := int32(0); y < size.Y; y++ {
				for x := int32(0); x < size.X; x++ {
					frame[int(size.Y-1-y)*int(size.X)+int(x)] = target.Get(x, y)
				}
			}
			pixels = frame
		}
		if err := out.UpdateFrame(pixels); err != nil {
			fmt.Fprintf(os.Stderr, "rasterdemo: %v\n", err)
			os.Exit(1)
		}
		if err := out.WaitForVSync(); err != nil {
			fmt.Fprintf(os.Stderr, "rasterdemo: %v\n", err)
			os.Exit(1)
		}

		tracker.Update(time.Since(start))
		frameNum++
		if frameNum%60 == 0 {
			fmt.Printf("frame %d: avg=%v p50=%v p90=%v p99=%v\n",
				frameNum, tracker.Average(), tracker.Percentile(50), tracker.Percentile(90), tracker.Percentile(99))
		}
	}
}

// testGeometry returns a small CCW triangle fully inside the view
// plus a second triangle deliberately stretched past the guard band,
// so the demo always exercises clip.go's Sutherland-Hodgman path.
// Grounded in original_source/demo/main.c's hardcoded vert_buf/ind_buf.
func testGeometry() ([]raster.Vec4f, []raster.Vec2f, []uint32) {
	return testVertices, testUVs, testIndices
}

func loadTexture(path string) raster.Texture {
	if path == "" {
		return checkerboardTexture(64, 64, 8)
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rasterdemo: %v, falling back to procedural texture\n", err)
		return checkerboardTexture(64, 64, 8)
	}
	defer f.Close()

	var header [8]byte
	if _, err := f.Read(header[:]); err != nil {
		fmt.Fprintf(os.Stderr, "rasterdemo: %v, falling back to procedural texture\n", err)
		return checkerboardTexture(64, 64, 8)
	}
	w := binary.LittleEndian.Uint32(header[0:4])
	h := binary.LittleEndian.Uint32(header[4:8])

	texels := make([]uint32, w*h)
	buf := make([]byte, 4)
	for i := range texels {
		if _, err := f.Read(buf); err != nil {
			fmt.Fprintf(os.Stderr, "rasterdemo: %v, falling back to procedural texture\n", err)
			return checkerboardTexture(64, 64, 8)
		}
		texels[i] = binary.LittleEndian.Uint32(buf)
	}
	return raster.Texture{Texels: texels, Width: int32(w), Height: int32(h)}
}

func checkerboardTexture(w, h, cell int32) raster.Texture {
	texels := make([]uint32, w*h)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				texels[y*w+x] = 0x00D0D0D0
			} else {
				texels[y*w+x] = 0x00303030
			}
		}
	}
	return raster.Texture{Texels: texels, Width: w, Height: h}
}
