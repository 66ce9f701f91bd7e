package raster

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Tile is one worker's share of the raster area for a frame: a pixel
// rectangle (non-tiled policies split the area into column strips) or
// a single tile_size x tile_size tile (tiled policies), expressed in
// the same absolute pixel coordinates Rasterize's area_min/area_max
// use.
type Tile struct {
	Min, Max Vec2i
}

// DrawCall bundles one draw submission's vertex/index/texture inputs,
// matching spec.md §4.5's draw_calls tuple. UVs is parallel to
// Vertices; Indices is flat and a multiple of 3.
type DrawCall struct {
	Vertices []Vec4f
	UVs      []Vec2f
	Indices  []uint32
	Texture  Texture
}

// Job is one frame's complete work descriptor: the shared render
// target and depth buffer, the tile list, and the draw calls to run
// against every tile. Buffers are safe for lock-free concurrent access
// because tiles are pixel-disjoint; draw calls and the vertex/UV/index
// data they reference are read-only for the duration of a job.
type Job struct {
	Target    *RenderTarget
	Depth     *DepthBuffer
	Tiles     []Tile
	DrawCalls []DrawCall
}

// PartitionColumns splits [areaMin, areaMax] into n rectangles for
// non-tiled scheduling, per spec.md §4.5: the area is first split into
// an upper and lower half, and each half into columns, giving n rects
// total. n must be at least 2.
func PartitionColumns(areaMin, areaMax Vec2i, n int) []Tile {
	assertContract(n >= 2, "PartitionColumns: n must be at least 2, got %d", n)

	height := areaMax.Y - areaMin.Y + 1
	midY := areaMin.Y + height/2

	lowerCols := n / 2
	upperCols := n - lowerCols

	tiles := make([]Tile, 0, n)
	tiles = appendColumnStrip(tiles, areaMin.X, areaMax.X, areaMin.Y, midY-1, lowerCols)
	tiles = appendColumnStrip(tiles, areaMin.X, areaMax.X, midY, areaMax.Y, upperCols)
	return tiles
}

func appendColumnStrip(tiles []Tile, minX, maxX, minY, maxY int32, cols int) []Tile {
	if maxY < minY || cols == 0 {
		return tiles
	}
	width := maxX - minX + 1
	colWidth := width / int32(cols)
	x := minX
	for c := 0; c < cols; c++ {
		xEnd := x + colWidth - 1
		if c == cols-1 {
			xEnd = maxX
		}
		tiles = append(tiles, Tile{Min: Vec2i{X: x, Y: minY}, Max: Vec2i{X: xEnd, Y: maxY}})
		x = xEnd + 1
	}
	return tiles
}

// PartitionTiles enumerates every tile_size x tile_size tile covering
// [areaMin, areaMax], row-major. Round-robin distribution across
// workers falls out of Pool.Run's per-tile counter wrapping the worker
// count, per spec.md §4.5; PartitionTiles itself just enumerates.
func PartitionTiles(areaMin, areaMax Vec2i, tileSize uint32) []Tile {
	t := int32(tileSize)
	tiles := make([]Tile, 0)
	for y := areaMin.Y; y <= areaMax.Y; y += t {
		for x := areaMin.X; x <= areaMax.X; x += t {
			tiles = append(tiles, Tile{Min: Vec2i{X: x, Y: y}, Max: Vec2i{X: x + t - 1, Y: y + t - 1}})
		}
	}
	return tiles
}

// LogicalCoreCount is spec.md §4.5's logical_core_count() collaborator.
func LogicalCoreCount() int {
	return runtime.NumCPU()
}

// workerJob is one release-signal handoff: the frame job, the tiles
// this worker owns for it, and the channel to close when finished.
type workerJob struct {
	job   *Job
	tiles []Tile
	done  chan<- struct{}
}

// worker is a long-lived goroutine dedicated to one logical core. It
// sleeps on jobCh until handed a tile list, runs every draw call
// against every tile in submission order, then releases done. Its clip
// scratch is allocated once at worker creation and reused for the rest
// of the worker's lifetime; no allocation happens inside run.
type worker struct {
	jobCh   chan workerJob
	scratch clipScratch
}

func newWorker() *worker {
	w := &worker{jobCh: make(chan workerJob)}
	go w.loop()
	return w
}

func (w *worker) loop() {
	runtime.LockOSThread()
	for wj := range w.jobCh {
		for _, tile := range wj.tiles {
			for _, call := range wj.job.DrawCalls {
				rasterizeTriangles(&w.scratch, wj.job.Target, wj.job.Depth, tile.Min, tile.Max, call)
			}
		}
		close(wj.done)
	}
}

// Pool is the rasterizer's only long-lived mutable state: one
// goroutine per logical core, each with its own reused clip scratch. A
// Pool is owned by the caller, never a package-level global, and must
// be closed with Close when the application shuts down, per
// SPEC_FULL.md's design notes.
type Pool struct {
	workers []*worker
}

// NewPool starts n worker goroutines, typically n = LogicalCoreCount().
func NewPool(n int) *Pool {
	assertContract(n > 0, "NewPool: worker count must be positive, got %d", n)
	p := &Pool{workers: make([]*worker, n)}
	for i := range p.workers {
		p.workers[i] = newWorker()
	}
	return p
}

// Close stops every worker goroutine. A Pool must not be used after Close.
func (p *Pool) Close() {
	for _, w := range p.workers {
		close(w.jobCh)
	}
}

// Run distributes job's tile list round-robin across the pool's
// workers and blocks until every worker has finished its share.
// Drawing order within a worker follows job.DrawCalls' order and the
// worker's tile order; ordering across workers is undefined, per
// spec.md §4.5 and §5. The only failure Run can report is none at all:
// per spec.md §7 no error propagates out of a worker's per-tile loop,
// so the returned error is always nil and exists to let callers plug
// Run into an errgroup-based pipeline alongside other stages that can
// fail.
func (p *Pool) Run(job *Job) error {
	n := len(p.workers)
	buckets := make([][]Tile, n)
	for i, t := range job.Tiles {
		b := i % n
		buckets[b] = append(buckets[b], t)
	}

	var g errgroup.Group
	dones := make([]chan struct{}, n)
	for i, w := range p.workers {
		i, w := i, w
		dones[i] = make(chan struct{})
		w.jobCh <- workerJob{job: job, tiles: buckets[i], done: dones[i]}
		g.Go(func() error {
			<-dones[i]
			return nil
		})
	}
	return g.Wait()
}
