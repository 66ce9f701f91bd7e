//go:build !headless

package main

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenOutput is the windowed display backend, adapted from the
// teacher's Ebiten backend down to the surface a rasterizer demo
// actually needs: frame submission and vsync pacing. The keyboard and
// clipboard handling the teacher backend carries has no equivalent
// here, since this demo has no text-input surface.
type EbitenOutput struct {
	running     bool
	window      *ebiten.Image
	width       int
	height      int
	scale       int
	frameBuffer []byte // RGBA, top-left origin, ready for WritePixels
	bufferMutex sync.RWMutex
	frameCount  uint64
	refreshRate int
	vsyncChan   chan struct{}
}

func newBackend() (VideoOutput, error) {
	return &EbitenOutput{
		width:       640,
		height:      480,
		scale:       1,
		frameBuffer: make([]byte, 640*480*4),
		refreshRate: 60,
		vsyncChan:   make(chan struct{}, 1),
	}, nil
}

func (eo *EbitenOutput) Start() error {
	if eo.running {
		return nil
	}
	eo.running = true
	ebiten.SetWindowSize(eo.width*eo.scale, eo.height*eo.scale)
	ebiten.SetWindowTitle("rasterizer demo")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	go func() {
		if err := ebiten.RunGame(eo); err != nil {
			fmt.Printf("ebiten error: %v\n", err)
		}
	}()

	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) Stop() error {
	eo.running = false
	return nil
}

func (eo *EbitenOutput) Close() error {
	return eo.Stop()
}

// UpdateFrame converts a linear-layout 0x00RRGGBB frame into ebiten's
// expected top-left-origin RGBA bytes. buffer.go's linearIndex already
// stores the top row of the bottom-left-origin image first, so rows
// are copied in memory order without a further flip (see SPEC_FULL.md
// Open Question 1).
func (eo *EbitenOutput) UpdateFrame(pixels []uint32) error {
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()

	w, h := eo.width, eo.height
	if len(pixels) < w*h {
		return &VideoError{Operation: "update frame", Details: "pixel buffer smaller than display size"}
	}

	for y := 0; y < h; y++ {
		srcRow := y * w
		dstRow := y * w * 4
		for x := 0; x < w; x++ {
			p := pixels[srcRow+x]
			o := dstRow + x*4
			eo.frameBuffer[o] = byte(p >> 16)
			eo.frameBuffer[o+1] = byte(p >> 8)
			eo.frameBuffer[o+2] = byte(p)
			eo.frameBuffer[o+3] = 0xFF
		}
	}
	return nil
}

func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()

	if config.Width > 0 {
		eo.width = config.Width
	}
	if config.Height > 0 {
		eo.height = config.Height
	}
	eo.scale = ClampScale(config.Scale)
	newSize := eo.width * eo.height * 4
	if len(eo.frameBuffer) != newSize {
		eo.frameBuffer = make([]byte, newSize)
	}
	if !config.Fullscreen {
		ebiten.SetWindowSize(eo.width*eo.scale, eo.height*eo.scale)
	}
	ebiten.SetFullscreen(config.Fullscreen)
	if eo.window != nil {
		eo.window.Dispose()
		eo.window = nil
	}
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	return DisplayConfig{
		Width:       eo.width,
		Height:      eo.height,
		Scale:       eo.scale,
		RefreshRate: eo.refreshRate,
	}
}

func (eo *EbitenOutput) WaitForVSync() error {
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	return eo.frameCount
}

func (eo *EbitenOutput) GetRefreshRate() int {
	return eo.refreshRate
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	if eo.window == nil {
		eo.window = ebiten.NewImage(eo.width, eo.height)
	}

	eo.bufferMutex.RLock()
	eo.window.WritePixels(eo.frameBuffer)
	eo.bufferMutex.RUnlock()
	screen.DrawImage(eo.window, nil)

	eo.frameCount++
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

func (eo *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() || !eo.running {
		return ebiten.Termination
	}
	return nil
}

func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	return eo.width, eo.height
}
