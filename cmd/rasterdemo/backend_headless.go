//go:build headless

package main

import (
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/term"
)

// HeadlessOutput discards frames instead of drawing them, for running
// the demo loop and its stats tracking under CI or over SSH with no
// window system. Adapted from the teacher's headless backend stub,
// widened to print a one-line progress readout sized to the
// terminal's width when stdout is a terminal.
type HeadlessOutput struct {
	started     bool
	config      DisplayConfig
	frameCount  uint64
	refreshRate int
	termWidth   int
}

func newBackend() (VideoOutput, error) {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		w = 80
	}
	return &HeadlessOutput{refreshRate: 60, termWidth: w}, nil
}

func (h *HeadlessOutput) Start() error {
	h.started = true
	return nil
}

func (h *HeadlessOutput) Stop() error {
	h.started = false
	return nil
}

func (h *HeadlessOutput) Close() error {
	return h.Stop()
}

func (h *HeadlessOutput) IsStarted() bool {
	return h.started
}

func (h *HeadlessOutput) SetDisplayConfig(config DisplayConfig) error {
	h.config = config
	return nil
}

func (h *HeadlessOutput) GetDisplayConfig() DisplayConfig {
	return h.config
}

func (h *HeadlessOutput) UpdateFrame(pixels []uint32) error {
	atomic.AddUint64(&h.frameCount, 1)
	label := fmt.Sprintf("frame %d", h.frameCount)
	if len(label) > h.termWidth && h.termWidth > 0 {
		label = label[:h.termWidth]
	}
	fmt.Printf("\r%s", label)
	return nil
}

func (h *HeadlessOutput) WaitForVSync() error {
	return nil
}

func (h *HeadlessOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

func (h *HeadlessOutput) GetRefreshRate() int {
	return h.refreshRate
}
