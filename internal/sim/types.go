package sim

import (
	"time"

	"github.com/G00405014/digital-rain/internal/rain"
)

// Frame describes one rendered frame, before the grid advances.
type Frame struct {
	Index      int
	Width      int
	Height     int
	Positions  []int
	RenderTime time.Duration
	Bytes      int
}

// FrameRenderer draws the current grid state.
type FrameRenderer interface {
	Render(g *rain.Grid) error
}

// Metric accumulates a single value over frames.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Observer is notified after every rendered frame.
type Observer interface {
	OnFrame(f Frame)
}

// Result summarizes a bounded run.
type Result struct {
	Frames  int
	Elapsed time.Duration
	Metrics map[string]float64
}
