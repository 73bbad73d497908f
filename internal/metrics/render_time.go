package metrics

import (
	"github.com/G00405014/digital-rain/internal/sim"
)

// RenderTime tracks how long each frame took to render, in milliseconds.
type RenderTime struct {
	name    string
	sum     float64
	count   int
	samples []float64
	keep    bool
}

// NewRenderTime returns a mean render time metric. With keep set, every
// sample is retained for Samples.
func NewRenderTime(keep bool) *RenderTime {
	return &RenderTime{
		name: "render_ms",
		keep: keep,
	}
}

func (r *RenderTime) Name() string {
	return r.name
}

func (r *RenderTime) Observe(f sim.Frame) {
	ms := float64(f.RenderTime.Nanoseconds()) / 1e6
	r.sum += ms
	if r.keep {
		r.samples = append(r.samples, ms)
	}
	r.count++
}

func (r *RenderTime) Value() float64 {
	if r.count == 0 {
		return 0
	}
	return r.sum / float64(r.count)
}

// Samples returns the retained per-frame render times.
func (r *RenderTime) Samples() []float64 {
	return r.samples
}

func (r *RenderTime) Reset() {
	r.sum = 0
	r.count = 0
	r.samples = r.samples[:0]
}
