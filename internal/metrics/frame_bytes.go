package metrics

import (
	"github.com/G00405014/digital-rain/internal/sim"
)

// FrameBytes is the mean size of a written frame.
type FrameBytes struct {
	name    string
	sum     int
	samples int
}

func NewFrameBytes() *FrameBytes {
	return &FrameBytes{
		name: "frame_bytes",
	}
}

func (b *FrameBytes) Name() string {
	return b.name
}

func (b *FrameBytes) Observe(f sim.Frame) {
	b.sum += f.Bytes
	b.samples++
}

func (b *FrameBytes) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return float64(b.sum) / float64(b.samples)
}

func (b *FrameBytes) Reset() {
	b.sum = 0
	b.samples = 0
}
