package storage

import "github.com/G00405014/digital-rain/internal/sim"

// Recorder keeps the head positions of every observed frame.
type Recorder struct {
	frames [][]int
}

func NewRecorder() *Recorder {
	return &Recorder{frames: make([][]int, 0)}
}

func (r *Recorder) OnFrame(f sim.Frame) {
	r.frames = append(r.frames, f.Positions)
}

func (r *Recorder) Frames() [][]int { return r.frames }
