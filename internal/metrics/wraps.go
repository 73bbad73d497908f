package metrics

import (
	"github.com/G00405014/digital-rain/internal/sim"
)

// Wraps counts heads sitting on the last row, each of which re-enters at
// row 0 on the next advance.
type Wraps struct {
	name  string
	count int
}

func NewWraps() *Wraps {
	return &Wraps{
		name: "wraps",
	}
}

func (w *Wraps) Name() string {
	return w.name
}

func (w *Wraps) Observe(f sim.Frame) {
	for _, row := range f.Positions {
		if row == f.Height-1 {
			w.count++
		}
	}
}

func (w *Wraps) Value() float64 {
	return float64(w.count)
}

func (w *Wraps) Reset() {
	w.count = 0
}
