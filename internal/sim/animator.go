package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/G00405014/digital-rain/internal/rain"
)

// Animator runs the render, advance, sleep cycle over a grid.
type Animator struct {
	grid      *rain.Grid
	renderer  FrameRenderer
	delay     time.Duration
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
	frames    int
}

// New returns an animator pacing frames by speed. It panics if speed is not
// a declared variant.
func New(grid *rain.Grid, renderer FrameRenderer, speed rain.Speed) *Animator {
	return &Animator{
		grid:      grid,
		renderer:  renderer,
		delay:     speed.Delay(),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    slog.New(slog.DiscardHandler),
	}
}

func (a *Animator) AddMetric(m Metric)     { a.metrics = append(a.metrics, m) }
func (a *Animator) AddObserver(o Observer) { a.observers = append(a.observers, o) }

func (a *Animator) SetLogger(l *slog.Logger) { a.logger = l }

// SetDelay overrides the speed-derived delay. Zero disables sleeping.
func (a *Animator) SetDelay(d time.Duration) { a.delay = d }

func (a *Animator) Delay() time.Duration { return a.delay }

// Frames returns the number of frames rendered so far.
func (a *Animator) Frames() int { return a.frames }

// Run animates until ctx is canceled and returns ctx.Err(). Without
// cancellation it never returns.
func (a *Animator) Run(ctx context.Context) error {
	a.logger.Debug("animation started",
		"width", a.grid.Width(), "height", a.grid.Height(), "delay", a.delay)
	for {
		if err := a.step(ctx); err != nil {
			a.logger.Debug("animation stopped", "frames", a.frames, "reason", err)
			return err
		}
		if err := a.sleep(ctx); err != nil {
			a.logger.Debug("animation stopped", "frames", a.frames, "reason", err)
			return err
		}
	}
}

// RunFrames renders exactly n frames, sleeping between them but not after
// the last one.
func (a *Animator) RunFrames(ctx context.Context, n int) (*Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("frame count must be positive, got %d", n)
	}

	for _, m := range a.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}
	start := time.Now()

	// Metrics cover every rendered frame, including runs cut short by ctx.
	defer func() {
		result.Elapsed = time.Since(start)
		for _, m := range a.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}()

	for i := 0; i < n; i++ {
		if i > 0 {
			if err := a.sleep(ctx); err != nil {
				return result, err
			}
		}
		if err := a.step(ctx); err != nil {
			return result, err
		}
		result.Frames++
	}

	return result, nil
}

// step renders the current state, notifies observers, then advances.
func (a *Animator) step(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	start := time.Now()
	if err := a.renderer.Render(a.grid); err != nil {
		a.logger.Debug("frame write failed", "frame", a.frames, "error", err)
	}
	elapsed := time.Since(start)

	if len(a.metrics) > 0 || len(a.observers) > 0 {
		f := Frame{
			Index:      a.frames,
			Width:      a.grid.Width(),
			Height:     a.grid.Height(),
			Positions:  a.grid.Positions(),
			RenderTime: elapsed,
		}
		if fs, ok := a.renderer.(interface{ FrameSize() int }); ok {
			f.Bytes = fs.FrameSize()
		}
		for _, m := range a.metrics {
			m.Observe(f)
		}
		for _, obs := range a.observers {
			obs.OnFrame(f)
		}
	}

	a.grid.Advance()
	a.frames++
	return nil
}

func (a *Animator) sleep(ctx context.Context) error {
	if a.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(a.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
