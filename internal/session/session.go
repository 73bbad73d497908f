package session

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/G00405014/digital-rain/internal/config"
	"github.com/G00405014/digital-rain/internal/rain"
	"github.com/G00405014/digital-rain/internal/render"
	"github.com/G00405014/digital-rain/internal/sim"
)

// Session is a validated, seeded animation ready to run.
type Session struct {
	cfg      *config.Config
	seed     int64
	grid     *rain.Grid
	renderer *render.Renderer
	animator *sim.Animator
}

// New validates cfg and builds an animation writing to w. A zero seed is
// replaced with one derived from the clock.
func New(cfg *config.Config, w io.Writer, logger *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	speed, _ := cfg.GetSpeed()
	mode, _ := cfg.GetMode()

	grid, err := rain.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	grid.Seed(rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)))

	renderer := render.New(w, mode, cfg.Tail)
	animator := sim.New(grid, renderer, speed)
	if logger != nil {
		animator.SetLogger(logger)
		logger.Debug("session ready",
			"width", cfg.Width, "height", cfg.Height,
			"speed", speed, "mode", mode, "tail", cfg.Tail, "seed", seed)
	}

	return &Session{
		cfg:      cfg.Clone(),
		seed:     seed,
		grid:     grid,
		renderer: renderer,
		animator: animator,
	}, nil
}

func (s *Session) Config() *config.Config { return s.cfg.Clone() }

// Seed returns the seed actually used for the initial head positions.
func (s *Session) Seed() int64 { return s.seed }

func (s *Session) Grid() *rain.Grid { return s.grid }

func (s *Session) Renderer() *render.Renderer { return s.renderer }

// Animator returns the underlying animator for adding metrics and observers.
func (s *Session) Animator() *sim.Animator { return s.animator }

// Run animates until ctx is canceled.
func (s *Session) Run(ctx context.Context) error {
	return s.animator.Run(ctx)
}

func (s *Session) RunFrames(ctx context.Context, n int) (*sim.Result, error) {
	return s.animator.RunFrames(ctx, n)
}
