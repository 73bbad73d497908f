package rain

import "fmt"

// Source produces uniform integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Grid is the column head state of the animation.
type Grid struct {
	width  int
	height int
	heads  []int
}

// New returns a grid with every head on row 0.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		heads:  make([]int, width),
	}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Seed places every head on an independent random row.
func (g *Grid) Seed(src Source) {
	for i := range g.heads {
		g.heads[i] = src.IntN(g.height)
	}
}

// Advance moves every head one row down, wrapping to row 0 after the last row.
func (g *Grid) Advance() {
	for i := range g.heads {
		g.heads[i] = (g.heads[i] + 1) % g.height
	}
}

// Head returns the head row of column col.
func (g *Grid) Head(col int) int { return g.heads[col] }

// Cell classifies the cell at (row, col) for the given tail length.
func (g *Grid) Cell(row, col, tail int) CellKind {
	return Classify(row, g.heads[col], tail)
}

// Positions returns a copy of the head rows, one per column.
func (g *Grid) Positions() []int {
	out := make([]int, len(g.heads))
	copy(out, g.heads)
	return out
}

// SetPositions replaces every head row. The grid is unchanged on error.
func (g *Grid) SetPositions(p []int) error {
	if len(p) != g.width {
		return fmt.Errorf("%w: got %d, want %d", ErrPositionCount, len(p), g.width)
	}
	for col, row := range p {
		if row < 0 || row >= g.height {
			return fmt.Errorf("%w: column %d row %d, height %d", ErrPositionOutOfRange, col, row, g.height)
		}
	}
	copy(g.heads, p)
	return nil
}
