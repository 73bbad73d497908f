package rain

import (
	"fmt"
	"strings"
	"time"
)

// Speed selects the delay between frames.
type Speed int

const (
	Medium Speed = iota
	Slow
	Fast
	speedCount
)

// SpeedCount is the number of Speed variants.
const SpeedCount = int(speedCount)

var speedDelays = [...]time.Duration{
	Medium: 100 * time.Millisecond,
	Slow:   200 * time.Millisecond,
	Fast:   50 * time.Millisecond,
}

var speedNames = [...]string{
	Medium: "medium",
	Slow:   "slow",
	Fast:   "fast",
}

// A Speed added without table entries fails to compile here.
var (
	_ [len(speedDelays) - SpeedCount]struct{}
	_ [SpeedCount - len(speedDelays)]struct{}
	_ [len(speedNames) - SpeedCount]struct{}
	_ [SpeedCount - len(speedNames)]struct{}
)

// Delay returns the inter-frame delay for s. It panics if s is not a
// declared variant; values from ParseSpeed are always valid.
func (s Speed) Delay() time.Duration { return speedDelays[s] }

func (s Speed) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Speed(%d)", int(s))
	}
	return speedNames[s]
}

func (s Speed) Valid() bool { return s >= 0 && s < speedCount }

// Speeds lists every Speed in declaration order.
func Speeds() []Speed {
	out := make([]Speed, 0, SpeedCount)
	for s := Speed(0); s < speedCount; s++ {
		out = append(out, s)
	}
	return out
}

// ParseSpeed resolves a case-insensitive speed name.
func ParseSpeed(name string) (Speed, error) {
	for s, n := range speedNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Speed(s), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSpeed, name)
}

// Mode selects a display variant.
type Mode int

const (
	Alternate Mode = iota
	Matrix
	Neon
	Snow
	modeCount
)

// ModeCount is the number of Mode variants.
const ModeCount = int(modeCount)

var modeNames = [...]string{
	Alternate: "alternate",
	Matrix:    "matrix",
	Neon:      "neon",
	Snow:      "snow",
}

var (
	_ [len(modeNames) - ModeCount]struct{}
	_ [ModeCount - len(modeNames)]struct{}
)

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

func (m Mode) Valid() bool { return m >= 0 && m < modeCount }

// Modes lists every Mode in declaration order.
func Modes() []Mode {
	out := make([]Mode, 0, ModeCount)
	for m := Mode(0); m < modeCount; m++ {
		out = append(out, m)
	}
	return out
}

// ParseMode resolves a case-insensitive mode name.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// CellKind is what a single grid cell displays.
type CellKind uint8

const (
	Blank CellKind = iota
	Head
	Tail
)

func (k CellKind) String() string {
	switch k {
	case Head:
		return "head"
	case Tail:
		return "tail"
	default:
		return "blank"
	}
}

// Classify decides what the cell at row shows for a column whose head is at
// head. A tail of 0 marks every row above the head as tail; a positive tail
// marks at most that many rows directly above it. Rows below the head are
// blank, and tails never wrap past row 0.
func Classify(row, head, tail int) CellKind {
	switch {
	case row == head:
		return Head
	case row < head && (tail <= 0 || head-row <= tail):
		return Tail
	default:
		return Blank
	}
}
