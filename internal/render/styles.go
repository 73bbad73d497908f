package render

import (
	"github.com/G00405014/digital-rain/internal/rain"
	"github.com/muesli/termenv"
)

// Style is the head/tail character and color pair for one display mode.
type Style struct {
	HeadChar rune
	TailChar rune
	Bright   termenv.ANSIColor
	Dim      termenv.ANSIColor
}

var styles = [...]Style{
	rain.Alternate: {HeadChar: '|', TailChar: ':', Bright: termenv.ANSIBrightBlue, Dim: termenv.ANSIBlue},
	rain.Matrix:    {HeadChar: '|', TailChar: ':', Bright: termenv.ANSIBrightGreen, Dim: termenv.ANSIGreen},
	rain.Neon:      {HeadChar: '|', TailChar: ':', Bright: termenv.ANSIBrightMagenta, Dim: termenv.ANSIMagenta},
	rain.Snow:      {HeadChar: '*', TailChar: '.', Bright: termenv.ANSIBrightWhite, Dim: termenv.ANSIWhite},
}

// A Mode added without a style fails to compile here.
var (
	_ [len(styles) - rain.ModeCount]struct{}
	_ [rain.ModeCount - len(styles)]struct{}
)

// StyleFor returns the style table entry for m. It panics if m is not a
// declared variant; values from rain.ParseMode are always valid.
func StyleFor(m rain.Mode) Style { return styles[m] }

const (
	clearHome = termenv.CSI + "2J" + termenv.CSI + "H"
	resetSeq  = termenv.CSI + termenv.ResetSeq + "m"
)

// wrap returns ch colored with c and followed by a style reset.
func wrap(c termenv.ANSIColor, ch rune) string {
	return termenv.CSI + c.Sequence(false) + "m" + string(ch) + resetSeq
}
