package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/muesli/termenv"

	"github.com/G00405014/digital-rain/internal/rain"
	"github.com/G00405014/digital-rain/internal/render"
)

// xterm default palette for the 16 basic ANSI colors.
var palette = [16]string{
	"#000000", "#cd0000", "#00cd00", "#cdcd00", "#0000ee", "#cd00cd", "#00cdcd", "#e5e5e5",
	"#7f7f7f", "#ff0000", "#00ff00", "#ffff00", "#5c5cff", "#ff00ff", "#00ffff", "#ffffff",
}

// Hex returns the palette color for an ANSI color index.
func Hex(c termenv.ANSIColor) string {
	if c < 0 || int(c) >= len(palette) {
		return palette[15]
	}
	return palette[c]
}

// FrameToSVG draws one frame of g as monospace text, one cell per scale
// units wide and twice that tall.
func FrameToSVG(g *rain.Grid, m rain.Mode, tail int, scale float64) string {
	if g == nil {
		return ""
	}

	st := render.StyleFor(m)
	cellW := scale
	cellH := scale * 2
	width := float64(g.Width()) * cellW
	height := float64(g.Height()) * cellH

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g font-family="monospace" font-size="%.1f" text-anchor="middle">
`, width, height, width, height, cellH*0.8))

	head := html.EscapeString(string(st.HeadChar))
	trail := html.EscapeString(string(st.TailChar))

	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			var ch, fill string
			switch g.Cell(row, col, tail) {
			case rain.Head:
				ch, fill = head, Hex(st.Bright)
			case rain.Tail:
				ch, fill = trail, Hex(st.Dim)
			default:
				continue
			}
			x := float64(col)*cellW + cellW/2
			y := float64(row)*cellH + cellH*0.8
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s">%s</text>
`, x, y, fill, ch))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
