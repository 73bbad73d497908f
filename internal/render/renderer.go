package render

import (
	"io"

	"github.com/G00405014/digital-rain/internal/rain"
)

// Renderer repaints the full grid on every call to Render.
type Renderer struct {
	w    io.Writer
	tail int
	head string
	dim  string
	buf  []byte
	err  error
}

// New returns a renderer writing frames for mode m to w. A tail of 0 draws
// every row above each head; a positive tail draws at most that many rows.
// Like StyleFor, it panics if m is not a declared variant.
func New(w io.Writer, m rain.Mode, tail int) *Renderer {
	st := StyleFor(m)
	return &Renderer{
		w:    w,
		tail: tail,
		head: wrap(st.Bright, st.HeadChar),
		dim:  wrap(st.Dim, st.TailChar),
	}
}

// AppendFrame appends one complete frame for g to dst: clear and home, then
// rows top to bottom, columns left to right, a newline after each row.
func (r *Renderer) AppendFrame(dst []byte, g *rain.Grid) []byte {
	dst = append(dst, clearHome...)
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			switch g.Cell(row, col, r.tail) {
			case rain.Head:
				dst = append(dst, r.head...)
			case rain.Tail:
				dst = append(dst, r.dim...)
			default:
				dst = append(dst, ' ')
			}
		}
		dst = append(dst, '\n')
	}
	return dst
}

// Render writes one frame for g in a single write. g is not modified.
func (r *Renderer) Render(g *rain.Grid) error {
	r.buf = r.AppendFrame(r.buf[:0], g)
	n, err := r.w.Write(r.buf)
	if err == nil && n < len(r.buf) {
		err = io.ErrShortWrite
	}
	if err == nil {
		if f, ok := r.w.(interface{ Flush() error }); ok {
			err = f.Flush()
		}
	}
	if err != nil && r.err == nil {
		r.err = err
	}
	return err
}

// Err returns the first write error seen, if any.
func (r *Renderer) Err() error { return r.err }

// FrameSize returns the number of bytes the last frame occupied.
func (r *Renderer) FrameSize() int { return len(r.buf) }
