package render_test

import (
	"bufio"
	"bytes"
	"errors"
	"math/rand/v2"
	"regexp"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/G00405014/digital-rain/internal/rain"
	"github.com/G00405014/digital-rain/internal/render"
)

const (
	blueHead  = "\x1b[94m|\x1b[0m"
	blueTail  = "\x1b[34m:\x1b[0m"
	clearHome = "\x1b[2J\x1b[H"
)

var escapes = regexp.MustCompile("\x1b\\[[0-9;]*[A-Za-z]")

type failingWriter struct{ err error }

func (f failingWriter) Write(p []byte) (int, error) { return 0, f.err }

type countingWriter struct {
	writes int
	bytes.Buffer
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.writes++
	return c.Buffer.Write(p)
}

func newGrid(width, height int, positions ...int) *rain.Grid {
	g, err := rain.New(width, height)
	Expect(err).NotTo(HaveOccurred())
	if len(positions) > 0 {
		Expect(g.SetPositions(positions)).To(Succeed())
	}
	return g
}

var _ = Describe("Renderer", func() {
	It("writes the exact baseline byte stream", func() {
		var buf bytes.Buffer
		g := newGrid(3, 4, 0, 2, 1)
		Expect(render.New(&buf, rain.Alternate, 0).Render(g)).To(Succeed())

		want := clearHome +
			blueHead + blueTail + blueTail + "\n" +
			" " + blueTail + blueHead + "\n" +
			" " + blueHead + " \n" +
			"   \n"
		Expect(buf.String()).To(Equal(want))
	})

	It("limits the trail to the configured tail length", func() {
		var buf bytes.Buffer
		g := newGrid(1, 5, 4)
		Expect(render.New(&buf, rain.Alternate, 2).Render(g)).To(Succeed())

		want := clearHome + " \n" + " \n" + blueTail + "\n" + blueTail + "\n" + blueHead + "\n"
		Expect(buf.String()).To(Equal(want))
	})

	DescribeTable("uses the mode's color codes",
		func(m rain.Mode, head, tail string) {
			var buf bytes.Buffer
			g := newGrid(1, 2, 1)
			Expect(render.New(&buf, m, 0).Render(g)).To(Succeed())
			Expect(buf.String()).To(Equal(clearHome + tail + "\n" + head + "\n"))
		},
		Entry("alternate", rain.Alternate, blueHead, blueTail),
		Entry("matrix", rain.Matrix, "\x1b[92m|\x1b[0m", "\x1b[32m:\x1b[0m"),
		Entry("neon", rain.Neon, "\x1b[95m|\x1b[0m", "\x1b[35m:\x1b[0m"),
		Entry("snow", rain.Snow, "\x1b[97m*\x1b[0m", "\x1b[37m.\x1b[0m"),
	)

	It("emits width cells and one newline per row", func() {
		for _, dims := range [][2]int{{1, 1}, {7, 3}, {40, 12}, {3, 30}} {
			width, height := dims[0], dims[1]
			g := newGrid(width, height)
			g.Seed(rand.New(rand.NewPCG(uint64(width), uint64(height))))

			var buf bytes.Buffer
			Expect(render.New(&buf, rain.Alternate, 0).Render(g)).To(Succeed())

			out := buf.String()
			Expect(out).To(HavePrefix(clearHome))
			plain := escapes.ReplaceAllString(out, "")
			Expect(strings.Count(plain, "\n")).To(Equal(height))
			lines := strings.Split(strings.TrimSuffix(plain, "\n"), "\n")
			Expect(lines).To(HaveLen(height))
			for _, line := range lines {
				Expect([]rune(line)).To(HaveLen(width))
			}
		}
	})

	It("resets the style after every styled character", func() {
		var buf bytes.Buffer
		g := newGrid(5, 6)
		g.Seed(rand.New(rand.NewPCG(9, 9)))
		Expect(render.New(&buf, rain.Matrix, 0).Render(g)).To(Succeed())

		body := strings.TrimPrefix(buf.String(), clearHome)
		opens := strings.Count(body, "\x1b[92m") + strings.Count(body, "\x1b[32m")
		Expect(strings.Count(body, "\x1b[0m")).To(Equal(opens))
	})

	It("does not modify the grid", func() {
		g := newGrid(8, 5)
		g.Seed(rand.New(rand.NewPCG(1, 1)))
		before := g.Positions()

		r := render.New(&bytes.Buffer{}, rain.Alternate, 0)
		for i := 0; i < 10; i++ {
			Expect(r.Render(g)).To(Succeed())
		}
		Expect(g.Positions()).To(Equal(before))
	})

	It("writes each frame in one call", func() {
		w := &countingWriter{}
		g := newGrid(30, 20)
		r := render.New(w, rain.Alternate, 0)
		Expect(r.Render(g)).To(Succeed())
		Expect(r.Render(g)).To(Succeed())
		Expect(w.writes).To(Equal(2))
		Expect(r.FrameSize()).To(Equal(w.Len() / 2))
	})

	It("flushes buffered writers", func() {
		var out bytes.Buffer
		bw := bufio.NewWriter(&out)
		Expect(render.New(bw, rain.Alternate, 0).Render(newGrid(2, 2))).To(Succeed())
		Expect(bw.Buffered()).To(BeZero())
		Expect(out.Len()).To(BeNumerically(">", 0))
	})

	It("keeps the first write error", func() {
		boom := errors.New("boom")
		r := render.New(failingWriter{err: boom}, rain.Alternate, 0)
		Expect(r.Render(newGrid(2, 2))).To(MatchError(boom))
		Expect(r.Err()).To(MatchError(boom))
	})
})

var _ = Describe("StyleFor", func() {
	It("panics on an undeclared mode", func() {
		Expect(func() { render.StyleFor(rain.Mode(rain.ModeCount)) }).To(Panic())
		Expect(func() { render.New(&bytes.Buffer{}, rain.Mode(-1), 0) }).To(Panic())
	})

	It("has distinct characters for head and tail in every mode", func() {
		for _, m := range rain.Modes() {
			st := render.StyleFor(m)
			Expect(st.HeadChar).NotTo(Equal(st.TailChar), m.String())
			Expect(st.Bright).NotTo(Equal(st.Dim), m.String())
		}
	})
})
