package rain_test

import (
	"math/rand/v2"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/G00405014/digital-rain/internal/rain"
)

type fixedSource struct {
	values []int
	calls  int
}

func (f *fixedSource) IntN(n int) int {
	v := f.values[f.calls%len(f.values)] % n
	f.calls++
	return v
}

var _ = Describe("Grid", func() {
	Describe("New", func() {
		DescribeTable("rejects non-positive dimensions",
			func(width, height int) {
				g, err := rain.New(width, height)
				Expect(err).To(MatchError(rain.ErrInvalidDimensions))
				Expect(g).To(BeNil())
			},
			Entry("zero width", 0, 4),
			Entry("zero height", 3, 0),
			Entry("negative width", -1, 4),
			Entry("negative height", 3, -2),
		)

		It("starts with one head per column", func() {
			g, err := rain.New(5, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Width()).To(Equal(5))
			Expect(g.Height()).To(Equal(7))
			Expect(g.Positions()).To(HaveLen(5))
		})
	})

	Describe("Seed", func() {
		It("draws one value per column", func() {
			g, _ := rain.New(3, 4)
			src := &fixedSource{values: []int{0, 2, 1}}
			g.Seed(src)
			Expect(src.calls).To(Equal(3))
			Expect(g.Positions()).To(Equal([]int{0, 2, 1}))
		})

		It("keeps every head in range with a real generator", func() {
			g, _ := rain.New(200, 9)
			g.Seed(rand.New(rand.NewPCG(7, 11)))
			for _, p := range g.Positions() {
				Expect(p).To(BeNumerically(">=", 0))
				Expect(p).To(BeNumerically("<", 9))
			}
		})
	})

	Describe("Advance", func() {
		var g *rain.Grid

		BeforeEach(func() {
			var err error
			g, err = rain.New(3, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.SetPositions([]int{0, 2, 1})).To(Succeed())
		})

		It("steps through a full cycle of height frames", func() {
			g.Advance()
			Expect(g.Positions()).To(Equal([]int{1, 3, 2}))
			g.Advance()
			Expect(g.Positions()).To(Equal([]int{2, 0, 3}))
			g.Advance()
			Expect(g.Positions()).To(Equal([]int{3, 1, 0}))
			g.Advance()
			Expect(g.Positions()).To(Equal([]int{0, 2, 1}))
		})

		It("wraps the last row to row 0", func() {
			Expect(g.SetPositions([]int{3, 3, 3})).To(Succeed())
			g.Advance()
			Expect(g.Positions()).To(Equal([]int{0, 0, 0}))
		})

		It("never leaves [0, height)", func() {
			g, _ := rain.New(17, 5)
			g.Seed(rand.New(rand.NewPCG(1, 2)))
			for i := 0; i < 123; i++ {
				g.Advance()
				for _, p := range g.Positions() {
					Expect(p).To(And(BeNumerically(">=", 0), BeNumerically("<", 5)))
				}
			}
		})

		It("returns to the start after height advances", func() {
			g, _ := rain.New(31, 13)
			g.Seed(rand.New(rand.NewPCG(3, 4)))
			start := g.Positions()
			for i := 0; i < g.Height(); i++ {
				g.Advance()
			}
			Expect(g.Positions()).To(Equal(start))
		})

		It("does not allocate", func() {
			allocs := testing.AllocsPerRun(100, func() { g.Advance() })
			Expect(allocs).To(BeZero())
		})
	})

	Describe("SetPositions", func() {
		It("rejects a wrong count and leaves state alone", func() {
			g, _ := rain.New(3, 4)
			Expect(g.SetPositions([]int{1, 1})).To(MatchError(rain.ErrPositionCount))
			Expect(g.Positions()).To(Equal([]int{0, 0, 0}))
		})

		It("rejects out of range rows", func() {
			g, _ := rain.New(3, 4)
			Expect(g.SetPositions([]int{1, 4, 0})).To(MatchError(rain.ErrPositionOutOfRange))
			Expect(g.SetPositions([]int{-1, 0, 0})).To(MatchError(rain.ErrPositionOutOfRange))
			Expect(g.Positions()).To(Equal([]int{0, 0, 0}))
		})
	})

	Describe("Positions", func() {
		It("returns a copy", func() {
			g, _ := rain.New(2, 4)
			p := g.Positions()
			p[0] = 3
			Expect(g.Head(0)).To(Equal(0))
		})
	})

	Describe("Cell", func() {
		It("marks exactly one head per column", func() {
			g, _ := rain.New(6, 8)
			g.Seed(rand.New(rand.NewPCG(5, 6)))
			for col := 0; col < g.Width(); col++ {
				heads := 0
				for row := 0; row < g.Height(); row++ {
					if g.Cell(row, col, 0) == rain.Head {
						heads++
					}
				}
				Expect(heads).To(Equal(1), "column %d", col)
			}
		})
	})
})
