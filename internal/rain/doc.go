// Package rain holds the state of a digital rain animation.
//
// The whole model is one head row per column:
//
//   - [Grid]: fixed width and height, plus the head position of every column
//   - [Speed]: frame pacing, mapped to an inter-frame delay
//   - [Mode]: display variant, mapped to head/tail styling by the renderer
//   - [CellKind]: what a single cell shows for the current head positions
//
// Tails are not stored. They are derived at render time from the head row
// and a tail length via [Classify].
//
// # Example
//
//	g, _ := rain.New(80, 24)
//	g.Seed(rand.New(rand.NewPCG(1, 2)))
//	for {
//		renderer.Render(g)
//		g.Advance()
//	}
//
// # Thread Safety
//
// Grid is NOT thread-safe. Rendering and advancing are expected to
// alternate on a single goroutine.
package rain
