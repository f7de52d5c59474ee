// Package styles implements the histogram chart renderers. Every style
// consumes the same three 256-bin channel curves and produces a PNG raster;
// the algorithms behind the pixels are entirely distinct per style.
package styles

import (
	"context"

	"chromaglyph/internal/curve"
	"chromaglyph/internal/histogram"
)

// Options carries the shared rendering parameters supplied by the dispatcher.
type Options struct {
	Width     int
	Height    int
	Smoothing float64 // 0..1, scaled to a Gaussian sigma by the curve package

	// DominantColors is forwarded to the external transform collaborator
	// by styles that delegate; local rendering ignores it.
	DominantColors []string
}

// Result is an encoded raster plus its pixel dimensions. The caller owns it
// exclusively; renderers hold no reference after returning.
type Result struct {
	Image  []byte // PNG
	Width  int
	Height int
}

// Renderer is the uniform capability behind which each style variant sits.
// The context only matters to styles that call out to the external transform
// collaborator; local rasterization is synchronous CPU work and does not
// observe cancellation.
type Renderer interface {
	Name() string
	Render(ctx context.Context, ch *histogram.Channels, opts Options) (*Result, error)
}

// prepare runs the shared curve pipeline: per-channel Gaussian smoothing
// followed by joint renormalization, since smoothing can pull the global
// peak below 1.0.
func prepare(ch *histogram.Channels, smoothing float64) (red, green, blue []float64) {
	r := curve.Smooth(ch.Red[:], smoothing)
	g := curve.Smooth(ch.Green[:], smoothing)
	b := curve.Smooth(ch.Blue[:], smoothing)
	norm := curve.NormalizeTogether(r, g, b)
	return norm[0], norm[1], norm[2]
}
