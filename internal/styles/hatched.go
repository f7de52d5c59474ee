package styles

import (
	"context"
	"fmt"

	"github.com/gogpu/gg"

	"chromaglyph/internal/histogram"
)

// Softer screen-print palette: the hatched style targets physical
// reproduction (shirt prints), not pixel analysis.
const (
	hatchRed   = "#E85A5A"
	hatchGreen = "#4AE88A"
	hatchBlue  = "#5A7ABF"

	hatchStrokeWidth = 2.5
	hatchDotRadius   = 1.2
	hatchDotSpacing  = 8.0
)

// Hatched fills each channel's area with a staggered dot stipple clipped to
// the curve polygon (no solid fill) and draws a solid stroke on top, over a
// transparent background.
type Hatched struct{}

func NewHatched() *Hatched { return &Hatched{} }

func (*Hatched) Name() string { return "hatched" }

func (s *Hatched) Render(_ context.Context, ch *histogram.Channels, opts Options) (*Result, error) {
	red, green, blue := prepare(ch, opts.Smoothing)

	p := newPlot(opts.Width, opts.Height)

	channels := []struct {
		curve []float64
		hex   string
	}{
		{red, hatchRed},
		{green, hatchGreen},
		{blue, hatchBlue},
	}

	for _, c := range channels {
		if err := s.stipple(p, c.curve, gg.Hex(c.hex)); err != nil {
			return nil, fmt.Errorf("render %s: %w", s.Name(), err)
		}
	}

	for _, c := range channels {
		if err := p.strokeCurve(c.curve, gg.Hex(c.hex), hatchStrokeWidth); err != nil {
			return nil, fmt.Errorf("render %s: %w", s.Name(), err)
		}
	}

	return p.encode(s.Name())
}

// stipple draws a staggered dot grid restricted to the area under the curve.
// Odd rows are offset by half the spacing, matching a classic halftone layout.
func (s *Hatched) stipple(p *plot, c []float64, col gg.RGBA) error {
	p.traceArea(c)
	p.dc.Clip()

	p.dc.SetFillBrush(gg.Solid(col))
	row := 0
	for y := hatchDotSpacing / 2; y < p.h; y += hatchDotSpacing {
		offset := 0.0
		if row%2 == 1 {
			offset = hatchDotSpacing / 2
		}
		for x := offset; x < p.w+hatchDotSpacing; x += hatchDotSpacing {
			p.dc.DrawCircle(x, y, hatchDotRadius)
		}
		row++
	}
	if err := p.dc.Fill(); err != nil {
		p.dc.ResetClip()
		return err
	}

	p.dc.ResetClip()
	return nil
}
