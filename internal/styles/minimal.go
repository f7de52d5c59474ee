package styles

import (
	"context"
	"fmt"

	"chromaglyph/internal/histogram"
)

const (
	minimalRed   = "#FF0000"
	minimalGreen = "#00FF00"
	minimalBlue  = "#0000FF"

	minimalWidth = 3.5
	minimalAlpha = 0.9
)

// Minimal renders a single clean stroke per channel on a fully transparent
// background, with no fill or glow. It doubles as the reference image handed
// to the external transform service by the watercolor style.
type Minimal struct{}

func NewMinimal() *Minimal { return &Minimal{} }

func (*Minimal) Name() string { return "minimal" }

func (s *Minimal) Render(_ context.Context, ch *histogram.Channels, opts Options) (*Result, error) {
	red, green, blue := prepare(ch, opts.Smoothing)

	p := newPlot(opts.Width, opts.Height)

	channels := []struct {
		curve []float64
		hex   string
	}{
		{red, minimalRed},
		{green, minimalGreen},
		{blue, minimalBlue},
	}
	for _, c := range channels {
		if err := p.strokeCurve(c.curve, withAlpha(c.hex, minimalAlpha), minimalWidth); err != nil {
			return nil, fmt.Errorf("render %s: %w", s.Name(), err)
		}
	}

	return p.encode(s.Name())
}
