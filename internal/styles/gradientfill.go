package styles

import (
	"context"
	"fmt"

	"github.com/gogpu/gg"

	"chromaglyph/internal/histogram"
)

// Channel tone pairs for the gradient-fill style: a deep dark tone at the
// baseline ramping to a vivid light tone at full curve height.
const (
	gradientRedDark    = "#4A0000"
	gradientRedLight   = "#FF3333"
	gradientGreenDark  = "#004A00"
	gradientGreenLight = "#33FF33"
	gradientBlueDark   = "#00004A"
	gradientBlueLight  = "#3333FF"

	gradientFillAlpha    = 0.6
	gradientOutlineAlpha = 0.8
	gradientOutlineWidth = 1.5
)

// GradientFill renders each channel as a vertical dark-to-light gradient
// clipped to the area polygon under its curve, on a white background. The
// three channels are layered at partial alpha so overlaps blend toward
// secondary hues.
type GradientFill struct{}

func NewGradientFill() *GradientFill { return &GradientFill{} }

func (*GradientFill) Name() string { return "gradient-fill" }

func (s *GradientFill) Render(_ context.Context, ch *histogram.Channels, opts Options) (*Result, error) {
	red, green, blue := prepare(ch, opts.Smoothing)

	p := newPlot(opts.Width, opts.Height)
	p.dc.ClearWithColor(gg.White)

	channels := []struct {
		curve       []float64
		dark, light string
	}{
		{red, gradientRedDark, gradientRedLight},
		{green, gradientGreenDark, gradientGreenLight},
		{blue, gradientBlueDark, gradientBlueLight},
	}

	for _, c := range channels {
		stops := []gg.ColorStop{
			{Offset: 0, Color: withAlpha(c.dark, gradientFillAlpha)},
			{Offset: 1, Color: withAlpha(c.light, gradientFillAlpha)},
		}
		if err := p.gradientArea(c.curve, stops); err != nil {
			return nil, fmt.Errorf("render %s: %w", s.Name(), err)
		}
	}

	for _, c := range channels {
		err := p.strokeCurve(c.curve, withAlpha(c.light, gradientOutlineAlpha), gradientOutlineWidth)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", s.Name(), err)
		}
	}

	return p.encode(s.Name())
}
