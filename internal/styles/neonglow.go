package styles

import (
	"context"
	"fmt"

	"github.com/gogpu/gg"

	"chromaglyph/internal/histogram"
)

const (
	neonRed        = "#FF0040"
	neonGreen      = "#00FF80"
	neonBlue       = "#0080FF"
	neonBackground = "#1A1A2E"

	neonMainWidth = 2.0
	neonFillAlpha = 0.15
)

// glowPass is one stroke of the bloom simulation: a wide, faint pass under
// progressively narrower, more opaque ones.
type glowPass struct {
	width float64
	alpha float64
}

// neonGlowPasses runs widest-and-faintest first so later passes sit on top.
var neonGlowPasses = []glowPass{
	{20, 0.05},
	{15, 0.08},
	{10, 0.12},
	{6, 0.18},
	{3, 0.3},
}

// NeonGlow renders bright channel curves with a layered bloom effect on a
// dark charcoal background: the glow passes, then a crisp full-opacity
// stroke, then a faint solid fill under each curve.
type NeonGlow struct{}

func NewNeonGlow() *NeonGlow { return &NeonGlow{} }

func (*NeonGlow) Name() string { return "glow" }

func (s *NeonGlow) Render(_ context.Context, ch *histogram.Channels, opts Options) (*Result, error) {
	red, green, blue := prepare(ch, opts.Smoothing)

	p := newPlot(opts.Width, opts.Height)
	p.dc.ClearWithColor(gg.Hex(neonBackground))
	p.dc.SetLineCap(gg.LineCapRound)
	p.dc.SetLineJoin(gg.LineJoinRound)

	channels := []struct {
		curve []float64
		hex   string
	}{
		{red, neonRed},
		{green, neonGreen},
		{blue, neonBlue},
	}

	for _, pass := range neonGlowPasses {
		for _, c := range channels {
			if err := p.strokeCurve(c.curve, withAlpha(c.hex, pass.alpha), pass.width); err != nil {
				return nil, fmt.Errorf("render %s: %w", s.Name(), err)
			}
		}
	}

	for _, c := range channels {
		if err := p.strokeCurve(c.curve, gg.Hex(c.hex), neonMainWidth); err != nil {
			return nil, fmt.Errorf("render %s: %w", s.Name(), err)
		}
	}

	for _, c := range channels {
		if err := p.fillArea(c.curve, withAlpha(c.hex, neonFillAlpha)); err != nil {
			return nil, fmt.Errorf("render %s: %w", s.Name(), err)
		}
	}

	return p.encode(s.Name())
}
