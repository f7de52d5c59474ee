package styles

import (
	"context"
	"fmt"

	"github.com/gogpu/gg"

	"chromaglyph/internal/histogram"
)

const (
	frameBackground = "#000000"
	frameGridColor  = "#00FFFF"
	frameNeonRed    = "#FF0000"
	frameNeonGreen  = "#00FF00"
	frameNeonBlue   = "#0066FF"

	frameGridAlpha   = 0.5
	frameGridWidth   = 1.0
	frameBorderAlpha = 0.8
	frameBorderWidth = 1.5

	frameUnderlineWidth = 1.5
	frameUnderlineAlpha = 0.6
	frameOutlineWidth   = 2.5
)

// frameDash is the dash pattern shared by the grid lines and the border.
var frameDash = []float64{8, 6}

// frameGlowPasses is a deeper bloom table than the glow style, tuned for the
// high-contrast grid backdrop.
var frameGlowPasses = []glowPass{
	{30, 0.03},
	{24, 0.05},
	{18, 0.08},
	{12, 0.12},
	{8, 0.18},
	{5, 0.25},
	{3, 0.4},
}

// FramedGrid layers, in strict order: a dashed reference grid, an optional
// opaque mask polygon under the union of the three curves (so grid lines do
// not show through the filled region), the glow passes, white underlines and
// crisp neon outlines, and finally a dashed border frame on top of
// everything.
//
// The masked and maskless variants are registered as two distinct styles:
// the opaque-background one paints the mask, the transparent one does not.
type FramedGrid struct {
	transparent bool
}

// NewFramedGrid returns the black-background variant with the opaque mask.
func NewFramedGrid() *FramedGrid { return &FramedGrid{} }

// NewFramedGridTransparent returns the maskless variant on a transparent
// background.
func NewFramedGridTransparent() *FramedGrid { return &FramedGrid{transparent: true} }

func (s *FramedGrid) Name() string {
	if s.transparent {
		return "framed-grid-transparent"
	}
	return "framed-grid"
}

func (s *FramedGrid) Render(_ context.Context, ch *histogram.Channels, opts Options) (*Result, error) {
	red, green, blue := prepare(ch, opts.Smoothing)

	p := newPlot(opts.Width, opts.Height)
	if !s.transparent {
		p.dc.ClearWithColor(gg.Hex(frameBackground))
	}
	p.dc.SetLineCap(gg.LineCapRound)
	p.dc.SetLineJoin(gg.LineJoinRound)

	if err := s.drawGrid(p); err != nil {
		return nil, fmt.Errorf("render %s: %w", s.Name(), err)
	}

	if !s.transparent {
		if err := s.drawMask(p, red, green, blue); err != nil {
			return nil, fmt.Errorf("render %s: %w", s.Name(), err)
		}
	}

	channels := []struct {
		curve []float64
		hex   string
	}{
		{red, frameNeonRed},
		{green, frameNeonGreen},
		{blue, frameNeonBlue},
	}

	for _, pass := range frameGlowPasses {
		for _, c := range channels {
			if err := p.strokeCurve(c.curve, withAlpha(c.hex, pass.alpha), pass.width); err != nil {
				return nil, fmt.Errorf("render %s: %w", s.Name(), err)
			}
		}
	}

	for _, c := range channels {
		err := p.strokeCurve(c.curve, withAlpha("#FFFFFF", frameUnderlineAlpha), frameUnderlineWidth)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", s.Name(), err)
		}
	}
	for _, c := range channels {
		if err := p.strokeCurve(c.curve, gg.Hex(c.hex), frameOutlineWidth); err != nil {
			return nil, fmt.Errorf("render %s: %w", s.Name(), err)
		}
	}

	if err := s.drawBorder(p); err != nil {
		return nil, fmt.Errorf("render %s: %w", s.Name(), err)
	}

	return p.encode(s.Name())
}

// drawGrid draws three inner vertical and two inner horizontal dashed lines,
// evenly spaced across the plot area.
func (s *FramedGrid) drawGrid(p *plot) error {
	p.dc.SetStrokeBrush(gg.Solid(withAlpha(frameGridColor, frameGridAlpha)))
	p.dc.SetLineWidth(frameGridWidth)
	p.dc.SetDash(frameDash...)

	for i := 1; i <= 3; i++ {
		x := p.w * float64(i) / 4
		p.dc.DrawLine(x, 0, x, p.h)
		if err := p.dc.Stroke(); err != nil {
			return err
		}
	}
	for i := 1; i <= 2; i++ {
		y := p.h * float64(i) / 3
		p.dc.DrawLine(0, y, p.w, y)
		if err := p.dc.Stroke(); err != nil {
			return err
		}
	}

	p.dc.ClearDash()
	return nil
}

// drawMask paints an opaque background-colored polygon under the pointwise
// maximum of the three curves, hiding grid lines behind the filled region.
func (s *FramedGrid) drawMask(p *plot, red, green, blue []float64) error {
	union := make([]float64, len(red))
	for i := range union {
		m := red[i]
		if green[i] > m {
			m = green[i]
		}
		if blue[i] > m {
			m = blue[i]
		}
		union[i] = m
	}
	return p.fillArea(union, gg.Hex(frameBackground))
}

// drawBorder strokes the dashed frame last so it sits on top of every layer.
func (s *FramedGrid) drawBorder(p *plot) error {
	p.dc.SetStrokeBrush(gg.Solid(withAlpha(frameGridColor, frameBorderAlpha)))
	p.dc.SetLineWidth(frameBorderWidth)
	p.dc.SetDash(frameDash...)

	inset := frameBorderWidth / 2
	p.dc.DrawRectangle(inset, inset, p.w-2*inset, p.h-2*inset)
	err := p.dc.Stroke()
	p.dc.ClearDash()
	return err
}
