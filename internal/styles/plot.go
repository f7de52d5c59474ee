package styles

import (
	"bytes"
	"fmt"

	"github.com/gogpu/gg"
)

// yHeadroom leaves 5% of the vertical range empty above the tallest peak so
// full-height strokes are not clipped at the image edge.
const yHeadroom = 1.05

// plot wraps a drawing context with the bin-space to pixel-space mapping
// shared by all styles: x covers bins 0..255 across the full width, y covers
// curve values 0..yHeadroom from the bottom edge upward.
type plot struct {
	dc *gg.Context
	w  float64
	h  float64
}

func newPlot(width, height int) *plot {
	return &plot{
		dc: gg.NewContext(width, height),
		w:  float64(width),
		h:  float64(height),
	}
}

func (p *plot) x(bin int) float64 {
	return float64(bin) / 255 * p.w
}

func (p *plot) y(v float64) float64 {
	return p.h - v/yHeadroom*p.h
}

// traceCurve appends the curve as a polyline to the current path.
func (p *plot) traceCurve(c []float64) {
	p.dc.MoveTo(p.x(0), p.y(c[0]))
	for i := 1; i < len(c); i++ {
		p.dc.LineTo(p.x(i), p.y(c[i]))
	}
}

// traceArea appends a closed polygon bounded by the curve above and the
// baseline below: the curve points, the bottom-right corner, then the
// bottom-left corner.
func (p *plot) traceArea(c []float64) {
	p.traceCurve(c)
	p.dc.LineTo(p.w, p.h)
	p.dc.LineTo(0, p.h)
	p.dc.ClosePath()
}

// strokeCurve draws the curve as a single stroke.
func (p *plot) strokeCurve(c []float64, col gg.RGBA, width float64) error {
	p.dc.SetStrokeBrush(gg.Solid(col))
	p.dc.SetLineWidth(width)
	p.traceCurve(c)
	return p.dc.Stroke()
}

// fillArea fills the region under the curve with a solid color.
func (p *plot) fillArea(c []float64, col gg.RGBA) error {
	p.dc.SetFillBrush(gg.Solid(col))
	p.traceArea(c)
	return p.dc.Fill()
}

// gradientArea fills the region under the curve with a vertical gradient
// running from the baseline (offset 0) to full curve height (offset 1).
// Restricting the gradient to the area polygon is what clips the color ramp
// to the curve.
func (p *plot) gradientArea(c []float64, stops []gg.ColorStop) error {
	grad := gg.NewLinearGradientBrush(0, p.h, 0, p.y(1))
	for _, s := range stops {
		grad.AddColorStop(s.Offset, s.Color)
	}
	p.dc.SetFillBrush(grad)
	p.traceArea(c)
	return p.dc.Fill()
}

// encode finalizes the raster into a Result.
func (p *plot) encode(name string) (*Result, error) {
	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("render %s: encode: %w", name, err)
	}
	return &Result{Image: buf.Bytes(), Width: p.dc.Width(), Height: p.dc.Height()}, nil
}

// withAlpha returns the hex color with its alpha replaced.
func withAlpha(hex string, alpha float64) gg.RGBA {
	col := gg.Hex(hex)
	col.A = alpha
	return col
}
