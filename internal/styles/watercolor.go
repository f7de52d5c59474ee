package styles

import (
	"context"
	"fmt"

	"github.com/gogpu/gg"

	"chromaglyph/internal/histogram"
	"chromaglyph/internal/logger"
)

// Watercolor palette: rich saturated tones over a cream paper base.
const (
	watercolorRedDark    = "#8B0000"
	watercolorRedLight   = "#DC143C"
	watercolorGreenDark  = "#006400"
	watercolorGreenLight = "#32CD32"
	watercolorBlueDark   = "#00008B"
	watercolorBlueLight  = "#4169E1"
	watercolorPaper      = "#F5F5DC"

	watercolorFillAlpha = 0.7
	watercolorEdgeAlpha = 0.15
)

// Transformer is the external image-to-image collaborator consumed by the
// watercolor style. Implementations must treat timeouts, bad statuses and
// malformed payloads as ordinary errors; the style converts every error into
// "absent" and falls back to its local algorithm.
type Transformer interface {
	Transform(ctx context.Context, reference []byte, dominantColors []string) ([]byte, error)
}

// Watercolor simulates paint bleeding on paper. When a Transformer is
// configured it first renders the minimal style as a reference image and
// delegates the stylization to the collaborator; on absence or any failure
// it falls back to the deterministic local rendering: seeded edge noise over
// the processed curves, gradient-filled on a paper-toned background.
type Watercolor struct {
	transformer Transformer
	log         logger.Logger
	reference   *Minimal
}

// NewWatercolor builds the style. Both arguments may be nil: a nil
// transformer disables delegation entirely.
func NewWatercolor(t Transformer, log logger.Logger) *Watercolor {
	if log == nil {
		log = logger.Nop{}
	}
	return &Watercolor{transformer: t, log: log, reference: NewMinimal()}
}

func (*Watercolor) Name() string { return "watercolor" }

func (s *Watercolor) Render(ctx context.Context, ch *histogram.Channels, opts Options) (*Result, error) {
	if res := s.tryTransform(ctx, ch, opts); res != nil {
		return res, nil
	}
	return s.renderLocal(ctx, ch, opts)
}

// tryTransform attempts the collaborator path. A nil return means absent:
// no transformer configured, reference rendering failed, or the remote call
// failed in any way.
func (s *Watercolor) tryTransform(ctx context.Context, ch *histogram.Channels, opts Options) *Result {
	if s.transformer == nil {
		return nil
	}

	reference, err := s.reference.Render(ctx, ch, opts)
	if err != nil {
		s.log.Warning("Watercolor", "reference rendering failed, using local fallback",
			map[string]interface{}{"error": err.Error()})
		return nil
	}

	image, err := s.transformer.Transform(ctx, reference.Image, opts.DominantColors)
	if err != nil {
		s.log.Warning("Watercolor", "transform collaborator unavailable, using local fallback",
			map[string]interface{}{"error": err.Error()})
		return nil
	}

	s.log.Info("Watercolor", "transformed via external collaborator", map[string]interface{}{
		"reference_bytes": len(reference.Image),
		"result_bytes":    len(image),
	})
	return &Result{Image: image, Width: opts.Width, Height: opts.Height}
}

func (s *Watercolor) renderLocal(_ context.Context, ch *histogram.Channels, opts Options) (*Result, error) {
	red, green, blue := prepare(ch, opts.Smoothing)

	p := newPlot(opts.Width, opts.Height)
	p.dc.ClearWithColor(gg.Hex(watercolorPaper))

	channels := []struct {
		curve       []float64
		dark, light string
	}{
		{red, watercolorRedDark, watercolorRedLight},
		{green, watercolorGreenDark, watercolorGreenLight},
		{blue, watercolorBlueDark, watercolorBlueLight},
	}

	for _, c := range channels {
		bled := edgeNoise(c.curve)

		paper := gg.Hex(watercolorPaper)
		dark := gg.Hex(c.dark)

		// The wash starts already tinted toward the pigment (paint pools
		// at the baseline) and saturates toward the light tone at the top.
		stops := []gg.ColorStop{
			{Offset: 0, Color: mixAlpha(paper, dark, 0.6, watercolorFillAlpha)},
			{Offset: 0.3, Color: withAlpha(c.dark, watercolorFillAlpha)},
			{Offset: 1, Color: withAlpha(c.light, watercolorFillAlpha)},
		}
		if err := p.gradientArea(bled, stops); err != nil {
			return nil, fmt.Errorf("render %s: %w", s.Name(), err)
		}

		// Subtle darker band just below the bled edge for definition.
		if err := s.edgeBand(p, bled, withAlpha(c.dark, watercolorEdgeAlpha)); err != nil {
			return nil, fmt.Errorf("render %s: %w", s.Name(), err)
		}
	}

	return p.encode(s.Name())
}

// edgeBand fills the thin region between the curve and 98% of its height.
func (s *Watercolor) edgeBand(p *plot, c []float64, col gg.RGBA) error {
	p.dc.MoveTo(p.x(0), p.y(c[0]))
	for i := 1; i < len(c); i++ {
		p.dc.LineTo(p.x(i), p.y(c[i]))
	}
	for i := len(c) - 1; i >= 0; i-- {
		p.dc.LineTo(p.x(i), p.y(c[i]*0.98))
	}
	p.dc.ClosePath()
	p.dc.SetFillBrush(gg.Solid(col))
	return p.dc.Fill()
}

// mixAlpha linearly interpolates a toward b by t and applies the alpha.
func mixAlpha(a, b gg.RGBA, t, alpha float64) gg.RGBA {
	return gg.RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: alpha,
	}
}
