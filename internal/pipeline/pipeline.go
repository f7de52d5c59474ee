// Package pipeline coordinates a full request: decode, histogram, render.
// It is stateless across calls; concurrent invocations share nothing but
// the read-only style registry.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"chromaglyph/internal/histogram"
	"chromaglyph/internal/logger"
	"chromaglyph/internal/render"
)

// Output is everything a caller gets back for one processed image.
type Output struct {
	Image          []byte // PNG
	Width          int
	Height         int
	DominantColors []string
	ProcessingTime time.Duration // wall clock around the render call
}

type Coordinator struct {
	registry *render.Registry
	log      logger.Logger
}

func NewCoordinator(registry *render.Registry, log logger.Logger) *Coordinator {
	if log == nil {
		log = logger.Nop{}
	}
	return &Coordinator{registry: registry, log: log}
}

// Process runs the whole pipeline on encoded image bytes. Validation-class
// failures (style name, parameter ranges) surface before any decoding or
// histogram work.
func (c *Coordinator) Process(ctx context.Context, data []byte, styleName string, params render.Params) (*Output, error) {
	if err := c.registry.Validate(params); err != nil {
		return nil, err
	}
	if _, err := c.registry.Renderer(styleName); err != nil {
		return nil, err
	}

	pix, err := histogram.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	ch, dominant, err := histogram.Compute(pix)
	if err != nil {
		return nil, err
	}

	c.log.Debug("Pipeline", "histogram computed", map[string]interface{}{
		"input_size":      fmt.Sprintf("%dx%d", pix.Width, pix.Height),
		"dominant_colors": dominant,
	})

	start := time.Now()
	result, err := c.registry.Render(ctx, ch, styleName, params, dominant)
	elapsed := time.Since(start)
	if err != nil {
		c.log.Error("Pipeline", err, map[string]interface{}{"style": styleName})
		return nil, err
	}

	c.log.Info("Pipeline", "render completed", map[string]interface{}{
		"style":       styleName,
		"output_size": fmt.Sprintf("%dx%d", result.Width, result.Height),
		"duration_ms": elapsed.Milliseconds(),
	})

	return &Output{
		Image:          result.Image,
		Width:          result.Width,
		Height:         result.Height,
		DominantColors: dominant,
		ProcessingTime: elapsed,
	}, nil
}

// Styles lists the registered style names.
func (c *Coordinator) Styles() []string {
	return c.registry.Available()
}
