// Package render selects a style renderer by name and injects the shared
// rendering parameters. Pure selection; the algorithms live in the styles
// package.
package render

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"chromaglyph/internal/histogram"
	"chromaglyph/internal/logger"
	"chromaglyph/internal/styles"
)

// ErrUnknownStyle is returned for names with no registered renderer, before
// any curve processing begins.
var ErrUnknownStyle = errors.New("render: unknown style")

// Registry maps style names to renderers. It is built once at startup and
// never mutated afterwards, so concurrent lookups need no locking.
type Registry struct {
	renderers map[string]styles.Renderer
	maxWidth  int
}

// NewRegistry builds the fixed style set. The transformer may be nil, which
// disables the watercolor style's delegation path. maxWidth <= 0 disables
// the upper width bound.
func NewRegistry(transformer styles.Transformer, log logger.Logger, maxWidth int) *Registry {
	r := &Registry{
		renderers: make(map[string]styles.Renderer),
		maxWidth:  maxWidth,
	}
	r.register(
		styles.NewGradientFill(),
		styles.NewNeonGlow(),
		styles.NewMinimal(),
		styles.NewHatched(),
		styles.NewFramedGrid(),
		styles.NewFramedGridTransparent(),
		styles.NewWatercolor(transformer, log),
	)
	return r
}

func (r *Registry) register(renderers ...styles.Renderer) {
	for _, s := range renderers {
		r.renderers[s.Name()] = s
	}
}

// Validate range-checks parameters against this registry's width cap.
func (r *Registry) Validate(p Params) error {
	return p.Validate(r.maxWidth)
}

// Renderer looks up a style by name.
func (r *Registry) Renderer(name string) (styles.Renderer, error) {
	s, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return s, nil
}

// Available returns the registered style names, sorted.
func (r *Registry) Available() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render validates parameters, selects the renderer and invokes it.
// Validation and lookup failures happen before any rendering work; renderer
// errors propagate unchanged.
func (r *Registry) Render(ctx context.Context, ch *histogram.Channels, styleName string, p Params, dominantColors []string) (*styles.Result, error) {
	if err := p.Validate(r.maxWidth); err != nil {
		return nil, err
	}
	s, err := r.Renderer(styleName)
	if err != nil {
		return nil, err
	}

	opts := styles.Options{
		Width:          p.Width,
		Height:         p.OutputHeight(),
		Smoothing:      p.Smoothing,
		DominantColors: dominantColors,
	}
	return s.Render(ctx, ch, opts)
}
