package render

import (
	"fmt"
	"math"
)

// MinWidth is the smallest accepted output width.
const MinWidth = 100

// ValidationError reports a parameter that failed range validation before
// any rendering work was attempted.
type ValidationError struct {
	Context string
	Field   string
	Value   interface{}
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", e.Context, e.Field, e.Value, e.Reason)
}

// Params are the shared rendering parameters. Immutable once validated;
// the output height derives from width and aspect ratio.
type Params struct {
	Width       int
	AspectRatio float64
	Smoothing   float64
}

// OutputHeight is round(width / aspectRatio).
func (p Params) OutputHeight() int {
	return int(math.Round(float64(p.Width) / p.AspectRatio))
}

// Validate range-checks every parameter. maxWidth <= 0 means no upper bound.
func (p Params) Validate(maxWidth int) error {
	if p.Width < MinWidth {
		return &ValidationError{
			Context: "render parameters",
			Field:   "Width",
			Value:   p.Width,
			Reason:  fmt.Sprintf("must be at least %d", MinWidth),
		}
	}
	if maxWidth > 0 && p.Width > maxWidth {
		return &ValidationError{
			Context: "render parameters",
			Field:   "Width",
			Value:   p.Width,
			Reason:  fmt.Sprintf("must not exceed %d", maxWidth),
		}
	}
	if p.AspectRatio <= 0 || math.IsNaN(p.AspectRatio) || math.IsInf(p.AspectRatio, 0) {
		return &ValidationError{
			Context: "render parameters",
			Field:   "AspectRatio",
			Value:   p.AspectRatio,
			Reason:  "must be a positive finite number",
		}
	}
	if p.OutputHeight() < 1 {
		return &ValidationError{
			Context: "render parameters",
			Field:   "AspectRatio",
			Value:   p.AspectRatio,
			Reason:  "produces a zero-height image at this width",
		}
	}
	if p.Smoothing < 0 || p.Smoothing > 1 {
		return &ValidationError{
			Context: "render parameters",
			Field:   "Smoothing",
			Value:   p.Smoothing,
			Reason:  "must be between 0.0 and 1.0",
		}
	}
	return nil
}
