package render

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"math"
	"testing"

	"chromaglyph/internal/histogram"
)

func testChannels() *histogram.Channels {
	ch := &histogram.Channels{}
	ch.Red[255] = 1.0
	ch.Green[0] = 0.5
	ch.Blue[128] = 0.25
	return ch
}

func defaultParams() Params {
	return Params{Width: 400, AspectRatio: 1.618, Smoothing: 0.7}
}

func TestOutputHeight(t *testing.T) {
	cases := []struct {
		width  int
		aspect float64
		want   int
	}{
		{1200, 1.618, 742},
		{400, 1.618, 247},
		{400, 1.0, 400},
		{400, 2.0, 200},
	}
	for _, c := range cases {
		p := Params{Width: c.width, AspectRatio: c.aspect}
		if got := p.OutputHeight(); got != c.want {
			t.Errorf("OutputHeight(%d, %v) = %d, want %d", c.width, c.aspect, got, c.want)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		name  string
		p     Params
		max   int
		field string
	}{
		{"width below minimum", Params{Width: 99, AspectRatio: 1.618, Smoothing: 0.7}, 0, "Width"},
		{"width above cap", Params{Width: 5000, AspectRatio: 1.618, Smoothing: 0.7}, 4096, "Width"},
		{"zero aspect", Params{Width: 400, AspectRatio: 0, Smoothing: 0.7}, 0, "AspectRatio"},
		{"negative aspect", Params{Width: 400, AspectRatio: -1, Smoothing: 0.7}, 0, "AspectRatio"},
		{"nan aspect", Params{Width: 400, AspectRatio: math.NaN(), Smoothing: 0.7}, 0, "AspectRatio"},
		{"degenerate height", Params{Width: 400, AspectRatio: 1e6, Smoothing: 0.7}, 0, "AspectRatio"},
		{"smoothing below range", Params{Width: 400, AspectRatio: 1.618, Smoothing: -0.1}, 0, "Smoothing"},
		{"smoothing above range", Params{Width: 400, AspectRatio: 1.618, Smoothing: 1.1}, 0, "Smoothing"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.p.Validate(c.max)
			if err == nil {
				t.Fatal("Validate accepted invalid parameters")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error is %T, want *ValidationError", err)
			}
			if verr.Field != c.field {
				t.Errorf("Field = %q, want %q", verr.Field, c.field)
			}
		})
	}

	if err := defaultParams().Validate(4096); err != nil {
		t.Errorf("valid parameters rejected: %v", err)
	}
	// No cap when maxWidth is zero.
	if err := (Params{Width: 100000, AspectRatio: 1.618, Smoothing: 0}).Validate(0); err != nil {
		t.Errorf("unbounded width rejected: %v", err)
	}
}

func TestRegistryAvailable(t *testing.T) {
	r := NewRegistry(nil, nil, 0)
	want := []string{
		"framed-grid",
		"framed-grid-transparent",
		"glow",
		"gradient-fill",
		"hatched",
		"minimal",
		"watercolor",
	}
	got := r.Available()
	if len(got) != len(want) {
		t.Fatalf("Available() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Available() = %v, want %v", got, want)
		}
	}
}

func TestRegistryUnknownStyle(t *testing.T) {
	r := NewRegistry(nil, nil, 0)

	if _, err := r.Renderer("sepia"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("Renderer error = %v, want ErrUnknownStyle", err)
	}

	_, err := r.Render(context.Background(), testChannels(), "sepia", defaultParams(), nil)
	if !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("Render error = %v, want ErrUnknownStyle", err)
	}
}

func TestRegistryRender(t *testing.T) {
	r := NewRegistry(nil, nil, 4096)

	res, err := r.Render(context.Background(), testChannels(), "minimal", defaultParams(), nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.Width != 400 || res.Height != 247 {
		t.Errorf("result %dx%d, want 400x247", res.Width, res.Height)
	}

	img, err := png.Decode(bytes.NewReader(res.Image))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 247 {
		t.Errorf("decoded image %dx%d, want 400x247", b.Dx(), b.Dy())
	}
}

func TestRegistryRenderValidatesFirst(t *testing.T) {
	r := NewRegistry(nil, nil, 1000)

	p := Params{Width: 2000, AspectRatio: 1.618, Smoothing: 0.7}
	_, err := r.Render(context.Background(), testChannels(), "minimal", p, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error is %T, want *ValidationError", err)
	}
	if verr.Field != "Width" {
		t.Errorf("Field = %q, want Width", verr.Field)
	}
}
