package styles

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"chromaglyph/internal/histogram"
)

// broadChannels returns curves that cover most of the plot area so fills
// and strokes have substantial coverage: red ramps up, green ramps down,
// blue sits at half height.
func broadChannels() *histogram.Channels {
	ch := &histogram.Channels{}
	for i := 0; i < histogram.Bins; i++ {
		ch.Red[i] = float64(i) / 255
		ch.Green[i] = 1 - float64(i)/255
		ch.Blue[i] = 0.5
	}
	return ch
}

// redSpikeChannels models a pure-red source image: red peaks at bin 255,
// green and blue pile up at bin 0.
func redSpikeChannels() *histogram.Channels {
	ch := &histogram.Channels{}
	ch.Red[255] = 1
	ch.Green[0] = 1
	ch.Blue[0] = 1
	return ch
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func allRenderers() []Renderer {
	return []Renderer{
		NewGradientFill(),
		NewNeonGlow(),
		NewMinimal(),
		NewHatched(),
		NewFramedGrid(),
		NewFramedGridTransparent(),
		NewWatercolor(nil, nil),
	}
}

func TestRenderersProduceExactDimensions(t *testing.T) {
	ch := broadChannels()
	opts := Options{Width: 320, Height: 200, Smoothing: 0.5}

	for _, r := range allRenderers() {
		res, err := r.Render(context.Background(), ch, opts)
		if err != nil {
			t.Errorf("%s: %v", r.Name(), err)
			continue
		}
		if res.Width != 320 || res.Height != 200 {
			t.Errorf("%s: result reports %dx%d, want 320x200", r.Name(), res.Width, res.Height)
		}
		img := decodePNG(t, res.Image)
		bounds := img.Bounds()
		if bounds.Dx() != 320 || bounds.Dy() != 200 {
			t.Errorf("%s: raster is %dx%d, want 320x200", r.Name(), bounds.Dx(), bounds.Dy())
		}
	}
}

func TestRenderersAreDeterministic(t *testing.T) {
	ch := broadChannels()
	opts := Options{Width: 200, Height: 150, Smoothing: 0.7}

	for _, r := range allRenderers() {
		first, err := r.Render(context.Background(), ch, opts)
		if err != nil {
			t.Errorf("%s: %v", r.Name(), err)
			continue
		}
		second, err := r.Render(context.Background(), ch, opts)
		if err != nil {
			t.Errorf("%s second pass: %v", r.Name(), err)
			continue
		}
		if !bytes.Equal(first.Image, second.Image) {
			t.Errorf("%s: two renders of the same input differ", r.Name())
		}
	}
}

func TestMinimalRedSpikeScenario(t *testing.T) {
	// 100x100 pure-red source, width 400, aspect 1.0: a 400x400 chart
	// with the red curve peaking at bin 255 (right edge).
	res, err := NewMinimal().Render(context.Background(), redSpikeChannels(),
		Options{Width: 400, Height: 400, Smoothing: 0})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := decodePNG(t, res.Image)

	// The red spike runs nearly vertically at the right edge.
	foundRed := false
	for x := 394; x < 400; x++ {
		c := nrgbaAt(img, x, 200)
		if c.A > 100 && c.R > 150 && c.G < 80 && c.B < 80 {
			foundRed = true
			break
		}
	}
	if !foundRed {
		t.Error("no red stroke near the right edge")
	}

	// Away from all three spikes the background stays transparent.
	if c := nrgbaAt(img, 200, 10); c.A != 0 {
		t.Errorf("background pixel not transparent: %+v", c)
	}
}

func TestGradientFillCoversCurveArea(t *testing.T) {
	res, err := NewGradientFill().Render(context.Background(), broadChannels(),
		Options{Width: 400, Height: 400, Smoothing: 0})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := decodePNG(t, res.Image)

	// Inside the filled region the layered translucent gradients darken
	// the white background.
	inside := nrgbaAt(img, 200, 350)
	if inside.R > 240 && inside.G > 240 && inside.B > 240 {
		t.Errorf("pixel inside fill still white: %+v", inside)
	}

	// The background itself is opaque white.
	corner := nrgbaAt(img, 200, 2)
	if corner.A != 255 {
		t.Errorf("white background not opaque: %+v", corner)
	}
}

func TestNeonGlowBackground(t *testing.T) {
	res, err := NewNeonGlow().Render(context.Background(), broadChannels(),
		Options{Width: 400, Height: 400, Smoothing: 0})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := decodePNG(t, res.Image)

	// Top middle is far from every curve: pure background charcoal.
	c := nrgbaAt(img, 200, 2)
	if c.A != 255 {
		t.Errorf("background not opaque: %+v", c)
	}
	if c.R > 40 || c.G > 40 || c.B > 60 {
		t.Errorf("background not dark charcoal: %+v", c)
	}
}

func TestFramedGridVariants(t *testing.T) {
	opts := Options{Width: 400, Height: 400, Smoothing: 0}
	ch := broadChannels()

	masked, err := NewFramedGrid().Render(context.Background(), ch, opts)
	if err != nil {
		t.Fatalf("framed-grid: %v", err)
	}
	img := decodePNG(t, masked.Image)
	if c := nrgbaAt(img, 50, 50); c.A != 255 {
		t.Errorf("opaque variant has transparent pixel: %+v", c)
	}

	clear, err := NewFramedGridTransparent().Render(context.Background(), ch, opts)
	if err != nil {
		t.Fatalf("framed-grid-transparent: %v", err)
	}
	img = decodePNG(t, clear.Image)
	// (50, 20) sits well above every curve and glow pass, away from the
	// grid lines (nearest vertical at x=100, horizontal at y=133) and
	// inside the border frame.
	if c := nrgbaAt(img, 50, 20); c.A != 0 {
		t.Errorf("transparent variant has opaque pixel away from geometry: %+v", c)
	}

	if bytes.Equal(masked.Image, clear.Image) {
		t.Error("mask and maskless variants rendered identically")
	}
}

func TestHatchedHasStippleNotSolidFill(t *testing.T) {
	// Blue sits at constant half height; deep inside its area a solid
	// fill would color every pixel, a stipple leaves gaps.
	res, err := NewHatched().Render(context.Background(), broadChannels(),
		Options{Width: 400, Height: 400, Smoothing: 0})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := decodePNG(t, res.Image)

	colored, transparent := 0, 0
	for x := 100; x < 300; x++ {
		c := nrgbaAt(img, x, 380)
		if c.A > 128 {
			colored++
		} else if c.A == 0 {
			transparent++
		}
	}
	if colored == 0 {
		t.Error("no stipple dots found inside the curve area")
	}
	if transparent == 0 {
		t.Error("area is solidly filled; expected gaps between dots")
	}
}
