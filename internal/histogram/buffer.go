package histogram

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrDecode is returned when input bytes cannot be interpreted as a
	// rectangular 3-channel pixel buffer.
	ErrDecode = errors.New("histogram: cannot decode pixel data")

	// ErrEmptyImage is returned when the decoded image has zero area.
	ErrEmptyImage = errors.New("histogram: zero-area image")
)

// PixelBuffer holds decoded RGB pixel data, packed row-major with three
// bytes per pixel. It is never mutated after construction.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width*Height*3
}

// NewPixelBuffer wraps raw packed RGB samples, validating shape.
func NewPixelBuffer(width, height int, pix []uint8) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}
	if len(pix) != width*height*3 {
		return nil, fmt.Errorf("%w: %d samples for %dx%d buffer", ErrDecode, len(pix), width, height)
	}
	return &PixelBuffer{Width: width, Height: height, Pix: pix}, nil
}

// Decode reads an encoded image (JPEG, PNG, GIF, WebP or TIFF) and converts
// it to a packed RGB buffer. Alpha and palette sources are flattened the same
// way the standard NRGBA conversion does.
func Decode(r io.Reader) (*PixelBuffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return FromImage(img)
}

// FromImage converts any image.Image into a PixelBuffer.
func FromImage(img image.Image) (*PixelBuffer, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}

	pix := make([]uint8, 0, width*height*3)
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < height; y++ {
			row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
			for x := 0; x < width; x++ {
				pix = append(pix, row[x*4], row[x*4+1], row[x*4+2])
			}
		}
		return &PixelBuffer{Width: width, Height: height, Pix: pix}, nil
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix = append(pix, c.R, c.G, c.B)
		}
	}
	return &PixelBuffer{Width: width, Height: height, Pix: pix}, nil
}

// RGBAt returns the sample triple at (x, y). Callers are expected to stay in
// bounds; this is a hot path with no checks.
func (p *PixelBuffer) RGBAt(x, y int) (uint8, uint8, uint8) {
	i := (y*p.Width + x) * 3
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2]
}

// toNRGBA rebuilds a standard image from the packed buffer, used when a
// resampling filter needs an image.Image.
func (p *PixelBuffer) toNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			r, g, b := p.RGBAt(x, y)
			i := y*img.Stride + x*4
			img.Pix[i] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = 0xFF
		}
	}
	return img
}
