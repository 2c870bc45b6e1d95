package imaging

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

func nativeDepth(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	}
	return 3
}

// FromImage converts a decoded image into a buffer, keeping grayscale
// images at depth 1.
func FromImage(img image.Image) *Buffer {
	if nativeDepth(img) == 1 {
		return grayFromImage(img)
	}
	return RGBFromImage(img)
}

// RGBFromImage converts any decoded image into a depth-3 buffer. Colours are
// read non-premultiplied and alpha is dropped.
func RGBFromImage(img image.Image) *Buffer {
	src := imaging.Clone(img)
	h, w := src.Rect.Dy(), src.Rect.Dx()
	out := MustBuffer(h, w, 3)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		dst := out.Row(y)
		for x := 0; x < w; x++ {
			dst[x*3] = row[x*4]
			dst[x*3+1] = row[x*4+1]
			dst[x*3+2] = row[x*4+2]
		}
	}
	return out
}

func grayFromImage(img image.Image) *Buffer {
	b := img.Bounds()
	out := MustBuffer(b.Dy(), b.Dx(), 1)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			out.Pix[y*out.Width+x] = g.Y
		}
	}
	return out
}

// ToImage converts a buffer to *image.Gray (depth 1) or an opaque
// *image.NRGBA (depth 3).
func ToImage(b *Buffer) image.Image {
	rect := image.Rect(0, 0, b.Width, b.Height)
	if b.Depth == 1 {
		img := image.NewGray(rect)
		for y := 0; y < b.Height; y++ {
			copy(img.Pix[y*img.Stride:], b.Row(y))
		}
		return img
	}
	img := image.NewNRGBA(rect)
	for y := 0; y < b.Height; y++ {
		row := b.Row(y)
		for x := 0; x < b.Width; x++ {
			o := y*img.Stride + x*4
			img.Pix[o] = row[x*3]
			img.Pix[o+1] = row[x*3+1]
			img.Pix[o+2] = row[x*3+2]
			img.Pix[o+3] = 0xff
		}
	}
	return img
}

// Lanczos resamples a buffer to height x width with a Lanczos filter.
//
// This is a visual pre-processing step applied before a witness is built; it
// is not one of the circuit-exact kernels.
func Lanczos(b *Buffer, height, width int) (*Buffer, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: resize to %dx%d", ErrInvalidExtent, height, width)
	}
	resized := imaging.Resize(ToImage(b), width, height, imaging.Lanczos)
	rgb := RGBFromImage(resized)
	if b.Depth == 1 {
		return rgb.Channel(0), nil
	}
	return rgb, nil
}

// SavePreview writes a buffer as a PNG file, creating parent directories.
func SavePreview(b *Buffer, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create preview directory: %w", err)
		}
	}
	if err := imgio.Save(path, ToImage(b), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}
