package envelope

import (
	"fmt"

	"github.com/ironsheep/image-witness/internal/hexcodec"
	"github.com/ironsheep/image-witness/internal/imaging"
	"github.com/ironsheep/image-witness/internal/transform"
)

// TransformHex is the hex-family document shared by blur, grayscale and
// resize: encoded original and transformed buffers.
type TransformHex struct {
	Original    [][]string `json:"original"`
	Transformed [][]string `json:"transformed"`

	transform Transform
}

// NewBlurHex encodes a blur pair. The original gains one PaddingRow above
// and below, matching the zero border the circuit convolves against.
func NewBlurHex(original, blurred *imaging.Buffer) *TransformHex {
	pad := hexcodec.PaddingRow(original.Width)
	rows := make([][]string, 0, original.Height+2)
	rows = append(rows, pad)
	rows = append(rows, hexcodec.Encode(original)...)
	rows = append(rows, pad)
	return &TransformHex{
		Original:    rows,
		Transformed: hexcodec.Encode(blurred),
		transform:   Blur,
	}
}

// NewGrayscaleHex encodes a grayscale pair.
func NewGrayscaleHex(original, gray *imaging.Buffer) *TransformHex {
	return &TransformHex{
		Original:    hexcodec.Encode(original),
		Transformed: hexcodec.Encode(gray),
		transform:   Grayscale,
	}
}

// NewResizeHex encodes a resize pair.
func NewResizeHex(original, resized *imaging.Buffer) *TransformHex {
	return &TransformHex{
		Original:    hexcodec.Encode(original),
		Transformed: hexcodec.Encode(resized),
		transform:   Resize,
	}
}

func (e *TransformHex) Summary() Summary {
	return newSummary(FamilyHex, e.transform, e.Original, e.Transformed)
}

// CropHex is the hex-family crop document. The circuit crops by itself, so
// only the full original and the packed coordinates are emitted.
type CropHex struct {
	Original [][]string `json:"original"`
	Info     int64      `json:"info"`
}

func NewCropHex(original *imaging.Buffer, x, y int) *CropHex {
	return &CropHex{
		Original: hexcodec.Encode(original),
		Info:     transform.PackCropInfo(x, y),
	}
}

func (e *CropHex) Summary() Summary {
	return newSummary[string, string](FamilyHex, Crop, e.Original, nil)
}

// FactorHex is the hex-family brightness and contrast document. Factor is
// the real factor scaled by ten and rounded.
type FactorHex struct {
	Original    [][]string `json:"original"`
	Transformed [][]string `json:"transformed"`
	Factor      int        `json:"factor"`

	transform Transform
}

// NewFactorHex encodes a brightness or contrast pair.
func NewFactorHex(t Transform, original, transformed *imaging.Buffer, factor float64) (*FactorHex, error) {
	if t != Brightness && t != Contrast {
		return nil, fmt.Errorf("%w: %s takes no factor", ErrUnsupported, t)
	}
	return &FactorHex{
		Original:    hexcodec.Encode(original),
		Transformed: hexcodec.Encode(transformed),
		Factor:      transform.ScaledFactor(factor),
		transform:   t,
	}, nil
}

func (e *FactorHex) Summary() Summary {
	return newSummary(FamilyHex, e.transform, e.Original, e.Transformed)
}
