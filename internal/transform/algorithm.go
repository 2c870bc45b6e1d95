package transform

import (
	"fmt"
	"strings"
)

// ResizeAlgorithm selects one of the two circuit-specific resize kernels.
type ResizeAlgorithm int

const (
	// WeightedBilinear is the denominator-weighted bilinear resize of the
	// raw-array circuits.
	WeightedBilinear ResizeAlgorithm = iota
	// RatioIndexed is the ratio-indexed resize of the hex-word circuits,
	// with its special case for 720-row sources.
	RatioIndexed
)

var resizeNames = map[ResizeAlgorithm]string{
	WeightedBilinear: "weighted-bilinear",
	RatioIndexed:     "ratio-indexed",
}

func (a ResizeAlgorithm) String() string {
	if s, ok := resizeNames[a]; ok {
		return s
	}
	return fmt.Sprintf("ResizeAlgorithm(%d)", int(a))
}

// ParseResizeAlgorithm parses the names returned by String.
func ParseResizeAlgorithm(s string) (ResizeAlgorithm, error) {
	for a, name := range resizeNames {
		if strings.EqualFold(s, name) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: resize %q", ErrUnknownAlgorithm, s)
}

// BlurAlgorithm selects one of the two circuit-specific box blurs.
type BlurAlgorithm int

const (
	// BorderExcludingAverage averages 3x3 neighbourhoods inside a region
	// and leaves every other pixel untouched.
	BorderExcludingAverage BlurAlgorithm = iota
	// ZeroPaddedConvolution convolves every pixel against a zero-padded
	// border.
	ZeroPaddedConvolution
)

var blurNames = map[BlurAlgorithm]string{
	BorderExcludingAverage: "border-excluding",
	ZeroPaddedConvolution:  "zero-padded",
}

func (a BlurAlgorithm) String() string {
	if s, ok := blurNames[a]; ok {
		return s
	}
	return fmt.Sprintf("BlurAlgorithm(%d)", int(a))
}

// ParseBlurAlgorithm parses the names returned by String.
func ParseBlurAlgorithm(s string) (BlurAlgorithm, error) {
	for a, name := range blurNames {
		if strings.EqualFold(s, name) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: blur %q", ErrUnknownAlgorithm, s)
}

// GrayscaleAlgorithm selects the RGB to luma conversion.
type GrayscaleAlgorithm int

const (
	// WeightedThousandths is floor((299R + 587G + 114B) / 1000).
	WeightedThousandths GrayscaleAlgorithm = iota
	// LumaFixed16 is (19595R + 38470G + 7471B + 0x8000) >> 16, the
	// conversion image decoders apply when a file is opened as grayscale.
	LumaFixed16
)

var grayscaleNames = map[GrayscaleAlgorithm]string{
	WeightedThousandths: "thousandths",
	LumaFixed16:         "luma16",
}

func (a GrayscaleAlgorithm) String() string {
	if s, ok := grayscaleNames[a]; ok {
		return s
	}
	return fmt.Sprintf("GrayscaleAlgorithm(%d)", int(a))
}

// ParseGrayscaleAlgorithm parses the names returned by String.
func ParseGrayscaleAlgorithm(s string) (GrayscaleAlgorithm, error) {
	for a, name := range grayscaleNames {
		if strings.EqualFold(s, name) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: grayscale %q", ErrUnknownAlgorithm, s)
}
