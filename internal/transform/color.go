package transform

import (
	"math"

	"github.com/ironsheep/image-witness/internal/imaging"
)

// ContrastMean is the fixed anchor of the contrast kernel, kept in
// thousandths the way the circuit stores it.
const ContrastMean = 128 * 1000

func grayThousandths(r, g, b uint8) uint8 {
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b)) / 1000)
}

func grayLuma16(r, g, b uint8) uint8 {
	return uint8((19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 0x8000) >> 16)
}

// Grayscale converts an RGB buffer to a depth-1 buffer with alg. A depth-1
// input is returned as a copy.
func Grayscale(src *imaging.Buffer, alg GrayscaleAlgorithm) *imaging.Buffer {
	if src.Depth == 1 {
		return src.Clone()
	}
	conv := grayThousandths
	if alg == LumaFixed16 {
		conv = grayLuma16
	}

	out := imaging.MustBuffer(src.Height, src.Width, 1)
	for i := 0; i < src.Height*src.Width; i++ {
		p := src.Pix[i*3 : i*3+3]
		out.Pix[i] = conv(p[0], p[1], p[2])
	}
	return out
}

// Brightness multiplies every channel by factor, clamps to [0, 255] and
// truncates.
func Brightness(src *imaging.Buffer, factor float64) *imaging.Buffer {
	out := imaging.MustBuffer(src.Height, src.Width, src.Depth)
	for i, v := range src.Pix {
		out.Pix[i] = truncByte(float64(v) * factor)
	}
	return out
}

// Contrast stretches every channel around ContrastMean/1000:
//
//	out = clamp((v - mean)*factor + mean, 0, 255)
//
// truncated toward zero.
func Contrast(src *imaging.Buffer, factor float64) *imaging.Buffer {
	mean := float64(ContrastMean) / 1000
	out := imaging.MustBuffer(src.Height, src.Width, src.Depth)
	for i, v := range src.Pix {
		out.Pix[i] = truncByte(float64((float64(v)-mean)*factor) + mean)
	}
	return out
}

// ScaledFactor is the integer form of a brightness or contrast factor
// carried in the envelope: round(factor * 10).
func ScaledFactor(factor float64) int {
	return int(math.Round(factor * 10))
}
