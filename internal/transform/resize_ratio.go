package transform

import (
	"fmt"

	"github.com/ironsheep/image-witness/internal/imaging"
)

// RatioSpecialHeight is the source height whose resize alternates corner
// weights by output-row parity.
const RatioSpecialHeight = 720

var (
	evenRowWeight = float64(2) / 3
	oddRowWeight  = float64(1) / 3
)

// ratioIndex returns trunc(k * ratio).
func ratioIndex(k int, ratio float64) int {
	return int(float64(k) * ratio)
}

// ResizeRatio is the ratio-indexed resize.
//
// With xr = W/W' and yr = H/H', cell (i, j) reads the corners at
// xl = trunc(j*xr), xh = xl+1 and yl = trunc(i*yr), yh = yl+1. High indices
// are not clamped; a target whose last cell would read past the source edge
// is rejected with ErrDimensionMismatch before anything is computed.
//
// Sources that are RatioSpecialHeight rows tall weight the top corners by
// 2/3 on even output rows and 1/3 on odd ones, the bottom corners by the
// complement, and halve the sum. All other sources give each corner weight
// 1/2 and halve the sum. Results are truncated.
func ResizeRatio(src *imaging.Buffer, height, width int) (*imaging.Buffer, error) {
	if err := checkTarget(src, height, width); err != nil {
		return nil, err
	}

	xRatio := float64(src.Width) / float64(width)
	yRatio := float64(src.Height) / float64(height)
	if last := ratioIndex(width-1, xRatio) + 1; last >= src.Width {
		return nil, fmt.Errorf("%w: column %d of a %d-wide source needed for width %d",
			ErrDimensionMismatch, last, src.Width, width)
	}
	if last := ratioIndex(height-1, yRatio) + 1; last >= src.Height {
		return nil, fmt.Errorf("%w: row %d of a %d-tall source needed for height %d",
			ErrDimensionMismatch, last, src.Height, height)
	}

	xl := make([]int, width)
	for j := range xl {
		xl[j] = ratioIndex(j, xRatio)
	}
	special := src.Height == RatioSpecialHeight

	out := imaging.MustBuffer(height, width, src.Depth)
	forEachRow(height, func(i int) {
		yl := ratioIndex(i, yRatio)
		top, bottom := src.Row(yl), src.Row(yl+1)
		dst := out.Row(i)

		w := evenRowWeight
		if i%2 == 1 {
			w = oddRowWeight
		}
		cw := 1 - w

		for j, x := range xl {
			lo, hi := x*src.Depth, (x+1)*src.Depth
			for ch := 0; ch < src.Depth; ch++ {
				a, b := top[lo+ch], top[hi+ch]
				c, d := bottom[lo+ch], bottom[hi+ch]

				if !special {
					// a/2 + b/2 + c/2 + d/2, halved: every term is exact in
					// binary floating point, so integer division matches.
					dst[j*src.Depth+ch] = uint8((uint32(a) + uint32(b) + uint32(c) + uint32(d)) / 4)
					continue
				}
				// Explicit conversions keep each product rounded on its own
				// instead of fused into the following addition.
				sum := float64(float64(a)*w) + float64(float64(b)*w)
				sum = float64(sum + float64(float64(c)*cw))
				sum = float64(sum + float64(float64(d)*cw))
				dst[j*src.Depth+ch] = truncByte(sum / 2)
			}
		}
	})
	return out, nil
}
