package transform

import (
	"fmt"

	"github.com/ironsheep/image-witness/internal/imaging"
)

// BlurOptions carries the per-variant parameters of Blur. Region applies to
// BorderExcludingAverage; Kernel and Weight apply to ZeroPaddedConvolution,
// where a nil Kernel selects BlurZeroPadded.
type BlurOptions struct {
	Region *imaging.Region
	Kernel Kernel
	Weight int
}

// Blur dispatches to the kernel selected by alg.
func Blur(alg BlurAlgorithm, src *imaging.Buffer, opts BlurOptions) (*imaging.Buffer, error) {
	switch alg {
	case BorderExcludingAverage:
		return BlurBorderExcluding(src, opts.Region), nil
	case ZeroPaddedConvolution:
		if opts.Kernel == nil {
			return BlurZeroPadded(src), nil
		}
		return Convolve(src, opts.Kernel, opts.Weight)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, alg)
	}
}

// blurBounds resolves the half-open row and column ranges that
// BlurBorderExcluding rewrites.
func blurBounds(height, width int, region *imaging.Region) (r0, r1, c0, c1 int) {
	if region == nil {
		return 1, height - 1, 1, width - 1
	}
	r1 = min(region.StartRow+region.Height, height-1)
	c1 = min(region.StartCol+region.Width, width-1)
	return max(region.StartRow, 1), r1, max(region.StartCol, 1), c1
}

// BlurBorderExcluding applies a 3x3 box average inside region.
//
// The output starts as a copy of src. Cells in rows
// [start_row, min(start_row+height, H-1)) and columns
// [start_col, min(start_col+width, W-1)) become round(sum/9) of their
// neighbourhood in src; region starts are raised to 1 so every rewritten
// cell has all nine neighbours. A nil region covers everything except the
// one-pixel border. Cells outside the region keep their original value.
func BlurBorderExcluding(src *imaging.Buffer, region *imaging.Region) *imaging.Buffer {
	out := src.Clone()
	r0, r1, c0, c1 := blurBounds(src.Height, src.Width, region)
	if r0 >= r1 || c0 >= c1 {
		return out
	}

	depth := src.Depth
	forEachRow(r1-r0, func(k int) {
		i := r0 + k
		up, mid, down := src.Row(i-1), src.Row(i), src.Row(i+1)
		dst := out.Row(i)
		for j := c0; j < c1; j++ {
			for ch := 0; ch < depth; ch++ {
				l, c, r := (j-1)*depth+ch, j*depth+ch, (j+1)*depth+ch
				sum := int64(up[l]) + int64(up[c]) + int64(up[r]) +
					int64(mid[l]) + int64(mid[c]) + int64(mid[r]) +
					int64(down[l]) + int64(down[c]) + int64(down[r])
				// round(sum/9): a remainder of 5..8 rounds up, no ties exist.
				dst[c] = clampByte((sum + 4) / 9)
			}
		}
	})
	return out
}
