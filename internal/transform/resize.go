package transform

import (
	"fmt"
	"math"

	"github.com/ironsheep/image-witness/internal/imaging"
)

// Resize dispatches to the kernel selected by alg.
func Resize(alg ResizeAlgorithm, src *imaging.Buffer, height, width int) (*imaging.Buffer, error) {
	switch alg {
	case WeightedBilinear:
		return ResizeBilinear(src, height, width)
	case RatioIndexed:
		return ResizeRatio(src, height, width)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, alg)
	}
}

func checkTarget(src *imaging.Buffer, height, width int) error {
	if height < 1 || width < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTarget, height, width)
	}
	if src.Height < 1 || src.Width < 1 {
		return fmt.Errorf("%w: empty source %s", ErrDimensionMismatch, src)
	}
	return nil
}

// bilinearAxis holds the per-coordinate terms of the weighted bilinear
// resize along one axis.
type bilinearAxis struct {
	lo, hi int
	rem    int64
}

// bilinearAxes precomputes, for every output coordinate along an axis of
// source extent n and target extent m, the low/high source index and the
// integer remainder weight.
//
// lo = floor((n-1)*k / (m-1)); hi equals lo only when that division is
// exact, otherwise min(lo+1, n-1). With m == 1 both the index and the
// remainder are 0.
func bilinearAxes(n, m int) []bilinearAxis {
	axes := make([]bilinearAxis, m)
	for k := range axes {
		if m == 1 {
			axes[k] = bilinearAxis{}
			continue
		}
		num := (n - 1) * k
		lo := num / (m - 1)
		hi := lo
		if lo*(m-1) != num {
			hi = min(lo+1, n-1)
		}
		axes[k] = bilinearAxis{lo: lo, hi: hi, rem: int64(num % (m - 1))}
	}
	return axes
}

// ResizeBilinear is the denominator-weighted bilinear resize.
//
// For output cell (i, j) with corner samples a=(yl,xl), b=(yl,xh),
// c=(yh,xl), d=(yh,xh) and remainders xr, yr:
//
//	s   = a*(W'-1-xr)*(H'-1-yr) + b*xr*(H'-1-yr) + c*yr*(W'-1-xr) + d*xr*yr
//	out = round(s / ((W'-1)*(H'-1)))
//
// When either target extent is 1 the weights collapse and the output is the
// rounded mean of the four corners. Rounding is half away from zero. Each
// channel is resized independently.
func ResizeBilinear(src *imaging.Buffer, height, width int) (*imaging.Buffer, error) {
	if err := checkTarget(src, height, width); err != nil {
		return nil, err
	}

	xs := bilinearAxes(src.Width, width)
	ys := bilinearAxes(src.Height, height)
	wp, hp := int64(width-1), int64(height-1)
	degenerate := width == 1 || height == 1
	denom := float64(wp * hp)

	out := imaging.MustBuffer(height, width, src.Depth)
	forEachRow(height, func(i int) {
		y := ys[i]
		dst := out.Row(i)
		for j, x := range xs {
			for ch := 0; ch < src.Depth; ch++ {
				a := int64(src.At(y.lo, x.lo, ch))
				b := int64(src.At(y.lo, x.hi, ch))
				c := int64(src.At(y.hi, x.lo, ch))
				d := int64(src.At(y.hi, x.hi, ch))

				var v float64
				if degenerate {
					v = math.Round(float64(a+b+c+d) / 4)
				} else {
					s := a*(wp-x.rem)*(hp-y.rem) +
						b*x.rem*(hp-y.rem) +
						c*y.rem*(wp-x.rem) +
						d*x.rem*y.rem
					v = math.Round(float64(s) / denom)
				}
				dst[j*src.Depth+ch] = clampByte(int64(v))
			}
		}
	})
	return out, nil
}
