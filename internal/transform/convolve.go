package transform

import (
	"fmt"

	"github.com/ironsheep/image-witness/internal/imaging"
)

// Kernel is a square convolution kernel with an odd side length.
type Kernel [][]int

// BoxKernel returns an n x n kernel of ones.
func BoxKernel(n int) Kernel {
	k := make(Kernel, n)
	for i := range k {
		k[i] = make([]int, n)
		for j := range k[i] {
			k[i][j] = 1
		}
	}
	return k
}

// Validate reports whether k is non-empty, square and of odd size.
func (k Kernel) Validate() error {
	n := len(k)
	if n == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidKernel)
	}
	if n%2 == 0 {
		return fmt.Errorf("%w: size %d is even", ErrInvalidKernel, n)
	}
	for i, row := range k {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalidKernel, i, len(row), n)
		}
	}
	return nil
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Convolve convolves each channel of src with k against a zero border of
// width len(k)/2, floor-divides every sum by weight and clamps to [0, 255].
//
// Border cells are recomputed like any other cell; the zero padding pulls
// them toward black. A weight of 0 is treated as 1.
func Convolve(src *imaging.Buffer, k Kernel, weight int) (*imaging.Buffer, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	if weight == 0 {
		weight = 1
	}

	n := len(k)
	border := n / 2
	depth := src.Depth
	w64 := int64(weight)

	out := imaging.MustBuffer(src.Height, src.Width, depth)
	forEachRow(src.Height, func(i int) {
		dst := out.Row(i)
		for j := 0; j < src.Width; j++ {
			for ch := 0; ch < depth; ch++ {
				var sum int64
				for m := 0; m < n; m++ {
					y := i + m - border
					if y < 0 || y >= src.Height {
						continue
					}
					row := src.Row(y)
					for q := 0; q < n; q++ {
						x := j + q - border
						if x < 0 || x >= src.Width {
							continue
						}
						sum += int64(row[x*depth+ch]) * int64(k[m][q])
					}
				}
				dst[j*depth+ch] = clampByte(floorDiv(sum, w64))
			}
		}
	})
	return out, nil
}

// BlurZeroPadded is Convolve with the 3x3 box kernel and weight 9.
func BlurZeroPadded(src *imaging.Buffer) *imaging.Buffer {
	out, _ := Convolve(src, BoxKernel(3), 9)
	return out
}
