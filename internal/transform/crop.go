package transform

import (
	"fmt"

	"github.com/ironsheep/image-witness/internal/imaging"
)

const (
	cropXShift = 1 << 24
	cropYShift = 1 << 12
)

// Crop extracts the rectangle whose top-left corner is (x, y). Width and
// height shrink to what remains inside src.
func Crop(src *imaging.Buffer, x, y, width, height int) *imaging.Buffer {
	return src.SubRegion(imaging.Region{StartRow: y, StartCol: x, Height: height, Width: width})
}

// CropSize resolves the crop extent: explicit values win, missing ones come
// from the tier's dimensions.
func CropSize(table imaging.ResolutionTable, tier imaging.Tier, width, height *int) (imaging.Dimensions, error) {
	d, err := table.Lookup(tier)
	if err != nil {
		return imaging.Dimensions{}, err
	}
	if width != nil {
		d.Width = *width
	}
	if height != nil {
		d.Height = *height
	}
	return d, nil
}

// CheckCropFits fails with ErrDimensionMismatch unless a size crop at (x, y)
// lies entirely inside src.
func CheckCropFits(src *imaging.Buffer, x, y int, size imaging.Dimensions) error {
	if src.Width < x+size.Width || src.Height < y+size.Height {
		return fmt.Errorf("%w: image is %dx%d, need at least %dx%d",
			ErrDimensionMismatch, src.Width, src.Height, x+size.Width, y+size.Height)
	}
	return nil
}

// PackCropInfo packs crop coordinates into one integer, x*2^24 + y*2^12.
func PackCropInfo(x, y int) int64 {
	return int64(x)*cropXShift + int64(y)*cropYShift
}

// UnpackCropInfo splits a packed crop integer back into coordinates. y
// occupies the 12 bits above the low 12.
func UnpackCropInfo(info int64) (x, y int) {
	return int(info / cropXShift), int((info % cropXShift) / cropYShift)
}
