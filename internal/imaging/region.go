package imaging

import (
	"encoding/json"
	"fmt"
)

// Region is a rectangular sub-area of a buffer.
//
// JSON form is the four-element array [start_row, start_col, height, width].
type Region struct {
	StartRow int
	StartCol int
	Height   int
	Width    int
}

// Clamp returns the part of the region that lies inside an image of the
// given extents. Negative starts are raised to 0; extents shrink to
// min(requested, available) and never go below 0.
func (r Region) Clamp(height, width int) Region {
	out := r
	if out.StartRow < 0 {
		out.Height += out.StartRow
		out.StartRow = 0
	}
	if out.StartCol < 0 {
		out.Width += out.StartCol
		out.StartCol = 0
	}
	out.StartRow = min(out.StartRow, height)
	out.StartCol = min(out.StartCol, width)
	out.Height = max(0, min(out.Height, height-out.StartRow))
	out.Width = max(0, min(out.Width, width-out.StartCol))
	return out
}

// Empty reports whether the region covers no pixels.
func (r Region) Empty() bool {
	return r.Height <= 0 || r.Width <= 0
}

// Array returns the region as [start_row, start_col, height, width].
func (r Region) Array() [4]int {
	return [4]int{r.StartRow, r.StartCol, r.Height, r.Width}
}

// RegionFromArray is the inverse of Array.
func RegionFromArray(a [4]int) Region {
	return Region{StartRow: a[0], StartCol: a[1], Height: a[2], Width: a[3]}
}

// MarshalJSON implements json.Marshaler.
func (r Region) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Array())
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Region) UnmarshalJSON(data []byte) error {
	var a []int
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if len(a) != 4 {
		return fmt.Errorf("region needs 4 values (start_row, start_col, height, width), got %d", len(a))
	}
	*r = RegionFromArray([4]int(a))
	return nil
}

// String implements fmt.Stringer.
func (r Region) String() string {
	return fmt.Sprintf("rows %d-%d, cols %d-%d", r.StartRow, r.StartRow+r.Height, r.StartCol, r.StartCol+r.Width)
}
