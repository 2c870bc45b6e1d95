package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// SubRegion copies the part of region that lies inside the buffer.
//
// Requests that run past the right or bottom edge shrink to what is
// available; a start beyond the edge yields an empty buffer with the
// clamped extents.
func (b *Buffer) SubRegion(region Region) *Buffer {
	r := region.Clamp(b.Height, b.Width)
	if r.Empty() {
		return MustBuffer(r.Height, r.Width, b.Depth)
	}
	return Crop(b, r)
}

// Crop extracts region from b with imaging.Crop, which intersects the
// rectangle with the image bounds. The round trip through image.Gray or
// image.NRGBA is lossless for both depths.
func Crop(b *Buffer, region Region) *Buffer {
	rect := image.Rect(region.StartCol, region.StartRow,
		region.StartCol+region.Width, region.StartRow+region.Height)
	cropped := RGBFromImage(imaging.Crop(ToImage(b), rect))
	if b.Depth == 1 {
		return cropped.Channel(0)
	}
	return cropped
}
