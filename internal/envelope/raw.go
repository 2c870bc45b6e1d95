package envelope

import (
	"github.com/ironsheep/image-witness/internal/imaging"
)

// BlurRaw is the raw-family blur document. Both buffers are grayscale.
type BlurRaw struct {
	Original   [][]int         `json:"original"`
	Blurred    [][]int         `json:"blurred"`
	Height     int             `json:"height"`
	Width      int             `json:"width"`
	BlurRegion *imaging.Region `json:"blur_region"`
	Resolution imaging.Tier    `json:"resolution"`
}

// NewBlurRaw builds a BlurRaw. region is nil when the whole image minus its
// border was blurred.
func NewBlurRaw(original, blurred *imaging.Buffer, region *imaging.Region, tier imaging.Tier) *BlurRaw {
	return &BlurRaw{
		Original:   original.GrayRows(),
		Blurred:    blurred.GrayRows(),
		Height:     original.Height,
		Width:      original.Width,
		BlurRegion: region,
		Resolution: tier,
	}
}

func (e *BlurRaw) Summary() Summary {
	return newSummary(FamilyRaw, Blur, e.Original, e.Blurred)
}

// CropRaw is the raw-family crop document. Both buffers are grayscale.
type CropRaw struct {
	Original   [][]int      `json:"original"`
	Cropped    [][]int      `json:"cropped"`
	Height     int          `json:"height"`
	Width      int          `json:"width"`
	CropX      int          `json:"crop_x"`
	CropY      int          `json:"crop_y"`
	CropWidth  int          `json:"crop_width"`
	CropHeight int          `json:"crop_height"`
	Resolution imaging.Tier `json:"resolution"`
}

// NewCropRaw builds a CropRaw. The reported crop size is the size actually
// extracted, after clamping; a crop with no rows reports a width of 0.
func NewCropRaw(original, cropped *imaging.Buffer, x, y int, tier imaging.Tier) *CropRaw {
	width := cropped.Width
	if cropped.Height == 0 {
		width = 0
	}
	return &CropRaw{
		Original:   original.GrayRows(),
		Cropped:    cropped.GrayRows(),
		Height:     original.Height,
		Width:      original.Width,
		CropX:      x,
		CropY:      y,
		CropWidth:  width,
		CropHeight: cropped.Height,
		Resolution: tier,
	}
}

func (e *CropRaw) Summary() Summary {
	return newSummary(FamilyRaw, Crop, e.Original, e.Cropped)
}

// GrayscaleRaw is the raw-family grayscale document. Original holds
// [R, G, B] triples.
type GrayscaleRaw struct {
	Original   [][][3]int   `json:"original"`
	Grayscale  [][]int      `json:"grayscale"`
	Height     int          `json:"height"`
	Width      int          `json:"width"`
	Resolution imaging.Tier `json:"resolution"`
}

func NewGrayscaleRaw(original, gray *imaging.Buffer, tier imaging.Tier) *GrayscaleRaw {
	return &GrayscaleRaw{
		Original:   original.RGBRows(),
		Grayscale:  gray.GrayRows(),
		Height:     original.Height,
		Width:      original.Width,
		Resolution: tier,
	}
}

func (e *GrayscaleRaw) Summary() Summary {
	return newSummary(FamilyRaw, Grayscale, e.Original, e.Grayscale)
}

// ResizeRaw is the raw-family resize document. Both buffers are grayscale.
type ResizeRaw struct {
	Original       [][]int      `json:"original"`
	Resized        [][]int      `json:"resized"`
	OriginalHeight int          `json:"original_height"`
	OriginalWidth  int          `json:"original_width"`
	ResizedHeight  int          `json:"resized_height"`
	ResizedWidth   int          `json:"resized_width"`
	FromResolution imaging.Tier `json:"from_resolution"`
	ToResolution   imaging.Tier `json:"to_resolution"`
}

func NewResizeRaw(original, resized *imaging.Buffer, from, to imaging.Tier) *ResizeRaw {
	return &ResizeRaw{
		Original:       original.GrayRows(),
		Resized:        resized.GrayRows(),
		OriginalHeight: original.Height,
		OriginalWidth:  original.Width,
		ResizedHeight:  resized.Height,
		ResizedWidth:   resized.Width,
		FromResolution: from,
		ToResolution:   to,
	}
}

func (e *ResizeRaw) Summary() Summary {
	return newSummary(FamilyRaw, Resize, e.Original, e.Resized)
}
