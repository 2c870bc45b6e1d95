package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache provides thread-safe caching of decoded images to avoid
// redundant disk reads.
//
// The cache stores decoded image.Image values keyed by their file path. The
// witness server keeps one cache for its lifetime so repeated tool calls on
// the same source image decode it once; the one-shot CLI uses a fresh cache
// per run.
//
// # Memory Management
//
// A decoded 4K image is roughly 33 MB as NRGBA. Cached images stay in memory
// until Evict is called; runs evict any preview path they overwrite.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Errors wrap ErrInputUnavailable so callers can distinguish a missing or
// undecodable source from later failures.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInputUnavailable, path, err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadBuffer decodes path into a buffer that keeps the file's native channel
// layout: grayscale files become depth 1, everything else depth 3.
func (c *ImageCache) LoadBuffer(path string) (*Buffer, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// LoadRGB decodes path into a depth-3 buffer regardless of the file's
// native layout.
func (c *ImageCache) LoadRGB(path string) (*Buffer, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	return RGBFromImage(img), nil
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes a source image as the witness tools see it.
type ImageInfo struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Depth         int    `json:"depth"`
	Format        string `json:"format"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	// Tier is the resolution tier whose dimensions match exactly, if any.
	Tier Tier `json:"tier,omitempty"`
}

// LoadImageInfo loads an image and reports its extents, native depth, format
// and matching resolution tier.
//
// The format comes from the file extension ("png", "jpeg", "gif", "bmp",
// "tiff"); anything else reports "unknown".
func LoadImageInfo(cache *ImageCache, path string, table ResolutionTable) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	}

	bounds := img.Bounds()
	info := &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Depth:         nativeDepth(img),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}
	for _, tier := range table.Tiers() {
		d, _ := table.Lookup(tier)
		if d.Width == info.Width && d.Height == info.Height {
			info.Tier = tier
			break
		}
	}
	return info, nil
}
