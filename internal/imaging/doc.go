// Package imaging provides the in-memory pixel model shared by every transform
// kernel, together with the boundary code that turns image files into pixel
// buffers and back.
//
// # Pixel Buffers
//
// A Buffer is a rectangular matrix of 8-bit values with a channel depth of
// either 1 (grayscale) or 3 (RGB). Storage is a flat slice in row-major order
// with channels interleaved, the same layout image.RGBA uses:
//
//	offset(row, col, ch) = row*Width*Depth + col*Depth + ch
//
// Buffers are treated as values. Kernels read their input and always allocate
// a fresh output, so a source buffer can be shared freely between goroutines
// as long as nobody calls Set on it.
//
// # Coordinate System
//
// Rows grow downward from 0, columns grow rightward from 0. Regions are
// described as (StartRow, StartCol, Height, Width) and are clamped to the
// buffer instead of being rejected.
//
// # Resolution Tiers
//
// The SD/HD/FHD/4K tags used throughout the witness tooling resolve through a
// ResolutionTable. The table is immutable; overrides produce a new table.
//
// # Loading
//
// ImageCache decodes PNG, JPEG, GIF, BMP, TIFF and WebP files. Decoded images
// are converted to buffers without premultiplying alpha; the alpha channel is
// discarded.
package imaging
