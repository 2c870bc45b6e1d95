package imaging

import (
	"fmt"
)

// Buffer is an image held as a rectangular matrix of 8-bit values.
//
// Depth is 1 for grayscale and 3 for RGB. Pix holds Height*Width*Depth
// values in row-major order with channels interleaved.
type Buffer struct {
	Height int
	Width  int
	Depth  int
	Pix    []uint8
}

// NewBuffer allocates a zero-filled buffer.
//
// Zero extents are allowed and produce an empty buffer; they appear when a
// crop starts past the image edge.
func NewBuffer(height, width, depth int) (*Buffer, error) {
	if depth != 1 && depth != 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	if height < 0 || width < 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidExtent, height, width)
	}
	return &Buffer{
		Height: height,
		Width:  width,
		Depth:  depth,
		Pix:    make([]uint8, height*width*depth),
	}, nil
}

// MustBuffer is NewBuffer for callers that already validated the shape.
func MustBuffer(height, width, depth int) *Buffer {
	b, err := NewBuffer(height, width, depth)
	if err != nil {
		panic(err)
	}
	return b
}

// FromRows builds a grayscale buffer from nested rows.
func FromRows(rows [][]uint8) (*Buffer, error) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	b, err := NewBuffer(len(rows), width, 1)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRaggedRows, i, len(row), width)
		}
		copy(b.Pix[i*width:], row)
	}
	return b, nil
}

// FromPixels builds an RGB buffer from nested rows of (R, G, B) triples.
func FromPixels(rows [][][3]uint8) (*Buffer, error) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	b, err := NewBuffer(len(rows), width, 3)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrRaggedRows, i, len(row), width)
		}
		for j, px := range row {
			copy(b.Pix[b.offset(i, j):], px[:])
		}
	}
	return b, nil
}

// Rows returns the number of rows.
func (b *Buffer) Rows() int { return b.Height }

// Cols returns the number of columns.
func (b *Buffer) Cols() int { return b.Width }

// Stride is the distance in Pix between vertically adjacent values.
func (b *Buffer) Stride() int { return b.Width * b.Depth }

func (b *Buffer) offset(row, col int) int {
	return row*b.Width*b.Depth + col*b.Depth
}

// At returns channel ch of the pixel at (row, col).
func (b *Buffer) At(row, col, ch int) uint8 {
	return b.Pix[b.offset(row, col)+ch]
}

// Set stores v into channel ch of the pixel at (row, col).
func (b *Buffer) Set(row, col, ch int, v uint8) {
	b.Pix[b.offset(row, col)+ch] = v
}

// Pixel returns the channels of the pixel at (row, col). The slice aliases
// the buffer.
func (b *Buffer) Pixel(row, col int) []uint8 {
	o := b.offset(row, col)
	return b.Pix[o : o+b.Depth : o+b.Depth]
}

// Row returns the values of a row. The slice aliases the buffer.
func (b *Buffer) Row(row int) []uint8 {
	s := b.Stride()
	return b.Pix[row*s : (row+1)*s : (row+1)*s]
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Height: b.Height, Width: b.Width, Depth: b.Depth, Pix: pix}
}

// Channel extracts channel ch into a new depth-1 buffer.
func (b *Buffer) Channel(ch int) *Buffer {
	out := MustBuffer(b.Height, b.Width, 1)
	for i := 0; i < b.Height*b.Width; i++ {
		out.Pix[i] = b.Pix[i*b.Depth+ch]
	}
	return out
}

// GrayRows returns the buffer as nested rows of scalars. Only valid for
// depth-1 buffers.
func (b *Buffer) GrayRows() [][]int {
	rows := make([][]int, b.Height)
	for i := range rows {
		row := make([]int, b.Width)
		for j := range row {
			row[j] = int(b.Pix[i*b.Width+j])
		}
		rows[i] = row
	}
	return rows
}

// RGBRows returns the buffer as nested rows of [R, G, B] triples. Only valid
// for depth-3 buffers.
func (b *Buffer) RGBRows() [][][3]int {
	rows := make([][][3]int, b.Height)
	for i := range rows {
		row := make([][3]int, b.Width)
		for j := range row {
			o := b.offset(i, j)
			row[j] = [3]int{int(b.Pix[o]), int(b.Pix[o+1]), int(b.Pix[o+2])}
		}
		rows[i] = row
	}
	return rows
}

// String implements fmt.Stringer.
func (b *Buffer) String() string {
	return fmt.Sprintf("%dx%dx%d", b.Height, b.Width, b.Depth)
}
