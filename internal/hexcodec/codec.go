// Package hexcodec packs pixel rows into the hexadecimal words consumed by
// the hex-word circuits.
//
// Every run of GroupSize pixels in a row becomes one word. Each pixel
// contributes six hex digits (a grayscale value zero-padded to six digits,
// or BBGGRR for RGB) and is prepended to the word being built, so the last
// pixel of a group occupies the most significant digits. Pixels left over
// when the width is not a multiple of GroupSize are dropped; the circuits
// only ever see whole groups.
package hexcodec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/ironsheep/image-witness/internal/imaging"
)

const (
	// GroupSize is the number of pixels packed into one word.
	GroupSize = 10
	// PixelDigits is the number of hex digits a pixel occupies.
	PixelDigits = 6
	// WordDigits is the digit count of a full word, excluding "0x".
	WordDigits = GroupSize * PixelDigits
	// PaddingWord is the literal used for the zero rows around blur input.
	PaddingWord = "0x00"
)

var ErrMalformedWord = errors.New("malformed hex word")

// Encode packs every row of b into words. A row of width W yields W/10
// words.
func Encode(b *imaging.Buffer) [][]string {
	groups := lo.Filter(lo.Chunk(lo.Range(b.Width), GroupSize), func(g []int, _ int) bool {
		return len(g) == GroupSize
	})
	return lo.Map(lo.Range(b.Height), func(i, _ int) []string {
		return lo.Map(groups, func(g []int, _ int) string {
			return encodeGroup(b, i, g)
		})
	})
}

func encodeGroup(b *imaging.Buffer, row int, cols []int) string {
	var sb strings.Builder
	sb.Grow(2 + WordDigits)
	sb.WriteString("0x")
	for k := len(cols) - 1; k >= 0; k-- {
		writePixel(&sb, b.Pixel(row, cols[k]))
	}
	return sb.String()
}

func writePixel(sb *strings.Builder, px []uint8) {
	if len(px) == 1 {
		fmt.Fprintf(sb, "%06x", px[0])
		return
	}
	fmt.Fprintf(sb, "%02x%02x%02x", px[2], px[1], px[0])
}

// PaddingRow returns the all-zero row placed above and below the blur
// input: width/10 copies of PaddingWord.
func PaddingRow(width int) []string {
	return lo.Times(width/GroupSize, func(int) string { return PaddingWord })
}

// Decode unpacks words produced by Encode into a buffer of the given depth.
// Words shorter than a full group are left-padded with zeros, so
// PaddingWord decodes to ten black pixels.
func Decode(rows [][]string, depth int) (*imaging.Buffer, error) {
	if depth != 1 && depth != 3 {
		return nil, fmt.Errorf("%w: got %d", imaging.ErrInvalidDepth, depth)
	}
	width := 0
	if len(rows) > 0 {
		width = len(rows[0]) * GroupSize
	}
	out, err := imaging.NewBuffer(len(rows), width, depth)
	if err != nil {
		return nil, err
	}
	for i, words := range rows {
		if len(words)*GroupSize != width {
			return nil, fmt.Errorf("%w: row %d has %d words, want %d",
				imaging.ErrRaggedRows, i, len(words), width/GroupSize)
		}
		for w, word := range words {
			if err := decodeWord(out, i, w*GroupSize, word); err != nil {
				return nil, fmt.Errorf("row %d word %d: %w", i, w, err)
			}
		}
	}
	return out, nil
}

func decodeWord(out *imaging.Buffer, row, col int, word string) error {
	digits, ok := strings.CutPrefix(strings.ToLower(word), "0x")
	if !ok || digits == "" || len(digits) > WordDigits {
		return fmt.Errorf("%w: %q", ErrMalformedWord, word)
	}
	digits = strings.Repeat("0", WordDigits-len(digits)) + digits

	for k := 0; k < GroupSize; k++ {
		end := WordDigits - k*PixelDigits
		chunk := digits[end-PixelDigits : end]
		v, err := strconv.ParseUint(chunk, 16, 32)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrMalformedWord, word)
		}
		if out.Depth == 1 {
			if v > 0xff {
				return fmt.Errorf("%w: gray value %#x in %q", ErrMalformedWord, v, word)
			}
			out.Set(row, col+k, 0, uint8(v))
			continue
		}
		out.Set(row, col+k, 0, uint8(v))
		out.Set(row, col+k, 1, uint8(v>>8))
		out.Set(row, col+k, 2, uint8(v>>16))
	}
	return nil
}
