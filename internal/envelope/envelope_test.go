package envelope

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-witness/internal/hexcodec"
	"github.com/ironsheep/image-witness/internal/imaging"
)

func grayImage(h, w int) *imaging.Buffer {
	b := imaging.MustBuffer(h, w, 1)
	for i := range b.Pix {
		b.Pix[i] = uint8(i % 251)
	}
	return b
}

func rgbImage(h, w int) *imaging.Buffer {
	b := imaging.MustBuffer(h, w, 3)
	for i := range b.Pix {
		b.Pix[i] = uint8(i % 253)
	}
	return b
}

// keysInOrder returns the top-level keys of a JSON object in document order.
func keysInOrder(t *testing.T, data []byte) []string {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		require.NoError(t, dec.Decode(&skip))
	}
	return keys
}

func TestFieldNames(t *testing.T) {
	gray, rgb := grayImage(3, 20), rgbImage(3, 20)
	factor, err := NewFactorHex(Brightness, rgb, rgb, 1.5)
	require.NoError(t, err)

	tests := []struct {
		name string
		env  Envelope
		keys []string
	}{
		{"blur raw", NewBlurRaw(gray, gray, nil, imaging.TierHD),
			[]string{"original", "blurred", "height", "width", "blur_region", "resolution"}},
		{"crop raw", NewCropRaw(gray, gray, 0, 0, imaging.TierHD),
			[]string{"original", "cropped", "height", "width", "crop_x", "crop_y", "crop_width", "crop_height", "resolution"}},
		{"grayscale raw", NewGrayscaleRaw(rgb, gray, imaging.TierHD),
			[]string{"original", "grayscale", "height", "width", "resolution"}},
		{"resize raw", NewResizeRaw(gray, gray, imaging.TierHD, imaging.TierSD),
			[]string{"original", "resized", "original_height", "original_width", "resized_height", "resized_width", "from_resolution", "to_resolution"}},
		{"blur hex", NewBlurHex(rgb, rgb), []string{"original", "transformed"}},
		{"crop hex", NewCropHex(rgb, 1, 2), []string{"original", "info"}},
		{"grayscale hex", NewGrayscaleHex(rgb, gray), []string{"original", "transformed"}},
		{"resize hex", NewResizeHex(rgb, rgb), []string{"original", "transformed"}},
		{"factor hex", factor, []string{"original", "transformed", "factor"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.keys, keysInOrder(t, data))
		})
	}
}

func TestIndentation(t *testing.T) {
	gray := grayImage(2, 10)

	raw, err := Marshal(NewBlurRaw(gray, gray, nil, imaging.TierSD))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n  \"original\": [\n    [\n"), string(raw[:40]))

	hex, err := Marshal(NewGrayscaleHex(gray, gray))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(hex), "{\n    \"original\": [\n        [\n"), string(hex[:40]))
}

func TestBlurRaw_Region(t *testing.T) {
	gray := grayImage(4, 4)

	data, err := Marshal(NewBlurRaw(gray, gray, nil, imaging.TierHD))
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "null", string(doc["blur_region"]))
	assert.Equal(t, `"HD"`, string(doc["resolution"]))

	region := &imaging.Region{StartRow: 1, StartCol: 2, Height: 3, Width: 4}
	data, err = Marshal(NewBlurRaw(gray, gray, region, imaging.TierHD))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.JSONEq(t, `[1,2,3,4]`, string(doc["blur_region"]))
}

func TestGrayscaleRaw_Triples(t *testing.T) {
	rgb, err := imaging.FromPixels([][][3]uint8{{{1, 2, 3}, {4, 5, 6}}})
	require.NoError(t, err)
	gray := imaging.MustBuffer(1, 2, 1)

	env := NewGrayscaleRaw(rgb, gray, imaging.TierSD)
	assert.Equal(t, [][][3]int{{{1, 2, 3}, {4, 5, 6}}}, env.Original)
	assert.Equal(t, 1, env.Height)
	assert.Equal(t, 2, env.Width)
}

func TestCropRaw_ReportsExtractedSize(t *testing.T) {
	original := grayImage(10, 12)
	cropped := original.SubRegion(imaging.Region{StartRow: 3, StartCol: 4, Height: 100, Width: 100})

	env := NewCropRaw(original, cropped, 4, 3, imaging.TierHD)
	assert.Equal(t, 8, env.CropWidth)
	assert.Equal(t, 7, env.CropHeight)
	assert.Equal(t, 12, env.Width)
	assert.Equal(t, 10, env.Height)
}

func TestCropRaw_NoRowsReportsZeroWidth(t *testing.T) {
	original := grayImage(6, 4)
	cropped := original.SubRegion(imaging.Region{StartRow: 10, StartCol: 1, Height: 3, Width: 3})
	require.Equal(t, 0, cropped.Height)

	env := NewCropRaw(original, cropped, 1, 10, imaging.TierSD)
	assert.Empty(t, env.Cropped)
	assert.Equal(t, 0, env.CropWidth)
	assert.Equal(t, 0, env.CropHeight)

	data, err := Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"crop_width": 0`)
}

func TestBlurHex_Padding(t *testing.T) {
	original := rgbImage(4, 25)
	env := NewBlurHex(original, original)

	require.Len(t, env.Original, 6)
	assert.Equal(t, []string{"0x00", "0x00"}, env.Original[0])
	assert.Equal(t, []string{"0x00", "0x00"}, env.Original[5])
	assert.Equal(t, hexcodec.Encode(original), env.Original[1:5])
	assert.Len(t, env.Transformed, 4)
}

func TestCropHex_Info(t *testing.T) {
	env := NewCropHex(rgbImage(2, 10), 10, 3)
	assert.Equal(t, int64(167784448), env.Info)

	data, err := Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"info": 167784448`)
}

func TestFactorHex(t *testing.T) {
	b := rgbImage(1, 10)

	env, err := NewFactorHex(Contrast, b, b, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 15, env.Factor)
	assert.Equal(t, Contrast, env.Summary().Transform)

	_, err = NewFactorHex(Blur, b, b, 1.5)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestSummary(t *testing.T) {
	original := rgbImage(4, 30)
	env := NewBlurHex(original, original)

	assert.Equal(t, Summary{
		Family:       FamilyHex,
		Transform:    Blur,
		OriginalRows: 6,
		OriginalCols: 3,
		OutputRows:   4,
		OutputCols:   3,
	}, env.Summary())

	crop := NewCropHex(original, 0, 0).Summary()
	assert.Equal(t, 0, crop.OutputRows)
	assert.Equal(t, Crop, crop.Transform)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out", "blur.json")
	gray := grayImage(3, 3)
	env := NewBlurRaw(gray, gray, nil, imaging.TierHD)

	require.NoError(t, WriteFile(path, env))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got BlurRaw
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, env.Original, got.Original)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFile_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o644))

	gray := grayImage(2, 2)
	err := WriteFile(target, NewBlurRaw(gray, gray, nil, imaging.TierHD))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "taken", entries[0].Name())
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	gray := grayImage(2, 10)
	require.NoError(t, Write(&buf, NewResizeHex(gray, gray)))

	var got TransformHex
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, hexcodec.Encode(gray), got.Original)
}

func TestParseFamilyAndTransform(t *testing.T) {
	f, err := ParseFamily("HEX")
	require.NoError(t, err)
	assert.Equal(t, FamilyHex, f)
	_, err = ParseFamily("plonk")
	assert.ErrorIs(t, err, ErrUnknownFamily)

	tr, err := ParseTransform(" Contrast ")
	require.NoError(t, err)
	assert.Equal(t, Contrast, tr)
	_, err = ParseTransform("rotate")
	assert.ErrorIs(t, err, ErrUnknownTransform)

	assert.True(t, FamilyHex.Supports(Brightness))
	assert.False(t, FamilyRaw.Supports(Brightness))
	assert.ErrorIs(t, CheckSupported(FamilyRaw, Contrast), ErrUnsupported)
	assert.NoError(t, CheckSupported(FamilyRaw, Resize))
	assert.Equal(t, []Transform{Blur, Crop, Grayscale, Resize}, FamilyRaw.Transforms())
}
