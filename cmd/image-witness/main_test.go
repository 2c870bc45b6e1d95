package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-witness/internal/imaging"
	"github.com/ironsheep/image-witness/internal/pipeline"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSource(t *testing.T, h, w int) string {
	t.Helper()
	b := imaging.MustBuffer(h, w, 3)
	for i := range b.Pix {
		b.Pix[i] = uint8(i * 13)
	}
	path := filepath.Join(t.TempDir(), "source.png")
	require.NoError(t, imaging.SavePreview(b, path))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "image-witness "+Version)
	assert.Contains(t, out, "Git commit:")
}

func TestGenerateThenDecode(t *testing.T) {
	src := writeSource(t, 3, 20)
	dir := t.TempDir()
	witness := filepath.Join(dir, "blur.json")

	out, err := execute(t, "generate", "--log-level", "warn",
		"-t", "blur", "-i", src, "-o", witness, "--preview", filepath.Join(dir, "blur.png"))
	require.NoError(t, err)

	var res pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, witness, res.Output)
	// one zero padding row above and below
	assert.Equal(t, 5, res.Summary.OriginalRows)
	assert.Equal(t, 3, res.Summary.OutputRows)
	assert.FileExists(t, witness)
	assert.FileExists(t, filepath.Join(dir, "blur.png"))

	out, err = execute(t, "decode", witness, "--depth", "3", "--field-elements")
	require.NoError(t, err)
	var dec decodeResult
	require.NoError(t, json.Unmarshal([]byte(out), &dec))
	assert.Equal(t, decodeResult{Field: "original", Height: 5, Width: 20, Depth: 3, FieldElements: 10}, dec)
}

func TestGenerateRawFamily(t *testing.T) {
	src := writeSource(t, 8, 12)
	witness := filepath.Join(t.TempDir(), "crop.json")

	_, err := execute(t, "generate", "--log-level", "error",
		"-f", "raw", "-t", "crop", "-i", src, "-o", witness,
		"--crop-x", "2", "--crop-y", "1", "--crop-width", "5", "--crop-height", "4")
	require.NoError(t, err)

	var doc struct {
		Cropped [][]int `json:"cropped"`
		CropX   int     `json:"crop_x"`
	}
	data, err := os.ReadFile(witness)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Cropped, 4)
	assert.Len(t, doc.Cropped[0], 5)
	assert.Equal(t, 2, doc.CropX)
}

func TestGenerateErrors(t *testing.T) {
	src := writeSource(t, 4, 10)
	witness := filepath.Join(t.TempDir(), "w.json")

	_, err := execute(t, "generate", "--log-level", "error", "-t", "contrast", "-f", "raw", "-i", src, "-o", witness)
	assert.Error(t, err)

	_, err = execute(t, "generate", "--log-level", "error", "-t", "blur", "-i", src)
	assert.Error(t, err)

	_, err = execute(t, "generate", "--log-level", "nonsense", "-t", "blur", "-i", src, "-o", witness)
	assert.Error(t, err)

	assert.NoFileExists(t, witness)
}

func TestGenerateConfigFile(t *testing.T) {
	src := writeSource(t, 6, 10)
	dir := t.TempDir()
	witness := filepath.Join(dir, "gray.json")
	cfg := filepath.Join(dir, "witness.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("family = \"raw\"\ntransform = \"grayscale\"\nlog-level = \"error\"\n"), 0o644))

	out, err := execute(t, "generate", "--config", cfg, "-i", src, "-o", witness)
	require.NoError(t, err)

	var res pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.EqualValues(t, "raw", res.Summary.Family)
	assert.EqualValues(t, "grayscale", res.Summary.Transform)
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	witness := filepath.Join(dir, "w.json")
	require.NoError(t, os.WriteFile(witness, []byte(`{"original":[["0x01"]],"info":5}`), 0o644))

	_, err := execute(t, "decode", witness, "--field", "transformed")
	assert.ErrorContains(t, err, "no \"transformed\" field")

	_, err = execute(t, "decode", witness, "--field", "info")
	assert.ErrorContains(t, err, "not rows of hex words")

	_, err = execute(t, "decode", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = execute(t, "decode")
	assert.Error(t, err)
}
