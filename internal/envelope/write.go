package envelope

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
)

// Envelope is any document built by this package.
type Envelope interface {
	Summary() Summary
}

// Summary describes an envelope's shape for logs and tool results. Column
// counts are pixels for the raw family and words for the hex family.
type Summary struct {
	Family       Family    `json:"family"`
	Transform    Transform `json:"transform"`
	OriginalRows int       `json:"original_rows"`
	OriginalCols int       `json:"original_cols"`
	OutputRows   int       `json:"output_rows"`
	OutputCols   int       `json:"output_cols"`
}

func newSummary[O, T any](f Family, t Transform, original [][]O, output [][]T) Summary {
	s := Summary{
		Family:       f,
		Transform:    t,
		OriginalRows: len(original),
		OutputRows:   len(output),
	}
	if len(original) > 0 {
		s.OriginalCols = len(original[0])
	}
	if len(output) > 0 {
		s.OutputCols = len(output[0])
	}
	return s
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (s Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Str("family", string(s.Family)).
		Str("transform", string(s.Transform)).
		Int("original_rows", s.OriginalRows).
		Int("original_cols", s.OriginalCols).
		Int("output_rows", s.OutputRows).
		Int("output_cols", s.OutputCols)
}

// Marshal renders env with its family's indentation.
func Marshal(env Envelope) ([]byte, error) {
	data, err := json.MarshalIndent(env, "", env.Summary().Family.Indent())
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", env.Summary().Transform, err)
	}
	return data, nil
}

// Write renders env to w.
func Write(w io.Writer, env Envelope) error {
	data, err := Marshal(env)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile renders env to path, creating parent directories as needed.
// The document is written to a temporary file in the same directory and
// renamed into place, so a failed write never leaves a partial file behind.
func WriteFile(path string, env Envelope) error {
	data, err := Marshal(env)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("temp file name: %w", err)
	}
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+id.String()+".tmp")

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write envelope: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write envelope: %w", err)
	}
	return nil
}
