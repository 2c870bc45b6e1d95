package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-witness/internal/hexcodec"
	"github.com/ironsheep/image-witness/internal/imaging"
)

type decodeResult struct {
	Field         string `json:"field"`
	Height        int    `json:"height"`
	Width         int    `json:"width"`
	Depth         int    `json:"depth"`
	FieldElements int    `json:"field_elements,omitempty"`
	Preview       string `json:"preview,omitempty"`
}

func newDecodeCmd() *cobra.Command {
	var (
		field    string
		depth    int
		preview  string
		elements bool
	)

	cmd := &cobra.Command{
		Use:   "decode WITNESS",
		Short: "Unpack a hex-family witness field back into an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read witness: %w", err)
			}
			var doc map[string]json.RawMessage
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parse witness: %w", err)
			}
			raw, ok := doc[field]
			if !ok {
				return fmt.Errorf("witness has no %q field (have %v)", field, lo.Keys(doc))
			}
			var rows [][]string
			if err := json.Unmarshal(raw, &rows); err != nil {
				return fmt.Errorf("field %q is not rows of hex words: %w", field, err)
			}

			b, err := hexcodec.Decode(rows, depth)
			if err != nil {
				return err
			}
			res := decodeResult{Field: field, Height: b.Height, Width: b.Width, Depth: b.Depth}

			if elements {
				for i, row := range rows {
					if _, err := hexcodec.FieldElements(row); err != nil {
						return fmt.Errorf("row %d: %w", i, err)
					}
					res.FieldElements += len(row)
				}
			}
			if preview != "" {
				if err := imaging.SavePreview(b, preview); err != nil {
					return err
				}
				res.Preview = preview
			}

			log.Debug().Str("witness", args[0]).Stringer("size", b).Msg("decoded")
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&field, "field", "original", "document field to decode")
	f.IntVar(&depth, "depth", 1, "channels per pixel (1 or 3)")
	f.StringVar(&preview, "preview", "", "write the decoded image as PNG")
	f.BoolVar(&elements, "field-elements", false, "check every word is a BN254 scalar-field element")
	return cmd
}
