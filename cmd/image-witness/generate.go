package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/image-witness/internal/config"
	"github.com/ironsheep/image-witness/internal/envelope"
	"github.com/ironsheep/image-witness/internal/pipeline"
)

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Apply one transformation and write its witness file",
		Example: `  image-witness generate -t blur -f raw -i photo.png -o blur.json --blur-region 10,20,100,200
  image-witness generate -t crop -i photo.png -o crop.json --crop-x 10 --crop-y 3 --resolution SD
  image-witness generate -t brightness -i photo.png -o bright.json --factor 1.2`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			res, err := pipeline.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	f := cmd.Flags()
	f.StringP(config.KeyInput, "i", "", "source image")
	f.StringP(config.KeyOutput, "o", "", "witness file to write")
	f.String(config.KeyPreview, "", "also write the transformed image as PNG")
	f.StringP(config.KeyFamily, "f", string(envelope.FamilyHex), "witness family (raw, hex)")
	f.StringP(config.KeyTransform, "t", "", fmt.Sprintf("transformation (%s)", transformNames()))
	f.String(config.KeyResolution, "HD", "resolution tier of the source")
	f.String(config.KeyFromResolution, "HD", "tier the resize source is expected to have")
	f.String(config.KeyToResolution, "SD", "tier to resize to")
	f.StringToString(config.KeyResolutions, nil, "tier overrides, e.g. SD=320x240")
	f.Float64(config.KeyFactor, 1.5, "brightness or contrast factor")
	f.Int(config.KeyCropX, 0, "left edge of the crop")
	f.Int(config.KeyCropY, 0, "top edge of the crop")
	f.Int(config.KeyCropWidth, 0, "crop width (default tier width)")
	f.Int(config.KeyCropHeight, 0, "crop height (default tier height)")
	f.String(config.KeyBlurRegion, "", "blur only start_row,start_col,height,width")
	f.String(config.KeyResize, "", "pre-resize the raw blur input to WIDTHxHEIGHT")
	f.Bool(config.KeyProcessRegion, false, "restrict raw grayscale to the top-left region")
	f.Int(config.KeyRegionHeight, 240, "processed region height")
	f.Int(config.KeyRegionWidth, 320, "processed region width")
	f.String(config.KeyResizeAlgorithm, "", "resize kernel (weighted-bilinear, ratio-indexed; default by family)")
	f.String(config.KeyBlurAlgorithm, "", "blur kernel (border-excluding, zero-padded; default by family)")
	f.String(config.KeyGrayscaleAlgorithm, "thousandths", "grayscale weights (thousandths, luma16)")
	f.Int(config.KeyKernelSize, 3, "odd box kernel size for zero-padded blur")
	f.Int(config.KeyKernelWeight, 0, "zero-padded blur normalization weight (default kernel cells)")

	return cmd
}

func transformNames() string {
	names := lo.Map(envelope.FamilyHex.Transforms(), func(t envelope.Transform, _ int) string {
		return string(t)
	})
	return strings.Join(names, ", ")
}
