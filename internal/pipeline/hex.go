package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ironsheep/image-witness/internal/envelope"
	"github.com/ironsheep/image-witness/internal/hexcodec"
	"github.com/ironsheep/image-witness/internal/imaging"
	"github.com/ironsheep/image-witness/internal/transform"
)

// loadHex loads the input as stored: grayscale files stay single-channel.
func loadHex(ctx context.Context, j *job) (*imaging.Buffer, error) {
	b, err := j.cache.LoadBuffer(j.cfg.Input)
	if err != nil {
		return nil, err
	}
	if b.Width%hexcodec.GroupSize != 0 {
		zerolog.Ctx(ctx).Debug().
			Int("width", b.Width).
			Int("dropped_columns", b.Width%hexcodec.GroupSize).
			Msg("width is not a multiple of the word size")
	}
	return b, nil
}

func hexBlur(ctx context.Context, j *job) (*output, error) {
	cfg := j.cfg
	src, err := loadHex(ctx, j)
	if err != nil {
		return nil, err
	}
	kernel, weight := cfg.Kernel()
	blurred, err := transform.Blur(cfg.BlurAlgorithm, src, transform.BlurOptions{
		Region: cfg.BlurRegion,
		Kernel: kernel,
		Weight: weight,
	})
	if err != nil {
		return nil, err
	}
	return &output{env: envelope.NewBlurHex(src, blurred), preview: blurred}, nil
}

func hexCrop(ctx context.Context, j *job) (*output, error) {
	cfg := j.cfg
	src, err := loadHex(ctx, j)
	if err != nil {
		return nil, err
	}
	size, err := transform.CropSize(cfg.Resolutions, cfg.Resolution, cfg.CropWidth, cfg.CropHeight)
	if err != nil {
		return nil, err
	}
	if err := transform.CheckCropFits(src, cfg.CropX, cfg.CropY, size); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Int("crop_x", cfg.CropX).
		Int("crop_y", cfg.CropY).
		Stringer("size", size).
		Int64("info", transform.PackCropInfo(cfg.CropX, cfg.CropY)).
		Msg("packed crop coordinates")

	return &output{
		env:     envelope.NewCropHex(src, cfg.CropX, cfg.CropY),
		preview: transform.Crop(src, cfg.CropX, cfg.CropY, size.Width, size.Height),
	}, nil
}

func hexGrayscale(ctx context.Context, j *job) (*output, error) {
	src, err := loadHex(ctx, j)
	if err != nil {
		return nil, err
	}
	gray := transform.Grayscale(src, j.cfg.GrayscaleAlgorithm)
	return &output{env: envelope.NewGrayscaleHex(src, gray), preview: gray}, nil
}

func hexResize(ctx context.Context, j *job) (*output, error) {
	cfg := j.cfg
	src, err := loadHex(ctx, j)
	if err != nil {
		return nil, err
	}
	from, err := cfg.Resolutions.Lookup(cfg.FromResolution)
	if err != nil {
		return nil, err
	}
	to, err := cfg.Resolutions.Lookup(cfg.ToResolution)
	if err != nil {
		return nil, err
	}
	if src.Width != from.Width || src.Height != from.Height {
		j.warn(ctx, fmt.Sprintf("image is %dx%d, expected %s for %s",
			src.Width, src.Height, from, cfg.FromResolution))
	}

	resized, err := transform.Resize(cfg.ResizeAlgorithm, src, to.Height, to.Width)
	if err != nil {
		return nil, err
	}
	return &output{env: envelope.NewResizeHex(src, resized), preview: resized}, nil
}

func hexFactor(ctx context.Context, j *job) (*output, error) {
	cfg := j.cfg
	src, err := loadHex(ctx, j)
	if err != nil {
		return nil, err
	}

	var adjusted *imaging.Buffer
	switch cfg.Transform {
	case envelope.Brightness:
		adjusted = transform.Brightness(src, cfg.Factor)
	case envelope.Contrast:
		adjusted = transform.Contrast(src, cfg.Factor)
	}

	env, err := envelope.NewFactorHex(cfg.Transform, src, adjusted, cfg.Factor)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().
		Float64("factor", cfg.Factor).
		Int("scaled_factor", env.Factor).
		Msg("adjusted")
	return &output{env: env, preview: adjusted}, nil
}
