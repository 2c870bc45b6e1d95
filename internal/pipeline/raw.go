package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ironsheep/image-witness/internal/envelope"
	"github.com/ironsheep/image-witness/internal/imaging"
	"github.com/ironsheep/image-witness/internal/transform"
)

// loadRawGray loads the input the way the raw family's decoder opens a file
// in luminance mode.
func loadRawGray(j *job) (*imaging.Buffer, error) {
	rgb, err := j.cache.LoadRGB(j.cfg.Input)
	if err != nil {
		return nil, err
	}
	return transform.Grayscale(rgb, transform.LumaFixed16), nil
}

func rawBlur(ctx context.Context, j *job) (*output, error) {
	cfg := j.cfg
	gray, err := loadRawGray(j)
	if err != nil {
		return nil, err
	}
	if cfg.Resize != nil {
		if gray, err = imaging.Lanczos(gray, cfg.Resize.Height, cfg.Resize.Width); err != nil {
			return nil, err
		}
		zerolog.Ctx(ctx).Debug().Stringer("size", gray).Msg("pre-resized input")
	}

	kernel, weight := cfg.Kernel()
	blurred, err := transform.Blur(cfg.BlurAlgorithm, gray, transform.BlurOptions{
		Region: cfg.BlurRegion,
		Kernel: kernel,
		Weight: weight,
	})
	if err != nil {
		return nil, err
	}

	ev := zerolog.Ctx(ctx).Debug().Stringer("algorithm", cfg.BlurAlgorithm)
	if cfg.BlurRegion != nil {
		ev = ev.Stringer("region", cfg.BlurRegion)
	}
	ev.Msg("blurred")

	return &output{
		env:     envelope.NewBlurRaw(gray, blurred, cfg.BlurRegion, cfg.Resolution),
		preview: blurred,
	}, nil
}

func rawCrop(ctx context.Context, j *job) (*output, error) {
	cfg := j.cfg
	gray, err := loadRawGray(j)
	if err != nil {
		return nil, err
	}
	size, err := transform.CropSize(cfg.Resolutions, cfg.Resolution, cfg.CropWidth, cfg.CropHeight)
	if err != nil {
		return nil, err
	}

	cropped := transform.Crop(gray, cfg.CropX, cfg.CropY, size.Width, size.Height)
	if cropped.Width != size.Width || cropped.Height != size.Height {
		j.warn(ctx, fmt.Sprintf("crop clamped from %s to %dx%d at (%d, %d) in a %dx%d image",
			size, cropped.Width, cropped.Height, cfg.CropX, cfg.CropY, gray.Width, gray.Height))
	}

	return &output{
		env:     envelope.NewCropRaw(gray, cropped, cfg.CropX, cfg.CropY, cfg.Resolution),
		preview: cropped,
	}, nil
}

func rawGrayscale(ctx context.Context, j *job) (*output, error) {
	cfg := j.cfg
	rgb, err := j.cache.LoadRGB(cfg.Input)
	if err != nil {
		return nil, err
	}
	gray := transform.Grayscale(rgb, cfg.GrayscaleAlgorithm)

	if cfg.ProcessRegion {
		region := imaging.Region{Height: cfg.RegionHeight, Width: cfg.RegionWidth}
		rgb = rgb.SubRegion(region)
		gray = gray.SubRegion(region)
		zerolog.Ctx(ctx).Debug().Stringer("size", gray).Msg("restricted to top-left region")
	}

	return &output{
		env:     envelope.NewGrayscaleRaw(rgb, gray, cfg.Resolution),
		preview: gray,
	}, nil
}

func rawResize(ctx context.Context, j *job) (*output, error) {
	cfg := j.cfg
	gray, err := loadRawGray(j)
	if err != nil {
		return nil, err
	}
	to, err := cfg.Resolutions.Lookup(cfg.ToResolution)
	if err != nil {
		return nil, err
	}
	if from, err := cfg.Resolutions.Lookup(cfg.FromResolution); err == nil &&
		(from.Width != gray.Width || from.Height != gray.Height) {
		j.warn(ctx, fmt.Sprintf("image is %dx%d, expected %s for %s",
			gray.Width, gray.Height, from, cfg.FromResolution))
	}

	resized, err := transform.Resize(cfg.ResizeAlgorithm, gray, to.Height, to.Width)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().
		Stringer("algorithm", cfg.ResizeAlgorithm).
		Stringer("from", gray).
		Stringer("to", resized).
		Msg("resized")

	return &output{
		env:     envelope.NewResizeRaw(gray, resized, cfg.FromResolution, cfg.ToResolution),
		preview: resized,
	}, nil
}
