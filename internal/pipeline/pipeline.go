// Package pipeline runs one witness generation: load the source image, apply
// the configured kernel, build the family's envelope and write it out.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ironsheep/image-witness/internal/config"
	"github.com/ironsheep/image-witness/internal/envelope"
	"github.com/ironsheep/image-witness/internal/imaging"
)

// Result describes a completed run.
type Result struct {
	RunID    string           `json:"run_id"`
	Output   string           `json:"output"`
	Preview  string           `json:"preview,omitempty"`
	Summary  envelope.Summary `json:"summary"`
	Warnings []string         `json:"warnings,omitempty"`
}

// job is the state a handler works on.
type job struct {
	cfg      *config.Config
	cache    *imaging.ImageCache
	warnings []string
}

func (j *job) warn(ctx context.Context, msg string) {
	zerolog.Ctx(ctx).Warn().Msg(msg)
	j.warnings = append(j.warnings, msg)
}

// output is what a handler produces: the document, and the buffer a preview
// image is rendered from.
type output struct {
	env     envelope.Envelope
	preview *imaging.Buffer
}

type handler func(ctx context.Context, j *job) (*output, error)

var handlers = map[envelope.Family]map[envelope.Transform]handler{
	envelope.FamilyRaw: {
		envelope.Blur:      rawBlur,
		envelope.Crop:      rawCrop,
		envelope.Grayscale: rawGrayscale,
		envelope.Resize:    rawResize,
	},
	envelope.FamilyHex: {
		envelope.Blur:       hexBlur,
		envelope.Crop:       hexCrop,
		envelope.Grayscale:  hexGrayscale,
		envelope.Resize:     hexResize,
		envelope.Brightness: hexFactor,
		envelope.Contrast:   hexFactor,
	},
}

// Runner executes runs against a shared image cache.
type Runner struct {
	cache *imaging.ImageCache
}

// New returns a Runner. A nil cache gets a private one.
func New(cache *imaging.ImageCache) *Runner {
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	return &Runner{cache: cache}
}

// Run executes cfg with a fresh image cache.
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	return New(nil).Run(ctx, cfg)
}

// Run executes cfg. Nothing is written unless every stage succeeds.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h, ok := handlers[cfg.Family][cfg.Transform]
	if !ok {
		return nil, envelope.CheckSupported(cfg.Family, cfg.Transform)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("run id: %w", err)
	}
	logger := log.With().
		Str("run_id", id.String()).
		Str("family", string(cfg.Family)).
		Str("transform", string(cfg.Transform)).
		Logger()
	ctx = logger.WithContext(ctx)

	start := time.Now()
	logger.Info().Str("input", cfg.Input).Msg("generating witness")

	j := &job{cfg: cfg, cache: r.cache}
	out, err := h(ctx, j)
	if err != nil {
		logger.Error().Err(err).Msg("transform failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:    id.String(),
		Output:   cfg.Output,
		Summary:  out.env.Summary(),
		Warnings: j.warnings,
	}

	if err := envelope.WriteFile(cfg.Output, out.env); err != nil {
		logger.Error().Err(err).Str("output", cfg.Output).Msg("failed to write envelope")
		return nil, err
	}
	if cfg.Preview != "" && out.preview != nil {
		if err := imaging.SavePreview(out.preview, cfg.Preview); err != nil {
			logger.Error().Err(err).Str("preview", cfg.Preview).Msg("failed to write preview")
			return nil, err
		}
		r.cache.Evict(cfg.Preview)
		res.Preview = cfg.Preview
	}

	logger.Info().
		Object("envelope", res.Summary).
		Str("output", cfg.Output).
		Dur("elapsed", time.Since(start)).
		Msg("witness written")
	return res, nil
}
