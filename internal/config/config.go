// Package config resolves the settings of a witness generation run.
//
// Values come from a viper instance, so command-line flags, IMAGE_WITNESS_*
// environment variables and an optional image-witness.toml file all feed
// the same keys. Load turns the raw keys into a validated Config.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/ironsheep/image-witness/internal/envelope"
	"github.com/ironsheep/image-witness/internal/imaging"
	"github.com/ironsheep/image-witness/internal/transform"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Keys understood by Load. Flags use the same names.
const (
	KeyInput              = "input"
	KeyOutput             = "output"
	KeyPreview            = "preview"
	KeyFamily             = "family"
	KeyTransform          = "transform"
	KeyResolution         = "resolution"
	KeyFromResolution     = "from-resolution"
	KeyToResolution       = "to-resolution"
	KeyFactor             = "factor"
	KeyCropX              = "crop-x"
	KeyCropY              = "crop-y"
	KeyCropWidth          = "crop-width"
	KeyCropHeight         = "crop-height"
	KeyBlurRegion         = "blur-region"
	KeyResize             = "resize"
	KeyProcessRegion      = "process-region"
	KeyRegionHeight       = "region-height"
	KeyRegionWidth        = "region-width"
	KeyResizeAlgorithm    = "resize-algorithm"
	KeyBlurAlgorithm      = "blur-algorithm"
	KeyGrayscaleAlgorithm = "grayscale-algorithm"
	KeyKernelSize         = "kernel-size"
	KeyKernelWeight       = "kernel-weight"
	KeyResolutions        = "resolutions"
	KeyLogLevel           = "log-level"
)

// EnvPrefix prefixes environment variable names; dashes become
// underscores, so crop-x is read from IMAGE_WITNESS_CROP_X.
const EnvPrefix = "IMAGE_WITNESS"

// Config is a fully resolved run configuration.
type Config struct {
	Input     string
	Output    string
	Preview   string
	Family    envelope.Family
	Transform envelope.Transform

	Resolution     imaging.Tier
	FromResolution imaging.Tier
	ToResolution   imaging.Tier
	Resolutions    imaging.ResolutionTable

	Factor float64

	CropX      int
	CropY      int
	CropWidth  *int
	CropHeight *int

	// BlurRegion restricts the border-excluding blur. Nil blurs everything
	// except the one-pixel border.
	BlurRegion *imaging.Region
	// Resize is the optional Lanczos pre-resize of raw blur input.
	Resize *imaging.Dimensions

	ProcessRegion bool
	RegionHeight  int
	RegionWidth   int

	ResizeAlgorithm    transform.ResizeAlgorithm
	BlurAlgorithm      transform.BlurAlgorithm
	GrayscaleAlgorithm transform.GrayscaleAlgorithm
	KernelSize         int
	KernelWeight       int

	LogLevel zerolog.Level
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyFamily, string(envelope.FamilyHex))
	v.SetDefault(KeyResolution, string(imaging.TierHD))
	v.SetDefault(KeyFromResolution, string(imaging.TierHD))
	v.SetDefault(KeyToResolution, string(imaging.TierSD))
	v.SetDefault(KeyFactor, 1.5)
	v.SetDefault(KeyCropX, 0)
	v.SetDefault(KeyCropY, 0)
	v.SetDefault(KeyCropWidth, 0)
	v.SetDefault(KeyCropHeight, 0)
	v.SetDefault(KeyProcessRegion, false)
	v.SetDefault(KeyRegionHeight, 240)
	v.SetDefault(KeyRegionWidth, 320)
	v.SetDefault(KeyGrayscaleAlgorithm, transform.WeightedThousandths.String())
	v.SetDefault(KeyKernelSize, 3)
	v.SetDefault(KeyLogLevel, zerolog.InfoLevel.String())
}

// New returns a viper instance with defaults registered, environment
// variables bound and image-witness.toml in the working directory as the
// optional config file.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigName("image-witness")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	return v
}

// ReadFile loads the config file into v. An explicit path must exist; when
// path is empty a missing image-witness.toml is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	c := &Config{
		Input:         v.GetString(KeyInput),
		Output:        v.GetString(KeyOutput),
		Preview:       v.GetString(KeyPreview),
		Factor:        v.GetFloat64(KeyFactor),
		CropX:         v.GetInt(KeyCropX),
		CropY:         v.GetInt(KeyCropY),
		ProcessRegion: v.GetBool(KeyProcessRegion),
		RegionHeight:  v.GetInt(KeyRegionHeight),
		RegionWidth:   v.GetInt(KeyRegionWidth),
		KernelSize:    v.GetInt(KeyKernelSize),
		KernelWeight:  v.GetInt(KeyKernelWeight),
	}

	var err error
	if c.Family, err = envelope.ParseFamily(v.GetString(KeyFamily)); err != nil {
		return nil, invalid(err)
	}
	if c.Transform, err = envelope.ParseTransform(v.GetString(KeyTransform)); err != nil {
		return nil, invalid(err)
	}
	for key, dst := range map[string]*imaging.Tier{
		KeyResolution:     &c.Resolution,
		KeyFromResolution: &c.FromResolution,
		KeyToResolution:   &c.ToResolution,
	} {
		if *dst, err = imaging.ParseTier(v.GetString(key)); err != nil {
			return nil, invalid(fmt.Errorf("%s: %w", key, err))
		}
	}

	if c.Resolutions, err = Resolutions(v); err != nil {
		return nil, invalid(err)
	}
	if w := v.GetInt(KeyCropWidth); w > 0 {
		c.CropWidth = &w
	}
	if h := v.GetInt(KeyCropHeight); h > 0 {
		c.CropHeight = &h
	}
	if c.BlurRegion, err = parseRegion(v.Get(KeyBlurRegion)); err != nil {
		return nil, invalid(err)
	}
	if s := v.GetString(KeyResize); s != "" {
		d, err := imaging.ParseDimensions(s)
		if err != nil {
			return nil, invalid(fmt.Errorf("%s: %w", KeyResize, err))
		}
		c.Resize = &d
	}

	if err := c.resolveAlgorithms(v); err != nil {
		return nil, invalid(err)
	}
	if c.LogLevel, err = zerolog.ParseLevel(v.GetString(KeyLogLevel)); err != nil {
		return nil, invalid(fmt.Errorf("%s: %w", KeyLogLevel, err))
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultResizeAlgorithm is the resize kernel the family's circuit checks.
func DefaultResizeAlgorithm(f envelope.Family) transform.ResizeAlgorithm {
	if f == envelope.FamilyHex {
		return transform.RatioIndexed
	}
	return transform.WeightedBilinear
}

// DefaultBlurAlgorithm is the blur kernel the family's circuit checks.
func DefaultBlurAlgorithm(f envelope.Family) transform.BlurAlgorithm {
	if f == envelope.FamilyHex {
		return transform.ZeroPaddedConvolution
	}
	return transform.BorderExcludingAverage
}

func (c *Config) resolveAlgorithms(v *viper.Viper) error {
	var err error
	c.ResizeAlgorithm = DefaultResizeAlgorithm(c.Family)
	if s := v.GetString(KeyResizeAlgorithm); s != "" {
		if c.ResizeAlgorithm, err = transform.ParseResizeAlgorithm(s); err != nil {
			return err
		}
	}
	c.BlurAlgorithm = DefaultBlurAlgorithm(c.Family)
	if s := v.GetString(KeyBlurAlgorithm); s != "" {
		if c.BlurAlgorithm, err = transform.ParseBlurAlgorithm(s); err != nil {
			return err
		}
	}
	c.GrayscaleAlgorithm, err = transform.ParseGrayscaleAlgorithm(v.GetString(KeyGrayscaleAlgorithm))
	return err
}

// Validate checks the cross-field constraints of a resolved Config.
func (c *Config) Validate() error {
	if c.Input == "" {
		return invalid(errors.New("input image is required"))
	}
	if c.Output == "" {
		return invalid(errors.New("output path is required"))
	}
	if err := envelope.CheckSupported(c.Family, c.Transform); err != nil {
		return invalid(err)
	}
	if (c.Transform == envelope.Brightness || c.Transform == envelope.Contrast) && c.Factor <= 0 {
		return invalid(fmt.Errorf("factor must be positive, got %g", c.Factor))
	}
	if c.CropX < 0 || c.CropY < 0 {
		return invalid(fmt.Errorf("crop coordinates must be non-negative, got (%d, %d)", c.CropX, c.CropY))
	}
	if c.BlurRegion != nil {
		r := c.BlurRegion
		if r.StartRow < 0 || r.StartCol < 0 || r.Height < 0 || r.Width < 0 {
			return invalid(fmt.Errorf("blur region must be non-negative, got %v", r.Array()))
		}
	}
	if c.ProcessRegion && (c.RegionHeight <= 0 || c.RegionWidth <= 0) {
		return invalid(fmt.Errorf("process region must be positive, got %dx%d", c.RegionHeight, c.RegionWidth))
	}
	if c.KernelSize <= 0 || c.KernelSize%2 == 0 {
		return invalid(fmt.Errorf("kernel size must be odd and positive, got %d", c.KernelSize))
	}
	for _, tier := range []imaging.Tier{c.Resolution, c.FromResolution, c.ToResolution} {
		if _, err := c.Resolutions.Lookup(tier); err != nil {
			return invalid(err)
		}
	}
	return nil
}

// Kernel returns the configured box kernel and its weight. A weight of 0
// selects the kernel's cell count. The default 3x3 box with weight 9 comes
// back as a nil kernel so transform.Blur uses BlurZeroPadded.
func (c *Config) Kernel() (transform.Kernel, int) {
	weight := c.KernelWeight
	if weight == 0 {
		weight = c.KernelSize * c.KernelSize
	}
	if c.KernelSize == 3 && weight == 9 {
		return nil, weight
	}
	return transform.BoxKernel(c.KernelSize), weight
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}

// Resolutions returns the tier table with the overrides held by v applied.
func Resolutions(v *viper.Viper) (imaging.ResolutionTable, error) {
	return resolutionTable(v.GetStringMapString(KeyResolutions))
}

func resolutionTable(overrides map[string]string) (imaging.ResolutionTable, error) {
	table := imaging.DefaultResolutions()
	for tag, dims := range overrides {
		tier, err := imaging.ParseTier(tag)
		if err != nil {
			return table, fmt.Errorf("%s: %w", KeyResolutions, err)
		}
		d, err := imaging.ParseDimensions(dims)
		if err != nil {
			return table, fmt.Errorf("%s.%s: %w", KeyResolutions, tag, err)
		}
		table = table.WithOverride(tier, d)
	}
	return table, nil
}

// parseRegion accepts "start_row,start_col,height,width" (commas or spaces)
// or a four-element list as found in a config file.
func parseRegion(raw any) (*imaging.Region, error) {
	var vals []int
	switch x := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(x) == "" {
			return nil, nil
		}
		for _, f := range strings.FieldsFunc(x, func(r rune) bool { return r == ',' || r == ' ' }) {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%s %q: %w", KeyBlurRegion, x, err)
			}
			vals = append(vals, n)
		}
	default:
		var err error
		if vals, err = cast.ToIntSliceE(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", KeyBlurRegion, err)
		}
	}
	if len(vals) == 0 {
		return nil, nil
	}
	if len(vals) != 4 {
		return nil, fmt.Errorf("%s needs start_row, start_col, height, width; got %d values", KeyBlurRegion, len(vals))
	}
	r := imaging.RegionFromArray([4]int(vals))
	return &r, nil
}
