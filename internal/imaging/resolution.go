package imaging

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Tier is a named resolution used to derive default crop, region and resize
// extents.
type Tier string

const (
	TierSD  Tier = "SD"
	TierHD  Tier = "HD"
	TierFHD Tier = "FHD"
	Tier4K  Tier = "4K"
)

// ParseTier accepts a tier tag in any letter case.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToUpper(strings.TrimSpace(s))); t {
	case TierSD, TierHD, TierFHD, Tier4K:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
}

// Dimensions is a width/height pair.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ParseDimensions parses "WxH", e.g. "640x480".
func ParseDimensions(s string) (Dimensions, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Dimensions{}, fmt.Errorf("dimensions %q: want WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return Dimensions{}, fmt.Errorf("dimensions %q: width: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Dimensions{}, fmt.Errorf("dimensions %q: height: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return Dimensions{}, fmt.Errorf("%w: dimensions %q", ErrInvalidExtent, s)
	}
	return Dimensions{Width: width, Height: height}, nil
}

// String implements fmt.Stringer.
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// ResolutionTable maps tiers to dimensions. The zero value is empty; use
// DefaultResolutions.
type ResolutionTable struct {
	dims map[Tier]Dimensions
}

// DefaultResolutions returns the standard tier table.
func DefaultResolutions() ResolutionTable {
	return ResolutionTable{dims: map[Tier]Dimensions{
		TierSD:  {Width: 640, Height: 480},
		TierHD:  {Width: 1280, Height: 720},
		TierFHD: {Width: 1920, Height: 1080},
		Tier4K:  {Width: 3840, Height: 2160},
	}}
}

// WithOverride returns a copy of the table with tier bound to d.
func (t ResolutionTable) WithOverride(tier Tier, d Dimensions) ResolutionTable {
	dims := make(map[Tier]Dimensions, len(t.dims)+1)
	for k, v := range t.dims {
		dims[k] = v
	}
	dims[tier] = d
	return ResolutionTable{dims: dims}
}

// Lookup returns the dimensions bound to tier.
func (t ResolutionTable) Lookup(tier Tier) (Dimensions, error) {
	d, ok := t.dims[tier]
	if !ok {
		return Dimensions{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	return d, nil
}

// Tiers lists the tiers present in the table in a stable order.
func (t ResolutionTable) Tiers() []Tier {
	tiers := make([]Tier, 0, len(t.dims))
	for k := range t.dims {
		tiers = append(tiers, k)
	}
	sort.Slice(tiers, func(i, j int) bool {
		di, dj := t.dims[tiers[i]], t.dims[tiers[j]]
		return di.Width*di.Height < dj.Width*dj.Height
	})
	return tiers
}
