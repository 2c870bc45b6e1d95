// Package envelope maps kernel inputs and outputs onto the JSON documents
// handed to the circuit tooling.
//
// Each transform has one document type per family. The raw family writes
// pixels as nested arrays with two-space indentation; the hex family writes
// hexcodec words with four-space indentation. Field names and field order
// are fixed by the consuming circuits and must not change.
package envelope

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFamily    = errors.New("unknown transform family")
	ErrUnknownTransform = errors.New("unknown transform")
	ErrUnsupported      = errors.New("transform not available in family")
)

// Family identifies a circuit family.
type Family string

const (
	FamilyRaw Family = "raw"
	FamilyHex Family = "hex"
)

// ParseFamily accepts a family name in any letter case.
func ParseFamily(s string) (Family, error) {
	switch f := Family(strings.ToLower(strings.TrimSpace(s))); f {
	case FamilyRaw, FamilyHex:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
	}
}

// Indent is the JSON indentation the family's tooling expects.
func (f Family) Indent() string {
	if f == FamilyHex {
		return "    "
	}
	return "  "
}

// Transform names an image operation.
type Transform string

const (
	Blur       Transform = "blur"
	Crop       Transform = "crop"
	Grayscale  Transform = "grayscale"
	Resize     Transform = "resize"
	Brightness Transform = "brightness"
	Contrast   Transform = "contrast"
)

var familyTransforms = map[Family][]Transform{
	FamilyRaw: {Blur, Crop, Grayscale, Resize},
	FamilyHex: {Blur, Crop, Grayscale, Resize, Brightness, Contrast},
}

// ParseTransform accepts a transform name in any letter case.
func ParseTransform(s string) (Transform, error) {
	t := Transform(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range familyTransforms[FamilyHex] {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTransform, s)
}

// Supports reports whether the family has a circuit for t.
func (f Family) Supports(t Transform) bool {
	for _, known := range familyTransforms[f] {
		if known == t {
			return true
		}
	}
	return false
}

// Transforms lists the transforms the family supports.
func (f Family) Transforms() []Transform {
	return append([]Transform(nil), familyTransforms[f]...)
}

// CheckSupported returns ErrUnsupported when f has no circuit for t.
func CheckSupported(f Family, t Transform) error {
	if !f.Supports(t) {
		return fmt.Errorf("%w: %s has no %s", ErrUnsupported, f, t)
	}
	return nil
}
