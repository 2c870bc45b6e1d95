package hexcodec

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var ErrWordOverflow = errors.New("hex word exceeds the scalar field modulus")

// WordValue parses a word as an unsigned integer.
func WordValue(word string) (*big.Int, error) {
	digits, ok := strings.CutPrefix(strings.ToLower(word), "0x")
	if !ok || digits == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedWord, word)
	}
	v, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedWord, word)
	}
	return v, nil
}

// FieldElements converts words to BN254 scalar-field elements, the form the
// circuit consumes them in. Words at or above the modulus are rejected
// rather than reduced.
func FieldElements(words []string) ([]fr.Element, error) {
	modulus := fr.Modulus()
	out := make([]fr.Element, len(words))
	for i, word := range words {
		v, err := WordValue(word)
		if err != nil {
			return nil, err
		}
		if v.Cmp(modulus) >= 0 {
			return nil, fmt.Errorf("%w: word %d", ErrWordOverflow, i)
		}
		out[i].SetBigInt(v)
	}
	return out, nil
}
