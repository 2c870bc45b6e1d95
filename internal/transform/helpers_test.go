package transform

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-witness/internal/imaging"
)

func grayBuffer(t *testing.T, rows [][]uint8) *imaging.Buffer {
	t.Helper()
	b, err := imaging.FromRows(rows)
	require.NoError(t, err)
	return b
}

func randomBuffer(seed int64, h, w, depth int) *imaging.Buffer {
	rng := rand.New(rand.NewSource(seed))
	b := imaging.MustBuffer(h, w, depth)
	for i := range b.Pix {
		b.Pix[i] = uint8(rng.Intn(256))
	}
	return b
}

func uniformBuffer(h, w, depth int, v uint8) *imaging.Buffer {
	b := imaging.MustBuffer(h, w, depth)
	for i := range b.Pix {
		b.Pix[i] = v
	}
	return b
}
