package transform

import (
	"runtime"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// forEachRow calls fn once for every row in [0, rows), spreading contiguous
// bands of rows over GOMAXPROCS goroutines. fn must only write to its own
// output row.
func forEachRow(rows int, fn func(row int)) {
	if rows <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	band := max(1, (rows+workers-1)/workers)

	var g errgroup.Group
	for _, chunk := range lo.Chunk(lo.Range(rows), band) {
		g.Go(func() error {
			for _, row := range chunk {
				fn(row)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func clampByte(v int64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// truncByte clamps v to [0, 255] and then truncates toward zero, the order
// a clip followed by an unsigned 8-bit cast uses.
func truncByte(v float64) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
