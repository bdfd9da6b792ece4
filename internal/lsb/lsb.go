package lsb

import (
	"bytes"
	"context"
	"fmt"

	"github.com/stegolab/stegano/internal/bitconv"
	"github.com/stegolab/stegano/internal/grid"
)

// Enable reports whether a stream of bitLen bits fits into g.
func Enable(g *grid.Grid, bitLen int) error {
	if total := g.Len(); total < bitLen {
		return fmt.Errorf("capacity %d bits < stream %d bits", total, bitLen)
	}
	return nil
}

// Encode overwrites bit 0 of the samples visited by s with the stream, in order.
// Samples after the last written one, and bits 1..7 of every sample, are left untouched.
func Encode(ctx context.Context, g *grid.Grid, bits *bitconv.Stream, s Strategy) error {
	if err := Enable(g, bits.Len()); err != nil {
		return err
	}
	var (
		order  = s.Order(g.Len())
		rowLen = max(g.Width()*grid.Channels, 1)
	)
	for at := range bits.Len() {
		if at%rowLen == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		bit, err := bits.Bit(at)
		if err != nil {
			return err
		}
		i := order.At(at)
		g.Set(i, g.At(i)&0xfe|bit)
	}
	return nil
}

// Decode collects bit 0 of every sample in the order of s and returns the
// bytes preceding the first occurrence of sentinel. found is false when the
// grid ends first; data then holds every complete byte that was read.
func Decode(ctx context.Context, g *grid.Grid, sentinel []byte, s Strategy) (data []byte, found bool, err error) {
	var (
		order  = s.Order(g.Len())
		rowLen = max(g.Width()*grid.Channels, 1)
		asm    bitconv.Assembler
	)
	for at := range g.Len() {
		if at%rowLen == 0 {
			if err := ctx.Err(); err != nil {
				return nil, false, err
			}
		}
		if !asm.Push(g.At(order.At(at)) & 1) {
			continue
		}
		if out := asm.Bytes(); bytes.HasSuffix(out, sentinel) {
			return out[:len(out)-len(sentinel)], true, nil
		}
	}
	return asm.Bytes(), false, nil
}
