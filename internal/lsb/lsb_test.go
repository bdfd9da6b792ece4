package lsb

import (
	"context"
	"testing"

	"github.com/stegolab/stegano/internal/bitconv"
	"github.com/stegolab/stegano/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sentinel = []byte("###END###")

func newGrid(w, h int) *grid.Grid {
	g := grid.New(w, h)
	for i := range g.Len() {
		g.Set(i, uint8(i*37+11))
	}
	return g
}

func TestEncodeDecode(t *testing.T) {
	test := []struct {
		name     string
		w, h     int
		data     []byte
		strategy Strategy
	}{
		{"empty", 4, 6, []byte{}, Sequential{}},
		{"ascii", 16, 16, []byte("Testing, testing"), Sequential{}},
		{"utf8", 16, 16, []byte("こんにちはHello"), Sequential{}},
		{"binary", 8, 8, []byte{0x00, 0xff, 0x01, 0x80}, Sequential{}},
		{"shuffled", 16, 16, []byte("Testing, testing"), Shuffled(1234567890)},
		{"exact fit", 6, 8, []byte("AAAAAAAAA"), Sequential{}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(tt.w, tt.h)
			require.NoError(t, Encode(context.Background(), g, bitconv.NewStream(tt.data, sentinel), tt.strategy))
			data, found, err := Decode(context.Background(), g, sentinel, tt.strategy)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, string(tt.data), string(data))
		})
	}
}

func TestEncodeCapacity(t *testing.T) {
	g := newGrid(2, 2) // 12 bits
	orig := g.Copy()
	err := Encode(context.Background(), g, bitconv.NewStream([]byte{1, 2}), Sequential{})
	assert.Error(t, err)
	for i := range g.Len() {
		assert.Equal(t, orig.At(i), g.At(i), "sample %d mutated", i)
	}
}

func TestEncodeTouchesOnlyPrefixLSB(t *testing.T) {
	g := newGrid(10, 10)
	orig := g.Copy()
	bits := bitconv.NewStream([]byte("hi"), sentinel)
	require.NoError(t, Encode(context.Background(), g, bits, Sequential{}))
	for i := range g.Len() {
		assert.Equal(t, orig.At(i)&0xfe, g.At(i)&0xfe, "high bits of sample %d", i)
		if i >= bits.Len() {
			assert.Equal(t, orig.At(i), g.At(i), "suffix sample %d", i)
		} else {
			bit, err := bits.Bit(i)
			require.NoError(t, err)
			assert.Equal(t, bit, g.At(i)&1, "lsb of sample %d", i)
		}
	}
}

func TestDecodeNotFound(t *testing.T) {
	g := grid.New(3, 3) // 27 bits: three zero bytes and three dropped bits
	data, found, err := Decode(context.Background(), g, sentinel, Sequential{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []byte{0, 0, 0}, data)
}

func TestDecodeStopsAtFirstSentinel(t *testing.T) {
	g := newGrid(20, 20)
	bits := bitconv.NewStream([]byte("one"), sentinel, []byte("two"), sentinel)
	require.NoError(t, Encode(context.Background(), g, bits, Sequential{}))
	data, found, err := Decode(context.Background(), g, sentinel, Sequential{})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "one", string(data))
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := newGrid(4, 4)
	assert.ErrorIs(t, Encode(ctx, g, bitconv.NewStream([]byte("x")), Sequential{}), context.Canceled)
	_, _, err := Decode(ctx, g, sentinel, Sequential{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShuffledIsPermutation(t *testing.T) {
	for _, n := range []int{0, 1, 7, 300} {
		order := Shuffled(42).Order(n)
		again := Shuffled(42).Order(n)
		seen := make(map[int]bool, n)
		for step := range n {
			i := order.At(step)
			assert.Equal(t, i, again.At(step))
			assert.True(t, i >= 0 && i < n)
			assert.False(t, seen[i], "index %d visited twice", i)
			seen[i] = true
		}
		assert.Len(t, seen, n)
	}
}
