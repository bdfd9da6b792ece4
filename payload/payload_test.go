package payload

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBits(t *testing.T) {
	test := []struct {
		n       int
		len     int
		topMask byte
	}{
		{-3, 0, 0},
		{0, 0, 0},
		{1, 1, 0b1},
		{7, 1, 0b111_1111},
		{8, 1, 0xff},
		{9, 2, 0b1},
		{16, 2, 0xff},
		{20, 3, 0b1111},
	}
	for _, tt := range test {
		for range 20 {
			b, err := Bits(tt.n)
			require.NoError(t, err)
			require.Len(t, b, tt.len)
			if tt.len > 0 {
				assert.Zero(t, b[0]&^tt.topMask, "n=%d top byte %08b", tt.n, b[0])
			}
		}
	}
}

func TestText(t *testing.T) {
	test := []struct {
		nBits int
		len   int
	}{
		{-1, 0},
		{0, 0},
		{7, 0},
		{8, 1},
		{9, 1},
		{30, 3},
		{256, 32},
	}
	for _, tt := range test {
		b, err := Text(tt.nBits)
		require.NoError(t, err)
		assert.Len(t, b, tt.len)
		assert.LessOrEqual(t, len(b)*8, max(tt.nBits, 0))
		for _, c := range b {
			assert.True(t, bytes.IndexByte([]byte(Charset), c) >= 0, "unexpected %q", c)
		}
	}
}

func TestCharset(t *testing.T) {
	assert.Len(t, Charset, 26*2+10+32+1)
}
