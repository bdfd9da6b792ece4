// Package payload produces random test payloads for the codec and detector.
// It draws from crypto/rand but is not meant as a security primitive.
package payload

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Charset is the alphabet of Text: ASCII letters, digits, punctuation and space.
const Charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" +
	" "

// Bits returns ceil(n/8) random bytes holding an n-bit value, big-endian.
// When n is not a multiple of 8 the first byte is masked to its low n%8 bits.
func Bits(n int) ([]byte, error) {
	if n <= 0 {
		return []byte{}, nil
	}
	b := make([]byte, (n+7)/8)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	if rem := n % 8; rem != 0 {
		b[0] &= byte(1<<rem) - 1
	}
	return b, nil
}

// Text returns nBits/8 printable characters chosen uniformly from Charset,
// so its bit length is the largest multiple of 8 not exceeding nBits.
func Text(nBits int) ([]byte, error) {
	if nBits < 8 {
		return []byte{}, nil
	}
	out := make([]byte, nBits/8)
	limit := big.NewInt(int64(len(Charset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to draw character: %w", err)
		}
		out[i] = Charset[n.Int64()]
	}
	return out, nil
}
