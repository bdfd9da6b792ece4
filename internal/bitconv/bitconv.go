package bitconv

import (
	"errors"
	"fmt"

	"github.com/yyyoichi/bitstream-go"
)

var ErrOutOfRange = errors.New("bit index out of range")

// Stream is a read-only MSB-first bit sequence built from bytes.
type Stream struct {
	reader *bitstream.BitReader[uint64]
}

// NewStream serializes parts in order, each byte most significant bit first.
func NewStream(parts ...[]byte) *Stream {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, p := range parts {
		for _, b := range p {
			for i := 7; i >= 0; i-- {
				w.WriteBool(((b >> uint(i)) & 1) == 1)
			}
		}
	}
	reader := bitstream.NewBitReader(w.Data(), 0, 0)
	reader.SetBits(w.Bits())
	return &Stream{reader: reader}
}

// Len returns the number of bits in the stream.
func (s *Stream) Len() int {
	return s.reader.Bits()
}

// Bit returns the bit at position at as 0 or 1.
func (s *Stream) Bit(at int) (uint8, error) {
	if at < 0 || at >= s.Len() {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, at, s.Len())
	}
	v, err := s.reader.ReadBitAt(at)
	if err != nil {
		return 0, fmt.Errorf("read bit %d: %w", at, err)
	}
	if v {
		return 1, nil
	}
	return 0, nil
}

// Assembler packs bits back into bytes, MSB first.
// Bits that do not complete a byte are never exposed.
type Assembler struct {
	buf []byte
	cur byte
	n   int
}

// Push appends one bit and reports whether it completed a byte.
func (a *Assembler) Push(bit uint8) bool {
	a.cur = a.cur<<1 | bit&1
	a.n++
	if a.n < 8 {
		return false
	}
	a.buf = append(a.buf, a.cur)
	a.cur, a.n = 0, 0
	return true
}

// Bytes returns the completed bytes. The slice aliases the assembler.
func (a *Assembler) Bytes() []byte {
	return a.buf
}
