package stegano

import (
	"errors"
	"math"
	"slices"

	"github.com/stegolab/stegano/internal/lsb"
)

type Option func(*Stegano) error

// WithSentinel replaces the end-of-payload marker. It must not be empty.
// Embed and Extract have to agree on it.
func WithSentinel(sentinel []byte) Option {
	return func(s *Stegano) error {
		if len(sentinel) == 0 {
			return errors.New("sentinel must not be empty")
		}
		s.sentinel = slices.Clone(sentinel)
		return nil
	}
}

// WithStrategy selects the order in which samples carry the payload.
// The default is Sequential.
func WithStrategy(strategy Strategy) Option {
	return func(s *Stegano) error {
		if strategy == nil {
			return errors.New("strategy must not be nil")
		}
		s.strategy = strategy
		return nil
	}
}

// WithShuffle spreads the payload over a seeded permutation of all samples.
// It is shorthand for WithStrategy(Shuffled(seed)).
func WithShuffle(seed int64) Option {
	return WithStrategy(lsb.Shuffled(seed))
}

// WithChannel selects the channel Analyze runs on. The default is Red.
func WithChannel(c Channel) Option {
	return func(s *Stegano) error {
		if !c.Valid() {
			return errors.New("unknown channel")
		}
		s.channel = c
		return nil
	}
}

// WithMargin sets the percentage-point gap between R_M and S_M below which
// the verdict is Saturated. Without it the margin scales with the group count
// so that a fully random LSB plane reads as Saturated; see rs.Margin.
func WithMargin(margin float64) Option {
	return func(s *Stegano) error {
		if margin < 0 || math.IsNaN(margin) || math.IsInf(margin, 0) {
			return errors.New("margin must be a finite non-negative number")
		}
		s.margin = &margin
		return nil
	}
}
