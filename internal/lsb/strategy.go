package lsb

import (
	"fmt"
	"math/rand"
)

// Strategy decides which sample carries each bit of the stream.
// Encode and Decode walk the same Order, so a strategy only has to be
// deterministic for a given sample count.
type Strategy interface {
	Name() string
	Order(n int) Order
}

// Order maps the step-th bit to a flat sample index in [0, n).
type Order interface {
	At(step int) int
}

var (
	_ Strategy = Sequential{}
	_ Strategy = Shuffled(0)
)

// Sequential visits samples in raster order, row-major, channels interleaved.
type Sequential struct{}

func (Sequential) Name() string { return "sequential" }

func (Sequential) Order(int) Order { return identity{} }

type identity struct{}

func (identity) At(step int) int { return step }

// Shuffled visits every sample exactly once in a permutation derived from the seed.
type Shuffled int64

func (s Shuffled) Name() string { return fmt.Sprintf("shuffled(%d)", int64(s)) }

func (s Shuffled) Order(n int) Order {
	index := make(permutation, n)
	for i := range index {
		index[i] = i
	}
	rd := rand.New(rand.NewSource(int64(s)))
	rd.Shuffle(n, func(i, j int) {
		index[i], index[j] = index[j], index[i]
	})
	return index
}

type permutation []int

func (p permutation) At(step int) int { return p[step] }
