package rs

import "fmt"

// GroupSize is the number of adjacent samples in one group.
const GroupSize = 2

type Group [GroupSize]int

// Groups splits samples into non-overlapping adjacent pairs.
// A trailing odd sample is dropped.
func Groups(samples []uint8) []Group {
	groups := make([]Group, len(samples)/GroupSize)
	for i := range groups {
		groups[i] = Group{int(samples[i*GroupSize]), int(samples[i*GroupSize+1])}
	}
	return groups
}

// Discriminate is the smoothness cost |x1 - x0|. Lower is smoother.
func Discriminate(g Group) int {
	d := g[1] - g[0]
	if d < 0 {
		return -d
	}
	return d
}

// Mask holds one flip indicator per group position:
// +1 toggles the sample's LSB, -1 leaves it unchanged.
type Mask [GroupSize]int8

// BaseMask is M = (+1, -1).
var BaseMask = Mask{1, -1}

func (m Mask) Negate() Mask {
	var n Mask
	for i := range m {
		n[i] = -m[i]
	}
	return n
}

// Apply returns a copy of g with the mask's flips applied.
func (m Mask) Apply(g Group) Group {
	for i := range g {
		if m[i] == 1 {
			g[i] ^= 1
		}
	}
	return g
}

func (m Mask) String() string {
	return fmt.Sprintf("(%+d,%+d)", m[0], m[1])
}

// Counts tallies the classification of every group under one mask.
type Counts struct {
	Regular   int `json:"regular"`
	Singular  int `json:"singular"`
	Unchanged int `json:"unchanged"`
}

func (c Counts) Total() int {
	return c.Regular + c.Singular + c.Unchanged
}

// R is the share of regular groups in percent of all groups.
func (c Counts) R() float64 {
	return percent(c.Regular, c.Total())
}

// S is the share of singular groups in percent of all groups.
func (c Counts) S() float64 {
	return percent(c.Singular, c.Total())
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

// Classify compares every group's smoothness before and after applying m.
// A group is regular when flipping made it smoother, singular when it made it
// rougher, and unchanged otherwise.
func Classify(groups []Group, m Mask) Counts {
	var c Counts
	for _, g := range groups {
		before, after := Discriminate(g), Discriminate(m.Apply(g))
		switch {
		case after < before:
			c.Regular++
		case after > before:
			c.Singular++
		default:
			c.Unchanged++
		}
	}
	return c
}
