package rs

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// Shift holds one flipping function per group position for rate estimation:
// +1 is F1 (0<->1, 2<->3, ...), -1 is F-1 (-1<->0, 1<->2, ...) and 0 is identity.
// Unlike Mask, -1 is a real shift, so the two curves of a Shift and its
// negation separate when the LSB plane carries a message.
type Shift [GroupSize]int8

// EstimatorShift is the shift the rate estimate runs on.
var EstimatorShift = Shift{0, 1}

func (m Shift) Negate() Shift {
	var n Shift
	for i := range m {
		n[i] = -m[i]
	}
	return n
}

// Apply returns a copy of g with the shift's functions applied.
// F-1 maps 0 to -1 and 255 to 256; Group holds ints so nothing wraps.
func (m Shift) Apply(g Group) Group {
	for i := range g {
		switch m[i] {
		case 1:
			g[i] ^= 1
		case -1:
			g[i] = ((g[i] + 1) ^ 1) - 1
		}
	}
	return g
}

func (m Shift) String() string {
	return fmt.Sprintf("(%+d,%+d)", m[0], m[1])
}

// ClassifyShift is Classify for a Shift.
func ClassifyShift(groups []Group, m Shift) Counts {
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

// EstimateRate derives the share of samples carrying a message, in [0, 1].
//
// Process:
//  1. Classifies the groups of samples under EstimatorShift and its negation.
//  2. Repeats step 1 on samples with every LSB flipped.
//  3. With d = R-S for each curve, solves
//
//	2(d1+d0)x² + (d-0 - d-1 - d1 - 3d0)x + d0 - d-0 = 0
//
// and returns p = x/(x-1/2) for the root of smaller magnitude.
//
// ok is false when the curves do not intersect. The figure is an indicator;
// smooth synthetic covers and covers without sensor noise bias it.
func EstimateRate(ctx context.Context, samples []uint8) (p float64, ok bool, err error) {
	if len(samples) < GroupSize {
		return 0, false, fmt.Errorf("%w: got %d", ErrInsufficientData, len(samples))
	}
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	var (
		at      = Groups(samples)
		flipped = Groups(FlipAll(samples))
		neg     = EstimatorShift.Negate()
		curves  [4]Counts
	)
	var wg sync.WaitGroup
	for i, job := range []struct {
		groups []Group
		shift  Shift
	}{
		{at, EstimatorShift},
		{flipped, EstimatorShift},
		{at, neg},
		{flipped, neg},
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			curves[i] = ClassifyShift(job.groups, job.shift)
		}()
	}
	wg.Wait()

	d := func(c Counts) float64 { return c.R() - c.S() }
	p, ok = solve(d(curves[0]), d(curves[1]), d(curves[2]), d(curves[3]))
	return p, ok, nil
}

func solve(d0, d1, dn0, dn1 float64) (float64, bool) {
	a := 2 * (d1 + d0)
	b := dn0 - dn1 - d1 - 3*d0
	c := d0 - dn0

	var x float64
	const etol = 1e-9
	switch {
	case math.Abs(a) < etol:
		if math.Abs(b) < etol {
			return 0, false
		}
		x = -c / b
	default:
		disc := b*b - 4*a*c
		if disc < 0 {
			return 0, false
		}
		sq := math.Sqrt(disc)
		x1, x2 := (-b+sq)/(2*a), (-b-sq)/(2*a)
		x = x1
		if math.Abs(x2) < math.Abs(x1) {
			x = x2
		}
	}
	if math.Abs(x-0.5) < etol {
		return 0, false
	}
	p := x / (x - 0.5)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, false
	}
	return math.Min(math.Max(p, 0), 1), true
}
