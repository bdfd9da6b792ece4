package rs

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"
)

var ErrInsufficientData = errors.New("channel has fewer than 2 samples")

// DefaultMargin is the smallest percentage-point gap between R and S below
// which the two are treated as equal.
const DefaultMargin = 0.5

// NoiseSigmas is how many standard deviations of R-S sampling noise Margin
// tolerates. On a fully random LSB plane each group is regular or singular
// with equal odds, so R-S has a standard deviation of 100/sqrt(groups) points.
const NoiseSigmas = 4

// MaxMargin bounds Margin on tiny channels, where the noise term would
// otherwise exceed the whole 0..100 range.
const MaxMargin = 50

// Margin returns the verdict margin for a channel of the given group count:
// NoiseSigmas standard deviations of the R-S noise, clamped to
// [DefaultMargin, MaxMargin].
func Margin(groups int) float64 {
	if groups <= 0 {
		return MaxMargin
	}
	m := NoiseSigmas * 100 / math.Sqrt(float64(groups))
	return math.Min(math.Max(m, DefaultMargin), MaxMargin)
}

// Result is the outcome of one RS pass over a channel.
type Result struct {
	Groups int    `json:"groups"`
	M      Counts `json:"m"`
	NegM   Counts `json:"neg_m"`
	// Smoothness is the mean discrimination value of the unmodified groups.
	Smoothness float64 `json:"smoothness"`
}

func (r Result) RM() float64    { return r.M.R() }
func (r Result) SM() float64    { return r.M.S() }
func (r Result) RNegM() float64 { return r.NegM.R() }
func (r Result) SNegM() float64 { return r.NegM.S() }

// Analyze classifies the groups of samples under BaseMask and its negation.
// The two masks are evaluated concurrently; neither shares state with the other.
func Analyze(ctx context.Context, samples []uint8) (Result, error) {
	if len(samples) < GroupSize {
		return Result{}, fmt.Errorf("%w: got %d", ErrInsufficientData, len(samples))
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	groups := Groups(samples)
	r := Result{Groups: len(groups)}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		r.M = Classify(groups, BaseMask)
	}()
	go func() {
		defer wg.Done()
		r.NegM = Classify(groups, BaseMask.Negate())
	}()
	go func() {
		defer wg.Done()
		r.Smoothness = smoothness(groups)
	}()
	wg.Wait()
	return r, nil
}

func smoothness(groups []Group) float64 {
	f := make([]float64, len(groups))
	for i, g := range groups {
		f[i] = float64(Discriminate(g))
	}
	return stat.Mean(f, nil)
}

// FlipAll returns a copy of samples with every LSB toggled.
func FlipAll(samples []uint8) []uint8 {
	out := make([]uint8, len(samples))
	for i, v := range samples {
		out[i] = v ^ 1
	}
	return out
}
