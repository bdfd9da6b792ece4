package rs

import "fmt"

// Verdict is an advisory reading of the zero-shift R and S percentages.
// The thresholds are heuristic and not statistically calibrated.
type Verdict int

const (
	Natural Verdict = iota
	Embedded
	Saturated
)

// Judge compares R_M and S_M. A gap within margin reads as Saturated.
func Judge(rm, sm, margin float64) Verdict {
	switch {
	case rm-sm > margin:
		return Natural
	case sm-rm > margin:
		return Embedded
	default:
		return Saturated
	}
}

func (v Verdict) String() string {
	switch v {
	case Natural:
		return "likely natural cover or low embedding"
	case Embedded:
		return "likely high random-LSB embedding"
	case Saturated:
		return "consistent with ~50% random LSB saturation"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

func (v Verdict) MarshalText() ([]byte, error) {
	switch v {
	case Natural:
		return []byte("natural"), nil
	case Embedded:
		return []byte("embedded"), nil
	case Saturated:
		return []byte("saturated"), nil
	}
	return nil, fmt.Errorf("unknown verdict %d", int(v))
}
