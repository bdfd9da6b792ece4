package stegano

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/stegolab/stegano/internal/grid"
	"github.com/stegolab/stegano/internal/rs"
)

// Report is the outcome of one RS analysis.
// Percentages are relative to all groups, unchanged groups included.
type Report struct {
	Channel string `json:"channel"`
	Groups  int    `json:"groups"`

	RM    float64 `json:"r_m"`
	SM    float64 `json:"s_m"`
	RNegM float64 `json:"r_neg_m"`
	SNegM float64 `json:"s_neg_m"`

	M    Counts `json:"m"`
	NegM Counts `json:"neg_m"`

	// Flipped holds the same percentages for the channel with every LSB toggled.
	Flipped struct {
		RM    float64 `json:"r_m"`
		SM    float64 `json:"s_m"`
		RNegM float64 `json:"r_neg_m"`
		SNegM float64 `json:"s_neg_m"`
	} `json:"flipped"`

	// Smoothness is the mean |x1-x0| over the unmodified groups.
	Smoothness float64 `json:"smoothness"`

	Verdict Verdict `json:"verdict"`
	// Margin is the R_M-S_M gap, in percentage points, the verdict tolerated.
	Margin float64 `json:"margin"`
	// Rate is the estimated fraction of samples carrying payload, valid when RateOK.
	Rate   float64 `json:"rate"`
	RateOK bool    `json:"rate_ok"`
}

func newReport(c grid.Channel, at, flipped rs.Result, margin float64) *Report {
	r := &Report{
		Channel:    c.String(),
		Groups:     at.Groups,
		RM:         at.RM(),
		SM:         at.SM(),
		RNegM:      at.RNegM(),
		SNegM:      at.SNegM(),
		M:          at.M,
		NegM:       at.NegM,
		Smoothness: at.Smoothness,
		Margin:     margin,
	}
	r.Flipped.RM = flipped.RM()
	r.Flipped.SM = flipped.SM()
	r.Flipped.RNegM = flipped.RNegM()
	r.Flipped.SNegM = flipped.SNegM()
	r.Verdict = rs.Judge(r.RM, r.SM, margin)
	return r
}

// WriteTable writes the report as an aligned table.
func (r *Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "channel\t%s\n", r.Channel)
	fmt.Fprintf(tw, "groups (k=%d)\t%d\n", rs.GroupSize, r.Groups)
	fmt.Fprintf(tw, "mask\tR\tS\tR(flipped)\tS(flipped)\n")
	fmt.Fprintf(tw, "M %s\t%.2f%%\t%.2f%%\t%.2f%%\t%.2f%%\n", rs.BaseMask, r.RM, r.SM, r.Flipped.RM, r.Flipped.SM)
	fmt.Fprintf(tw, "-M %s\t%.2f%%\t%.2f%%\t%.2f%%\t%.2f%%\n", rs.BaseMask.Negate(), r.RNegM, r.SNegM, r.Flipped.RNegM, r.Flipped.SNegM)
	fmt.Fprintf(tw, "smoothness\t%.4f\n", r.Smoothness)
	if r.RateOK {
		fmt.Fprintf(tw, "estimated rate\t%.2f%%\n", r.Rate*100)
	} else {
		fmt.Fprintf(tw, "estimated rate\tn/a\n")
	}
	fmt.Fprintf(tw, "verdict\t%s (margin %.2f)\n", r.Verdict, r.Margin)
	return tw.Flush()
}
