package db

import "database/sql"

type (
	// Cover is an image the experiments embed into
	Cover struct {
		ID     int64
		Name   string
		Source string // "synthetic" or a file path
		Width  int
		Height int
		// Unique constraint on (Name, Width, Height)
	}

	// Result is one RS report of one stego image
	Result struct {
		ID       int64
		CoverID  int64
		Channel  string
		Strategy string

		// TargetRate is the requested share of capacity, 0..1
		TargetRate   float64
		PayloadBytes int
		// EmbeddedRate counts sentinel bits too, relative to all samples
		EmbeddedRate float64
		Recovered    bool

		Groups     int
		RM         float64
		SM         float64
		RNegM      float64
		SNegM      float64
		Smoothness float64
		Verdict    string
		// EstimatedRate is invalid when the quadratic had no usable root
		EstimatedRate sql.NullFloat64

		// Unique constraint on (CoverID, Channel, Strategy, TargetRate)
	}

	// CurvePoint averages results of one target rate
	CurvePoint struct {
		TargetRate       float64 `json:"target_rate"`
		Samples          int     `json:"samples"`
		AvgRM            float64 `json:"avg_r_m"`
		AvgSM            float64 `json:"avg_s_m"`
		AvgRNegM         float64 `json:"avg_r_neg_m"`
		AvgSNegM         float64 `json:"avg_s_neg_m"`
		AvgEstimatedRate float64 `json:"avg_estimated_rate"`
		RecoveredRate    float64 `json:"recovered_rate"`
	}

	// VerdictStats counts verdicts per target rate
	VerdictStats struct {
		TargetRate float64 `json:"target_rate"`
		Verdict    string  `json:"verdict"`
		Count      int     `json:"count"`
	}
)
