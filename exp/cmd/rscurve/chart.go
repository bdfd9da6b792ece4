package main

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"exp/internal/db"
)

// renderCurve draws R_M, S_M, R_-M and S_-M against the embedding rate. The
// estimated rate and the extraction success share a second axis in [0,1].
func renderCurve(outputPath string, curve []*db.CurvePoint) error {
	line := charts.NewLine()

	var xAxisData []string
	series := map[string][]opts.LineData{}
	names := []string{"R_M", "S_M", "R_-M", "S_-M"}
	var estimated, recovered []opts.LineData

	for _, p := range curve {
		xAxisData = append(xAxisData, fmt.Sprintf("%.0f%%", p.TargetRate*100))
		for i, v := range []float64{p.AvgRM, p.AvgSM, p.AvgRNegM, p.AvgSNegM} {
			series[names[i]] = append(series[names[i]], opts.LineData{
				Value: v,
				Name:  fmt.Sprintf("%s=%.2f%% (n=%d)", names[i], v, p.Samples),
			})
		}
		estimated = append(estimated, opts.LineData{
			Value: p.AvgEstimatedRate,
			Name:  fmt.Sprintf("estimated=%.3f (n=%d)", p.AvgEstimatedRate, p.Samples),
		})
		recovered = append(recovered, opts.LineData{
			Value: p.RecoveredRate,
			Name:  fmt.Sprintf("recovered=%.3f (n=%d)", p.RecoveredRate, p.Samples),
		})
	}

	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "RS diagram",
			Subtitle: "Regular and singular groups vs share of capacity used",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Payload / capacity",
			Type: "category",
			Data: xAxisData,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Groups (%)",
			Type: "value",
			AxisLabel: &opts.AxisLabel{
				Formatter: "{value}%",
			},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "5%",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	line.SetXAxis(xAxisData)
	for _, name := range names {
		line.AddSeries(name, series[name]).
			SetSeriesOptions(
				charts.WithLineChartOpts(opts.LineChart{
					Smooth: opts.Bool(true),
				}),
				charts.WithLabelOpts(opts.Label{
					Show: opts.Bool(false),
				}),
			)
	}

	// second axis must exist before series bind to it
	line.ExtendYAxis(opts.YAxis{
		Name: "Rate",
		Type: "value",
		Min:  0,
		Max:  1,
	})
	line.AddSeries("Estimated rate", estimated,
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(true),
			YAxisIndex: 1,
		}),
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)
	line.AddSeries("Recovered", recovered,
		charts.WithLineChartOpts(opts.LineChart{
			YAxisIndex: 1,
		}),
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return line.Render(f)
}
