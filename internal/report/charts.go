package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/strokeside/rowing-analysis-go/internal/models"
)

// RenderFrontierChart renders the efficiency frontier as a scatter page.
// Each point is (distance km, speed m/s); the frontier is monotone so the
// plot reads as a speed-versus-distance envelope.
func RenderFrontierChart(w io.Writer, title string, frontier []models.FrontierPoint) error {
	data := make([]opts.ScatterData, 0, len(frontier))
	for _, p := range frontier {
		data = append(data, opts.ScatterData{Value: []interface{}{p.DistanceKm, p.SpeedMps}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("points=%d", len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Distance (km)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Speed (m/s)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("frontier", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render frontier chart: %w", err)
	}
	return nil
}

// RenderSplitsChart renders best-split paces as a bar page, one bar per
// standard distance, labelled with the formatted split.
func RenderSplitsChart(w io.Writer, title string, splits []models.SplitRecord) error {
	labels := make([]string, 0, len(splits))
	bars := make([]opts.BarData, 0, len(splits))
	for _, s := range splits {
		labels = append(labels, s.Label)
		bars = append(bars, opts.BarData{
			Value: s.SplitPace.Seconds(),
			Name:  FormatSplit(s.SplitPace, false),
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "split per 500 m (seconds)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Split (s / 500 m)", NameLocation: "middle", NameGap: 40}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("best splits", bars,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render splits chart: %w", err)
	}
	return nil
}
