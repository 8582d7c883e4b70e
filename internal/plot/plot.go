// Package plot renders ROC and precision-recall curves as an HTML page.
package plot

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	auc "github.com/jamesainslie/go-auc"
)

const (
	chartWidth  = "640px"
	chartHeight = "480px"
	lineWidth   = 2
)

// Render writes a page with the ROC curve and the precision-recall curve of
// the named dataset. The AUC of each curve is shown in its subtitle.
func Render[F auc.Float](w io.Writer, name string, roc, pr auc.Curve[F]) error {
	page := components.NewPage()
	page.PageTitle = name
	page.AddCharts(
		buildChart("ROC", "False positive rate", "True positive rate", roc),
		buildChart("Precision-Recall", "Recall", "Precision", pr),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}

func buildChart[F auc.Float](title, xName, yName string, c auc.Curve[F]) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle(c),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: xName, Min: 0, Max: 1}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: yName, Min: 0, Max: 1}),
	)

	data := make([]opts.LineData, 0, c.Len())
	for x, y := range c.Points() {
		data = append(data, opts.LineData{Value: []float64{float64(x), float64(y)}})
	}

	line.AddSeries(title, data,
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
	)
	return line
}

func subtitle[F auc.Float](c auc.Curve[F]) string {
	if c.Len() == 0 {
		return "No data"
	}
	return fmt.Sprintf("AUC %.4f", float64(c.AUC()))
}
