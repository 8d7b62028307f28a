// Package chart renders the active-transport share series as a line/point
// chart. Charts show display-scaled values; quantitative interpretation
// belongs to the trend table, which reports true units.
package chart

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	apierrors "atpulse/internal/errors"
	"atpulse/internal/mobility"
)

// palette cycles across chart series.
var palette = []color.RGBA{
	{R: 70, G: 130, B: 180, A: 255},
	{R: 178, G: 34, B: 34, A: 255},
	{R: 34, G: 139, B: 34, A: 255},
	{R: 218, G: 165, B: 32, A: 255},
	{R: 106, G: 90, B: 205, A: 255},
	{R: 205, G: 92, B: 92, A: 255},
}

// SaveSeriesChart draws one line-with-points series per chart label
// ("<country>:<category>") and writes a PNG to the output directory.
func SaveSeriesChart(points []mobility.SeriesPoint, outputDir, fileName string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if len(points) == 0 {
		return apierrors.NewDataError("no series points to chart", nil)
	}

	p := plot.New()
	p.Title.Text = "Active transport as share of travel time"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Share of travel time (display-scaled)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	byLabel := make(map[string]plotter.XYs)
	for _, pt := range points {
		byLabel[pt.Label] = append(byLabel[pt.Label], plotter.XY{X: float64(pt.Year), Y: pt.Share})
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for i, label := range labels {
		xys := byLabel[label]
		sort.Slice(xys, func(a, b int) bool { return xys[a].X < xys[b].X })

		line, pts, err := plotter.NewLinePoints(xys)
		if err != nil {
			return apierrors.NewExportError(fmt.Sprintf("build series %s", label), err)
		}
		c := palette[i%len(palette)]
		line.Color = c
		pts.Color = c
		pts.Radius = vg.Points(2.5)

		p.Add(line, pts)
		p.Legend.Add(label, line, pts)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return apierrors.NewStorageError("create output directory", err)
	}
	fullPath := filepath.Join(outputDir, fileName)

	logger.Info("writing series chart",
		slog.String("path", fullPath),
		slog.Int("series", len(labels)))

	if err := p.Save(10*vg.Inch, 6*vg.Inch, fullPath); err != nil {
		return apierrors.NewExportError(fmt.Sprintf("save chart %s", fullPath), err)
	}
	return nil
}
