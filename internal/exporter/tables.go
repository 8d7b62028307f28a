package exporter

import (
	"strconv"

	"atpulse/internal/mobility"
)

// Series table columns, long form for charting: one row per
// country/year/category with the (display-scaled) share.
var seriesHeaders = []string{"country", "year", "category", "share", "label"}

// Trend table columns: slope is percentage points per year in true units.
var trendHeaders = []string{"country", "category", "slope_pct_per_year", "p_value", "significant", "scale_adjusted", "points"}

// Diagnostics table columns.
var diagnosticHeaders = []string{"code", "severity", "country", "category", "year", "message"}

func seriesRows(points []mobility.SeriesPoint) [][]string {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Country,
			strconv.Itoa(p.Year),
			p.Category.String(),
			strconv.FormatFloat(p.Share, 'f', 6, 64),
			p.Label,
		})
	}
	return rows
}

func trendRows(trends []mobility.TrendResult) [][]string {
	rows := make([][]string, 0, len(trends))
	for _, tr := range trends {
		rows = append(rows, []string{
			tr.Country,
			tr.Category.String(),
			strconv.FormatFloat(tr.SlopePctPerYear, 'f', 6, 64),
			strconv.FormatFloat(tr.PValue, 'f', 6, 64),
			strconv.FormatBool(tr.Significant),
			strconv.FormatBool(tr.ScaleAdjusted),
			strconv.Itoa(tr.Points),
		})
	}
	return rows
}

func diagnosticRows(diags []mobility.Diagnostic) [][]string {
	rows := make([][]string, 0, len(diags))
	for _, d := range diags {
		year := ""
		if d.Year != 0 {
			year = strconv.Itoa(d.Year)
		}
		rows = append(rows, []string{
			string(d.Code),
			string(d.Severity),
			d.Country,
			d.Category,
			year,
			d.Message,
		})
	}
	return rows
}

// WriteSeriesCSV writes the long-form series table.
func (w *CSVWriter) WriteSeriesCSV(fileName string, points []mobility.SeriesPoint) error {
	return w.WriteCSV(fileName, WriteOptions{
		Headers:   seriesHeaders,
		Records:   seriesRows(points),
		BOMPrefix: true,
	})
}

// WriteTrendCSV writes the trend table.
func (w *CSVWriter) WriteTrendCSV(fileName string, trends []mobility.TrendResult) error {
	return w.WriteCSV(fileName, WriteOptions{
		Headers:   trendHeaders,
		Records:   trendRows(trends),
		BOMPrefix: true,
	})
}

// WriteDiagnosticsCSV writes the diagnostics table.
func (w *CSVWriter) WriteDiagnosticsCSV(fileName string, diags []mobility.Diagnostic) error {
	return w.WriteCSV(fileName, WriteOptions{
		Headers:   diagnosticHeaders,
		Records:   diagnosticRows(diags),
		BOMPrefix: true,
	})
}
