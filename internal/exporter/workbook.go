package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apierrors "atpulse/internal/errors"
	"atpulse/internal/mobility"
)

const (
	sheetSeries      = "Series"
	sheetTrends      = "Trends"
	sheetDiagnostics = "Diagnostics"
)

// WriteWorkbook writes the full analysis result as one Excel workbook with
// Series, Trends and Diagnostics sheets.
func WriteWorkbook(result *mobility.Result, outputDir, fileName string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	fullPath := filepath.Join(outputDir, fileName)

	logger.Info("writing Excel workbook",
		slog.String("path", fullPath),
		slog.Int("series_rows", len(result.Series)),
		slog.Int("trend_rows", len(result.Trends)))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return apierrors.NewStorageError("create output directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetSeries)
	writeSheet(f, sheetSeries, seriesHeaders, seriesRows(result.Series), 12)

	if _, err := f.NewSheet(sheetTrends); err != nil {
		return apierrors.NewExportError("create trends sheet", err)
	}
	writeSheet(f, sheetTrends, trendHeaders, trendRows(result.Trends), 18)

	if _, err := f.NewSheet(sheetDiagnostics); err != nil {
		return apierrors.NewExportError("create diagnostics sheet", err)
	}
	writeSheet(f, sheetDiagnostics, diagnosticHeaders, diagnosticRows(result.Diagnostics), 24)

	if err := f.SaveAs(fullPath); err != nil {
		return apierrors.NewExportError(fmt.Sprintf("save workbook %s", fullPath), err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string, colWidth float64) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, colWidth)
	}
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}
}
