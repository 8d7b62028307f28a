// Package exporter writes the pipeline's result tables to CSV and Excel
// files for charting and reporting.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apierrors "atpulse/internal/errors"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	outputDir string
	logger    *slog.Logger
}

// NewCSVWriter creates a new CSV writer rooted at the output directory.
func NewCSVWriter(outputDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{outputDir: outputDir, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file under the output directory.
func (w *CSVWriter) WriteCSV(fileName string, options WriteOptions) error {
	fullPath := filepath.Join(w.outputDir, fileName)

	w.logger.Info("writing CSV file",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apierrors.NewStorageError("create output directory", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return apierrors.NewStorageError(fmt.Sprintf("create %s", fullPath), err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apierrors.NewExportError("write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apierrors.NewExportError("write headers", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apierrors.NewExportError(fmt.Sprintf("write record %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apierrors.NewExportError("flush CSV", err)
	}
	return nil
}
