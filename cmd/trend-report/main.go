// Command trend-report runs the active-transport pipeline over a CSV
// extract of time-use diary records and writes the series table, trend
// table, Excel workbook and chart to the output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"atpulse/internal/chart"
	"atpulse/internal/config"
	"atpulse/internal/exporter"
	"atpulse/internal/infrastructure"
	"atpulse/internal/mobility"
	"atpulse/internal/records"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to configuration file")
	recordsFile := flag.String("records", "", "activity records CSV (overrides config)")
	outputDir := flag.String("out", "", "output directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.NewLogger(cfg.Logging)

	if *recordsFile != "" {
		cfg.Paths.RecordsFile = *recordsFile
	}
	if *outputDir != "" {
		cfg.Paths.OutputDir = *outputDir
	}

	opts, err := cfg.PipelineOptions()
	if err != nil {
		logger.Error("Invalid pipeline configuration", "error", err)
		os.Exit(1)
	}

	recs, stats, err := records.Load(cfg.Paths.RecordsFile, logger)
	if err != nil {
		logger.Error("Failed to load activity records", "error", err)
		os.Exit(1)
	}
	if len(recs) == 0 {
		logger.Error("No usable activity records found",
			"path", cfg.Paths.RecordsFile,
			"skipped", stats.Skipped)
		os.Exit(1)
	}

	analyzer := mobility.NewAnalyzer(opts, logger)
	analyzer.SetMaxConcurrency(cfg.Pipeline.MaxConcurrency)

	result, err := analyzer.Analyze(context.Background(), recs)
	if err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	csvWriter := exporter.NewCSVWriter(cfg.Paths.OutputDir, logger)
	if err := csvWriter.WriteSeriesCSV("active_transport_series.csv", result.Series); err != nil {
		logger.Error("Failed to write series table", "error", err)
		os.Exit(1)
	}
	if err := csvWriter.WriteTrendCSV("active_transport_trends.csv", result.Trends); err != nil {
		logger.Error("Failed to write trend table", "error", err)
		os.Exit(1)
	}
	if err := csvWriter.WriteDiagnosticsCSV("active_transport_diagnostics.csv", result.Diagnostics); err != nil {
		logger.Error("Failed to write diagnostics table", "error", err)
		os.Exit(1)
	}
	if err := exporter.WriteWorkbook(result, cfg.Paths.OutputDir, "active_transport_report.xlsx", logger); err != nil {
		logger.Error("Failed to write workbook", "error", err)
		os.Exit(1)
	}
	if len(result.Series) > 0 {
		if err := chart.SaveSeriesChart(result.Series, cfg.Paths.OutputDir, "active_transport_series.png", logger); err != nil {
			logger.Error("Failed to write chart", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Trend report generated",
		"output_dir", cfg.Paths.OutputDir,
		"records", stats.Loaded,
		"series_rows", len(result.Series),
		"trend_rows", len(result.Trends),
		"diagnostics", len(result.Diagnostics))

	printTrendSummary(result)
}

func printTrendSummary(result *mobility.Result) {
	fmt.Println("\n=== Active Transport Trends ===")
	for _, tr := range result.Trends {
		marker := " "
		if tr.Significant {
			marker = "*"
		}
		fmt.Printf("%s %-4s %-5s %+.3f pp/year (p=%.3f, n=%d)\n",
			marker, tr.Country, tr.Category, tr.SlopePctPerYear, tr.PValue, tr.Points)
	}
	if len(result.Diagnostics) > 0 {
		fmt.Printf("\n%d diagnostic(s); see active_transport_diagnostics.csv\n", len(result.Diagnostics))
	}
}
