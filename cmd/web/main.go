// Command web runs the pipeline once at startup and serves the resulting
// series, trend and diagnostics tables over HTTP, with Prometheus metrics
// describing the run.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atpulse/internal/config"
	"atpulse/internal/infrastructure"
	"atpulse/internal/metrics"
	"atpulse/internal/mobility"
	"atpulse/internal/records"
	transporthttp "atpulse/internal/transport/http"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.NewLogger(cfg.Logging)

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

	analyzer := mobility.NewAnalyzer(opts, logger)
	analyzer.SetMaxConcurrency(cfg.Pipeline.MaxConcurrency)

	start := time.Now()
	result, err := analyzer.Analyze(context.Background(), recs)
	if err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	collector := metrics.NewCollector()
	collector.RecordsLoaded.Set(float64(stats.Loaded))
	collector.RecordsSkipped.Set(float64(stats.Skipped))
	collector.SeriesRows.Set(float64(len(result.Series)))
	collector.TrendRows.Set(float64(len(result.Trends)))
	collector.AnalysisSeconds.Set(elapsed.Seconds())
	for _, d := range result.Diagnostics {
		collector.Diagnostics.WithLabelValues(string(d.Code)).Inc()
	}

	logger.Info("Analysis complete",
		"records", stats.Loaded,
		"series_rows", len(result.Series),
		"trend_rows", len(result.Trends),
		"diagnostics", len(result.Diagnostics),
		"duration", elapsed)

	server := transporthttp.NewServer(cfg.Server, result, collector, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("Received shutdown signal", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
