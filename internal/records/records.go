// Package records loads activity-level survey episodes from CSV extracts of
// the harmonized time-use archive. The pipeline itself treats the record
// source as an abstract tabular provider; this package is that provider.
package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	apierrors "atpulse/internal/errors"
	"atpulse/internal/mobility"
)

// LoadStats reports what the loader kept and dropped.
type LoadStats struct {
	Rows    int
	Loaded  int
	Skipped int
}

// Load reads activity records from a CSV file. Expected columns (header
// names are matched case-insensitively, with a few archive variants):
// country, year, main activity code, travel mode code, duration minutes.
// Malformed rows are skipped and counted, never fatal.
func Load(path string, logger *slog.Logger) ([]mobility.ActivityRecord, LoadStats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, apierrors.NewStorageError(fmt.Sprintf("open records file %s", path), err)
	}
	defer file.Close()

	records, stats, err := Read(file, logger)
	if err != nil {
		return nil, stats, err
	}

	logger.Info("loaded activity records",
		"path", path,
		"rows", stats.Rows,
		"loaded", stats.Loaded,
		"skipped", stats.Skipped)
	return records, stats, nil
}

// Read parses activity records from an open CSV stream.
func Read(r io.Reader, logger *slog.Logger) ([]mobility.ActivityRecord, LoadStats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, LoadStats{}, apierrors.NewParsingError("read CSV header", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, LoadStats{}, err
	}

	var out []mobility.ActivityRecord
	var stats LoadStats
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, apierrors.NewParsingError(fmt.Sprintf("read CSV row %d", stats.Rows+2), err)
		}
		stats.Rows++

		rec, err := parseRow(row, cols)
		if err != nil {
			stats.Skipped++
			logger.Warn("skipping malformed record",
				"row", stats.Rows+1,
				"error", err)
			continue
		}
		if !rec.IsValid() {
			stats.Skipped++
			logger.Warn("skipping invalid record",
				"row", stats.Rows+1,
				"country", rec.Country,
				"year", rec.Year)
			continue
		}
		out = append(out, rec)
		stats.Loaded++
	}
	return out, stats, nil
}

// columns holds the resolved header indices.
type columns struct {
	country  int
	year     int
	activity int
	mode     int
	duration int
}

func mapColumns(header []string) (columns, error) {
	cols := columns{country: -1, year: -1, activity: -1, mode: -1, duration: -1}
	for i, raw := range header {
		switch normalizeHeader(raw) {
		case "country", "countrycode":
			cols.country = i
		case "year", "surveyyear":
			cols.year = i
		case "mainactivitycode", "mainactivity", "act", "activity":
			cols.activity = i
		case "travelmodecode", "travelmode", "mode":
			cols.mode = i
		case "durationminutes", "duration", "minutes", "time":
			cols.duration = i
		}
	}

	missing := []string{}
	if cols.country < 0 {
		missing = append(missing, "country")
	}
	if cols.year < 0 {
		missing = append(missing, "year")
	}
	if cols.activity < 0 {
		missing = append(missing, "main_activity_code")
	}
	if cols.mode < 0 {
		missing = append(missing, "travel_mode_code")
	}
	if cols.duration < 0 {
		missing = append(missing, "duration_minutes")
	}
	if len(missing) > 0 {
		return cols, apierrors.NewParsingError(
			fmt.Sprintf("CSV header missing columns: %s", strings.Join(missing, ", ")), nil)
	}
	return cols, nil
}

// normalizeHeader lowercases a header cell and strips separators and BOM so
// that "Main_Activity_Code", "main activity code" and "mainActivityCode"
// all resolve to the same key.
func normalizeHeader(raw string) string {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "﻿")
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
	return s
}

func parseRow(row []string, cols columns) (mobility.ActivityRecord, error) {
	var rec mobility.ActivityRecord
	maxIdx := cols.country
	for _, idx := range []int{cols.year, cols.activity, cols.mode, cols.duration} {
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	if len(row) <= maxIdx {
		return rec, fmt.Errorf("row has %d fields, need at least %d", len(row), maxIdx+1)
	}

	rec.Country = strings.TrimSpace(row[cols.country])

	year, err := strconv.Atoi(strings.TrimSpace(row[cols.year]))
	if err != nil {
		return rec, fmt.Errorf("parse year %q: %w", row[cols.year], err)
	}
	rec.Year = year

	activity, err := strconv.Atoi(strings.TrimSpace(row[cols.activity]))
	if err != nil {
		return rec, fmt.Errorf("parse main activity code %q: %w", row[cols.activity], err)
	}
	rec.MainActivityCode = activity

	// Mode is frequently blank for non-travel episodes; blank means 0.
	modeStr := strings.TrimSpace(row[cols.mode])
	if modeStr != "" {
		mode, err := strconv.Atoi(modeStr)
		if err != nil {
			return rec, fmt.Errorf("parse travel mode code %q: %w", row[cols.mode], err)
		}
		rec.TravelModeCode = mode
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(row[cols.duration]), 64)
	if err != nil {
		return rec, fmt.Errorf("parse duration %q: %w", row[cols.duration], err)
	}
	if duration < 0 {
		return rec, fmt.Errorf("negative duration %v", duration)
	}
	rec.DurationMinutes = duration

	return rec, nil
}
