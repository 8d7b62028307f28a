package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atpulse/internal/mobility"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Pipeline.MinYearsForSeries)
	assert.InDelta(t, 0.05, cfg.Pipeline.SignificanceAlpha, 1e-9)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "data/activity_records.csv", cfg.Paths.RecordsFile)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
pipeline:
  country_allow_list: ["UK", "US", "NL"]
  min_year_exclusive:
    US: 1998
    NL: 1975
  bike_display_scale:
    UK: 5
    US: 5
  trend_exclusions:
    - country: UK
      category: bike
      year: 2005
    - country: US
      category: walk
      year: 2000
      at_or_before: true
  min_years_for_series: 4
paths:
  records_file: testdata/records.csv
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"UK", "US", "NL"}, cfg.Pipeline.CountryAllowList)
	assert.Equal(t, 1998, cfg.Pipeline.MinYearExclusive["US"])
	assert.Equal(t, 4, cfg.Pipeline.MinYearsForSeries)
	assert.InDelta(t, 0.05, cfg.Pipeline.SignificanceAlpha, 1e-9, "unset fields keep defaults")

	opts, err := cfg.PipelineOptions()
	require.NoError(t, err)
	assert.InDelta(t, 5, opts.BikeScale("UK"), 1e-9)
	assert.InDelta(t, 1, opts.BikeScale("NL"), 1e-9)
	assert.True(t, opts.Excluded("UK", mobility.CategoryBike, 2005))
	assert.False(t, opts.Excluded("UK", mobility.CategoryBike, 2004))
	assert.True(t, opts.Excluded("US", mobility.CategoryWalk, 1999), "at_or_before covers earlier years")
	assert.False(t, opts.Excluded("US", mobility.CategoryWalk, 2001))
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9000
`)
	t.Setenv("ATPULSE_SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "bad_alpha",
			content: `
pipeline:
  significance_alpha: 1.5
`,
		},
		{
			name: "bad_category",
			content: `
pipeline:
  trend_exclusions:
    - country: UK
      category: scooter
      year: 2005
`,
		},
		{
			name: "bad_scale",
			content: `
pipeline:
  bike_display_scale:
    UK: -5
`,
		},
		{
			name: "bad_log_level",
			content: `
logging:
  level: loud
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}
