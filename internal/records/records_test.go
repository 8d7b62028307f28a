package records

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "atpulse/internal/errors"
)

func TestReadParsesWellFormedCSV(t *testing.T) {
	csv := strings.Join([]string{
		"country,year,main_activity_code,travel_mode_code,duration_minutes",
		"NL,1985,43,0,30",
		"NL,1985,63,7,45.5",
		"UK,2000,44,,12",
	}, "\n")

	recs, stats, err := Read(strings.NewReader(csv), slog.Default())
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, 3, stats.Loaded)
	assert.Equal(t, 0, stats.Skipped)

	assert.Equal(t, "NL", recs[0].Country)
	assert.Equal(t, 1985, recs[0].Year)
	assert.Equal(t, 43, recs[0].MainActivityCode)
	assert.InDelta(t, 45.5, recs[1].DurationMinutes, 1e-9)
	assert.Equal(t, 0, recs[2].TravelModeCode, "blank mode means no mode recorded")
}

func TestReadAcceptsHeaderVariants(t *testing.T) {
	csv := strings.Join([]string{
		"Country,Survey Year,MainActivity,TravelMode,Duration",
		"US,1998,43,0,20",
	}, "\n")

	recs, _, err := Read(strings.NewReader(csv), nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "US", recs[0].Country)
	assert.Equal(t, 1998, recs[0].Year)
}

func TestReadSkipsMalformedRows(t *testing.T) {
	csv := strings.Join([]string{
		"country,year,main_activity_code,travel_mode_code,duration_minutes",
		"NL,1985,43,0,30",
		"NL,not-a-year,43,0,30",
		"NL,1985,43,0,-5",
		"NL,1985,43,0",
		",1985,43,0,30",
	}, "\n")

	recs, stats, err := Read(strings.NewReader(csv), slog.Default())
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, 5, stats.Rows)
	assert.Equal(t, 1, stats.Loaded)
	assert.Equal(t, 4, stats.Skipped)
}

func TestReadRejectsMissingColumns(t *testing.T) {
	csv := "country,year,duration_minutes\nNL,1985,30\n"

	_, _, err := Read(strings.NewReader(csv), nil)
	require.Error(t, err)

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeParsing, appErr.Type)
	assert.Contains(t, appErr.Message, "main_activity_code")
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load("/nonexistent/records.csv", nil)
	require.Error(t, err)

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeStorage, appErr.Type)
}
