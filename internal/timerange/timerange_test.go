package timerange

import (
	"testing"
	"time"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	start, end, err := ParseRange("15:00-16:00", 0, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 15, 0, 0, 0, Location(0)).Unix(), start.Unix())
	assert.Equal(t, time.Date(2024, 3, 15, 16, 0, 0, 0, Location(0)).Unix(), end.Unix())
}

func TestParseRange_UnpaddedHour(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	start, end, err := ParseRange("9:00-10:30", 0, now)
	require.NoError(t, err)
	assert.Equal(t, 9, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, 10, end.Hour())
	assert.Equal(t, 30, end.Minute())
}

func TestParseRange_AppliesOffset(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	start, _, err := ParseRange("9:00-10:00", 3, now)
	require.NoError(t, err)

	_, zoneOffset := start.Zone()
	assert.Equal(t, 3*3600, zoneOffset)
	// 9:00 at UTC+3 is 6:00 UTC.
	assert.Equal(t, time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC).Unix(), start.Unix())
}

func TestParseRange_AnchorsToDateInOffsetZone(t *testing.T) {
	// 23:30 UTC is already the next day at UTC+3.
	now := time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)

	start, _, err := ParseRange("9:00-10:00", 3, now)
	require.NoError(t, err)
	assert.Equal(t, 16, start.Day())
}

func TestParseRange_InvalidFormat(t *testing.T) {
	now := time.Now()

	for _, expr := range []string{
		"",
		"15:00",
		"15:00-",
		"15-16",
		"15:0-16:00",
		"abc",
		"15:00-16:00-17:00",
		"25:00-26:00",
		"15:00-16:75",
		"15:00 - 16:00",
	} {
		_, _, err := ParseRange(expr, 0, now)
		assert.ErrorIs(t, err, domain.ErrInvalidTimeFormat, "expr %q", expr)
	}
}

func TestParseRange_InvalidRange(t *testing.T) {
	now := time.Now()

	_, _, err := ParseRange("16:00-15:00", 0, now)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)

	_, _, err = ParseRange("15:00-15:00", 0, now)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestParseOffset(t *testing.T) {
	offset, err := ParseOffset("+3")
	require.NoError(t, err)
	assert.Equal(t, 3, offset)

	offset, err = ParseOffset("-5")
	require.NoError(t, err)
	assert.Equal(t, -5, offset)

	offset, err = ParseOffset("+0")
	require.NoError(t, err)
	assert.Equal(t, 0, offset)

	_, err = ParseOffset("+15")
	assert.ErrorIs(t, err, domain.ErrOffsetOutOfRange)

	_, err = ParseOffset("-13")
	assert.ErrorIs(t, err, domain.ErrOffsetOutOfRange)

	_, err = ParseOffset("abc")
	assert.Error(t, err)
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "+3", FormatOffset(3))
	assert.Equal(t, "-5", FormatOffset(-5))
	assert.Equal(t, "+0", FormatOffset(0))
}
