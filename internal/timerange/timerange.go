package timerange

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/Domenick1991/roombooking/internal/domain"
)

// Whole-hour UTC offsets accepted for the configured timezone.
const (
	MinOffset = -12
	MaxOffset = 14
)

var rangeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})-(\d{1,2}):(\d{2})$`)

// Location returns a fixed zone for a whole-hour UTC offset.
func Location(offset int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", offset), offset*3600)
}

// FormatOffset renders an offset with an explicit sign, e.g. "+3", "-5", "+0".
func FormatOffset(offset int) string {
	return fmt.Sprintf("%+d", offset)
}

// ParseOffset parses a stored offset string like "+3" or "-5".
func ParseOffset(s string) (int, error) {
	offset, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse offset %q: %w", s, err)
	}
	if offset < MinOffset || offset > MaxOffset {
		return 0, domain.ErrOffsetOutOfRange
	}
	return offset, nil
}

// ParseRange resolves a wall-clock "HH:MM-HH:MM" expression against the date
// of now in the given offset zone. Hours may be unpadded; minutes are always
// two digits. Returns ErrInvalidTimeFormat on malformed input and
// ErrInvalidTimeRange when the start is not strictly before the end.
func ParseRange(expr string, offset int, now time.Time) (time.Time, time.Time, error) {
	m := rangeRe.FindStringSubmatch(expr)
	if m == nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidTimeFormat
	}

	loc := Location(offset)
	today := now.In(loc)

	start, err := timeOfDay(m[1], m[2], today, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := timeOfDay(m[3], m[4], today, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, domain.ErrInvalidTimeRange
	}
	return start, end, nil
}

func timeOfDay(hourStr, minStr string, day time.Time, loc *time.Location) (time.Time, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour > 23 {
		return time.Time{}, domain.ErrInvalidTimeFormat
	}
	min, err := strconv.Atoi(minStr)
	if err != nil || min > 59 {
		return time.Time{}, domain.ErrInvalidTimeFormat
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, loc), nil
}
