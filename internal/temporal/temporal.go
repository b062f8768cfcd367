// Package temporal normalizes heterogeneous date representations into
// day-granularity calendar dates in the fixed business timezone.
package temporal

import (
	"strconv"
	"strings"
	"time"
)

// BusinessZone is the timezone every classification date lives in. The
// business operates in UTC+9 and never observes daylight saving.
var BusinessZone = time.FixedZone("UTC+9", 9*60*60)

// sheetEpoch is day zero for spreadsheet serial dates (the Lotus/Sheets
// epoch of 1899-12-30).
var sheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, BusinessZone)

// maxSerial bounds serial parsing to plausible calendar dates (year ~2173).
const maxSerial = 100000

// Normalize parses a raw field value into a calendar date. It accepts
// slash-delimited and hyphen-delimited strings, spreadsheet serial numbers,
// and time.Time values. Anything unparseable reports ok=false; callers treat
// that as an absent date, never as an error.
func Normalize(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return Truncate(v), true
	case string:
		return parseString(v)
	case float64:
		return fromSerial(v)
	case int:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	default:
		return time.Time{}, false
	}
}

func parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{"2006/1/2", "2006-1-2"} {
		if t, err := time.ParseInLocation(layout, s, BusinessZone); err == nil {
			return Truncate(t), true
		}
	}

	// Serial numbers sometimes arrive as text cells.
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(n)
	}

	return time.Time{}, false
}

// fromSerial converts a spreadsheet serial number to a date. The fractional
// part encodes time of day and is stripped.
func fromSerial(n float64) (time.Time, bool) {
	if n <= 0 || n >= maxSerial {
		return time.Time{}, false
	}
	return sheetEpoch.AddDate(0, 0, int(n)), true
}

// Truncate strips time of day, leaving midnight in the business timezone.
func Truncate(t time.Time) time.Time {
	t = t.In(BusinessZone)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, BusinessZone)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Truncate(a).Equal(Truncate(b))
}

// OnOrBefore reports whether d falls on or before ref, inclusive of ref.
func OnOrBefore(d, ref time.Time) bool {
	return !Truncate(d).After(Truncate(ref))
}

// OnOrAfter reports whether d falls on or after ref, inclusive of ref.
func OnOrAfter(d, ref time.Time) bool {
	return !Truncate(d).Before(Truncate(ref))
}

// DayOfWeek returns the weekday of d in the business timezone.
func DayOfWeek(d time.Time) time.Weekday {
	return Truncate(d).Weekday()
}

// BusinessDayBefore returns the day-before reminder date for target: one
// calendar day prior, or two when target falls on the weekly closure day,
// landing on the last prior business day.
func BusinessDayBefore(target time.Time, closure time.Weekday) time.Time {
	target = Truncate(target)
	offset := -1
	if target.Weekday() == closure {
		offset = -2
	}
	return target.AddDate(0, 0, offset)
}
