package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, BusinessZone)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw    any
		want   time.Time
		name   string
		wantOK bool
	}{
		{
			name:   "slash delimited",
			raw:    "2026/02/05",
			want:   date(2026, time.February, 5),
			wantOK: true,
		},
		{
			name:   "slash delimited without padding",
			raw:    "2026/2/5",
			want:   date(2026, time.February, 5),
			wantOK: true,
		},
		{
			name:   "hyphen delimited",
			raw:    "2026-02-02",
			want:   date(2026, time.February, 2),
			wantOK: true,
		},
		{
			name:   "surrounding whitespace",
			raw:    "  2025/12/10 ",
			want:   date(2025, time.December, 10),
			wantOK: true,
		},
		{
			name:   "serial number",
			raw:    float64(46058), // 46058 days after 1899-12-30
			want:   date(2026, time.February, 5),
			wantOK: true,
		},
		{
			name:   "serial number with time fraction",
			raw:    46058.75,
			want:   date(2026, time.February, 5),
			wantOK: true,
		},
		{
			name:   "serial number as text",
			raw:    "46058",
			want:   date(2026, time.February, 5),
			wantOK: true,
		},
		{
			name:   "time value keeps only the day",
			raw:    time.Date(2026, time.February, 5, 23, 59, 0, 0, BusinessZone),
			want:   date(2026, time.February, 5),
			wantOK: true,
		},
		{name: "empty string", raw: "", wantOK: false},
		{name: "whitespace only", raw: "   ", wantOK: false},
		{name: "nil", raw: nil, wantOK: false},
		{name: "garbage text", raw: "call back later", wantOK: false},
		{name: "negative serial", raw: float64(-3), wantOK: false},
		{name: "zero serial", raw: float64(0), wantOK: false},
		{name: "implausible serial", raw: float64(9999999), wantOK: false},
		{name: "zero time", raw: time.Time{}, wantOK: false},
		{name: "unsupported type", raw: []string{"2026/02/05"}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDayComparisons(t *testing.T) {
	ref := date(2026, time.February, 5)

	// Inclusive on the reference day regardless of time of day.
	lateSameDay := time.Date(2026, time.February, 5, 18, 30, 0, 0, BusinessZone)
	assert.True(t, OnOrBefore(lateSameDay, ref))
	assert.True(t, OnOrAfter(lateSameDay, ref))
	assert.True(t, SameDay(lateSameDay, ref))

	assert.True(t, OnOrBefore(date(2026, time.February, 4), ref))
	assert.False(t, OnOrBefore(date(2026, time.February, 6), ref))
	assert.True(t, OnOrAfter(date(2026, time.February, 6), ref))
	assert.False(t, OnOrAfter(date(2026, time.February, 4), ref))
}

func TestBusinessDayBefore(t *testing.T) {
	closure := time.Wednesday

	// 2026-02-04 is a Wednesday: the reminder moves back two days.
	wednesday := date(2026, time.February, 4)
	require.Equal(t, time.Wednesday, wednesday.Weekday())
	got := BusinessDayBefore(wednesday, closure)
	assert.True(t, got.Equal(date(2026, time.February, 2)))

	// Any other weekday: exactly one day earlier.
	thursday := date(2026, time.February, 5)
	require.Equal(t, time.Thursday, thursday.Weekday())
	got = BusinessDayBefore(thursday, closure)
	assert.True(t, got.Equal(date(2026, time.February, 4)))

	// A different configured closure day shifts the two-day case with it.
	got = BusinessDayBefore(thursday, time.Thursday)
	assert.True(t, got.Equal(date(2026, time.February, 3)))
}

func TestDayOfWeek(t *testing.T) {
	assert.Equal(t, time.Thursday, DayOfWeek(date(2026, time.February, 5)))
	assert.Equal(t, time.Wednesday, DayOfWeek(date(2026, time.February, 4)))
}
