package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date wire format used throughout the engine.
const DateLayout = "2006-01-02"

const minutesPerDay = 1440

// TimeToMinutes converts a pre-validated "HH:MM" string to minutes from
// midnight, in [0, 1439].
func TimeToMinutes(t string) int {
	hh, mm, _ := strings.Cut(t, ":")
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return h*60 + m
}

// MinutesToTime renders a minute count as "HH:MM", wrapping modulo 1440 so
// cumulative values past midnight roll over cleanly for display.
func MinutesToTime(m int) string {
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// DurationMinutes computes a booking's length from its start and end times.
// An end at or before the start means the booking crosses midnight. This is
// the single home of the wraparound rule; callers must not re-derive it.
func DurationMinutes(startTime, endTime string) int {
	start := TimeToMinutes(startTime)
	end := TimeToMinutes(endTime)
	if end > start {
		return end - start
	}
	return (minutesPerDay - start) + end
}

// CrossesMidnight reports whether a booking with the given times ends on the
// following calendar date.
func CrossesMidnight(startTime, endTime string) bool {
	return endTime <= startTime
}

// ShiftDate moves a "2006-01-02" date by the given number of days,
// handling month and year boundaries.
func ShiftDate(date string, days int) string {
	t, _ := time.ParseInLocation(DateLayout, date, time.UTC)
	return t.AddDate(0, 0, days).Format(DateLayout)
}

// DaysSinceEpoch maps a date onto a monotonic day index (Unix epoch).
func DaysSinceEpoch(date string) int {
	t, _ := time.ParseInLocation(DateLayout, date, time.UTC)
	return int(t.Unix() / 86400)
}
