package booking

import "roomly/models"

// AbsoluteMinutes places a date+time on a single monotonic timeline:
// day-index times 1440 plus the minute of day. Intervals on this axis can be
// compared directly regardless of which dates they touch.
func AbsoluteMinutes(date, t string) int {
	return DaysSinceEpoch(date)*minutesPerDay + TimeToMinutes(t)
}

// Overlaps reports whether two half-open booking intervals intersect.
// Touching endpoints (one booking ending exactly when another starts) do not
// conflict. Because both intervals are mapped to absolute minutes first, the
// same comparison covers same-day and midnight-spanning bookings alike.
func Overlaps(
	aStartDate, aStartTime, aEndDate, aEndTime string,
	bStartDate, bStartTime, bEndDate, bEndTime string,
) bool {
	aStart := AbsoluteMinutes(aStartDate, aStartTime)
	aEnd := AbsoluteMinutes(aEndDate, aEndTime)
	bStart := AbsoluteMinutes(bStartDate, bStartTime)
	bEnd := AbsoluteMinutes(bEndDate, bEndTime)
	return aStart < bEnd && aEnd > bStart
}

// ReservationOverlaps reports whether a reservation intersects the given
// half-open interval.
func ReservationOverlaps(res models.Reservation, startDate, startTime, endDate, endTime string) bool {
	return Overlaps(
		res.StartDate, res.StartTime, res.EndDate, res.EndTime,
		startDate, startTime, endDate, endTime,
	)
}
