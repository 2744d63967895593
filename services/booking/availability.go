package booking

import (
	"fmt"
	"sort"

	"roomly/models"
)

// bookedInterval is a reservation projected onto a single date's
// minute-of-day axis, clipped to [0, 1440).
type bookedInterval struct {
	start int
	end   int
}

// projectOntoDate clips a reservation to the given date. A reservation that
// starts on the date but ends later occupies [start, 1440); one that started
// earlier and ends on the date occupies [0, end). Reservations not touching
// the date at all yield ok=false.
func projectOntoDate(res models.Reservation, date string) (bookedInterval, bool) {
	startsHere := res.StartDate == date
	endsHere := res.EndDate == date

	switch {
	case startsHere && endsHere:
		return bookedInterval{TimeToMinutes(res.StartTime), TimeToMinutes(res.EndTime)}, true
	case startsHere:
		return bookedInterval{TimeToMinutes(res.StartTime), minutesPerDay}, true
	case endsHere:
		return bookedInterval{0, TimeToMinutes(res.EndTime)}, true
	default:
		return bookedInterval{}, false
	}
}

// mergeIntervals sorts booked intervals by start and coalesces any that
// overlap or touch into maximal blocks.
func mergeIntervals(intervals []bookedInterval) []bookedInterval {
	if len(intervals) == 0 {
		return nil
	}
	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].start == intervals[j].start {
			return intervals[i].end < intervals[j].end
		}
		return intervals[i].start < intervals[j].start
	})

	merged := []bookedInterval{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if iv.start <= last.end {
			if iv.end > last.end {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// FreeWindows computes the free minute-of-day windows on one date for the
// given reservation set, ascending by start. Windows shorter than
// minDuration are dropped when minDuration > 0. The same reservation set
// always yields the same ordered result.
func FreeWindows(reservations []models.Reservation, date string, minDuration int) []models.AvailableInterval {
	var booked []bookedInterval
	for _, res := range reservations {
		if iv, ok := projectOntoDate(res, date); ok {
			booked = append(booked, iv)
		}
	}
	merged := mergeIntervals(booked)

	var windows []models.AvailableInterval
	cursor := 0
	for _, block := range merged {
		if block.start > cursor {
			windows = appendWindow(windows, cursor, block.start, minDuration)
		}
		if block.end > cursor {
			cursor = block.end
		}
	}
	if cursor < minutesPerDay {
		windows = appendWindow(windows, cursor, minutesPerDay, minDuration)
	}
	return windows
}

func appendWindow(windows []models.AvailableInterval, start, end, minDuration int) []models.AvailableInterval {
	if minDuration > 0 && end-start < minDuration {
		return windows
	}
	return append(windows, models.AvailableInterval{
		Start: start,
		End:   end,
		Label: fmt.Sprintf("%s - %s", MinutesToTime(start), MinutesToTime(end)),
	})
}

// AvailableWindows fetches the room's reservations touching the date and
// returns its free windows. The inclusive date-range filter already catches
// midnight-spanning reservations that started the previous day.
func (e *DefaultSchedulingEngine) AvailableWindows(roomID, date string, minDuration int) ([]models.AvailableInterval, error) {
	if ok, err := e.RoomRepo.Exists(roomID); err != nil {
		return nil, fmt.Errorf("failed to check room %s: %w", roomID, err)
	} else if !ok {
		return nil, &NotFoundError{Kind: "room", ID: roomID}
	}
	reservations, err := e.ReservationRepo.GetByRoomAndDateRange(roomID, date, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations for room %s on %s: %w", roomID, date, err)
	}
	return FreeWindows(reservations, date, minDuration), nil
}
