package booking

import (
	"fmt"
	"time"

	"roomly/utils"

	"go.uber.org/zap"
)

// DefaultSearchWindowDays is how far the nearest-slot search steps away from
// the requested date in each direction. An arbitrary cap, tunable via
// config, not a semantic guarantee.
const DefaultSearchWindowDays = 30

// Suggestion is a bookable alternative slot. Date is empty when the
// suggestion falls on the requested date.
type Suggestion struct {
	Date  string
	Start int
	End   int
}

// Format renders a suggestion as "HH:MM-HH:MM", prefixed with its date when
// it falls on a different day than requested.
func (s *Suggestion) Format() string {
	span := fmt.Sprintf("%s-%s", MinutesToTime(s.Start), MinutesToTime(s.End))
	if s.Date != "" {
		return fmt.Sprintf("%s at %s", s.Date, span)
	}
	return span
}

// FindNearestSlots searches for the closest bookable slot before and after a
// rejected request's attempted start. The two directions are independent and
// either may come up empty. The search is best effort: a failed availability
// fetch for one day is logged and skipped rather than failing the whole
// suggestion.
func (e *DefaultSchedulingEngine) FindNearestSlots(roomID, date string, attemptStart, duration int, now time.Time) (before, after *Suggestion) {
	windows, err := e.AvailableWindows(roomID, date, duration)
	if err != nil {
		utils.GetLogger().Error("FindNearestSlots: failed to fetch same-day windows",
			zap.String("roomID", roomID), zap.String("date", date), zap.Error(err))
		windows = nil
	}

	// Before, same day: the window ending latest at or before the attempt;
	// the suggested slot is its last duration-length sub-window.
	for _, w := range windows {
		if w.End <= attemptStart {
			before = &Suggestion{Start: w.End - duration, End: w.End}
		}
	}

	// After, same day: the earliest window starting strictly after the
	// attempt; the suggested slot is its first duration-length sub-window.
	for _, w := range windows {
		if w.Start > attemptStart {
			after = &Suggestion{Start: w.Start, End: w.Start + duration}
			break
		}
	}

	if before == nil {
		before = e.searchBackward(roomID, date, duration, now)
	}
	if after == nil {
		after = e.searchForward(roomID, date, duration)
	}
	return before, after
}

// searchBackward steps one date at a time toward the past, stopping at today
// (earlier dates cannot be booked) or at the search bound. On the first day
// with an eligible window it suggests the latest one.
func (e *DefaultSchedulingEngine) searchBackward(roomID, date string, duration int, now time.Time) *Suggestion {
	today := now.Format(DateLayout)
	d := date
	for i := 0; i < e.searchWindowDays(); i++ {
		d = ShiftDate(d, -1)
		if d < today {
			break
		}
		windows, err := e.AvailableWindows(roomID, d, duration)
		if err != nil {
			utils.GetLogger().Error("searchBackward: failed to fetch windows",
				zap.String("roomID", roomID), zap.String("date", d), zap.Error(err))
			continue
		}
		if len(windows) > 0 {
			w := windows[len(windows)-1]
			return &Suggestion{Date: d, Start: w.End - duration, End: w.End}
		}
	}
	return nil
}

// searchForward steps one date at a time toward the future up to the search
// bound. Forward dates are never in the past, so no date exclusion is
// needed. On the first day with an eligible window it suggests the earliest
// one.
func (e *DefaultSchedulingEngine) searchForward(roomID, date string, duration int) *Suggestion {
	d := date
	for i := 0; i < e.searchWindowDays(); i++ {
		d = ShiftDate(d, 1)
		windows, err := e.AvailableWindows(roomID, d, duration)
		if err != nil {
			utils.GetLogger().Error("searchForward: failed to fetch windows",
				zap.String("roomID", roomID), zap.String("date", d), zap.Error(err))
			continue
		}
		if len(windows) > 0 {
			w := windows[0]
			return &Suggestion{Date: d, Start: w.Start, End: w.Start + duration}
		}
	}
	return nil
}

// FormatSuggestions composes the user-facing suggestion text from whichever
// of the two directions produced a slot. Never empty: callers surface this
// verbatim inside conflict messages.
func FormatSuggestions(before, after *Suggestion) string {
	switch {
	case before != nil && after != nil:
		return fmt.Sprintf("Nearest available slots: %s or %s", before.Format(), after.Format())
	case before != nil:
		return fmt.Sprintf("Nearest available slot: %s", before.Format())
	case after != nil:
		return fmt.Sprintf("Nearest available slot: %s", after.Format())
	default:
		return "No available slots found"
	}
}
