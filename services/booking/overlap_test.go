package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type interval struct {
	startDate, startTime, endDate, endTime string
}

func overlapsIv(a, b interval) bool {
	return Overlaps(
		a.startDate, a.startTime, a.endDate, a.endTime,
		b.startDate, b.startTime, b.endDate, b.endTime,
	)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b interval
		want bool
	}{
		{
			name: "same day overlapping",
			a:    interval{"2026-06-25", "10:00", "2026-06-25", "11:00"},
			b:    interval{"2026-06-25", "10:30", "2026-06-25", "11:30"},
			want: true,
		},
		{
			name: "same day disjoint",
			a:    interval{"2026-06-25", "10:00", "2026-06-25", "11:00"},
			b:    interval{"2026-06-25", "14:00", "2026-06-25", "15:00"},
			want: false,
		},
		{
			name: "touching endpoints do not conflict",
			a:    interval{"2026-06-25", "10:00", "2026-06-25", "11:00"},
			b:    interval{"2026-06-25", "11:00", "2026-06-25", "12:00"},
			want: false,
		},
		{
			name: "containment",
			a:    interval{"2026-06-25", "09:00", "2026-06-25", "17:00"},
			b:    interval{"2026-06-25", "10:00", "2026-06-25", "11:00"},
			want: true,
		},
		{
			name: "midnight-spanning vs next-day same-day",
			a:    interval{"2026-06-26", "23:00", "2026-06-27", "02:00"},
			b:    interval{"2026-06-27", "01:00", "2026-06-27", "03:00"},
			want: true,
		},
		{
			name: "midnight-spanning adjacent across midnight",
			a:    interval{"2026-06-26", "23:00", "2026-06-27", "02:00"},
			b:    interval{"2026-06-27", "02:00", "2026-06-27", "04:00"},
			want: false,
		},
		{
			name: "two midnight-spanning bookings overlapping",
			a:    interval{"2026-06-26", "23:00", "2026-06-27", "02:00"},
			b:    interval{"2026-06-26", "22:00", "2026-06-27", "01:00"},
			want: true,
		},
		{
			name: "two midnight-spanning bookings on different nights",
			a:    interval{"2026-06-26", "23:00", "2026-06-27", "02:00"},
			b:    interval{"2026-06-27", "23:00", "2026-06-28", "02:00"},
			want: false,
		},
		{
			name: "different dates disjoint",
			a:    interval{"2026-06-25", "10:00", "2026-06-25", "11:00"},
			b:    interval{"2026-06-26", "10:00", "2026-06-26", "11:00"},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlapsIv(tt.a, tt.b))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, overlapsIv(tt.b, tt.a))
		})
	}
}

func TestAbsoluteMinutes(t *testing.T) {
	// One minute apart across a month boundary.
	assert.Equal(t, 1, AbsoluteMinutes("2026-03-01", "00:00")-AbsoluteMinutes("2026-02-28", "23:59"))
	// Exactly one day apart.
	assert.Equal(t, 1440, AbsoluteMinutes("2026-06-26", "09:00")-AbsoluteMinutes("2026-06-25", "09:00"))
}
