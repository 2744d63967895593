package models

// AvailableInterval represents a continuous time block available for booking.
type AvailableInterval struct {
	Start int    `json:"start"` // Minutes from midnight
	End   int    `json:"end"`   // Minutes from midnight, up to 1440
	Label string `json:"label"` // e.g., "09:00 - 10:30"
}
