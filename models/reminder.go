package models

// ReminderPayload is the queued task payload for a reservation reminder.
type ReminderPayload struct {
	ReservationID string `json:"reservationId"`
	RoomID        string `json:"roomId"`
	OwnerID       string `json:"ownerId"`
	StartDate     string `json:"startDate"`
	StartTime     string `json:"startTime"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}
