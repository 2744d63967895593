package models

// BookingRequestInput is the payload for creating a reservation.
type BookingRequestInput struct {
	RoomID    string `json:"roomId" binding:"required"`
	Date      string `json:"date" binding:"required"`      // "2006-01-02"
	StartTime string `json:"startTime" binding:"required"` // "15:04"
	EndTime   string `json:"endTime" binding:"required"`
}

// BookingResponse is returned on a successful booking. Previous holds the
// overwritten reservation's prior state when WasUpdated is true.
type BookingResponse struct {
	Reservation Reservation  `json:"reservation"`
	WasUpdated  bool         `json:"wasUpdated"`
	Previous    *Reservation `json:"previous,omitempty"`
}

// ConflictDetail describes an overlapping reservation held by another user,
// including suggested alternative slots. Surfaced verbatim to end users.
type ConflictDetail struct {
	OccupantID   string `json:"occupantId"`
	OccupantName string `json:"occupantName"`
	StartDate    string `json:"startDate"`
	StartTime    string `json:"startTime"`
	EndDate      string `json:"endDate"`
	EndTime      string `json:"endTime"`
	Suggestion   string `json:"suggestion"`
}
