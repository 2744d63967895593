package models

import "time"

// Reservation is a confirmed booking of a room by a user.
//
// Dates are stored as "2006-01-02" strings and times as "15:04" strings.
// A reservation whose EndTime is lexically <= its StartTime crosses midnight,
// and its EndDate is the day after StartDate; otherwise EndDate == StartDate.
type Reservation struct {
	ID        string    `bson:"id" json:"id"`
	RoomID    string    `bson:"roomId" json:"roomId"`
	OwnerID   string    `bson:"ownerId" json:"ownerId"`
	StartDate string    `bson:"startDate" json:"startDate"` // e.g., "2026-06-25"
	EndDate   string    `bson:"endDate" json:"endDate"`
	StartTime string    `bson:"startTime" json:"startTime"` // e.g., "09:30"
	EndTime   string    `bson:"endTime" json:"endTime"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
