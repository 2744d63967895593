package models

import "time"

// Room is a bookable meeting room. Capacity and location are descriptive
// only; they never constrain booking.
type Room struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Capacity  int       `bson:"capacity,omitempty" json:"capacity,omitempty"`
	Location  string    `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
