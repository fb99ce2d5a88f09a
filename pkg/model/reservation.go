package model

import (
	"time"
)

// Reservation is a durable booking of the room. Start and duration are
// minute-of-day offsets on the 15-minute grid; Day is the UTC storage day key
// ("2006-01-02"). The two lifecycle flags are mutually exclusive.
type Reservation struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Day         string    `json:"day" bson:"day" validate:"required,datetime=2006-01-02"`
	StartMinute int       `json:"start_minute" bson:"start_minute" validate:"min=0,max=1439,grid_aligned"`
	DurationMin int       `json:"duration_min" bson:"duration_min" validate:"required,min=15"`
	BookerID    string    `json:"booker_id" bson:"booker_id" validate:"required,min=1,max=20"`
	Attendees   int       `json:"attendees" bson:"attendees" validate:"required,min=1,max=50"`
	AttendeeIDs []string  `json:"attendee_ids,omitempty" bson:"attendee_ids,omitempty" validate:"omitempty,dive,min=1"`
	InProgress  bool      `json:"in_progress" bson:"in_progress"`
	Finished    bool      `json:"finished" bson:"finished"`
	Name        string    `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=1,max=40"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// EndMinute is the exclusive end offset of the reservation within its day.
func (r *Reservation) EndMinute() int {
	return r.StartMinute + r.DurationMin
}
