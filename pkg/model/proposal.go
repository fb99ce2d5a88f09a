package model

import "time"

// Proposal is an unconfirmed booking suggestion. A booker has at most one
// live batch; Ref is the 1-based index of this proposal within that batch.
// Confirming any proposal consumes the whole batch.
type Proposal struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Day         string    `json:"day" bson:"day" validate:"required,datetime=2006-01-02"`
	StartMinute int       `json:"start_minute" bson:"start_minute" validate:"min=0,max=1439,grid_aligned"`
	DurationMin int       `json:"duration_min" bson:"duration_min" validate:"required,min=15"`
	BookerID    string    `json:"booker_id" bson:"booker_id" validate:"required,min=1,max=20"`
	Ref         int       `json:"ref" bson:"ref" validate:"required,min=1,max=4"`
	Attendees   *int      `json:"attendees,omitempty" bson:"attendees,omitempty" validate:"omitempty,min=1,max=50"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
