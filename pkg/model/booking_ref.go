package model

// BookingRef maps a small integer shown in a listing back to a durable
// reservation. The set for a booker is rebuilt in full on every listing;
// references from an earlier listing are gone once a new one is produced.
type BookingRef struct {
	ID            string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BookerID      string `json:"booker_id" bson:"booker_id" validate:"required,min=1,max=20"`
	Ref           int    `json:"ref" bson:"ref" validate:"required,min=1"`
	ReservationID string `json:"reservation_id" bson:"reservation_id" validate:"required,mongodb"`
}
