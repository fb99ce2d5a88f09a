package model

// Reminder is a one-shot notification scheduled ahead of a reservation.
// SendAt is an absolute epoch-second instant and is never updated; the
// cleanup sweep deletes reminders once expired or once their reservation
// is gone.
type Reminder struct {
	ID            string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	SendAt        int64  `json:"send_at" bson:"send_at" validate:"required,min=1"`
	ChannelID     string `json:"channel_id" bson:"channel_id" validate:"required,min=1,max=20"`
	Text          string `json:"text" bson:"text" validate:"required"`
	ReservationID string `json:"reservation_id" bson:"reservation_id" validate:"required,mongodb"`
}
