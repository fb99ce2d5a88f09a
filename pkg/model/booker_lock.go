package model

import "time"

// BookerLock is an advisory lock serializing multi-step operations for one
// booker (purge batch then insert, replace reference set). The _id is derived
// from the booker so a second acquisition fails with a duplicate key.
type BookerLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
