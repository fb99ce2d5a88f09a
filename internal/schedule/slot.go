// Package schedule computes when the room is free and which concrete booking
// options to offer. Everything here is pure interval arithmetic on
// minute-of-day offsets; persistence and formatting live elsewhere.
package schedule

import (
	"huddle/pkg/model"
	"huddle/pkg/timegrid"
)

// Span is an occupied stretch of the day.
type Span struct {
	Start    int
	Duration int
}

// FreeSlot is a contiguous stretch of the day, either free time carved out
// between reservations or an occupied view of an existing reservation (in
// listings). End is exclusive. Ref is only meaningful within a single
// suggestion or listing batch.
type FreeSlot struct {
	Day         string
	Start       int
	End         int
	Duration    int
	Ref         int
	Reservation *model.Reservation

	complete bool
}

func newSlot(day string, start int) *FreeSlot {
	return &FreeSlot{
		Day:      day,
		Start:    start,
		End:      timegrid.DayInMins,
		Duration: -1,
	}
}

// closeAt tries to complete the slot at end. A close that would leave the
// slot shorter than minDuration is discarded and the slot restarts at
// altStart instead, absorbing the too-short gap.
func (s *FreeSlot) closeAt(end, altStart, minDuration int) {
	if end-s.Start < minDuration {
		s.Start = altStart
		return
	}
	s.End = end
	s.Duration = s.End - s.Start
	s.complete = true
}

// Complete reports whether the slot has been closed.
func (s *FreeSlot) Complete() bool {
	return s.complete
}

// ReservationView wraps a reservation as an occupied slot for listings.
func ReservationView(res *model.Reservation) *FreeSlot {
	return &FreeSlot{
		Day:         res.Day,
		Start:       res.StartMinute,
		End:         res.EndMinute(),
		Duration:    res.DurationMin,
		Reservation: res,
		complete:    true,
	}
}
