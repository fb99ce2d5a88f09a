package chat

import (
	"testing"
	"time"

	"huddle/internal/booking/service"
	"huddle/internal/schedule"
	"huddle/internal/sensor"
	"huddle/pkg/model"
)

func TestFreeResponseAllFreeToday(t *testing.T) {
	result := &service.AvailabilityResult{
		Day:     "2026-09-01",
		AllFree: true,
		Proposals: []*schedule.FreeSlot{
			{Day: "2026-09-01", Start: 600, Duration: 30},
			{Day: "2026-09-01", Start: 630, Duration: 60},
		},
	}

	got := FreeResponse(result, "2026-09-01", 590, 1080, time.UTC)
	want := "I'm free for the rest of the day\n\nThese are the best options:" +
		"\n`1` Sep 01, 2026 at 10:00 for 30 mins" +
		"\n`2` Sep 01, 2026 at 10:30 for 60 mins"
	if got != want {
		t.Errorf("FreeResponse() = %q, want %q", got, want)
	}
}

func TestFreeResponseAllFreeFutureDay(t *testing.T) {
	result := &service.AvailabilityResult{
		Day:     "2026-09-02",
		AllFree: true,
		Proposals: []*schedule.FreeSlot{
			{Day: "2026-09-02", Start: 480, Duration: 30},
		},
	}

	got := FreeResponse(result, "2026-09-01", 590, 1080, time.UTC)
	want := "I'm free all day\n\nThis is the best option:" +
		"\n`1` Sep 02, 2026 at 08:00 for 30 mins"
	if got != want {
		t.Errorf("FreeResponse() = %q, want %q", got, want)
	}
}

func TestFreeResponseAfterLastSlot(t *testing.T) {
	result := &service.AvailabilityResult{Day: "2026-09-01", AllFree: true}

	got := FreeResponse(result, "2026-09-01", 1100, 1080, time.UTC)
	want := "I'm free but I'm not allowed to make bookings after 18:00"
	if got != want {
		t.Errorf("FreeResponse() = %q, want %q", got, want)
	}
}

func TestFreeResponseBookedUntil(t *testing.T) {
	result := &service.AvailabilityResult{
		Day: "2026-09-01",
		Proposals: []*schedule.FreeSlot{
			{Day: "2026-09-01", Start: 630, Duration: 30},
		},
	}

	got := FreeResponse(result, "2026-09-01", 590, 1080, time.UTC)
	want := "I'm booked until 10:30, then I have this option available:" +
		"\n`1` Sep 01, 2026 at 10:30 for 30 mins"
	if got != want {
		t.Errorf("FreeResponse() = %q, want %q", got, want)
	}
}

func TestFreeResponseFullyBooked(t *testing.T) {
	result := &service.AvailabilityResult{Day: "2026-09-01"}
	if got := FreeResponse(result, "2026-09-01", 590, 1080, time.UTC); got != "I'm booked for the rest of the day" {
		t.Errorf("FreeResponse() = %q", got)
	}

	result = &service.AvailabilityResult{Day: "2026-09-02"}
	if got := FreeResponse(result, "2026-09-01", 590, 1080, time.UTC); got != "I'm booked all day" {
		t.Errorf("FreeResponse() = %q", got)
	}
}

func TestBookedResponse(t *testing.T) {
	res := &model.Reservation{Day: "2026-09-01", StartMinute: 600, Name: "Standup"}

	got := BookedResponse(res, true, time.UTC)
	if got != "Great! 'Standup' is booked for Sep 01, 2026 at 10:00" {
		t.Errorf("BookedResponse(named) = %q", got)
	}

	got = BookedResponse(res, false, time.UTC)
	if got != "Great! The room is booked for Sep 01, 2026 at 10:00" {
		t.Errorf("BookedResponse(unnamed) = %q", got)
	}
}

func TestShowResponseMixedOwnership(t *testing.T) {
	views := []*schedule.FreeSlot{
		{
			Day: "2026-09-01", Start: 600, End: 630, Duration: 30,
			Reservation: &model.Reservation{BookerID: "U2", Name: "Standup"},
		},
		{
			Day: "2026-09-01", Start: 660, End: 690, Duration: 30, Ref: 1,
			Reservation: &model.Reservation{BookerID: "U1"},
		},
	}

	got := ShowResponse(views, time.UTC)
	want := "You have 1 bookings" +
		"\nSep 01, 2026 at 10:00 for 30 mins - Standup" +
		"\n`1` Sep 01, 2026 at 11:00 for 30 mins"
	if got != want {
		t.Errorf("ShowResponse() = %q, want %q", got, want)
	}
}

func TestShowResponseEmpty(t *testing.T) {
	if got := ShowResponse(nil, time.UTC); got != "You don't have any bookings" {
		t.Errorf("ShowResponse(nil) = %q", got)
	}
}

func TestStatusResponse(t *testing.T) {
	snap := sensor.Snapshot{
		Motion:           true,
		RelayClosed:      true,
		Temperature:      21.4,
		TemperatureValid: true,
		Current:          120.5,
		CurrentAverage:   98.25,
		Samples:          4,
	}

	got := StatusResponse(snap)
	want := "Current status:\n" +
		"Occupied\n" +
		"The blinds are closed\n" +
		"Temperature: 21C\n" +
		"The wall socket is in use: 120.5mA (average: 98.2mA)"
	if got != want {
		t.Errorf("StatusResponse() = %q, want %q", got, want)
	}
}

func TestStatusResponseIdleRoom(t *testing.T) {
	got := StatusResponse(sensor.Snapshot{})
	want := "Current status:\n" +
		"Unoccupied\n" +
		"The blinds are open\n" +
		"The wall socket is not in use"
	if got != want {
		t.Errorf("StatusResponse() = %q, want %q", got, want)
	}
}
