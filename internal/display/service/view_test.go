package service

import (
	"context"
	"io"
	"testing"
	"time"

	bookingservice "huddle/internal/booking/service"
	"huddle/internal/schedule"
	"huddle/pkg/config"
	"huddle/pkg/logger"
	"huddle/pkg/model"
	"huddle/pkg/timegrid"
)

type mockLifecycle struct {
	upcomingFn func(ctx context.Context, day string, fromMinute, limit int) ([]*model.Reservation, error)
}

func (m *mockLifecycle) Availability(ctx context.Context, bookerID, day string, startMinute, requestedDuration int) (*bookingservice.AvailabilityResult, error) {
	return nil, nil
}

func (m *mockLifecycle) CreateProposalBatch(ctx context.Context, bookerID, day string, candidates []*schedule.FreeSlot) error {
	return nil
}

func (m *mockLifecycle) Confirm(ctx context.Context, bookerID string, ref, attendees int, name, channelID string) (*model.Reservation, error) {
	return nil, nil
}

func (m *mockLifecycle) ListBookings(ctx context.Context, bookerID string, allBookers bool, fromDay string) ([]*schedule.FreeSlot, error) {
	return nil, nil
}

func (m *mockLifecycle) Rename(ctx context.Context, bookerID string, ref int, newName string) error {
	return nil
}

func (m *mockLifecycle) MarkStarted(ctx context.Context, reservationID string) error { return nil }
func (m *mockLifecycle) MarkEnded(ctx context.Context, reservationID string) error   { return nil }

func (m *mockLifecycle) InstantBook(ctx context.Context, bookerID, name string) (*model.Reservation, error) {
	return nil, nil
}

func (m *mockLifecycle) Steal(ctx context.Context, reservationID, bookerID string) (*model.Reservation, error) {
	return nil, nil
}

func (m *mockLifecycle) UpcomingOnDay(ctx context.Context, day string, fromMinute, limit int) ([]*model.Reservation, error) {
	return m.upcomingFn(ctx, day, fromMinute, limit)
}

// 10:05 on the wall clock.
var viewNow = time.Date(2026, 9, 1, 10, 5, 0, 0, time.UTC)

func newDisplay(upcoming []*model.Reservation) DisplayService {
	cfg := &config.Config{
		Location:       time.UTC,
		RoomID:         config.DefaultRoomID,
		RoomName:       config.DefaultRoomName,
		RoomType:       config.DefaultRoomType,
		AbandonedGrace: config.DefaultAbandonedGrace,
		StartsSoonLead: config.DefaultStartsSoonLead,
		Log:            logger.New(logger.Config{Level: "error", Format: logger.TEXT, Output: io.Discard}),
	}
	mock := &mockLifecycle{
		upcomingFn: func(ctx context.Context, day string, fromMinute, limit int) ([]*model.Reservation, error) {
			if day != "2026-09-01" || fromMinute != 605 || limit != 2 {
				panic("unexpected UpcomingOnDay query")
			}
			return upcoming, nil
		},
	}
	return NewDisplayService(mock, timegrid.FixedClock(viewNow), cfg)
}

func roomView(t *testing.T, upcoming []*model.Reservation) *RoomView {
	t.Helper()
	view, err := newDisplay(upcoming).RoomView(context.Background())
	if err != nil {
		t.Fatalf("RoomView() error = %v", err)
	}
	return view
}

func TestRoomViewEmptyDay(t *testing.T) {
	view := roomView(t, nil)

	if view.Color != "success" || view.Availability != "Available" {
		t.Errorf("view = %s/%s, want success/Available", view.Color, view.Availability)
	}
	if view.CTA != ctaNewBooking {
		t.Errorf("CTA = %+v, want Meet Now", view.CTA)
	}
	if view.NextFree != msgFreeRestOfDay || view.NextBooking != msgFreeRestOfDay {
		t.Errorf("messages = %q / %q", view.NextFree, view.NextBooking)
	}
	if view.Time != "10:05" {
		t.Errorf("Time = %q, want 10:05", view.Time)
	}
	if view.Room.Name != config.DefaultRoomName {
		t.Errorf("Room.Name = %q", view.Room.Name)
	}
}

func TestRoomViewMeetingInProgress(t *testing.T) {
	view := roomView(t, []*model.Reservation{
		{ID: "65a000000000000000000001", Day: "2026-09-01", StartMinute: 585, DurationMin: 45, BookerID: "U1", Name: "Standup", InProgress: true},
	})

	if view.Color != "danger" {
		t.Errorf("Color = %q, want danger", view.Color)
	}
	if view.Availability != "Standup" {
		t.Errorf("Availability = %q, want Standup", view.Availability)
	}
	if view.CTA != ctaEnd {
		t.Errorf("CTA = %+v, want End Meeting", view.CTA)
	}
	if view.BookingID != "65a000000000000000000001" || view.BookerID != "U1" {
		t.Errorf("BookingID/BookerID = %q/%q", view.BookingID, view.BookerID)
	}
	if view.NextBooking != "The current meeting ends in 25 minutes, at 10:30" {
		t.Errorf("NextBooking = %q", view.NextBooking)
	}
	if view.NextFree != "After 10:30, I'm free for the rest of the day" {
		t.Errorf("NextFree = %q", view.NextFree)
	}
}

func TestRoomViewWaitingForBooker(t *testing.T) {
	view := roomView(t, []*model.Reservation{
		{ID: "65a000000000000000000001", Day: "2026-09-01", StartMinute: 600, DurationMin: 60, BookerID: "U1", Name: "Planning"},
	})

	if view.Color != "warning" || view.Availability != "Planning" {
		t.Errorf("view = %s/%s, want warning/Planning", view.Color, view.Availability)
	}
	if view.CTA != ctaStart {
		t.Errorf("CTA = %+v, want Start Meeting", view.CTA)
	}
}

func TestRoomViewAbandonedAfterGrace(t *testing.T) {
	view := roomView(t, []*model.Reservation{
		{ID: "65a000000000000000000001", Day: "2026-09-01", StartMinute: 585, DurationMin: 60, BookerID: "U1", Name: "Planning"},
	})

	if view.Availability != "Planning, abandoned" {
		t.Errorf("Availability = %q, want abandoned suffix", view.Availability)
	}
	if view.CTA != ctaSteal {
		t.Errorf("CTA = %+v, want Steal Me", view.CTA)
	}
}

func TestRoomViewStartsSoon(t *testing.T) {
	view := roomView(t, []*model.Reservation{
		{ID: "65a000000000000000000001", Day: "2026-09-01", StartMinute: 615, DurationMin: 15, BookerID: "U1", Name: "1:1"},
	})

	if view.Color != "warning" || view.Availability != "1:1" {
		t.Errorf("view = %s/%s, want warning/1:1", view.Color, view.Availability)
	}
	if view.CTA != ctaStartEarly {
		t.Errorf("CTA = %+v, want Start Meeting Early", view.CTA)
	}
	if view.NextBooking != "The next meeting starts in 10 minutes, at 10:15" {
		t.Errorf("NextBooking = %q", view.NextBooking)
	}
	if view.NextFree != "After 10:30, I'm free for the rest of the day" {
		t.Errorf("NextFree = %q", view.NextFree)
	}
}

func TestRoomViewDistantBookingInHours(t *testing.T) {
	view := roomView(t, []*model.Reservation{
		{ID: "65a000000000000000000001", Day: "2026-09-01", StartMinute: 780, DurationMin: 30, BookerID: "U1", Name: "Review"},
	})

	if view.Color != "success" || view.Availability != "Available" {
		t.Errorf("view = %s/%s, want success/Available", view.Color, view.Availability)
	}
	if view.NextBooking != "The next meeting starts in 3 hours, at 13:00" {
		t.Errorf("NextBooking = %q", view.NextBooking)
	}
}

func TestRoomViewBackToBackMeetings(t *testing.T) {
	view := roomView(t, []*model.Reservation{
		{ID: "65a000000000000000000001", Day: "2026-09-01", StartMinute: 600, DurationMin: 30, BookerID: "U1", Name: "Standup", InProgress: true},
		{ID: "65a000000000000000000002", Day: "2026-09-01", StartMinute: 630, DurationMin: 30, BookerID: "U2", Name: "Retro"},
	})

	if view.NextFree != "Check upcoming meetings in chat" {
		t.Errorf("NextFree = %q", view.NextFree)
	}
	if view.NextBooking != "The next meeting starts in 25 minutes, at 10:30" {
		t.Errorf("NextBooking = %q", view.NextBooking)
	}
}

func TestRoomViewGapBetweenMeetings(t *testing.T) {
	view := roomView(t, []*model.Reservation{
		{ID: "65a000000000000000000001", Day: "2026-09-01", StartMinute: 600, DurationMin: 30, BookerID: "U1", Name: "Standup", InProgress: true},
		{ID: "65a000000000000000000002", Day: "2026-09-01", StartMinute: 660, DurationMin: 30, BookerID: "U2", Name: "Retro"},
	})

	if view.NextFree != "I'm next free at 10:30 for 30 minutes" {
		t.Errorf("NextFree = %q", view.NextFree)
	}
}
