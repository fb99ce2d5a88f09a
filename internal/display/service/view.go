// Package service assembles the wall-display view of the room: the current
// availability phase, what to show about the next meeting, and which single
// action the display should offer.
package service

import (
	"context"
	"fmt"

	bookingservice "huddle/internal/booking/service"
	"huddle/pkg/config"
	"huddle/pkg/model"
	"huddle/pkg/timegrid"
)

// CallToAction is the one button the display renders.
type CallToAction struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

var (
	ctaNewBooking = CallToAction{Label: "Meet Now", Action: "book"}
	ctaStart      = CallToAction{Label: "Start Meeting", Action: "start"}
	ctaStartEarly = CallToAction{Label: "Start Meeting Early", Action: "start"}
	ctaEnd        = CallToAction{Label: "End Meeting", Action: "end"}
	ctaSteal      = CallToAction{Label: "Steal Me", Action: "steal"}
)

// RoomInfo identifies the room on the display.
type RoomInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// RoomView is the full display state for one render.
type RoomView struct {
	Room         RoomInfo     `json:"room"`
	Color        string       `json:"color"`
	Availability string       `json:"availability"`
	NextFree     string       `json:"next_free"`
	NextBooking  string       `json:"next_booking"`
	CTA          CallToAction `json:"cta"`
	BookingID    string       `json:"booking_id,omitempty"`
	BookerID     string       `json:"booker_id,omitempty"`
	Time         string       `json:"time"`
}

const msgFreeRestOfDay = "I'm free for the rest of the day"

type DisplayService interface {
	// RoomView computes the display state from the next two unfinished
	// reservations of the day.
	RoomView(ctx context.Context) (*RoomView, error)
}

type displayService struct {
	lifecycle bookingservice.LifecycleService
	clock     timegrid.Clock
	cfg       *config.Config
}

func NewDisplayService(lifecycle bookingservice.LifecycleService, clock timegrid.Clock, cfg *config.Config) DisplayService {
	return &displayService{
		lifecycle: lifecycle,
		clock:     clock,
		cfg:       cfg,
	}
}

func (s *displayService) RoomView(ctx context.Context) (*RoomView, error) {
	now := s.clock.Now()
	today := timegrid.DayKey(now, s.cfg.Location)
	nowMinute := timegrid.MinuteOfDay(now, s.cfg.Location)

	upcoming, err := s.lifecycle.UpcomingOnDay(ctx, today, nowMinute, 2)
	if err != nil {
		return nil, err
	}

	view := &RoomView{
		Room: RoomInfo{
			ID:   s.cfg.RoomID,
			Name: s.cfg.RoomName,
			Type: s.cfg.RoomType,
		},
		Color:        "success",
		Availability: "Available",
		CTA:          ctaNewBooking,
		Time:         timegrid.FormatMinute(nowMinute),
	}

	var current, next *model.Reservation
	abandoned := false

	// nextFree tracks the gap after the listed meetings: first the end of
	// the run of back-to-back meetings, then the start of the one after it.
	var nextFree []int
	for _, res := range upcoming {
		switch {
		case nextFree == nil:
			nextFree = []int{res.EndMinute()}
		case res.StartMinute == nextFree[0]:
			nextFree[0] = res.EndMinute()
		default:
			nextFree = append(nextFree, res.StartMinute)
		}

		switch {
		case res.InProgress:
			current = res
			view.Color = "danger"
			view.BookingID = res.ID
			view.CTA = ctaEnd
		case res.StartMinute <= nowMinute:
			current = res
			view.Color = "warning"
			view.BookingID = res.ID
			if res.StartMinute <= nowMinute-s.cfg.AbandonedGrace {
				abandoned = true
				view.CTA = ctaSteal
			} else {
				view.CTA = ctaStart
			}
		default:
			if next == nil {
				next = res
			}
			if current == nil && nowMinute+s.cfg.StartsSoonLead > res.StartMinute && view.Availability == "Available" {
				view.Color = "warning"
				view.Availability = res.Name
				view.BookingID = res.ID
				view.BookerID = res.BookerID
				view.CTA = ctaStartEarly
			}
		}
	}

	if current != nil {
		view.Availability = current.Name
		view.BookerID = current.BookerID
		if abandoned {
			view.Availability += ", abandoned"
		}
	}

	view.NextFree = nextFreeMessage(nextFree, len(upcoming), current, next)
	view.NextBooking = nextBookingMessage(nowMinute, current, next)
	return view, nil
}

func nextFreeMessage(nextFree []int, listed int, current, next *model.Reservation) string {
	switch {
	case len(nextFree) == 1 && listed == 2:
		// back-to-back meetings fill the listing window, the gap after
		// them is unknown
		return "Check upcoming meetings in chat"
	case len(nextFree) == 2:
		return fmt.Sprintf("I'm next free at %s for %d minutes",
			timegrid.FormatMinute(nextFree[0]), nextFree[1]-nextFree[0])
	case current != nil:
		return fmt.Sprintf("After %s, %s", timegrid.FormatMinute(current.EndMinute()), msgFreeRestOfDay)
	case next != nil:
		return fmt.Sprintf("After %s, %s", timegrid.FormatMinute(next.EndMinute()), msgFreeRestOfDay)
	}
	return msgFreeRestOfDay
}

func nextBookingMessage(nowMinute int, current, next *model.Reservation) string {
	if next == nil {
		if current == nil {
			return msgFreeRestOfDay
		}
		end := current.EndMinute()
		return fmt.Sprintf("The current meeting ends in %d minutes, at %s",
			end-nowMinute, timegrid.FormatMinute(end))
	}

	mins := next.StartMinute - nowMinute
	at := timegrid.FormatMinute(next.StartMinute)
	if mins > 90 {
		hours := (mins + timegrid.MinsInHour - 1) / timegrid.MinsInHour
		return fmt.Sprintf("The next meeting starts in %d hours, at %s", hours, at)
	}
	return fmt.Sprintf("The next meeting starts in %d minutes, at %s", mins, at)
}
