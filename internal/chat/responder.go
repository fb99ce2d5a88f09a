package chat

import (
	"fmt"
	"strings"
	"time"

	"huddle/internal/booking/service"
	"huddle/internal/schedule"
	"huddle/internal/sensor"
	"huddle/pkg/model"
	"huddle/pkg/timegrid"
)

// chatDayLayout is how calendar days read in replies.
const chatDayLayout = "Jan 02, 2006"

// Reply texts for messages that don't parse.
const (
	UnknownCommandText = "Not sure what you mean.\nUse the *free* command followed by *now*, *tomorrow* or the name of a day to book me"
	FreeUsageText      = "Use *free* and specify a day, for example *now* or *this afternoon* or *tomorrow* or *Mon* or *friday morning*"
	BookUsageText      = "Use *book* and a valid option number."
	NameUsageText      = "Use *name* and a valid option number."
)

// OptionNotFoundText is the reply when a ref doesn't resolve to anything.
func OptionNotFoundText(token, usage string) string {
	return fmt.Sprintf("Sorry, I couldn't find option `%s`\n%s", token, usage)
}

func formatDay(day string, loc *time.Location) string {
	t, err := timegrid.ParseDay(day, loc)
	if err != nil {
		return day
	}
	return t.Format(chatDayLayout)
}

// formatSlot renders one suggestion or listing row.
func formatSlot(slot *schedule.FreeSlot, loc *time.Location) string {
	row := fmt.Sprintf("%s at %s for %d mins",
		formatDay(slot.Day, loc), timegrid.FormatMinute(slot.Start), slot.Duration)
	if slot.Reservation != nil && slot.Reservation.Name != "" {
		row += " - " + slot.Reservation.Name
	}
	return row
}

// FreeResponse words an availability result. today and nowMinute anchor the
// "rest of the day" phrasing; lastSlotStart bounds when bookings may start.
func FreeResponse(result *service.AvailabilityResult, today string, nowMinute, lastSlotStart int, loc *time.Location) string {
	if result.AllFree {
		var b strings.Builder
		b.WriteString("I'm free ")
		if result.Day == today {
			if len(result.Proposals) == 0 && nowMinute > lastSlotStart {
				return fmt.Sprintf("I'm free but I'm not allowed to make bookings after %s",
					timegrid.FormatMinute(lastSlotStart))
			}
			b.WriteString("for the rest of the day")
		} else {
			b.WriteString("all day")
		}

		switch {
		case len(result.Proposals) == 1:
			b.WriteString("\n\nThis is the best option:")
		case len(result.Proposals) > 1:
			b.WriteString("\n\nThese are the best options:")
		}
		writeProposalRows(&b, result.Proposals, loc)
		return b.String()
	}

	if len(result.Proposals) == 0 {
		if result.Day == today {
			return "I'm booked for the rest of the day"
		}
		return "I'm booked all day"
	}

	earliest := timegrid.DayInMins
	for _, slot := range result.Proposals {
		if slot.Start < earliest {
			earliest = slot.Start
		}
	}

	var b strings.Builder
	b.WriteString("I'm booked until " + timegrid.FormatMinute(earliest))
	if len(result.Proposals) == 1 {
		b.WriteString(", then I have this option available:")
	} else {
		b.WriteString(", then I have these options available:")
	}
	writeProposalRows(&b, result.Proposals, loc)
	return b.String()
}

func writeProposalRows(b *strings.Builder, proposals []*schedule.FreeSlot, loc *time.Location) {
	for i, slot := range proposals {
		fmt.Fprintf(b, "\n`%d` %s", i+1, formatSlot(slot, loc))
	}
}

// BookedResponse confirms a freshly materialized reservation. named reports
// whether the user supplied a name in the command.
func BookedResponse(res *model.Reservation, named bool, loc *time.Location) string {
	when := fmt.Sprintf("%s at %s", formatDay(res.Day, loc), timegrid.FormatMinute(res.StartMinute))
	if named {
		return fmt.Sprintf("Great! '%s' is booked for %s", res.Name, when)
	}
	return fmt.Sprintf("Great! The room is booked for %s", when)
}

// ShowResponse words a listing. Rows the requester owns carry their ref.
func ShowResponse(views []*schedule.FreeSlot, loc *time.Location) string {
	var b strings.Builder
	count := 0
	for _, view := range views {
		if view.Ref > 0 {
			count++
			fmt.Fprintf(&b, "\n`%d` %s", view.Ref, formatSlot(view, loc))
		} else {
			fmt.Fprintf(&b, "\n%s", formatSlot(view, loc))
		}
	}

	if count == 0 {
		return "You don't have any bookings" + b.String()
	}
	return fmt.Sprintf("You have %d bookings", count) + b.String()
}

// RenamedResponse confirms a rename.
func RenamedResponse(name string) string {
	return fmt.Sprintf("Done!\nChanged the name to '%s'", name)
}

// StatusResponse words the room's sensor snapshot.
func StatusResponse(snap sensor.Snapshot) string {
	var b strings.Builder
	b.WriteString("Current status:\n")

	if snap.Motion {
		b.WriteString("Occupied\n")
	} else {
		b.WriteString("Unoccupied\n")
	}

	if snap.RelayClosed {
		b.WriteString("The blinds are closed\n")
	} else {
		b.WriteString("The blinds are open\n")
	}

	if snap.TemperatureValid {
		fmt.Fprintf(&b, "Temperature: %1.0fC\n", snap.Temperature)
	}

	if snap.Samples > 0 && snap.Current > 0 {
		fmt.Fprintf(&b, "The wall socket is in use: %1.1fmA (average: %1.1fmA)",
			snap.Current, snap.CurrentAverage)
	} else {
		b.WriteString("The wall socket is not in use")
	}

	return b.String()
}
