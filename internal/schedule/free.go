package schedule

import "huddle/pkg/timegrid"

// ComputeFreeSlots partitions a day into the free intervals left between the
// occupied spans, which must be ordered by ascending start. The query start
// is aligned up to the grid first; gaps shorter than minSlotDuration are
// absorbed into the neighbouring occupied time rather than emitted. The
// second return value is true when the day had no occupied spans at all.
//
// The first occupied span may straddle the aligned start (a meeting in
// progress at query time); the first free slot then begins at that span's
// end. Spans ending before the aligned start are the caller's job to filter.
func ComputeFreeSlots(day string, startMinute, minSlotDuration int, occupied []Span) ([]*FreeSlot, bool) {
	floor := timegrid.AlignUp(startMinute)

	var slots []*FreeSlot
	index := -1
	for _, span := range occupied {
		spanEnd := span.Start + span.Duration

		if index == -1 {
			if span.Start < floor {
				// room is occupied right now; free time starts when it ends
				slots = append(slots, newSlot(day, spanEnd))
				index = 0
				continue
			}
			slots = append(slots, newSlot(day, floor))
			index = 0
		}

		slots[index].closeAt(span.Start, spanEnd, minSlotDuration)
		if slots[index].Complete() {
			slots = append(slots, newSlot(day, spanEnd))
			index++
		}
	}

	// nothing occupied: the whole remainder of the day is one slot
	if index == -1 {
		slot := newSlot(day, floor)
		slot.closeAt(timegrid.DayInMins, 0, minSlotDuration)
		if !slot.Complete() {
			return nil, true
		}
		return []*FreeSlot{slot}, true
	}

	// the trailing slot runs to midnight, or the room is fully booked
	if !slots[index].Complete() {
		slots[index].closeAt(timegrid.DayInMins, 0, minSlotDuration)
		if !slots[index].Complete() {
			slots = slots[:index]
		}
	}

	return slots, false
}
