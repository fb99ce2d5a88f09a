package schedule

import "huddle/pkg/timegrid"

// MaxSuggestions caps a proposal batch; chat references are 1..4.
const MaxSuggestions = 4

// Suggest carves up to MaxSuggestions booking candidates out of the free
// slots, which must be ordered by ascending start. lastSlotStart is the
// operating-hours cutoff: no candidate may start after it. Ranking is by
// position and fit: earliest slot first, exact duration before double
// duration, same start before a one- or two-hour delay. A slot too small for
// the requested duration but at least half of it yields one reduced candidate
// spanning the whole slot.
func Suggest(freeSlots []*FreeSlot, reqDuration, lastSlotStart int) []*FreeSlot {
	var suggested []*FreeSlot

	for _, avail := range freeSlots {
		if avail.Start > lastSlotStart {
			break
		}

		if avail.Duration >= reqDuration {
			suggested = append(suggested, candidate(avail.Day, avail.Start, reqDuration))
			if len(suggested) == MaxSuggestions {
				break
			}

			if avail.Duration >= reqDuration*2 {
				suggested = append(suggested, candidate(avail.Day, avail.Start, reqDuration*2))
				if len(suggested) == MaxSuggestions {
					break
				}
			}

			if avail.Duration >= reqDuration+timegrid.MinsInHour &&
				avail.Start+timegrid.MinsInHour <= lastSlotStart {
				suggested = append(suggested, candidate(avail.Day, avail.Start+timegrid.MinsInHour, reqDuration))
				if len(suggested) == MaxSuggestions {
					break
				}
			}

			if avail.Duration >= reqDuration+2*timegrid.MinsInHour &&
				avail.Start+2*timegrid.MinsInHour <= lastSlotStart {
				suggested = append(suggested, candidate(avail.Day, avail.Start+2*timegrid.MinsInHour, reqDuration))
				if len(suggested) == MaxSuggestions {
					break
				}
			}
		} else if reqDuration >= 2*timegrid.GridStep && avail.Duration >= reqDuration/2 {
			// shorter-than-asked fallback: offer the whole slot
			suggested = append(suggested, candidate(avail.Day, avail.Start, avail.Duration))
			if len(suggested) == MaxSuggestions {
				break
			}
		}
	}

	return suggested
}

func candidate(day string, start, duration int) *FreeSlot {
	return &FreeSlot{
		Day:      day,
		Start:    start,
		End:      start + duration,
		Duration: duration,
		complete: true,
	}
}
