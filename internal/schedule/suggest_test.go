package schedule

import "testing"

const lastStart = 18 * 60 // bookings may start up to 18:00

func slotList(spans ...[2]int) []*FreeSlot {
	var slots []*FreeSlot
	for _, s := range spans {
		slots = append(slots, candidate(testDay, s[0], s[1]-s[0]))
	}
	return slots
}

func assertCandidates(t *testing.T, got []*FreeSlot, want [][2]int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Start != w[0] || got[i].Duration != w[1] {
			t.Errorf("candidate %d = (start %d, dur %d), want (start %d, dur %d)",
				i, got[i].Start, got[i].Duration, w[0], w[1])
		}
	}
}

func TestSuggestRankingOrder(t *testing.T) {
	// one big slot from 09:00: exact, double, +1h, +2h
	got := Suggest(slotList([2]int{540, 1440}), 30, lastStart)
	assertCandidates(t, got, [][2]int{
		{540, 30},
		{540, 60},
		{600, 30},
		{660, 30},
	})
}

func TestSuggestNeverMoreThanFour(t *testing.T) {
	slots := slotList([2]int{480, 600}, [2]int{660, 780}, [2]int{840, 960}, [2]int{1020, 1140})
	got := Suggest(slots, 30, lastStart)
	if len(got) > MaxSuggestions {
		t.Errorf("got %d candidates, cap is %d", len(got), MaxSuggestions)
	}
}

func TestSuggestSpansMultipleSlots(t *testing.T) {
	// 45-minute slots: one exact candidate each, batch fills across slots
	slots := slotList([2]int{480, 525}, [2]int{570, 615}, [2]int{660, 705}, [2]int{750, 795}, [2]int{840, 885})
	got := Suggest(slots, 45, lastStart)
	assertCandidates(t, got, [][2]int{
		{480, 45},
		{570, 45},
		{660, 45},
		{750, 45},
	})
}

func TestSuggestStopsAtOperatingHoursCutoff(t *testing.T) {
	// free evening slot starts after the last bookable start
	got := Suggest(slotList([2]int{1110, 1440}), 30, lastStart)
	if len(got) != 0 {
		t.Errorf("expected no candidates past cutoff, got %d", len(got))
	}
}

func TestSuggestDelayedStartsRespectCutoff(t *testing.T) {
	// slot big enough for +1h/+2h variants, but those would start past 18:00
	got := Suggest(slotList([2]int{1050, 1440}), 30, lastStart)
	assertCandidates(t, got, [][2]int{
		{1050, 30},
		{1050, 60},
	})
}

func TestSuggestReducedDurationFallback(t *testing.T) {
	// 20 free minutes, 30 requested: 20 < 30 but >= 15, offer the whole slot
	got := Suggest(slotList([2]int{600, 620}), 30, lastStart)
	assertCandidates(t, got, [][2]int{
		{600, 20},
	})
}

func TestSuggestNoFallbackForMinimumRequest(t *testing.T) {
	// a 15-minute request cannot shrink further
	got := Suggest(slotList([2]int{600, 610}), 15, lastStart)
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %d", len(got))
	}
}

func TestSuggestCandidatesStayInsideDay(t *testing.T) {
	got := Suggest(slotList([2]int{540, 1440}), 30, lastStart)
	for i, c := range got {
		if c.End > 1440 {
			t.Errorf("candidate %d extends past midnight: end %d", i, c.End)
		}
		if c.Start > lastStart {
			t.Errorf("candidate %d starts past cutoff: %d", i, c.Start)
		}
	}
}
