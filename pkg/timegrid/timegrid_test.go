package timegrid

import (
	"testing"
	"time"
)

func TestAlignUp(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  int
	}{
		{name: "already aligned", input: 450, want: 450},
		{name: "midnight", input: 0, want: 0},
		{name: "one past boundary", input: 451, want: 465},
		{name: "just before boundary", input: 464, want: 465},
		{name: "mid hour", input: 500, want: 510},
		{name: "end of day boundary", input: 1425, want: 1425},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlignUp(tt.input); got != tt.want {
				t.Errorf("AlignUp(%d) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestAtRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	instant, err := At("2025-06-02", 540, loc)
	if err != nil {
		t.Fatalf("At: %v", err)
	}

	if instant.Location() != time.UTC {
		t.Errorf("At returned non-UTC instant: %v", instant.Location())
	}
	if got := DayKey(instant, loc); got != "2025-06-02" {
		t.Errorf("DayKey = %q, want %q", got, "2025-06-02")
	}
	if got := MinuteOfDay(instant, loc); got != 540 {
		t.Errorf("MinuteOfDay = %d, want 540", got)
	}
}

func TestAtInvalidDay(t *testing.T) {
	if _, err := At("02-06-2025", 540, time.UTC); err == nil {
		t.Error("expected error for malformed day")
	}
}

func TestFormatMinute(t *testing.T) {
	if got := FormatMinute(480); got != "08:00" {
		t.Errorf("FormatMinute(480) = %q, want 08:00", got)
	}
	if got := FormatMinute(1110); got != "18:30" {
		t.Errorf("FormatMinute(1110) = %q, want 18:30", got)
	}
	if got := FormatMinute(5); got != "00:05" {
		t.Errorf("FormatMinute(5) = %q, want 00:05", got)
	}
}

func TestFixedClock(t *testing.T) {
	instant := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	clk := FixedClock(instant)
	if !clk.Now().Equal(instant) {
		t.Errorf("FixedClock.Now() = %v, want %v", clk.Now(), instant)
	}
}
