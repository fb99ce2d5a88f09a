package timegrid

import (
	"fmt"
	"time"
)

const (
	MinsInHour   = 60
	SecondsInMin = 60
	DayInMins    = 24 * MinsInHour

	// GridStep is the booking granularity. Every slot and reservation start
	// sits on a GridStep boundary.
	GridStep = 15

	// DayLayout is the canonical storage form for a calendar day.
	DayLayout = "2006-01-02"
)

// AlignUp rounds a minute-of-day up to the next grid boundary. Values already
// on a boundary are returned unchanged.
func AlignUp(minuteOfDay int) int {
	diff := minuteOfDay % GridStep
	if diff == 0 {
		return minuteOfDay
	}
	return minuteOfDay + GridStep - diff
}

// DayKey formats an instant as a storage day in the given location.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

// ParseDay parses a storage day key.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, day, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	return t, nil
}

// At converts a (day, minute-of-day) pair into an absolute instant. The pair
// is interpreted in loc and the result is returned in UTC, so callers compare
// and store zone-free instants only.
func At(day string, minuteOfDay int, loc *time.Location) (time.Time, error) {
	d, err := ParseDay(day, loc)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(minuteOfDay) * time.Minute).UTC(), nil
}

// MinuteOfDay returns the minute offset of an instant within its day in loc.
func MinuteOfDay(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Hour()*MinsInHour + local.Minute()
}

// FormatMinute renders a minute-of-day as HH:MM.
func FormatMinute(minuteOfDay int) string {
	return fmt.Sprintf("%02d:%02d", minuteOfDay/MinsInHour, minuteOfDay%MinsInHour)
}
