package chat

import (
	"strconv"
	"strings"
	"time"

	"huddle/pkg/config"
	"huddle/pkg/sanitizer"
	"huddle/pkg/timegrid"
)

const (
	wordNow      = "now"
	wordToday    = "today"
	wordThis     = "this"
	wordTomorrow = "tomorrow"
	wordAll      = "all"
)

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

var dayParts = map[string]int{
	"morning":   config.MorningStart,
	"lunchtime": config.LunchtimeStart,
	"afternoon": config.AfternoonStart,
}

// Parser turns raw chat text into a Request. Matching happens on lowercased,
// punctuation-free tokens; booking names are cut from the raw text so the
// user's casing survives.
type Parser struct {
	loc *time.Location
}

func NewParser(loc *time.Location) *Parser {
	return &Parser{loc: loc}
}

// Parse resolves day words like "tomorrow" or "friday morning" against now.
// Messages that don't match any command grammar yield a *UsageError.
func (p *Parser) Parse(text string, now time.Time) (*Request, error) {
	tokens := strings.Fields(strings.ToLower(sanitizer.StripPunctuation(text)))
	if len(tokens) == 0 {
		return nil, &UsageError{Text: UnknownCommandText}
	}

	switch Command(tokens[0]) {
	case CommandFree:
		return p.parseFree(tokens, now)
	case CommandBook:
		return p.parseBook(tokens, text)
	case CommandShow:
		return &Request{
			Command: CommandShow,
			All:     len(tokens) >= 2 && tokens[1] == wordAll,
		}, nil
	case CommandName:
		return p.parseName(tokens, text)
	case CommandStatus:
		return &Request{Command: CommandStatus}, nil
	}
	return nil, &UsageError{Text: UnknownCommandText}
}

func (p *Parser) parseFree(tokens []string, now time.Time) (*Request, error) {
	if len(tokens) < 2 {
		return nil, &UsageError{Text: FreeUsageText}
	}

	local := now.In(p.loc)
	nowMinute := timegrid.MinuteOfDay(now, p.loc)

	day := local
	start := nowMinute

	switch {
	case tokens[1] == wordNow || tokens[1] == wordToday:
		// as-is
	case tokens[1] == wordThis:
		if len(tokens) < 3 {
			return nil, &UsageError{Text: FreeUsageText}
		}
		part, ok := dayParts[tokens[2]]
		if !ok {
			return nil, &UsageError{Text: FreeUsageText}
		}
		// a day part already underway collapses to "now"
		if part > start {
			start = part
		}
	case tokens[1] == wordTomorrow:
		day = local.AddDate(0, 0, 1)
		start = p.partOrMorning(tokens)
	default:
		target, ok := weekdays[tokens[1]]
		if !ok {
			return nil, &UsageError{Text: FreeUsageText}
		}
		// the named weekday is always in the future, a week out when it
		// falls on today
		offset := (int(target) - int(local.Weekday()) + 7) % 7
		if offset == 0 {
			offset = 7
		}
		day = local.AddDate(0, 0, offset)
		start = p.partOrMorning(tokens)
	}

	return &Request{
		Command:     CommandFree,
		Day:         timegrid.DayKey(day, p.loc),
		StartMinute: start,
	}, nil
}

func (p *Parser) partOrMorning(tokens []string) int {
	if len(tokens) >= 3 {
		if part, ok := dayParts[tokens[2]]; ok {
			return part
		}
	}
	return config.MorningStart
}

func (p *Parser) parseBook(tokens []string, raw string) (*Request, error) {
	if len(tokens) < 2 {
		return nil, &UsageError{Text: BookUsageText}
	}
	ref, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, &UsageError{Text: OptionNotFoundText(tokens[1], BookUsageText)}
	}

	req := &Request{Command: CommandBook, Ref: ref}
	if len(tokens) >= 4 && tokens[2] == string(CommandName) {
		req.Name = cutAfter(raw, string(CommandName))
	}
	return req, nil
}

func (p *Parser) parseName(tokens []string, raw string) (*Request, error) {
	if len(tokens) < 3 {
		return nil, &UsageError{Text: NameUsageText}
	}
	ref, err := strconv.Atoi(tokens[1])
	if err != nil || ref < 1 {
		return nil, &UsageError{Text: OptionNotFoundText(tokens[1], NameUsageText)}
	}
	return &Request{
		Command: CommandName,
		Ref:     ref,
		Name:    cutAfter(raw, tokens[1]),
	}, nil
}

// cutAfter returns the normalized remainder of raw after the first
// case-insensitive occurrence of marker.
func cutAfter(raw, marker string) string {
	idx := strings.Index(strings.ToLower(raw), marker)
	if idx < 0 {
		return ""
	}
	return sanitizer.NormalizeName(raw[idx+len(marker):])
}
