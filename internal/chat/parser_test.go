package chat

import (
	"errors"
	"testing"
	"time"
)

// Tuesday morning, 10:00 local.
var parseNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func parseOK(t *testing.T, text string) *Request {
	t.Helper()
	req, err := NewParser(time.UTC).Parse(text, parseNow)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", text, err)
	}
	return req
}

func parseUsage(t *testing.T, text string) string {
	t.Helper()
	_, err := NewParser(time.UTC).Parse(text, parseNow)
	var usage *UsageError
	if !errors.As(err, &usage) {
		t.Fatalf("Parse(%q) error = %v, want *UsageError", text, err)
	}
	return usage.Text
}

func TestParseFreeDayWords(t *testing.T) {
	tests := []struct {
		text        string
		day         string
		startMinute int
	}{
		{"free now", "2026-09-01", 600},
		{"free today", "2026-09-01", 600},
		{"free this morning", "2026-09-01", 600},
		{"free this afternoon", "2026-09-01", 720},
		{"free this lunchtime", "2026-09-01", 690},
		{"free tomorrow", "2026-09-02", 480},
		{"free tomorrow lunchtime", "2026-09-02", 690},
		{"free wed", "2026-09-02", 480},
		{"free friday morning", "2026-09-04", 480},
		{"free sun", "2026-09-06", 480},
		{"free tuesday", "2026-09-08", 480},
		{"free Monday", "2026-09-07", 480},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			req := parseOK(t, tc.text)
			if req.Command != CommandFree {
				t.Errorf("Command = %q, want free", req.Command)
			}
			if req.Day != tc.day {
				t.Errorf("Day = %q, want %q", req.Day, tc.day)
			}
			if req.StartMinute != tc.startMinute {
				t.Errorf("StartMinute = %d, want %d", req.StartMinute, tc.startMinute)
			}
		})
	}
}

func TestParseFreeDayPartAlreadyUnderway(t *testing.T) {
	// Asking for "this morning" at 10:00 means "now", not 08:00.
	req := parseOK(t, "free this morning")
	if req.StartMinute != 600 {
		t.Errorf("StartMinute = %d, want 600", req.StartMinute)
	}
}

func TestParseFreeUsage(t *testing.T) {
	for _, text := range []string{"free", "free someday", "free this", "free this evening"} {
		if got := parseUsage(t, text); got != FreeUsageText {
			t.Errorf("Parse(%q) usage = %q, want free usage", text, got)
		}
	}
}

func TestParseBook(t *testing.T) {
	req := parseOK(t, "book 2")
	if req.Command != CommandBook || req.Ref != 2 || req.Name != "" {
		t.Errorf("Parse(book 2) = %+v", req)
	}
}

func TestParseBookWithNameKeepsCasing(t *testing.T) {
	req := parseOK(t, "book 2 name Project Kickoff")
	if req.Ref != 2 {
		t.Errorf("Ref = %d, want 2", req.Ref)
	}
	if req.Name != "Project Kickoff" {
		t.Errorf("Name = %q, want %q", req.Name, "Project Kickoff")
	}
}

func TestParseBookBadOption(t *testing.T) {
	if got := parseUsage(t, "book two"); got != OptionNotFoundText("two", BookUsageText) {
		t.Errorf("usage = %q", got)
	}
	if got := parseUsage(t, "book"); got != BookUsageText {
		t.Errorf("usage = %q", got)
	}
}

func TestParseShow(t *testing.T) {
	if req := parseOK(t, "show"); req.Command != CommandShow || req.All {
		t.Errorf("Parse(show) = %+v", req)
	}
	if req := parseOK(t, "show all"); !req.All {
		t.Errorf("Parse(show all).All = false, want true")
	}
}

func TestParseName(t *testing.T) {
	req := parseOK(t, "name 1 Weekly Sync")
	if req.Command != CommandName || req.Ref != 1 {
		t.Errorf("Parse(name 1 ...) = %+v", req)
	}
	if req.Name != "Weekly Sync" {
		t.Errorf("Name = %q, want %q", req.Name, "Weekly Sync")
	}
}

func TestParseNameBadRef(t *testing.T) {
	if got := parseUsage(t, "name 0 X"); got != OptionNotFoundText("0", NameUsageText) {
		t.Errorf("usage = %q", got)
	}
	if got := parseUsage(t, "name 1"); got != NameUsageText {
		t.Errorf("usage = %q", got)
	}
}

func TestParseStripsPunctuation(t *testing.T) {
	req := parseOK(t, "free now!")
	if req.Command != CommandFree || req.Day != "2026-09-01" {
		t.Errorf("Parse(free now!) = %+v", req)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	for _, text := range []string{"lunch?", "", "   "} {
		if got := parseUsage(t, text); got != UnknownCommandText {
			t.Errorf("Parse(%q) usage = %q, want unknown-command text", text, got)
		}
	}
}
