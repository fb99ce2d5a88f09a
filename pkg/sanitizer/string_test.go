package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basic trim",
			input: "  standup  ",
			want:  "standup",
		},
		{
			name:  "multiple spaces between words",
			input: "weekly    planning",
			want:  "weekly planning",
		},
		{
			name:  "tabs and newlines",
			input: "weekly\t\nplanning",
			want:  "weekly planning",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café sync ",
			want:  "Café sync",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripPunctuation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "command with punctuation",
			input: "book 2, please!",
			want:  "book 2 please",
		},
		{
			name:  "no punctuation",
			input: "free tomorrow morning",
			want:  "free tomorrow morning",
		},
		{
			name:  "apostrophes removed",
			input: "what's free",
			want:  "whats free",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripPunctuation(tt.input)
			if got != tt.want {
				t.Errorf("StripPunctuation(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
