package domain

import (
	"testing"
)

func TestParseRepeat(t *testing.T) {
	tests := []struct {
		input   string
		want    Repeat
		wantErr bool
	}{
		{"none", RepeatNone, false},
		{"", RepeatNone, false},
		{"weekly_4", RepeatWeekly4, false},
		{"weekly_12", RepeatWeekly12, false},
		{"weekly_8", "", true},
		{"daily", "", true},
		{"WEEKLY_4", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRepeat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRepeat(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRepeat(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRepeat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRepeatOccurrences(t *testing.T) {
	tests := []struct {
		repeat    Repeat
		want      int
		recurring bool
	}{
		{RepeatNone, 1, false},
		{RepeatWeekly4, 4, true},
		{RepeatWeekly12, 12, true},
	}

	for _, tt := range tests {
		if got := tt.repeat.Occurrences(); got != tt.want {
			t.Errorf("%q.Occurrences() = %d, want %d", tt.repeat, got, tt.want)
		}
		if got := tt.repeat.IsRecurring(); got != tt.recurring {
			t.Errorf("%q.IsRecurring() = %v, want %v", tt.repeat, got, tt.recurring)
		}
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2025-03-01", true},
		{"2024-02-29", true}, // leap year
		{"2025-02-29", false},
		{"2025-13-01", false},
		{"2025-3-1", false},
		{"01-03-2025", false},
		{"not-a-date", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidDate(tt.input); got != tt.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWeeklyDates(t *testing.T) {
	tests := []struct {
		name   string
		anchor string
		count  int
		want   []string
	}{
		{
			name:   "single occurrence",
			anchor: "2025-03-01",
			count:  1,
			want:   []string{"2025-03-01"},
		},
		{
			name:   "four weeks crossing month boundary",
			anchor: "2025-03-15",
			count:  4,
			want:   []string{"2025-03-15", "2025-03-22", "2025-03-29", "2025-04-05"},
		},
		{
			name:   "crossing leap day",
			anchor: "2024-02-26",
			count:  2,
			want:   []string{"2024-02-26", "2024-03-04"},
		},
		{
			name:   "crossing year boundary",
			anchor: "2025-12-29",
			count:  2,
			want:   []string{"2025-12-29", "2026-01-05"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeeklyDates(tt.anchor, tt.count)
			if err != nil {
				t.Fatalf("WeeklyDates(%q, %d): unexpected error: %v", tt.anchor, tt.count, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("WeeklyDates(%q, %d) returned %d dates, want %d", tt.anchor, tt.count, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("WeeklyDates(%q, %d)[%d] = %q, want %q", tt.anchor, tt.count, i, got[i], tt.want[i])
				}
			}
		})
	}

	if _, err := WeeklyDates("garbage", 4); err == nil {
		t.Error("WeeklyDates with invalid anchor: expected error")
	}
}
