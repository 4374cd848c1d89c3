package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone America/New_York",
			timezone: "America/New_York",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		day     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "valid date",
			day:  "2024-03-15",
			want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "leap day",
			day:  "2024-02-29",
			want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "wrong format",
			day:     "15/03/2024",
			wantErr: true,
		},
		{
			name:    "missing zero padding",
			day:     "2024-3-5",
			wantErr: true,
		},
		{
			name:    "empty",
			day:     "",
			wantErr: true,
		},
		{
			name:    "date with time",
			day:     "2024-03-15T10:00:00Z",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.day)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDay(%q) error = %v, wantErr %v", tt.day, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDay(%q) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestParseDaysPreservesOrder(t *testing.T) {
	days := []string{"2024-01-03", "2024-01-01", "2024-01-02"}
	parsed, err := ParseDays(days)
	if err != nil {
		t.Fatalf("ParseDays() error = %v", err)
	}
	if len(parsed) != len(days) {
		t.Fatalf("ParseDays() returned %d entries, want %d", len(parsed), len(days))
	}
	for i, d := range days {
		if FormatDay(parsed[i]) != d {
			t.Errorf("ParseDays()[%d] = %s, want %s", i, FormatDay(parsed[i]), d)
		}
	}
}

func TestParseDaysFailsFast(t *testing.T) {
	if _, err := ParseDays([]string{"2024-01-01", "bogus"}); err == nil {
		t.Error("ParseDays() expected error for malformed entry")
	}
}

func TestFormatDayRoundTrip(t *testing.T) {
	day := "2023-12-31"
	parsed, err := ParseDay(day)
	if err != nil {
		t.Fatalf("ParseDay() error = %v", err)
	}
	if got := FormatDay(parsed); got != day {
		t.Errorf("FormatDay(ParseDay(%q)) = %q", day, got)
	}
}
