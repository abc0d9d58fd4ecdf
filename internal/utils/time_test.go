package utils

import (
	"os"
	"path/filepath"
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
			if tt.wantErr != !ValidateTimezone(tt.timezone) {
				t.Errorf("ValidateTimezone(%q) disagrees with LoadLocation", tt.timezone)
			}
		})
	}
}

func TestParseInstant(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "date and time",
			input: "2026-05-10 18:30",
			want:  time.Date(2026, 5, 10, 18, 30, 0, 0, loc),
		},
		{
			name:  "date and time with T",
			input: "2026-05-10T18:30",
			want:  time.Date(2026, 5, 10, 18, 30, 0, 0, loc),
		},
		{
			name:  "bare date uses default time",
			input: "2026-05-10",
			want:  time.Date(2026, 5, 10, 9, 0, 0, 0, loc),
		},
		{
			name:  "RFC3339 keeps the instant",
			input: "2026-05-10T00:00:00Z",
			want:  time.Date(2026, 5, 10, 8, 0, 0, 0, loc),
		},
		{
			name:    "garbage",
			input:   "next tuesday",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "  ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInstant(tt.input, "09:00", loc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInstant() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseInstant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCombineDateAndTime(t *testing.T) {
	loc := time.UTC

	got, err := CombineDateAndTime("2024-02-29", "23:59", loc)
	if err != nil {
		t.Fatalf("CombineDateAndTime() unexpected error: %v", err)
	}
	if want := time.Date(2024, 2, 29, 23, 59, 0, 0, loc); !got.Equal(want) {
		t.Errorf("CombineDateAndTime() = %v, want %v", got, want)
	}

	if _, err := CombineDateAndTime("2023-02-29", "10:00", loc); err == nil {
		t.Error("CombineDateAndTime() should reject an invalid date")
	}
	if _, err := CombineDateAndTime("2024-02-01", "25:00", loc); err == nil {
		t.Error("CombineDateAndTime() should reject an invalid time")
	}
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2026-02")
	if err != nil {
		t.Fatalf("ParseMonth() unexpected error: %v", err)
	}
	if year != 2026 || month != time.February {
		t.Errorf("ParseMonth() = %d-%d", year, month)
	}
	if _, _, err := ParseMonth("2026-13"); err == nil {
		t.Error("ParseMonth() should reject month 13")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if got := ExpandPath("~/.config/lifestock"); got != filepath.Join(home, ".config/lifestock") {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got := ExpandPath("/var/lib/lifestock.db"); got != "/var/lib/lifestock.db" {
		t.Errorf("ExpandPath() changed an absolute path: %q", got)
	}
	if got := ExpandPath("~user/file"); got != "~user/file" {
		t.Errorf("ExpandPath() should leave ~user alone: %q", got)
	}
}
