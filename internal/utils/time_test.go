package utils

import (
	"testing"
	"time"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"midnight", "00:00", 0, false},
		{"morning", "07:30", 450, false},
		{"late", "23:59", 1439, false},
		{"invalid hour", "25:00", 0, true},
		{"garbage", "soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeToMinutes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeToMinutes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	for _, tz := range []string{"", "Local", "UTC", "America/New_York"} {
		if !ValidateTimezone(tz) {
			t.Errorf("ValidateTimezone(%q) = false, want true", tz)
		}
	}
	if ValidateTimezone("Mars/Olympus_Mons") {
		t.Error("ValidateTimezone accepted an unknown zone")
	}
}

func TestLoadLocationDefaultsToLocal(t *testing.T) {
	loc, err := LoadLocation("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc != time.Local {
		t.Errorf("LoadLocation(\"\") = %v, want time.Local", loc)
	}
}
