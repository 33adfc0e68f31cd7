package reminder

import (
	"errors"
	"testing"
	"time"
)

var baseDay = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

func TestParseTimeSpecAbsoluteRollsForward(t *testing.T) {
	// 09:00 requested at 10:00 means tomorrow 09:00, not an overdue reminder
	fireAt, err := ParseTimeSpec("09:00", baseDay)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC)
	if !fireAt.Equal(want) {
		t.Errorf("Expected %s, got %s", want, fireAt)
	}
}

func TestParseTimeSpecAbsoluteSameDay(t *testing.T) {
	// 09:00 requested at 08:00 stays on the same day
	at8 := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	fireAt, err := ParseTimeSpec("09:00", at8)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	if !fireAt.Equal(want) {
		t.Errorf("Expected %s, got %s", want, fireAt)
	}
}

func TestParseTimeSpecRelative(t *testing.T) {
	tests := []struct {
		spec string
		want time.Duration
	}{
		{"in 5 minutes", 5 * time.Minute},
		{"in 1 minute", time.Minute},
		{"in 2 hours", 2 * time.Hour},
		{"in 1 hour", time.Hour},
	}

	for _, tt := range tests {
		fireAt, err := ParseTimeSpec(tt.spec, baseDay)
		if err != nil {
			t.Errorf("ParseTimeSpec(%q) unexpected error: %v", tt.spec, err)
			continue
		}
		if got := fireAt.Sub(baseDay); got != tt.want {
			t.Errorf("ParseTimeSpec(%q) offset = %v, want %v", tt.spec, got, tt.want)
		}
	}
}

func TestParseTimeSpecAcceptsAtPrefix(t *testing.T) {
	fireAt, err := ParseTimeSpec("at 18:30", baseDay)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fireAt.Hour() != 18 || fireAt.Minute() != 30 {
		t.Errorf("Expected 18:30, got %s", fireAt)
	}
}

func TestParseTimeSpecMalformed(t *testing.T) {
	for _, spec := range []string{"", "soon", "at noon", "25:00", "10:75", "in five minutes", "in 5 days"} {
		_, err := ParseTimeSpec(spec, baseDay)
		if err == nil {
			t.Errorf("ParseTimeSpec(%q) expected error, got none", spec)
			continue
		}
		var parseErr *TimeParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("ParseTimeSpec(%q) expected *TimeParseError, got %T", spec, err)
		}
	}
}
