package routine

import (
	"testing"

	"aria/internal/config"
)

type silentSpeaker struct{}

func (silentSpeaker) Speak(string) {}

func TestValidateCron(t *testing.T) {
	if _, err := ValidateCron("0 7 * * *"); err != nil {
		t.Errorf("Expected valid cron, got %v", err)
	}
	if _, err := ValidateCron("not a cron"); err == nil {
		t.Error("Expected error for bogus cron expression")
	}
	if _, err := ValidateCron(""); err == nil {
		t.Error("Expected error for empty cron expression")
	}
}

func TestStartSkipsInvalidRoutines(t *testing.T) {
	svc, err := NewService(silentSpeaker{})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	defer svc.Stop()

	svc.Start([]config.Routine{
		{Name: "briefing", Cron: "0 7 * * *", Say: "Good morning"},
		{Name: "broken", Cron: "99 99 * *", Say: "never"},
	})

	if _, ok := svc.jobs["briefing"]; !ok {
		t.Error("Expected briefing routine to be registered")
	}
	if _, ok := svc.jobs["broken"]; ok {
		t.Error("Expected broken routine to be skipped")
	}
}
