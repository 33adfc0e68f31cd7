package intent

import "testing"

func TestClassifyTableOrder(t *testing.T) {
	tests := []struct {
		utterance string
		want      Intent
	}{
		{"send an email to bob@example.com", IntentEmail},
		{"remind me to call mom at 18:30", IntentReminder},
		{"what's the weather in paris", IntentWeather},
		{"turn off the kitchen lights", IntentSmartHome},
		{"who is marie curie", IntentQuestion},
		{"what time is it", IntentTime},
		{"what day is it today", IntentDate},
		{"hello there", IntentGreeting},
		{"goodbye", IntentGoodbye},
	}

	for _, tt := range tests {
		got, _ := Classify(tt.utterance)
		if got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.utterance, got, tt.want)
		}
	}
}

// "what is the time" hits the generic question keyword "what is" before the
// time entry is ever reached. That shadowing is deliberate table behavior and
// this test pins it so nobody reorders the table by accident.
func TestClassifyQuestionShadowsTime(t *testing.T) {
	got, ents := Classify("what is the time")
	if got != IntentQuestion {
		t.Fatalf("Classify(\"what is the time\") = %s, want %s", got, IntentQuestion)
	}
	if ents["query"] != "what is the time" {
		t.Errorf("Expected query %q, got %q", "what is the time", ents["query"])
	}
}

func TestClassifyGoodbyeKeywords(t *testing.T) {
	for _, utterance := range []string{"goodbye", "bye now", "exit", "quit", "see you later", "stop listening"} {
		got, _ := Classify(utterance)
		if got != IntentGoodbye {
			t.Errorf("Classify(%q) = %s, want %s", utterance, got, IntentGoodbye)
		}
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// Contains both an email keyword and a reminder keyword; email sits
	// higher in the table so it must win.
	got, _ := Classify("send an email reminder")
	if got != IntentEmail {
		t.Errorf("Classify(\"send an email reminder\") = %s, want %s", got, IntentEmail)
	}
}

func TestClassifyFallbackQuestion(t *testing.T) {
	got, ents := Classify("Play Some Jazz")
	if got != IntentQuestion {
		t.Fatalf("Expected fallback %s, got %s", IntentQuestion, got)
	}
	if ents["query"] != "play some jazz" {
		t.Errorf("Expected lower-cased query, got %q", ents["query"])
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	got, _ := Classify("TURN ON the Living Room Lights")
	if got != IntentSmartHome {
		t.Errorf("Expected %s, got %s", IntentSmartHome, got)
	}
}
