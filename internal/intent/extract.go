package intent

import (
	"regexp"
	"strings"
)

// fieldGrammar is an ordered list of candidate patterns for one field.
// Patterns are tried in order and the first match wins; later entries are
// fallbacks for the same field, not different fields. Every pattern captures
// the field value in group 1.
type fieldGrammar struct {
	field    string
	patterns []*regexp.Regexp
}

var grammars = map[Intent][]fieldGrammar{
	IntentEmail: {
		{"recipient", []*regexp.Regexp{
			regexp.MustCompile(`([a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,})`),
		}},
		{"subject", []*regexp.Regexp{
			regexp.MustCompile(`subject\s+(.+?)\s+saying\s`),
			regexp.MustCompile(`subject\s+(.+)$`),
			regexp.MustCompile(`about\s+(.+?)\s+saying\s`),
			regexp.MustCompile(`about\s+(.+)$`),
		}},
		{"message", []*regexp.Regexp{
			regexp.MustCompile(`saying\s+(.+)$`),
			regexp.MustCompile(`message is\s+(.+)$`),
			regexp.MustCompile(`that says\s+(.+)$`),
		}},
	},
	IntentReminder: {
		{"text", []*regexp.Regexp{
			regexp.MustCompile(`remind me to\s+(.+?)\s+at\s+\d{1,2}:\d{2}`),
			regexp.MustCompile(`remind me to\s+(.+?)\s+in\s+\d+\s+(?:minutes?|hours?)`),
			regexp.MustCompile(`remind me to\s+(.+)$`),
			regexp.MustCompile(`remind me\s+(?:about\s+)?(.+)$`),
		}},
		{"time", []*regexp.Regexp{
			regexp.MustCompile(`\bat\s+(\d{1,2}:\d{2})\b`),
			regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`),
			regexp.MustCompile(`\b(in\s+\d+\s+(?:minutes?|hours?))\b`),
		}},
	},
	IntentWeather: {
		{"location", []*regexp.Regexp{
			regexp.MustCompile(`(?:weather|forecast|temperature)\s+(?:in|for|at)\s+(.+)$`),
			regexp.MustCompile(`\b(?:in|for|at)\s+([a-z][a-z ]*)$`),
		}},
	},
	IntentSmartHome: {
		{"action", []*regexp.Regexp{
			regexp.MustCompile(`\bturn\s+(on|off)\b`),
			regexp.MustCompile(`\bswitch\s+(on|off)\b`),
			regexp.MustCompile(`\b(on|off)\b`),
		}},
	},
}

// trailing filler stripped from extracted weather locations
var locationSuffixes = []string{" today", " tomorrow", " right now", " now", " please"}

// Extract parses the structured fields for an intent out of an utterance.
// It is pure and total: fields that cannot be extracted are left absent and
// no input ever produces an error. Callers prompt for missing fields.
func Extract(intent Intent, utterance string) Entities {
	lowered := strings.ToLower(strings.TrimSpace(utterance))
	ents := Entities{}

	for _, grammar := range grammars[intent] {
		for _, pattern := range grammar.patterns {
			if m := pattern.FindStringSubmatch(lowered); m != nil {
				value := strings.TrimSpace(m[1])
				if value != "" {
					ents[grammar.field] = value
				}
				break
			}
		}
	}

	switch intent {
	case IntentQuestion:
		ents["query"] = lowered
	case IntentWeather:
		if loc, ok := ents["location"]; ok {
			ents["location"] = trimLocation(loc)
		}
	case IntentSmartHome:
		if device := deviceFrom(lowered); device != "" {
			ents["device"] = device
		}
	}

	return ents
}

func trimLocation(location string) string {
	for _, suffix := range locationSuffixes {
		location = strings.TrimSuffix(location, suffix)
	}
	return strings.TrimSpace(location)
}

var deviceFiller = regexp.MustCompile(`\b(turn|switch|on|off|please|the|my|can you|could you)\b`)

// deviceFrom derives the device name by stripping the action keywords and
// filler words from the utterance, keeping whatever the user actually named.
func deviceFrom(lowered string) string {
	cleaned := deviceFiller.ReplaceAllString(lowered, " ")
	return strings.Join(strings.Fields(cleaned), " ")
}
