package intent

import "strings"

// Classify matches an utterance against the pattern table and returns the
// winning intent together with its extracted entities.
//
// The policy is first-match-wins, not best-match: the table is walked in
// declaration order and the first intent with any keyword found as a
// case-insensitive substring of the utterance is returned immediately.
// Utterances that match nothing fall back to a question carrying the full
// utterance as the query.
func Classify(utterance string) (Intent, Entities) {
	lowered := strings.ToLower(strings.TrimSpace(utterance))

	for _, entry := range patternTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.intent, Extract(entry.intent, lowered)
			}
		}
	}

	return IntentQuestion, Entities{"query": lowered}
}
