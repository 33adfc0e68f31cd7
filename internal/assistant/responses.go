package assistant

import "hash/fnv"

// Canned reply pools. Selection is keyed off the utterance hash so the same
// phrasing always gets the same reply; the variety is cosmetic, nothing
// depends on it being unpredictable.
var greetings = []string{
	"Hello! How can I help?",
	"Hi there! What can I do for you?",
	"Hey! I'm listening.",
	"Good to hear from you. What do you need?",
}

var farewells = []string{
	"Goodbye!",
	"See you later!",
	"Bye! Take care.",
}

func pick(pool []string, utterance string) string {
	h := fnv.New32a()
	h.Write([]byte(utterance))
	return pool[h.Sum32()%uint32(len(pool))]
}

func pickGreeting(utterance string) string { return pick(greetings, utterance) }
func pickFarewell(utterance string) string { return pick(farewells, utterance) }
