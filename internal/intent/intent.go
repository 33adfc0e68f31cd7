// Package intent turns raw utterances into a categorical intent plus the
// structured entities that intent needs. Matching is rule-based: an ordered
// keyword table picks the intent, per-intent regexp grammars pull out fields.
package intent

// Intent is the categorical purpose of an utterance.
type Intent string

const (
	IntentEmail     Intent = "email"
	IntentReminder  Intent = "reminder"
	IntentWeather   Intent = "weather"
	IntentSmartHome Intent = "smart_home"
	IntentQuestion  Intent = "question"
	IntentTime      Intent = "time"
	IntentDate      Intent = "date"
	IntentGreeting  Intent = "greeting"
	IntentGoodbye   Intent = "goodbye"
)

// Entities maps a field name to the string value extracted for it.
// A field that could not be extracted is simply absent.
type Entities map[string]string

type intentPattern struct {
	intent   Intent
	keywords []string
}

// patternTable is evaluated top to bottom and the first intent with any
// matching keyword wins. The order is load-bearing: generic question
// keywords like "what is" sit above the time/date entries, so "what is the
// time" resolves to question, not time. Tests pin this ordering.
var patternTable = []intentPattern{
	{IntentEmail, []string{"send an email", "send email", "email to", "write an email", "email"}},
	{IntentReminder, []string{"remind me", "set a reminder", "reminder"}},
	{IntentWeather, []string{"weather", "temperature", "forecast"}},
	{IntentSmartHome, []string{"turn on", "turn off", "switch on", "switch off"}},
	{IntentQuestion, []string{"what is", "who is", "what are", "tell me about", "search for"}},
	{IntentTime, []string{"what time", "current time", "time is it"}},
	{IntentDate, []string{"what date", "what day", "today's date", "todays date"}},
	{IntentGreeting, []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}},
	{IntentGoodbye, []string{"goodbye", "bye", "exit", "quit", "see you", "stop listening"}},
}
