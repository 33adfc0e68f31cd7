package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"aria/internal/email"
	"aria/internal/intent"
	"aria/internal/knowledge"
	"aria/internal/metrics"
	"aria/internal/reminder"
	"aria/internal/smarthome"
	"aria/internal/speech"
	"aria/internal/weather"
)

// Outcome tells the interaction loop whether to keep going
type Outcome int

const (
	Continue Outcome = iota
	Terminate
)

// WeatherClient is the weather collaborator surface the dispatcher needs
type WeatherClient interface {
	Current(ctx context.Context, city string) (weather.Summary, error)
}

// KnowledgeClient is the encyclopedic lookup surface the dispatcher needs
type KnowledgeClient interface {
	Lookup(ctx context.Context, query string) (string, error)
}

// Dispatcher routes a classified command to its handler. Handlers prompt for
// missing mandatory fields through the listener, and every collaborator
// failure is converted to a spoken diagnostic — nothing short of a goodbye
// ends the session.
type Dispatcher struct {
	listener  speech.Listener
	speaker   speech.Speaker
	mailer    email.Mailer
	weather   WeatherClient
	knowledge KnowledgeClient
	reminders *reminder.Scheduler
	devices   *smarthome.Controller
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Dispatch routes one command. All handlers return Continue except goodbye.
func (d *Dispatcher) Dispatch(ctx context.Context, utterance string, it intent.Intent, ents intent.Entities) Outcome {
	switch it {
	case intent.IntentGreeting:
		d.speaker.Speak(pickGreeting(utterance))
	case intent.IntentGoodbye:
		d.speaker.Speak(pickFarewell(utterance))
		return Terminate
	case intent.IntentEmail:
		d.handleEmail(ctx, ents)
	case intent.IntentReminder:
		d.handleReminder(ctx, ents)
	case intent.IntentWeather:
		d.handleWeather(ctx, ents)
	case intent.IntentSmartHome:
		d.handleSmartHome(ents)
	case intent.IntentQuestion:
		d.handleQuestion(ctx, ents)
	case intent.IntentTime:
		d.speaker.Speak("It's " + d.now().Format("3:04 PM") + ".")
	case intent.IntentDate:
		d.speaker.Speak("Today is " + d.now().Format("Monday, January 2, 2006") + ".")
	default:
		d.speaker.Speak("Sorry, I don't know how to help with that yet.")
	}
	return Continue
}

// prompt speaks a question and returns the user's trimmed reply. Empty means
// the user gave nothing usable.
func (d *Dispatcher) prompt(ctx context.Context, question string) string {
	d.speaker.Speak(question)
	reply, err := d.listener.Listen(ctx)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(reply)
}

func (d *Dispatcher) handleEmail(ctx context.Context, ents intent.Entities) {
	recipient := ents["recipient"]
	if recipient == "" {
		reply := d.prompt(ctx, "Who should I send the email to?")
		if reply == "" {
			d.speaker.Speak("Okay, never mind the email.")
			return
		}
		// Accept either a bare address or one embedded in a sentence
		if extracted := intent.Extract(intent.IntentEmail, reply)["recipient"]; extracted != "" {
			recipient = extracted
		} else {
			recipient = strings.ToLower(reply)
		}
	}

	subject := ents["subject"]
	if subject == "" {
		subject = "No Subject"
	}

	message := ents["message"]
	if message == "" {
		message = d.prompt(ctx, "What should the message say?")
		if message == "" {
			d.speaker.Speak("Okay, never mind the email.")
			return
		}
	}

	if err := d.mailer.Send(ctx, recipient, subject, message); err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			d.speaker.Speak("Email isn't set up yet. Add your SMTP details to the settings file first.")
			return
		}
		log.Printf("❌ [DISPATCH] Email send failed: %v", err)
		d.countError("email")
		d.speaker.Speak("Sorry, I couldn't send the email.")
		return
	}
	d.speaker.Speak(fmt.Sprintf("Email sent to %s.", recipient))
}

func (d *Dispatcher) handleReminder(ctx context.Context, ents intent.Entities) {
	text := ents["text"]
	if text == "" {
		text = d.prompt(ctx, "What should I remind you about?")
		if text == "" {
			d.speaker.Speak("Okay, no reminder then.")
			return
		}
	}

	timeSpec := ents["time"]
	if timeSpec == "" {
		timeSpec = d.prompt(ctx, "When should I remind you? Say a time like 18:30, or in 10 minutes.")
		if timeSpec == "" {
			d.speaker.Speak("Okay, no reminder then.")
			return
		}
	}

	r, err := d.reminders.Schedule(text, timeSpec)
	if err != nil {
		var parseErr *reminder.TimeParseError
		if errors.As(err, &parseErr) {
			d.speaker.Speak("Sorry, I didn't understand that time. Try something like 18:30, or in 10 minutes.")
			return
		}
		log.Printf("❌ [DISPATCH] Scheduling failed: %v", err)
		d.speaker.Speak("Sorry, I couldn't set that reminder.")
		return
	}

	if d.metrics != nil {
		d.metrics.RemindersScheduled.Inc()
	}
	d.speaker.Speak(fmt.Sprintf("Okay, I'll remind you to %s at %s.", r.Text, r.FireAt.Format("3:04 PM")))
}

func (d *Dispatcher) handleWeather(ctx context.Context, ents intent.Entities) {
	summary, err := d.weather.Current(ctx, ents["location"])
	if err != nil {
		if errors.Is(err, weather.ErrNotConfigured) {
			d.speaker.Speak("I need a weather API key before I can check the weather. Add one to the settings file.")
			return
		}
		log.Printf("❌ [DISPATCH] Weather lookup failed: %v", err)
		d.countError("weather")
		d.speaker.Speak("Sorry, I couldn't fetch the weather right now.")
		return
	}
	d.speaker.Speak(summary.Sentence())
}

func (d *Dispatcher) handleSmartHome(ents intent.Entities) {
	device := ents["device"]
	if device == "" {
		d.speaker.Speak("I didn't catch which device you meant.")
		return
	}
	action := ents["action"]
	if action == "" {
		action = "on"
	}

	d.devices.Set(device, action == "on")
	d.speaker.Speak(fmt.Sprintf("Turning %s the %s.", action, device))
}

func (d *Dispatcher) handleQuestion(ctx context.Context, ents intent.Entities) {
	answer, err := d.knowledge.Lookup(ctx, ents["query"])
	if err != nil {
		if errors.Is(err, knowledge.ErrNotFound) {
			d.speaker.Speak("I couldn't find anything about that.")
			return
		}
		log.Printf("❌ [DISPATCH] Knowledge lookup failed: %v", err)
		d.countError("knowledge")
		d.speaker.Speak("Sorry, I couldn't look that up right now.")
		return
	}
	d.speaker.Speak(answer)
}

func (d *Dispatcher) countError(collaborator string) {
	if d.metrics != nil {
		d.metrics.CollaboratorErrors.WithLabelValues(collaborator).Inc()
	}
}
