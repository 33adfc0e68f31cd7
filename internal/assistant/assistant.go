// Package assistant drives the listen→classify→dispatch loop and routes each
// command to the handler that can act on it.
package assistant

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"aria/internal/email"
	"aria/internal/history"
	"aria/internal/intent"
	"aria/internal/logging"
	"aria/internal/metrics"
	"aria/internal/reminder"
	"aria/internal/smarthome"
	"aria/internal/speech"

	"github.com/google/uuid"
)

// Deps bundles everything the assistant needs. History and Metrics may be
// nil; the loop degrades to not recording.
type Deps struct {
	Listener  speech.Listener
	Speaker   speech.Speaker
	Mailer    email.Mailer
	Weather   WeatherClient
	Knowledge KnowledgeClient
	Reminders *reminder.Scheduler
	Devices   *smarthome.Controller
	History   *history.Store
	Metrics   *metrics.Metrics

	// Canned maps exact phrases to fixed replies, checked before
	// classification (the classic command→response table).
	Canned map[string]string

	// Clock is used for the time/date intents; defaults to time.Now
	Clock func() time.Time
}

// Assistant is the session: one command at a time, fully synchronous, with
// the reminder scheduler firing independently in the background.
type Assistant struct {
	listener   speech.Listener
	speaker    *memoSpeaker
	dispatcher *Dispatcher
	history    *history.Store
	metrics    *metrics.Metrics
	canned     map[string]string
}

// New wires an assistant from its dependencies
func New(deps Deps) *Assistant {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	memo := &memoSpeaker{inner: deps.Speaker}
	dispatcher := &Dispatcher{
		listener:  deps.Listener,
		speaker:   memo,
		mailer:    deps.Mailer,
		weather:   deps.Weather,
		knowledge: deps.Knowledge,
		reminders: deps.Reminders,
		devices:   deps.Devices,
		metrics:   deps.Metrics,
		now:       clock,
	}

	return &Assistant{
		listener:   deps.Listener,
		speaker:    memo,
		dispatcher: dispatcher,
		history:    deps.History,
		metrics:    deps.Metrics,
		canned:     deps.Canned,
	}
}

// Run drives the interaction loop until goodbye, input EOF, or ctx cancel.
// Handler failures never end the session; they are spoken and swallowed.
func (a *Assistant) Run(ctx context.Context) error {
	a.speaker.Speak("I'm listening.")

	for {
		utterance, err := a.listener.Listen(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				a.speaker.Speak("Goodbye!")
				return nil
			}
			log.Printf("⚠️ [ASSISTANT] Listen failed: %v", err)
			if a.metrics != nil {
				a.metrics.CollaboratorErrors.WithLabelValues("speech").Inc()
			}
			continue
		}

		lowered := strings.ToLower(strings.TrimSpace(utterance))
		if lowered == "" {
			a.speaker.Speak("Sorry, I didn't catch that.")
			continue
		}

		// Exact-phrase canned responses short-circuit classification
		if reply, ok := a.canned[lowered]; ok {
			a.speaker.Speak(reply)
			a.record(ctx, lowered, "canned")
			continue
		}

		it, ents := intent.Classify(utterance)
		logging.WithCommand(uuid.NewString(), string(it)).Debug("dispatching command")
		if a.metrics != nil {
			a.metrics.CommandsTotal.WithLabelValues(string(it)).Inc()
		}

		outcome := a.dispatcher.Dispatch(ctx, lowered, it, ents)
		a.record(ctx, lowered, string(it))

		if outcome == Terminate {
			return nil
		}
	}
}

func (a *Assistant) record(ctx context.Context, utterance, it string) {
	if a.history == nil {
		return
	}
	if err := a.history.Append(ctx, utterance, it, a.speaker.Last()); err != nil {
		log.Printf("⚠️ [ASSISTANT] Failed to record interaction: %v", err)
	}
}

// memoSpeaker remembers the last line spoken so the loop can store it in the
// interaction history alongside the utterance that caused it.
type memoSpeaker struct {
	inner speech.Speaker
	mu    sync.Mutex
	last  string
}

func (m *memoSpeaker) Speak(text string) {
	m.mu.Lock()
	m.last = text
	m.mu.Unlock()
	m.inner.Speak(text)
}

func (m *memoSpeaker) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}
