package reminder

import (
	"container/heap"
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NotifyFunc is called exactly once per reminder, after it transitions to
// Notified. It runs outside the scheduler lock and may speak, log, or both.
type NotifyFunc func(r Reminder)

// reminderHeap is a min-heap ordered by FireAt, holding pending reminders.
type reminderHeap []*Reminder

func (h reminderHeap) Len() int            { return len(h) }
func (h reminderHeap) Less(i, j int) bool  { return h[i].FireAt.Before(h[j].FireAt) }
func (h reminderHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *reminderHeap) Push(x interface{}) { *h = append(*h, x.(*Reminder)) }
func (h *reminderHeap) Pop() interface{} {
	old := *h
	n := len(old)
	r := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return r
}

// Scheduler owns the reminder collection and the single background loop that
// fires notifications. The loop sleeps until the next due reminder instead of
// polling on a fixed interval, and wakes early whenever something sooner is
// scheduled. Concurrent scheduling and firing are safe: the Notified flag is
// flipped under the lock, so duplicate sweeps can never double-fire.
type Scheduler struct {
	mu      sync.Mutex
	pending reminderHeap
	all     []*Reminder

	notify NotifyFunc
	now    func() time.Time
	wake   chan struct{}

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewScheduler creates a scheduler that delivers notifications through notify.
func NewScheduler(notify NotifyFunc) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		notify: notify,
		now:    time.Now,
		wake:   make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Schedule parses timeSpec, creates a reminder, and hands it to the loop.
// Relative specs ("in 5 minutes") are resolved against the clock now, at
// scheduling time. The returned value is a snapshot; the scheduler keeps
// exclusive ownership of the stored reminder.
func (s *Scheduler) Schedule(text, timeSpec string) (Reminder, error) {
	fireAt, err := ParseTimeSpec(timeSpec, s.now())
	if err != nil {
		return Reminder{}, err
	}

	r := &Reminder{
		ID:        uuid.New(),
		Text:      text,
		FireAt:    fireAt,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	heap.Push(&s.pending, r)
	s.all = append(s.all, r)
	s.mu.Unlock()

	log.Printf("⏰ [REMINDER] Scheduled %q for %s", text, fireAt.Format(time.RFC3339))

	// Nudge the loop in case this reminder is due sooner than its current timer
	select {
	case s.wake <- struct{}{}:
	default:
	}

	return *r, nil
}

// Start launches the background loop. Safe to call once.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop()
	log.Println("🚀 [REMINDER] Scheduler loop started")
}

// Stop cancels the loop and waits for it to exit.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	log.Println("🛑 [REMINDER] Scheduler stopped")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		var timer *time.Timer
		var due <-chan time.Time
		if len(s.pending) > 0 {
			wait := s.pending[0].FireAt.Sub(s.now())
			if wait <= 0 {
				s.mu.Unlock()
				s.sweep()
				continue
			}
			timer = time.NewTimer(wait)
			due = timer.C
		}
		s.mu.Unlock()

		select {
		case <-s.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-s.wake:
			// re-evaluate the head of the heap
			if timer != nil {
				timer.Stop()
			}
		case <-due:
			s.sweep()
		}
	}
}

// sweep transitions every due pending reminder to Notified and delivers its
// notification. Marking happens under the lock; delivery happens outside it.
// Repeated sweeps over the same instant are idempotent.
func (s *Scheduler) sweep() {
	now := s.now()

	s.mu.Lock()
	var fired []Reminder
	for len(s.pending) > 0 && !s.pending[0].FireAt.After(now) {
		r := heap.Pop(&s.pending).(*Reminder)
		if r.Notified {
			continue
		}
		r.Notified = true
		fired = append(fired, *r)
	}
	s.mu.Unlock()

	for _, r := range fired {
		log.Printf("🔔 [REMINDER] Firing %q (due %s)", r.Text, r.FireAt.Format(time.Kitchen))
		if s.notify != nil {
			s.notify(r)
		}
	}
}

// Pending returns snapshots of the reminders that have not fired yet.
func (s *Scheduler) Pending() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Reminder, 0, len(s.pending))
	for _, r := range s.all {
		if !r.Notified {
			out = append(out, *r)
		}
	}
	return out
}

// All returns snapshots of every reminder created this session, fired or not.
func (s *Scheduler) All() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Reminder, 0, len(s.all))
	for _, r := range s.all {
		out = append(out, *r)
	}
	return out
}
