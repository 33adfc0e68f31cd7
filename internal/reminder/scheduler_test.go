package reminder

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestScheduleAndFireOnce(t *testing.T) {
	clock := newFakeClock(baseDay)
	var fired int32
	s := NewScheduler(func(r Reminder) { atomic.AddInt32(&fired, 1) })
	s.now = clock.Now

	r, err := s.Schedule("call mom", "in 5 minutes")
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if want := baseDay.Add(5 * time.Minute); !r.FireAt.Equal(want) {
		t.Errorf("Expected FireAt %s, got %s", want, r.FireAt)
	}

	// Not due yet: sweeping must fire nothing
	s.sweep()
	if n := atomic.LoadInt32(&fired); n != 0 {
		t.Fatalf("Expected 0 notifications before due time, got %d", n)
	}

	clock.Advance(5 * time.Minute)

	// Many poll iterations over the same instant must fire exactly once
	for i := 0; i < 10; i++ {
		s.sweep()
	}
	if n := atomic.LoadInt32(&fired); n != 1 {
		t.Errorf("Expected exactly 1 notification, got %d", n)
	}

	if pending := s.Pending(); len(pending) != 0 {
		t.Errorf("Expected no pending reminders, got %d", len(pending))
	}
	all := s.All()
	if len(all) != 1 || !all[0].Notified {
		t.Errorf("Expected 1 notified reminder in the session record, got %+v", all)
	}
}

func TestScheduleMalformedSpec(t *testing.T) {
	s := NewScheduler(nil)
	s.now = newFakeClock(baseDay).Now

	if _, err := s.Schedule("call mom", "whenever"); err == nil {
		t.Fatal("Expected error for malformed time spec, got none")
	}
	if len(s.All()) != 0 {
		t.Error("Malformed spec must not create a reminder")
	}
}

func TestConcurrentScheduleAndSweep(t *testing.T) {
	clock := newFakeClock(baseDay)
	var fired int32
	s := NewScheduler(func(r Reminder) { atomic.AddInt32(&fired, 1) })
	s.now = clock.Now

	// Two concurrent schedules
	var wg sync.WaitGroup
	for _, text := range []string{"water plants", "check oven"} {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			if _, err := s.Schedule(text, "in 5 minutes"); err != nil {
				t.Errorf("Schedule(%q) failed: %v", text, err)
			}
		}(text)
	}
	wg.Wait()

	if pending := s.Pending(); len(pending) != 2 {
		t.Fatalf("Expected 2 pending reminders, got %d", len(pending))
	}

	clock.Advance(5 * time.Minute)

	// Two concurrent poll cycles: neither reminder may fire twice or get lost
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.sweep()
		}()
	}
	wg.Wait()

	if n := atomic.LoadInt32(&fired); n != 2 {
		t.Errorf("Expected exactly 2 notifications, got %d", n)
	}
	for _, r := range s.All() {
		if !r.Notified {
			t.Errorf("Reminder %q was lost (never notified)", r.Text)
		}
	}
}

func TestSchedulerLoopFiresWithoutManualSweep(t *testing.T) {
	done := make(chan Reminder, 1)
	s := NewScheduler(func(r Reminder) { done <- r })

	s.Start()
	defer s.Stop()

	fireAt := time.Now().Add(30 * time.Millisecond)
	s.mu.Lock()
	r := &Reminder{Text: "blink", FireAt: fireAt, CreatedAt: time.Now()}
	s.pending = append(s.pending, r)
	s.all = append(s.all, r)
	s.mu.Unlock()
	s.wake <- struct{}{}

	select {
	case got := <-done:
		if got.Text != "blink" {
			t.Errorf("Expected reminder %q, got %q", "blink", got.Text)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Reminder did not fire within 2s")
	}
}
