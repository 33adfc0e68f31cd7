// Package jobs runs the assistant's periodic maintenance work, separate from
// the reminder scheduler: reminders are user-facing one-shots, jobs are
// recurring housekeeping.
package jobs

import (
	"context"
	"log"
	"sync"
	"time"
)

// Job is a recurring maintenance task
type Job interface {
	Name() string
	Run(ctx context.Context) error
	NextRun() time.Time
}

// Runner schedules each registered job with a timer and reschedules it after
// every run.
type Runner struct {
	mu      sync.Mutex
	jobs    []Job
	timers  map[string]*time.Timer
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// NewRunner creates an empty job runner
func NewRunner() *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		timers: make(map[string]*time.Timer),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register adds a job. Must be called before Start.
func (r *Runner) Register(job Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, job)
	log.Printf("✅ [JOBS] Registered job: %s", job.Name())
}

// Start arms a timer for every registered job
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true

	for _, job := range r.jobs {
		r.arm(job)
	}
	log.Printf("🚀 [JOBS] Runner started with %d jobs", len(r.jobs))
}

func (r *Runner) arm(job Job) {
	next := job.NextRun()
	r.timers[job.Name()] = time.AfterFunc(time.Until(next), func() {
		r.run(job)
	})
	log.Printf("⏰ [JOBS] %s next runs at %s", job.Name(), next.Format(time.RFC3339))
}

func (r *Runner) run(job Job) {
	r.wg.Add(1)
	defer r.wg.Done()

	if err := job.Run(r.ctx); err != nil {
		log.Printf("❌ [JOBS] %s failed: %v", job.Name(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		r.arm(job)
	}
}

// Stop cancels the timers and waits for in-flight runs
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.started = false
	for _, timer := range r.timers {
		timer.Stop()
	}
	r.timers = make(map[string]*time.Timer)
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
	log.Println("🛑 [JOBS] Runner stopped")
}
