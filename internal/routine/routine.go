// Package routine speaks recurring announcements defined in the settings
// file ("daily briefing at 7am" style), driven by a cron scheduler.
package routine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"aria/internal/config"
	"aria/internal/speech"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

// Service owns the cron scheduler behind the configured routines.
type Service struct {
	scheduler gocron.Scheduler
	speaker   speech.Speaker
	mu        sync.Mutex
	jobs      map[string]gocron.Job
}

// NewService creates the routine service
func NewService(speaker speech.Speaker) (*Service, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		return nil, fmt.Errorf("failed to create routine scheduler: %w", err)
	}
	return &Service{
		scheduler: scheduler,
		speaker:   speaker,
		jobs:      make(map[string]gocron.Job),
	}, nil
}

// ValidateCron checks a standard 5-field cron expression and returns its
// next run time.
func ValidateCron(expr string) (time.Time, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return schedule.Next(time.Now()), nil
}

// Start registers every routine and starts the scheduler. A routine with an
// invalid cron expression is skipped with a warning; it never prevents
// startup.
func (s *Service) Start(routines []config.Routine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, routine := range routines {
		if err := s.register(routine); err != nil {
			log.Printf("⚠️ [ROUTINE] Skipping %q: %v", routine.Name, err)
			continue
		}
		count++
	}

	s.scheduler.Start()
	log.Printf("📅 [ROUTINE] Scheduler started (%d routines)", count)
}

func (s *Service) register(routine config.Routine) error {
	nextRun, err := ValidateCron(routine.Cron)
	if err != nil {
		return err
	}

	say := routine.Say
	job, err := s.scheduler.NewJob(
		gocron.CronJob(routine.Cron, false),
		gocron.NewTask(func() {
			s.speaker.Speak(say)
		}),
		gocron.WithName("routine_"+routine.Name),
	)
	if err != nil {
		return fmt.Errorf("failed to create routine job: %w", err)
	}

	s.jobs[routine.Name] = job
	log.Printf("📅 [ROUTINE] Registered %q (cron: %s, first run %s)",
		routine.Name, routine.Cron, nextRun.Format(time.RFC3339))
	return nil
}

// Stop shuts the scheduler down
func (s *Service) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		log.Printf("⚠️ [ROUTINE] Scheduler shutdown: %v", err)
	}
}
