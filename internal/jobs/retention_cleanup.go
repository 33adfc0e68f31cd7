package jobs

import (
	"context"
	"log"
	"time"

	"aria/internal/history"
)

// RetentionCleanupJob prunes interaction history older than the configured
// retention window. Runs once a day, shortly after local midnight.
type RetentionCleanupJob struct {
	store         *history.Store
	retentionDays int
}

// NewRetentionCleanupJob creates the history retention job
func NewRetentionCleanupJob(store *history.Store, retentionDays int) *RetentionCleanupJob {
	return &RetentionCleanupJob{store: store, retentionDays: retentionDays}
}

func (j *RetentionCleanupJob) Name() string { return "history_retention_cleanup" }

// NextRun returns the next 00:10 local time
func (j *RetentionCleanupJob) NextRun() time.Time {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 10, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run deletes interactions past the retention window
func (j *RetentionCleanupJob) Run(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)
	pruned, err := j.store.PruneOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if pruned > 0 {
		log.Printf("🧹 [JOBS] Pruned %d interactions older than %d days", pruned, j.retentionDays)
	}
	return nil
}
