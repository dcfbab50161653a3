package background

import (
	"context"
	"time"

	"altaviva-site/internal/repository"
	"altaviva-site/pkg/logger"
)

// Invalidator drops cached rendered content.
type Invalidator interface {
	Invalidate() error
}

// ContentRefreshJob re-reads pages on the next request.
func ContentRefreshJob(pages Invalidator) Job {
	return Job{
		Name:    "content-refresh",
		Timeout: 30 * time.Second,
		Run: func(ctx context.Context) error {
			return pages.Invalidate()
		},
	}
}

// PreferencePruneJob deletes preferences untouched for longer than retention.
func PreferencePruneJob(preferences repository.PreferenceRepository, retention time.Duration, now func() time.Time) Job {
	if now == nil {
		now = time.Now
	}
	return Job{
		Name:        "preference-prune",
		Timeout:     time.Minute,
		RetryPolicy: RetryPolicy{MaxRetries: 2, Backoff: 30 * time.Second},
		Run: func(ctx context.Context) error {
			removed, err := preferences.DeleteStale(now().Add(-retention))
			if err != nil {
				return err
			}
			if removed > 0 {
				logger.Info("Pruned stale preferences", map[string]interface{}{"removed": removed})
			}
			return nil
		},
	}
}
