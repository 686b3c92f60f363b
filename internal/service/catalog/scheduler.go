package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler reloads the cache on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	cache   *Cache
	timeout time.Duration
}

// NewScheduler registers a reload job for spec (standard five-field cron or
// descriptors such as "@every 10m"). The job is bounded by timeout when it is
// positive.
func NewScheduler(cache *Cache, spec string, timeout time.Duration) (*Scheduler, error) {
	s := &Scheduler{cron: cron.New(), cache: cache, timeout: timeout}
	if _, err := s.cron.AddFunc(spec, s.reload); err != nil {
		return nil, fmt.Errorf("catalog reload schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) reload() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	// Failures are logged by the cache and leave the previous snapshot in place.
	_ = s.cache.Reload(ctx)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running reload to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
