package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job defines a periodic background job.
type Job struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	// SkipInitialRun waits one interval before the first execution.
	SkipInitialRun bool
	Fn             func(ctx context.Context) error
}

// JobScheduler manages periodic background jobs with context-aware shutdown.
type JobScheduler struct {
	jobs []Job
	wg   sync.WaitGroup
}

func NewJobScheduler() *JobScheduler {
	return &JobScheduler{}
}

// Add registers a job to be run when Start is called. Jobs without a
// positive interval are ignored.
func (s *JobScheduler) Add(j Job) {
	if j.Interval <= 0 {
		slog.Warn("job not scheduled, interval must be positive", "job", j.Name)
		return
	}
	if j.Timeout <= 0 {
		j.Timeout = j.Interval
	}
	s.jobs = append(s.jobs, j)
}

// Start launches all registered jobs as goroutines. They stop when ctx is
// cancelled.
func (s *JobScheduler) Start(ctx context.Context) {
	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.runJob(ctx, j)
	}
}

func (s *JobScheduler) runJob(ctx context.Context, j Job) {
	defer s.wg.Done()

	if !j.SkipInitialRun {
		s.executeJob(ctx, j)
	}

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "job stopping", "job", j.Name)
			return
		case <-ticker.C:
			s.executeJob(ctx, j)
		}
	}
}

func (s *JobScheduler) executeJob(ctx context.Context, j Job) {
	if ctx.Err() != nil {
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, j.Timeout)
	defer cancel()

	start := time.Now()
	if err := safeRun(jobCtx, j.Fn); err != nil {
		slog.ErrorContext(ctx, "job failed", "job", j.Name, "duration", time.Since(start), "error", err)
		return
	}
	slog.DebugContext(ctx, "job finished", "job", j.Name, "duration", time.Since(start))
}

// safeRun keeps one panicking job from taking the scheduler down.
func safeRun(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return fn(ctx)
}

// Shutdown blocks until all running jobs complete.
func (s *JobScheduler) Shutdown() {
	s.wg.Wait()
}
