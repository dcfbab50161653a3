// Package background runs site maintenance jobs on a small worker pool.
package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"altaviva-site/pkg/logger"
)

type SchedulerConfig struct {
	WorkerCount int
	QueueSize   int
}

type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

type Job struct {
	Name        string
	Run         func(ctx context.Context) error
	Timeout     time.Duration
	RetryPolicy RetryPolicy
}

var (
	ErrSchedulerNotStarted = errors.New("scheduler not started")
	ErrJobAlreadyScheduled = errors.New("job already scheduled")
	errShuttingDown        = errors.New("scheduler is shutting down")
)

type scheduledJob struct {
	job     Job
	attempt int
	delay   time.Duration
}

// Scheduler executes queued jobs on a fixed number of workers. A job name
// is queued at most once at a time.
type Scheduler struct {
	config SchedulerConfig

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	active  map[string]struct{}

	queue chan scheduledJob

	workers sync.WaitGroup
	tickers sync.WaitGroup
}

var (
	metricsOnce    sync.Once
	jobRuns        *prometheus.CounterVec
	jobDuration    *prometheus.HistogramVec
	jobLastSuccess *prometheus.GaugeVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		jobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "altaviva",
			Subsystem: "background",
			Name:      "job_runs_total",
			Help:      "Background job executions by outcome",
		}, []string{"job", "status"})

		jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "altaviva",
			Subsystem: "background",
			Name:      "job_duration_seconds",
			Help:      "Duration of background job executions",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"})

		jobLastSuccess = promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "altaviva",
			Subsystem: "background",
			Name:      "job_last_success_timestamp",
			Help:      "Unix timestamp of the last successful run",
		}, []string{"job"})
	})
}

func NewScheduler(cfg SchedulerConfig) *Scheduler {
	initMetrics()

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}

	return &Scheduler{
		config: cfg,
		queue:  make(chan scheduledJob, cfg.QueueSize),
		active: make(map[string]struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true

	for i := 0; i < s.config.WorkerCount; i++ {
		s.workers.Add(1)
		go s.worker()
	}
}

func (s *Scheduler) worker() {
	defer s.workers.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case job := <-s.queue:
			s.execute(job)
		}
	}
}

func (s *Scheduler) execute(job scheduledJob) {
	if job.delay > 0 {
		timer := time.NewTimer(job.delay)
		select {
		case <-timer.C:
		case <-s.ctx.Done():
			timer.Stop()
			s.finish(job, context.Canceled)
			return
		}
	}

	err := s.run(job)
	if err != nil && s.shouldRetry(job, err) {
		retry := job
		retry.attempt++
		retry.delay = job.job.RetryPolicy.Backoff
		if s.enqueue(retry) {
			return
		}
	}

	s.finish(job, err)
}

func (s *Scheduler) run(job scheduledJob) (runErr error) {
	start := time.Now()
	status := "success"

	ctx := s.ctx
	if job.job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.job.Timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			runErr = fmt.Errorf("panic: %v", r)
			status = "failure"
		}
		jobDuration.WithLabelValues(job.job.Name).Observe(time.Since(start).Seconds())
		jobRuns.WithLabelValues(job.job.Name, status).Inc()
		if status == "success" {
			jobLastSuccess.WithLabelValues(job.job.Name).Set(float64(time.Now().Unix()))
		}
	}()

	if err := ctx.Err(); err != nil {
		status = "canceled"
		return err
	}

	if err := job.job.Run(ctx); err != nil {
		status = "failure"
		if errors.Is(err, context.Canceled) {
			status = "canceled"
		}
		return err
	}
	return nil
}

func (s *Scheduler) shouldRetry(job scheduledJob, err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return job.attempt <= job.job.RetryPolicy.MaxRetries
}

func (s *Scheduler) enqueue(job scheduledJob) bool {
	select {
	case <-s.ctx.Done():
		return false
	case s.queue <- job:
		return true
	}
}

func (s *Scheduler) finish(job scheduledJob, err error) {
	s.mu.Lock()
	delete(s.active, job.job.Name)
	s.mu.Unlock()

	fields := map[string]interface{}{"job": job.job.Name, "attempt": job.attempt}
	switch {
	case err == nil:
		logger.Debug("Background job completed", fields)
	case errors.Is(err, context.Canceled):
		logger.Warn("Background job canceled", fields)
	default:
		logger.Error(err, "Background job failed", fields)
	}
}

// Schedule queues job once. It fails with ErrJobAlreadyScheduled while a
// job of the same name is pending or running.
func (s *Scheduler) Schedule(job Job) error {
	if job.Name == "" {
		return errors.New("job name is required")
	}
	if job.Run == nil {
		return errors.New("job runner is required")
	}

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrSchedulerNotStarted
	}
	if _, exists := s.active[job.Name]; exists {
		s.mu.Unlock()
		return ErrJobAlreadyScheduled
	}
	s.active[job.Name] = struct{}{}
	s.mu.Unlock()

	if !s.enqueue(scheduledJob{job: job, attempt: 1}) {
		s.mu.Lock()
		delete(s.active, job.Name)
		s.mu.Unlock()
		return errShuttingDown
	}
	return nil
}

// Every schedules job now and then once per interval until shutdown. Ticks
// that find the previous run still busy are skipped.
func (s *Scheduler) Every(job Job, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive", job.Name)
	}
	if err := s.Schedule(job); err != nil {
		return err
	}

	s.tickers.Add(1)
	go func() {
		defer s.tickers.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				if err := s.Schedule(job); err != nil && !errors.Is(err, ErrJobAlreadyScheduled) {
					return
				}
			}
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	s.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		s.tickers.Wait()
		s.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) ActiveJobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
