package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/b3erp/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var (
	// ErrSchedulerRunning is returned when registering a job after Start
	ErrSchedulerRunning = errors.New("scheduler is already running")
	ErrDuplicateJob     = errors.New("job already registered")
	// ErrInvalidConfig rejects a job without name, function or interval
	ErrInvalidConfig = errors.New("invalid job")
)

// JobStatus represents the outcome of the last run of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// JobFunc is the body of a job
type JobFunc func(ctx context.Context) error

// Locker serialises a job across instances
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// RunObserver is told about every finished run
type RunObserver interface {
	JobFinished(ctx context.Context, name string, elapsed time.Duration, err error)
}

// JobInfo is a snapshot of a registered job
type JobInfo struct {
	Name         string        `json:"name"`
	Interval     time.Duration `json:"interval"`
	Status       JobStatus     `json:"status"`
	Runs         int           `json:"runs"`
	Failures     int           `json:"failures"`
	LastRunAt    *time.Time    `json:"last_run_at,omitempty"`
	LastDuration time.Duration `json:"last_duration"`
	LastError    string        `json:"last_error,omitempty"`
}

type job struct {
	name     string
	interval time.Duration
	fn       JobFunc

	running sync.Mutex // serialises runs of this job within the process
	mu      sync.Mutex
	info    JobInfo
}

// Config holds scheduler configuration
type Config struct {
	JobTimeout time.Duration
	// RunOnStart runs every job once immediately after Start
	RunOnStart bool
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{JobTimeout: 5 * time.Minute}
}

// Scheduler runs registered jobs on fixed intervals
type Scheduler struct {
	config   Config
	locker   Locker
	logger   *zap.Logger
	observer RunObserver
	now      func() time.Time

	mu        sync.Mutex
	jobs      map[string]*job
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
}

// New creates a scheduler. locker may be nil for single-instance use.
func New(config Config, locker Locker, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultConfig().JobTimeout
	}
	return &Scheduler{
		config: config,
		locker: locker,
		logger: logger.Named("scheduler"),
		now:    time.Now,
		jobs:   make(map[string]*job),
	}
}

// WithObserver reports finished runs to o. Call before Start.
func (s *Scheduler) WithObserver(o RunObserver) *Scheduler {
	s.observer = o
	return s
}

// Register adds a job. Jobs must be registered before Start.
func (s *Scheduler) Register(name string, interval time.Duration, fn JobFunc) error {
	if name == "" || fn == nil || interval <= 0 {
		return fmt.Errorf("%w: job %q needs a name, a function and a positive interval", ErrInvalidConfig, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return ErrSchedulerRunning
	}
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}
	s.jobs[name] = &job{
		name:     name,
		interval: interval,
		fn:       fn,
		info:     JobInfo{Name: name, Interval: interval, Status: JobStatusPending},
	}
	return nil
}

// Start launches one loop per job
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}
	s.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, j)
	}
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.jobs)), zap.Duration("job_timeout", s.config.JobTimeout))
	return nil
}

// Stop cancels running jobs and waits for the loops to exit
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

// Jobs returns a snapshot of every job ordered by name
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	list := make([]*job, 0, len(s.jobs))
	for _, j := range s.jobs {
		list = append(list, j)
	}
	s.mu.Unlock()

	out := make([]JobInfo, len(list))
	for i, j := range list {
		j.mu.Lock()
		out[i] = j.info
		j.mu.Unlock()
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

func (s *Scheduler) loop(ctx context.Context, j *job) {
	defer s.wg.Done()

	if s.config.RunOnStart {
		_ = s.run(ctx, j)
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.run(ctx, j)
		}
	}
}

// run executes one job with a timeout, under the distributed lock when
// one is configured, and records the outcome
func (s *Scheduler) run(ctx context.Context, j *job) error {
	j.running.Lock()
	defer j.running.Unlock()

	started := s.now()
	j.mu.Lock()
	j.info.Status = JobStatusRunning
	j.mu.Unlock()

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()
	jobCtx, span := telemetry.StartSpan(jobCtx, "job."+j.name)

	var err error
	if s.locker != nil {
		err = s.locker.WithLock(jobCtx, "job:"+j.name, j.fn)
	} else {
		err = j.fn(jobCtx)
	}
	elapsed := s.now().Sub(started)
	telemetry.EndSpan(span, err)
	if s.observer != nil {
		s.observer.JobFinished(ctx, j.name, elapsed, err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.info.Runs++
	j.info.LastRunAt = &started
	j.info.LastDuration = elapsed
	if err != nil {
		j.info.Failures++
		j.info.Status = JobStatusFailed
		j.info.LastError = err.Error()
		s.logger.Error("Job failed", zap.String("job", j.name), zap.Error(err))
		return err
	}
	j.info.Status = JobStatusSuccess
	j.info.LastError = ""
	s.logger.Debug("Job completed", zap.String("job", j.name), zap.Duration("duration", elapsed))
	return nil
}
