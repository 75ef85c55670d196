package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// JobMetrics counts background job runs by outcome and records their duration
type JobMetrics struct {
	runs     *Counter
	duration *Histogram
}

func NewJobMetrics(meter metric.Meter) (*JobMetrics, error) {
	runs, err := NewCounter(meter, "b3erp_job_runs_total", "Background job runs", "{run}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "b3erp_job_duration_seconds",
		Description: "Background job run time",
		Unit:        "s",
		Boundaries:  JobDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	return &JobMetrics{runs: runs, duration: duration}, nil
}

// JobFinished records one run. Outcome is ok, timeout or error.
func (m *JobMetrics) JobFinished(ctx context.Context, name string, elapsed time.Duration, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		outcome = "timeout"
	case err != nil:
		outcome = "error"
	}
	m.runs.Inc(ctx, AttrJob.String(name), AttrJobOutcome.String(outcome))
	m.duration.RecordDuration(ctx, elapsed, AttrJob.String(name))
}
