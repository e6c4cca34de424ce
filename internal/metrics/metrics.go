// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from a bulk load run.
//
// The package exposes a narrow Backend interface (counters and timings) and a
// global, pluggable backend that defaults to a no-op, so instrumentation is
// always safe to call. Concrete systems live in subpackages (prompush,
// datadog) the same way storage backends do.
package metrics

import "time"

// Metric names emitted by the helpers below.
const (
	StepTotal           = "bulkload_step_total"
	StepDurationSeconds = "bulkload_step_duration_seconds"
	RowsTotal           = "bulkload_rows_total"
	StatementsTotal     = "bulkload_statements_total"
	FilesTotal          = "bulkload_files_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

func statusOf(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// RecordStep records one pipeline step (list, infer, ddl, load) with its
// latency and outcome.
func RecordStep(job, step string, err error, d time.Duration) {
	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": statusOf(err),
	}

	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordRows increments the row counter for kind, e.g. "loaded" or
// "rejected". Non-positive deltas are ignored.
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(RowsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordStatements counts executed INSERT statements.
func RecordStatements(job string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(StatementsTotal, float64(delta), Labels{
		"job": job,
	})
}

// RecordFile counts one finished file by outcome.
func RecordFile(job string, err error) {
	backend.IncCounter(FilesTotal, 1, Labels{
		"job":    job,
		"status": statusOf(err),
	})
}
