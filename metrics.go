package xtalgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordIngest is called for every record handed in by an
	// adapter; accepted is false when the validity filter dropped it.
	RecordIngest(accepted bool)

	// RecordMerge is called after each merge operation.
	// observations is the number of input records, unique the number
	// of output reflections.
	RecordMerge(observations, unique int, duration time.Duration)

	// RecordStatistics is called after each merging-statistics
	// computation over the given number of shells.
	RecordStatistics(shells int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIngest(bool)                   {}
func (NoopMetricsCollector) RecordMerge(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordStatistics(int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IngestAccepted  atomic.Int64
	IngestDropped   atomic.Int64
	MergeCount      atomic.Int64
	MergeInput      atomic.Int64
	MergeOutput     atomic.Int64
	MergeTotalNanos atomic.Int64
	StatsCount      atomic.Int64
	StatsTotalNanos atomic.Int64
}

// RecordIngest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIngest(accepted bool) {
	if accepted {
		b.IngestAccepted.Add(1)
	} else {
		b.IngestDropped.Add(1)
	}
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(observations, unique int, duration time.Duration) {
	b.MergeCount.Add(1)
	b.MergeInput.Add(int64(observations))
	b.MergeOutput.Add(int64(unique))
	b.MergeTotalNanos.Add(duration.Nanoseconds())
}

// RecordStatistics implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStatistics(shells int, duration time.Duration) {
	b.StatsCount.Add(1)
	b.StatsTotalNanos.Add(duration.Nanoseconds())
}
