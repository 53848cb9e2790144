package signalsafe

import (
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
)

// MetricsCollector defines an interface for collecting recorder metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Collectors are called from the recorder's supervising goroutine after a
// record has been written, never from the write path itself.
type MetricsCollector interface {
	// RecordDump is called after each written dump.
	// bytes is the record size, duration covers formatting and writing.
	RecordDump(sig unix.Signal, bytes int, duration time.Duration)

	// RecordDrop is called for each signal that did not produce a dump.
	RecordDrop(sig unix.Signal, reason DropReason)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDump(unix.Signal, int, time.Duration) {}
func (NoopMetricsCollector) RecordDrop(unix.Signal, DropReason)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	DumpCount       atomic.Int64
	DumpBytes       atomic.Int64
	DumpTotalNanos  atomic.Int64
	DropRateLimited atomic.Int64
	DropBudget      atomic.Int64
}

// RecordDump implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDump(_ unix.Signal, bytes int, duration time.Duration) {
	b.DumpCount.Add(1)
	b.DumpBytes.Add(int64(bytes))
	b.DumpTotalNanos.Add(duration.Nanoseconds())
}

// RecordDrop implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDrop(_ unix.Signal, reason DropReason) {
	switch reason {
	case DropRateLimited:
		b.DropRateLimited.Add(1)
	case DropBudgetExhausted:
		b.DropBudget.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		DumpCount:       b.DumpCount.Load(),
		DumpBytes:       b.DumpBytes.Load(),
		DropRateLimited: b.DropRateLimited.Load(),
		DropBudget:      b.DropBudget.Load(),
	}
	if stats.DumpCount > 0 {
		stats.DumpAvgNanos = b.DumpTotalNanos.Load() / stats.DumpCount
	}
	return stats
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	DumpCount       int64
	DumpBytes       int64
	DumpAvgNanos    int64
	DropRateLimited int64
	DropBudget      int64
}
