package flatspatial

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    insertCounter  prometheus.Counter
//	    queryHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordInsert(duration time.Duration) {
//	    p.insertCounter.Inc()
//	    // ... record duration, etc.
//	}
type MetricsCollector interface {
	// RecordInsert is called after each insert operation.
	RecordInsert(duration time.Duration)

	// RecordRemove is called after each remove operation.
	// err is nil if successful.
	RecordRemove(duration time.Duration, err error)

	// RecordUpdate is called after each position, box or shape update.
	// err is nil if successful.
	RecordUpdate(duration time.Duration, err error)

	// RecordMaintain is called after each maintenance pass.
	// reconciled is the number of objects whose membership was refreshed.
	RecordMaintain(reconciled int, duration time.Duration)

	// RecordQuery is called once a query iteration finishes or is
	// abandoned. kind is "around", "aabb" or "shape"; results is the
	// number of objects yielded.
	RecordQuery(kind string, results int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration)             {}
func (NoopMetricsCollector) RecordRemove(time.Duration, error)      {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, error)      {}
func (NoopMetricsCollector) RecordMaintain(int, time.Duration)      {}
func (NoopMetricsCollector) RecordQuery(string, int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount        atomic.Int64
	InsertTotalNanos   atomic.Int64
	RemoveCount        atomic.Int64
	RemoveErrors       atomic.Int64
	UpdateCount        atomic.Int64
	UpdateErrors       atomic.Int64
	MaintainCount      atomic.Int64
	MaintainReconciled atomic.Int64
	QueryCount         atomic.Int64
	QueryResults       atomic.Int64
	QueryTotalNanos    atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(duration time.Duration, err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, err error) {
	b.UpdateCount.Add(1)
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// RecordMaintain implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMaintain(reconciled int, duration time.Duration) {
	b.MaintainCount.Add(1)
	b.MaintainReconciled.Add(int64(reconciled))
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(kind string, results int, duration time.Duration) {
	b.QueryCount.Add(1)
	b.QueryResults.Add(int64(results))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:        b.InsertCount.Load(),
		InsertAvgNanos:     b.getAvgInsertNanos(),
		RemoveCount:        b.RemoveCount.Load(),
		RemoveErrors:       b.RemoveErrors.Load(),
		UpdateCount:        b.UpdateCount.Load(),
		UpdateErrors:       b.UpdateErrors.Load(),
		MaintainCount:      b.MaintainCount.Load(),
		MaintainReconciled: b.MaintainReconciled.Load(),
		QueryCount:         b.QueryCount.Load(),
		QueryResults:       b.QueryResults.Load(),
		QueryAvgNanos:      b.getAvgQueryNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgInsertNanos() int64 {
	count := b.InsertCount.Load()
	if count == 0 {
		return 0
	}
	return b.InsertTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgQueryNanos() int64 {
	count := b.QueryCount.Load()
	if count == 0 {
		return 0
	}
	return b.QueryTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount        int64
	InsertAvgNanos     int64
	RemoveCount        int64
	RemoveErrors       int64
	UpdateCount        int64
	UpdateErrors       int64
	MaintainCount      int64
	MaintainReconciled int64
	QueryCount         int64
	QueryResults       int64
	QueryAvgNanos      int64
}
