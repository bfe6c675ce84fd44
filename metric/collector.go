package metric

import (
	"sync/atomic"
	"time"
)

// Skip reasons passed to RecordFrame.
const (
	ReasonAccepted     = "accepted"
	ReasonFeatureCount = "feature_count"
	ReasonFeatureFile  = "feature_file"
	ReasonNoViews      = "no_views"
	ReasonWidth        = "width_mismatch"
)

// Collector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
type Collector interface {
	// RecordFrame is called once per manifest frame during ingestion.
	// reason is ReasonAccepted for accepted frames, otherwise the skip reason.
	RecordFrame(accepted bool, reason string)

	// RecordIngest is called when an ingestion run completes.
	RecordIngest(total, skipped int, duration time.Duration)

	// RecordSave is called after each save operation.
	// err is nil if successful.
	RecordSave(duration time.Duration, err error)

	// RecordLoad is called after each load operation.
	RecordLoad(duration time.Duration, err error)
}

// Noop is a no-op implementation of Collector.
type Noop struct{}

func (Noop) RecordFrame(bool, string)             {}
func (Noop) RecordIngest(int, int, time.Duration) {}
func (Noop) RecordSave(time.Duration, error)      {}
func (Noop) RecordLoad(time.Duration, error)      {}

// Basic provides simple in-memory metrics collection.
type Basic struct {
	FramesAccepted  atomic.Int64
	FramesSkipped   atomic.Int64
	IngestCount     atomic.Int64
	IngestNanos     atomic.Int64
	SaveCount       atomic.Int64
	SaveErrors      atomic.Int64
	SaveTotalNanos  atomic.Int64
	LoadCount       atomic.Int64
	LoadErrors      atomic.Int64
	LoadTotalNanos  atomic.Int64
	lastSkipped     atomic.Int64
	lastIngestTotal atomic.Int64
}

// RecordFrame implements Collector.
func (b *Basic) RecordFrame(accepted bool, _ string) {
	if accepted {
		b.FramesAccepted.Add(1)
	} else {
		b.FramesSkipped.Add(1)
	}
}

// RecordIngest implements Collector.
func (b *Basic) RecordIngest(total, skipped int, duration time.Duration) {
	b.IngestCount.Add(1)
	b.IngestNanos.Add(duration.Nanoseconds())
	b.lastIngestTotal.Store(int64(total))
	b.lastSkipped.Store(int64(skipped))
}

// RecordSave implements Collector.
func (b *Basic) RecordSave(duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// RecordLoad implements Collector.
func (b *Basic) RecordLoad(duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// Stats returns a snapshot of current metrics.
func (b *Basic) Stats() BasicStats {
	return BasicStats{
		FramesAccepted: b.FramesAccepted.Load(),
		FramesSkipped:  b.FramesSkipped.Load(),
		IngestCount:    b.IngestCount.Load(),
		LastTotal:      b.lastIngestTotal.Load(),
		LastSkipped:    b.lastSkipped.Load(),
		SaveCount:      b.SaveCount.Load(),
		SaveErrors:     b.SaveErrors.Load(),
		SaveAvgNanos:   avg(b.SaveTotalNanos.Load(), b.SaveCount.Load()),
		LoadCount:      b.LoadCount.Load(),
		LoadErrors:     b.LoadErrors.Load(),
		LoadAvgNanos:   avg(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicStats is a snapshot of Basic state.
type BasicStats struct {
	FramesAccepted int64
	FramesSkipped  int64
	IngestCount    int64
	LastTotal      int64
	LastSkipped    int64
	SaveCount      int64
	SaveErrors     int64
	SaveAvgNanos   int64
	LoadCount      int64
	LoadErrors     int64
	LoadAvgNanos   int64
}
