package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements Collector on top of prometheus/client_golang.
type Prometheus struct {
	frames      *prometheus.CounterVec
	opLatency   *prometheus.HistogramVec
	ingested    prometheus.Gauge
	lastSkipped prometheus.Gauge
}

// NewPrometheus creates a Prometheus collector and registers its metrics
// with reg. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	p := &Prometheus{
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenedb_frames_total",
			Help: "Frames processed during ingestion by outcome",
		}, []string{"outcome", "reason"}),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scenedb_operation_latency_seconds",
			Help:    "Latency of database operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		ingested: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scenedb_last_ingest_frames",
			Help: "Number of manifest frames seen by the last ingestion run",
		}),
		lastSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scenedb_last_ingest_skipped",
			Help: "Number of frames skipped by the last ingestion run",
		}),
	}

	for _, c := range []prometheus.Collector{p.frames, p.opLatency, p.ingested, p.lastSkipped} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// RecordFrame implements Collector.
func (p *Prometheus) RecordFrame(accepted bool, reason string) {
	outcome := "accepted"
	if !accepted {
		outcome = "skipped"
	}
	p.frames.WithLabelValues(outcome, reason).Inc()
}

// RecordIngest implements Collector.
func (p *Prometheus) RecordIngest(total, skipped int, duration time.Duration) {
	p.ingested.Set(float64(total))
	p.lastSkipped.Set(float64(skipped))
	p.opLatency.WithLabelValues("ingest", "success").Observe(duration.Seconds())
}

// RecordSave implements Collector.
func (p *Prometheus) RecordSave(duration time.Duration, err error) {
	p.opLatency.WithLabelValues("save", status(err)).Observe(duration.Seconds())
}

// RecordLoad implements Collector.
func (p *Prometheus) RecordLoad(duration time.Duration, err error) {
	p.opLatency.WithLabelValues("load", status(err)).Observe(duration.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
