package scenedb

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/scenedb/metric"
)

// MetricsCollector defines an interface for collecting operational metrics.
type MetricsCollector = metric.Collector

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector = metric.Noop

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector = metric.Basic

// PrometheusCollector exports metrics to Prometheus.
type PrometheusCollector = metric.Prometheus

// NewPrometheusCollector registers the scenedb metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	return metric.NewPrometheus(reg)
}
