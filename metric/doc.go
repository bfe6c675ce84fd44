// Package metric provides the collectors that scene-database operations
// report into: a no-op collector, an in-memory collector built on atomics,
// and a Prometheus-backed collector.
package metric
