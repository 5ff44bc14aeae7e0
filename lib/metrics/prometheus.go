// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder implements barrier.Recorder using Prometheus
// metrics.
type PrometheusRecorder struct {
	registry     *prometheus.Registry
	pollsTotal   *prometheus.CounterVec
	waitsTotal   *prometheus.CounterVec
	waitDuration prometheus.Histogram
}

// NewPrometheusRecorder creates a recorder with its own registry. The
// labels are attached to every metric as constant labels, typically
// the build id and job number.
func NewPrometheusRecorder(labels prometheus.Labels) *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &PrometheusRecorder{
		registry: registry,
		pollsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "travis_after_all_polls_total",
				Help:        "Build matrix polls by outcome (running, finished, error)",
				ConstLabels: labels,
			},
			[]string{"outcome"},
		),
		waitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "travis_after_all_waits_total",
				Help:        "Completed leader waits by result kind",
				ConstLabels: labels,
			},
			[]string{"outcome"},
		),
		waitDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "travis_after_all_wait_duration_seconds",
				Help:        "Time the leader spent waiting for peer jobs",
				ConstLabels: labels,
				Buckets:     prometheus.ExponentialBuckets(5, 2, 10),
			},
		),
	}
}

// ObservePoll counts one poll.
func (p *PrometheusRecorder) ObservePoll(outcome string) {
	p.pollsTotal.WithLabelValues(outcome).Inc()
}

// ObserveWait counts one finished wait and records how long it took.
func (p *PrometheusRecorder) ObserveWait(outcome string, duration time.Duration) {
	p.waitsTotal.WithLabelValues(outcome).Inc()
	p.waitDuration.Observe(duration.Seconds())
}

// Gatherer exposes the recorder's registry.
func (p *PrometheusRecorder) Gatherer() prometheus.Gatherer {
	return p.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text
// exposition format. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("metrics: writing %s: %w", path, err)
	}
	return nil
}
