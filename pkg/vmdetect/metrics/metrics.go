// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

// Package metrics exposes a prometheus.Collector over an Engine's last
// query results, mirroring virtcontainers/sandbox_metrics.go's gauge set
// but scoped to vmdetect's own score/percentage/per-probe outputs rather
// than hypervisor process statistics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kata-containers/vmdetect"
)

const namespace = "vmdetect"

// Collector samples an Engine on every Prometheus scrape. It is safe to
// register with any prometheus.Registerer; vmdetect never registers it on
// the caller's behalf, opt-in per SPEC_FULL.md's ambient-metrics note.
type Collector struct {
	engine *vmdetect.Engine
	opts   []vmdetect.Option

	mu       sync.Mutex
	score    *prometheus.Desc
	detected *prometheus.Desc
	tripped  *prometheus.Desc
}

// NewCollector builds a Collector that re-runs engine.DetectedEnums/
// Percentage with opts on every Collect call.
func NewCollector(engine *vmdetect.Engine, opts ...vmdetect.Option) *Collector {
	return &Collector{
		engine: engine,
		opts:   opts,
		score: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "percentage"),
			"Last sampled percentage() score, 0-100.",
			nil, nil,
		),
		detected: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "detected_count"),
			"Number of techniques that returned true on the last sample.",
			nil, nil,
		),
		tripped: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "probe_tripped"),
			"1 if the named technique returned true on the last sample.",
			[]string{"probe"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.score
	ch <- c.detected
	ch <- c.tripped
}

// Collect implements prometheus.Collector. An option error leaves the
// affected metrics out of the scrape rather than failing it, matching
// vmdetect's own "never panic past the Engine boundary" stance.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pct, err := c.engine.Percentage(c.opts...)
	if err == nil {
		ch <- prometheus.MustNewConstMetric(c.score, prometheus.GaugeValue, float64(pct))
	}

	ids, err := c.engine.DetectedEnums(c.opts...)
	if err != nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.detected, prometheus.GaugeValue, float64(len(ids)))

	for _, id := range ids {
		ch <- prometheus.MustNewConstMetric(c.tripped, prometheus.GaugeValue, 1, c.engine.NameOf(id))
	}
}
