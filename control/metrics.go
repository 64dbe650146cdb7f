// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus bridge for pool accounting counters. Any api.StatsSource can
// be registered; the collector reads a stats snapshot on every scrape and
// never touches pool internals.

package control

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/memsentry/api"
)

// PoolCollector exposes api.PoolStats as Prometheus metrics.
type PoolCollector struct {
	src api.StatsSource

	constructed *prometheus.Desc
	destroyed   *prometheus.Desc
	inUse       *prometheus.Desc
	pushes      *prometheus.Desc
	pops        *prometheus.Desc
	fullRejects *prometheus.Desc
	emptyMisses *prometheus.Desc
	occupancy   *prometheus.Desc
	capacity    *prometheus.Desc
}

// NewPoolCollector builds a collector for src. The pool label distinguishes
// multiple pools registered on one registry.
func NewPoolCollector(pool string, src api.StatsSource) *PoolCollector {
	labels := prometheus.Labels{"pool": pool}
	return &PoolCollector{
		src: src,
		constructed: prometheus.NewDesc(
			"memsentry_cells_constructed_total",
			"Cells eagerly constructed by the pool.", nil, labels),
		destroyed: prometheus.NewDesc(
			"memsentry_cells_destroyed_total",
			"Cells destroyed at pool teardown.", nil, labels),
		inUse: prometheus.NewDesc(
			"memsentry_cells_in_use",
			"Live pool-owned cells (constructed minus destroyed).", nil, labels),
		pushes: prometheus.NewDesc(
			"memsentry_pushes_total",
			"Successful push operations.", nil, labels),
		pops: prometheus.NewDesc(
			"memsentry_pops_total",
			"Successful pop operations.", nil, labels),
		fullRejects: prometheus.NewDesc(
			"memsentry_push_full_rejects_total",
			"Pushes rejected because the ring was full.", nil, labels),
		emptyMisses: prometheus.NewDesc(
			"memsentry_pop_empty_misses_total",
			"Pops that found the ring empty.", nil, labels),
		occupancy: prometheus.NewDesc(
			"memsentry_ring_occupancy",
			"Slots currently occupied.", nil, labels),
		capacity: prometheus.NewDesc(
			"memsentry_ring_capacity",
			"Usable slot capacity.", nil, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.constructed
	ch <- c.destroyed
	ch <- c.inUse
	ch <- c.pushes
	ch <- c.pops
	ch <- c.fullRejects
	ch <- c.emptyMisses
	ch <- c.occupancy
	ch <- c.capacity
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.constructed, prometheus.CounterValue, float64(s.Constructed))
	ch <- prometheus.MustNewConstMetric(c.destroyed, prometheus.CounterValue, float64(s.Destroyed))
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(s.InUse))
	ch <- prometheus.MustNewConstMetric(c.pushes, prometheus.CounterValue, float64(s.Pushes))
	ch <- prometheus.MustNewConstMetric(c.pops, prometheus.CounterValue, float64(s.Pops))
	ch <- prometheus.MustNewConstMetric(c.fullRejects, prometheus.CounterValue, float64(s.FullRejects))
	ch <- prometheus.MustNewConstMetric(c.emptyMisses, prometheus.CounterValue, float64(s.EmptyMisses))
	ch <- prometheus.MustNewConstMetric(c.occupancy, prometheus.GaugeValue, float64(s.Len))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Cap))
}

var _ prometheus.Collector = (*PoolCollector)(nil)
