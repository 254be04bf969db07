// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package metrics exports stack occupancy to Prometheus.
package metrics

import (
	"maps"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	NAMESPACE = "wordstack"
)

// Stats is the occupancy view of a stack.
type Stats interface {
	Len() int
	Cap() int
	HighWater() int
}

// Collector reports gauges for a set of named stacks on each scrape. Add
// and Remove may be called while a registry is collecting; the stacks
// themselves are read unlocked, as they have a single owner.
type Collector struct {
	depth     *prometheus.Desc
	capacity  *prometheus.Desc
	highWater *prometheus.Desc

	mutex  sync.Mutex
	stacks map[string]Stats
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	labels := []string{"stack"}

	return &Collector{
		depth: prometheus.NewDesc(
			prometheus.BuildFQName(NAMESPACE, "", "depth"),
			"Words currently on the stack.", labels, nil),
		capacity: prometheus.NewDesc(
			prometheus.BuildFQName(NAMESPACE, "", "capacity"),
			"Capacity of the stack in words.", labels, nil),
		highWater: prometheus.NewDesc(
			prometheus.BuildFQName(NAMESPACE, "", "high_water"),
			"Deepest occupancy since the stack was created or cleared.", labels, nil),
		stacks: map[string]Stats{},
	}
}

// Add registers a stack under name, replacing any previous one.
func (c *Collector) Add(name string, stats Stats) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.stacks[name] = stats
}

// Remove forgets a stack.
func (c *Collector) Remove(name string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.stacks, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.depth
	ch <- c.capacity
	ch <- c.highWater
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, name := range slices.Sorted(maps.Keys(c.stacks)) {
		stats := c.stacks[name]
		ch <- prometheus.MustNewConstMetric(c.depth, prometheus.GaugeValue, float64(stats.Len()), name)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(stats.Cap()), name)
		ch <- prometheus.MustNewConstMetric(c.highWater, prometheus.GaugeValue, float64(stats.HighWater()), name)
	}
}
