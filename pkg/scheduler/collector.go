package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "xdom"

type metricCollector struct {
	scheduler *Scheduler

	boundObjects      *prometheus.Desc
	lightBoundObjects *prometheus.Desc
	recurringUpdates  *prometheus.Desc
	shadowNodes       *prometheus.Desc
	frames            *prometheus.Desc
	fps               *prometheus.Desc
}

func (c *metricCollector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

func (c *metricCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.scheduler.Stats()

	ch <- prometheus.MustNewConstMetric(
		c.boundObjects,
		prometheus.GaugeValue,
		float64(stats.BoundObjects),
	)

	ch <- prometheus.MustNewConstMetric(
		c.lightBoundObjects,
		prometheus.GaugeValue,
		float64(stats.LightBoundObjects),
	)

	ch <- prometheus.MustNewConstMetric(
		c.recurringUpdates,
		prometheus.GaugeValue,
		float64(stats.RecurringUpdates),
	)

	ch <- prometheus.MustNewConstMetric(
		c.shadowNodes,
		prometheus.GaugeValue,
		float64(stats.ShadowNodes),
	)

	ch <- prometheus.MustNewConstMetric(
		c.frames,
		prometheus.CounterValue,
		float64(stats.Frames),
	)

	ch <- prometheus.MustNewConstMetric(
		c.fps,
		prometheus.GaugeValue,
		float64(stats.FPS),
	)
}

// NewCollector exposes the statistics of s as Prometheus metrics.
func NewCollector(s *Scheduler) prometheus.Collector {
	return &metricCollector{
		scheduler: s,

		boundObjects: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "bound_objects", "current"),
			"Hosts with push bindings",
			nil,
			nil,
		),
		lightBoundObjects: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "light_bound_objects", "current"),
			"Hosts with light bindings",
			nil,
			nil,
		),
		recurringUpdates: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "recurring_updates", "current"),
			"Registered recurring updates",
			nil,
			nil,
		),
		shadowNodes: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "shadow_nodes", "current"),
			"Shadow tree nodes including the root",
			nil,
			nil,
		),
		frames: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "frames", "total"),
			"Ticks run",
			nil,
			nil,
		),
		fps: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "fps", "current"),
			"Ticks per second over the last stats window",
			nil,
			nil,
		),
	}
}
