package events

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsSource is anything that can report emitter metrics.
// Every Emitter satisfies it regardless of payload type.
type MetricsSource interface {
	Metrics() Metrics
}

// Collector exports emitter metrics to Prometheus.
//
// Example:
//
//	emitter := events.New[Order]()
//	prometheus.MustRegister(events.NewCollector("orders", emitter))
type Collector struct {
	source MetricsSource

	queueDepth      *prometheus.Desc
	queueCapacity   *prometheus.Desc
	eventsEmitted   *prometheus.Desc
	listenersCalled *prometheus.Desc
	listenersFailed *prometheus.Desc
	tasksRejected   *prometheus.Desc
	tasksExpired    *prometheus.Desc
	registered      *prometheus.Desc
}

// NewCollector creates a collector for source. name is attached to every
// series as the "emitter" label so several emitters can share a registry.
func NewCollector(name string, source MetricsSource) *Collector {
	labels := prometheus.Labels{"emitter": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName("pacez", "events", metric),
			help, nil, labels,
		)
	}

	return &Collector{
		source:          source,
		queueDepth:      desc("queue_depth", "Async tasks waiting in the worker queue."),
		queueCapacity:   desc("queue_capacity", "Capacity of the async worker queue."),
		eventsEmitted:   desc("emitted_total", "Emissions that reached at least one listener."),
		listenersCalled: desc("listener_calls_total", "Listener executions that succeeded."),
		listenersFailed: desc("listener_failures_total", "Listener executions that errored or panicked."),
		tasksRejected:   desc("tasks_rejected_total", "Async tasks rejected because the queue was full."),
		tasksExpired:    desc("tasks_expired_total", "Async tasks whose context ended first."),
		registered:      desc("listeners", "Currently registered listeners."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.queueDepth
	ch <- c.queueCapacity
	ch <- c.eventsEmitted
	ch <- c.listenersCalled
	ch <- c.listenersFailed
	ch <- c.tasksRejected
	ch <- c.tasksExpired
	ch <- c.registered
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.source.Metrics()

	gauge := func(d *prometheus.Desc, v int64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v))
	}
	counter := func(d *prometheus.Desc, v int64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}

	gauge(c.queueDepth, m.QueueDepth)
	gauge(c.queueCapacity, m.QueueCapacity)
	counter(c.eventsEmitted, m.EventsEmitted)
	counter(c.listenersCalled, m.ListenersCalled)
	counter(c.listenersFailed, m.ListenersFailed)
	counter(c.tasksRejected, m.TasksRejected)
	counter(c.tasksExpired, m.TasksExpired)
	gauge(c.registered, m.RegisteredListeners)
}
