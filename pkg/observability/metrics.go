package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Query and command bus metrics
	BusOperations *prometheus.CounterVec
	BusDuration   *prometheus.HistogramVec

	// Business metrics
	TweetsPosted  prometheus.Counter
	TweetsDeleted prometheus.Counter

	// Upstream metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	CircuitState     *prometheus.GaugeVec
}

// NewCollector creates a new metrics collector with the given namespace.
// Each collector owns its registry, so tests can build as many as they need.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		BusOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bus_operations_total",
				Help:      "Total number of dispatched queries and commands",
			},
			[]string{"kind", "name", "status"},
		),
		BusDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "bus_operation_duration_seconds",
				Help:      "Query and command handling duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind", "name"},
		),
		TweetsPosted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tweets_posted_total",
				Help:      "Total number of tweets posted",
			},
		),
		TweetsDeleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tweets_deleted_total",
				Help:      "Total number of tweets deleted",
			},
		),
		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream movie API requests",
			},
			[]string{"endpoint", "status"},
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream movie API request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		CircuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "upstream_circuit_state",
				Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.BusOperations,
		c.BusDuration,
		c.TweetsPosted,
		c.TweetsDeleted,
		c.UpstreamRequests,
		c.UpstreamDuration,
		c.CircuitState,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// ObserveHTTP records one served HTTP request
func (c *Collector) ObserveHTTP(method, route string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveQuery records one dispatched query
func (c *Collector) ObserveQuery(name string, duration time.Duration, err error) {
	c.observeBus("query", name, duration, err)
}

// ObserveCommand records one dispatched command
func (c *Collector) ObserveCommand(name string, duration time.Duration, err error) {
	c.observeBus("command", name, duration, err)
}

func (c *Collector) observeBus(kind, name string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.BusOperations.WithLabelValues(kind, name, status).Inc()
	c.BusDuration.WithLabelValues(kind, name).Observe(duration.Seconds())
}

// TweetPosted increments the posted tweets counter
func (c *Collector) TweetPosted() { c.TweetsPosted.Inc() }

// TweetDeleted increments the deleted tweets counter
func (c *Collector) TweetDeleted() { c.TweetsDeleted.Inc() }

// ObserveUpstream records one upstream call
func (c *Collector) ObserveUpstream(endpoint, status string, duration time.Duration) {
	c.UpstreamRequests.WithLabelValues(endpoint, status).Inc()
	c.UpstreamDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// SetCircuitState publishes the current state of a circuit breaker
func (c *Collector) SetCircuitState(name string, state float64) {
	c.CircuitState.WithLabelValues(name).Set(state)
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
