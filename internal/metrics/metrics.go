// Package metrics exposes Prometheus collectors for eatnsplit.
package metrics

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/eatnsplit/internal/app"
)

const namespace = "eatnsplit"

// Metrics holds the collectors and the registry they are registered with.
type Metrics struct {
	registry *prometheus.Registry

	FriendsAdded    prometheus.Counter
	BillsSplit      *prometheus.CounterVec
	Selections      prometheus.Counter
	SettlementDelta prometheus.Histogram
	RequestDuration *prometheus.HistogramVec
}

// New creates Metrics with a private registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FriendsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "friends_added_total",
			Help:      "Number of friends added to the registry.",
		}),
		BillsSplit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_split_total",
			Help:      "Number of bills split, by who paid.",
		}, []string{"payer"}),
		Selections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "friend_selections_total",
			Help:      "Number of times a friend was selected.",
		}),
		SettlementDelta: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_delta",
			Help:      "Signed amount applied to a friend's balance per split.",
			Buckets:   []float64{-500, -100, -50, -10, 0, 10, 50, 100, 500},
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.FriendsAdded,
		m.BillsSplit,
		m.Selections,
		m.SettlementDelta,
		m.RequestDuration,
	)
	return m
}

// Observe records a state transition.
func (m *Metrics) Observe(c app.Change) {
	switch {
	case c.Entity == app.EntityFriend && c.Action == app.ActionAdded:
		m.FriendsAdded.Inc()
	case c.Entity == app.EntitySelection && c.Action == app.ActionSelected:
		m.Selections.Inc()
	case c.Entity == app.EntityBill && c.Action == app.ActionSplit:
		m.BillsSplit.WithLabelValues(string(c.Payer)).Inc()
		m.SettlementDelta.Observe(c.Delta)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records the latency of every HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.RequestDuration.
			WithLabelValues(r.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack passes through to the underlying writer for websocket upgrades.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	r.status = http.StatusSwitchingProtocols
	return http.NewResponseController(r.ResponseWriter).Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
