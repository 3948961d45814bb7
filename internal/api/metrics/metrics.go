// Package metrics defines the custom Prometheus metrics for the pizza
// service. It is the single source of truth for metric names, labels, and
// help strings. HTTP-level request metrics come from the echoprometheus
// middleware; everything here is a business event.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pizza"

// AuthAttemptsTotal counts registration/login outcomes.
// Label:
//   - outcome: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ActiveSessions tracks sessions opened minus explicit logouts. It is an
// approximation: a login that replaces an existing session and a token that
// expires both leave the gauge one high.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of logged-in sessions.",
	},
)

// PizzasSoldTotal counts order fulfillment attempts.
// Label:
//   - outcome: "success" or "failure"
var PizzasSoldTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pizzas_sold_total",
		Help:      "Total number of pizza orders submitted to the factory, by outcome.",
	},
	[]string{"outcome"},
)

// RevenueTotal accumulates the value of successfully fulfilled orders.
var RevenueTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revenue_total",
		Help:      "Cumulative revenue from fulfilled orders, in bitcoin.",
	},
)

// FulfillmentDuration measures the end-to-end factory round trip.
var FulfillmentDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_fulfillment_duration_seconds",
		Help:      "Duration of the synchronous factory fulfillment call.",
		Buckets:   prometheus.DefBuckets,
	},
)

// Recorder adapts the Prometheus metrics to the MetricsSink the core services
// consume, so services depend on an injected collaborator rather than the
// default registry.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (Recorder) AuthAttempt(success bool) {
	if success {
		AuthAttemptsTotal.WithLabelValues("success").Inc()
		ActiveSessions.Inc()
		return
	}
	AuthAttemptsTotal.WithLabelValues("failure").Inc()
}

func (Recorder) Logout() {
	ActiveSessions.Dec()
}

func (Recorder) PizzaPurchase(success bool, latency time.Duration, revenue float64) {
	FulfillmentDuration.Observe(latency.Seconds())
	if success {
		PizzasSoldTotal.WithLabelValues("success").Inc()
		RevenueTotal.Add(revenue)
		return
	}
	PizzasSoldTotal.WithLabelValues("failure").Inc()
}
