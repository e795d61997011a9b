package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "chicken_vending"

// Purchase outcomes recorded by PurchasesTotal.
const (
	PurchaseOutcomeSuccess             = "success"
	PurchaseOutcomeInsufficientStock   = "insufficient_stock"
	PurchaseOutcomeInsufficientPayment = "insufficient_payment"
	PurchaseOutcomeNotFound            = "not_found"
	PurchaseOutcomeInvalid             = "invalid"
	PurchaseOutcomeError               = "error"
)

type Metrics struct {
	Registry *prometheus.Registry

	InflightRequests prometheus.Gauge
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec

	PurchasesTotal *prometheus.CounterVec
	KilogramsSold  prometheus.Counter
	RevenueTotal   prometheus.Counter
}

// New creates the HTTP metrics on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		InflightRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Number of HTTP requests currently being served.",
		}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		PurchasesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "Purchase attempts by outcome.",
		}, []string{"outcome"}),
		KilogramsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kilograms_sold_total",
			Help:      "Kilograms dispensed by successful purchases.",
		}),
		RevenueTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_total",
			Help:      "Sum of total_cost over successful purchases.",
		}),
	}

	reg.MustRegister(
		m.InflightRequests,
		m.RequestsTotal,
		m.RequestDuration,
		m.PurchasesTotal,
		m.KilogramsSold,
		m.RevenueTotal,
	)

	return m
}
