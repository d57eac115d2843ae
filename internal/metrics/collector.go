// Package metrics instruments the matching engine for operational
// observability. It is not part of the matching-engine core (spec.md §1
// scopes the core to the matching pipeline and its supporting data
// structures); it is ambient enrichment grounded on
// VictorVVedtion-perp-dex/metrics/prometheus.go, trimmed down to the
// handful of gauges a single-symbol book can actually populate.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus instruments talon/cmd/bench populates
// once a bench run has finished driving the engine.
type Collector struct {
	MatchingLatency prometheus.Histogram
	OrdersTotal     prometheus.Counter
	TradesTotal     prometheus.Counter
	TradeVolume     prometheus.Counter
	PoolUtilization *prometheus.GaugeVec
	BestBid         prometheus.Gauge
	BestAsk         prometheus.Gauge
}

// New registers and returns a fresh Collector against reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		MatchingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "talon",
			Subsystem: "matching",
			Name:      "command_latency_seconds",
			Help:      "Latency of a single add_order or cancel_order command.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 2, 20),
		}),
		OrdersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "talon",
			Subsystem: "book",
			Name:      "orders_submitted_total",
			Help:      "Total add_order and cancel_order commands submitted.",
		}),
		TradesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "talon",
			Subsystem: "book",
			Name:      "trades_total",
			Help:      "Total executions reported to the trade sink.",
		}),
		TradeVolume: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "talon",
			Subsystem: "book",
			Name:      "trade_volume_total",
			Help:      "Total traded quantity across all executions.",
		}),
		PoolUtilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "talon",
			Subsystem: "book",
			Name:      "pool_allocated",
			Help:      "Currently allocated slots per pool.",
		}, []string{"pool"}),
		BestBid: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "talon",
			Subsystem: "book",
			Name:      "best_bid_ticks",
			Help:      "Best bid price in ticks, or -1 if the bid side is empty.",
		}),
		BestAsk: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "talon",
			Subsystem: "book",
			Name:      "best_ask_ticks",
			Help:      "Best ask price in ticks, or -1 if the ask side is empty.",
		}),
	}

	reg.MustRegister(
		c.MatchingLatency,
		c.OrdersTotal,
		c.TradesTotal,
		c.TradeVolume,
		c.PoolUtilization,
		c.BestBid,
		c.BestAsk,
	)
	return c
}

// Handler returns the HTTP handler promhttp should serve metrics from.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
