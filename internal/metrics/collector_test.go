package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersAllInstruments(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.OrdersTotal.Inc()
	c.TradesTotal.Inc()
	c.TradeVolume.Add(5)
	c.PoolUtilization.WithLabelValues("orders").Set(12)
	c.BestBid.Set(101)
	c.BestAsk.Set(102)
	c.MatchingLatency.Observe(0.000001)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"talon_matching_command_latency_seconds",
		"talon_book_orders_submitted_total",
		"talon_book_trades_total",
		"talon_book_trade_volume_total",
		"talon_book_pool_allocated",
		"talon_book_best_bid_ticks",
		"talon_book_best_ask_ticks",
	} {
		require.True(t, names[want], "missing metric family %s", want)
	}
}

func TestPoolUtilization_TracksPerPoolLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.PoolUtilization.WithLabelValues("orders").Set(7)
	c.PoolUtilization.WithLabelValues("levels").Set(3)

	var m dto.Metric
	require.NoError(t, c.PoolUtilization.WithLabelValues("orders").Write(&m))
	require.Equal(t, float64(7), m.GetGauge().GetValue())
}
