// Command talon drives internal/book either through the fixed scripted
// scenarios used to validate its matching semantics (`talon demo`) or
// through a synthetic high-volume order stream (`talon bench`), grounded
// on original_source/src/main.cpp (scripted demo replay) and
// original_source/benchmark/LatencyBenchmark.cpp (timed synthetic replay).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grd/stat"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"talon/internal/bench"
	"talon/internal/book"
	"talon/internal/metrics"
	"talon/internal/sink"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "talon",
		Short: "talon drives a single-symbol limit order book",
	}
	root.AddCommand(newDemoCmd(), newBenchCmd())
	return root
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "replay the scripted add/cancel scenarios against a fresh book",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.OutOrStdout()}).With().Timestamp().Logger()

			b := book.New(book.Config{
				OrderPoolCapacity: 256,
				OrderPoolHardCap:  4096,
				LevelPoolCapacity: 64,
				LevelPoolHardCap:  1024,
				Sink:              sink.LogSink{Logger: logger},
				Logger:            &logger,
			})

			for _, step := range demoScript() {
				step(b, &logger)
			}
			return nil
		},
	}
}

// demoScript is a fixed seven-command script run against one book: a full
// cross at 100, a passive bid at 99 that is then cancelled, and two asks at
// 101 swept in FIFO order by a buy at 102 that fills the first ask and part
// of the second. It does not replay spec.md §8's S1-S6 scenarios command for
// command; internal/book's TestScenario_* tests do that.
func demoScript() []func(*book.Book, *zerolog.Logger) {
	log := func(b *book.Book, logger *zerolog.Logger, msg string, id book.OrderID, side book.Side, price book.Price, qty book.Quantity) {
		logger.Info().Str("op", msg).Uint64("id", uint64(id)).Str("side", side.String()).
			Int64("price", int64(price)).Uint32("qty", uint32(qty)).Send()
		if err := b.AddOrder(id, side, price, qty); err != nil {
			logger.Error().Err(err).Msg("add_order failed")
		}
	}
	cancel := func(b *book.Book, logger *zerolog.Logger, id book.OrderID) {
		logger.Info().Str("op", "cancel_order").Uint64("id", uint64(id)).Send()
		b.CancelOrder(id)
	}

	return []func(*book.Book, *zerolog.Logger){
		func(b *book.Book, l *zerolog.Logger) { log(b, l, "add_order", 1, book.Sell, 100, 10) },
		func(b *book.Book, l *zerolog.Logger) { log(b, l, "add_order", 2, book.Buy, 100, 10) },
		func(b *book.Book, l *zerolog.Logger) { log(b, l, "add_order", 3, book.Buy, 99, 5) },
		func(b *book.Book, l *zerolog.Logger) { cancel(b, l, 3) },
		func(b *book.Book, l *zerolog.Logger) { log(b, l, "add_order", 4, book.Sell, 101, 5) },
		func(b *book.Book, l *zerolog.Logger) { log(b, l, "add_order", 5, book.Sell, 101, 5) },
		func(b *book.Book, l *zerolog.Logger) { log(b, l, "add_order", 6, book.Buy, 102, 8) },
	}
}

func newBenchCmd() *cobra.Command {
	var (
		orders       int
		batchSize    int
		seed         int64
		priceBand    int64
		midPrice     int64
		csvPath      string
		metricsAddr  string
		cancelChance float64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "replay a synthetic order stream and report per-command latency",
		RunE: func(cmd *cobra.Command, args []string) error {
			var collector *metrics.Collector
			if metricsAddr != "" {
				reg := prometheus.NewRegistry()
				collector = metrics.New(reg)
				srv := newMetricsServer(metricsAddr, reg)
				go srv.ListenAndServe() //nolint:errcheck // best-effort sidecar; bench still runs if the port is busy
				defer srv.Close()
			}

			trades := &bench.CountingSink{}
			b := book.New(book.Config{
				OrderPoolCapacity: orders / 4,
				OrderPoolHardCap:  orders * 2,
				LevelPoolCapacity: int(priceBand),
				LevelPoolHardCap:  int(priceBand) * 4,
				Sink:              trades,
			})

			genCfg := bench.Config{
				Seed:         seed,
				PriceBand:    priceBand,
				MidPrice:     midPrice,
				MaxQuantity:  1000,
				CancelChance: cancelChance,
			}
			res, runErr := bench.Run(b, genCfg, orders, trades)

			if collector != nil {
				stats := b.PoolStats()
				collector.OrdersTotal.Add(float64(res.Commands))
				collector.TradesTotal.Add(float64(res.Trades))
				collector.TradeVolume.Add(float64(trades.Volume))
				collector.PoolUtilization.WithLabelValues("orders").Set(float64(stats.OrdersAllocated))
				collector.PoolUtilization.WithLabelValues("levels").Set(float64(stats.LevelsAllocated))
				for _, d := range res.Latencies {
					collector.MatchingLatency.Observe(d.Seconds())
				}
				bestBid, hasBid := b.Best(book.Buy)
				setPriceGauge(collector.BestBid, bestBid, hasBid)
				bestAsk, hasAsk := b.Best(book.Sell)
				setPriceGauge(collector.BestAsk, bestAsk, hasAsk)
			}

			batches := bench.BatchLatencies(res.Latencies, batchSize)
			batchStats := bench.DurationSlice(batches)
			mean := stat.Mean(batchStats)
			sd := stat.SdMean(batchStats, mean)
			fmt.Fprintf(cmd.OutOrStdout(), "ran %d commands (%d trades) in %d batches; mean(batch latency) = %.2f ns, sd = %.2f ns\n",
				res.Commands, res.Trades, len(batches), mean, sd)

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("create csv output: %w", err)
				}
				defer f.Close()
				if err := bench.WriteCSV(f, batches); err != nil {
					return err
				}
			}

			return runErr
		},
	}

	cmd.Flags().IntVar(&orders, "orders", 100_000, "number of synthetic commands to replay")
	cmd.Flags().IntVar(&batchSize, "batch", 10, "number of commands grouped per latency-statistics batch")
	cmd.Flags().Int64Var(&seed, "seed", 42, "PRNG seed for the synthetic order generator")
	cmd.Flags().Int64Var(&priceBand, "price-band", 1000, "width of the synthetic price band in ticks")
	cmd.Flags().Int64Var(&midPrice, "mid-price", 10_000, "center of the synthetic price band in ticks")
	cmd.Flags().Float64Var(&cancelChance, "cancel-chance", 0.05, "probability a command cancels a live order")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write one Latency_NS row per batch to this path")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address while running")

	return cmd
}

// setPriceGauge reports price in ticks, or -1 if the side is empty, per
// internal/metrics.Collector's BestBid/BestAsk documentation.
func setPriceGauge(g prometheus.Gauge, price book.Price, ok bool) {
	if !ok {
		g.Set(-1)
		return
	}
	g.Set(float64(price))
}
