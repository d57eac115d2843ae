package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"talon/internal/book"
)

// Result is the outcome of a single Run: one latency sample per command
// actually executed, plus the trade/command counters, enough for cmd/bench
// to print a summary or hand the samples to github.com/grd/stat.
type Result struct {
	Latencies []time.Duration
	Trades    int
	Commands  int
}

// Run drives b with up to orders commands from a fresh Generator and
// returns one latency sample per command executed, timed the way
// original_source/benchmark/LatencyBenchmark.cpp times each Limit() call:
// wall-clock around a single command, nothing batched. trades, if non-nil,
// must be the same CountingSink installed as b's Config.Sink; Run reads it
// after each command to populate Result.Trades.
//
// Run stops at the first command that returns an error (spec.md §6: a
// benchmark run must not silently continue past ErrPoolExhausted) and
// returns that error alongside the partial Result, so cmd/bench can report
// a non-zero exit code.
func Run(b *book.Book, genCfg Config, orders int, trades *CountingSink) (Result, error) {
	gen := NewGenerator(genCfg)
	res := Result{Latencies: make([]time.Duration, 0, orders)}

	for i := 0; i < orders; i++ {
		cmd := gen.Next()
		start := time.Now()

		var err error
		switch cmd.Kind {
		case CommandAdd:
			side := book.Buy
			if cmd.Side == 1 {
				side = book.Sell
			}
			err = b.AddOrder(book.OrderID(cmd.ID), side, book.Price(cmd.Price), book.Quantity(cmd.Quantity))
		case CommandCancel:
			b.CancelOrder(book.OrderID(cmd.ID))
		}

		res.Latencies = append(res.Latencies, time.Since(start))
		res.Commands++
		if trades != nil {
			res.Trades = trades.Trades
		}
		if err != nil {
			return res, fmt.Errorf("command %d (id=%d): %w", i, cmd.ID, err)
		}
	}
	return res, nil
}

// BatchLatencies sums consecutive per-command samples into batchSize-wide
// totals, mirroring lightsgoout-go-quantcup/main.go's per-batch timing
// (there, each batch's wall-clock was measured directly around a
// sub-slice of the replay; here each command is already timed
// individually, so batching is a post-hoc sum rather than a re-measure).
// A short final partial batch, if any, is included as-is.
func BatchLatencies(latencies []time.Duration, batchSize int) []time.Duration {
	if batchSize <= 0 {
		batchSize = 1
	}
	batches := make([]time.Duration, 0, (len(latencies)+batchSize-1)/batchSize)
	for i := 0; i < len(latencies); i += batchSize {
		end := i + batchSize
		if end > len(latencies) {
			end = len(latencies)
		}
		var total time.Duration
		for _, d := range latencies[i:end] {
			total += d
		}
		batches = append(batches, total)
	}
	return batches
}

// DurationSlice adapts a []time.Duration to github.com/grd/stat's Float64Slice
// interface, grounded on lightsgoout-go-quantcup/main.go's identically-named
// helper (Get/Len over nanosecond values).
type DurationSlice []time.Duration

func (d DurationSlice) Get(i int) float64 { return float64(d[i]) }
func (d DurationSlice) Len() int          { return len(d) }

// WriteCSV writes one "Latency_NS" row per sample, the header the downstream
// analysis tooling this bench was distilled from expects unchanged.
func WriteCSV(w io.Writer, latencies []time.Duration) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Latency_NS"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, d := range latencies {
		if err := cw.Write([]string{strconv.FormatInt(d.Nanoseconds(), 10)}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
