package sink

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	tomb "gopkg.in/tomb.v2"

	"talon/internal/book"
)

// Envelope wraps a book.Trade with a correlation id, stamped at drain time
// so downstream consumers (a CSV writer, a log line, a future wire
// protocol) can correlate both legs of the same execution across an
// audit trail — a supplemental feature echoing original_source's Deal
// record, expressed the teacher's way (a generated id, not a database
// sequence) since persistence itself stays out of scope (spec.md §1).
type Envelope struct {
	CorrelationID string
	book.Trade
}

const drainBatchSize = 256

// RingBufferSink is a book.TradeSink backed by a lock-free SPSC ring buffer
// (ring[book.Trade]) and a gopkg.in/tomb.v2-supervised consumer goroutine,
// grounded on saiputravu-Exchange/internal/worker.go's WorkerPool (tomb
// lifecycle) and ejyy-femto_go/message_bus.go's StartOutputDistributor
// (drain-loop-to-callback shape). OnTrade is the "one logical owner" side
// of spec.md §5's single-consumer model: it only ever runs on the engine's
// thread and never blocks.
type RingBufferSink struct {
	buf *ring[book.Trade]
	t   *tomb.Tomb
}

// NewRingBufferSink constructs a sink and starts its consumer goroutine
// under ctx. consume is invoked once per trade, in drain order, from the
// consumer goroutine — never from OnTrade's caller.
func NewRingBufferSink(ctx context.Context, consume func(Envelope)) *RingBufferSink {
	s := &RingBufferSink{buf: newRing[book.Trade]()}
	s.t, _ = tomb.WithContext(ctx)
	s.t.Go(func() error {
		return s.run(consume)
	})
	return s
}

// OnTrade implements book.TradeSink. Never blocks: push() overwrites the
// oldest undrained entry rather than waiting for the consumer.
func (s *RingBufferSink) OnTrade(t book.Trade) {
	s.buf.push(t)
}

// Stop signals the consumer goroutine to exit and waits for it.
func (s *RingBufferSink) Stop() error {
	s.t.Kill(nil)
	return s.t.Wait()
}

func (s *RingBufferSink) run(consume func(Envelope)) error {
	batch := make([]book.Trade, drainBatchSize)
	for {
		select {
		case <-s.t.Dying():
			return nil
		default:
		}

		n := s.buf.drain(batch)
		for i := 0; i < n; i++ {
			consume(Envelope{CorrelationID: uuid.NewString(), Trade: batch[i]})
		}
		if n == 0 {
			runtime.Gosched()
		}
	}
}

// LogSink writes one structured debug event per trade via zerolog,
// grounded on saiputravu-Exchange/internal/net/server.go's
// log.Info().Str(...).Msg(...) call style. It is meant for the `talon demo`
// command, not for throughput benchmarking.
type LogSink struct {
	Logger zerolog.Logger
}

func (s LogSink) OnTrade(t book.Trade) {
	s.Logger.Debug().
		Int64("price", int64(t.Price)).
		Uint32("quantity", uint32(t.Quantity)).
		Str("aggressor", t.Aggressor.String()).
		Uint64("makerOrderID", uint64(t.MakerOrderID)).
		Uint64("takerOrderID", uint64(t.TakerOrderID)).
		Msg("trade executed")
}
