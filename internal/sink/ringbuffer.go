// Package sink provides internal/book.TradeSink implementations that keep
// trade reporting off the matching hot path, per spec.md §5 ("trade
// emission must be non-blocking, e.g., enqueue into a lock-free buffer
// owned by the sink").
package sink

import "sync/atomic"

// ringSize must be a power of two so index wrapping is a single mask.
// Grounded on ejyy-femto_go/ringbuffer.go's RingBuffer[T], generalized from
// InputCommand/OutputEvent to book.Trade.
const (
	ringSize     = 1 << 16
	ringMask     = ringSize - 1
	cacheLineLen = 64
)

// ring is a lock-free single-producer/single-consumer circular buffer. Push
// is called from the matching loop (one producer); Drain is called from the
// sink's consumer goroutine (one consumer). Concurrent Push calls, or
// concurrent Drain calls, are unsafe — matching spec.md §5's "single
// consumer thread reading from an SPSC/MPSC queue" model.
type ring[T any] struct {
	buffer []T

	// Padding keeps writePos and readPos on separate cache lines so the
	// producer and consumer don't false-share a line.
	_        [cacheLineLen - 8]byte
	writePos uint64
	_        [cacheLineLen - 8]byte
	readPos  uint64
	_        [cacheLineLen - 8]byte
}

func newRing[T any]() *ring[T] {
	return &ring[T]{buffer: make([]T, ringSize)}
}

// push adds v without blocking. If the ring is full (the consumer has
// fallen ringSize entries behind), the oldest unread entry is overwritten —
// a bounded sink must never be allowed to apply backpressure to the
// matching engine.
func (r *ring[T]) push(v T) {
	write := atomic.LoadUint64(&r.writePos)
	r.buffer[write&ringMask] = v
	atomic.StoreUint64(&r.writePos, write+1)

	read := atomic.LoadUint64(&r.readPos)
	if write-read >= ringSize {
		atomic.StoreUint64(&r.readPos, write-ringSize+1)
	}
}

// drain copies up to len(out) pending entries into out and returns how many
// were copied.
func (r *ring[T]) drain(out []T) int {
	write := atomic.LoadUint64(&r.writePos)
	read := atomic.LoadUint64(&r.readPos)

	available := write - read
	if available == 0 {
		return 0
	}
	count := available
	if uint64(len(out)) < count {
		count = uint64(len(out))
	}
	for i := uint64(0); i < count; i++ {
		out[i] = r.buffer[(read+i)&ringMask]
	}
	atomic.StoreUint64(&r.readPos, read+count)
	return int(count)
}
