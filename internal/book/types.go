// Package book implements a single-symbol, in-memory limit order book with
// price-time priority matching. It is the core of talon: the per-price
// level, the two sorted side indexes, the order lookup, the fixed-capacity
// object pools, and the matching algorithm that ties them together.
package book

import "errors"

// Side identifies which side of the book an order rests on.
type Side int8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "Buy"
	}
	return "Sell"
}

func (s Side) opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Price is a fixed-precision integer number of ticks. The canonical source
// used a 64-bit float for price, which breaks exact tick comparison and
// equality-keyed lookup; ticks are the corrected representation.
type Price int64

// Quantity is the resting or traded size of an order.
type Quantity uint32

// OrderID uniquely identifies a live resting order.
type OrderID uint64

// Domain errors. DuplicateOrderId and UnknownOrderId are NOT part of this
// taxonomy: both are silent no-ops per the command contracts, not errors.
var (
	ErrInvalidQuantity = errors.New("book: quantity must be non-zero")
	ErrPoolExhausted   = errors.New("book: pool exhausted")
)

// Trade is emitted once per execution, in execution order, synchronously
// from the matching loop.
type Trade struct {
	Price        Price
	Quantity     Quantity
	Aggressor    Side
	MakerOrderID OrderID
	TakerOrderID OrderID
}

// TradeSink receives trade executions. Implementations must not block and
// must not call back into the Book that invoked them.
type TradeSink interface {
	OnTrade(Trade)
}

// NopSink discards every trade. It is the default sink used for throughput
// benchmarking, where trade reporting would otherwise dominate the profile.
type NopSink struct{}

func (NopSink) OnTrade(Trade) {}
