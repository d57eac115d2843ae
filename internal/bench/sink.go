package bench

import "talon/internal/book"

// CountingSink is a book.TradeSink that tallies executions and traded
// volume, giving cmd/bench something to read trade counters from without
// internal/book exposing execution counts on its own facade.
type CountingSink struct {
	Trades int
	Volume uint64
}

func (c *CountingSink) OnTrade(t book.Trade) {
	c.Trades++
	c.Volume += uint64(t.Quantity)
}
