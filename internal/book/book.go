package book

import "github.com/rs/zerolog"

// Config controls initial and maximum pool capacities. Zero-value hard caps
// mean unbounded growth (the pool doubles as needed); spec.md §6
// recommends sizing OrderPoolCapacity to the expected peak outstanding
// orders plus matched-and-recycled headroom, and LevelPoolCapacity to the
// expected number of distinct prices.
type Config struct {
	OrderPoolCapacity int
	OrderPoolHardCap  int
	LevelPoolCapacity int
	LevelPoolHardCap  int

	// Sink receives trade executions. NopSink{} is used if nil.
	Sink TradeSink

	// Logger, if non-nil, receives structured diagnostic events (pool
	// growth, exhaustion). Never invoked on the per-trade hot path.
	Logger *zerolog.Logger
}

// Book is the order book facade (C8): it owns both side indexes, the order
// lookup, and both object pools, and exposes the public add_order/
// cancel_order/query operations. The book, its pools, and both indexes are
// owned exclusively by one logical owner at a time (spec.md §5) — Book
// itself holds no mutex; concurrent access must be serialized externally.
type Book struct {
	bids *sideIndex
	asks *sideIndex

	lookup *orderLookup
	orders *orderPool
	levels *levelPool

	sink   TradeSink
	logger *zerolog.Logger
}

// New constructs an empty book per cfg.
func New(cfg Config) *Book {
	sink := cfg.Sink
	if sink == nil {
		sink = NopSink{}
	}

	lookupHint := cfg.OrderPoolCapacity
	return &Book{
		bids:   newSideIndex(true),
		asks:   newSideIndex(false),
		lookup: newOrderLookup(lookupHint),
		orders: newOrderPool(cfg.OrderPoolCapacity, cfg.OrderPoolHardCap),
		levels: newLevelPool(cfg.LevelPoolCapacity, cfg.LevelPoolHardCap),
		sink:   sink,
		logger: cfg.Logger,
	}
}

func (b *Book) sideIndex(s Side) *sideIndex {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

// AddOrder submits a new limit order (spec.md §4.4). It is rejected with
// ErrInvalidQuantity if qty is zero, silently ignored (idempotent) if id is
// already resting, and otherwise matched against the opposite side before
// any residual rests on the book. It returns ErrPoolExhausted, with no
// state change, if a hard-capped pool cannot satisfy the allocation the
// command requires — the engine never partially applies a command: both
// the order slot and the landing level for the aggressor's own side/price
// (known up front, independent of how matching resolves) are secured
// before match() ever runs, so a pool-exhaustion rejection always happens
// before any trade is emitted or any maker order is deallocated.
func (b *Book) AddOrder(id OrderID, side Side, price Price, qty Quantity) error {
	if qty == 0 {
		return ErrInvalidQuantity
	}
	if b.lookup.has(id) {
		return nil
	}

	order, err := b.orders.allocate(id, side, price, qty)
	if err != nil {
		if b.logger != nil {
			b.logger.Warn().Uint64("orderID", uint64(id)).Msg("order pool exhausted")
		}
		return err
	}

	idx := b.sideIndex(side)
	lvl, levelExisted := idx.Find(price)
	if !levelExisted {
		lvl, err = b.levels.allocate(price)
		if err != nil {
			if b.logger != nil {
				b.logger.Warn().Err(err).Int64("price", int64(price)).Msg("level pool exhausted")
			}
			b.orders.deallocate(order)
			return err
		}
	}

	b.match(order)

	if order.isFilled() {
		b.orders.deallocate(order)
		if !levelExisted {
			b.levels.deallocate(lvl)
		}
		return nil
	}

	if !levelExisted {
		idx.Insert(lvl)
	}
	lvl.append(order)
	b.lookup.put(order)
	return nil
}

// CancelOrder removes a resting order from the book (spec.md §4.4). An
// unknown id is silently ignored.
func (b *Book) CancelOrder(id OrderID) {
	order, ok := b.lookup.get(id)
	if !ok {
		return
	}

	lvl := order.level
	side := order.side
	lvl.remove(order)

	if lvl.IsEmpty() {
		b.sideIndex(side).Remove(lvl.price)
		b.levels.deallocate(lvl)
	}

	b.lookup.erase(id)
	b.orders.deallocate(order)
}

// VolumeAt returns the aggregate resting quantity at price on side, or 0 if
// no level exists there.
func (b *Book) VolumeAt(side Side, price Price) Quantity {
	lvl, ok := b.sideIndex(side).Find(price)
	if !ok {
		return 0
	}
	return lvl.Volume()
}

// HasOrder reports whether id is currently resting on the book.
func (b *Book) HasOrder(id OrderID) bool {
	return b.lookup.has(id)
}

// Best returns the best price on side, or (0, false) if that side is empty.
func (b *Book) Best(side Side) (Price, bool) {
	lvl, ok := b.sideIndex(side).Best()
	if !ok {
		return 0, false
	}
	return lvl.price, true
}

// BidLevels returns every bid level, best-first (highest price first).
// Read-only diagnostics; not on the matching hot path.
func (b *Book) BidLevels() []*Level { return b.bids.Levels() }

// AskLevels returns every ask level, best-first (lowest price first).
// Read-only diagnostics; not on the matching hot path.
func (b *Book) AskLevels() []*Level { return b.asks.Levels() }

// PoolStats reports pool accounting for tests and diagnostics (spec.md §8
// invariant 5: allocated + free == capacity at all times).
type PoolStats struct {
	OrdersAllocated int
	OrdersCapacity  int
	LevelsAllocated int
	LevelsCapacity  int
}

func (b *Book) PoolStats() PoolStats {
	return PoolStats{
		OrdersAllocated: b.orders.allocated(),
		OrdersCapacity:  b.orders.capacity,
		LevelsAllocated: b.levels.allocated(),
		LevelsCapacity:  b.levels.capacity,
	}
}
