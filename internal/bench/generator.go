// Package bench drives internal/book with synthetic order flow and reports
// per-command latency, grounded on original_source/benchmark/LatencyBenchmark.cpp
// (timestamp-per-command replay loop) and lightsgoout-go-quantcup's
// GenerateRandomOrder (rand.Intn-based synthetic feed), generalized from a
// one-shot Postgres-backed data set to an in-process streaming generator
// since talon has no persistence layer (spec.md §1 Non-goals).
package bench

import "math/rand"

// Config bounds a synthetic order stream.
type Config struct {
	Seed         int64
	PriceBand    int64 // ticks spread around the mid price
	MidPrice     int64
	MaxQuantity  uint32
	CancelChance float64 // probability a later command cancels a still-live id
}

// DefaultConfig mirrors lightsgoout-go-quantcup's cancelChance = 0.05 and a
// 1000-wide price band around an arbitrary mid.
func DefaultConfig() Config {
	return Config{
		Seed:         42,
		PriceBand:    1000,
		MidPrice:     10_000,
		MaxQuantity:  1000,
		CancelChance: 0.05,
	}
}

// CommandKind distinguishes the two book operations a generator can emit.
type CommandKind int8

const (
	CommandAdd CommandKind = iota
	CommandCancel
)

// Command is one unit of synthetic order flow, shaped to feed directly into
// internal/book.Book's AddOrder/CancelOrder.
type Command struct {
	Kind     CommandKind
	ID       uint64
	Side     int8 // 0 = Buy, 1 = Sell; Run maps it onto book.Buy/book.Sell
	Price    int64
	Quantity uint32
}

// Generator produces a bounded, reproducible stream of add/cancel commands.
// It tracks live ids so cancels always reference an order that is plausibly
// still resting, mirroring how a real client session interleaves the two.
type Generator struct {
	cfg     Config
	rng     *rand.Rand
	nextID  uint64
	liveIDs []uint64
}

// NewGenerator builds a Generator seeded per cfg.Seed, so two Generators
// built from the same Config produce byte-identical command streams.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Next returns the next synthetic command. A cancel is only possible once
// at least one Add has fired and left a live id to cancel.
func (g *Generator) Next() Command {
	if len(g.liveIDs) > 0 && g.rng.Float64() < g.cfg.CancelChance {
		idx := g.rng.Intn(len(g.liveIDs))
		id := g.liveIDs[idx]
		g.liveIDs[idx] = g.liveIDs[len(g.liveIDs)-1]
		g.liveIDs = g.liveIDs[:len(g.liveIDs)-1]
		return Command{Kind: CommandCancel, ID: id}
	}

	g.nextID++
	id := g.nextID
	side := int8(g.rng.Intn(2))
	offset := int64(g.rng.Intn(int(g.cfg.PriceBand))) - g.cfg.PriceBand/2
	price := g.cfg.MidPrice + offset
	qty := uint32(g.rng.Intn(int(g.cfg.MaxQuantity))) + 1

	g.liveIDs = append(g.liveIDs, id)
	return Command{Kind: CommandAdd, ID: id, Side: side, Price: price, Quantity: qty}
}
