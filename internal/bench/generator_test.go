package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_DeterministicForSameSeed(t *testing.T) {
	cfg := DefaultConfig()
	a := NewGenerator(cfg)
	b := NewGenerator(cfg)

	for i := 0; i < 500; i++ {
		ca := a.Next()
		cb := b.Next()
		assert.Equal(t, ca, cb)
	}
}

func TestGenerator_NoCancelsBeforeAnyLiveOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CancelChance = 1.0
	g := NewGenerator(cfg)

	first := g.Next()
	assert.Equal(t, CommandAdd, first.Kind)
}

func TestGenerator_CancelsReferenceLiveIDs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CancelChance = 0.9
	g := NewGenerator(cfg)

	live := map[uint64]bool{}
	for i := 0; i < 1000; i++ {
		cmd := g.Next()
		switch cmd.Kind {
		case CommandAdd:
			live[cmd.ID] = true
		case CommandCancel:
			assert.True(t, live[cmd.ID], "cancel referenced an id never added")
			delete(live, cmd.ID)
		}
	}
}

func TestGenerator_PriceStaysWithinBand(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGenerator(cfg)

	lo := cfg.MidPrice - cfg.PriceBand/2
	hi := cfg.MidPrice + cfg.PriceBand/2
	for i := 0; i < 2000; i++ {
		cmd := g.Next()
		if cmd.Kind != CommandAdd {
			continue
		}
		assert.GreaterOrEqual(t, cmd.Price, lo)
		assert.Less(t, cmd.Price, hi)
	}
}
