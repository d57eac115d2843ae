package bench

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talon/internal/book"
)

func TestRun_ProducesOneLatencySamplePerCommand(t *testing.T) {
	trades := &CountingSink{}
	b := book.New(book.Config{
		OrderPoolCapacity: 64,
		OrderPoolHardCap:  4096,
		LevelPoolCapacity: 16,
		LevelPoolHardCap:  512,
		Sink:              trades,
	})

	res, err := Run(b, DefaultConfig(), 200, trades)
	require.NoError(t, err)
	assert.Equal(t, 200, res.Commands)
	assert.Len(t, res.Latencies, 200)
	assert.Equal(t, trades.Trades, res.Trades)
	for _, d := range res.Latencies {
		assert.GreaterOrEqual(t, d.Nanoseconds(), int64(0))
	}
}

func TestRun_StopsAndReturnsErrorOnPoolExhaustion(t *testing.T) {
	b := book.New(book.Config{
		OrderPoolCapacity: 1,
		OrderPoolHardCap:  1,
		LevelPoolCapacity: 4,
		LevelPoolHardCap:  4,
	})

	cfg := DefaultConfig()
	cfg.CancelChance = 0 // force every command to be an Add, guaranteeing exhaustion
	res, err := Run(b, cfg, 10, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, book.ErrPoolExhausted)
	assert.Less(t, res.Commands, 10)
}

func TestWriteCSV_HeaderAndRowCount(t *testing.T) {
	b := book.New(book.Config{
		OrderPoolCapacity: 64,
		OrderPoolHardCap:  4096,
		LevelPoolCapacity: 16,
		LevelPoolHardCap:  512,
	})
	res, err := Run(b, DefaultConfig(), 50, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, res.Latencies))

	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\n")
	require.Len(t, lines, 51)
	assert.Equal(t, "Latency_NS", lines[0])
}

func TestDurationSlice_ImplementsGetLen(t *testing.T) {
	d := DurationSlice{1, 2, 3}
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, float64(2), d.Get(1))
}
