package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderPool_AllocateDeallocateLIFO(t *testing.T) {
	p := newOrderPool(4, 0)

	o1, err := p.allocate(1, Buy, 100, 10)
	require.NoError(t, err)
	o2, err := p.allocate(2, Buy, 100, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, p.allocated())

	p.deallocate(o2)
	// LIFO: the next allocate reuses o2's slot exactly.
	o3, err := p.allocate(3, Sell, 200, 5)
	require.NoError(t, err)
	assert.Same(t, o2, o3)
	assert.Equal(t, OrderID(3), o3.id)
	assert.Equal(t, Side(Sell), o3.side)

	p.deallocate(o1)
	p.deallocate(o3)
	assert.Equal(t, 0, p.allocated())
}

func TestOrderPool_GrowsByDoublingAndKeepsPointersStable(t *testing.T) {
	p := newOrderPool(2, 0)
	first, err := p.allocate(1, Buy, 100, 10)
	require.NoError(t, err)

	// Exhaust initial capacity to force growth.
	_, err = p.allocate(2, Buy, 100, 10)
	require.NoError(t, err)
	_, err = p.allocate(3, Buy, 100, 10)
	require.NoError(t, err)

	// The pointer handed out before growth must remain valid and untouched.
	assert.Equal(t, OrderID(1), first.id)
	assert.True(t, p.capacity >= 3)
}

func TestOrderPool_HardCapExhausted(t *testing.T) {
	p := newOrderPool(1, 1)
	_, err := p.allocate(1, Buy, 100, 10)
	require.NoError(t, err)

	_, err = p.allocate(2, Buy, 100, 10)
	assert.ErrorIs(t, err, ErrPoolExhausted)
}

func TestLevelPool_AllocateDeallocateLIFO(t *testing.T) {
	p := newLevelPool(2, 0)

	l1, err := p.allocate(100)
	require.NoError(t, err)
	p.deallocate(l1)

	l2, err := p.allocate(200)
	require.NoError(t, err)
	assert.Same(t, l1, l2)
	assert.Equal(t, Price(200), l2.price)
	assert.True(t, l2.IsEmpty())
}

func TestLevelPool_HardCapExhausted(t *testing.T) {
	p := newLevelPool(1, 1)
	_, err := p.allocate(100)
	require.NoError(t, err)

	_, err = p.allocate(200)
	assert.ErrorIs(t, err, ErrPoolExhausted)
}
