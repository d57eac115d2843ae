package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSideIndex_BidsDescendingBestIsHighest(t *testing.T) {
	idx := newSideIndex(true)

	idx.Insert(&Level{price: 99})
	idx.Insert(&Level{price: 101})
	idx.Insert(&Level{price: 100})

	best, ok := idx.Best()
	require.True(t, ok)
	assert.Equal(t, Price(101), best.price)

	got := idx.Levels()
	require.Len(t, got, 3)
	assert.Equal(t, []Price{101, 100, 99}, []Price{got[0].price, got[1].price, got[2].price})
}

func TestSideIndex_AsksAscendingBestIsLowest(t *testing.T) {
	idx := newSideIndex(false)

	idx.Insert(&Level{price: 102})
	idx.Insert(&Level{price: 100})
	idx.Insert(&Level{price: 101})

	best, ok := idx.Best()
	require.True(t, ok)
	assert.Equal(t, Price(100), best.price)
}

func TestSideIndex_RemoveClearsCachedBestWhenEmptied(t *testing.T) {
	idx := newSideIndex(false)
	idx.Insert(&Level{price: 100})

	removed, ok := idx.Remove(100)
	require.True(t, ok)
	assert.Equal(t, Price(100), removed.price)

	_, ok = idx.Best()
	assert.False(t, ok)
	assert.Equal(t, 0, idx.Len())
}

func TestSideIndex_FindMissingPrice(t *testing.T) {
	idx := newSideIndex(true)
	_, ok := idx.Find(123)
	assert.False(t, ok)
}
