package book

import "github.com/tidwall/btree"

// sideIndex is a price-sorted container of non-empty levels for one side of
// the book (C5): descending for bids, ascending for asks, always exposing
// the best level in O(1). It is grounded on
// saiputravu-Exchange/internal/engine/orderbook.go's use of
// github.com/tidwall/btree.BTreeG[*PriceLevel] as the ordered price map —
// one of the two shapes spec.md §4.5 calls out ("a balanced ordered map
// keyed by price — simplest and used by the canonical source").
//
// Invariants (spec.md §3): strictly monotone prices, no duplicates, no
// empty levels present.
type sideIndex struct {
	tree *btree.BTreeG[*Level]
	best *Level // cached front-of-index pointer; nil iff the index is empty
}

func newSideIndex(desc bool) *sideIndex {
	var less func(a, b *Level) bool
	if desc {
		less = func(a, b *Level) bool { return a.price > b.price }
	} else {
		less = func(a, b *Level) bool { return a.price < b.price }
	}
	return &sideIndex{tree: btree.NewBTreeG(less)}
}

// Best returns the best (position-0) level for this side, or (nil, false)
// if the side is empty. O(1): the cache is refreshed on every insert/erase
// that touches the front of the index (spec.md §4.5).
func (idx *sideIndex) Best() (*Level, bool) {
	if idx.best == nil {
		return nil, false
	}
	return idx.best, true
}

// Find reports whether a level exists at price, and returns it. O(log n).
func (idx *sideIndex) Find(price Price) (*Level, bool) {
	probe := &Level{price: price}
	return idx.tree.Get(probe)
}

// Insert adds an already-allocated level to the index. The caller (book.go)
// is responsible for allocating it from the level pool, and appends the
// resting order to it right after inserting it.
func (idx *sideIndex) Insert(lvl *Level) {
	idx.tree.Set(lvl)
	idx.refreshBest()
}

// Remove erases the level at price from the index and returns it (so the
// caller can return it to the level pool). O(log n).
func (idx *sideIndex) Remove(price Price) (*Level, bool) {
	probe := &Level{price: price}
	removed, ok := idx.tree.Delete(probe)
	if !ok {
		return nil, false
	}
	idx.refreshBest()
	return removed, true
}

// Len returns the number of active (non-empty) levels on this side.
func (idx *sideIndex) Len() int {
	return idx.tree.Len()
}

// refreshBest resynchronizes the cached best-of-side pointer with the
// front of the underlying tree. The cache never outlives the level it
// references: once the tree is empty, best is cleared to nil.
func (idx *sideIndex) refreshBest() {
	lvl, ok := idx.tree.Min()
	if !ok {
		idx.best = nil
		return
	}
	idx.best = lvl
}

// Levels returns every level on this side, ordered best-first. Intended for
// read-only inspection (tests, diagnostics) — not on the matching hot path.
func (idx *sideIndex) Levels() []*Level {
	out := make([]*Level, 0, idx.tree.Len())
	idx.tree.Scan(func(lvl *Level) bool {
		out = append(out, lvl)
		return true
	})
	return out
}
