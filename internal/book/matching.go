package book

// match consumes liquidity from the side opposite aggressor while a
// crossing level exists and aggressor still has quantity remaining (C7). It
// is the direct Go expression of spec.md §4.3's design-level algorithm,
// grounded on original_source/src/core/MatchingEngine.cpp's match() loop
// and saiputravu-Exchange/internal/engine/orderbook.go's Match(), corrected
// per spec.md §9: decreaseVolume is applied to a partially-filled head
// order (the source only updates totalVolume on full removal), and
// Order.fill saturates properly (the source's fill() discarded its
// ternary-assignment result).
//
// Ordering rules enforced here: price priority (always the best opposing
// level), time priority (always the level's head first, FIFO), and
// execution at the resting (maker) side's price, never the aggressor's.
// A partial fill of the current head does not re-queue it — it stays at
// head with reduced remainingQty, and the walk stops (the source's
// "ppEntry.listHead = bookEntry" early-return shape, generalized to an
// explicit break).
func (b *Book) match(aggressor *Order) {
	opp := b.sideIndex(aggressor.side.opposite())

	for aggressor.remainingQty > 0 {
		best, ok := opp.Best()
		if !ok {
			break
		}
		if aggressor.side == Buy && best.price > aggressor.limitPrice {
			break
		}
		if aggressor.side == Sell && best.price < aggressor.limitPrice {
			break
		}

		walker := best.head
		for walker != nil && aggressor.remainingQty > 0 {
			tradeQty := aggressor.remainingQty
			if walker.remainingQty < tradeQty {
				tradeQty = walker.remainingQty
			}

			b.sink.OnTrade(Trade{
				Price:        best.price,
				Quantity:     tradeQty,
				Aggressor:    aggressor.side,
				MakerOrderID: walker.id,
				TakerOrderID: aggressor.id,
			})

			aggressor.fill(tradeQty)
			walker.fill(tradeQty)

			if walker.isFilled() {
				next := walker.next
				best.remove(walker)
				b.lookup.erase(walker.id)
				b.orders.deallocate(walker)
				walker = next
				continue
			}

			// Partial fill of the head: it stays at head with reduced
			// volume, and since it's priced exactly at best, nothing else
			// at this level can be touched this round.
			best.decreaseVolume(tradeQty)
			walker = nil
		}

		if best.IsEmpty() {
			opp.Remove(best.price)
			b.levels.deallocate(best)
		}
	}
}
