package book

// Level is the FIFO queue of every resting order at one exact price on one
// side (C3). It is pool-owned (see levelPool in pool.go) and is returned to
// the pool the instant its queue becomes empty.
//
// Invariants (spec.md §3):
//   - head == nil iff tail == nil iff totalVolume == 0
//   - totalVolume == sum of remainingQty over every linked order
//   - every linked order's level field points back to this Level
type Level struct {
	price       Price
	totalVolume Quantity
	head        *Order
	tail        *Order
}

func (l *Level) reset(price Price) {
	l.price = price
	l.totalVolume = 0
	l.head = nil
	l.tail = nil
}

// Price returns the level's price.
func (l *Level) Price() Price { return l.price }

// Volume returns the aggregate remaining quantity resting at this level.
func (l *Level) Volume() Quantity { return l.totalVolume }

// Head returns the oldest resting order at this level, or nil if empty.
func (l *Level) Head() *Order { return l.head }

// Tail returns the newest resting order at this level, or nil if empty.
func (l *Level) Tail() *Order { return l.tail }

// IsEmpty reports whether the level holds no resting orders.
func (l *Level) IsEmpty() bool { return l.head == nil }

// append links order at the tail (time priority: later arrivals go last).
func (l *Level) append(order *Order) {
	order.level = l
	order.next = nil

	if l.head == nil {
		order.prev = nil
		l.head = order
		l.tail = order
	} else {
		order.prev = l.tail
		l.tail.next = order
		l.tail = order
	}
	l.totalVolume += order.remainingQty
}

// remove splices order out of the list, using its CURRENT remainingQty to
// correct totalVolume, and clears the order's links.
func (l *Level) remove(order *Order) {
	if order.prev != nil {
		order.prev.next = order.next
	} else {
		l.head = order.next
	}

	if order.next != nil {
		order.next.prev = order.prev
	} else {
		l.tail = order.prev
	}

	if order.remainingQty >= l.totalVolume {
		l.totalVolume = 0
	} else {
		l.totalVolume -= order.remainingQty
	}

	order.prev = nil
	order.next = nil
	order.level = nil
}

// decreaseVolume saturates totalVolume down by qty. Used when the head
// order of a level is partially filled but stays resting: the source does
// not do this (it only touches totalVolume on full removal via remove()),
// which leaves totalVolume overstated until the head order is fully
// consumed. Invariant 2 (spec.md §8) requires this correction.
func (l *Level) decreaseVolume(qty Quantity) {
	if qty >= l.totalVolume {
		l.totalVolume = 0
		return
	}
	l.totalVolume -= qty
}
