package book

// Order is a resting or in-flight limit order. It doubles as an intrusive
// doubly-linked-list node within its Level: prev/next link it to its
// neighbors at the same price, and level points back to the Level that owns
// it. Orders are never heap-allocated individually; they live in slots
// handed out by an orderPool (see pool.go) and are reinitialized in place on
// each allocate/deallocate cycle.
type Order struct {
	id           OrderID
	side         Side
	limitPrice   Price
	remainingQty Quantity
	initialQty   Quantity

	prev  *Order
	next  *Order
	level *Level
}

// fill reduces remainingQty by qty, saturating at zero. This replaces the
// canonical source's Order::fill, which performed an assignment inside a
// ternary whose result was discarded — the intent (a saturating subtract)
// was clear but the expression was ill-formed.
func (o *Order) fill(qty Quantity) {
	if qty >= o.remainingQty {
		o.remainingQty = 0
		return
	}
	o.remainingQty -= qty
}

func (o *Order) isFilled() bool {
	return o.remainingQty == 0
}

// ID returns the order's identity.
func (o *Order) ID() OrderID { return o.id }

// Side returns which side of the book the order rests on.
func (o *Order) Side() Side { return o.side }

// LimitPrice returns the order's limit price.
func (o *Order) LimitPrice() Price { return o.limitPrice }

// RemainingQty returns the order's current resting/unfilled quantity.
func (o *Order) RemainingQty() Quantity { return o.remainingQty }

// InitialQty returns the quantity the order was submitted with.
func (o *Order) InitialQty() Quantity { return o.initialQty }

// reset reinitializes a pool slot in place for reuse, mirroring the
// canonical source's OrderPool::allocate, which resets every field
// (including clearing stale intrusive links) before handing the slot back
// out.
func (o *Order) reset(id OrderID, side Side, price Price, qty Quantity) {
	o.id = id
	o.side = side
	o.limitPrice = price
	o.remainingQty = qty
	o.initialQty = qty
	o.prev = nil
	o.next = nil
	o.level = nil
}
