package book

// PriceLevel is the intrusive, circular, doubly-linked FIFO queue of
// resting orders at a single price. The embedded sentinel's Prev is the
// tail and Next is the head; an empty level has the sentinel pointing to
// itself, which removes every null check from the hot path.
//
// Grounded on original_source/include/price_level.hpp. Pure FIFO ordering
// only — no cross-level operation ever occurs here; that is the matching
// engine's job.
type PriceLevel struct {
	sentinel Order
	orderCnt int
	totalQty Qty
}

// init wires the sentinel to point at itself. Called once per level when
// the owning Book is constructed.
func (lv *PriceLevel) init() {
	lv.sentinel.Prev = &lv.sentinel
	lv.sentinel.Next = &lv.sentinel
}

// PushBack appends o after the current tail. O(1).
func (lv *PriceLevel) PushBack(o *Order) {
	tail := lv.sentinel.Prev
	o.Prev = tail
	o.Next = &lv.sentinel
	tail.Next = o
	lv.sentinel.Prev = o
	lv.orderCnt++
	lv.totalQty += o.Qty
}

// Remove unlinks o from the level. O(1). Subtracts o's *current* remaining
// quantity — a caller that already reduced o.Qty via ReduceQty must not
// double-subtract.
func (lv *PriceLevel) Remove(o *Order) {
	o.Prev.Next = o.Next
	o.Next.Prev = o.Prev
	lv.orderCnt--
	lv.totalQty -= o.Qty
	o.Prev = nil
	o.Next = nil
}

// ReduceQty is called by the matching engine when partially filling the
// front order without removing it: it adjusts the level's running total
// only, the caller is responsible for mutating the order itself.
func (lv *PriceLevel) ReduceQty(amount Qty) {
	lv.totalQty -= amount
}

// Front returns the head of the FIFO (the sentinel itself when empty).
func (lv *PriceLevel) Front() *Order { return lv.sentinel.Next }

// Back returns the tail of the FIFO (the sentinel itself when empty).
func (lv *PriceLevel) Back() *Order { return lv.sentinel.Prev }

// End returns the sentinel address, used as the traversal boundary.
func (lv *PriceLevel) End() *Order { return &lv.sentinel }

func (lv *PriceLevel) Empty() bool  { return lv.orderCnt == 0 }
func (lv *PriceLevel) Count() int   { return lv.orderCnt }
func (lv *PriceLevel) Qty() Qty     { return lv.totalQty }
