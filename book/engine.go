package book

// Book composes the order pool, the order index, and a pair of dense
// price-level arrays (one per side) into the public add/cancel/match
// surface described in spec.md §4.4. It is a single-owner, single-threaded
// aggregate: every exported method mutates state only through these entry
// points, and nothing here allocates, blocks, or logs.
//
// Because the level arrays are sized MaxPrice+1 each, a Book should be
// constructed on the heap (NewBook returns *Book) rather than embedded by
// value, exactly as spec.md §5's memory policy requires.
type Book struct {
	maxPrice Price
	noAsk    Price

	pool  *Pool
	index *Index

	bidLevels []PriceLevel
	askLevels []PriceLevel

	bestBid Price
	bestAsk Price

	total int
}

// NewBook constructs an empty book. maxPrice is the highest valid tick;
// capacity is the maximum number of simultaneously resting orders.
func NewBook(maxPrice Price, capacity int) *Book {
	b := &Book{
		maxPrice:  maxPrice,
		noAsk:     maxPrice + 1,
		pool:      NewPool(capacity),
		index:     NewIndex(capacity),
		bidLevels: make([]PriceLevel, maxPrice+1),
		askLevels: make([]PriceLevel, maxPrice+1),
		bestBid:   NoBid,
	}
	b.bestAsk = b.noAsk
	for i := range b.bidLevels {
		b.bidLevels[i].init()
		b.askLevels[i].init()
	}
	return b
}

// NewDefaultBook constructs a book using spec.md §6's default parameters.
func NewDefaultBook() *Book {
	return NewBook(DefaultMaxPrice, DefaultCapacity)
}

func (b *Book) levels(side Side) []PriceLevel {
	if side == Buy {
		return b.bidLevels
	}
	return b.askLevels
}

// Add submits a new order. Preconditions are checked in the order listed in
// spec.md §4.4, returning the first failure. A non-Ok return never
// partially mutates the book, with the one documented exception below.
func (b *Book) Add(id OrderID, side Side, price Price, qty Qty, typ OrdType, ts Timestamp) AddResult {
	if b.index.Lookup(id) != nil {
		return DuplicateId
	}
	if qty <= 0 {
		return InvalidQty
	}
	if price < 0 || price > b.maxPrice {
		return InvalidPrice
	}

	remaining := qty
	if side == Buy && price >= b.bestAsk {
		remaining = b.runMatching(Buy, remaining, price)
	} else if side == Sell && price <= b.bestBid {
		remaining = b.runMatching(Sell, remaining, price)
	}

	if typ == IOC || typ == Market {
		return Ok
	}
	if remaining <= 0 {
		return Ok
	}

	// SPEC_FULL.md open question #1: if matching already consumed opposite
	// liquidity above and the pool is now exhausted, those crossing effects
	// are retained — the call still returns PoolExhausted rather than
	// unwinding the fills.
	cell := b.pool.Create(id, price, remaining, side, typ, ts)
	if cell == nil {
		return PoolExhausted
	}

	if res := b.index.Insert(cell); res != insertOk {
		b.pool.Free(cell)
		return DuplicateId
	}

	lv := &b.levels(side)[price]
	lv.PushBack(cell)
	b.total++

	if side == Buy {
		if price > b.bestBid {
			b.bestBid = price
		}
	} else {
		if price < b.bestAsk {
			b.bestAsk = price
		}
	}

	return Ok
}

// Cancel removes a resting order. Returns false (not an error) if id is not
// resting.
func (b *Book) Cancel(id OrderID) bool {
	o := b.index.Lookup(id)
	if o == nil {
		return false
	}

	price := o.Price
	side := o.Side

	lv := &b.levels(side)[price]
	lv.Remove(o)
	b.index.Remove(id)
	b.pool.Free(o)
	b.total--

	if side == Buy && price == b.bestBid {
		b.advanceBid()
	} else if side == Sell && price == b.bestAsk {
		b.advanceAsk()
	}

	return true
}

// Match submits a pure market-order aggressor for qty against the opposite
// side, unbounded within the valid price range, and returns the unfilled
// residual (possibly equal to qty if the opposite side is empty).
func (b *Book) Match(aggressor Side, qty Qty) Qty {
	var limit Price
	if aggressor == Buy {
		limit = b.maxPrice
	} else {
		limit = 0
	}
	return b.runMatching(aggressor, qty, limit)
}

// runMatching is the internal matching engine shared by a crossing Add and
// a standalone Match. aggressor is the side of the incoming order; limit is
// the farthest price it is willing to cross (the submitted price for a
// limit add, or the range bound for a market order).
func (b *Book) runMatching(aggressor Side, remaining Qty, limit Price) Qty {
	if aggressor == Buy {
		for remaining > 0 && b.bestAsk <= b.maxPrice && b.bestAsk <= limit {
			lv := &b.askLevels[b.bestAsk]
			remaining = b.drainLevel(lv, Sell, remaining)
			if lv.Empty() {
				b.advanceAsk()
			}
		}
	} else {
		for remaining > 0 && b.bestBid >= 0 && b.bestBid >= limit {
			lv := &b.bidLevels[b.bestBid]
			remaining = b.drainLevel(lv, Buy, remaining)
			if lv.Empty() {
				b.advanceBid()
			}
		}
	}
	return remaining
}

// drainLevel consumes passive orders at lv in FIFO order until remaining
// hits zero or the level empties.
func (b *Book) drainLevel(lv *PriceLevel, passiveSide Side, remaining Qty) Qty {
	for remaining > 0 {
		o := lv.Front()
		if o == lv.End() {
			break
		}

		fill := remaining
		if o.Qty < fill {
			fill = o.Qty
		}
		o.Qty -= fill
		remaining -= fill
		lv.ReduceQty(fill)

		if o.Filled() {
			lv.Remove(o)
			b.index.Remove(o.ID)
			b.pool.Free(o)
			b.total--
		}
	}
	return remaining
}

// advanceBid re-establishes bestBid by scanning downward from its current
// value until it lands on a non-empty level or falls below zero.
func (b *Book) advanceBid() {
	for p := b.bestBid; p >= 0; p-- {
		if !b.bidLevels[p].Empty() {
			b.bestBid = p
			return
		}
	}
	b.bestBid = NoBid
}

// advanceAsk re-establishes bestAsk by scanning upward from its current
// value until it lands on a non-empty level or exceeds maxPrice.
func (b *Book) advanceAsk() {
	for p := b.bestAsk; p <= b.maxPrice; p++ {
		if !b.askLevels[p].Empty() {
			b.bestAsk = p
			return
		}
	}
	b.bestAsk = b.noAsk
}

// --- Inspection (read-only) ---

func (b *Book) Bid() Price   { return b.bestBid }
func (b *Book) Ask() Price   { return b.bestAsk }
func (b *Book) HasBid() bool { return b.bestBid != NoBid }
func (b *Book) HasAsk() bool { return b.bestAsk != b.noAsk }

// Crossed reports whether both sides exist and the book is crossed. This
// should never be observed true at quiescence (outside a matching call).
func (b *Book) Crossed() bool {
	return b.HasBid() && b.HasAsk() && b.bestBid >= b.bestAsk
}

func (b *Book) BidQty() Qty {
	if !b.HasBid() {
		return 0
	}
	return b.bidLevels[b.bestBid].Qty()
}

func (b *Book) AskQty() Qty {
	if !b.HasAsk() {
		return 0
	}
	return b.askLevels[b.bestAsk].Qty()
}

func (b *Book) Spread() Price { return b.bestAsk - b.bestBid }

func (b *Book) OrderCount() int   { return b.total }
func (b *Book) PoolUsed() int     { return b.pool.Used() }
func (b *Book) PoolCapacity() int { return b.pool.Capacity() }

// OrderView is an immutable snapshot of a resting order's attributes.
type OrderView struct {
	ID      OrderID
	Price   Price
	Qty     Qty
	OrigQty Qty
	Ts      Timestamp
	Side    Side
	Type    OrdType
}

// GetOrder returns a view of the resting order, or ok=false if absent.
func (b *Book) GetOrder(id OrderID) (OrderView, bool) {
	o := b.index.Lookup(id)
	if o == nil {
		return OrderView{}, false
	}
	return OrderView{
		ID:      o.ID,
		Price:   o.Price,
		Qty:     o.Qty,
		OrigQty: o.OrigQty,
		Ts:      o.Ts,
		Side:    o.Side,
		Type:    o.Type,
	}, true
}

// LevelView is an immutable snapshot of a price level.
type LevelView struct {
	Price Price
	Count int
	Qty   Qty
}

// LevelAt returns a view of the level at price on side, or ok=false if
// price is out of range.
func (b *Book) LevelAt(side Side, price Price) (LevelView, bool) {
	if price < 0 || price > b.maxPrice {
		return LevelView{}, false
	}
	lv := &b.levels(side)[price]
	return LevelView{Price: price, Count: lv.Count(), Qty: lv.Qty()}, true
}
