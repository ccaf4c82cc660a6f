// Package baseline is the comparative, intentionally non-optimized order
// book spec.md §1 calls out as "a std::map-backed baseline used only for
// comparative measurement" and explicitly places out of the CORE's scope.
// Where book.Book commits to a dense array, an intrusive list, and an
// open-addressed index, Baseline reaches for an ordered map per side
// (github.com/tidwall/btree.Map, keyed by price) and a plain Go map for
// order lookup — the idiomatic Go analogue of std::map, carried over from
// Aidin1998-finalex/internal/trading/orderbook/orderbook.go, which keeps
// its own bid/ask books in *btree.Map[string, *PriceLevel].
//
// Baseline exists only so cmd/obbench can report how much the CORE's array
// + pool + hash-table design buys over an off-the-shelf ordered container;
// nothing in book imports this package.
package baseline

import (
	"github.com/tidwall/btree"

	"github.com/samridh10exe/nano-orderbook/book"
)

type level struct {
	orders []*order
	qty    book.Qty
}

type order struct {
	id    book.OrderID
	price book.Price
	qty   book.Qty
	side  book.Side
}

// Book is the btree-backed baseline implementation of the same add/cancel/
// match surface as book.Book.
type Book struct {
	bids  *btree.Map[int64, *level]
	asks  *btree.Map[int64, *level]
	index map[book.OrderID]*order
}

func NewBook() *Book {
	return &Book{
		bids:  btree.NewMap[int64, *level](32),
		asks:  btree.NewMap[int64, *level](32),
		index: make(map[book.OrderID]*order),
	}
}

func (b *Book) sideMap(side book.Side) *btree.Map[int64, *level] {
	if side == book.Buy {
		return b.bids
	}
	return b.asks
}

// Add mirrors book.Book.Add's contract, minus the pool-exhaustion failure
// mode (a Go map never runs out of capacity).
func (b *Book) Add(id book.OrderID, side book.Side, price book.Price, qty book.Qty, typ book.OrdType) book.AddResult {
	if _, exists := b.index[id]; exists {
		return book.DuplicateId
	}
	if qty <= 0 {
		return book.InvalidQty
	}
	if price < 0 {
		return book.InvalidPrice
	}

	remaining := qty
	if side == book.Buy {
		remaining = b.match(book.Sell, remaining, price, true)
	} else {
		remaining = b.match(book.Buy, remaining, price, false)
	}

	if typ == book.IOC || typ == book.Market || remaining <= 0 {
		return book.Ok
	}

	o := &order{id: id, price: price, qty: remaining, side: side}
	b.index[id] = o
	b.insert(o)
	return book.Ok
}

func (b *Book) insert(o *order) {
	m := b.sideMap(o.side)
	lv, ok := m.Get(int64(o.price))
	if !ok {
		lv = &level{}
		m.Set(int64(o.price), lv)
	}
	lv.orders = append(lv.orders, o)
	lv.qty += o.qty
}

// Cancel removes a resting order; returns false if absent.
func (b *Book) Cancel(id book.OrderID) bool {
	o, ok := b.index[id]
	if !ok {
		return false
	}
	b.removeFromLevel(o)
	delete(b.index, id)
	return true
}

func (b *Book) removeFromLevel(o *order) {
	m := b.sideMap(o.side)
	lv, ok := m.Get(int64(o.price))
	if !ok {
		return
	}
	for i, cand := range lv.orders {
		if cand == o {
			lv.orders = append(lv.orders[:i], lv.orders[i+1:]...)
			lv.qty -= o.qty
			break
		}
	}
	if len(lv.orders) == 0 {
		m.Delete(int64(o.price))
	}
}

// Match is the standalone market-order form, with no price bound.
func (b *Book) Match(aggressor book.Side, qty book.Qty) book.Qty {
	limit := book.Price(1<<62 - 1)
	if aggressor == book.Sell {
		limit = 0
	}
	var opposite book.Side
	if aggressor == book.Buy {
		opposite = book.Sell
	} else {
		opposite = book.Buy
	}
	return b.match(opposite, qty, limit, aggressor == book.Buy)
}

// match consumes passiveSide's best-price entries ascending (asks) or
// descending (bids) via the btree's natural order until remaining is zero,
// the book side empties, or limit is crossed.
func (b *Book) match(passiveSide book.Side, remaining book.Qty, limit book.Price, ascending bool) book.Qty {
	m := b.sideMap(passiveSide)
	for remaining > 0 {
		var bestPrice int64
		var lv *level
		found := false

		if ascending {
			m.Scan(func(price int64, l *level) bool {
				bestPrice, lv, found = price, l, true
				return false
			})
		} else {
			m.Reverse(func(price int64, l *level) bool {
				bestPrice, lv, found = price, l, true
				return false
			})
		}
		if !found {
			break
		}
		if ascending && book.Price(bestPrice) > limit {
			break
		}
		if !ascending && book.Price(bestPrice) < limit {
			break
		}

		for remaining > 0 && len(lv.orders) > 0 {
			front := lv.orders[0]
			fill := remaining
			if front.qty < fill {
				fill = front.qty
			}
			front.qty -= fill
			lv.qty -= fill
			remaining -= fill

			if front.qty <= 0 {
				lv.orders = lv.orders[1:]
				delete(b.index, front.id)
			}
		}
		if len(lv.orders) == 0 {
			m.Delete(bestPrice)
		}
	}
	return remaining
}

// BestBid and BestAsk expose top-of-book for parity checks against book.Book.
func (b *Book) BestBid() (book.Price, bool) {
	var price int64
	found := false
	b.bids.Reverse(func(p int64, _ *level) bool {
		price, found = p, true
		return false
	})
	return book.Price(price), found
}

func (b *Book) BestAsk() (book.Price, bool) {
	var price int64
	found := false
	b.asks.Scan(func(p int64, _ *level) bool {
		price, found = p, true
		return false
	})
	return book.Price(price), found
}

func (b *Book) OrderCount() int { return len(b.index) }
