package book

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestBook() *Book {
	return NewBook(10000, 1000)
}

// S1: empty-book inspection.
func TestBook_S1_EmptyBookInspection(t *testing.T) {
	b := newTestBook()
	require.Equal(t, Price(-1), b.Bid())
	require.Equal(t, Price(10001), b.Ask())
	require.Equal(t, Qty(0), b.BidQty())
	require.Equal(t, Qty(0), b.AskQty())
	require.Equal(t, 0, b.OrderCount())
	require.False(t, b.Crossed())
}

// S2: best-price tracking across several resting orders.
func TestBook_S2_BestTracking(t *testing.T) {
	b := newTestBook()
	require.Equal(t, Ok, b.Add(1, Buy, 100, 10, Limit, 0))
	require.Equal(t, Ok, b.Add(2, Buy, 102, 10, Limit, 0))
	require.Equal(t, Ok, b.Add(3, Buy, 101, 10, Limit, 0))
	require.Equal(t, Ok, b.Add(4, Sell, 110, 10, Limit, 0))
	require.Equal(t, Ok, b.Add(5, Sell, 108, 10, Limit, 0))
	require.Equal(t, Ok, b.Add(6, Sell, 109, 10, Limit, 0))

	require.Equal(t, Price(102), b.Bid())
	require.Equal(t, Price(108), b.Ask())
	require.Equal(t, Price(6), b.Spread())
}

// S3: price-time priority under a standalone market match.
func TestBook_S3_PriceTimePriority(t *testing.T) {
	b := newTestBook()
	require.Equal(t, Ok, b.Add(1, Sell, 100, 10, Limit, 0))
	require.Equal(t, Ok, b.Add(2, Sell, 100, 10, Limit, 0))
	require.Equal(t, Ok, b.Add(3, Sell, 100, 10, Limit, 0))

	residual := b.Match(Buy, 15)
	require.Equal(t, Qty(0), residual)

	_, ok1 := b.GetOrder(1)
	require.False(t, ok1)

	v2, ok2 := b.GetOrder(2)
	require.True(t, ok2)
	require.Equal(t, Qty(5), v2.Qty)

	v3, ok3 := b.GetOrder(3)
	require.True(t, ok3)
	require.Equal(t, Qty(10), v3.Qty)
}

// S4: a crossing limit add partially fills the resting order and never
// rests itself.
func TestBook_S4_CrossingAdd(t *testing.T) {
	b := newTestBook()
	require.Equal(t, Ok, b.Add(1, Sell, 100, 10, Limit, 0))
	require.Equal(t, Ok, b.Add(2, Buy, 100, 5, Limit, 0))

	v1, ok1 := b.GetOrder(1)
	require.True(t, ok1)
	require.Equal(t, Qty(5), v1.Qty)

	_, ok2 := b.GetOrder(2)
	require.False(t, ok2)
}

// S5: IOC never rests, even when it does not fully fill.
func TestBook_S5_IOC(t *testing.T) {
	b := newTestBook()
	require.Equal(t, Ok, b.Add(1, Sell, 100, 5, Limit, 0))
	require.Equal(t, Ok, b.Add(2, Buy, 100, 10, IOC, 0))

	_, ok1 := b.GetOrder(1)
	require.False(t, ok1)
	_, ok2 := b.GetOrder(2)
	require.False(t, ok2)
	require.Equal(t, 0, b.OrderCount())
}

// S6: a market order against insufficient liquidity drains the side and
// returns the unfilled residual.
func TestBook_S6_MarketInsufficientLiquidity(t *testing.T) {
	b := newTestBook()
	require.Equal(t, Ok, b.Add(1, Sell, 100, 10, Limit, 0))

	residual := b.Match(Buy, 100)
	require.Equal(t, Qty(90), residual)
	require.False(t, b.HasAsk())
}

// S7: cancelling the best level re-advances the cursor.
func TestBook_S7_CancelBest(t *testing.T) {
	b := newTestBook()
	require.Equal(t, Ok, b.Add(1, Buy, 100, 10, Limit, 0))
	require.Equal(t, Ok, b.Add(2, Buy, 102, 10, Limit, 0))

	require.True(t, b.Cancel(2))
	require.Equal(t, Price(100), b.Bid())

	require.True(t, b.Cancel(1))
	require.False(t, b.HasBid())
}

func TestBook_Add_RejectsDuplicateId(t *testing.T) {
	b := newTestBook()
	require.Equal(t, Ok, b.Add(1, Buy, 100, 10, Limit, 0))
	require.Equal(t, DuplicateId, b.Add(1, Buy, 101, 5, Limit, 0))
}

func TestBook_Add_RejectsNonPositiveQty(t *testing.T) {
	b := newTestBook()
	require.Equal(t, InvalidQty, b.Add(1, Buy, 100, 0, Limit, 0))
	require.Equal(t, InvalidQty, b.Add(2, Buy, 100, -5, Limit, 0))
}

func TestBook_Add_RejectsOutOfRangePrice(t *testing.T) {
	b := newTestBook()
	require.Equal(t, InvalidPrice, b.Add(1, Buy, -1, 10, Limit, 0))
	require.Equal(t, InvalidPrice, b.Add(2, Buy, 10001, 10, Limit, 0))
}

func TestBook_Add_PoolExhausted(t *testing.T) {
	b := NewBook(10000, 2)
	require.Equal(t, Ok, b.Add(1, Buy, 100, 10, Limit, 0))
	require.Equal(t, Ok, b.Add(2, Buy, 101, 10, Limit, 0))
	require.Equal(t, PoolExhausted, b.Add(3, Buy, 99, 10, Limit, 0))
}

// I6: a round trip of add then cancel (no crossing) restores observable
// book state.
func TestBook_I6_AddCancelRoundTrip(t *testing.T) {
	b := newTestBook()
	require.Equal(t, Ok, b.Add(1, Buy, 50, 7, Limit, 0))
	before := b.Bid()

	require.True(t, b.Cancel(1))

	require.Equal(t, Price(-1), b.Bid())
	require.NotEqual(t, before, b.Bid())
	require.Equal(t, 0, b.OrderCount())
	require.Equal(t, 0, b.PoolUsed())
}

// I7: cancelling a non-existent or already-cancelled id is a no-op.
func TestBook_I7_CancelIdempotent(t *testing.T) {
	b := newTestBook()
	require.False(t, b.Cancel(999))

	require.Equal(t, Ok, b.Add(1, Buy, 50, 7, Limit, 0))
	require.True(t, b.Cancel(1))
	require.False(t, b.Cancel(1))
}

// I3: pool usage, per-level counts, and the index all stay in lockstep.
func TestBook_I3_PoolLevelIndexConsistency(t *testing.T) {
	b := newTestBook()
	for i := OrderID(1); i <= 5; i++ {
		require.Equal(t, Ok, b.Add(i, Buy, Price(100+int64(i)), 1, Limit, 0))
	}
	require.Equal(t, 5, b.PoolUsed())
	require.Equal(t, 5, b.OrderCount())

	require.True(t, b.Cancel(3))
	require.Equal(t, 4, b.PoolUsed())
	require.Equal(t, 4, b.OrderCount())
	_, ok := b.GetOrder(3)
	require.False(t, ok)
}

func TestBook_PartialFillLeavesOrderAtHeadOfLevel(t *testing.T) {
	b := newTestBook()
	require.Equal(t, Ok, b.Add(1, Sell, 100, 10, Limit, 0))
	require.Equal(t, Ok, b.Add(2, Sell, 100, 10, Limit, 0))

	residual := b.Match(Buy, 4)
	require.Equal(t, Qty(0), residual)

	lv, ok := b.LevelAt(Sell, 100)
	require.True(t, ok)
	require.Equal(t, 2, lv.Count)

	v1, ok1 := b.GetOrder(1)
	require.True(t, ok1)
	require.Equal(t, Qty(6), v1.Qty)
}

func TestBook_MarketBuyHasNoUpperPriceBound(t *testing.T) {
	b := NewBook(10, 10)
	require.Equal(t, Ok, b.Add(1, Sell, 10, 5, Limit, 0))

	residual := b.Match(Buy, 5)
	require.Equal(t, Qty(0), residual)
	require.False(t, b.HasAsk())
}
