package book

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newLevel() *PriceLevel {
	lv := &PriceLevel{}
	lv.init()
	return lv
}

func TestPriceLevel_EmptyInvariant(t *testing.T) {
	lv := newLevel()
	require.True(t, lv.Empty())
	require.Equal(t, 0, lv.Count())
	require.Equal(t, Qty(0), lv.Qty())
	require.Equal(t, lv.End(), lv.Front())
	require.Equal(t, lv.End(), lv.Back())
}

func TestPriceLevel_PushBackIsFIFO(t *testing.T) {
	lv := newLevel()
	o1 := &Order{ID: 1, Qty: 10}
	o2 := &Order{ID: 2, Qty: 20}
	o3 := &Order{ID: 3, Qty: 30}

	lv.PushBack(o1)
	lv.PushBack(o2)
	lv.PushBack(o3)

	require.Equal(t, 3, lv.Count())
	require.Equal(t, Qty(60), lv.Qty())
	require.Same(t, o1, lv.Front())
	require.Same(t, o3, lv.Back())

	require.Same(t, o1, lv.Front())
	require.Same(t, o2, o1.Next)
	require.Same(t, o3, o2.Next)
	require.Equal(t, lv.End(), o3.Next)
}

func TestPriceLevel_RemoveMiddlePreservesOrder(t *testing.T) {
	lv := newLevel()
	o1 := &Order{ID: 1, Qty: 10}
	o2 := &Order{ID: 2, Qty: 20}
	o3 := &Order{ID: 3, Qty: 30}
	lv.PushBack(o1)
	lv.PushBack(o2)
	lv.PushBack(o3)

	lv.Remove(o2)

	require.Equal(t, 2, lv.Count())
	require.Equal(t, Qty(40), lv.Qty())
	require.Same(t, o1, lv.Front())
	require.Same(t, o3, o1.Next)
	require.Nil(t, o2.Prev)
	require.Nil(t, o2.Next)
}

func TestPriceLevel_RemoveLastEmpties(t *testing.T) {
	lv := newLevel()
	o1 := &Order{ID: 1, Qty: 10}
	lv.PushBack(o1)
	lv.Remove(o1)

	require.True(t, lv.Empty())
	require.Equal(t, Qty(0), lv.Qty())
	require.Equal(t, lv.End(), lv.Front())
	require.Equal(t, lv.End(), lv.Back())
}

func TestPriceLevel_ReduceQtyTracksPartialFill(t *testing.T) {
	lv := newLevel()
	o1 := &Order{ID: 1, Qty: 10}
	lv.PushBack(o1)

	o1.Qty -= 4
	lv.ReduceQty(4)

	require.Equal(t, 1, lv.Count())
	require.Equal(t, Qty(6), lv.Qty())
	require.Same(t, o1, lv.Front())
}
