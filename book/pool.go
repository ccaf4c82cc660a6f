package book

// Pool is a fixed-capacity slab of Order cells with an embedded free list.
// Allocate/Free are O(1) and never touch a general allocator once NewPool
// has returned — the backing slice is sized once and never grows, so no
// Order cell's address ever moves.
//
// Grounded on original_source/include/memory_pool.hpp's MemPool<T,
// Capacity>; the free list reuses Order.Next as its link field exactly the
// way the source's FreeNode overlays the first pointer-sized bytes of a
// free cell.
type Pool struct {
	cells    []Order
	freeHead *Order
	used     int
}

// NewPool allocates the backing slab and threads the free list in reverse
// address order, so the first Allocate call returns the lowest-address
// cell — the source's cache-locality rationale for monotonically arriving
// ids.
func NewPool(capacity int) *Pool {
	p := &Pool{cells: make([]Order, capacity)}
	for i := capacity - 1; i >= 0; i-- {
		cell := &p.cells[i]
		cell.Next = p.freeHead
		p.freeHead = cell
	}
	return p
}

// Allocate pops the free-list head, or returns nil if the pool is full.
func (p *Pool) Allocate() *Order {
	if p.freeHead == nil {
		return nil
	}
	cell := p.freeHead
	p.freeHead = cell.Next
	cell.Next = nil
	p.used++
	return cell
}

// Create allocates a cell and initializes it in place.
func (p *Pool) Create(id OrderID, price Price, qty Qty, side Side, typ OrdType, ts Timestamp) *Order {
	cell := p.Allocate()
	if cell == nil {
		return nil
	}
	cell.ID = id
	cell.Price = price
	cell.Qty = qty
	cell.OrigQty = qty
	cell.Side = side
	cell.Type = typ
	cell.Ts = ts
	return cell
}

// Free returns a cell to the pool, clearing it so no stale order data is
// observable through a reused or dangling reference.
func (p *Pool) Free(o *Order) {
	if o == nil {
		return
	}
	o.reset()
	o.Next = p.freeHead
	p.freeHead = o
	p.used--
}

func (p *Pool) Used() int      { return p.used }
func (p *Pool) Capacity() int  { return len(p.cells) }
func (p *Pool) Available() int { return len(p.cells) - p.used }
func (p *Pool) Full() bool     { return p.used == len(p.cells) }
func (p *Pool) Empty() bool    { return p.used == 0 }

// Owns reports whether o's address falls within this pool's backing slab.
func (p *Pool) Owns(o *Order) bool {
	if len(p.cells) == 0 || o == nil {
		return false
	}
	base := &p.cells[0]
	end := &p.cells[len(p.cells)-1]
	return uintptrOf(o) >= uintptrOf(base) && uintptrOf(o) <= uintptrOf(end)
}
