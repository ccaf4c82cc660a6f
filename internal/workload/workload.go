// Package workload generates the synthetic (type, id, side, price, qty,
// ord_type) command stream that spec.md §6 describes as the book's external
// collaborator: the CORE book package has no knowledge of it. Grounded on
// the teacher's GenerateRandomOrder (types.go) — a coin-flip over
// cancel-vs-new plus uniform price/size draws — generalized to a
// three-way add/cancel/market mix with a pool of live ids to cancel
// against, since the teacher's feed only ever cancels an id it just
// generated via its size field (main.go's feed helper), never a
// previously-resting one.
package workload

import (
	"math/rand"

	"github.com/samridh10exe/nano-orderbook/book"
)

// OpType distinguishes the three commands the book's public surface
// accepts: a resting/crossing Add, a Cancel, and a standalone Match.
type OpType int

const (
	OpAdd OpType = iota
	OpCancel
	OpMatch
)

// Op is one record of the synthetic workload stream.
type Op struct {
	Type    OpType
	ID      book.OrderID
	Side    book.Side
	Price   book.Price
	Qty     book.Qty
	OrdType book.OrdType
}

// Mix controls the relative frequency of each op type. Weights need not sum
// to 1; they are normalized internally.
type Mix struct {
	AddWeight    float64
	CancelWeight float64
	MatchWeight  float64
}

// DefaultMix favors adds heavily, as a real feed does: most commands are new
// resting interest, with a modest rate of cancels and occasional aggressive
// market sweeps.
var DefaultMix = Mix{AddWeight: 0.75, CancelWeight: 0.20, MatchWeight: 0.05}

// Generator produces a bounded, repeatable stream of Ops against a price
// range and id space sized to match a Book's construction parameters.
type Generator struct {
	rng      *rand.Rand
	maxPrice book.Price
	mix      Mix
	nextID   book.OrderID
	live     []book.OrderID
}

// NewGenerator builds a generator seeded deterministically, mirroring the
// teacher's rand.Seed(42) call in db.go's FillTestData.
func NewGenerator(seed int64, maxPrice book.Price, mix Mix) *Generator {
	return &Generator{
		rng:      rand.New(rand.NewSource(seed)),
		maxPrice: maxPrice,
		mix:      mix,
		nextID:   1,
	}
}

// Next produces the next Op in the stream.
func (g *Generator) Next() Op {
	switch g.pickType() {
	case OpCancel:
		if op, ok := g.nextCancel(); ok {
			return op
		}
		fallthrough
	case OpMatch:
		return g.nextMatch()
	default:
		return g.nextAdd()
	}
}

// Stream fills a slice of n Ops, for callers that want to pre-generate a
// batch (e.g. bench.Run and cmd/obbench's baseline comparison run).
func (g *Generator) Stream(n int) []Op {
	ops := make([]Op, n)
	for i := range ops {
		ops[i] = g.Next()
	}
	return ops
}

func (g *Generator) pickType() OpType {
	total := g.mix.AddWeight + g.mix.CancelWeight + g.mix.MatchWeight
	if total <= 0 {
		return OpAdd
	}
	r := g.rng.Float64() * total
	switch {
	case r < g.mix.AddWeight:
		return OpAdd
	case r < g.mix.AddWeight+g.mix.CancelWeight:
		return OpCancel
	default:
		return OpMatch
	}
}

func (g *Generator) nextAdd() Op {
	id := g.nextID
	g.nextID++
	g.live = append(g.live, id)

	side := book.Buy
	if g.rng.Intn(2) == 1 {
		side = book.Sell
	}

	return Op{
		Type:    OpAdd,
		ID:      id,
		Side:    side,
		Price:   book.Price(g.rng.Int63n(int64(g.maxPrice) + 1)),
		Qty:     book.Qty(1 + g.rng.Intn(1000)),
		OrdType: book.Limit,
	}
}

func (g *Generator) nextCancel() (Op, bool) {
	if len(g.live) == 0 {
		return Op{}, false
	}
	i := g.rng.Intn(len(g.live))
	id := g.live[i]
	g.live[i] = g.live[len(g.live)-1]
	g.live = g.live[:len(g.live)-1]
	return Op{Type: OpCancel, ID: id}, true
}

func (g *Generator) nextMatch() Op {
	side := book.Buy
	if g.rng.Intn(2) == 1 {
		side = book.Sell
	}
	return Op{
		Type:    OpMatch,
		Side:    side,
		Qty:     book.Qty(1 + g.rng.Intn(1000)),
		OrdType: book.Market,
	}
}
