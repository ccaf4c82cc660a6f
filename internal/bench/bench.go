// Package bench is the latency-measurement harness spec.md §1 names as an
// external collaborator ("benchmark harness, latency statistics, percentile
// computation, cycle timers") rather than part of the CORE. Grounded on the
// teacher's main.go (batched feed loop bracketed by time.Now(), a
// DurationSlice wrapper, and github.com/grd/stat's Mean/SdMean), extended
// with sorted-slice percentile reporting, since the teacher's own report
// only ever computes mean and standard deviation.
package bench

import (
	"sort"
	"time"

	"github.com/grd/stat"

	"github.com/samridh10exe/nano-orderbook/book"
	"github.com/samridh10exe/nano-orderbook/internal/workload"
)

// DurationSlice adapts a []time.Duration to grd/stat's Getter/Len
// interface, exactly as the teacher's main.go does for its own latency
// slices.
type DurationSlice []time.Duration

func (d DurationSlice) Get(i int) float64 { return float64(d[i]) }
func (d DurationSlice) Len() int          { return len(d) }

// Report summarizes a run's per-op latencies.
type Report struct {
	Ops       int
	Mean      time.Duration
	StdDev    time.Duration
	P50       time.Duration
	P99       time.Duration
	Wall      time.Duration
}

// Run feeds n ops from gen through b one at a time, recording per-op
// latency, and returns a summary Report. batchSize mirrors the teacher's
// main.go batching constant: latency is still measured per-op, but ops are
// pulled from the generator in batches to amortize slice growth.
func Run(b *book.Book, gen *workload.Generator, n int, batchSize int) Report {
	if batchSize <= 0 {
		batchSize = n
	}
	latencies := make([]time.Duration, 0, n)
	wallStart := time.Now()

	for done := 0; done < n; {
		remaining := n - done
		take := batchSize
		if take > remaining {
			take = remaining
		}
		ops := gen.Stream(take)
		for _, op := range ops {
			start := time.Now()
			applyOp(b, op)
			latencies = append(latencies, time.Since(start))
		}
		done += take
	}

	wall := time.Since(wallStart)
	return summarize(latencies, wall)
}

func applyOp(b *book.Book, op workload.Op) {
	switch op.Type {
	case workload.OpAdd:
		b.Add(op.ID, op.Side, op.Price, op.Qty, op.OrdType, 0)
	case workload.OpCancel:
		b.Cancel(op.ID)
	case workload.OpMatch:
		b.Match(op.Side, op.Qty)
	}
}

func summarize(latencies []time.Duration, wall time.Duration) Report {
	if len(latencies) == 0 {
		return Report{Wall: wall}
	}

	durations := DurationSlice(latencies)
	mean := stat.Mean(durations)
	sd := stat.SdMean(durations, mean)

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return Report{
		Ops:    len(latencies),
		Mean:   time.Duration(mean),
		StdDev: time.Duration(sd),
		P50:    percentile(sorted, 0.50),
		P99:    percentile(sorted, 0.99),
		Wall:   wall,
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
