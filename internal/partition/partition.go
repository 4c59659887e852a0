// Package partition implements the work partitioner spec.md §4.5
// (L7): auto-tuned thread count, contiguous subrange fan-out, and
// deterministic count reduction.
//
// The goroutine+sync.WaitGroup fan-out over independent subranges is
// grounded on examples/dbfv/psi's parallel share-decryption pattern
// (one goroutine per share, a WaitGroup barrier, results merged after
// all complete) adapted here to the sieve's one-worker-per-subrange
// shape. Thread autotuning uses github.com/klauspost/cpuid/v2 for the
// hardware parallelism ceiling; verbose per-worker timing uses
// github.com/montanaflynn/stats to summarize the wall-clock spread
// across workers.
package partition

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/montanaflynn/stats"

	"github.com/psieve-go/psqsieve/internal/engine"
	"github.com/psieve-go/psqsieve/internal/params"
	"github.com/psieve-go/psqsieve/uint128"
)

// minThreadDistanceFloor is the floor on d_min spec.md §4.5 names:
// max(1e4, floor(stop^(1/5))).
const minThreadDistanceFloor = 10000

// ThreadCount resolves the requested thread count T (0 meaning "auto")
// against [start, stop] and print mode, per spec.md §4.5's
// auto-tuning rule and its print-mode override.
func ThreadCount(requested int, start, stop uint128.Uint128, printPrimes bool) int {
	if printPrimes {
		return 1
	}
	if requested > 0 {
		return requested
	}

	dMin := uint64(math.Pow(stop.Float64(), 1.0/5.0))
	if dMin < minThreadDistanceFloor {
		dMin = minThreadDistanceFloor
	}

	width := stop.Sub(start)
	var span uint64
	if width.Hi != 0 {
		span = ^uint64(0)
	} else {
		span = width.Lo
	}

	t := int(span / dMin)
	if t < 1 {
		t = 1
	}
	if hw := hardwareParallelism(); t > hw {
		t = hw
	}
	return t
}

func hardwareParallelism() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Stats summarizes per-worker wall-clock time for verbose reporting.
type Stats struct {
	Threads  int
	MeanSecs float64
	MaxSecs  float64
	StdDev   float64
}

// Run partitions [start, stop] into threadCount contiguous subranges,
// runs one engine.Worker per subrange concurrently, and returns the
// summed prime count. When onPrime is non-nil, threadCount must be 1
// (the caller is responsible for enforcing print mode's T=1 rule via
// ThreadCount) so emission order stays monotonic.
func Run(p params.Parameters, start, stop uint128.Uint128, threadCount int, onPrime func(uint128.Uint128)) (count uint64, st Stats, err error) {
	bounds := subranges(start, stop, threadCount)

	counts := make([]uint64, len(bounds))
	elapsed := make([]float64, len(bounds))
	errs := make([]error, len(bounds))

	var wg sync.WaitGroup
	for i, b := range bounds {
		wg.Add(1)
		go func(i int, lo, hi uint128.Uint128) {
			defer wg.Done()
			t0 := time.Now()
			w, werr := engine.NewWorker(p, onPrime)
			if werr != nil {
				errs[i] = werr
				return
			}
			counts[i] = w.Run(lo, hi)
			elapsed[i] = time.Since(t0).Seconds()
		}(i, b.lo, b.hi)
	}
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return 0, Stats{}, e
		}
	}
	for _, c := range counts {
		count += c
	}

	st = summarize(len(bounds), elapsed)
	return count, st, nil
}

type subrange struct{ lo, hi uint128.Uint128 }

// subranges splits [start, stop] into n contiguous, nearly-equal-width
// pieces. The width is divided as a uint128, so ranges wider than 2^64
// take the same path; the last piece also takes the remainder. A range
// narrower than n integers is returned as a single piece.
func subranges(start, stop uint128.Uint128, n int) []subrange {
	if n <= 1 || start.Cmp(stop) > 0 {
		return []subrange{{start, stop}}
	}

	total := stop.Sub(start).AddUint64(1)
	share, _ := total.DivMod64(uint64(n))
	if share.IsZero() {
		return []subrange{{start, stop}}
	}

	out := make([]subrange, 0, n)
	lo := start
	for i := 0; i < n; i++ {
		var hi uint128.Uint128
		if i == n-1 {
			hi = stop
		} else {
			hi = lo.Add(share).SubUint64(1)
		}
		if lo.Cmp(hi) > 0 {
			continue
		}
		out = append(out, subrange{lo, hi})
		lo = hi.AddUint64(1)
		if lo.Cmp(stop) > 0 {
			break
		}
	}
	return out
}

func summarize(threads int, elapsed []float64) Stats {
	data := stats.Float64Data(elapsed)
	mean, _ := data.Mean()
	max, _ := data.Max()
	stddev, _ := data.StandardDeviation()
	return Stats{Threads: threads, MeanSecs: mean, MaxSecs: max, StdDev: stddev}
}
