// Package engine implements the segment engine spec.md §4.4 (L6): the
// per-worker loop that repeatedly resets a bit sieve, crosses off
// multiples of the sieving primes, and resolves surviving candidates
// either by trial division alone or by falling through to the
// pseudosquare primality test.
//
// Grounded on the main loop of original_source/src/
// pseudosquares_prime_sieve.cpp (the `for (uint128_t low = start; ...)`
// body), rebuilt around internal/bitsieve, internal/sieveprimes, and
// internal/primalitytest.
package engine

import (
	"github.com/psieve-go/psqsieve/internal/bitsieve"
	"github.com/psieve-go/psqsieve/internal/params"
	"github.com/psieve-go/psqsieve/internal/primalitytest"
	"github.com/psieve-go/psqsieve/internal/sieveprimes"
	"github.com/psieve-go/psqsieve/uint128"
)

// Worker owns one bit sieve and one sieving-prime sequence, mutated
// only by this worker across the lifetime of a single Run call. A
// fresh Worker is cheap enough to create per partition (§3's
// ownership/lifecycle note).
type Worker struct {
	params        params.Parameters
	sieve         *bitsieve.Sieve
	sievingPrimes []sieveprimes.SievingPrime
	onPrime       func(uint128.Uint128)
}

// NewWorker allocates a worker's sieve (Δ integers of capacity) and
// its sieving-prime sequence (primes <= min(s, sqrt(stop))). onPrime, if
// non-nil, is invoked once per prime found, in ascending order within
// this worker's subrange; pass nil when only the count is wanted.
func NewWorker(p params.Parameters, onPrime func(uint128.Uint128)) (*Worker, error) {
	maxQ := p.S()
	if sqrtStop := p.SqrtStop(); sqrtStop < maxQ {
		maxQ = sqrtStop
	}
	sp, err := sieveprimes.Generate(uint32(maxQ))
	if err != nil {
		return nil, err
	}
	return &Worker{
		params:        p,
		sieve:         bitsieve.New(int(p.Delta())),
		sievingPrimes: sp,
		onPrime:       onPrime,
	}, nil
}

// Run counts (and, if onPrime is set, emits) the primes in [lo, hi],
// per spec.md §4.4's numbered steps.
func (w *Worker) Run(lo, hi uint128.Uint128) uint64 {
	if lo.Cmp(hi) > 0 {
		return 0
	}

	two := uint128.FromUint64(2)
	if hi.Less(two) {
		return 0
	}

	var count uint64

	if lo.LessOrEqual(two) && two.LessOrEqual(hi) {
		count++
		w.emit(two)
		lo = uint128.FromUint64(3)
		if lo.Cmp(hi) > 0 {
			return count
		}
	}

	segCap := uint64(w.sieve.Size())
	segWidth := uint128.FromUint64(segCap)

	for L := lo; L.LessOrEqual(hi); L = L.Add(segWidth) {
		H := L.Add(uint128.FromUint64(segCap - 1))
		if hi.Less(H) {
			H = hi
		}
		sqrtH := H.Sqrt()
		maxQSeg := w.params.S()
		if sqrtH < maxQSeg {
			maxQSeg = sqrtH
		}
		maxI := uint64(H.Sub(L).Lo) + 1

		w.sieve.Reset()
		w.crossOff(L, maxI, maxQSeg)

		trialDivisionProves := maxQSeg >= sqrtH
		count += w.scan(L, H, maxI, trialDivisionProves)
	}

	return count
}

// crossOff clears the bit for every odd multiple of every sieving
// prime <= maxQSeg within offsets [0, maxI) of segment base L,
// persisting each prime's next-segment index as it goes.
func (w *Worker) crossOff(L uint128.Uint128, maxI uint64, maxQSeg uint64) {
	for idx := range w.sievingPrimes {
		sp := &w.sievingPrimes[idx]
		prime := uint64(sp.Prime)
		if prime > maxQSeg {
			break
		}

		var i uint64
		if sp.Index == sieveprimes.Unseeded {
			i = firstOddMultipleOffset(L, prime)
		} else {
			i = uint64(sp.Index)
		}

		for ; i < maxI; i += prime * 2 {
			w.sieve.Clear(int(i))
		}
		sp.Index = int32(i - maxI)
	}
}

// firstOddMultipleOffset returns the offset from L of the first odd
// multiple of prime that is both >= L and >= prime^2 (smaller
// multiples were already crossed off by smaller sieving primes in
// earlier segments, or are composed entirely of factors < prime that
// this same pass already eliminates).
func firstOddMultipleOffset(L uint128.Uint128, prime uint64) uint64 {
	q, _ := L.DivMod64(prime)
	n := q.Mul64(prime)
	if n.Less(L) {
		n = n.AddUint64(prime)
	}
	if !n.IsOdd() {
		n = n.AddUint64(prime)
	}
	pp := uint128.Mul64x64(prime, prime)
	if n.Less(pp) {
		n = pp
	}
	return uint64(n.Sub(L).Lo)
}

// scan walks the odd candidates in [L, H] and resolves each surviving
// one, either by trial division alone (when every sieving prime up to
// sqrt(H) was applied) or by the pseudosquare primality test.
func (w *Worker) scan(L, H uint128.Uint128, maxI uint64, trialDivisionProves bool) uint64 {
	var count uint64
	firstOdd := L
	if !firstOdd.IsOdd() {
		firstOdd = firstOdd.AddUint64(1)
	}
	for n := firstOdd; n.LessOrEqual(H); n = n.AddUint64(2) {
		i := uint64(n.Sub(L).Lo)
		if i >= maxI || !w.sieve.Test(int(i)) {
			continue
		}
		if trialDivisionProves || primalitytest.IsPrime(n, w.params.P()) {
			count++
			w.emit(n)
		}
	}
	return count
}

func (w *Worker) emit(n uint128.Uint128) {
	if w.onPrime != nil {
		w.onPrime(n)
	}
}
