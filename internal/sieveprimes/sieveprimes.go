// Package sieveprimes implements spec.md §4.3 (L4): the ordered
// sequence of sieving-prime records consumed by the segment engine,
// each carrying a persistent cross-off index that survives across
// segment boundaries.
//
// Grounded on original_source/src/pseudosquares_prime_sieve.cpp's
// SievingPrime struct and get_sieving_primes: a dense uint32 prime
// alongside a signed int32 index, -1 meaning "not yet seeded", backed
// by internal/smallprimes for the raw enumeration and by Dusart's
// prime-counting bound for the slice's initial capacity.
package sieveprimes

import (
	"fmt"
	"math"

	"github.com/psieve-go/psqsieve/internal/smallprimes"
)

// Unseeded is the sentinel Index value meaning this sieving prime has
// not yet been positioned in any segment.
const Unseeded = int32(-1)

// SievingPrime is one odd sieving prime together with its persisted
// cross-off index. Prime fits in 32 bits because the validity window
// bounds s (hence every sieving prime) to <= 2^30. Index is signed
// 32-bit since the cross-off stride "i += prime*2" never exceeds it
// within that same bound.
type SievingPrime struct {
	Prime uint32
	Index int32
}

// MaxSievingPrime is the largest value this package accepts, matching
// the int32-index overflow bound spec.md §4.3 and §9 describe
// (s <= 2^30, so prime*2 never overflows int32).
const MaxSievingPrime = uint32(1) << 30

// dusartReserve returns Dusart's prime-counting upper bound
// pi(x) <= x/(ln(x)-1.1) + 5, used only to pre-size the returned
// slice so the generator never reallocates while appending.
func dusartReserve(maxQ uint32) int {
	x := math.Max(100.0, float64(maxQ))
	return int(x/(math.Log(x)-1.1) + 5)
}

// Generate returns the ascending sequence of sieving primes <= maxQ,
// each seeded with the Unseeded sentinel index. maxQ must be <=
// MaxSievingPrime; 2 is never included since the sieve's odd-only
// representation handles it implicitly.
func Generate(maxQ uint32) ([]SievingPrime, error) {
	if maxQ > MaxSievingPrime {
		return nil, fmt.Errorf("sieveprimes: maxQ %d exceeds %d", maxQ, MaxSievingPrime)
	}
	raw := smallprimes.UpTo(maxQ)
	out := make([]SievingPrime, 0, dusartReserve(maxQ))
	for _, q := range raw {
		out = append(out, SievingPrime{Prime: q, Index: Unseeded})
	}
	return out, nil
}
