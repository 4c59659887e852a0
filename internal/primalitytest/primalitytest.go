// Package primalitytest implements Sorenson's pseudosquares primality
// test, spec.md §4.2 (L5): a deterministic test over a fixed witness
// set, valid only within the window bounded by the largest tabulated
// pseudosquare.
//
// Grounded on original_source/src/pseudosquares_prime_sieve.cpp's
// pseudosquares_prime_test, including the n ≡ 1 (mod 8) extension past
// the witness cap p that Sorenson confirmed as a post-publication
// bug-fix; built on internal/montgomery for the modular exponentiation
// and internal/tables for the prime and pseudosquare tables.
package primalitytest

import (
	"github.com/psieve-go/psqsieve/internal/montgomery"
	"github.com/psieve-go/psqsieve/internal/tables"
	"github.com/psieve-go/psqsieve/uint128"
)

var one = uint128.FromUint64(1)

// IsPrime reports whether odd n > 1 is prime, using p as the
// witness-cap prime selected globally from stop (see internal/params).
// The result is correct only for n within the validity window the
// chosen p guarantees (n/s < L_p for the sieve's s), a precondition
// enforced by the caller, not by this function.
func IsPrime(n uint128.Uint128, p uint32) bool {
	e := n.Sub(one).Rsh(1)
	minus1 := n.Sub(one)
	mod8 := n.Mod8()

	res := montgomery.PowMod2(e, n)
	seenMinus1 := res.Equal(minus1)
	if mod8 == 5 && !seenMinus1 {
		return false
	}
	if !res.Equal(one) && !seenMinus1 {
		return false
	}

	for i := 1; i < len(tables.Primes128) && uint32(tables.Primes128[i]) <= p; i++ {
		r := montgomery.PowMod(uint128.FromUint64(uint64(tables.Primes128[i])), e, n)
		if r.Equal(minus1) {
			seenMinus1 = true
		} else if !r.Equal(one) {
			return false
		}
	}

	if mod8 == 1 && !seenMinus1 {
		// Missing from Sorenson's paper: iterate witnesses past p
		// while their pseudosquare still bounds n.
		for i := int(tables.PrimePi[p]) + 1; i < len(tables.Pseudosquares) && tables.Pseudosquares[i].Lp.LessOrEqual(n); i++ {
			r := montgomery.PowMod(uint128.FromUint64(uint64(tables.Primes128[i])), e, n)
			if r.Equal(minus1) {
				return true
			}
			if !r.Equal(one) {
				return false
			}
		}
	}

	return true
}
