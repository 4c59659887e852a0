package montgomery

import "math/bits"

// context64 holds the Montgomery-arithmetic constants for a fixed odd
// 64-bit modulus m. powMod64 builds a fresh context on every call; no
// context is shared between calls.
//
// The reduction itself (invModR64/toMontgomery/mulReduce/fromMontgomery)
// is ported from ring/modular_reduction.go's MRedParams/MForm/MRed/
// InvMForm: the same bits.Mul64-based REDC computed with a *positive*
// m^-1 mod 2^64, rather than the more commonly seen negative m'.
// toMontgomery and mulReduce additionally track the borrow/high word of
// their intermediate differences, so moduli above 2^63 do not wrap.
//
// One context serves both of spec.md's 64-bit regimes ("quarter-range"
// m <= 2^62, and full-range 2^62 < m < 2^64): the REDC identity holds
// for any odd m < 2^64 regardless of how close m sits to the word
// boundary. hurchalla's C++ library (which the original implementation
// wraps) specializes the quarter-range case only to save a branch in
// the reduction step — a performance concern, not a correctness one —
// so there is nothing to duplicate here.
type context64 struct {
	m     uint64
	qInv  uint64 // m^-1 mod 2^64
	bHi   uint64 // Barrett params for toMontgomery: floor(2^128/m) split
	bLo   uint64
	one   uint64 // Montgomery residue of 1, i.e. 2^64 mod m
}

func newContext64(m uint64) context64 {
	bHi, bLo := barrettParams64(m)
	c := context64{m: m, qInv: invModR64(m), bHi: bHi, bLo: bLo}
	c.one = c.toMontgomery(1)
	return c
}

// invModR64 returns m^-1 mod 2^64 for odd m.
//
// For odd m, Euler's theorem gives m^(2^63) ≡ 1 (mod 2^64) (the group
// of units mod 2^64 has order 2^63), so m^-1 mod 2^64 =
// m^(2^63 - 1) mod 2^64, and 2^63-1 in binary is 63 consecutive
// one-bits: m^(2^63-1) = prod_{i=0}^{62} m^(2^i). The loop below
// accumulates exactly that product: qInv starts at m^(2^0), x is
// squared each round to walk through m^(2^1), m^(2^2), ....
func invModR64(m uint64) uint64 {
	qInv := uint64(1)
	x := m
	for i := 0; i < 63; i++ {
		qInv *= x
		x *= x
	}
	return qInv
}

// barrettParams64 returns floor(2^128/m) split into high/low 64-bit
// halves, used by toMontgomery to compute a*2^64 mod m without a true
// 128-bit division.
func barrettParams64(m uint64) (hi, lo uint64) {
	// floor((2^128-1)/m), then bump by one unless the remainder
	// already accounts for the extra 1 — see uint128.Uint128 for
	// why 2^128 itself isn't representable directly.
	maxHi, maxLo := ^uint64(0), ^uint64(0)
	qHi, rHi := bits.Div64(0, maxHi, m)
	qLo, rLo := bits.Div64(rHi, maxLo, m)
	if rLo+1 == m {
		qLo++
		if qLo == 0 {
			qHi++
		}
	}
	return qHi, qLo
}

// toMontgomery computes a*2^64 mod m for a < m, ported from
// ring/modular_reduction.go's MForm.
func (c context64) toMontgomery(a uint64) uint64 {
	mhi, _ := bits.Mul64(a, c.bLo)
	phi, plo := bits.Mul64(a*c.bHi+mhi, c.m)
	r, borrow := bits.Sub64(0, plo, 0)
	rhi, _ := bits.Sub64(a, phi, borrow)
	if rhi != 0 || r >= c.m {
		r -= c.m
	}
	return r
}

// fromMontgomery computes a*2^-64 mod m, ported from
// ring/modular_reduction.go's InvMForm.
func (c context64) fromMontgomery(a uint64) uint64 {
	r, _ := bits.Mul64(a*c.qInv, c.m)
	r = c.m - r
	if r >= c.m {
		r -= c.m
	}
	return r
}

// mulReduce computes x*y*2^-64 mod m for Montgomery-form x, y, ported
// from ring/modular_reduction.go's MRed.
func (c context64) mulReduce(x, y uint64) uint64 {
	ahi, alo := bits.Mul64(x, y)
	r := alo * c.qInv
	h, _ := bits.Mul64(r, c.m)
	res, borrow := bits.Sub64(ahi, h, 0)
	if borrow != 0 {
		res += c.m
	}
	return res
}

// powMod64 returns base^exp mod m for odd m < 2^64 and exp < m, via
// left-to-right square-and-multiply entirely in the Montgomery
// domain.
func powMod64(base, exp, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	c := newContext64(m)
	baseM := c.toMontgomery(base % m)
	acc := c.one
	for i := bits.Len64(exp); i > 0; i-- {
		acc = c.mulReduce(acc, acc)
		if exp&(1<<uint(i-1)) != 0 {
			acc = c.mulReduce(acc, baseM)
		}
	}
	return c.fromMontgomery(acc)
}
