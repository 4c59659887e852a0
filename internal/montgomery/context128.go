package montgomery

import (
	"math/big"

	"github.com/psieve-go/psqsieve/uint128"
)

// context128 performs Montgomery reduction for moduli wider than one
// machine word (m > 2^64). Unlike context64, which stays entirely on
// math/bits-based carrying arithmetic, the 128x128->256-bit products
// REDC needs here are assembled with math/big.Int.
//
// This mirrors the division of labor in ring/int.go: native-word
// modular arithmetic (ring/modular_reduction.go) is hand-rolled on
// math/bits for speed, while anything wider than a machine word
// (ring.Int) is built directly on math/big rather than reimplementing
// wide-multiply carry chains by hand. The REDC identity itself is
// unchanged from context64 — only the arithmetic backing it widens.
type context128 struct {
	m         *big.Int
	r         *big.Int // 2^128
	rMask     *big.Int // 2^128 - 1
	mPrimeNeg *big.Int // R - (m^-1 mod R)
	one       uint128.Uint128
}

func newContext128(m uint128.Uint128) context128 {
	mBig := toBig(m)
	r := new(big.Int).Lsh(big.NewInt(1), 128)
	rMask := new(big.Int).Sub(r, big.NewInt(1))
	mInv := new(big.Int).ModInverse(mBig, r)
	mPrimeNeg := new(big.Int).Sub(r, mInv)

	c := context128{m: mBig, r: r, rMask: rMask, mPrimeNeg: mPrimeNeg}
	c.one = c.toMontgomery(toBig(uint128.FromUint64(1)))
	return c
}

func toBig(v uint128.Uint128) *big.Int {
	b := new(big.Int).SetUint64(v.Hi)
	b.Lsh(b, 64)
	b.Or(b, new(big.Int).SetUint64(v.Lo))
	return b
}

func fromBig(b *big.Int) uint128.Uint128 {
	mask64 := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(b, mask64).Uint64()
	hi := new(big.Int).Rsh(b, 64).Uint64()
	return uint128.FromUint64s(hi, lo)
}

// redc computes t*2^-128 mod m for 0 <= t < m*R.
func (c context128) redc(t *big.Int) uint128.Uint128 {
	tModR := new(big.Int).And(t, c.rMask)
	q := new(big.Int).Mul(tModR, c.mPrimeNeg)
	q.And(q, c.rMask)

	res := new(big.Int).Mul(q, c.m)
	res.Add(res, t)
	res.Rsh(res, 128)
	if res.Cmp(c.m) >= 0 {
		res.Sub(res, c.m)
	}
	return fromBig(res)
}

func (c context128) toMontgomery(aBig *big.Int) uint128.Uint128 {
	a := new(big.Int).Mod(aBig, c.m)
	a.Mul(a, c.r)
	a.Mod(a, c.m)
	return fromBig(a)
}

func (c context128) mulReduce(xM, yM uint128.Uint128) uint128.Uint128 {
	t := new(big.Int).Mul(toBig(xM), toBig(yM))
	return c.redc(t)
}

func (c context128) fromMontgomery(aM uint128.Uint128) uint128.Uint128 {
	return c.redc(toBig(aM))
}

// bit returns bit i (0 = least significant) of v, for i in [0, 128).
func bit(v uint128.Uint128, i int) uint64 {
	if i >= 64 {
		return (v.Hi >> uint(i-64)) & 1
	}
	return (v.Lo >> uint(i)) & 1
}

// bitLen returns the index (1-based) of the highest set bit of v, or
// 0 if v is zero — the 128-bit analogue of bits.Len64.
func bitLen(v uint128.Uint128) int {
	if v.Hi != 0 {
		return 64 + bitLen64(v.Hi)
	}
	return bitLen64(v.Lo)
}

func bitLen64(x uint64) int {
	n := 0
	for x != 0 {
		n++
		x >>= 1
	}
	return n
}

// powMod128 returns base^exp mod m for odd m > 2^64 and exp < m, via
// left-to-right square-and-multiply in the Montgomery domain.
func powMod128(base, exp, m uint128.Uint128) uint128.Uint128 {
	c := newContext128(m)
	baseM := c.toMontgomery(toBig(base))
	acc := c.one
	for i := bitLen(exp); i > 0; i-- {
		acc = c.mulReduce(acc, acc)
		if bit(exp, i-1) != 0 {
			acc = c.mulReduce(acc, baseM)
		}
	}
	return c.fromMontgomery(acc)
}
