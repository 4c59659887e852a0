// Package uint128 implements a minimal 128-bit unsigned integer, built
// from two 64-bit limbs with carry-propagating primitives from
// math/bits. It exists because the target algorithm operates on
// intervals whose upper bound can reach roughly 1.7e33, well beyond
// the native uint64 range, and no compiler intrinsic 128-bit type is
// available in Go.
//
// The API intentionally mirrors a big-number "Int" wrapper (see
// DESIGN.md): constructors named FromUint64/FromString, a String
// method for decimal I/O, and a Cmp method for ordering — but backed
// by two uint64 limbs instead of math/big, since this type is used in
// the innermost sieve loop where allocation-free arithmetic matters.
package uint128

import (
	"fmt"
	"math"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer, Hi*2^64 + Lo.
type Uint128 struct {
	Hi, Lo uint64
}

// Zero is the additive identity.
var Zero = Uint128{}

// FromUint64 widens v to a Uint128.
func FromUint64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// FromUint64s builds a Uint128 from explicit high/low limbs.
func FromUint64s(hi, lo uint64) Uint128 {
	return Uint128{Hi: hi, Lo: lo}
}

// FromString parses an unsigned base-10 integer literal into a
// Uint128. It returns an error if s is empty or contains a
// non-digit character, or if the value overflows 128 bits.
func FromString(s string) (Uint128, error) {
	if s == "" {
		return Zero, fmt.Errorf("uint128: empty string")
	}
	var v Uint128
	for _, c := range s {
		if c < '0' || c > '9' {
			return Zero, fmt.Errorf("uint128: invalid digit %q in %q", c, s)
		}
		next, overflow := v.mulOverflows10()
		if overflow {
			return Zero, fmt.Errorf("uint128: %q overflows 128 bits", s)
		}
		d := uint64(c - '0')
		sum, carry := bits.Add64(next.Lo, d, 0)
		next.Lo = sum
		next.Hi += carry
		if carry != 0 && next.Hi == 0 {
			return Zero, fmt.Errorf("uint128: %q overflows 128 bits", s)
		}
		v = next
	}
	return v, nil
}

// mulOverflows10 returns v*10 and whether that product overflowed 128 bits.
func (v Uint128) mulOverflows10() (Uint128, bool) {
	hi1, lo := bits.Mul64(v.Lo, 10)
	overflowHi, hi2 := bits.Mul64(v.Hi, 10)
	if overflowHi != 0 {
		return Uint128{}, true
	}
	hi, carry := bits.Add64(hi1, hi2, 0)
	if carry != 0 {
		return Uint128{}, true
	}
	return Uint128{Hi: hi, Lo: lo}, false
}

// String renders v in base 10.
func (v Uint128) String() string {
	if v.IsZero() {
		return "0"
	}
	var buf [40]byte
	i := len(buf)
	for !v.IsZero() {
		var digit uint64
		v, digit = v.DivMod64(10)
		i--
		buf[i] = byte('0' + digit)
	}
	return string(buf[i:])
}

// IsZero reports whether v is 0.
func (v Uint128) IsZero() bool {
	return v.Hi == 0 && v.Lo == 0
}

// Cmp returns -1, 0, or +1 as v is less than, equal to, or greater
// than w.
func (v Uint128) Cmp(w Uint128) int {
	switch {
	case v.Hi != w.Hi:
		if v.Hi < w.Hi {
			return -1
		}
		return 1
	case v.Lo != w.Lo:
		if v.Lo < w.Lo {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Less reports whether v < w.
func (v Uint128) Less(w Uint128) bool { return v.Cmp(w) < 0 }

// LessOrEqual reports whether v <= w.
func (v Uint128) LessOrEqual(w Uint128) bool { return v.Cmp(w) <= 0 }

// Equal reports whether v == w.
func (v Uint128) Equal(w Uint128) bool { return v.Hi == w.Hi && v.Lo == w.Lo }

// Add returns v + w, wrapping modulo 2^128.
func (v Uint128) Add(w Uint128) Uint128 {
	lo, carry := bits.Add64(v.Lo, w.Lo, 0)
	hi, _ := bits.Add64(v.Hi, w.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// AddUint64 returns v + w, wrapping modulo 2^128.
func (v Uint128) AddUint64(w uint64) Uint128 {
	lo, carry := bits.Add64(v.Lo, w, 0)
	hi := v.Hi + carry
	return Uint128{Hi: hi, Lo: lo}
}

// Sub returns v - w, wrapping modulo 2^128. The caller must ensure
// v >= w; this package has no signed representation.
func (v Uint128) Sub(w Uint128) Uint128 {
	lo, borrow := bits.Sub64(v.Lo, w.Lo, 0)
	hi, _ := bits.Sub64(v.Hi, w.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

// SubUint64 returns v - w. The caller must ensure v >= w.
func (v Uint128) SubUint64(w uint64) Uint128 {
	lo, borrow := bits.Sub64(v.Lo, w, 0)
	hi := v.Hi - borrow
	return Uint128{Hi: hi, Lo: lo}
}

// Mul64 returns v * w truncated to 128 bits. The caller is
// responsible for knowing the true product fits in 128 bits; this is
// always the case in this module, since every multiplication here is
// between a candidate/bound already known to lie inside [0, stop] and
// a small sieving prime.
func (v Uint128) Mul64(w uint64) Uint128 {
	hi1, lo := bits.Mul64(v.Lo, w)
	hi2 := v.Hi * w
	hi := hi1 + hi2
	return Uint128{Hi: hi, Lo: lo}
}

// Mul64x64 returns the full 128-bit product of two uint64 values.
func Mul64x64(a, b uint64) Uint128 {
	hi, lo := bits.Mul64(a, b)
	return Uint128{Hi: hi, Lo: lo}
}

// DivMod64 returns v/w and v%w for a uint64 divisor w != 0.
func (v Uint128) DivMod64(w uint64) (q Uint128, r uint64) {
	qHi, rHi := bits.Div64(0, v.Hi, w)
	qLo, rLo := bits.Div64(rHi, v.Lo, w)
	return Uint128{Hi: qHi, Lo: qLo}, rLo
}

// Lsh returns v << n for 0 <= n < 128.
func (v Uint128) Lsh(n uint) Uint128 {
	switch {
	case n == 0:
		return v
	case n >= 128:
		return Zero
	case n >= 64:
		return Uint128{Hi: v.Lo << (n - 64), Lo: 0}
	default:
		return Uint128{Hi: (v.Hi << n) | (v.Lo >> (64 - n)), Lo: v.Lo << n}
	}
}

// Rsh returns v >> n for 0 <= n < 128.
func (v Uint128) Rsh(n uint) Uint128 {
	switch {
	case n == 0:
		return v
	case n >= 128:
		return Zero
	case n >= 64:
		return Uint128{Hi: 0, Lo: v.Hi >> (n - 64)}
	default:
		return Uint128{Hi: v.Hi >> n, Lo: (v.Lo >> n) | (v.Hi << (64 - n))}
	}
}

// Mod8 returns v mod 8, the only modulus the pseudosquares test needs
// (condition n ≡ 1 or 5 mod 8). Only the low limb's low 3 bits matter.
func (v Uint128) Mod8() uint64 { return v.Lo & 7 }

// IsOdd reports whether v is odd.
func (v Uint128) IsOdd() bool { return v.Lo&1 == 1 }

// Uint64 truncates v to its low 64 bits. Callers must only use this
// when v is already known to fit (e.g. after a sqrt or a bound
// derived to stay within uint64 range).
func (v Uint128) Uint64() uint64 { return v.Lo }

// Float64 approximates v as a float64. Precision is limited to ~53
// bits of mantissa; this is only used for estimates (the automatic
// thread count and the seed of Sqrt), never for exact counting.
func (v Uint128) Float64() float64 {
	return float64(v.Hi)*18446744073709551616.0 + float64(v.Lo)
}

// Sqrt returns floor(sqrt(v)), computed via a float64 seed refined by
// integer Newton iteration so the ~53-bit mantissa of the seed never
// leaks into the result.
func (v Uint128) Sqrt() uint64 {
	if v.IsZero() {
		return 0
	}
	x := uint64(math.Sqrt(v.Float64()))
	// Newton's method on f(x) = x^2 - v, starting from the float
	// seed; two or three corrective steps suffice since the seed
	// is already within a few ULPs of the true root.
	for {
		if x == 0 {
			x = 1
		}
		sq := Mul64x64(x, x)
		if sq.LessOrEqual(v) {
			next := Mul64x64(x+1, x+1)
			if next.Less(v) || next.Equal(v) {
				x++
				continue
			}
			return x
		}
		// x is too large; step down using the standard integer
		// Newton update y = (x + v/x) / 2.
		q, _ := v.DivMod64(x)
		y := (x + q.Lo) / 2
		if y >= x {
			y = x - 1
		}
		x = y
	}
}
