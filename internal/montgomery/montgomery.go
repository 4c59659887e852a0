// Package montgomery implements modular exponentiation over odd
// moduli via Montgomery's REDC, dispatched by modulus width: one
// 64-bit context serves every m < 2^64 (both the m <= 2^62 and the
// 2^62 < m < 2^64 ranges of spec.md §4.1), and a math/big-backed
// 128-bit context serves m >= 2^64. Both contexts reduce every result
// fully into [0, m).
//
// Grounded on ring/modular_reduction.go's MForm/MRed/MRedParams (see
// context64.go) and, for the 128-bit widening, on ring/int.go's
// math/big-backed Int (see context128.go).
package montgomery

import "github.com/psieve-go/psqsieve/uint128"

// MaxQuarterRange64 is the modulus boundary spec.md §4.1 draws
// between the quarter-range and full-range 64-bit regimes. It is kept
// as a named boundary for documentation and testing even though this
// package's REDC implementation does not itself branch on it (see
// context64's doc comment).
const MaxQuarterRange64 = uint64(1) << 62

// PowMod returns base^exp mod m, for odd m and exp < m. It panics if m
// is even or if exp >= m — both are programming-contract violations
// per spec.md §4.1/§7, not recoverable runtime conditions.
func PowMod(base, exp, m uint128.Uint128) uint128.Uint128 {
	if !m.IsOdd() {
		panic("montgomery: modulus must be odd")
	}
	if !exp.Less(m) {
		panic("montgomery: exponent must be < modulus")
	}
	if m.Hi == 0 {
		_, b := base.DivMod64(m.Lo)
		return uint128.FromUint64(powMod64(b, exp.Uint64(), m.Lo))
	}
	return powMod128(base, exp, m)
}

// PowMod2 returns 2^exp mod m. spec.md §4.1 permits (but does not
// require) a dedicated shift-based path for base 2; routing through
// PowMod trivially satisfies its "must return the identical value"
// requirement, since it *is* the same computation.
func PowMod2(exp, m uint128.Uint128) uint128.Uint128 {
	return PowMod(uint128.FromUint64(2), exp, m)
}
