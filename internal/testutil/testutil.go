// Package testutil holds small helpers shared by this module's test
// files, generic over the integer width each caller happens to be
// working in (uint32 sieving primes, uint64 segment offsets), the way
// utils/structs's table-driven tests parameterize a single check over
// several element widths via golang.org/x/exp/constraints.
package testutil

import "golang.org/x/exp/constraints"

// IsPrimeTrialDivision reports whether n is prime by trial division,
// used as the independent oracle other packages' tests check the
// sieve and the primality test against.
func IsPrimeTrialDivision[T constraints.Integer](n T) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := T(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}
