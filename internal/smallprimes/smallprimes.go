// Package smallprimes implements the small-prime generator collaborator
// spec.md §6 specifies only by contract: given an upper bound n <= 2^30,
// yield ascending odd primes <= n. It is deliberately the simplest
// correct thing — a classic odd-only sieve of Eratosthenes — since
// spec.md explicitly permits any correct implementation and treats a
// faster generator as optional, not required.
//
// Grounded on other_examples' fxtlabs primes.Sieve: same odd-only
// composite array (one bool per odd candidate) and sqrt(n) bound on the cross-off pass, adapted here to
// return only the odd primes (the caller already special-cases 2) and
// to operate on uint32 since this module's sieving primes never
// exceed 2^30.
package smallprimes

import "math"

// UpTo returns the ascending odd primes <= n. The caller is
// responsible for handling 2 separately; it is never included here.
func UpTo(n uint32) []uint32 {
	if n < 3 {
		return nil
	}
	// composite[i] tracks the odd candidate 2*i+3.
	length := (int(n)-3)/2 + 1
	composite := make([]bool, length)
	sqrtN := uint32(math.Sqrt(float64(n)))
	for i, p := 0, uint32(3); p <= sqrtN; p += 2 {
		if !composite[i] {
			for j := (int(p)*int(p) - 3) / 2; j < length; j += int(p) {
				composite[j] = true
			}
		}
		i++
	}
	primes := make([]uint32, 0, length)
	for i := 0; i < length; i++ {
		if !composite[i] {
			primes = append(primes, uint32(2*i+3))
		}
	}
	return primes
}
