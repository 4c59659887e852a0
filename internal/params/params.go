// Package params derives and validates the algorithm parameters
// spec.md §3 and §4.5 name: the segment width Δ, the maximum sieving
// prime s, and the witness-cap prime p (with its pseudosquare L_p).
//
// The Literal/Parameters split and the NewParametersFromLiteral
// constructor are grounded on core/rlwe's ParametersLiteral/Parameters
// pattern: a small, publicly-settable literal validated once into an
// immutable, internally consistent Parameters value. Δ and s are
// derived from stop following original_source/src/
// pseudosquares_prime_sieve.cpp's get_segment_size/initialize, using
// github.com/ALTree/bigfloat for the fractional power stop^(1/4.5)
// since stop itself can exceed float64's exact-integer range.
package params

import (
	"fmt"
	"math"
	"math/big"
	"slices"

	"github.com/ALTree/bigfloat"
	"github.com/google/go-cmp/cmp"
	"github.com/zeebo/blake3"

	"github.com/psieve-go/psqsieve/internal/tables"
	"github.com/psieve-go/psqsieve/uint128"
)

// defaultSegmentBytes is the default sieve-array size in bytes, chosen
// to be cache-resident; defaultMinDelta is that same default expressed
// in integers (one byte covers 16 consecutive integers).
const (
	defaultSegmentBytes = 256 << 10
	defaultMinDelta     = defaultSegmentBytes * 16
)

// Literal is the user-facing, unchecked description of a sieve run.
// Stop is its only required field; everything else is derived.
type Literal struct {
	Stop uint128.Uint128
}

// Parameters is the validated, immutable parameter set a sieve run
// computes once and shares read-only across all workers.
type Parameters struct {
	stop  uint128.Uint128
	delta uint64
	s     uint64
	p     uint32
	lp    uint128.Uint128
}

// NewParametersFromLiteral derives Δ, s, p, and L_p from lit.Stop and
// validates the hard precondition stop/s < L_373. It returns an error
// (spec.md §7's "configuration error") rather than panicking, since
// an out-of-window stop is a caller mistake to be reported, not a
// programming-contract violation.
func NewParametersFromLiteral(lit Literal) (Parameters, error) {
	stop := lit.Stop

	delta := segmentSize(stop)
	s := maxSievingPrime(delta)

	sRatio, _ := stop.DivMod64(s)
	if sRatio.Cmp(tables.MaxLp) >= 0 {
		return Parameters{}, fmt.Errorf("params: stop/s must be < %s (max known pseudosquare L_373); got stop/s = %s", tables.MaxLp, sRatio)
	}

	var p uint32
	var lp uint128.Uint128
	for _, pss := range tables.Pseudosquares {
		p = pss.P
		lp = pss.Lp
		if pss.Lp.Cmp(sRatio) > 0 {
			break
		}
	}

	return Parameters{stop: stop, delta: delta, s: s, p: p, lp: lp}, nil
}

// segmentSize returns Δ = max(defaultMinDelta, floor(stop^(1/4.5))),
// computed at bigfloat precision since stop may exceed 2^64.
func segmentSize(stop uint128.Uint128) uint64 {
	stopBig := new(big.Float).SetPrec(128)
	stopBig.SetInt(uint128ToBigInt(stop))

	root := bigfloat.Pow(stopBig, big.NewFloat(1.0/4.5))
	rootU64, _ := root.Uint64()

	return slices.Max([]uint64{rootU64, defaultMinDelta})
}

// maxSievingPrime returns s = Δ · max(1, log Δ), the chosen resolution
// of spec.md §9's open question between s = Δ·log(stop) and
// s = Δ·log(Δ) — this module uses the latter, matching
// original_source's initialize().
func maxSievingPrime(delta uint64) uint64 {
	logDelta := math.Log(float64(delta))
	if logDelta < 1 {
		logDelta = 1
	}
	return uint64(float64(delta) * logDelta)
}

func uint128ToBigInt(v uint128.Uint128) *big.Int {
	b := new(big.Int).SetUint64(v.Hi)
	b.Lsh(b, 64)
	b.Or(b, new(big.Int).SetUint64(v.Lo))
	return b
}

// Stop returns the validated upper bound.
func (p Parameters) Stop() uint128.Uint128 { return p.stop }

// Delta returns the segment width Δ, in integers.
func (p Parameters) Delta() uint64 { return p.delta }

// S returns the maximum sieving prime s.
func (p Parameters) S() uint64 { return p.s }

// P returns the witness-cap prime.
func (p Parameters) P() uint32 { return p.p }

// Lp returns the pseudosquare associated with P.
func (p Parameters) Lp() uint128.Uint128 { return p.lp }

// SqrtStop returns floor(sqrt(stop)).
func (p Parameters) SqrtStop() uint64 { return p.stop.Sqrt() }

// Equal reports whether p and other were derived from the same Stop
// and so carry identical Δ/s/p/L_p values.
func (p Parameters) Equal(other Parameters) bool {
	return cmp.Equal(p.stop, other.stop) &&
		p.delta == other.delta &&
		p.s == other.s &&
		p.p == other.p &&
		cmp.Equal(p.lp, other.lp)
}

// Fingerprint returns a short hex digest identifying this parameter
// set, printed in verbose mode so two runs can be compared without
// reprinting every field.
func (p Parameters) Fingerprint() string {
	h := blake3.New()
	fmt.Fprintf(h, "%d:%d:%d:%d:%d:%d", p.stop.Hi, p.stop.Lo, p.delta, p.s, p.p, p.lp.Hi)
	fmt.Fprintf(h, ":%d", p.lp.Lo)
	return fmt.Sprintf("%x", h.Sum(nil)[:8])
}
