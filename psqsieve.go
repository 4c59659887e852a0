// Package psqsieve implements J. P. Sorenson's Pseudosquares Prime
// Sieve: a segmented, odd-only bit sieve fused with a pseudosquare-based
// deterministic primality test for the surviving candidates. It counts
// (and optionally emits) the primes in the closed interval [start,
// stop]. Each worker's memory is dominated by its segment of
// max(4194304, stop^(1/4.5)) integers (one byte per 16) and its
// sieving primes. The validity ceiling on stop is not a fixed constant: it falls
// out of the chosen Δ/s formulas and the largest tabulated pseudosquare
// (internal/params), and NewParametersFromLiteral rejects any stop
// beyond it.
//
// The package is organized bottom-up: uint128 supplies the 128-bit
// arithmetic the algorithm's bounds require; internal/montgomery
// performs the modular exponentiation the primality test depends on;
// internal/tables, internal/bitsieve, internal/sieveprimes, and
// internal/primalitytest implement the algorithm's building blocks;
// internal/params derives the run's Δ/s/p parameters; internal/engine
// runs the per-worker segment loop; internal/partition fans work out
// across goroutines and reduces the per-worker counts.
//
// Perfect-power removal, which Sorenson's paper requires beyond a
// certain bound, is not implemented: within this module's validity
// window (bounded by the largest tabulated pseudosquare, L_373) no
// pseudosquare-passing perfect power exists, so the omission does not
// affect correctness here, only the upper edge of the window itself.
package psqsieve

import (
	"fmt"

	"github.com/psieve-go/psqsieve/internal/bitsieve"
	"github.com/psieve-go/psqsieve/internal/params"
	"github.com/psieve-go/psqsieve/internal/partition"
	"github.com/psieve-go/psqsieve/uint128"
)

// Report carries the verbose-mode diagnostics a caller may want to
// print alongside the count; it is nil unless verbose is requested.
// Delta/SieveBytes/S/P/Lp/Fingerprint reproduce original_source's
// initialize() parameter banner ("Sieve size", "delta", "s", "p",
// "Lp"); Threads/ThreadDist reproduce its thread-partitioning banner;
// MeanSecs/MaxSecs/StdDevSecs are this module's own addition, the
// per-worker wall-clock spread montanaflynn/stats summarizes.
type Report struct {
	Delta       uint64
	SieveBytes  uint64
	S           uint64
	P           uint32
	Lp          uint128.Uint128
	Fingerprint string
	Threads     int
	ThreadDist  uint128.Uint128
	MeanSecs    float64
	MaxSecs     float64
	StdDevSecs  float64
}

// Sieve counts the primes in [start, stop], optionally invoking
// onPrime once per prime found in ascending order (only when threads
// is resolved to 1 — see Threads) and optionally returning a verbose
// Report. threads follows spec.md §4.5: 0 means auto-tune.
//
// Sieve returns an error if stop exceeds the module's validity window,
// i.e. if the derived stop/s ratio does not stay below the largest
// tabulated pseudosquare.
func Sieve(start, stop uint128.Uint128, threads int, onPrime func(uint128.Uint128), verbose bool) (uint64, *Report, error) {
	if start.Cmp(stop) > 0 {
		return 0, nil, nil
	}

	p, err := params.NewParametersFromLiteral(params.Literal{Stop: stop})
	if err != nil {
		return 0, nil, fmt.Errorf("psqsieve: %w", err)
	}

	t := partition.ThreadCount(threads, start, stop, onPrime != nil)
	count, st, err := partition.Run(p, start, stop, t, onPrime)
	if err != nil {
		return 0, nil, fmt.Errorf("psqsieve: %w", err)
	}

	var report *Report
	if verbose {
		dist, _ := stop.Sub(start).AddUint64(1).DivMod64(uint64(t))
		report = &Report{
			Delta:       p.Delta(),
			SieveBytes:  p.Delta() / uint64(bitsieve.NumbersPerByte()),
			S:           p.S(),
			P:           p.P(),
			Lp:          p.Lp(),
			Fingerprint: p.Fingerprint(),
			Threads:     st.Threads,
			ThreadDist:  dist,
			MeanSecs:    st.MeanSecs,
			MaxSecs:     st.MaxSecs,
			StdDevSecs:  st.StdDev,
		}
	}
	return count, report, nil
}
