// Command psqsieve is the CLI front end for the pseudosquares prime
// sieve: "psqsieve [OPTIONS] [START] STOP".
//
// Flag parsing and the stdout banner/summary format are grounded on
// original_source/src/CmdOptions.hpp and main.cpp, simplified per
// spec.md §1's explicit scope cut: arithmetic-expression evaluation of
// numeric arguments is out of scope here, so START/STOP/--dist/--number
// accept plain decimal integers rather than expressions. The flag
// package is used rather than a third-party CLI library because
// nothing in the example pack reaches for one for a program this
// small (see DESIGN.md).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/psieve-go/psqsieve"
	"github.com/psieve-go/psqsieve/uint128"
)

const version = "psqsieve 1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("psqsieve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printHelp(stderr) }

	var (
		print    bool
		threads  int
		dist     string
		number   string
		showHelp bool
		showVer  bool
	)
	fs.BoolVar(&showHelp, "help", false, "print help and exit")
	fs.BoolVar(&showHelp, "h", false, "print help and exit (shorthand)")
	fs.BoolVar(&showVer, "version", false, "print version and exit")
	fs.BoolVar(&showVer, "v", false, "print version and exit (shorthand)")
	fs.BoolVar(&print, "print", false, "print primes instead of only counting them")
	fs.BoolVar(&print, "p", false, "print primes instead of only counting them (shorthand)")
	fs.IntVar(&threads, "threads", 0, "number of threads, 0 = auto")
	fs.IntVar(&threads, "t", 0, "number of threads, 0 = auto (shorthand)")
	fs.StringVar(&dist, "dist", "", "stop = start + DIST")
	fs.StringVar(&dist, "d", "", "stop = start + DIST (shorthand)")
	fs.StringVar(&number, "number", "", "an additional START/STOP argument")

	if len(args) == 0 {
		printHelp(stderr)
		return 1
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if showHelp {
		printHelp(stdout)
		return 0
	}
	if showVer {
		fmt.Fprintln(stdout, version)
		return 0
	}

	numbers := fs.Args()
	if number != "" {
		numbers = append(numbers, number)
	}

	start, stop, err := resolveBounds(numbers, dist)
	if err != nil {
		fmt.Fprintln(stderr, "psqsieve:", err)
		return 1
	}

	fmt.Fprintf(stdout, "Sieving primes inside [%s, %s]\n", start, stop)

	var printErr error
	onPrime := func(n uint128.Uint128) {
		if _, werr := fmt.Fprintln(stdout, n); werr != nil {
			printErr = werr
		}
	}
	var cb func(uint128.Uint128)
	if print {
		cb = onPrime
	}

	t0 := time.Now()
	count, report, err := psqsieve.Sieve(start, stop, threads, cb, true)
	if err != nil {
		fmt.Fprintln(stderr, "psqsieve:", err)
		return 1
	}
	if printErr != nil {
		fmt.Fprintln(stderr, "psqsieve:", printErr)
		return 1
	}
	elapsed := time.Since(t0).Seconds()

	if report != nil {
		fmt.Fprintf(stdout, "Thread dist: %s\n", report.ThreadDist)
		fmt.Fprintf(stdout, "Threads: %d\n", report.Threads)
		fmt.Fprintf(stdout, "Sieve size: %d bytes\n", report.SieveBytes)
		fmt.Fprintf(stdout, "delta: %d\n", report.Delta)
		fmt.Fprintf(stdout, "s: %d (max sieving prime)\n", report.S)
		fmt.Fprintf(stdout, "p: %d (pseudosquare prime)\n", report.P)
		fmt.Fprintf(stdout, "Lp: %s (pseudosquare)\n", report.Lp)
		fmt.Fprintf(stdout, "Config fingerprint: %s\n", report.Fingerprint)
		fmt.Fprintf(stdout, "Thread stats: mean=%.3fs max=%.3fs stddev=%.3fs\n",
			report.MeanSecs, report.MaxSecs, report.StdDevSecs)
	}
	fmt.Fprintf(stdout, "Primes: %d\n", count)
	fmt.Fprintf(stdout, "Seconds: %.3f\n", elapsed)
	return 0
}

// resolveBounds interprets the positional/flag-supplied numeric
// arguments as [START] STOP, with --dist=N meaning stop = start + N
// (a lone number is then taken as START).
func resolveBounds(numbers []string, dist string) (start, stop uint128.Uint128, err error) {
	switch len(numbers) {
	case 0:
		return uint128.Zero, uint128.Zero, fmt.Errorf("missing STOP argument")
	case 1:
		stop, err = uint128.FromString(numbers[0])
		if err != nil {
			return uint128.Zero, uint128.Zero, err
		}
		start = uint128.Zero
	default:
		start, err = uint128.FromString(numbers[0])
		if err != nil {
			return uint128.Zero, uint128.Zero, err
		}
		stop, err = uint128.FromString(numbers[1])
		if err != nil {
			return uint128.Zero, uint128.Zero, err
		}
	}

	if dist != "" {
		d, derr := uint128.FromString(dist)
		if derr != nil {
			return uint128.Zero, uint128.Zero, derr
		}
		if len(numbers) == 1 {
			start = stop
		}
		stop = start.Add(d)
	}

	return start, stop, nil
}

func printHelp(w *os.File) {
	fmt.Fprint(w, `Usage: psqsieve [OPTIONS] [START] STOP

Count (or print) the primes inside [START, STOP] using Sorenson's
pseudosquares prime sieve.

Options:
  -p, --print        print primes instead of counting
  -t, --threads=N    number of threads, 0 = auto
  -d, --dist=N       stop = start + N
      --number=N     an additional START/STOP argument
  -h, --help         print this help
  -v, --version      print version
`)
}
