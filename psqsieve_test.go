package psqsieve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psieve-go/psqsieve/uint128"
)

func u(v uint64) uint128.Uint128 { return uint128.FromUint64(v) }

func TestSieveKnownCounts(t *testing.T) {
	cases := []struct {
		stop uint64
		want uint64
	}{
		{10, 4},
		{100, 25},
		{1000000, 78498},
	}
	for _, c := range cases {
		count, report, err := Sieve(u(0), u(c.stop), 1, nil, false)
		require.NoError(t, err)
		assert.Nil(t, report)
		assert.Equal(t, c.want, count, "stop=%d", c.stop)
	}
}

func TestSieveStartAfterStopReturnsZero(t *testing.T) {
	count, report, err := Sieve(u(100), u(10), 0, nil, false)
	require.NoError(t, err)
	assert.Nil(t, report)
	assert.Zero(t, count)
}

func TestSieveEmitsPrimesInAscendingOrderUpTo30(t *testing.T) {
	var seen []uint64
	count, _, err := Sieve(u(0), u(30), 0, func(n uint128.Uint128) { seen = append(seen, n.Lo) }, false)
	require.NoError(t, err)
	want := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	assert.Equal(t, uint64(len(want)), count)
	assert.Equal(t, want, seen)
}

func TestSieveVerboseReportIsPopulated(t *testing.T) {
	count, report, err := Sieve(u(0), u(1000000), 2, nil, true)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, uint64(78498), count)
	assert.Greater(t, report.Delta, uint64(0))
	assert.Greater(t, report.SieveBytes, uint64(0))
	assert.Greater(t, report.S, uint64(0))
	assert.GreaterOrEqual(t, report.P, uint32(2))
	assert.False(t, report.Lp.IsZero())
	assert.NotEmpty(t, report.Fingerprint)
	assert.Equal(t, 2, report.Threads)
	assert.GreaterOrEqual(t, report.MeanSecs, 0.0)
	assert.GreaterOrEqual(t, report.MaxSecs, 0.0)
	assert.GreaterOrEqual(t, report.StdDevSecs, 0.0)
}

// TestSieveKnownCountsAcrossValidityWindow seeds spec.md §8's S4-S8
// scenarios; S7 and S8 push start/stop past 2^64 and so exercise
// internal/montgomery's 128-bit Montgomery path
// (internal/montgomery/context128.go) end to end through Sieve.
func TestSieveKnownCountsAcrossValidityWindow(t *testing.T) {
	tenPow := func(exp uint) uint128.Uint128 {
		v, err := uint128.FromString("1" + strings.Repeat("0", int(exp)))
		require.NoError(t, err)
		return v
	}

	cases := []struct {
		name  string
		start uint128.Uint128
		want  uint64
	}{
		{"S4", u(0), 5761455},
		{"S5", tenPow(10), 43427},
		{"S6", tenPow(15), 28845},
		{"S7", tenPow(20), 21632},
		{"S8", tenPow(33), 13284},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var stop uint128.Uint128
			if c.name == "S4" {
				stop = tenPow(8)
			} else {
				stop = c.start.AddUint64(1000000)
			}

			count, report, err := Sieve(c.start, stop, 1, nil, false)
			require.NoError(t, err)
			assert.Nil(t, report)
			assert.Equal(t, c.want, count, "%s: [%s, %s]", c.name, c.start, stop)
		})
	}
}

func TestSieveRejectsOutOfWindowStop(t *testing.T) {
	huge, err := uint128.FromString("100000000000000000000000000000000000")
	require.NoError(t, err)
	_, _, err = Sieve(u(0), huge, 1, nil, false)
	assert.Error(t, err)
}

// TestSieveConcatenationProperty checks that splitting [0, stop] into
// two adjacent closed subranges and summing their counts matches
// sieving the whole range in one call.
func TestSieveConcatenationProperty(t *testing.T) {
	whole, _, err := Sieve(u(0), u(50000), 1, nil, false)
	require.NoError(t, err)

	left, _, err := Sieve(u(0), u(25000), 1, nil, false)
	require.NoError(t, err)
	right, _, err := Sieve(u(25001), u(50000), 1, nil, false)
	require.NoError(t, err)

	assert.Equal(t, whole, left+right)
}
