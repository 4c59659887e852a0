package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psieve-go/psqsieve/internal/params"
	"github.com/psieve-go/psqsieve/uint128"
)

func TestThreadCountPrintModeForcesOne(t *testing.T) {
	got := ThreadCount(8, uint128.FromUint64(0), uint128.FromUint64(1000000), true)
	assert.Equal(t, 1, got)
}

func TestThreadCountHonorsExplicitRequest(t *testing.T) {
	got := ThreadCount(4, uint128.FromUint64(0), uint128.FromUint64(1000000), false)
	assert.Equal(t, 4, got)
}

func TestThreadCountAutoTunesAtLeastOne(t *testing.T) {
	got := ThreadCount(0, uint128.FromUint64(0), uint128.FromUint64(100), false)
	assert.GreaterOrEqual(t, got, 1)
}

func TestThreadCountAutoTuneNeverExceedsHardware(t *testing.T) {
	got := ThreadCount(0, uint128.FromUint64(0), uint128.FromUint64(1000000000000), false)
	assert.LessOrEqual(t, got, hardwareParallelism())
}

func TestSubrangesCoverWithoutGapsOrOverlap(t *testing.T) {
	start, stop := uint128.FromUint64(0), uint128.FromUint64(999)
	bounds := subranges(start, stop, 7)

	require.NotEmpty(t, bounds)
	assert.True(t, bounds[0].lo.Equal(start))
	assert.True(t, bounds[len(bounds)-1].hi.Equal(stop))
	for i := 1; i < len(bounds); i++ {
		want := bounds[i-1].hi.AddUint64(1)
		assert.True(t, bounds[i].lo.Equal(want), "gap/overlap at boundary %d", i)
	}
}

func TestSubrangesSingleThreadIsWholeRange(t *testing.T) {
	start, stop := uint128.FromUint64(5), uint128.FromUint64(50)
	bounds := subranges(start, stop, 1)
	require.Len(t, bounds, 1)
	assert.True(t, bounds[0].lo.Equal(start))
	assert.True(t, bounds[0].hi.Equal(stop))
}

func TestSubrangesMoreThreadsThanIntegersStillCovers(t *testing.T) {
	start, stop := uint128.FromUint64(0), uint128.FromUint64(2)
	bounds := subranges(start, stop, 16)
	require.NotEmpty(t, bounds)
	assert.True(t, bounds[0].lo.Equal(start))
	assert.True(t, bounds[len(bounds)-1].hi.Equal(stop))
}

// TestRunCountIndependentOfThreadCount is the partitioner's analogue of
// the aggregated-count independence invariant: splitting the same range
// across a different number of workers must not change the total.
func TestRunCountIndependentOfThreadCount(t *testing.T) {
	start, stop := uint128.FromUint64(0), uint128.FromUint64(100000)
	p, err := params.NewParametersFromLiteral(params.Literal{Stop: stop})
	require.NoError(t, err)

	var counts []uint64
	for _, n := range []int{1, 2, 3, 8} {
		count, _, err := Run(p, start, stop, n, nil)
		require.NoError(t, err)
		counts = append(counts, count)
	}
	for i := 1; i < len(counts); i++ {
		assert.Equal(t, counts[0], counts[i], "thread counts disagree")
	}
	assert.Equal(t, uint64(9592), counts[0])
}

func TestRunSingleThreadEmitsAscending(t *testing.T) {
	start, stop := uint128.FromUint64(0), uint128.FromUint64(200)
	p, err := params.NewParametersFromLiteral(params.Literal{Stop: stop})
	require.NoError(t, err)

	var seen []uint64
	count, _, err := Run(p, start, stop, 1, func(n uint128.Uint128) { seen = append(seen, n.Lo) })
	require.NoError(t, err)
	assert.Equal(t, count, uint64(len(seen)))
	for i := 1; i < len(seen); i++ {
		assert.Less(t, seen[i-1], seen[i])
	}
}
