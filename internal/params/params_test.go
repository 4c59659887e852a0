package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psieve-go/psqsieve/uint128"
)

func TestNewParametersFromLiteralSmallStop(t *testing.T) {
	p, err := NewParametersFromLiteral(Literal{Stop: uint128.FromUint64(1000000)})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p.Delta(), uint64(defaultMinDelta))
	assert.Greater(t, p.S(), uint64(0))
	assert.GreaterOrEqual(t, p.P(), uint32(2))

	sRatio, _ := p.Stop().DivMod64(p.S())
	assert.True(t, sRatio.Less(p.Lp()), "stop/s must stay below the selected Lp")
}

func TestNewParametersFromLiteralRejectsOutOfWindowStop(t *testing.T) {
	// Well beyond the ~1.74e33 ceiling spec.md §9 derives for the
	// s = Δ·log(Δ) variant this package uses: stop/s grows faster than
	// s itself as stop grows, so it eventually exceeds every tabulated
	// pseudosquare.
	huge, err := uint128.FromString("100000000000000000000000000000000000")
	require.NoError(t, err)
	_, err = NewParametersFromLiteral(Literal{Stop: huge})
	assert.Error(t, err)
}

func TestSegmentSizeMonotonic(t *testing.T) {
	small := segmentSize(uint128.FromUint64(1000))
	tiny := segmentSize(uint128.FromUint64(1))
	assert.GreaterOrEqual(t, small, tiny)
}

func TestParametersEqual(t *testing.T) {
	p1, err := NewParametersFromLiteral(Literal{Stop: uint128.FromUint64(100000)})
	require.NoError(t, err)
	p2, err := NewParametersFromLiteral(Literal{Stop: uint128.FromUint64(100000)})
	require.NoError(t, err)
	assert.True(t, p1.Equal(p2))

	p3, err := NewParametersFromLiteral(Literal{Stop: uint128.FromUint64(100001)})
	require.NoError(t, err)
	assert.False(t, p1.Equal(p3))
}

func TestFingerprintDeterministic(t *testing.T) {
	p1, err := NewParametersFromLiteral(Literal{Stop: uint128.FromUint64(100000)})
	require.NoError(t, err)
	p2, err := NewParametersFromLiteral(Literal{Stop: uint128.FromUint64(100000)})
	require.NoError(t, err)
	assert.Equal(t, p1.Fingerprint(), p2.Fingerprint())

	p3, err := NewParametersFromLiteral(Literal{Stop: uint128.FromUint64(100001)})
	require.NoError(t, err)
	assert.NotEqual(t, p1.Fingerprint(), p3.Fingerprint())
}
