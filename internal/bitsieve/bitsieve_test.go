package bitsieve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetSetsAllBits(t *testing.T) {
	s := New(100)
	s.Reset()
	for i := 0; i < 100; i += 2 {
		assert.True(t, s.Test(i), "offset %d", i)
	}
}

func TestClearIsolatesOneOffset(t *testing.T) {
	s := New(64)
	s.Reset()
	s.Clear(17)
	for i := 1; i < 64; i += 2 {
		if i == 17 {
			assert.False(t, s.Test(i))
		} else {
			assert.True(t, s.Test(i), "offset %d should remain set", i)
		}
	}
}

func TestSizeAndNumbersPerByte(t *testing.T) {
	s := New(33)
	assert.Equal(t, 33, s.Size())
	assert.Equal(t, 16, NumbersPerByte())
}

func TestClearEvenOffsetAlsoClearsNeighborOdd(t *testing.T) {
	// Offsets 16 and 17 share the same bit per the duplicated-mask
	// table, so clearing the even offset must also clear its odd
	// neighbor.
	s := New(32)
	s.Reset()
	s.Clear(16)
	assert.False(t, s.Test(17))
}
