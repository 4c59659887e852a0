package montgomery

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/psieve-go/psqsieve/uint128"
)

func refPowMod(base, exp, m uint128.Uint128) uint128.Uint128 {
	baseBig := toBigForTest(base)
	expBig := toBigForTest(exp)
	mBig := toBigForTest(m)
	res := new(big.Int).Exp(baseBig, expBig, mBig)
	return fromBigForTest(res)
}

func toBigForTest(v uint128.Uint128) *big.Int {
	b := new(big.Int).SetUint64(v.Hi)
	b.Lsh(b, 64)
	b.Or(b, new(big.Int).SetUint64(v.Lo))
	return b
}

func fromBigForTest(b *big.Int) uint128.Uint128 {
	mask := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(b, mask).Uint64()
	hi := new(big.Int).Rsh(b, 64).Uint64()
	return uint128.FromUint64s(hi, lo)
}

func TestPowModQuarterRange64(t *testing.T) {
	m := uint128.FromUint64(1000000007) // < 2^62
	base := uint128.FromUint64(123456789)
	exp := m.SubUint64(1).Rsh(1)
	got := PowMod(base, exp, m)
	want := refPowMod(base, exp, m)
	assert.Equal(t, want, got)
}

func TestPowModFullRange64(t *testing.T) {
	m := uint128.FromUint64(18446744073709551557) // largest 64-bit prime, > 2^62
	base := uint128.FromUint64(999999999999999989)
	exp := m.SubUint64(1).Rsh(1)
	got := PowMod(base, exp, m)
	want := refPowMod(base, exp, m)
	assert.Equal(t, want, got)
}

func TestPowMod128(t *testing.T) {
	m, err := uint128.FromString("4235025223080597503519329")
	assert := assert.New(t)
	assert.NoError(err)
	// The modulus used here need not be prime for a generic modpow
	// cross-check; it only needs to be odd so Montgomery form applies.
	assert.True(m.IsOdd())
	base := uint128.FromUint64(2)
	exp := m.SubUint64(1).Rsh(1)
	got := PowMod(base, exp, m)
	want := refPowMod(base, exp, m)
	assert.Equal(want, got)
}

func TestPowModIdentity(t *testing.T) {
	m := uint128.FromUint64(97)
	got := PowMod(uint128.FromUint64(5), uint128.Zero, m)
	assert.Equal(t, uint128.FromUint64(1), got)
}

func TestPowMod2MatchesPowMod(t *testing.T) {
	m := uint128.FromUint64(1000000007)
	exp := uint128.FromUint64(123456)
	assert.Equal(t, PowMod(uint128.FromUint64(2), exp, m), PowMod2(exp, m))
}

func TestPowModPanicsOnEvenModulus(t *testing.T) {
	assert.Panics(t, func() {
		PowMod(uint128.FromUint64(3), uint128.FromUint64(1), uint128.FromUint64(10))
	})
}

func TestPowModPanicsOnExpNotLessThanModulus(t *testing.T) {
	assert.Panics(t, func() {
		PowMod(uint128.FromUint64(3), uint128.FromUint64(11), uint128.FromUint64(11))
	})
}
