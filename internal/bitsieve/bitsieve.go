// Package bitsieve implements the odd-only bit array spec.md §4.3 (L3)
// describes: each bit is shared by two consecutive integer offsets
// within a segment, exactly one of which is an odd number, so each
// byte holds the crossed-off/not-crossed-off state of 8 odd numbers
// across a 16-wide span. Whether the odd numbers sit at odd or at even
// offsets depends on the parity of the segment base.
//
// Grounded on original_source/src/Sieve.hpp: rather than shifting the
// offset right by one before indexing, the lookup tables duplicate each
// bit position across the two consecutive offsets (one even, one odd)
// that share it, so the hot path avoids a shift. Go's lack of an
// ALWAYS_INLINE pragma is made up for by keeping these two methods
// trivial enough for the compiler to inline on its own.
package bitsieve

// Sieve is a bit array covering integer offsets [0, size) within a
// single sieving segment. Only the offsets of odd numbers carry
// meaningful state.
type Sieve struct {
	size int
	bits []uint8
}

// numbersPerByte is the count of consecutive integer offsets one byte
// of the underlying array represents (8 odd numbers packed two offsets
// per bit).
const numbersPerByte = 16

// isBit maps an offset's low 4 bits to the byte mask for that offset's
// shared bit position.
var isBit = [16]uint8{
	1 << 0, 1 << 0,
	1 << 1, 1 << 1,
	1 << 2, 1 << 2,
	1 << 3, 1 << 3,
	1 << 4, 1 << 4,
	1 << 5, 1 << 5,
	1 << 6, 1 << 6,
	1 << 7, 1 << 7,
}

// clearBit maps an offset's low 4 bits to the AND-mask that clears
// that offset's shared bit.
var clearBit = [16]uint8{
	^uint8(1 << 0), ^uint8(1 << 0),
	^uint8(1 << 1), ^uint8(1 << 1),
	^uint8(1 << 2), ^uint8(1 << 2),
	^uint8(1 << 3), ^uint8(1 << 3),
	^uint8(1 << 4), ^uint8(1 << 4),
	^uint8(1 << 5), ^uint8(1 << 5),
	^uint8(1 << 6), ^uint8(1 << 6),
	^uint8(1 << 7), ^uint8(1 << 7),
}

// New allocates a Sieve covering size consecutive integer offsets.
func New(size int) *Sieve {
	return &Sieve{
		size: size,
		bits: make([]uint8, (size+numbersPerByte-1)/numbersPerByte),
	}
}

// Size returns the number of integer offsets this sieve covers.
func (s *Sieve) Size() int { return s.size }

// NumbersPerByte returns how many consecutive integer offsets one byte
// represents, for sizing a segment to a whole number of bytes.
func NumbersPerByte() int { return numbersPerByte }

// Reset marks every offset as a potential prime, for reuse across
// segments without reallocating.
func (s *Sieve) Reset() {
	for i := range s.bits {
		s.bits[i] = 0xff
	}
}

// Test reports whether offset i is still marked as a potential prime.
func (s *Sieve) Test(i int) bool {
	return s.bits[i>>4]&isBit[i&15] != 0
}

// Clear crosses offset i off as composite.
func (s *Sieve) Clear(i int) {
	s.bits[i>>4] &= clearBit[i&15]
}
