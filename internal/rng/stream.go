// Package rng provides the seeded random streams behind world generation and
// action outcomes.
//
// A Stream is a 32-bit Mersenne Twister (MT19937) keyed with init_by_array
// over the 32-bit words of the seed. Floats use 53 bits from two outputs and
// bounded ints use rejection sampling on the bit length of the bound, so a
// given seed always yields the same rolls for recorded games.
package rng

import (
	"math/bits"
)

const (
	stateSize   = 624
	shiftSize   = 397
	matrixA     = 0x9908b0df
	upperMask   = 0x80000000
	lowerMask   = 0x7fffffff
	arraySeed   = 19650218
	float53Div  = 1.0 / 9007199254740992.0
	float53High = 67108864.0
)

// Stream is a reproducible pseudo-random sequence. It is not safe for
// concurrent use; construct one per call site.
type Stream struct {
	mt  [stateSize]uint32
	idx int
}

// New returns a stream seeded with seed. Negative seeds are folded to their
// absolute value.
func New(seed int64) *Stream {
	s := &Stream{}
	s.seed(seed)
	return s
}

func (s *Stream) seed(seed int64) {
	u := uint64(seed)
	if seed < 0 {
		u = uint64(-seed)
	}

	key := []uint32{uint32(u)}
	if hi := uint32(u >> 32); hi != 0 {
		key = append(key, hi)
	}
	s.initByArray(key)
}

func (s *Stream) initGenrand(v uint32) {
	s.mt[0] = v
	for i := 1; i < stateSize; i++ {
		prev := s.mt[i-1]
		s.mt[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	s.idx = stateSize
}

func (s *Stream) initByArray(key []uint32) {
	s.initGenrand(arraySeed)

	i, j := 1, 0
	k := stateSize
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := s.mt[i-1]
		s.mt[i] = (s.mt[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= stateSize {
			s.mt[0] = s.mt[stateSize-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = stateSize - 1; k > 0; k-- {
		prev := s.mt[i-1]
		s.mt[i] = (s.mt[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= stateSize {
			s.mt[0] = s.mt[stateSize-1]
			i = 1
		}
	}
	s.mt[0] = upperMask
}

func (s *Stream) twist() {
	for i := 0; i < stateSize; i++ {
		y := (s.mt[i] & upperMask) | (s.mt[(i+1)%stateSize] & lowerMask)
		next := s.mt[(i+shiftSize)%stateSize] ^ (y >> 1)
		if y&1 != 0 {
			next ^= matrixA
		}
		s.mt[i] = next
	}
	s.idx = 0
}

// Uint32 returns the next raw tempered 32-bit output.
func (s *Stream) Uint32() uint32 {
	if s.idx >= stateSize {
		s.twist()
	}
	y := s.mt[s.idx]
	s.idx++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Float64 returns a uniform float in [0, 1) with 53 bits of precision.
func (s *Stream) Float64() float64 {
	a := s.Uint32() >> 5
	b := s.Uint32() >> 6
	return (float64(a)*float53High + float64(b)) * float53Div
}

// Bits returns a uniform integer with k random bits, 0 < k <= 32.
func (s *Stream) Bits(k int) uint32 {
	return s.Uint32() >> (32 - uint(k))
}

// Below returns a uniform integer in [0, n). It panics if n is not positive
// or needs more than 32 bits.
func (s *Stream) Below(n int) int {
	if n <= 0 {
		panic("rng: Below argument must be positive")
	}
	k := bits.Len64(uint64(n))
	if k > 32 {
		panic("rng: Below argument exceeds 32 bits")
	}
	r := int(s.Bits(k))
	for r >= n {
		r = int(s.Bits(k))
	}
	return r
}

// IntRange returns a uniform integer in [lo, hi], both ends inclusive.
func (s *Stream) IntRange(lo, hi int) int {
	return lo + s.Below(hi-lo+1)
}

// Chance reports whether a Float64 draw falls below p.
func (s *Stream) Chance(p float64) bool {
	return s.Float64() < p
}

// Pick returns a uniform element of items. items must not be empty.
func Pick[T any](s *Stream, items []T) T {
	return items[s.Below(len(items))]
}

// Read fills p with stream output, four bytes per draw, little endian. It
// never fails and lets a Stream feed id generators that expect an io.Reader.
func (s *Stream) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 4 {
		v := s.Uint32()
		for j := 0; j < 4 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}
