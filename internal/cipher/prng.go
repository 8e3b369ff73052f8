package cipher

import "encoding/binary"

// Stream is a deterministic pseudo-random generator with 32 bits of state,
// using the xorshift recurrence (13, 17, 5). The seed fully determines the
// output stream.
//
// All multi-byte packing is big-endian; key derivation, subkey derivation
// and permutation generation rely on this single byte order, and mixing
// orders would silently break invertibility.
type Stream struct {
	state uint32
}

// NewStream returns a generator seeded with seed.
func NewStream(seed uint32) *Stream {
	return &Stream{state: seed}
}

// Next advances the state and returns it.
func (s *Stream) Next() uint32 {
	s.state ^= s.state << 13
	s.state ^= s.state >> 17
	s.state ^= s.state << 5

	return s.state
}

// Bytes returns the next n bytes of the stream, packing each generated
// word big-endian.
func (s *Stream) Bytes(n int) []byte {
	out := make([]byte, 0, n+3)

	var word [4]byte

	for len(out) < n {
		binary.BigEndian.PutUint32(word[:], s.Next())
		out = append(out, word[:]...)
	}

	return out[:n]
}

// Perm returns a pseudo-random permutation of [0, n), drawing one word per
// position of an in-place shuffle. No rejection sampling: the draw is
// reduced modulo the number of remaining positions.
func (s *Stream) Perm(n int) []int {
	table := make([]int, n)
	for i := range table {
		table[i] = i
	}

	for i := 0; i < n; i++ {
		j := i + int(s.Next()%uint32(n-i))
		table[i], table[j] = table[j], table[i]
	}

	return table
}
