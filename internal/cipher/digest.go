package cipher

import (
	"encoding/binary"
	"math/bits"
)

const (
	// DigestSize is the size of a digest in bytes.
	DigestSize = 32

	// digestChunk is the compression block size in bytes.
	digestChunk = 64
)

// initWords are the initial accumulator values (fractional parts of the
// square roots of the first eight primes).
var initWords = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// roundConstants are the 64 per-round constants (fractional parts of the
// cube roots of the first 64 primes).
var roundConstants = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5,
	0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc,
	0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7,
	0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13,
	0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3,
	0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5,
	0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208,
	0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// Digest is a streaming hash over arbitrary-length input, producing a
// 32-byte sum. The zero value is not usable; call NewDigest.
type Digest struct {
	words  [8]uint32
	buf    [digestChunk]byte
	buffed int
	length uint64
}

// NewDigest returns a fresh streaming hash state.
func NewDigest() *Digest {
	d := &Digest{}
	d.Reset()

	return d
}

// Reset restores the state to that of a newly constructed Digest.
func (d *Digest) Reset() {
	d.words = initWords
	d.buffed = 0
	d.length = 0
}

// Write absorbs data into the hash state. Full 64-byte chunks are
// compressed immediately; the remainder is buffered. It never fails.
func (d *Digest) Write(data []byte) (int, error) {
	written := len(data)
	d.length += uint64(written)

	if d.buffed > 0 {
		n := copy(d.buf[d.buffed:], data)
		d.buffed += n
		data = data[n:]

		if d.buffed == digestChunk {
			d.compress(d.buf[:])
			d.buffed = 0
		}
	}

	for len(data) >= digestChunk {
		d.compress(data[:digestChunk])
		data = data[digestChunk:]
	}

	if len(data) > 0 {
		d.buffed = copy(d.buf[:], data)
	}

	return written, nil
}

// Sum pads the absorbed message, returns its 32-byte digest, and resets
// the state so the instance can be reused as if newly constructed.
func (d *Digest) Sum() [DigestSize]byte {
	bitLength := d.length * 8

	// 0x80, then zeros up to 56 mod 64, then the 64-bit bit length.
	var pad [digestChunk + 8]byte
	pad[0] = 0x80

	padLen := digestChunk - (d.buffed+8)%digestChunk
	if padLen == 0 {
		padLen = digestChunk
	}

	binary.BigEndian.PutUint64(pad[padLen:], bitLength)
	d.Write(pad[:padLen+8]) //nolint:errcheck // Write never fails

	var sum [DigestSize]byte
	for i, w := range d.words {
		binary.BigEndian.PutUint32(sum[i*4:], w)
	}

	d.Reset()

	return sum
}

// Sum256 returns the digest of data in one shot.
func Sum256(data []byte) [DigestSize]byte {
	d := NewDigest()
	d.Write(data) //nolint:errcheck // Write never fails

	return d.Sum()
}

// compress runs the 64-round compression schedule over one 64-byte chunk.
func (d *Digest) compress(chunk []byte) {
	var schedule [64]uint32

	for i := 0; i < 16; i++ {
		schedule[i] = binary.BigEndian.Uint32(chunk[i*4:])
	}

	for i := 16; i < 64; i++ {
		w15 := schedule[i-15]
		w2 := schedule[i-2]
		sigma0 := bits.RotateLeft32(w15, -7) ^ bits.RotateLeft32(w15, -18) ^ (w15 >> 3)
		sigma1 := bits.RotateLeft32(w2, -17) ^ bits.RotateLeft32(w2, -19) ^ (w2 >> 10)
		schedule[i] = schedule[i-16] + sigma0 + schedule[i-7] + sigma1
	}

	a, b, c, dd := d.words[0], d.words[1], d.words[2], d.words[3]
	e, f, g, h := d.words[4], d.words[5], d.words[6], d.words[7]

	for i := 0; i < 64; i++ {
		bigSigma1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		choose := (e & f) ^ (^e & g)
		temp1 := h + bigSigma1 + choose + roundConstants[i] + schedule[i]

		bigSigma0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		majority := (a & b) ^ (a & c) ^ (b & c)
		temp2 := bigSigma0 + majority

		h = g
		g = f
		f = e
		e = dd + temp1
		dd = c
		c = b
		b = a
		a = temp1 + temp2
	}

	d.words[0] += a
	d.words[1] += b
	d.words[2] += c
	d.words[3] += dd
	d.words[4] += e
	d.words[5] += f
	d.words[6] += g
	d.words[7] += h
}
