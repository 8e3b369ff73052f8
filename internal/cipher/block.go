package cipher

import "encoding/binary"

// The block transform is a five-layer substitution-permutation network:
// keyed byte substitution, keyed position permutation, XOR with the
// repeated subkey, then a second substitution and permutation pass keyed
// by the byte-reversed subkey. Every layer is a bijection on blocks of a
// given length, so the whole pipeline inverts exactly under the same
// subkey.

// buildSBox derives a keyed permutation of the 256 byte values from key
// using an RC4-style key-scheduling shuffle.
func buildSBox(key []byte) *[256]byte {
	var sbox [256]byte
	for i := range sbox {
		sbox[i] = byte(i)
	}

	j := 0
	for i := 0; i < 256; i++ {
		j = (j + int(sbox[i]) + int(key[i%len(key)])) % 256
		sbox[i], sbox[j] = sbox[j], sbox[i]
	}

	return &sbox
}

// invertSBox returns the positional inverse of sbox.
func invertSBox(sbox *[256]byte) *[256]byte {
	var inv [256]byte
	for i, v := range sbox {
		inv[v] = byte(i)
	}

	return &inv
}

// buildPermutation derives a position table of the given length from a
// stream seeded by the first four bytes of key, big-endian.
func buildPermutation(key []byte, length int) []int {
	seed := binary.BigEndian.Uint32(key[:4])

	return NewStream(seed).Perm(length)
}

func substitute(block []byte, sbox *[256]byte) {
	for i, b := range block {
		block[i] = sbox[b]
	}
}

// permute reorders block so that out[i] = block[table[i]].
func permute(block []byte, table []int) []byte {
	out := make([]byte, len(block))
	for i, src := range table {
		out[i] = block[src]
	}

	return out
}

// unpermute reorders block so that out[table[i]] = block[i].
func unpermute(block []byte, table []int) []byte {
	out := make([]byte, len(block))
	for i, src := range table {
		out[src] = block[i]
	}

	return out
}

// xorKeystream XORs block in place against key repeated to block length.
func xorKeystream(block, key []byte) {
	for i := range block {
		block[i] ^= key[i%len(key)]
	}
}

func reverseKey(key []byte) []byte {
	rev := make([]byte, len(key))
	for i, b := range key {
		rev[len(key)-1-i] = b
	}

	return rev
}

// EncryptBlock transforms one block under subKey. The input slice is not
// modified; the result has the same length as block.
func EncryptBlock(block, subKey []byte) []byte {
	out := make([]byte, len(block))
	copy(out, block)

	substitute(out, buildSBox(subKey))
	out = permute(out, buildPermutation(subKey, len(out)))

	xorKeystream(out, subKey)

	reversed := reverseKey(subKey)
	substitute(out, buildSBox(reversed))
	out = permute(out, buildPermutation(reversed, len(out)))

	return out
}

// DecryptBlock is the exact inverse of EncryptBlock under the same subKey:
// the layers are undone in reverse order, with the reversed-key pass first.
func DecryptBlock(block, subKey []byte) []byte {
	out := make([]byte, len(block))
	copy(out, block)

	reversed := reverseKey(subKey)
	out = unpermute(out, buildPermutation(reversed, len(out)))
	substitute(out, invertSBox(buildSBox(reversed)))

	xorKeystream(out, subKey)

	out = unpermute(out, buildPermutation(subKey, len(out)))
	substitute(out, invertSBox(buildSBox(subKey)))

	return out
}
