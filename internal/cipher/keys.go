package cipher

import "encoding/binary"

// KeySize is the length of master and per-block key material in bytes.
const KeySize = 32

const keyWords = KeySize / 4

// djb2Seed is the canonical starting value of the DJB2 rolling hash.
const djb2Seed = 5381

// DeriveKey turns a passphrase into a 32-byte master key: a DJB2 rolling
// hash over the passphrase bytes seeds a Stream, and the first eight words
// are packed big-endian.
//
// The derivation is salt-less: a passphrase always maps to the same key.
// That is a documented limitation of the format, kept for compatibility.
func DeriveKey(passphrase string) []byte {
	hash := uint32(djb2Seed)
	for _, b := range []byte(passphrase) {
		hash = hash*33 + uint32(b)
	}

	return NewStream(hash).Bytes(KeySize)
}

// SubKey derives the independent key material for block index from the
// master key. The stream seed is the low 32 bits of the big-endian
// master-key integer XORed with the block index, so workers can derive
// subkeys for any block without coordination.
func SubKey(masterKey []byte, index uint32) []byte {
	seed := binary.BigEndian.Uint32(masterKey[len(masterKey)-4:])

	return NewStream(seed ^ index).Bytes(keyWords * 4)
}
