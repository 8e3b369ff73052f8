package cipher

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"
)

// envelopeOverhead is the 4-byte big-endian length prefix plus the digest.
const envelopeOverhead = 4 + DigestSize

// Wrap prepends a big-endian length prefix and the plaintext digest, so
// that decryption can verify both before returning data to the caller.
func Wrap(plaintext []byte) []byte {
	out := make([]byte, envelopeOverhead+len(plaintext))
	binary.BigEndian.PutUint32(out, uint32(len(plaintext)))

	digest := Sum256(plaintext)
	copy(out[4:], digest[:])
	copy(out[envelopeOverhead:], plaintext)

	return out
}

// Unwrap verifies and strips the envelope. It returns ErrIntegrity when
// the buffer is too short, the declared length disagrees with the actual
// payload, or the recomputed digest differs from the stored one. Any of
// these means a wrong passphrase or corrupted/truncated ciphertext.
func Unwrap(data []byte) ([]byte, error) {
	if len(data) < envelopeOverhead {
		return nil, fmt.Errorf("%w: envelope shorter than %d bytes", ErrIntegrity, envelopeOverhead)
	}

	declared := binary.BigEndian.Uint32(data)
	payload := data[envelopeOverhead:]

	if uint64(declared) != uint64(len(payload)) {
		return nil, fmt.Errorf("%w: declared length %d, have %d bytes", ErrIntegrity, declared, len(payload))
	}

	digest := Sum256(payload)
	if subtle.ConstantTimeCompare(digest[:], data[4:envelopeOverhead]) != 1 {
		return nil, fmt.Errorf("%w: digest mismatch", ErrIntegrity)
	}

	return payload, nil
}
