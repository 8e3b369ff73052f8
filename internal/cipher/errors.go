package cipher

import "errors"

var (
	// ErrIntegrity is returned when the envelope length or digest check
	// fails after decryption: wrong passphrase or corrupted data.
	ErrIntegrity = errors.New("integrity check failed: wrong passphrase or corrupted data")

	// ErrMalformed is returned for ciphertext too short to contain an
	// envelope, rejected before any block processing.
	ErrMalformed = errors.New("malformed ciphertext")

	// ErrTooLarge is returned when the plaintext length does not fit the
	// envelope's 32-bit length prefix.
	ErrTooLarge = errors.New("plaintext exceeds maximum envelope size")
)
