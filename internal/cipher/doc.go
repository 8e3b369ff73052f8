// Package cipher implements a self-contained symmetric encryption engine:
// a from-scratch streaming hash, a deterministic xorshift generator, a
// passphrase key derivation, a keyed substitution-permutation-XOR block
// transform, a length-and-digest integrity envelope, and a concurrent
// block orchestrator tying them together.
//
// The scheme is intentionally home-grown and is not a vetted cryptographic
// construction. Two caveats are inherent to the format and deliberately
// preserved for compatibility: the block size is not recorded in the
// ciphertext (both sides must agree on it out of band), and key derivation
// is salt-less, so a passphrase always maps to the same key material.
package cipher
