// Package encryption processes files through the cipher engine: concurrent
// per-file encryption or decryption, suffix handling, and atomic writes.
package encryption
