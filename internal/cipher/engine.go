package cipher

import (
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// DefaultBlockSize is the block size used when none is configured.
//
// The block size is not recorded in the ciphertext: encrypt and decrypt
// must agree on it out of band, and changing it breaks compatibility with
// previously encrypted data.
const DefaultBlockSize = 4096

// Engine orchestrates the full pipeline: integrity envelope, fixed-size
// block splitting, per-block subkey derivation, and a worker pool applying
// the block transform concurrently. An Engine is stateless between calls
// and safe for concurrent use.
type Engine struct {
	// BlockSize is the fixed block length; the final block may be shorter.
	BlockSize int

	// Workers bounds the number of concurrent block transforms.
	Workers int
}

// NewEngine returns an Engine with the default block size and a worker
// per available CPU.
func NewEngine() *Engine {
	return &Engine{
		BlockSize: DefaultBlockSize,
		Workers:   runtime.NumCPU(),
	}
}

// Encrypt wraps plaintext in the integrity envelope, splits it into
// blocks, transforms each block concurrently under its own subkey, and
// reassembles the results in block order. The output depends only on the
// plaintext and passphrase, never on the worker count.
func (e *Engine) Encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	if uint64(len(plaintext)) > uint64(^uint32(0)) {
		return nil, ErrTooLarge
	}

	masterKey := DeriveKey(passphrase)

	return e.run(Wrap(plaintext), masterKey, EncryptBlock)
}

// Decrypt reverses Encrypt: it splits the ciphertext with the same block
// size, applies the inverse transform per block with identically derived
// subkeys, and verifies and strips the envelope. It returns ErrMalformed
// for ciphertext too short to hold an envelope, and ErrIntegrity on a
// wrong passphrase or corrupted data.
func (e *Engine) Decrypt(ciphertext []byte, passphrase string) ([]byte, error) {
	if len(ciphertext) < envelopeOverhead {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformed, len(ciphertext), envelopeOverhead)
	}

	masterKey := DeriveKey(passphrase)

	envelope, err := e.run(ciphertext, masterKey, DecryptBlock)
	if err != nil {
		return nil, err
	}

	return Unwrap(envelope)
}

// run splits data into blocks, fans them out to the worker pool, and
// reassembles the transformed blocks strictly by index. Any worker error
// aborts the whole operation; no partial output is ever returned.
func (e *Engine) run(data []byte, masterKey []byte, transform func(block, subKey []byte) []byte) ([]byte, error) {
	blockSize := e.BlockSize
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	count := (len(data) + blockSize - 1) / blockSize
	if count == 0 {
		return []byte{}, nil
	}

	type indexed struct {
		index int
		data  []byte
	}

	results := make(chan indexed, count)

	var group errgroup.Group
	group.SetLimit(workers)

	for i := 0; i < count; i++ {
		i := i
		start := i * blockSize

		end := start + blockSize
		if end > len(data) {
			end = len(data)
		}

		group.Go(func() error {
			subKey := SubKey(masterKey, uint32(i))
			results <- indexed{index: i, data: transform(data[start:end], subKey)}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("block worker: %w", err)
	}

	close(results)

	// Completion order is arbitrary; reassembly order is not.
	collected := make([]indexed, 0, count)
	for res := range results {
		collected = append(collected, res)
	}

	sort.Slice(collected, func(a, b int) bool { return collected[a].index < collected[b].index })

	out := make([]byte, 0, len(data))
	for _, res := range collected {
		out = append(out, res.data...)
	}

	return out, nil
}
