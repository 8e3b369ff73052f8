// Package logic implements the top-level operations behind the commands.
package logic

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/Nikita21537/cloak/internal/archive"
	"github.com/Nikita21537/cloak/internal/cipher"
	"github.com/Nikita21537/cloak/internal/config"
	"github.com/Nikita21537/cloak/internal/encryption"
	"github.com/Nikita21537/cloak/internal/fileutil"
)

// NewLogger builds the operation logger, with the level driven by the
// verbose/quiet flags.
func NewLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch {
	case cfg.Quiet:
		log.SetLevel(logrus.ErrorLevel)
	case cfg.Verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// Run encrypts or decrypts the configured files concurrently.
func Run(cfg *config.Config, passphrase string) error {
	start := time.Now()
	log := NewLogger(cfg)

	processor := encryption.NewProcessor(cfg, passphrase, log)

	processed, errored, totalSize, err := processor.ProcessFiles()

	log.Debugf("%d file(s) processed, %d error(s), %s written in %s",
		processed, errored, humanize.Bytes(uint64(totalSize)), time.Since(start).Round(time.Millisecond)) //nolint:gosec

	if err != nil {
		return fmt.Errorf("running %s: %w", mode(cfg), err)
	}

	return nil
}

// RunPack tars the directory, encrypts the archive, and writes it
// atomically to the output path.
func RunPack(cfg *config.Config, dir, outPath, passphrase string) error {
	start := time.Now()
	log := NewLogger(cfg)

	var buf bytes.Buffer
	if err := archive.Pack(dir, cfg.Exclude, &buf); err != nil {
		return err
	}

	log.Debugf("Archived %q (%s)", dir, humanize.Bytes(uint64(buf.Len()))) //nolint:gosec

	engine := cipher.NewEngine()
	engine.Workers = cfg.Parallel

	ciphertext, err := engine.Encrypt(buf.Bytes(), passphrase)
	if err != nil {
		return fmt.Errorf("encrypting archive: %w", err)
	}

	size, err := fileutil.WriteAtomic(outPath, ciphertext, 0o600)
	if err != nil {
		return err
	}

	log.Infof("Packed %q -> %q (%s) in %s",
		dir, outPath, humanize.Bytes(uint64(size)), time.Since(start).Round(time.Millisecond)) //nolint:gosec

	return nil
}

// RunUnpack decrypts the archive file and extracts it into the directory.
func RunUnpack(cfg *config.Config, inPath, dir, passphrase string) error {
	start := time.Now()
	log := NewLogger(cfg)

	ciphertext, err := os.ReadFile(inPath) //nolint:gosec // user-supplied path
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}

	engine := cipher.NewEngine()
	engine.Workers = cfg.Parallel

	plaintext, err := engine.Decrypt(ciphertext, passphrase)
	if err != nil {
		return fmt.Errorf("decrypting archive: %w", err)
	}

	if err := archive.Unpack(bytes.NewReader(plaintext), dir); err != nil {
		return err
	}

	log.Infof("Unpacked %q -> %q (%s) in %s",
		inPath, dir, humanize.Bytes(uint64(len(plaintext))), time.Since(start).Round(time.Millisecond)) //nolint:gosec

	return nil
}

func mode(cfg *config.Config) string {
	if cfg.Decrypt {
		return "decrypt"
	}

	return "encrypt"
}
