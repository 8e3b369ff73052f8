package encryption

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Nikita21537/cloak/internal/cipher"
	"github.com/Nikita21537/cloak/internal/config"
	"github.com/Nikita21537/cloak/internal/fileutil"
)

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// engine runs the block pipeline for each file
	engine *cipher.Engine

	// passphrase used for key derivation
	passphrase string

	// log receives per-file operation messages
	log *logrus.Logger

	// results channels processing outcomes to the reporter goroutine
	results chan Result
}

// NewProcessor creates a Processor for the given configuration and
// passphrase.
func NewProcessor(cfg *config.Config, passphrase string, log *logrus.Logger) *Processor {
	engine := cipher.NewEngine()
	engine.Workers = cfg.Parallel

	return &Processor{
		cfg:        cfg,
		engine:     engine,
		passphrase: passphrase,
		log:        log,
		results:    make(chan Result, len(cfg.Files)),
	}
}

// ProcessFiles concurrently processes all files specified in the
// configuration, encrypting or decrypting based on the settings.
// Returns the number of successfully processed files, the number of
// errors, and the total output size.
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				p.log.WithField("file", result.Input).Errorf("processing failed: %v", result.Error)

				continue
			}

			processed++
			totalSize += result.OutputSize

			p.log.Infof("Processed %q -> %q", result.Input, result.Output)

			if p.cfg.Delete {
				if err := os.Remove(result.Input); err != nil {
					p.log.WithField("file", result.Input).Errorf("deleting source: %v", err)
				} else {
					p.log.Debugf("Deleted %q", result.Input)
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		file := file
		group.Go(func() error {
			outPath := p.outputPath(file)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for reporter to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// processFile runs one file through the engine and writes the output
// atomically, preserving the executable bit.
func (p *Processor) processFile(filename, outPath string) (int64, error) {
	isExec, err := fileutil.IsExecutable(filename)
	if err != nil {
		return 0, err
	}

	input, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("reading input file: %w", err)
	}

	var output []byte

	if p.cfg.Decrypt {
		output, err = p.engine.Decrypt(input, p.passphrase)
		if err != nil {
			return 0, fmt.Errorf("decrypting file: %w", err)
		}
	} else {
		output, err = p.engine.Encrypt(input, p.passphrase)
		if err != nil {
			return 0, fmt.Errorf("encrypting file: %w", err)
		}
	}

	const ownerReadWrite = 0o600

	perm := os.FileMode(ownerReadWrite)
	if isExec {
		perm |= 0o111
	}

	return fileutil.WriteAtomic(outPath, output, perm)
}

// outputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func (p *Processor) outputPath(filename string) string {
	ext := p.cfg.EncryptSuffix

	if p.cfg.Decrypt {
		filename = strings.TrimSuffix(filename, p.cfg.EncryptSuffix)
		ext = p.cfg.DecryptSuffix
	}

	return filepath.Join(filepath.Dir(filename),
		filepath.Base(filename)+ext)
}
