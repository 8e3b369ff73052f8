// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const executableBits = 0o111

// IsExecutable reports whether any execute bit is set on path.
func IsExecutable(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", path, err)
	}

	return info.Mode()&executableBits != 0, nil
}

// WriteAtomic writes data to outPath via a temporary file in the same
// directory followed by a rename, so a failure never leaves a partially
// written output behind. Returns the number of bytes written.
func WriteAtomic(outPath string, data []byte, perm os.FileMode) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("creating temporary file: %w", err)
	}

	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()        //nolint:gosec // best-effort cleanup
		os.Remove(tmpName) //nolint:gosec // best-effort cleanup
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()

		return 0, fmt.Errorf("writing output: %w", err)
	}

	if err := tmp.Chmod(perm); err != nil {
		cleanup()

		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:gosec // best-effort cleanup

		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(tmpName, outPath); err != nil {
		os.Remove(tmpName) //nolint:gosec // best-effort cleanup

		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	return int64(len(data)), nil
}
