// Package archive packs directories into tar archives and back, feeding
// the encryption pipeline. Exclude patterns use glob syntax matched
// against slash-separated paths relative to the packed root.
package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ErrUnsafePath is returned when an archive entry would escape the
// extraction directory.
var ErrUnsafePath = errors.New("archive entry escapes destination directory")

// Pack writes a tar archive of the directory root to w. Entries matching
// any exclude pattern are skipped; matching a directory skips its whole
// subtree.
func Pack(root string, excludes []string, w io.Writer) error {
	matchers, err := compile(excludes)
	if err != nil {
		return err
	}

	tw := tar.NewWriter(w)

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativizing %q: %w", path, err)
		}

		if rel == "." {
			return nil
		}

		rel = filepath.ToSlash(rel)

		if matchAny(matchers, rel) {
			if entry.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("stat %q: %w", path, err)
		}

		// Only directories and regular files are archived.
		if !info.IsDir() && !info.Mode().IsRegular() {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return fmt.Errorf("building header for %q: %w", path, err)
		}

		header.Name = rel
		if info.IsDir() {
			header.Name += "/"
		}

		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("writing header for %q: %w", rel, err)
		}

		if info.IsDir() {
			return nil
		}

		file, err := os.Open(path) //nolint:gosec // path comes from the walk
		if err != nil {
			return fmt.Errorf("opening %q: %w", path, err)
		}
		defer file.Close()

		if _, err := io.Copy(tw, file); err != nil {
			return fmt.Errorf("archiving %q: %w", rel, err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("packing %q: %w", root, err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}

	return nil
}

// Unpack extracts a tar archive from r into dir, creating it if needed.
// Entries that would escape dir are rejected.
func Unpack(r io.Reader, dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating destination %q: %w", dir, err)
	}

	tr := tar.NewReader(r)

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}

		target, err := safeJoin(dir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, header.FileInfo().Mode().Perm()); err != nil {
				return fmt.Errorf("creating directory %q: %w", target, err)
			}
		case tar.TypeReg:
			if err := extractFile(tr, target, header); err != nil {
				return err
			}
		default:
			// Symlinks, devices and the rest are never produced by Pack.
			return fmt.Errorf("unsupported entry type %d for %q", header.Typeflag, header.Name)
		}
	}
}

func extractFile(tr *tar.Reader, target string, header *tar.Header) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("creating parent of %q: %w", target, err)
	}

	file, err := os.OpenFile(filepath.Clean(target), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, header.FileInfo().Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %q: %w", target, err)
	}

	if _, err := io.Copy(file, tr); err != nil { //nolint:gosec // sizes are bounded by the decrypted archive
		file.Close()

		return fmt.Errorf("extracting %q: %w", header.Name, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", target, err)
	}

	return nil
}

// safeJoin joins name onto dir, rejecting absolute names and parent
// traversal.
func safeJoin(dir, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))

	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}

	return filepath.Join(dir, clean), nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling exclude pattern %q: %w", pattern, err)
		}

		matchers = append(matchers, g)
	}

	return matchers, nil
}

func matchAny(matchers []glob.Glob, path string) bool {
	for _, m := range matchers {
		if m.Match(path) || m.Match(filepath.Base(path)) {
			return true
		}
	}

	return false
}
