package logic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Nikita21537/cloak/internal/cipher"
	"github.com/Nikita21537/cloak/internal/config"
)

func packConfig() *config.Config {
	return &config.Config{
		Parallel:      2,
		EncryptSuffix: ".clk",
		Quiet:         true,
		Files:         []string{"placeholder"},
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("alpha"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "b.txt"), []byte("beta"), 0o600))

	archivePath := filepath.Join(t.TempDir(), "backup.clk")

	cfg := packConfig()
	require.NoError(t, RunPack(cfg, src, archivePath, "passphrase"))

	// The archive on disk is ciphertext: no tar structure visible.
	raw, err := os.ReadFile(archivePath)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "a.txt")

	dst := t.TempDir()
	require.NoError(t, RunUnpack(cfg, archivePath, dst, "passphrase"))

	got, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "alpha", string(got))

	got, err = os.ReadFile(filepath.Join(dst, "nested", "b.txt"))
	require.NoError(t, err)
	require.Equal(t, "beta", string(got))
}

func TestUnpackWrongPassphrase(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("alpha"), 0o600))

	archivePath := filepath.Join(t.TempDir(), "backup.clk")

	cfg := packConfig()
	require.NoError(t, RunPack(cfg, src, archivePath, "right"))

	err := RunUnpack(cfg, archivePath, t.TempDir(), "wrong")
	require.ErrorIs(t, err, cipher.ErrIntegrity)
}

func TestPackExcludePatterns(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "keep.txt"), []byte("keep"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "skip.log"), []byte("skip"), 0o600))

	archivePath := filepath.Join(t.TempDir(), "backup.clk")

	cfg := packConfig()
	cfg.Exclude = []string{"*.log"}
	require.NoError(t, RunPack(cfg, src, archivePath, "passphrase"))

	dst := t.TempDir()
	require.NoError(t, RunUnpack(cfg, archivePath, dst, "passphrase"))

	_, err := os.Stat(filepath.Join(dst, "keep.txt"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dst, "skip.log"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
