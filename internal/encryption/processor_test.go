package encryption

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/Nikita21537/cloak/internal/config"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func testConfig(files ...string) *config.Config {
	return &config.Config{
		Parallel:      4,
		EncryptSuffix: ".clk",
		Files:         files,
	}
}

func TestProcessorRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	contents := map[string]string{
		"a.txt": "first file",
		"b.txt": "second file with a bit more content in it",
		"empty": "",
	}

	var files []string

	for name, content := range contents {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		files = append(files, path)
	}

	cfg := testConfig(files...)

	processed, errored, _, err := NewProcessor(cfg, "passphrase", quietLogger()).ProcessFiles()
	require.NoError(t, err)
	require.Equal(t, len(files), processed)
	require.Zero(t, errored)

	// Ciphertext on disk must not equal the plaintext.
	encrypted, err := os.ReadFile(filepath.Join(dir, "a.txt.clk"))
	require.NoError(t, err)
	require.NotEqual(t, contents["a.txt"], string(encrypted))

	// Decrypt back into fresh names and compare.
	decCfg := testConfig()
	decCfg.Decrypt = true
	decCfg.DecryptSuffix = ".out"

	for name := range contents {
		decCfg.Files = append(decCfg.Files, filepath.Join(dir, name+".clk"))
	}

	processed, errored, _, err = NewProcessor(decCfg, "passphrase", quietLogger()).ProcessFiles()
	require.NoError(t, err)
	require.Equal(t, len(files), processed)
	require.Zero(t, errored)

	for name, content := range contents {
		got, err := os.ReadFile(filepath.Join(dir, name+".out"))
		require.NoError(t, err)
		require.Equal(t, content, string(got), name)
	}
}

func TestProcessorWrongPassphraseAborts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(path, []byte("secret"), 0o600))

	cfg := testConfig(path)

	_, _, _, err := NewProcessor(cfg, "right", quietLogger()).ProcessFiles()
	require.NoError(t, err)

	decCfg := testConfig(path + ".clk")
	decCfg.Decrypt = true
	decCfg.DecryptSuffix = ".out"

	processed, errored, _, err := NewProcessor(decCfg, "wrong", quietLogger()).ProcessFiles()
	require.Error(t, err)
	require.Zero(t, processed)
	require.Equal(t, 1, errored)

	// No partial output left behind.
	_, err = os.Stat(path + ".out")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestProcessorDeleteSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "gone.txt")
	require.NoError(t, os.WriteFile(path, []byte("delete me after"), 0o600))

	cfg := testConfig(path)
	cfg.Delete = true

	processed, _, _, err := NewProcessor(cfg, "passphrase", quietLogger()).ProcessFiles()
	require.NoError(t, err)
	require.Equal(t, 1, processed)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = os.Stat(path + ".clk")
	require.NoError(t, err)
}

func TestProcessorOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		decrypt bool
		decExt  string
		want    string
	}{
		{name: "encrypt appends suffix", input: "dir/file.txt", want: "dir/file.txt.clk"},
		{name: "decrypt strips suffix", input: "dir/file.txt.clk", decrypt: true, want: "dir/file.txt"},
		{name: "decrypt appends decrypt suffix", input: "file.clk", decrypt: true, decExt: ".dec", want: "file.dec"},
		{name: "decrypt without suffix keeps name", input: "file.bin", decrypt: true, want: "file.bin"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(tt.input)
			cfg.Decrypt = tt.decrypt
			cfg.DecryptSuffix = tt.decExt

			p := NewProcessor(cfg, "passphrase", quietLogger())
			require.Equal(t, filepath.FromSlash(tt.want), p.outputPath(tt.input))
		})
	}
}
