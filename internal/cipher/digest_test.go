package cipher

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum256Vectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:  "abc",
			input: "abc",
			want:  "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:  "hello world",
			input: "hello world",
			want:  "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sum := Sum256([]byte(tt.input))
			require.Equal(t, tt.want, hex.EncodeToString(sum[:]))
		})
	}
}

func TestDigestDeterministic(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("determinism "), 100)

	first := Sum256(data)
	second := Sum256(data)

	require.Equal(t, first, second)
}

func TestDigestStreamingMatchesOneShot(t *testing.T) {
	t.Parallel()

	// Sizes straddling the 64-byte chunk boundary exercise the buffering
	// and padding paths.
	for _, size := range []int{0, 1, 55, 56, 63, 64, 65, 127, 128, 1000} {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i * 31)
		}

		want := Sum256(data)

		d := NewDigest()
		for i := 0; i < len(data); i += 7 {
			end := min(i+7, len(data))
			_, err := d.Write(data[i:end])
			require.NoError(t, err)
		}

		require.Equal(t, want, d.Sum(), "size %d", size)
	}
}

func TestDigestReusableAfterSum(t *testing.T) {
	t.Parallel()

	d := NewDigest()
	d.Write([]byte("first message"))
	first := d.Sum()

	// Sum resets: the same instance must now hash independently.
	d.Write([]byte("first message"))
	require.Equal(t, first, d.Sum())

	d.Write([]byte("second message"))
	require.NotEqual(t, first, d.Sum())
}
