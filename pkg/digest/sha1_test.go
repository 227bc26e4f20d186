package digest_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/pathfinder/pkg/digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSHA1_KnownVectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abc", "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"nist_448", "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq", "84983e441c3bd26ebaae4aa1f95129e5e54670f1"},
		{"fox", "The quick brown fox jumps over the lazy dog", "2fd4e1c67a2d28fced849ee1bb76e7391b93eb12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, digest.SHA1(tt.input))
			assert.Equal(t, tt.want, digest.SHA1([]byte(tt.input)))
		})
	}
}

func TestSHA1_EmptyInputs(t *testing.T) {
	assert.Equal(t, digest.Empty, digest.SHA1([]byte(nil)))
	assert.Equal(t, digest.Empty, digest.SHA1([]byte{}))
	assert.Equal(t, digest.Empty, digest.SHA1Values([]uint32(nil)))
	assert.Equal(t, digest.Empty, digest.SHA1Values([]float64{}))
}

func TestSHA1_NamedTypes(t *testing.T) {
	type blob []byte
	type name string

	assert.Equal(t, digest.SHA1("abc"), digest.SHA1(blob("abc")))
	assert.Equal(t, digest.SHA1("abc"), digest.SHA1(name("abc")))
}

func TestSHA1Values_LittleEndianLayout(t *testing.T) {
	assert.Equal(t, digest.SHA1("ab"), digest.SHA1Values([]uint16{0x6261}))
	assert.Equal(t, digest.SHA1("abcd"), digest.SHA1Values([]uint32{0x64636261}))
	assert.Equal(t, digest.SHA1("abc"), digest.SHA1Values([]int8{'a', 'b', 'c'}))

	type sample uint16
	assert.Equal(t, digest.SHA1("ab"), digest.SHA1Values([]sample{0x6261}))
}

func TestSHA1Reader(t *testing.T) {
	sum, n, err := digest.SHA1Reader(strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", sum)

	_, _, err = digest.SHA1Reader(failingReader{})
	assert.Error(t, err)
}

func TestSHA1File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payload.bin")
	require.NoError(t, os.WriteFile(path, []byte("The quick brown fox jumps over the lazy dog"), 0o600))

	sum, err := digest.SHA1File(path)
	require.NoError(t, err)
	assert.Equal(t, "2fd4e1c67a2d28fced849ee1bb76e7391b93eb12", sum)

	_, err = digest.SHA1File(filepath.Join(dir, "missing.bin"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValid(t *testing.T) {
	assert.True(t, digest.Valid(digest.Empty))
	assert.False(t, digest.Valid(strings.ToUpper(digest.Empty)))
	assert.False(t, digest.Valid(digest.Empty[:39]))
	assert.False(t, digest.Valid(""))
}

func TestSHA1_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		data := rapid.SliceOf(rapid.Byte()).Draw(rt, "data")

		sum := digest.SHA1(data)
		if !digest.Valid(sum) {
			rt.Fatalf("digest %q is not 40 lowercase hex characters", sum)
		}
		if again := digest.SHA1(append([]byte(nil), data...)); again != sum {
			rt.Fatalf("digest not deterministic: %s != %s", sum, again)
		}
		if streamed, _, err := digest.SHA1Reader(strings.NewReader(string(data))); err != nil || streamed != sum {
			rt.Fatalf("streamed digest mismatch: %s != %s (err=%v)", streamed, sum, err)
		}
	})
}

func TestSHA1_DistinctInputsOfSameSize(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(rt, "a")
		b := append([]byte(nil), a...)
		i := rapid.IntRange(0, len(b)-1).Draw(rt, "index")
		b[i] ^= 0xff

		if digest.SHA1(a) == digest.SHA1(b) {
			rt.Fatalf("collision between %x and %x", a, b)
		}
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}
