package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Size is the length of a rendered digest string.
const Size = sha1.Size * 2

// Empty is the digest of zero bytes.
const Empty = "da39a3ee5e6b4b0d3255bfef95601890afd80709"

// Value lists the fixed-size element types accepted by SHA1Values.
type Value interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 |
		~int64 | ~uint64 | ~float32 | ~float64
}

// SHA1 returns the hex SHA1 digest of a byte sequence or string.
func SHA1[T ~[]byte | ~string](buf T) string {
	sum := sha1.Sum([]byte(buf))
	return hex.EncodeToString(sum[:])
}

// SHA1Values returns the hex SHA1 digest of the little-endian encoding of values.
func SHA1Values[E Value](values []E) string {
	h := sha1.New()
	if len(values) > 0 {
		// binary.Write only fails on unsupported types, which Value excludes.
		_ = binary.Write(h, binary.LittleEndian, values)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// SHA1Reader streams r to EOF and returns its hex SHA1 digest and the byte count.
func SHA1Reader(r io.Reader) (string, int64, error) {
	h := sha1.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return "", n, fmt.Errorf("failed to read input: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// SHA1File returns the hex SHA1 digest of the file at path.
func SHA1File(path string) (string, error) {
	// #nosec G304 -- callers hash files they resolved themselves
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sum, _, err := SHA1Reader(f)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return sum, nil
}

// Valid reports whether s is a well-formed digest string.
func Valid(s string) bool {
	if len(s) != Size {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
