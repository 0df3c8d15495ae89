// Package hashid implements the content hash and path codec (C1): stable
// hashing of byte strings into HashId values, and the mapping from a HashId
// to its fan-out path under the object store.
package hashid

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"lukechampine.com/blake3"
)

// HashId is the lowercase hex digest of a fixed cryptographic hash function
// applied to a byte string. Two byte sequences with the same HashId are
// treated as identical content.
type HashId string

// Size is the digest width in bytes of the hash function backing HashId.
const Size = 32

// chunkSize is the streaming read size used by HashFile.
const chunkSize = 64 * 1024

// HashBytes computes the HashId of an in-memory byte slice.
func HashBytes(data []byte) HashId {
	sum := blake3.Sum256(data)
	return HashId(hex.EncodeToString(sum[:]))
}

// HashFile computes the HashId of a file's contents, streaming it through
// the hasher in fixed-size chunks rather than loading it whole into memory.
func HashFile(path string) (HashId, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hashid: open %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New(Size, nil)
	buf := make([]byte, chunkSize)
	r := bufio.NewReaderSize(f, chunkSize)

	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("hashid: read %s: %w", path, err)
	}

	return HashId(hex.EncodeToString(h.Sum(nil))), nil
}

// ToRelPath maps a HashId to its on-disk fan-out path, e.g. "ab/cdef...".
// parts controls how many leading path components are peeled off, each
// partLen hex characters wide; the remainder forms the final component.
func ToRelPath(id HashId, parts, partLen int) string {
	s := string(id)
	segments := make([]string, 0, parts+1)
	for i := 0; i < parts && len(s) >= partLen; i++ {
		segments = append(segments, s[:partLen])
		s = s[partLen:]
	}
	segments = append(segments, s)
	out := segments[0]
	for _, seg := range segments[1:] {
		out += "/" + seg
	}
	return out
}

// Valid reports whether s has the shape of a HashId produced by this codec
// (lowercase hex, exactly Size*2 characters).
func Valid(s string) bool {
	if len(s) != Size*2 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}
