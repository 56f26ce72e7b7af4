package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// Pair holds the hex digests recorded for one artifact.
type Pair struct {
	SHA256     string
	Blake2b256 string
}

// File hashes the file at path, computing both digests in one pass.
func File(path string) (Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return Pair{}, err
	}
	defer f.Close()

	sha := sha256.New()
	b2, err := blake2b.New256(nil)
	if err != nil {
		return Pair{}, err
	}
	if _, err := io.Copy(io.MultiWriter(sha, b2), f); err != nil {
		return Pair{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return Pair{
		SHA256:     hex.EncodeToString(sha.Sum(nil)),
		Blake2b256: hex.EncodeToString(b2.Sum(nil)),
	}, nil
}
