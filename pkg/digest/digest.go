// Package digest computes the content hashes recorded for carved files.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/zeebo/blake3"
)

type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	BLAKE3 Algorithm = "blake3"
)

func ParseAlgorithm(name string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(name))); a {
	case SHA256, BLAKE3:
		return a, nil
	}
	return "", fmt.Errorf("unknown hash algorithm %q", name)
}

// ParseAlgorithms parses a list of names, skipping empty entries and
// duplicates.
func ParseAlgorithms(names []string) ([]Algorithm, error) {
	var algs []Algorithm
	seen := make(map[Algorithm]bool)
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		a, err := ParseAlgorithm(n)
		if err != nil {
			return nil, err
		}
		if !seen[a] {
			seen[a] = true
			algs = append(algs, a)
		}
	}
	return algs, nil
}

func (a Algorithm) New() hash.Hash {
	switch a {
	case BLAKE3:
		return blake3.New()
	default:
		return sha256.New()
	}
}

// Digest is a hex encoded hash value.
type Digest struct {
	Algorithm Algorithm
	Value     string
}

// Sum hashes data with every algorithm in algs.
func Sum(algs []Algorithm, data []byte) []Digest {
	digests := make([]Digest, 0, len(algs))
	for _, a := range algs {
		h := a.New()
		h.Write(data)
		digests = append(digests, Digest{
			Algorithm: a,
			Value:     hex.EncodeToString(h.Sum(nil)),
		})
	}
	return digests
}
