package idgen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// Prefix is prepended to every bead ID.
	Prefix = "bd"
	// HashLen is the number of hex characters kept from the digest.
	HashLen = 6

	maxRetries = 100
)

// Generate derives an ID in the form bd-HASH from the title and a seed,
// usually the creation timestamp. The same inputs always give the same ID.
func Generate(title, seed string) string {
	hash := sha256.Sum256([]byte(title + seed))
	return fmt.Sprintf("%s-%s", Prefix, hex.EncodeToString(hash[:])[:HashLen])
}

// GenerateUnique calls Generate and, while existsFn reports a collision,
// retries with a disambiguator appended to the seed.
func GenerateUnique(title, seed string, existsFn func(string) bool) (string, error) {
	id := Generate(title, seed)
	if existsFn == nil || !existsFn(id) {
		return id, nil
	}
	for i := 1; i <= maxRetries; i++ {
		id = Generate(title, fmt.Sprintf("%s#%d", seed, i))
		if !existsFn(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique ID after %d attempts", maxRetries)
}

// MatchSuffix reports whether query names id, either exactly or as a
// trailing substring. Short queries can match several IDs; callers pick the
// first match in collection order.
func MatchSuffix(id, query string) bool {
	if query == "" {
		return false
	}
	return id == query || strings.HasSuffix(id, query)
}
