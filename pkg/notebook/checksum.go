package notebook

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	// hashcodeLength is the number of hexadecimal characters retained from
	// the digest.
	hashcodeLength = 20
	// hashcodeGroupSize is the number of characters per dash-separated group.
	hashcodeGroupSize = 5
)

// Hashcode computes the content checksum of the document at the specified
// path: a SHA-1 digest truncated to twenty hexadecimal characters and grouped
// into dash-separated blocks of five for readability
// (e.g. "1a2b3-c4d5e-6f7a8-b9c0d").
func Hashcode(path string) (string, error) {
	// Read the canonical document bytes.
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "unable to read document")
	}

	// Compute and truncate the digest.
	digest := sha1.Sum(data)
	code := hex.EncodeToString(digest[:])[:hashcodeLength]

	// Group for readability.
	groups := make([]string, 0, hashcodeLength/hashcodeGroupSize)
	for i := 0; i < hashcodeLength; i += hashcodeGroupSize {
		groups = append(groups, code[i:i+hashcodeGroupSize])
	}
	return strings.Join(groups, "-"), nil
}
