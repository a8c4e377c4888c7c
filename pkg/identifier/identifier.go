// Package identifier provides collision-resistant suffixes for submission
// directory names. Suffixes keep same-second submissions from the same user
// from racing on a single inbound path.
package identifier

import (
	"crypto/rand"

	"github.com/eknkc/basex"

	"github.com/pkg/errors"
)

const (
	// Length is the number of random bytes in a suffix. It is small enough to
	// keep submission names readable while still making same-second
	// collisions between identically named submissions vanishingly unlikely.
	Length = 9

	// alphabet is the Base62 alphabet used for encoding. Every character is
	// safe for use in URLs and POSIX paths.
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// encoding is the Base62 encoder. It is safe for concurrent use.
var encoding *basex.Encoding

func init() {
	// Initialize the Base62 encoder.
	if e, err := basex.NewEncoding(alphabet); err != nil {
		panic("unable to initialize Base62 encoder")
	} else {
		encoding = e
	}
}

// New generates a new collision-resistant suffix.
func New() (string, error) {
	// Create the random value.
	random := make([]byte, Length)
	if _, err := rand.Read(random); err != nil {
		return "", errors.Wrap(err, "unable to read random data")
	}

	// Encode the random value.
	return encoding.Encode(random), nil
}
