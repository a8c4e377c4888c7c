package exchange

import (
	"time"

	"github.com/pkg/errors"
)

// Timestamp formats the current time in the specified IANA timezone using the
// specified layout.
func Timestamp(timezone, layout string) (string, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return "", errors.Wrapf(err, "invalid timezone %q", timezone)
	}
	return time.Now().In(location).Format(layout), nil
}

// ParseTimestamp parses a formatted submission timestamp. It is used to order
// submissions during collection.
func ParseTimestamp(value, layout string) (time.Time, error) {
	return time.Parse(layout, value)
}

// LaterTimestamp reports whether candidate is strictly later than reference.
// When either timestamp fails to parse with the specified layout, the
// comparison falls back to lexicographic order, which matches chronological
// order for the canonical layout.
func LaterTimestamp(candidate, reference, layout string) bool {
	candidateTime, candidateErr := ParseTimestamp(candidate, layout)
	referenceTime, referenceErr := ParseTimestamp(reference, layout)
	if candidateErr != nil || referenceErr != nil {
		return candidate > reference
	}
	return candidateTime.After(referenceTime)
}
