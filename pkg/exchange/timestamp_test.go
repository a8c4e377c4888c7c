package exchange

import (
	"testing"
	"time"
)

// testLayout is the canonical timestamp layout used across exchange tests.
const testLayout = "2006-01-02 15:04:05.000000 MST"

func TestTimestamp(t *testing.T) {
	value, err := Timestamp("UTC", testLayout)
	if err != nil {
		t.Fatal("unable to compute timestamp:", err)
	}
	parsed, err := time.Parse(testLayout, value)
	if err != nil {
		t.Fatal("unable to parse computed timestamp:", err)
	}
	if delta := time.Since(parsed); delta < 0 || delta > time.Minute {
		t.Error("computed timestamp implausible:", value)
	}
}

func TestTimestampInvalidTimezone(t *testing.T) {
	if _, err := Timestamp("Not/AZone", testLayout); err == nil {
		t.Error("invalid timezone did not surface as an error")
	}
}

func TestLaterTimestamp(t *testing.T) {
	earlier := "2026-01-02 10:00:00.000000 UTC"
	later := "2026-01-02 11:00:00.000000 UTC"
	if !LaterTimestamp(later, earlier, testLayout) {
		t.Error("later timestamp not detected")
	}
	if LaterTimestamp(earlier, later, testLayout) {
		t.Error("earlier timestamp reported as later")
	}
	if LaterTimestamp(earlier, earlier, testLayout) {
		t.Error("equal timestamp reported as later")
	}

	// Unparseable values fall back to lexicographic comparison.
	if !LaterTimestamp("b", "a", testLayout) {
		t.Error("lexicographic fallback not applied")
	}
}
