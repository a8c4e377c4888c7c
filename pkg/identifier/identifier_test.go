package identifier

import (
	"testing"
)

// TestNew tests New.
func TestNew(t *testing.T) {
	suffix, err := New()
	if err != nil {
		t.Fatal("unable to create suffix:", err)
	} else if suffix == "" {
		t.Error("suffix was empty")
	}
	for _, r := range suffix {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			t.Error("suffix contained non-alphanumeric character:", string(r))
		}
	}
}

// TestNewUnique verifies that consecutive suffixes differ.
func TestNewUnique(t *testing.T) {
	first, err := New()
	if err != nil {
		t.Fatal("unable to create first suffix:", err)
	}
	second, err := New()
	if err != nil {
		t.Fatal("unable to create second suffix:", err)
	}
	if first == second {
		t.Error("consecutive suffixes were identical:", first)
	}
}
