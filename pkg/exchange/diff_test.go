package exchange

import (
	"strings"
	"testing"
)

func TestCompareNotebooksClean(t *testing.T) {
	release := t.TempDir()
	createTree(t, release, map[string]string{"a.ipynb": "a", "b.ipynb": "b"})
	submission := t.TempDir()
	createTree(t, submission, map[string]string{"a.ipynb": "a2", "b.ipynb": "b2"})

	diff, err := CompareNotebooks(release, submission)
	if err != nil {
		t.Fatal("unable to compare notebooks:", err)
	}
	if !diff.Clean() {
		t.Error("matching sets reported as mismatched:", diff.Report())
	}
}

func TestCompareNotebooksMissingAndExtra(t *testing.T) {
	release := t.TempDir()
	createTree(t, release, map[string]string{"a.ipynb": "a", "b.ipynb": "b"})
	submission := t.TempDir()
	createTree(t, submission, map[string]string{"a.ipynb": "a2", "c.ipynb": "c"})

	diff, err := CompareNotebooks(release, submission)
	if err != nil {
		t.Fatal("unable to compare notebooks:", err)
	}
	if !diff.Missing {
		t.Error("missing notebook not detected")
	}
	if !diff.Extra {
		t.Error("extra notebook not detected")
	}
	report := diff.Report()
	for _, expected := range []string{"a.ipynb: FOUND", "b.ipynb: MISSING", "a.ipynb: OK", "c.ipynb: EXTRA"} {
		if !strings.Contains(report, expected) {
			t.Errorf("report missing %q:\n%s", expected, report)
		}
	}
}

func TestCompareNotebooksNestedPaths(t *testing.T) {
	release := t.TempDir()
	createTree(t, release, map[string]string{"part1/a.ipynb": "a"})
	submission := t.TempDir()
	createTree(t, submission, map[string]string{"a.ipynb": "a"})

	// A notebook moved to a different relative path counts as both missing
	// and extra: matching is on exact relative paths.
	diff, err := CompareNotebooks(release, submission)
	if err != nil {
		t.Fatal("unable to compare notebooks:", err)
	}
	if !diff.Missing || !diff.Extra {
		t.Error("relocated notebook not reported as missing and extra")
	}
}
