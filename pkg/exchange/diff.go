package exchange

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// findNotebooks collects the slash-separated relative paths of all notebook
// files under the specified directory, in sorted order.
func findNotebooks(root string) ([]string, error) {
	var result []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".ipynb") {
			return nil
		}
		relative, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		result = append(result, filepath.ToSlash(relative))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to enumerate notebooks")
	}
	sort.Strings(result)
	return result, nil
}

// NotebookDiff captures the comparison of released and submitted notebook
// filenames.
type NotebookDiff struct {
	// Missing indicates that at least one released notebook is absent from
	// the submission.
	Missing bool
	// Extra indicates that the submission contains at least one notebook not
	// present in the release.
	Extra bool
	// releaseReport holds the per-released-notebook status lines.
	releaseReport []string
	// submittedReport holds the per-submitted-notebook status lines.
	submittedReport []string
}

// Clean indicates whether or not the released and submitted sets match
// exactly.
func (d *NotebookDiff) Clean() bool {
	return !d.Missing && !d.Extra
}

// Report formats the diff for display: every released notebook is reported as
// FOUND or MISSING and every submitted notebook as OK or EXTRA.
func (d *NotebookDiff) Report() string {
	return fmt.Sprintf(
		"Expected:\n\t%s\nSubmitted:\n\t%s",
		strings.Join(d.releaseReport, "\n\t"),
		strings.Join(d.submittedReport, "\n\t"),
	)
}

// CompareNotebooks diffs the notebook filenames of a released assignment
// against those of a submission, matching on exact relative paths.
func CompareNotebooks(releaseDir, submitDir string) (*NotebookDiff, error) {
	released, err := findNotebooks(releaseDir)
	if err != nil {
		return nil, err
	}
	submitted, err := findNotebooks(submitDir)
	if err != nil {
		return nil, err
	}

	submittedSet := make(map[string]bool, len(submitted))
	for _, name := range submitted {
		submittedSet[name] = true
	}
	releasedSet := make(map[string]bool, len(released))
	for _, name := range released {
		releasedSet[name] = true
	}

	// Look for released notebooks missing from the submission.
	diff := &NotebookDiff{}
	for _, name := range released {
		if submittedSet[name] {
			diff.releaseReport = append(diff.releaseReport, fmt.Sprintf("%s: FOUND", name))
		} else {
			diff.Missing = true
			diff.releaseReport = append(diff.releaseReport, fmt.Sprintf("%s: MISSING", name))
		}
	}

	// Look for extra notebooks in the submission.
	for _, name := range submitted {
		if releasedSet[name] {
			diff.submittedReport = append(diff.submittedReport, fmt.Sprintf("%s: OK", name))
		} else {
			diff.Extra = true
			diff.submittedReport = append(diff.submittedReport, fmt.Sprintf("%s: EXTRA", name))
		}
	}

	// Success.
	return diff, nil
}
