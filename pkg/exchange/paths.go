package exchange

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/handin-io/handin/pkg/filesystem"
)

const (
	// outboundName is the release-side subdirectory of a course's exchange
	// area.
	outboundName = "outbound"
	// inboundName is the submission-side subdirectory of a course's exchange
	// area.
	inboundName = "inbound"
	// nameSeparator separates the components of a submission directory name.
	nameSeparator = "+"
)

// suggestNearest returns the candidate most similar to the target by
// Levenshtein ratio, or an empty string if there are no candidates. The
// suggestion is informational only.
func suggestNearest(target string, candidates []string) string {
	var best string
	var bestRatio float64
	for _, candidate := range candidates {
		ratio := levenshtein.RatioForStrings([]rune(target), []rune(candidate), levenshtein.DefaultOptions)
		if ratio > bestRatio {
			best = candidate
			bestRatio = ratio
		}
	}
	return best
}

// siblingDirectories enumerates the directories under the specified parent,
// for use as not-found suggestions.
func siblingDirectories(parent string) []string {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil
	}
	var result []string
	for _, entry := range entries {
		if entry.IsDir() {
			result = append(result, entry.Name())
		}
	}
	return result
}

// ResolveFetchSource computes and validates the release source path for a
// fetch: root/course/outbound/assignment. A missing assignment yields a
// NotFoundError carrying the nearest sibling name; an unreadable one yields a
// PermissionError.
func ResolveFetchSource(root string, course *CourseDirectory) (string, error) {
	if err := course.EnsureValid(); err != nil {
		return "", err
	}

	outbound := filepath.Join(root, course.CourseID, outboundName)
	source := filepath.Join(outbound, course.AssignmentID)
	if info, err := os.Stat(source); err != nil || !info.IsDir() {
		return "", &NotFoundError{
			Path:       source,
			Suggestion: suggestNearest(course.AssignmentID, siblingDirectories(outbound)),
		}
	}
	if !filesystem.CheckAccess(source, true, false, true) {
		return "", &PermissionError{
			Path:    source,
			Message: "you don't have read permissions for the directory",
		}
	}

	// Success.
	return source, nil
}

// LocalAssignmentPath computes the local (student-side) path of an
// assignment, optionally prefixed with the course name.
func LocalAssignmentPath(assignmentDir string, pathIncludesCourse bool, course *CourseDirectory) (string, error) {
	local := course.AssignmentID
	if pathIncludesCourse {
		local = filepath.Join(course.CourseID, course.AssignmentID)
	}
	return filepath.Abs(filepath.Join(assignmentDir, local))
}

// ResolveSubmitSource computes and validates the local source path for a
// submission. A missing directory yields a NotFoundError with suggestions
// drawn from the assignment directory's contents.
func ResolveSubmitSource(assignmentDir string, pathIncludesCourse bool, course *CourseDirectory) (string, error) {
	if err := course.EnsureValid(); err != nil {
		return "", err
	}

	source, err := LocalAssignmentPath(assignmentDir, pathIncludesCourse, course)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(source); err != nil || !info.IsDir() {
		return "", &NotFoundError{
			Path:       source,
			Suggestion: suggestNearest(course.AssignmentID, siblingDirectories(filepath.Dir(source))),
		}
	}

	// Success.
	return source, nil
}

// ResolveInbound computes and validates the inbound submission area for a
// course: root/course/inbound. It must exist and be write+execute accessible.
func ResolveInbound(root string, course *CourseDirectory) (string, error) {
	if course.CourseID == "" {
		return "", &ConfigurationError{Message: "no course id specified, re-run with --course"}
	}

	inbound := filepath.Join(root, course.CourseID, inboundName)
	if info, err := os.Stat(inbound); err != nil || !info.IsDir() {
		return "", &NotFoundError{Path: inbound}
	}
	if !filesystem.CheckAccess(inbound, false, true, true) {
		return "", &PermissionError{
			Path:    inbound,
			Message: "you don't have write permissions to the directory",
		}
	}

	// Success.
	return inbound, nil
}

// SubmissionName formats a submission directory name from its components:
// username+assignment+timestamp, plus an optional collision-resistant suffix.
func SubmissionName(username, assignment, timestamp, suffix string) string {
	components := []string{username, assignment, timestamp}
	if suffix != "" {
		components = append(components, suffix)
	}
	return strings.Join(components, nameSeparator)
}

// Submission identifies a single timestamped submission directory under an
// inbound area.
type Submission struct {
	// Username is the submitting user.
	Username string
	// AssignmentID is the submitted assignment.
	AssignmentID string
	// Timestamp is the formatted submission timestamp.
	Timestamp string
	// Suffix is the collision-resistant suffix, if present.
	Suffix string
	// Path is the absolute path of the submission directory.
	Path string
}

// ParseSubmissionName parses a submission directory name of the form
// username+assignment+timestamp[+suffix]. It returns false for names that
// don't follow the scheme.
func ParseSubmissionName(name string) (Submission, bool) {
	components := strings.Split(name, nameSeparator)
	if len(components) != 3 && len(components) != 4 {
		return Submission{}, false
	}
	for _, component := range components {
		if component == "" {
			return Submission{}, false
		}
	}
	result := Submission{
		Username:     components[0],
		AssignmentID: components[1],
		Timestamp:    components[2],
	}
	if len(components) == 4 {
		result.Suffix = components[3]
	}
	return result, true
}
