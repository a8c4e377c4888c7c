package exchange

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/handin-io/handin/pkg/filesystem"
)

// CollectOperation pulls student submissions from the inbound exchange area
// into an instructor-local directory, keeping only the latest submission per
// student.
type CollectOperation struct {
	// Course is the course directory configuration.
	Course *CourseDirectory
	// SubmittedDir is the instructor-local directory that collected
	// submissions are copied into.
	SubmittedDir string
	// Update skips students whose collected submission is already as recent
	// as their latest inbound submission.
	Update bool

	// submissions holds the latest submission per student, ordered by
	// username.
	submissions []Submission
}

// Kind implements Operation.Kind.
func (c *CollectOperation) Kind() string {
	return "collect"
}

// ResolveSource implements Operation.ResolveSource. It enumerates the inbound
// area and selects the latest timestamped submission per student for the
// configured assignment.
func (c *CollectOperation) ResolveSource(environment *Environment, record *Record) error {
	if err := c.Course.EnsureValid(); err != nil {
		return err
	}

	inbound := filepath.Join(environment.Root, c.Course.CourseID, inboundName)
	if info, err := os.Stat(inbound); err != nil || !info.IsDir() {
		return &NotFoundError{Path: inbound}
	}
	if !filesystem.CheckAccess(inbound, true, false, true) {
		return &PermissionError{
			Path:    inbound,
			Message: "you don't have read permissions for the directory",
		}
	}

	entries, err := os.ReadDir(inbound)
	if err != nil {
		return &TransferError{Message: "unable to enumerate inbound directory", Cause: err}
	}

	// Keep the latest submission per student.
	latest := make(map[string]Submission)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		submission, ok := ParseSubmissionName(entry.Name())
		if !ok || submission.AssignmentID != c.Course.AssignmentID {
			continue
		}
		submission.Path = filepath.Join(inbound, entry.Name())
		if existing, ok := latest[submission.Username]; !ok ||
			LaterTimestamp(submission.Timestamp, existing.Timestamp, environment.TimestampLayout) {
			latest[submission.Username] = submission
		}
	}

	// Order by username for deterministic processing.
	c.submissions = make([]Submission, 0, len(latest))
	for _, submission := range latest {
		c.submissions = append(c.submissions, submission)
	}
	sort.Slice(c.submissions, func(i, j int) bool {
		return c.submissions[i].Username < c.submissions[j].Username
	})

	record.Source = inbound
	return nil
}

// ResolveDestination implements Operation.ResolveDestination.
func (c *CollectOperation) ResolveDestination(environment *Environment, record *Record) error {
	destination, err := filepath.Abs(c.SubmittedDir)
	if err != nil {
		return errors.Wrap(err, "unable to resolve submitted directory")
	}
	if err := filesystem.EnsureDirectory(destination, 0755, false); err != nil {
		return &PermissionError{Path: destination, Message: err.Error()}
	}
	record.Destination = destination
	return nil
}

// collectedTimestamp reads the timestamp file of a previously collected
// submission, returning an empty string if there is none.
func collectedTimestamp(path string) string {
	data, err := os.ReadFile(filepath.Join(path, TimestampFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Transfer implements Operation.Transfer.
func (c *CollectOperation) Transfer(environment *Environment, record *Record) error {
	logger := environment.Logger.Sublogger(c.Kind())

	// Construct the transfer filter.
	filter, err := c.Course.Filter()
	if err != nil {
		return &ConfigurationError{Message: err.Error()}
	}

	if len(c.submissions) == 0 {
		logger.Warnf("no submissions of %s for course %s", c.Course.AssignmentID, c.Course.CourseID)
		return nil
	}

	// Copy each student's latest submission.
	for _, submission := range c.submissions {
		destination := filepath.Join(record.Destination, submission.Username, c.Course.AssignmentID)

		// Skip students whose collected copy is already current.
		if c.Update {
			if existing := collectedTimestamp(destination); existing != "" &&
				!LaterTimestamp(submission.Timestamp, existing, environment.TimestampLayout) {
				logger.Infof("Skipping %s %s: already up to date", submission.Username, c.Course.AssignmentID)
				continue
			}
		}

		logger.Infof("Collecting submission: %s %s", submission.Username, c.Course.AssignmentID)
		if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
			return &TransferError{Message: "unable to create student directory", Cause: err}
		}
		if err := CopyTreeOverwrite(submission.Path, destination, filter, logger); err != nil {
			return &TransferError{Message: "unable to copy submission", Cause: err}
		}
	}

	logger.Infof("Collected %d submission(s) of %s", len(c.submissions), c.Course.AssignmentID)

	// Success.
	return nil
}
