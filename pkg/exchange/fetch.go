package exchange

import (
	"os"

	"github.com/pkg/errors"

	"github.com/handin-io/handin/pkg/filesystem"
)

// FetchOperation copies a released assignment from the outbound exchange area
// into the student's local assignment directory.
type FetchOperation struct {
	// Course is the course directory configuration.
	Course *CourseDirectory
	// ReplaceMissing allows fetching into an existing local copy, creating
	// only entries that are absent (for releases amended after the original
	// fetch).
	ReplaceMissing bool

	// destinationExists records whether the destination pre-existed, which
	// selects the fill-missing copy strategy.
	destinationExists bool
}

// Kind implements Operation.Kind.
func (f *FetchOperation) Kind() string {
	return "fetch"
}

// ResolveSource implements Operation.ResolveSource.
func (f *FetchOperation) ResolveSource(environment *Environment, record *Record) error {
	source, err := ResolveFetchSource(environment.Root, f.Course)
	if err != nil {
		return err
	}
	record.Source = source
	return nil
}

// ResolveDestination implements Operation.ResolveDestination. An existing
// destination is rejected unless fill-missing mode is enabled, in which case
// the fetch leaves existing files untouched.
func (f *FetchOperation) ResolveDestination(environment *Environment, record *Record) error {
	destination, err := LocalAssignmentPath(environment.AssignmentDir, environment.PathIncludesCourse, f.Course)
	if err != nil {
		return errors.Wrap(err, "unable to resolve local assignment path")
	}
	if info, err := os.Stat(destination); err == nil && info.IsDir() {
		if !f.ReplaceMissing {
			return &TransferError{
				Message: "you already have a copy of the assignment in this directory: " + destination,
			}
		}
		f.destinationExists = true
	}
	record.Destination = destination
	return nil
}

// Transfer implements Operation.Transfer.
func (f *FetchOperation) Transfer(environment *Environment, record *Record) error {
	logger := environment.Logger.Sublogger(f.Kind())
	logger.Infof("Source: %s", record.Source)
	logger.Infof("Destination: %s", record.Destination)

	// Construct the transfer filter.
	filter, err := f.Course.Filter()
	if err != nil {
		return &ConfigurationError{Message: err.Error()}
	}

	// Copy, filling in only missing entries when the destination already
	// exists.
	if f.destinationExists {
		if err := CopyMissing(record.Source, record.Destination, filter, logger); err != nil {
			return &TransferError{Message: "unable to fill in missing files", Cause: err}
		}
	} else {
		if err := CopyTree(record.Source, record.Destination, filter, logger); err != nil {
			return &TransferError{Message: "unable to copy assignment", Cause: err}
		}
	}

	// Restore group access on the new tree if the course is group-shared.
	if f.Course.GroupShared {
		if err := filesystem.EnsureGroupShared(record.Destination, logger); err != nil {
			return &TransferError{Message: "unable to normalize permissions", Cause: err}
		}
	}

	logger.Infof("Fetched as: %s %s", f.Course.CourseID, f.Course.AssignmentID)

	// Success.
	return nil
}
