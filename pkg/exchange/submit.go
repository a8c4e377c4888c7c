package exchange

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/handin-io/handin/pkg/filesystem"
	"github.com/handin-io/handin/pkg/identifier"
	"github.com/handin-io/handin/pkg/logging"
	"github.com/handin-io/handin/pkg/notebook"
	"github.com/handin-io/handin/pkg/render"
)

const (
	// TimestampCellTag is the metadata tag of the timestamp stamp cell.
	TimestampCellTag = "timestamp_cell"
	// HashcodeCellTag is the metadata tag of the hashcode stamp cell.
	HashcodeCellTag = "hashcode_cell"
	// scratchDirectoryName is the name of the scratch workspace used for
	// pre-render staging, created beside the assignment directory.
	scratchDirectoryName = ".temp"
	// hashcodeViewSuffix distinguishes the hashcoded HTML view from feedback
	// artifacts with the assignment's name.
	hashcodeViewSuffix = "_hashcode.html"
)

// stampMarkup formats the markdown body of a stamp cell.
func stampMarkup(label, value string) string {
	return fmt.Sprintf("<div class=\"alert alert-block alert-danger\">\n\n%s: <br><h1>%s</h1>\n\n</div>\n", label, value)
}

// SubmitOperation copies a student's assignment directory into the inbound
// exchange area, stamping the notebook with a timestamp and an integrity
// hashcode, rendering a static receipt view, and mirroring the submission
// into the local cache.
type SubmitOperation struct {
	// Course is the course directory configuration.
	Course *CourseDirectory
	// Strict fails the submission when released notebooks are missing from
	// the submitted set. Otherwise mismatches are only warned about.
	Strict bool
	// RandomSuffix appends a collision-resistant suffix to the submission
	// name, preventing same-second collisions between identically named
	// submissions.
	RandomSuffix bool
	// Renderer produces the static hashcode view. It may be nil, in which
	// case no view is rendered.
	Renderer render.Renderer

	// releasePath is the resolved release directory for filename diffing.
	releasePath string
	// name is the computed submission directory name.
	name string
	// cacheName is the submission name used in the local cache, which never
	// carries the random suffix.
	cacheName string
}

// Kind implements Operation.Kind.
func (s *SubmitOperation) Kind() string {
	return "submit"
}

// ResolveSource implements Operation.ResolveSource. The assignment identity
// is normalized to the base name of the resolved source directory.
func (s *SubmitOperation) ResolveSource(environment *Environment, record *Record) error {
	source, err := ResolveSubmitSource(environment.AssignmentDir, environment.PathIncludesCourse, s.Course)
	if err != nil {
		return err
	}
	s.Course.AssignmentID = filepath.Base(source)
	record.Source = source
	return nil
}

// ResolveDestination implements Operation.ResolveDestination.
func (s *SubmitOperation) ResolveDestination(environment *Environment, record *Record) error {
	inbound, err := ResolveInbound(environment.Root, s.Course)
	if err != nil {
		return err
	}

	// Compute the submission name, with a collision-resistant suffix when
	// configured. The cache copy never carries the suffix so that
	// resubmissions overwrite the previous cache entry.
	var suffix string
	if s.RandomSuffix {
		if suffix, err = identifier.New(); err != nil {
			return &TransferError{Message: "unable to generate submission suffix", Cause: err}
		}
	}
	s.name = SubmissionName(environment.Username, s.Course.AssignmentID, record.Timestamp, suffix)
	s.cacheName = SubmissionName(environment.Username, s.Course.AssignmentID, record.Timestamp, "")

	record.Destination = filepath.Join(inbound, s.name)
	return nil
}

// stampAndRender stamps the working notebook with the submission timestamp,
// archives a pre-hashcode working copy into the scratch workspace, writes the
// student's receipt, and renders the hashcoded static view back beside the
// notebook. It is a no-op when the assignment carries no notebook named after
// itself.
func (s *SubmitOperation) stampAndRender(environment *Environment, record *Record, logger *logging.Logger) error {
	notebookPath := filepath.Join(record.Source, s.Course.AssignmentID+".ipynb")
	if info, err := os.Stat(notebookPath); err != nil || info.IsDir() {
		logger.Warnf("no notebook found at %s, skipping stamping", notebookPath)
		return nil
	}

	// Stamp the submission timestamp into the working notebook.
	document, err := notebook.Read(notebookPath)
	if err != nil {
		return &TransferError{Message: "unable to read notebook", Cause: err}
	}
	document.Stamp(TimestampCellTag, stampMarkup("Timestamp", record.Timestamp))
	if err := document.Write(notebookPath); err != nil {
		return &TransferError{Message: "unable to stamp notebook", Cause: err}
	}

	// Archive the working tree into the scratch workspace before the
	// hashcode stamp, so the hashcode itself never alters the hashed
	// content.
	logger.Infof("Copying working tree into scratch workspace")
	scratch := filepath.Join(filepath.Dir(record.Source), scratchDirectoryName, s.Course.AssignmentID)
	if err := os.MkdirAll(filepath.Dir(scratch), 0755); err != nil {
		return &TransferError{Message: "unable to create scratch workspace", Cause: err}
	}
	if err := CopyTreeOverwrite(record.Source, scratch, nil, logger); err != nil {
		return &TransferError{Message: "unable to archive working tree", Cause: err}
	}

	// Compute the hashcode of the timestamped notebook.
	hashcode, err := notebook.Hashcode(notebookPath)
	if err != nil {
		return &TransferError{Message: "unable to compute hashcode", Cause: err}
	}
	logger.Infof("Hashcode generated: %s", hashcode)

	// Write the student's receipt beside the notebook.
	receiptPath := filepath.Join(record.Source, ReceiptFileName(environment.Username))
	if err := WriteReceipt(receiptPath, environment.Username, hashcode, record.Timestamp); err != nil {
		return &TransferError{Message: "unable to write receipt", Cause: err}
	}

	// Stamp the hashcode into the archived copy and render its static view.
	scratchNotebook := filepath.Join(scratch, s.Course.AssignmentID+".ipynb")
	archived, err := notebook.Read(scratchNotebook)
	if err != nil {
		return &TransferError{Message: "unable to read archived notebook", Cause: err}
	}
	archived.Stamp(HashcodeCellTag, stampMarkup("Your hashcode", hashcode))
	if err := archived.Write(scratchNotebook); err != nil {
		return &TransferError{Message: "unable to stamp archived notebook", Cause: err}
	}

	if s.Renderer == nil {
		return nil
	}
	scratchView := filepath.Join(scratch, s.Course.AssignmentID+".html")
	logger.Infof("Generating static view")
	if err := s.Renderer.Render(scratchNotebook, scratchView); err != nil {
		return &RenderError{Cause: err}
	}

	// Copy the rendered view back beside the notebook, under a name that
	// won't collide with instructor feedback artifacts.
	viewInfo, err := os.Stat(scratchView)
	if err != nil {
		return &RenderError{Cause: errors.Wrap(err, "rendered view missing")}
	}
	viewPath := filepath.Join(record.Source, s.Course.AssignmentID+hashcodeViewSuffix)
	if err := copyFile(scratchView, viewPath, viewInfo); err != nil {
		return &TransferError{Message: "unable to copy static view", Cause: err}
	}

	// Success.
	return nil
}

// Transfer implements Operation.Transfer.
func (s *SubmitOperation) Transfer(environment *Environment, record *Record) error {
	logger := environment.Logger.Sublogger(s.Kind())

	// Resolve the release directory. The released notebook set is the
	// reference for filename validation.
	releasePath, err := ResolveFetchSource(environment.Root, s.Course)
	if err != nil {
		return err
	}
	s.releasePath = releasePath

	// Diff released against submitted notebook filenames.
	diff, err := CompareNotebooks(s.releasePath, record.Source)
	if err != nil {
		return &TransferError{Message: "unable to compare notebooks", Cause: err}
	}
	if !diff.Clean() {
		if diff.Missing && s.Strict {
			return &ValidationError{Message: fmt.Sprintf(
				"assignment %s not submitted, there are missing notebooks for the submission:\n%s",
				s.Course.AssignmentID, diff.Report(),
			)}
		}
		logger.Warnf(
			"possible missing notebooks and/or extra notebooks submitted for assignment %s:\n%s",
			s.Course.AssignmentID, diff.Report(),
		)
	}

	// Stamp, archive, and render.
	if err := s.stampAndRender(environment, record, logger); err != nil {
		return err
	}

	logger.Infof("Source: %s", record.Source)
	logger.Infof("Destination: %s", record.Destination)

	// Construct the transfer filter.
	filter, err := s.Course.Filter()
	if err != nil {
		return &ConfigurationError{Message: err.Error()}
	}

	// Copy the stamped tree into the inbound area and write its timestamp
	// file.
	if err := CopyTree(record.Source, record.Destination, filter, logger); err != nil {
		return &TransferError{Message: "unable to copy submission", Cause: err}
	}
	if s.Course.GroupShared {
		if err := filesystem.EnsureGroupShared(record.Destination, logger); err != nil {
			return &TransferError{Message: "unable to normalize permissions", Cause: err}
		}
	}
	if err := WriteTimestamp(filepath.Join(record.Destination, TimestampFileName), record.Timestamp); err != nil {
		return &TransferError{Message: "unable to write timestamp file", Cause: err}
	}

	// Make the submission world-readable, then open up the submission
	// directory itself so the instructor-owning process can delete it later.
	// It remains hidden from other users only by its unguessable timestamped
	// name.
	if err := filesystem.ApplyPermissions(record.Destination, 0644, 0755, logger); err != nil {
		return &TransferError{Message: "unable to normalize permissions", Cause: err}
	}
	if err := os.Chmod(record.Destination, 0777); err != nil {
		return &TransferError{Message: "unable to open submission directory", Cause: err}
	}

	// Mirror the submission into the local cache.
	cacheDir := filepath.Join(environment.Cache, s.Course.CourseID)
	if err := filesystem.EnsureDirectory(cacheDir, 0755, false); err != nil {
		return &TransferError{Message: "unable to create cache directory", Cause: err}
	}
	cacheDestination := filepath.Join(cacheDir, s.cacheName)
	if err := CopyTreeOverwrite(record.Source, cacheDestination, filter, logger); err != nil {
		return &TransferError{Message: "unable to copy submission to cache", Cause: err}
	}
	if err := WriteTimestamp(filepath.Join(cacheDestination, TimestampFileName), record.Timestamp); err != nil {
		return &TransferError{Message: "unable to write cache timestamp file", Cause: err}
	}

	logger.Infof("Submitted as: %s %s %s", s.Course.CourseID, s.Course.AssignmentID, record.Timestamp)

	// Success.
	return nil
}
