package exchange

import (
	"fmt"
	"os"
	"path"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// Filter decides which entries of a source tree participate in a transfer,
// based on exclusion globs, inclusion globs, and a maximum file size.
type Filter struct {
	// exclude is the list of exclusion patterns.
	exclude []string
	// include is the list of inclusion patterns. When non-empty, files must
	// match at least one pattern to be transferred.
	include []string
	// maxFileSize is the maximum transferable file size in bytes. Zero means
	// unlimited.
	maxFileSize uint64
}

// validatePatterns ensures that every pattern is valid doublestar syntax.
// Validation is performed up front so that matching can never fail later.
func validatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if pattern == "" {
			return errors.New("empty pattern")
		}
		if _, err := doublestar.Match(pattern, "a"); err != nil {
			return errors.Errorf("unable to validate pattern %q: %v", pattern, err)
		}
	}
	return nil
}

// NewFilter creates a transfer filter from the specified exclusion patterns,
// inclusion patterns, and maximum file size.
func NewFilter(exclude, include []string, maxFileSize uint64) (*Filter, error) {
	if err := validatePatterns(exclude); err != nil {
		return nil, errors.Wrap(err, "invalid ignore pattern")
	}
	if err := validatePatterns(include); err != nil {
		return nil, errors.Wrap(err, "invalid include pattern")
	}
	return &Filter{
		exclude:     exclude,
		include:     include,
		maxFileSize: maxFileSize,
	}, nil
}

// matchesAny checks a slash-separated relative path against a pattern list.
// Patterns are matched against both the full relative path and its base name,
// so that a bare pattern like "*.pyc" applies at any depth.
func matchesAny(patterns []string, relative string) bool {
	base := path.Base(relative)
	for _, pattern := range patterns {
		// Validity is guaranteed by the constructor, so matching can't fail.
		if matched, _ := doublestar.Match(pattern, relative); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// Skip determines whether or not the entry at the specified slash-separated
// relative path should be skipped. Directories are only subject to exclusion
// patterns; files are additionally subject to inclusion patterns and the
// size limit. A non-empty reason is returned for skips worth logging.
func (f *Filter) Skip(relative string, info os.FileInfo) (bool, string) {
	// A nil filter transfers everything.
	if f == nil {
		return false, ""
	}

	// Exclusions apply to files and directories alike.
	if matchesAny(f.exclude, relative) {
		return true, ""
	}

	// Directories are never subject to inclusion or size constraints.
	if info.IsDir() {
		return false, ""
	}

	// When inclusion patterns are set, files must match one.
	if len(f.include) > 0 && !matchesAny(f.include, relative) {
		return true, fmt.Sprintf("%s does not match any include pattern", relative)
	}

	// Enforce the size limit.
	if f.maxFileSize > 0 && uint64(info.Size()) > f.maxFileSize {
		return true, fmt.Sprintf(
			"%s exceeds maximum file size (%s > %s)",
			relative,
			humanize.Bytes(uint64(info.Size())),
			humanize.Bytes(f.maxFileSize),
		)
	}

	// Transfer the entry.
	return false, ""
}
