package exchange

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/handin-io/handin/pkg/logging"
)

// copyFile copies a single regular file, preserving its permission bits.
func copyFile(source, destination string, info os.FileInfo) error {
	// Open the source.
	reader, err := os.Open(source)
	if err != nil {
		return errors.Wrap(err, "unable to open source file")
	}
	defer reader.Close()

	// Create the destination with the source's permission bits.
	writer, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Wrap(err, "unable to create destination file")
	}

	// Copy contents.
	if _, err := io.Copy(writer, reader); err != nil {
		writer.Close()
		return errors.Wrap(err, "unable to copy file contents")
	}

	// Close out the destination.
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "unable to close destination file")
	}

	// Success.
	return nil
}

// sortedEntries lists a directory's entries in deterministic order.
func sortedEntries(path string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read directory")
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// copyTreeRecursive is the recursive implementation underlying CopyTree. The
// relative parameter tracks the slash-separated path of the current directory
// relative to the copy root, for filter matching.
func copyTreeRecursive(source, destination, relative string, filter *Filter, logger *logging.Logger) error {
	// List source contents.
	entries, err := sortedEntries(source)
	if err != nil {
		return err
	}

	// Process entries.
	for _, entry := range entries {
		sourcePath := filepath.Join(source, entry.Name())
		destinationPath := filepath.Join(destination, entry.Name())
		entryRelative := entry.Name()
		if relative != "" {
			entryRelative = relative + "/" + entry.Name()
		}

		// Grab metadata and apply the filter.
		info, err := entry.Info()
		if err != nil {
			return errors.Wrap(err, "unable to read entry metadata")
		}
		if skip, reason := filter.Skip(entryRelative, info); skip {
			if reason != "" {
				logger.Infof("Skipping %s", reason)
			}
			continue
		}

		// Transfer the entry.
		if entry.IsDir() {
			if err := os.MkdirAll(destinationPath, info.Mode().Perm()); err != nil {
				return errors.Wrap(err, "unable to create directory")
			}
			if err := copyTreeRecursive(sourcePath, destinationPath, entryRelative, filter, logger); err != nil {
				return err
			}
		} else if info.Mode().IsRegular() {
			if err := copyFile(sourcePath, destinationPath, info); err != nil {
				return err
			}
		} else {
			logger.Warnf("skipping non-regular file %s", entryRelative)
		}
	}

	// Success.
	return nil
}

// CopyTree recursively copies the source directory into the destination,
// excluding entries rejected by the filter. The destination is created if
// absent and existing files are overwritten. On failure, the destination is
// left in whatever partial state the copy produced.
func CopyTree(source, destination string, filter *Filter, logger *logging.Logger) error {
	// Verify the source.
	info, err := os.Stat(source)
	if err != nil {
		return errors.Wrap(err, "unable to stat source")
	} else if !info.IsDir() {
		return errors.New("source is not a directory")
	}

	// Create the destination root with the source's permission bits.
	if err := os.MkdirAll(destination, info.Mode().Perm()); err != nil {
		return errors.Wrap(err, "unable to create destination")
	}

	// Perform the copy.
	return copyTreeRecursive(source, destination, "", filter, logger)
}

// copyMissingRecursive is the recursive implementation underlying
// CopyMissing.
func copyMissingRecursive(source, destination, relative string, filter *Filter, logger *logging.Logger) error {
	// List source contents.
	entries, err := sortedEntries(source)
	if err != nil {
		return err
	}

	// Process entries.
	for _, entry := range entries {
		sourcePath := filepath.Join(source, entry.Name())
		destinationPath := filepath.Join(destination, entry.Name())
		entryRelative := entry.Name()
		if relative != "" {
			entryRelative = relative + "/" + entry.Name()
		}

		// Grab metadata and apply the filter.
		info, err := entry.Info()
		if err != nil {
			return errors.Wrap(err, "unable to read entry metadata")
		}
		if skip, reason := filter.Skip(entryRelative, info); skip {
			if reason != "" {
				logger.Infof("Skipping %s", reason)
			}
			continue
		}

		// Create absent entries, leaving existing ones untouched.
		_, statErr := os.Lstat(destinationPath)
		missing := os.IsNotExist(statErr)
		if entry.IsDir() {
			if missing {
				logger.Warnf("creating missing directory '%s'", entryRelative)
				if err := os.Mkdir(destinationPath, info.Mode().Perm()); err != nil {
					return errors.Wrap(err, "unable to create directory")
				}
			}
			// Recurse unconditionally so that files added to existing
			// subdirectories are still replaced.
			if err := copyMissingRecursive(sourcePath, destinationPath, entryRelative, filter, logger); err != nil {
				return err
			}
		} else if missing && info.Mode().IsRegular() {
			logger.Warnf("replacing missing file '%s'", entryRelative)
			if err := copyFile(sourcePath, destinationPath, info); err != nil {
				return err
			}
		}
	}

	// Success.
	return nil
}

// CopyMissing copies only those entries of the source directory that are
// absent from the destination, which must already exist. Existing destination
// files are never modified. It recurses into subdirectories unconditionally,
// applying the filter at each level.
func CopyMissing(source, destination string, filter *Filter, logger *logging.Logger) error {
	// Verify the source and destination.
	if info, err := os.Stat(source); err != nil {
		return errors.Wrap(err, "unable to stat source")
	} else if !info.IsDir() {
		return errors.New("source is not a directory")
	}
	if info, err := os.Stat(destination); err != nil {
		return errors.Wrap(err, "unable to stat destination")
	} else if !info.IsDir() {
		return errors.New("destination is not a directory")
	}

	// Perform the copy.
	return copyMissingRecursive(source, destination, "", filter, logger)
}

// CopyTreeOverwrite replaces the destination tree (if any) with a copy of the
// source tree. It is used for scratch staging where the previous attempt's
// contents must not leak into the new one.
func CopyTreeOverwrite(source, destination string, filter *Filter, logger *logging.Logger) error {
	if err := os.RemoveAll(destination); err != nil {
		return errors.Wrap(err, "unable to remove previous destination")
	}
	return CopyTree(source, destination, filter, logger)
}
