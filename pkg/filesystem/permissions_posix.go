//go:build !windows
// +build !windows

package filesystem

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"golang.org/x/sys/unix"

	"github.com/handin-io/handin/pkg/logging"
)

// ApplyPermissions walks the tree rooted at the specified path and applies
// the file permissions to every file and the directory permissions to every
// directory. Files are processed first and directories are processed last in
// bottom-up order, so that a directory is never locked before its children
// have been handled. Failure to change the mode of a single entry is logged
// as a warning and does not abort the walk.
func ApplyPermissions(root string, filePerm, dirPerm Mode, logger *logging.Logger) error {
	// Walk the tree, changing file modes as we go and recording directories
	// for the second pass.
	var directories []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			directories = append(directories, path)
			return nil
		}
		if err := unix.Chmod(path, uint32(filePerm)); err != nil {
			logger.Warnf("could not update permissions of %s: %v", path, err)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "unable to walk tree")
	}

	// Process directories in reverse (bottom-up) order.
	for i := len(directories) - 1; i >= 0; i-- {
		if err := unix.Chmod(directories[i], uint32(dirPerm)); err != nil {
			logger.Warnf("could not update permissions of %s: %v", directories[i], err)
		}
	}

	// Success.
	return nil
}

// EnsureGroupShared walks the tree rooted at the specified path and ORs group
// read/write bits into every file mode and group read/write/execute plus
// setgid bits into every directory mode. A raw copy preserves source modes,
// so this pass restores group access on trees written into group-shared
// course areas. Per-entry chmod failures are logged as warnings and
// tolerated.
func EnsureGroupShared(root string, logger *logging.Logger) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Grab the raw mode bits.
		var stat unix.Stat_t
		if err := unix.Stat(path, &stat); err != nil {
			return errors.Wrap(err, "unable to stat entry")
		}
		mode := Mode(stat.Mode) & ModePermissionsMask

		// Compute the target mode.
		var target Mode
		if info.IsDir() {
			target = (mode | ModeGroupReadWriteExecute | ModeSetGID) & ModePermissionsMask
		} else {
			target = (mode | ModeGroupReadWrite) & 0777
		}

		// Apply it if anything is missing.
		if mode != target {
			if err := unix.Chmod(path, uint32(target)); err != nil {
				logger.Warnf("could not update permissions of %s to make it group-shared: %v", path, err)
			}
		}

		// Continue the walk.
		return nil
	})
}

// EnsureDirectory ensures that the specified path exists as a directory with
// the specified mode. The mode is applied with an explicit chmod so that it
// survives the process umask. If the directory already exists and
// requireSelfOwned is set, ownership by the current user is verified.
func EnsureDirectory(path string, mode Mode, requireSelfOwned bool) error {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return errors.New("path exists but is not a directory")
		}
		if requireSelfOwned && !SelfOwned(path) {
			return errors.New("directory is not owned by the current user")
		}
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "unable to probe path")
	}

	if err := os.MkdirAll(path, os.FileMode(mode&0777)); err != nil {
		return errors.Wrap(err, "unable to create directory")
	}
	if err := unix.Chmod(path, uint32(mode)); err != nil {
		return errors.Wrap(err, "unable to set directory mode")
	}

	// Success.
	return nil
}
