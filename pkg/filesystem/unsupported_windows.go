//go:build windows
// +build windows

package filesystem

import (
	"os"

	"github.com/pkg/errors"

	"github.com/handin-io/handin/pkg/logging"
)

// The exchange requires POSIX permission semantics, so all operations on
// Windows are stubbed out. The orchestrator rejects execution on Windows
// before any of these can be reached.

// Mode is an opaque type representing a file mode.
type Mode uint32

const (
	// ModePermissionsMask is a bit mask that isolates the permission portion
	// of a mode.
	ModePermissionsMask = Mode(0777)
	// ModeSetGID is the setgid bit.
	ModeSetGID = Mode(0)
	// ModeGroupReadWrite grants group read and write access.
	ModeGroupReadWrite = Mode(0)
	// ModeGroupReadWriteExecute grants group read, write, and execute access.
	ModeGroupReadWriteExecute = Mode(0)
)

// errUnsupported is returned by all permission operations on Windows.
var errUnsupported = errors.New("POSIX permissions not supported on this platform")

// SharedModes computes the file and directory permissions to apply to course
// directories.
func SharedModes(groupShared bool) (Mode, Mode) {
	return 0644, 0755
}

// CheckAccess determines whether or not the current process can access the
// specified path with the requested permissions.
func CheckAccess(path string, read, write, execute bool) bool {
	return false
}

// CheckDirectory determines whether or not the specified path is a directory
// accessible with the requested permissions.
func CheckDirectory(path string, read, write, execute bool) bool {
	return false
}

// GetOwnership extracts the owning user and group IDs from file metadata.
func GetOwnership(info os.FileInfo) (int, int, error) {
	return 0, 0, errUnsupported
}

// SelfOwned determines whether or not the specified path is owned by the
// current effective user.
func SelfOwned(path string) bool {
	return false
}

// ApplyPermissions applies file and directory permissions across a tree.
func ApplyPermissions(root string, filePerm, dirPerm Mode, logger *logging.Logger) error {
	return errUnsupported
}

// EnsureGroupShared restores group access bits across a tree.
func EnsureGroupShared(root string, logger *logging.Logger) error {
	return errUnsupported
}

// EnsureDirectory ensures that the specified path exists as a directory with
// the specified mode.
func EnsureDirectory(path string, mode Mode, requireSelfOwned bool) error {
	return errUnsupported
}
