//go:build !windows
// +build !windows

package filesystem

import (
	"golang.org/x/sys/unix"
)

// Mode is an opaque type representing a file mode. It is guaranteed to be
// convertable to a uint32 value. On POSIX systems, it is the raw underlying
// file mode from the Stat_t structure (as opposed to the os package's
// FileMode implementation).
type Mode uint32

const (
	// ModePermissionsMask is a bit mask that isolates the permission and
	// setuid/setgid/sticky portion of a mode.
	ModePermissionsMask = Mode(unix.S_ISUID | unix.S_ISGID | unix.S_ISVTX | 0777)

	// ModeSetGID is the setgid bit. When set on a directory, files created
	// inside it inherit the directory's group.
	ModeSetGID = Mode(unix.S_ISGID)

	// ModeGroupReadWrite grants group read and write access.
	ModeGroupReadWrite = Mode(unix.S_IRGRP | unix.S_IWGRP)

	// ModeGroupReadWriteExecute grants group read, write, and execute access.
	ModeGroupReadWriteExecute = Mode(unix.S_IRGRP | unix.S_IWGRP | unix.S_IXGRP)
)

// SharedModes computes the file and directory permissions to apply to course
// directories. In group-shared mode, files are group-writable and directories
// additionally carry group execute and setgid bits so that other instructors
// can manage the tree. Otherwise only the owner retains write access.
func SharedModes(groupShared bool) (Mode, Mode) {
	if groupShared {
		return 0664, 02775
	}
	return 0644, 0755
}
