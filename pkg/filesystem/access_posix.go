//go:build !windows
// +build !windows

package filesystem

import (
	"golang.org/x/sys/unix"
)

// CheckAccess determines whether or not the current process can access the
// specified path with the requested permissions. It never returns an error: a
// missing path (or any other access(2) failure) simply yields false.
func CheckAccess(path string, read, write, execute bool) bool {
	// Compute the access mask. If no permissions are requested, this checks
	// for bare existence.
	var mask uint32
	if read {
		mask |= unix.R_OK
	}
	if write {
		mask |= unix.W_OK
	}
	if execute {
		mask |= unix.X_OK
	}

	// Perform the check.
	return unix.Access(path, mask) == nil
}

// CheckDirectory determines whether or not the specified path is a directory
// accessible with the requested permissions.
func CheckDirectory(path string, read, write, execute bool) bool {
	var info unix.Stat_t
	if err := unix.Stat(path, &info); err != nil {
		return false
	}
	if info.Mode&unix.S_IFMT != unix.S_IFDIR {
		return false
	}
	return CheckAccess(path, read, write, execute)
}
