//go:build !windows
// +build !windows

package filesystem

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// GetOwnership extracts the owning user and group IDs from file metadata.
func GetOwnership(info os.FileInfo) (int, int, error) {
	if stat, ok := info.Sys().(*syscall.Stat_t); !ok {
		return 0, 0, errors.New("unable to extract raw stat information")
	} else {
		return int(stat.Uid), int(stat.Gid), nil
	}
}

// SelfOwned determines whether or not the specified path is owned by the
// current effective user. A missing path yields false.
func SelfOwned(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	uid, _, err := GetOwnership(info)
	if err != nil {
		return false
	}
	return uid == os.Geteuid()
}
