package handin

import (
	"fmt"
)

const (
	// VersionMajor represents the current major version of handin.
	VersionMajor = 0
	// VersionMinor represents the current minor version of handin.
	VersionMinor = 3
	// VersionPatch represents the current patch version of handin.
	VersionPatch = 0
)

// Version provides a stringified version of the current handin version.
var Version string

func init() {
	// Compute the stringified version.
	Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}
