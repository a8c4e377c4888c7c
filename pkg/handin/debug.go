package handin

import (
	"os"
)

// DebugEnabled controls whether or not debugging is enabled for handin. It is
// set automatically based on the HANDIN_DEBUG environment variable.
var DebugEnabled bool

func init() {
	// Check whether or not debugging should be enabled.
	DebugEnabled = os.Getenv("HANDIN_DEBUG") == "1"
}
