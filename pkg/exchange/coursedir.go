package exchange

// CourseDirectory captures the per-operation course configuration. It is
// treated as immutable for the duration of an operation.
type CourseDirectory struct {
	// CourseID is the course identifier.
	CourseID string
	// AssignmentID is the assignment identifier.
	AssignmentID string
	// Ignore is the list of glob patterns excluded from transfers.
	Ignore []string
	// Include is the list of glob patterns that files must match to be
	// transferred, if non-empty.
	Include []string
	// MaxFileSize is the maximum size of an individual transferred file in
	// bytes. Zero means unlimited.
	MaxFileSize uint64
	// GroupShared indicates whether the course uses group-shared permission
	// mode.
	GroupShared bool
}

// EnsureValid verifies that the course identity is usable. It is invoked by
// every path resolver before any filesystem access.
func (c *CourseDirectory) EnsureValid() error {
	if c.CourseID == "" {
		return &ConfigurationError{Message: "no course id specified, re-run with --course"}
	}
	if c.AssignmentID == "" {
		return &ConfigurationError{Message: "no assignment id specified, re-run with --assignment"}
	}
	return nil
}

// Filter constructs the transfer filter corresponding to the course's ignore,
// include, and size settings.
func (c *CourseDirectory) Filter() (*Filter, error) {
	return NewFilter(c.Ignore, c.Include, c.MaxFileSize)
}
