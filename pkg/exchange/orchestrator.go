// Package exchange implements the assignment exchange pipeline: path
// resolution, permission validation, filtered directory transfer, submission
// stamping, and the orchestration of fetch, submit, and collect operations
// over a shared POSIX filesystem.
package exchange

import (
	"runtime"

	"github.com/google/uuid"

	"github.com/handin-io/handin/pkg/filesystem"
	"github.com/handin-io/handin/pkg/logging"
)

// Environment captures the per-run inputs of an exchange operation, resolved
// once at the start of a run. There are no ambient lookups during execution.
type Environment struct {
	// Root is the shared exchange root. It must pre-exist.
	Root string
	// Cache is the local submission cache directory.
	Cache string
	// AssignmentDir is the local path for storing student assignments.
	AssignmentDir string
	// Username is the identity of the invoking user.
	Username string
	// Timezone is the IANA timezone name used for timestamps.
	Timezone string
	// TimestampLayout is the Go layout used to format timestamps.
	TimestampLayout string
	// PathIncludesCourse controls whether local assignment paths are prefixed
	// with the course name.
	PathIncludesCourse bool
	// GroupShared indicates group-shared permission mode. In this mode,
	// exchange root accessibility is the administrators' responsibility and
	// is not verified.
	GroupShared bool
	// Logger is the logger for the run. It may be nil.
	Logger *logging.Logger
}

// EnsureValid verifies that the environment is usable.
func (e *Environment) EnsureValid() error {
	if e.Root == "" {
		return &ConfigurationError{Message: "no exchange root specified"}
	}
	if e.Username == "" {
		return &ConfigurationError{Message: "no username specified"}
	}
	if e.Timezone == "" || e.TimestampLayout == "" {
		return &ConfigurationError{Message: "no timestamp timezone or layout specified"}
	}
	return nil
}

// Record describes a single transfer. It is created at the start of a run,
// treated as immutable once copying begins, and discarded after the run: the
// filesystem is the only durable store.
type Record struct {
	// ID uniquely identifies the run.
	ID string
	// Kind is the operation kind (fetch, submit, collect).
	Kind string
	// Timestamp is the formatted run timestamp.
	Timestamp string
	// Source is the resolved source path.
	Source string
	// Destination is the resolved destination path.
	Destination string
}

// Operation is the strategy interface implemented by each operation kind. The
// orchestrator invokes the three hooks in order; any error halts the run.
type Operation interface {
	// Kind returns the operation kind name.
	Kind() string
	// ResolveSource computes and validates the source path, storing it on the
	// record.
	ResolveSource(environment *Environment, record *Record) error
	// ResolveDestination computes and validates the destination path, storing
	// it on the record.
	ResolveDestination(environment *Environment, record *Record) error
	// Transfer moves the bytes.
	Transfer(environment *Environment, record *Record) error
}

// runState tracks progress through a run. Transitions are strictly linear;
// there are no backward transitions and a failed run is not resumable.
type runState uint8

const (
	// runStateStart is the initial state.
	runStateStart runState = iota
	// runStateSourceResolved indicates that the source path is resolved.
	runStateSourceResolved
	// runStateDestinationResolved indicates that the destination path is
	// resolved.
	runStateDestinationResolved
	// runStateCopied indicates that the transfer has completed.
	runStateCopied
	// runStateDone is the terminal state.
	runStateDone
)

// String provides a human-readable representation of a run state.
func (s runState) String() string {
	switch s {
	case runStateStart:
		return "start"
	case runStateSourceResolved:
		return "source resolved"
	case runStateDestinationResolved:
		return "destination resolved"
	case runStateCopied:
		return "copied"
	case runStateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Orchestrator sequences exchange operations. Each run is single-threaded and
// synchronous; failures are terminal for the invocation and are never
// retried.
type Orchestrator struct {
	// environment is the run environment.
	environment *Environment
}

// NewOrchestrator creates an orchestrator operating in the specified
// environment.
func NewOrchestrator(environment *Environment) *Orchestrator {
	return &Orchestrator{environment: environment}
}

// Run executes a single operation to completion. The returned record
// describes the transfer that was performed. All fatal errors are logged
// before being returned.
func (o *Orchestrator) Run(operation Operation) (*Record, error) {
	logger := o.environment.Logger.Sublogger(operation.Kind())

	// Shared-permission semantics require POSIX mode bits.
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		err := &PlatformUnsupportedError{Platform: runtime.GOOS}
		logger.Error(err)
		return nil, err
	}

	// Validate the environment.
	if err := o.environment.EnsureValid(); err != nil {
		logger.Error(err)
		return nil, err
	}

	// Verify that the exchange root is usable. In group-shared mode, it is up
	// to administrators to ensure that instructors can write there.
	if !o.environment.GroupShared {
		if !filesystem.CheckDirectory(o.environment.Root, true, true, true) {
			err := &PermissionError{
				Path:    o.environment.Root,
				Message: "unwritable exchange directory, please contact your instructor",
			}
			logger.Error(err)
			return nil, err
		}
	}

	// Compute the run timestamp in the configured timezone.
	timestamp, err := Timestamp(o.environment.Timezone, o.environment.TimestampLayout)
	if err != nil {
		configurationErr := &ConfigurationError{Message: err.Error()}
		logger.Error(configurationErr)
		return nil, configurationErr
	}

	// Create the transfer record. It is owned by this run and discarded
	// afterwards.
	record := &Record{
		ID:        uuid.NewString(),
		Kind:      operation.Kind(),
		Timestamp: timestamp,
	}
	logger.Debugf("run %s starting at %s", record.ID, record.Timestamp)

	// Execute the steps in order. The first failure halts the run.
	state := runStateStart
	steps := []struct {
		next runState
		run  func(*Environment, *Record) error
	}{
		{runStateSourceResolved, operation.ResolveSource},
		{runStateDestinationResolved, operation.ResolveDestination},
		{runStateCopied, operation.Transfer},
	}
	for _, step := range steps {
		if err := step.run(o.environment, record); err != nil {
			logger.Error(err)
			return nil, err
		}
		state = step.next
		logger.Debugf("run %s: %v", record.ID, state)
	}
	state = runStateDone
	logger.Debugf("run %s: %v", record.ID, state)

	// Success.
	return record, nil
}
