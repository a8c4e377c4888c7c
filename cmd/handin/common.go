package main

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/handin-io/handin/pkg/configuration"
	"github.com/handin-io/handin/pkg/exchange"
	"github.com/handin-io/handin/pkg/logging"
)

// loadConfiguration loads the YAML configuration file, overlays the
// environment file and HANDIN_* environment variables, and finally applies
// global command line flag overrides.
func loadConfiguration() (*configuration.Configuration, error) {
	// Load the environment file (if any) before reading the environment.
	if err := configuration.LoadEnvironmentFile(rootConfiguration.envFile); err != nil {
		return nil, err
	}

	// Load the configuration file and overlay the environment.
	result, err := configuration.Load(rootConfiguration.configFile)
	if err != nil {
		return nil, err
	}
	result.ApplyEnvironment()

	// Command line flags take precedence over both.
	if rootConfiguration.course != "" {
		result.Course.ID = rootConfiguration.course
	}
	if rootConfiguration.assignment != "" {
		result.Course.Assignment = rootConfiguration.assignment
	}
	if rootConfiguration.root != "" {
		result.Exchange.Root = rootConfiguration.root
	}
	if rootConfiguration.timezone != "" {
		result.Exchange.Timezone = rootConfiguration.timezone
	}

	// Success.
	return result, nil
}

// resolveUsername determines the identity of the invoking user, preferring
// the --user flag, then the HANDIN_USER environment variable, and finally the
// operating system account name.
func resolveUsername() (string, error) {
	if rootConfiguration.user != "" {
		return rootConfiguration.user, nil
	}
	if value := os.Getenv("HANDIN_USER"); value != "" {
		return value, nil
	}
	current, err := user.Current()
	if err != nil {
		return "", errors.Wrap(err, "unable to determine current user")
	}
	return current.Username, nil
}

// resolveCache determines the local submission cache directory, defaulting to
// a directory under the user's home directory when unconfigured.
func resolveCache(config *configuration.Configuration) (string, error) {
	if config.Exchange.Cache != "" {
		return config.Exchange.Cache, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "unable to determine home directory")
	}
	return filepath.Join(home, ".handin", "cache"), nil
}

// newLogger constructs the run logger at the configured verbosity.
func newLogger() (*logging.Logger, error) {
	level, ok := logging.NameToLevel(rootConfiguration.logLevel)
	if !ok {
		return nil, errors.Errorf("invalid log level: %s", rootConfiguration.logLevel)
	}
	return logging.NewLogger("", level), nil
}

// newEnvironment constructs the run environment from the effective
// configuration.
func newEnvironment(config *configuration.Configuration) (*exchange.Environment, error) {
	username, err := resolveUsername()
	if err != nil {
		return nil, err
	}
	cache, err := resolveCache(config)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	return &exchange.Environment{
		Root:               config.Exchange.Root,
		Cache:              cache,
		AssignmentDir:      config.Exchange.AssignmentDir,
		Username:           username,
		Timezone:           config.Exchange.Timezone,
		TimestampLayout:    config.Exchange.TimestampLayout,
		PathIncludesCourse: config.Exchange.PathIncludesCourse,
		GroupShared:        config.Exchange.GroupShared,
		Logger:             logger,
	}, nil
}

// newCourseDirectory constructs the course directory settings from the
// effective configuration.
func newCourseDirectory(config *configuration.Configuration) *exchange.CourseDirectory {
	return &exchange.CourseDirectory{
		CourseID:     config.Course.ID,
		AssignmentID: config.Course.Assignment,
		Ignore:       config.Course.Ignore,
		Include:      config.Course.Include,
		MaxFileSize:  uint64(config.Course.MaxFileSize),
		GroupShared:  config.Exchange.GroupShared,
	}
}
