// Package configuration provides loading of the handin YAML configuration
// file and its environment-based overrides.
package configuration

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"gopkg.in/yaml.v2"
)

const (
	// DefaultRoot is the default shared exchange root.
	DefaultRoot = "/srv/handin/exchange"
	// DefaultTimezone is the default timezone name used for submission
	// timestamps.
	DefaultTimezone = "UTC"
	// DefaultTimestampLayout is the default timestamp layout, equivalent to
	// the exchange's canonical microsecond-precision format.
	DefaultTimestampLayout = "2006-01-02 15:04:05.000000 MST"
)

// DefaultIgnore is the default set of ignore patterns applied to transfers.
func DefaultIgnore() []string {
	return []string{".ipynb_checkpoints", "*.pyc", "__pycache__", "feedback", ".*"}
}

// Configuration is the global YAML configuration object type.
type Configuration struct {
	// Exchange contains the shared filesystem settings.
	Exchange struct {
		// Root is the shared exchange root. It must pre-exist.
		Root string `yaml:"root"`
		// Cache is the local submission cache directory.
		Cache string `yaml:"cache"`
		// AssignmentDir is the local path for storing student assignments.
		AssignmentDir string `yaml:"assignmentDir"`
		// PathIncludesCourse controls whether local assignment paths are
		// prefixed with the course name.
		PathIncludesCourse bool `yaml:"pathIncludesCourse"`
		// GroupShared enables group-shared permission mode for
		// multi-instructor courses.
		GroupShared bool `yaml:"groupShared"`
		// Timezone is the IANA timezone name used for timestamps.
		Timezone string `yaml:"timezone"`
		// TimestampLayout is the Go layout used to format timestamps.
		TimestampLayout string `yaml:"timestampLayout"`
	} `yaml:"exchange"`
	// Course contains the course directory settings.
	Course struct {
		// ID is the course identifier.
		ID string `yaml:"id"`
		// Assignment is the assignment identifier.
		Assignment string `yaml:"assignment"`
		// Ignore is the list of glob patterns excluded from transfers.
		Ignore []string `yaml:"ignore"`
		// Include is the list of glob patterns that files must match to be
		// transferred, if non-empty.
		Include []string `yaml:"include"`
		// MaxFileSize is the maximum size of an individual transferred file.
		// Zero means unlimited.
		MaxFileSize ByteSize `yaml:"maxFileSize"`
	} `yaml:"course"`
	// Submit contains submission settings.
	Submit struct {
		// Strict fails submission when released notebooks are missing from
		// the submitted set.
		Strict bool `yaml:"strict"`
		// RandomSuffix appends a collision-resistant suffix to submission
		// names. Defaults to true.
		RandomSuffix *bool `yaml:"randomSuffix"`
	} `yaml:"submit"`
	// Fetch contains fetch settings.
	Fetch struct {
		// ReplaceMissing allows fetching into an existing assignment
		// directory, creating only entries that are absent.
		ReplaceMissing bool `yaml:"replaceMissing"`
	} `yaml:"fetch"`
	// Collect contains collection settings.
	Collect struct {
		// SubmittedDir is the instructor-local directory that collected
		// submissions are copied into.
		SubmittedDir string `yaml:"submittedDir"`
		// Update skips students whose collected submission is already
		// current.
		Update bool `yaml:"update"`
	} `yaml:"collect"`
}

// Default returns a configuration populated with default values.
func Default() *Configuration {
	result := &Configuration{}
	result.Exchange.Root = DefaultRoot
	result.Exchange.AssignmentDir = "."
	result.Exchange.Timezone = DefaultTimezone
	result.Exchange.TimestampLayout = DefaultTimestampLayout
	result.Course.Ignore = DefaultIgnore()
	result.Collect.SubmittedDir = "submitted"
	return result
}

// Load attempts to load a YAML-based handin configuration file from the
// specified path. A missing file yields the default configuration.
func Load(path string) (*Configuration, error) {
	// Start from defaults so that absent keys keep their default values.
	result := Default()

	// Attempt to load the file, passing through missing-file conditions.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, errors.Wrap(err, "unable to load configuration file")
	}

	// Decode strictly so that misspelled keys surface as errors.
	if err := yaml.UnmarshalStrict(data, result); err != nil {
		return nil, errors.Wrap(err, "unable to unmarshal configuration")
	}

	// Success.
	return result, nil
}

// LoadEnvironmentFile loads a dotenv-format file into the process
// environment, if present. It allows deployments to ship exchange settings
// (HANDIN_ROOT, HANDIN_COURSE, and friends) alongside the course files.
func LoadEnvironmentFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrap(err, "unable to load environment file")
	}
	return nil
}

// ApplyEnvironment overlays recognized HANDIN_* environment variables onto
// the configuration. Environment values take precedence over file values but
// not over explicit command line flags.
func (c *Configuration) ApplyEnvironment() {
	if value := os.Getenv("HANDIN_ROOT"); value != "" {
		c.Exchange.Root = value
	}
	if value := os.Getenv("HANDIN_CACHE"); value != "" {
		c.Exchange.Cache = value
	}
	if value := os.Getenv("HANDIN_COURSE"); value != "" {
		c.Course.ID = value
	}
	if value := os.Getenv("HANDIN_ASSIGNMENT"); value != "" {
		c.Course.Assignment = value
	}
	if value := os.Getenv("HANDIN_TIMEZONE"); value != "" {
		c.Exchange.Timezone = value
	}
}

// RandomSuffixEnabled indicates whether or not submissions carry a random
// suffix, applying the default when unset.
func (c *Configuration) RandomSuffixEnabled() bool {
	if c.Submit.RandomSuffix == nil {
		return true
	}
	return *c.Submit.RandomSuffix
}
