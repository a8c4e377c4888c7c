package main

import (
	"github.com/spf13/cobra"

	"github.com/handin-io/handin/cmd"
	"github.com/handin-io/handin/pkg/exchange"
)

func collectMain(command *cobra.Command, arguments []string) error {
	// Load the effective configuration.
	config, err := loadConfiguration()
	if err != nil {
		return err
	}

	// Construct the run environment.
	environment, err := newEnvironment(config)
	if err != nil {
		return err
	}

	// Determine the collection target, with the flag taking precedence.
	submittedDir := config.Collect.SubmittedDir
	if collectConfiguration.submittedDir != "" {
		submittedDir = collectConfiguration.submittedDir
	}

	// Create and run the collect operation.
	operation := &exchange.CollectOperation{
		Course:       newCourseDirectory(config),
		SubmittedDir: submittedDir,
		Update:       collectConfiguration.update || config.Collect.Update,
	}
	_, err = exchange.NewOrchestrator(environment).Run(operation)
	return err
}

var collectCommand = &cobra.Command{
	Use:   "collect",
	Short: "Collect student submissions from the exchange",
	Args:  cobra.NoArgs,
	Run:   cmd.Mainify(collectMain),
}

var collectConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// submittedDir is the directory that collected submissions are copied
	// into.
	submittedDir string
	// update skips students whose collected submission is already current.
	update bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := collectCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&collectConfiguration.help, "help", "h", false, "Show help information")

	// Wire up collect flags.
	flags.StringVar(&collectConfiguration.submittedDir, "submitted-dir", "", "Specify the directory for collected submissions")
	flags.BoolVar(&collectConfiguration.update, "update", false, "Collect only submissions newer than the collected copy")
}
