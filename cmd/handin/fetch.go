package main

import (
	"github.com/spf13/cobra"

	"github.com/handin-io/handin/cmd"
	"github.com/handin-io/handin/pkg/exchange"
)

func fetchMain(command *cobra.Command, arguments []string) error {
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

	// Create and run the fetch operation.
	operation := &exchange.FetchOperation{
		Course:         newCourseDirectory(config),
		ReplaceMissing: fetchConfiguration.replaceMissing || config.Fetch.ReplaceMissing,
	}
	_, err = exchange.NewOrchestrator(environment).Run(operation)
	return err
}

var fetchCommand = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a released assignment from the exchange",
	Args:  cobra.NoArgs,
	Run:   cmd.Mainify(fetchMain),
}

var fetchConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// replaceMissing allows fetching into an existing assignment directory,
	// creating only entries that are absent.
	replaceMissing bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := fetchCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&fetchConfiguration.help, "help", "h", false, "Show help information")

	// Wire up fetch flags.
	flags.BoolVar(&fetchConfiguration.replaceMissing, "replace-missing", false, "Re-fetch files deleted from an existing local copy")
}
