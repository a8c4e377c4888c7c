package main

import (
	"github.com/spf13/cobra"

	"github.com/handin-io/handin/cmd"
	"github.com/handin-io/handin/pkg/exchange"
	"github.com/handin-io/handin/pkg/render"
)

func submitMain(command *cobra.Command, arguments []string) error {
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

	// Set up the static view renderer, unless rendering is disabled.
	var renderer render.Renderer
	if !submitConfiguration.noRender {
		renderer = &render.NBConvert{
			Command: submitConfiguration.converter,
			Logger:  environment.Logger.Sublogger("render"),
		}
	}

	// Create and run the submit operation.
	operation := &exchange.SubmitOperation{
		Course:       newCourseDirectory(config),
		Strict:       submitConfiguration.strict || config.Submit.Strict,
		RandomSuffix: config.RandomSuffixEnabled() && !submitConfiguration.noSuffix,
		Renderer:     renderer,
	}
	_, err = exchange.NewOrchestrator(environment).Run(operation)
	return err
}

var submitCommand = &cobra.Command{
	Use:   "submit",
	Short: "Submit an assignment to the exchange",
	Args:  cobra.NoArgs,
	Run:   cmd.Mainify(submitMain),
}

var submitConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// strict fails the submission when released notebooks are missing from
	// the submitted set.
	strict bool
	// noSuffix disables the random submission name suffix.
	noSuffix bool
	// noRender disables rendering of the static hashcode view.
	noRender bool
	// converter is the notebook converter executable.
	converter string
}

func init() {
	// Grab a handle for the command line flags.
	flags := submitCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&submitConfiguration.help, "help", "h", false, "Show help information")

	// Wire up submit flags.
	flags.BoolVar(&submitConfiguration.strict, "strict", false, "Fail submission when released notebooks are missing")
	flags.BoolVar(&submitConfiguration.noSuffix, "no-suffix", false, "Disable the random submission name suffix")
	flags.BoolVar(&submitConfiguration.noRender, "no-render", false, "Skip rendering of the hashcode view")
	flags.StringVar(&submitConfiguration.converter, "converter", "jupyter", "Specify the notebook converter executable")
}
