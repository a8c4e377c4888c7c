package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/handin-io/handin/pkg/handin"
)

// rootMain is the entry point for the root command.
func rootMain(command *cobra.Command, _ []string) error {
	// If no commands were given, then print help information and bail. We don't
	// have to worry about warning about arguments being present here (which
	// would be incorrect usage) because arguments can't even reach this point
	// (they will be mistaken for subcommands and an error will be displayed).
	command.Help()

	// Success.
	return nil
}

// rootCommand is the root command.
var rootCommand = &cobra.Command{
	Use:          "handin",
	Version:      handin.Version,
	Short:        "Move assignments between instructors and students",
	RunE:         rootMain,
	SilenceUsage: true,
}

// rootConfiguration stores configuration for the root command.
var rootConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// configFile is the path of the YAML configuration file.
	configFile string
	// envFile is the path of the dotenv-format environment file.
	envFile string
	// course is the course identifier.
	course string
	// assignment is the assignment identifier.
	assignment string
	// user overrides the invoking username.
	user string
	// root overrides the shared exchange root.
	root string
	// timezone overrides the timestamp timezone.
	timezone string
	// logLevel is the logging verbosity.
	logLevel string
}

func init() {
	// Disable Cobra's command sorting behavior. By default, it sorts commands
	// alphabetically in the help output.
	cobra.EnableCommandSorting = false

	// Disable Cobra's use of mousetrap. This application is terminal-driven on
	// all platforms.
	cobra.MousetrapHelpText = ""

	// Set the template used by the version flag.
	rootCommand.SetVersionTemplate("handin version {{ .Version }}\n")

	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Grab a handle for the persistent command line flags.
	persistentFlags := rootCommand.PersistentFlags()

	// Disable alphabetical sorting of persistent flags in help output.
	persistentFlags.SortFlags = false

	// Wire up the persistent flags shared by all operations.
	persistentFlags.StringVar(&rootConfiguration.configFile, "config", "handin.yml", "Specify the configuration file")
	persistentFlags.StringVar(&rootConfiguration.envFile, "env-file", ".handin.env", "Specify the environment file")
	persistentFlags.StringVarP(&rootConfiguration.course, "course", "c", "", "Specify the course identifier")
	persistentFlags.StringVarP(&rootConfiguration.assignment, "assignment", "a", "", "Specify the assignment identifier")
	persistentFlags.StringVarP(&rootConfiguration.user, "user", "u", "", "Override the invoking username")
	persistentFlags.StringVar(&rootConfiguration.root, "root", "", "Override the exchange root")
	persistentFlags.StringVar(&rootConfiguration.timezone, "timezone", "", "Override the timestamp timezone")
	persistentFlags.StringVar(&rootConfiguration.logLevel, "log-level", "info", "Set the logging level (disabled, error, warn, info, debug)")

	// Hide Cobra's completion command.
	rootCommand.CompletionOptions.DisableDefaultCmd = true

	// Register commands. We do this here (rather than in individual init
	// functions) so that we can control the order.
	rootCommand.AddCommand(
		fetchCommand,
		submitCommand,
		collectCommand,
		versionCommand,
	)
}

func main() {
	// Execute the root command.
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
