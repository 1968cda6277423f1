package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/loggrid/loggrid/internal/emoji"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "loggrid",
		Short: "Dynamic log record store and aggregation engine",
		Long: `loggrid loads line-oriented log files whose schema is not known in
advance, parses them into named fields through a pattern-detection
collaborator, and filters, groups and time-buckets the records for display.

Field names and count are discovered at runtime from the chosen pattern;
no fixed schema is assumed.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			emoji.SetDisabled(noEmoji)
			return loadGlobalConfig()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "use ASCII markers instead of emoji")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, csv)")

	// Add subcommands
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newSuggestCommand())
	rootCmd.AddCommand(newFieldsCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Printf("loggrid %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers
func isVerbose() bool {
	return verbose || getGlobalConfig().Output.Verbose
}

func getOutputFormat() string {
	if outputFmt != "" {
		return outputFmt
	}
	return getGlobalConfig().Output.DefaultFormat
}

// colorEnabled resolves the --no-color flag, the NO_COLOR convention and
// the configured color mode.
func colorEnabled() bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch getGlobalConfig().Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return true
	}
}
