// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for extencli.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"extencli/internal/config"
	"extencli/internal/issue"
	"extencli/pkg/autoload"
	"extencli/pkg/distmeta"
	"extencli/pkg/extension"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// loader is the autoloading group wrapped around rootCmd. It is built
	// once per invocation, before cobra dispatches, so extension commands
	// are registered by the time cobra resolves the requested subcommand.
	loader *autoload.Group

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "extencli",
		Short: "An auto-extensible command line tool",
		Long: TitleStyle.Render("extencli") + SubtitleStyle.Render(" - An auto-extensible command line tool") + `

extencli extends itself automatically: any installed extension
distribution that declares a dependency on "extencli" has its module
activated on first use, and the commands that module registers appear
in this command tree as if they were built in.

Extensions are discovered through distribution manifests installed
under ~/.extencli/extensions (configurable via extension_paths).

` + SubtitleStyle.Render("Examples:") + `
  extencli extensions list     Show installed extension distributions
  extencli <extension-cmd>     Run a command an extension registered`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/extencli/config.toml)")

	// Add subcommands
	rootCmd.AddCommand(extensionsCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the autoloading group around the root command, activates
// dependent extensions, and dispatches through cobra. This is called by
// main.main(). Extension activation has to happen before dispatch, not in
// OnInitialize: cobra resolves the requested subcommand before initializers
// run, and extension commands must already be registered by then.
func Execute() {
	ctx := context.Background()

	// The --config flag must influence the scan, so it is read ahead of
	// cobra's own flag parsing.
	if path := configFlagValue(os.Args[1:]); path != "" {
		config.SetConfigFilePathOverride(path)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		cfg = config.DefaultConfig()
	}

	loader = newLoader(cfg)
	if err := loader.Extend(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(wrapActivationError(err), verbose))
		if guidance, rerr := guidanceFor(err).Render(string(cfg.UI.ColorScheme)); rerr == nil {
			fmt.Fprintln(os.Stderr, guidance)
		}
		os.Exit(1)
	}

	// Use fang.Execute for enhanced Cobra styling
	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// newLoader wires the autoloading group for the configured extension paths.
// The host dependency aliases cover both separator spellings of the
// application name, so "extencli>=1.0" and "exten_cli"-style declarations
// both qualify. (AppName has no separator today; Variants keeps this correct
// if that ever changes.)
func newLoader(cfg *config.Config) *autoload.Group {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          config.AppName,
	})
	if verbose || cfg.UI.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return autoload.New(
		rootCmd,
		distmeta.NewDir(cfg.ExtensionPaths...),
		autoload.Variants(config.AppName),
		autoload.WithLogger(logger),
	)
}

// configFlagValue extracts the value of --config from raw args, accepting
// both "--config path" and "--config=path" forms.
func configFlagValue(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if value, ok := strings.CutPrefix(arg, "--config="); ok {
			return value
		}
	}
	return ""
}

// guidanceFor picks the catalog entry matching an extension scan failure.
func guidanceFor(err error) *issue.Issue {
	if errors.Is(err, extension.ErrNotRegistered) {
		return issue.Get(issue.ExtensionNotRegisteredId)
	}
	return issue.Get(issue.ExtensionActivationFailedId)
}

// wrapActivationError attaches actionable context to an extension scan
// failure so the user sees remediation steps, not just the raw cause.
func wrapActivationError(err error) error {
	return issue.NewErrorContext().
		WithOperation("activate installed extensions").
		WithSuggestion("Run with --verbose for the full error chain").
		WithSuggestion("Run 'extencli extensions list' to inspect installed distributions").
		WithSuggestion("Remove the failing distribution's manifest to skip it").
		Wrap(err).
		BuildError()
}

// initRootConfig applies config-driven defaults after cobra parsed flags.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
