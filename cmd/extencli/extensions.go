// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"extencli/internal/config"
	"extencli/pkg/autoload"
	"extencli/pkg/distmeta"

	"github.com/spf13/cobra"
)

var (
	extensionsCmd = &cobra.Command{
		Use:   "extensions",
		Short: "Inspect installed extension distributions",
	}

	extensionsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List installed extension distributions and their activation state",
		RunE:  runExtensionsList,
	}
)

func init() {
	extensionsCmd.AddCommand(extensionsListCmd)
}

func runExtensionsList(cmd *cobra.Command, _ []string) error {
	ldr, err := activeLoader()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := ldr.Extend(ctx); err != nil {
		return wrapActivationError(err)
	}

	statuses, err := ldr.Statuses(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("Installed extension distributions"))
	if len(statuses) == 0 {
		fmt.Fprintln(out, SubtitleStyle.Render("  (none)"))
	}
	for _, st := range statuses {
		marker := SubtitleStyle.Render("○")
		state := SubtitleStyle.Render("unrelated")
		switch {
		case st.Matched && st.Activated:
			marker = SuccessStyle.Render("●")
			state = SuccessStyle.Render("active")
		case st.Matched:
			marker = WarningStyle.Render("●")
			state = WarningStyle.Render("matched, not activated")
		}
		fmt.Fprintf(out, "  %s %s %s [%s]\n",
			marker,
			CmdStyle.Render(st.Distribution),
			SubtitleStyle.Render("("+strings.Join(st.Modules, ", ")+")"),
			state,
		)
	}

	// A Dir-backed index can name manifests it had to skip.
	type diagnoser interface{ Malformed() []string }
	if d, ok := ldr.Index().(diagnoser); ok {
		for _, path := range d.Malformed() {
			fmt.Fprintf(out, "  %s %s\n",
				WarningStyle.Render("!"),
				SubtitleStyle.Render("skipped malformed manifest "+path),
			)
		}
	}

	names, err := ldr.ListCommands(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, TitleStyle.Render("Available commands"))
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", CmdStyle.Render(name))
	}

	return nil
}

// activeLoader returns the loader built by Execute, or builds one on demand
// when a command runs outside the normal entry point (tests, go run of a
// single command).
func activeLoader() (*autoload.Group, error) {
	if loader != nil {
		return loader, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	loader = autoload.New(
		rootCmd,
		distmeta.NewDir(cfg.ExtensionPaths...),
		autoload.Variants(config.AppName),
	)
	return loader, nil
}
