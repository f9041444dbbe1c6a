// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"extencli/internal/issue"
	"extencli/pkg/autoload"
	"extencli/pkg/distmeta"
	"extencli/pkg/extension"

	"github.com/spf13/cobra"
)

func TestRootCommandWiring(t *testing.T) {
	want := map[string]bool{"extensions": false, "config": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command missing %q subcommand", name)
		}
	}
}

func TestConfigFlagValue(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "separate value", args: []string{"--config", "/tmp/c.toml", "extensions"}, want: "/tmp/c.toml"},
		{name: "equals form", args: []string{"extensions", "--config=/tmp/c.toml"}, want: "/tmp/c.toml"},
		{name: "absent", args: []string{"extensions", "list"}, want: ""},
		{name: "trailing flag without value", args: []string{"--config"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := configFlagValue(tt.args); got != tt.want {
				t.Errorf("configFlagValue(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("activate installed extensions").
		WithSuggestion("Run with --verbose for the full error chain").
		Wrap(plain).
		BuildError()
	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "failed to activate installed extensions") {
		t.Errorf("formatErrorForDisplay(actionable) missing operation:\n%s", got)
	}
	if !strings.Contains(got, "• Run with --verbose") {
		t.Errorf("formatErrorForDisplay(actionable) missing suggestion:\n%s", got)
	}
}

func TestExitError(t *testing.T) {
	bare := &ExitError{Code: 3}
	if bare.Error() != "exit status 3" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "exit status 3")
	}

	cause := errors.New("boom")
	wrapped := &ExitError{Code: 1, Err: cause}
	if wrapped.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), "boom")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is() did not find the wrapped cause")
	}
}

func TestRunExtensionsList(t *testing.T) {
	t.Cleanup(func() { loader = nil })

	table := extension.NewTable()
	table.Register("ext2", func(root extension.Registrar) error {
		root.RegisterCommand(&cobra.Command{Use: "ext2-test"})
		return nil
	})
	index := &distmeta.Static{
		Reqs: map[string][]string{
			"ext2":      {"extencli>=1.0"},
			"unrelated": {"other-lib"},
		},
		Prov: map[string][]string{
			"ext2":      {"ext2"},
			"unrelated": {"unrelated"},
		},
	}
	loader = autoload.New(rootCmd, index, autoload.Variants("extencli"), autoload.WithTable(table))

	buf := new(bytes.Buffer)
	extensionsListCmd.SetOut(buf)
	extensionsListCmd.SetContext(context.Background())

	if err := runExtensionsList(extensionsListCmd, nil); err != nil {
		t.Fatalf("runExtensionsList() returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "ext2") {
		t.Errorf("output missing ext2 distribution:\n%s", out)
	}
	if !strings.Contains(out, "unrelated") {
		t.Errorf("output missing unrelated distribution:\n%s", out)
	}
	if !strings.Contains(out, "ext2-test") {
		t.Errorf("output missing activated ext2-test command:\n%s", out)
	}
	if !table.Activated("ext2") {
		t.Error("ext2 module not activated by listing")
	}
}

func TestGuidanceFor(t *testing.T) {
	notReg := fmt.Errorf("activating: %w", extension.ErrNotRegistered)
	if got := guidanceFor(notReg); got.Id() != issue.ExtensionNotRegisteredId {
		t.Errorf("guidanceFor(ErrNotRegistered) picked issue %d", got.Id())
	}
	if got := guidanceFor(errors.New("entry blew up")); got.Id() != issue.ExtensionActivationFailedId {
		t.Errorf("guidanceFor(generic) picked issue %d", got.Id())
	}
}

func TestGetVersionString(t *testing.T) {
	originalVersion := Version
	t.Cleanup(func() { Version = originalVersion })

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}

	Version = "1.2.3"
	if got := getVersionString(); !strings.Contains(got, "1.2.3") {
		t.Errorf("getVersionString() = %q, want version included", got)
	}
}
