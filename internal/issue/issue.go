// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	ManifestParseErrorId
	ExtensionNotRegisteredId
	ExtensionActivationFailedId
	CommandNotFoundId
)

type MarkdownMsg string

type Issue struct {
	id    Id          // ID used to look the issue up
	mdMsg MarkdownMsg // Markdown text that will be rendered
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the extencli configuration file.

## Configuration file locations:
- Linux: ~/.config/extencli/config.toml
- macOS: ~/Library/Application Support/extencli/config.toml
- Windows: %APPDATA%\extencli\config.toml

## Things you can try:
- Check the configuration syntax (the file is TOML)
- Remove the config file to fall back to defaults

## Example configuration:
~~~toml
extension_paths = ["/home/user/.extencli/extensions"]

[ui]
verbose = false
color_scheme = "auto"
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse an extension manifest!

An installed distribution manifest contains invalid TOML.

## Things you can try:
- Check the reported file for syntax errors
- Reinstall the extension distribution
- Remove the manifest to stop the distribution being scanned

## Example manifest:
~~~toml
name = "ext2"
version = "1.0.0"
modules = ["ext2"]
requires = ["extencli>=1.0"]
~~~`,
	}

	extensionNotRegisteredIssue = &Issue{
		id: ExtensionNotRegisteredId,
		mdMsg: `
# Extension module not registered!

An installed distribution depends on this CLI, but its module was never
compiled into the binary, so there is no entry point to activate.

## Things you can try:
- Rebuild the CLI with the extension package imported
- Remove the distribution's manifest if the extension was uninstalled
- Run 'extencli extensions list' to see the installed distributions`,
	}

	extensionActivationFailedIssue = &Issue{
		id: ExtensionActivationFailedId,
		mdMsg: `
# Extension activation failed!

An extension module's registration entry point returned an error. The scan
stopped so the failure stays visible; it will be retried on the next command
list or lookup.

## Things you can try:
- Run with --verbose for the full error chain
- Report the failure to the extension's author
- Remove the distribution's manifest to stop it being activated`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found!

The command you specified is not registered, natively or by any activated
extension.

## Things you can try:
- List all available commands:
~~~
$ extencli extensions list
~~~
- Check for typos in the command name
- Verify the extension providing the command is installed`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():          configLoadFailedIssue,
		manifestParseErrorIssue.Id():        manifestParseErrorIssue,
		extensionNotRegisteredIssue.Id():    extensionNotRegisteredIssue,
		extensionActivationFailedIssue.Id(): extensionActivationFailedIssue,
		commandNotFoundIssue.Id():           commandNotFoundIssue,
	}
)

// Values returns every cataloged issue, ordered by id.
func Values() []*Issue {
	vals := maps.Values(issues)
	slices.SortFunc(vals, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return vals
}

func Get(id Id) *Issue {
	return issues[id]
}
