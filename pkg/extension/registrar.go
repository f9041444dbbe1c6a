// SPDX-License-Identifier: MPL-2.0

package extension

import "github.com/spf13/cobra"

// Registrar is the capability extension modules use to attach commands to the
// host CLI. The autoloader and every activated module hold the same root
// Registrar instance, so all registrations land in one shared command tree.
type Registrar interface {
	// RegisterCommand adds a command to this level of the tree.
	RegisterCommand(cmd *cobra.Command)

	// RegisterGroup adds a subcommand group and returns a Registrar scoped
	// to it, so modules can nest commands under their own namespace.
	RegisterGroup(name, short string) Registrar
}

// cobraRegistrar adapts a cobra command to the Registrar interface.
type cobraRegistrar struct {
	cmd *cobra.Command
}

// NewRegistrar returns a Registrar backed by the given cobra command.
// Registered commands become direct children of cmd.
func NewRegistrar(cmd *cobra.Command) Registrar {
	return &cobraRegistrar{cmd: cmd}
}

func (r *cobraRegistrar) RegisterCommand(cmd *cobra.Command) {
	r.cmd.AddCommand(cmd)
}

func (r *cobraRegistrar) RegisterGroup(name, short string) Registrar {
	group := &cobra.Command{
		Use:   name,
		Short: short,
	}
	r.cmd.AddCommand(group)
	return &cobraRegistrar{cmd: group}
}
