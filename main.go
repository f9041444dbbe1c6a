// SPDX-License-Identifier: MPL-2.0

package main

import cmd "extencli/cmd/extencli"

func main() {
	cmd.Execute()
}
