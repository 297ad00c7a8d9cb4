// SPDX-License-Identifier: MPL-2.0

// devstack is the flopods local development stack tool.
package main

import cmd "flopods-devstack/cmd/devstack"

func main() {
	cmd.Execute()
}
